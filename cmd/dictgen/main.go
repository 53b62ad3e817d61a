// Command dictgen generates data/dict.tsv from the kaikki.org Korean
// dictionary dump (JSONL format).
//
// Download the dump from https://kaikki.org/dictionary/Korean/
// then run:
//
//	go run ./cmd/dictgen -i kaikki.org-dictionary-Korean.jsonl
//
// Output: data/dict.tsv (commit this file). It is embedded as the built-in
// glossary used by kovocab extract.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/az-ai-labs/ko-lang-nlp/hangul"
)

const (
	defaultInput   = "data/dictionary/kaikki.org-dictionary-Korean.jsonl"
	defaultOutput  = "data/dict.tsv"
	scannerBufSize = 1 << 20 // 1 MB
	maxGlosses     = 2
	header         = "# lemma\tdefinition\thanja"
)

// kaikkiEntry holds only the fields needed from each JSONL line.
type kaikkiEntry struct {
	Word   string `json:"word"`
	POS    string `json:"pos"`
	Senses []struct {
		Glosses []string `json:"glosses"`
	} `json:"senses"`
	Forms []struct {
		Form string   `json:"form"`
		Tags []string `json:"tags"`
	} `json:"forms"`
}

type entry struct {
	gloss string
	hanja string
}

type stats struct {
	lines     int
	malformed int
	kept      int
}

func main() {
	inputPath := pflag.StringP("input", "i", defaultInput, "path to kaikki.org JSONL dump")
	outputPath := pflag.StringP("output", "o", defaultOutput, "output path for dict.tsv")
	pflag.Parse()

	if *inputPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: dictgen -i <file> [-o <file>]\n")
		os.Exit(1)
	}
	if err := run(*inputPath, *outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "dictgen: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath, outputPath string) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return errors.Wrap(err, "open input")
	}
	entries, st, err := collect(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "close input")
	}
	if err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	w := bufio.NewWriter(out)
	if err := write(w, entries); err != nil {
		out.Close()
		return errors.Wrap(err, "write output")
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return errors.Wrap(err, "flush output")
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(err, "close output")
	}

	fmt.Fprintf(os.Stderr, "Lines read:   %d\n", st.lines)
	fmt.Fprintf(os.Stderr, "  malformed:  %d\n", st.malformed)
	fmt.Fprintf(os.Stderr, "Entries kept: %d\n", st.kept)
	fmt.Fprintf(os.Stderr, "Output file:  %s\n", outputPath)
	return nil
}

// collect reads the dump and keeps the first gloss of each acceptable
// word. A hanja form found on a later entry of the same word fills a
// missing one.
func collect(r io.Reader) (map[string]entry, stats, error) {
	var st stats
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, scannerBufSize), scannerBufSize)

	seen := make(map[string]entry)
	for sc.Scan() {
		st.lines++
		var ke kaikkiEntry
		if err := sonic.Unmarshal(sc.Bytes(), &ke); err != nil {
			st.malformed++
			continue
		}
		if !keepPOS(ke.POS) || !isAcceptable(ke.Word) {
			continue
		}
		e := entry{gloss: gloss(ke), hanja: hanjaForm(ke)}

		prev, dup := seen[ke.Word]
		switch {
		case !dup:
			if e.gloss == "" {
				continue
			}
			seen[ke.Word] = e
		case prev.hanja == "" && e.hanja != "":
			prev.hanja = e.hanja
			seen[ke.Word] = prev
		}
	}
	if err := sc.Err(); err != nil {
		return nil, st, errors.Wrap(err, "scan input")
	}
	st.kept = len(seen)
	return seen, st, nil
}

// write prints the entries sorted by lemma after the header line.
func write(w io.Writer, entries map[string]entry) error {
	words := make([]string, 0, len(entries))
	for word := range entries {
		words = append(words, word)
	}
	slices.Sort(words)

	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	for _, word := range words {
		e := entries[word]
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", word, e.gloss, e.hanja); err != nil {
			return err
		}
	}
	return nil
}

// keepPOS reports whether a kaikki POS tag names a word that can appear as
// a lemma.
func keepPOS(pos string) bool {
	switch pos {
	case "noun", "name", "pron", "num", "verb", "adj", "adv":
		return true
	}
	return false
}

// isAcceptable reports whether word consists of Hangul syllables only.
func isAcceptable(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !hangul.IsSyllable(r) {
			return false
		}
	}
	return true
}

// gloss joins the first gloss of up to maxGlosses senses.
func gloss(ke kaikkiEntry) string {
	var parts []string
	for _, s := range ke.Senses {
		if len(s.Glosses) == 0 {
			continue
		}
		g := clean(s.Glosses[0])
		if g == "" || slices.Contains(parts, g) {
			continue
		}
		parts = append(parts, g)
		if len(parts) == maxGlosses {
			break
		}
	}
	return strings.Join(parts, "; ")
}

// hanjaForm returns the first form tagged hanja. Mixed forms such as
// 盜難當하다 are kept; a form without any Han character is not.
func hanjaForm(ke kaikkiEntry) string {
	for _, f := range ke.Forms {
		if !slices.Contains(f.Tags, "hanja") {
			continue
		}
		if isHanja(f.Form) {
			return f.Form
		}
	}
	return ""
}

func isHanja(s string) bool {
	han := false
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Han, r):
			han = true
		case hangul.IsSyllable(r):
		default:
			return false
		}
	}
	return han
}

// clean collapses whitespace so a gloss fits on one TSV line.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
