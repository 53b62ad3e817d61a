// Package lookup provides optional dictionary definitions and hanja for
// lemmas.
//
// A missing definition is not an error: Lookup reports false and the
// caller renders empty columns.
//
// Two file formats are read:
//
//   - JSON: an array of {"word", "definition", "hanja"} objects.
//   - TSV: one entry per line, word, definition and hanja separated by
//     tabs. Blank lines and lines starting with # are ignored. Trailing
//     columns may be omitted.
package lookup

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/az-ai-labs/ko-lang-nlp/data"
)

const scannerBufSize = 1 << 20 // longest accepted TSV line

// Definition is the dictionary data for one lemma.
type Definition struct {
	Gloss string `json:"definition"`
	Hanja string `json:"hanja"`
}

// Dictionary resolves lemmas to definitions.
type Dictionary interface {
	Lookup(lemma string) (Definition, bool)
}

// Map is an in-memory dictionary.
type Map map[string]Definition

// Lookup returns the definition of lemma.
func (m Map) Lookup(lemma string) (Definition, bool) {
	d, ok := m[lemma]
	return d, ok
}

type none struct{}

func (none) Lookup(string) (Definition, bool) { return Definition{}, false }

// None is a dictionary that never finds anything.
var None Dictionary = none{}

// Chain looks lemmas up in each dictionary in turn and returns the first
// hit. Nil dictionaries are skipped.
type Chain []Dictionary

// Lookup returns the first definition found.
func (c Chain) Lookup(lemma string) (Definition, bool) {
	for _, d := range c {
		if d == nil {
			continue
		}
		if def, ok := d.Lookup(lemma); ok {
			return def, true
		}
	}
	return Definition{}, false
}

type jsonEntry struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Hanja      string `json:"hanja"`
}

// LoadJSON reads a JSON dictionary. Entries without a word are rejected.
// When a word appears more than once the first entry wins.
func LoadJSON(r io.Reader) (Map, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read dictionary")
	}
	var entries []jsonEntry
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Wrap(err, "decode dictionary")
	}
	m := make(Map, len(entries))
	for i, e := range entries {
		word := strings.TrimSpace(e.Word)
		if word == "" {
			return nil, fmt.Errorf("dictionary entry %d: missing word", i)
		}
		if _, dup := m[word]; dup {
			continue
		}
		m[word] = Definition{Gloss: strings.TrimSpace(e.Definition), Hanja: strings.TrimSpace(e.Hanja)}
	}
	return m, nil
}

// LoadTSV reads a TSV dictionary. When a word appears more than once the
// first line wins.
func LoadTSV(r io.Reader) (Map, error) {
	m := make(Map)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), scannerBufSize)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.SplitN(text, "\t", 3)
		word := strings.TrimSpace(fields[0])
		if word == "" {
			return nil, fmt.Errorf("dictionary line %d: missing word", line)
		}
		if _, dup := m[word]; dup {
			continue
		}
		var d Definition
		if len(fields) > 1 {
			d.Gloss = strings.TrimSpace(fields[1])
		}
		if len(fields) > 2 {
			d.Hanja = strings.TrimSpace(fields[2])
		}
		m[word] = d
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read dictionary line %d", line+1)
	}
	return m, nil
}

// Open loads a dictionary file, choosing the format by extension: .json
// is JSON, anything else is TSV. A leading ~ is expanded to the home
// directory.
func Open(path string) (Map, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrapf(err, "expand %s", path)
	}
	f, err := os.Open(expanded)
	if err != nil {
		return nil, errors.Wrap(err, "open dictionary")
	}
	defer f.Close()

	var m Map
	if strings.EqualFold(filepath.Ext(expanded), ".json") {
		m, err = LoadJSON(f)
	} else {
		m, err = LoadTSV(f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", expanded)
	}
	return m, nil
}

var (
	builtinOnce sync.Once
	builtin     Map
)

// Builtin returns the embedded glossary. The map is shared; callers must
// not modify it.
func Builtin() Map {
	builtinOnce.Do(func() {
		m, err := LoadTSV(bytes.NewReader(data.Dict))
		if err != nil {
			panic("lookup: built-in dictionary: " + err.Error())
		}
		builtin = m
	})
	return builtin
}
