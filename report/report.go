// Package report renders a vocabulary snapshot as CSV, TSV or JSON.
//
// Dictionary data is joined in by Builder at render time; the aggregator
// never sees it.
package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"github.com/az-ai-labs/ko-lang-nlp/lookup"
	"github.com/az-ai-labs/ko-lang-nlp/vocab"
)

// DefaultSeparator joins the sentences of a row in delimited output.
const DefaultSeparator = " | "

// Formats lists the accepted output format names.
var Formats = []string{"csv", "tsv", "json"}

// ErrUnknownFormat is returned by NewWriter for an unsupported format.
var ErrUnknownFormat = errors.New("report: unknown output format")

// Header is the column order of delimited output.
var Header = []string{"lemma", "count", "sentences", "definition", "hanja"}

// Row is one rendered vocabulary entry.
type Row struct {
	Lemma      string   `json:"lemma"`
	Count      int      `json:"count"`
	Sentences  []string `json:"sentences"`
	Definition string   `json:"definition,omitempty"`
	Hanja      string   `json:"hanja,omitempty"`
}

// Builder turns snapshot entries into rows.
type Builder struct {
	// Dict supplies definitions. Nil means no definitions.
	Dict lookup.Dictionary
	// MaxSentences caps the sentences kept per row. Zero keeps all.
	MaxSentences int
}

// Build returns one row per entry, in entry order.
func (b Builder) Build(entries []vocab.Entry) []Row {
	if len(entries) == 0 {
		return nil
	}
	dict := b.Dict
	if dict == nil {
		dict = lookup.None
	}
	rows := make([]Row, len(entries))
	for i, e := range entries {
		sentences := e.Sentences
		if b.MaxSentences > 0 && len(sentences) > b.MaxSentences {
			sentences = sentences[:b.MaxSentences]
		}
		rows[i] = Row{Lemma: e.Lemma, Count: e.Count, Sentences: sentences}
		if d, ok := dict.Lookup(e.Lemma); ok {
			rows[i].Definition = d.Gloss
			rows[i].Hanja = d.Hanja
		}
	}
	return rows
}

// Writer renders rows to an output.
type Writer interface {
	Write(rows []Row) error
}

// NewWriter returns the writer for format. sep joins sentences in
// delimited formats; empty selects DefaultSeparator.
func NewWriter(format string, w io.Writer, sep string) (Writer, error) {
	switch strings.ToLower(format) {
	case "csv", "":
		return NewCSVWriter(w, ',', sep), nil
	case "tsv":
		return NewCSVWriter(w, '\t', sep), nil
	case "json":
		return NewJSONWriter(w), nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// CSVWriter writes a header row followed by one record per row.
type CSVWriter struct {
	w   *csv.Writer
	sep string
}

// NewCSVWriter returns a delimited writer using comma as field delimiter.
func NewCSVWriter(w io.Writer, comma rune, sep string) *CSVWriter {
	if sep == "" {
		sep = DefaultSeparator
	}
	cw := csv.NewWriter(w)
	cw.Comma = comma
	return &CSVWriter{w: cw, sep: sep}
}

// Write renders rows with a header.
func (c *CSVWriter) Write(rows []Row) error {
	if err := c.w.Write(Header); err != nil {
		return errors.Wrap(err, "write header")
	}
	for _, r := range rows {
		rec := []string{
			r.Lemma,
			strconv.Itoa(r.Count),
			strings.Join(r.Sentences, c.sep),
			r.Definition,
			r.Hanja,
		}
		if err := c.w.Write(rec); err != nil {
			return errors.Wrapf(err, "write %q", r.Lemma)
		}
	}
	c.w.Flush()
	return errors.Wrap(c.w.Error(), "flush")
}

// JSONWriter writes rows as an indented JSON array.
type JSONWriter struct {
	w io.Writer
}

// NewJSONWriter returns a JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// Write renders rows. An empty row set is written as [].
func (j *JSONWriter) Write(rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	data, err := sonic.ConfigStd.MarshalIndent(rows, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal rows")
	}
	data = append(data, '\n')
	if _, err := j.w.Write(data); err != nil {
		return errors.Wrap(err, "write rows")
	}
	return nil
}
