package report

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/az-ai-labs/ko-lang-nlp/lookup"
	"github.com/az-ai-labs/ko-lang-nlp/vocab"
)

var sampleEntries = []vocab.Entry{
	{Lemma: "것", Count: 2, Sentences: []string{"무서운 것", "살 것이고"}},
	{Lemma: "영혼", Count: 1, Sentences: []string{"영혼은 명계에서"}},
}

var sampleDict = lookup.Map{
	"영혼": {Gloss: "soul", Hanja: "靈魂"},
}

func TestBuild(t *testing.T) {
	rows := Builder{Dict: sampleDict}.Build(sampleEntries)
	if len(rows) != 2 {
		t.Fatalf("Build() = %d rows, want 2", len(rows))
	}
	if rows[0].Lemma != "것" || rows[0].Definition != "" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Definition != "soul" || rows[1].Hanja != "靈魂" {
		t.Errorf("row 1 = %+v, want dictionary data", rows[1])
	}
}

func TestBuildNoDict(t *testing.T) {
	rows := Builder{}.Build(sampleEntries)
	for _, r := range rows {
		if r.Definition != "" || r.Hanja != "" {
			t.Errorf("row %q has dictionary data without a dictionary", r.Lemma)
		}
	}
	if got := (Builder{}).Build(nil); got != nil {
		t.Errorf("Build(nil) = %v, want nil", got)
	}
}

func TestBuildMaxSentences(t *testing.T) {
	rows := Builder{MaxSentences: 1}.Build(sampleEntries)
	if got := rows[0].Sentences; len(got) != 1 || got[0] != "무서운 것" {
		t.Errorf("Sentences = %q, want the first only", got)
	}
	if len(sampleEntries[0].Sentences) != 2 {
		t.Error("Build modified its input")
	}
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter("csv", &buf, "")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write(Builder{Dict: sampleDict}.Build(sampleEntries)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "lemma,count,sentences,definition,hanja\n" +
		"것,2,무서운 것 | 살 것이고,,\n" +
		"영혼,1,영혼은 명계에서,soul,靈魂\n"
	if got := buf.String(); got != want {
		t.Errorf("csv =\n%s\nwant\n%s", got, want)
	}
}

func TestTSVWriterSeparator(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter("TSV", &buf, "; ")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write(Builder{}.Build(sampleEntries[:1])); err != nil {
		t.Fatalf("Write: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 || lines[1] != "것\t2\t무서운 것; 살 것이고\t\t" {
		t.Errorf("tsv = %q", buf.String())
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter("json", &buf, "")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	rows := Builder{Dict: sampleDict}.Build(sampleEntries)
	if err := w.Write(rows); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var got []Row
	if err := sonic.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if len(got) != 2 || got[1].Hanja != "靈魂" || got[0].Sentences[1] != "살 것이고" {
		t.Errorf("decoded = %+v", got)
	}
}

func TestJSONWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONWriter(&buf).Write(nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("empty output = %q, want []", got)
	}
}

func TestNewWriterUnknown(t *testing.T) {
	_, err := NewWriter("xml", &bytes.Buffer{}, "")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("NewWriter(xml) error = %v, want ErrUnknownFormat", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("pipe closed") }

func TestWriterErrors(t *testing.T) {
	rows := Builder{}.Build(sampleEntries)
	for _, format := range Formats {
		w, err := NewWriter(format, failingWriter{}, "")
		if err != nil {
			t.Fatalf("NewWriter(%s): %v", format, err)
		}
		if err := w.Write(rows); err == nil {
			t.Errorf("%s Write to a failing writer = nil error", format)
		}
	}
}

func ExampleCSVWriter_Write() {
	rows := Builder{Dict: sampleDict}.Build(sampleEntries)
	if err := NewCSVWriter(os.Stdout, ',', DefaultSeparator).Write(rows); err != nil {
		fmt.Println(err)
	}
	// Output:
	// lemma,count,sentences,definition,hanja
	// 것,2,무서운 것 | 살 것이고,,
	// 영혼,1,영혼은 명계에서,soul,靈魂
}
