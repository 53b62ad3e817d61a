// Package pipeline wires the sentence source, tokenizer, stripper and
// aggregator into one extraction pass.
//
// Each sentence is prepared (validated, NFC composed, trimmed), split into
// tokens, and every token is trimmed and stripped to lemmas. Each lemma is
// recorded against the original sentence text. Sentences are processed
// strictly in source order.
package pipeline

import (
	"errors"
	"io"
	"log/slog"

	"github.com/az-ai-labs/ko-lang-nlp/hangul"
	"github.com/az-ai-labs/ko-lang-nlp/morph"
	"github.com/az-ai-labs/ko-lang-nlp/source"
	"github.com/az-ai-labs/ko-lang-nlp/tokenizer"
	"github.com/az-ai-labs/ko-lang-nlp/vocab"
)

// Stats counts what a pass has seen.
type Stats struct {
	Rows     int `json:"rows"`     // records read, including skipped ones
	Skipped  int `json:"skipped"`  // unreadable records and rejected sentences
	Tokens   int `json:"tokens"`   // non-empty tokens stripped
	Lemmas   int `json:"lemmas"`   // lemma occurrences recorded
	Compound int `json:"compound"` // tokens that yielded several lemmas
}

// Extractor accumulates the vocabulary of the sentences it is given.
// An Extractor is not safe for concurrent use.
type Extractor struct {
	agg      *vocab.Aggregator
	stripper *morph.Stripper
	log      *slog.Logger
	stats    Stats
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger for skipped rows. Nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) { e.log = l }
}

// WithAggregator continues into an existing aggregator, such as one
// restored with vocab.ReadState.
func WithAggregator(a *vocab.Aggregator) Option {
	return func(e *Extractor) { e.agg = a }
}

// WithStripper replaces the default stripper.
func WithStripper(s *morph.Stripper) Option {
	return func(e *Extractor) { e.stripper = s }
}

// New returns an extractor with a fresh aggregator and the default stripper.
func New(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.agg == nil {
		e.agg = vocab.New()
	}
	if e.stripper == nil {
		e.stripper = morph.Default()
	}
	if e.log == nil {
		e.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// Aggregator returns the aggregator the extractor records into.
func (e *Extractor) Aggregator() *vocab.Aggregator {
	return e.agg
}

// Stats returns the counters accumulated so far.
func (e *Extractor) Stats() Stats {
	return e.stats
}

// AddSentence records the lemmas of one sentence. A sentence that is not
// valid UTF-8 or is too long returns the error and records nothing.
func (e *Extractor) AddSentence(text string) error {
	prepared, err := tokenizer.Prepare(text)
	if err != nil {
		return err
	}
	for _, tok := range tokenizer.Tokenize(prepared) {
		word := hangul.Trim(tok.Text)
		if word == "" {
			continue
		}
		e.stats.Tokens++
		res := e.stripper.Strip(word)
		if res.IsCompound() {
			e.stats.Compound++
		}
		for _, l := range res.Lemmas {
			e.agg.Record(l.Text, text)
			e.stats.Lemmas++
		}
	}
	return nil
}

// Run reads src to the end. Unreadable records and rejected sentences are
// logged and skipped; any other source error stops the pass and is
// returned with the stats gathered up to that point.
func (e *Extractor) Run(src source.Source) (Stats, error) {
	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			return e.stats, nil
		}
		var rowErr *source.RowError
		if errors.As(err, &rowErr) {
			e.stats.Rows++
			e.stats.Skipped++
			e.log.Warn("skip unreadable row", "row", rowErr.Row, "line", rowErr.Line, "err", rowErr.Err)
			continue
		}
		if err != nil {
			return e.stats, err
		}

		e.stats.Rows++
		if err := e.AddSentence(rec.Text); err != nil {
			e.stats.Skipped++
			e.log.Warn("skip sentence", "row", rec.Row, "err", err)
			continue
		}
		e.log.Debug("sentence", "row", rec.Row, "lemmas", e.agg.Len())
	}
}
