package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/az-ai-labs/ko-lang-nlp/internal/config"
	"github.com/az-ai-labs/ko-lang-nlp/lookup"
	"github.com/az-ai-labs/ko-lang-nlp/pipeline"
	"github.com/az-ai-labs/ko-lang-nlp/report"
	"github.com/az-ai-labs/ko-lang-nlp/source"
	"github.com/az-ai-labs/ko-lang-nlp/vocab"
)

func newExtractCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Build a vocabulary list from a CSV or text file",
		Long: `extract reads one sentence per CSV row (or per line with --input-format lines),
reduces every word to its dictionary form and writes one row per lemma,
most frequent first.

With --state the vocabulary of earlier runs is loaded first and the
updated vocabulary is saved back, so several episodes add up.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.extract(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringP(config.KeyInput, "i", "", "input file, - or empty for stdin")
	f.StringP(config.KeyOutput, "o", "", "output file, - or empty for stdout")
	f.StringP(config.KeyFormat, "f", "csv", "output format: csv, tsv or json")
	f.StringSlice(config.KeyColumn, source.DefaultColumns, "sentence column names, first present wins")
	f.String(config.KeyInputFormat, "", "input format: csv or lines (default from the input extension)")
	f.String(config.KeyDict, "", "dictionary file, .json or tab separated")
	f.Bool(config.KeyBuiltinDict, true, "look up lemmas missing from --dict in the built-in glossary")
	f.String(config.KeyState, "", "vocabulary state file to continue from and update")
	f.String(config.KeySeparator, report.DefaultSeparator, "separator between sentences in csv and tsv output")
	f.Int(config.KeyMaxSentences, 0, "sentences listed per lemma, 0 lists all")
	return cmd
}

func (a *app) extract(stdin io.Reader, stdout io.Writer) error {
	c := a.cfg

	agg, err := a.loadState(c.State)
	if err != nil {
		return err
	}
	dict, err := dictionary(c)
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(c.Input, stdin)
	if err != nil {
		return err
	}
	defer closeIn()

	src, err := newSource(c, in)
	if err != nil {
		return errors.Wrapf(err, "open %s", displayName(c.Input))
	}

	ext := pipeline.New(
		pipeline.WithLogger(a.log),
		pipeline.WithAggregator(agg),
		pipeline.WithStripper(a.stripper()),
	)
	st, err := ext.Run(src)
	if err != nil {
		return errors.Wrapf(err, "read %s", displayName(c.Input))
	}
	a.log.Info("extracted",
		"rows", st.Rows,
		"skipped", st.Skipped,
		"tokens", st.Tokens,
		"compound", st.Compound,
		"lemmas", agg.Len(),
		"sentences", agg.SentenceCount(),
	)

	if c.State != "" {
		if err := a.saveState(agg, c.State); err != nil {
			return err
		}
	}

	rows := report.Builder{Dict: dict, MaxSentences: c.MaxSentences}.Build(agg.Snapshot())
	return writeReport(c, rows, stdout)
}

func newSource(c config.Config, r io.Reader) (source.Source, error) {
	if c.InputFormat == config.InputLines {
		return source.NewLines(r), nil
	}
	return source.NewCSV(r, c.Columns...)
}

// dictionary chains the user dictionary before the built-in glossary.
func dictionary(c config.Config) (lookup.Dictionary, error) {
	var chain lookup.Chain
	if c.Dict != "" {
		m, err := lookup.Open(c.Dict)
		if err != nil {
			return nil, err
		}
		chain = append(chain, m)
	}
	if c.BuiltinDict {
		chain = append(chain, lookup.Builtin())
	}
	if len(chain) == 0 {
		return lookup.None, nil
	}
	return chain, nil
}

// loadState returns the aggregator saved at path, or a fresh one when path
// is empty or does not exist yet.
func (a *app) loadState(path string) (*vocab.Aggregator, error) {
	if path == "" {
		return vocab.New(), nil
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		a.log.Info("new state", "path", path)
		return vocab.New(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "open state")
	}
	defer f.Close()

	agg, meta, err := vocab.ReadState(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load state %s", path)
	}
	a.log.Info("loaded state", "path", path, "state", meta.ULID.String(), "lemmas", agg.Len())
	return agg, nil
}

// saveState writes agg next to path and renames it into place.
func (a *app) saveState(agg *vocab.Aggregator, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".kovocab-state-*")
	if err != nil {
		return errors.Wrap(err, "create state")
	}
	meta, err := agg.WriteState(tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "write state")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "save state")
	}
	a.log.Info("saved state", "path", path, "state", meta.ULID.String(), "parents", len(meta.Parents))
	return nil
}

func writeReport(c config.Config, rows []report.Row, stdout io.Writer) (err error) {
	out := stdout
	if c.Output != "" && c.Output != "-" {
		f, cerr := os.Create(c.Output)
		if cerr != nil {
			return errors.Wrap(cerr, "create output")
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = errors.Wrap(cerr, "close output")
			}
		}()
		out = f
	}

	w, err := report.NewWriter(c.Format, out, c.Separator)
	if err != nil {
		return err
	}
	return errors.Wrapf(w.Write(rows), "write %s", displayName(c.Output))
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open input")
	}
	return f, func() { f.Close() }, nil
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "stdio"
	}
	return path
}
