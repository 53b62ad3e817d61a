package main

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/oklog/ulid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/az-ai-labs/ko-lang-nlp/internal/config"
	"github.com/az-ai-labs/ko-lang-nlp/morph"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	log     *slog.Logger
	runID   ulid.ULID
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           "kovocab",
		Short:         "Extract Korean vocabulary from subtitle translations",
		Long:          `kovocab reads Korean sentences, strips particles and verb endings, and lists every dictionary form with its frequency and example sentences.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default $HOME/.kovocab.yaml)")
	root.PersistentFlags().String(config.KeyLogLevel, "info", "log level: debug, info, warn or error")
	root.PersistentFlags().Bool(config.KeySplitJoined, false, "strip each part of a joined token (한국-일본) separately")

	root.AddCommand(newExtractCmd(a), newStripCmd(a))
	return root
}

// setup resolves the configuration of the command about to run and builds
// its logger.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}
	if err := config.ReadFile(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	now := time.Now()
	a.runID = ulid.MustNew(ulid.Timestamp(now), rand.New(rand.NewSource(now.UnixNano())))
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()})
	a.log = slog.New(h).With("run", a.runID.String())
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug("config file", "path", used)
	}
	return nil
}

// stripper returns the stripper selected by the configuration.
func (a *app) stripper() *morph.Stripper {
	if a.cfg.SplitJoined {
		return morph.NewStripper(nil, morph.SplitJoined())
	}
	return morph.Default()
}
