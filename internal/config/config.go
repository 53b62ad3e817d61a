// Package config loads kovocab settings from flags, environment and an
// optional YAML file, in that order of precedence.
package config

import (
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/az-ai-labs/ko-lang-nlp/report"
)

const (
	// EnvPrefix prefixes every environment variable (KOVOCAB_FORMAT...).
	EnvPrefix = "KOVOCAB"
	// FileName is the config file looked up in the home directory.
	FileName = ".kovocab"
)

// Keys.
const (
	KeyInput        = "input"
	KeyOutput       = "output"
	KeyFormat       = "format"
	KeyColumn       = "column"
	KeyInputFormat  = "input-format"
	KeyDict         = "dict"
	KeyBuiltinDict  = "builtin-dict"
	KeyState        = "state"
	KeySeparator    = "separator"
	KeyMaxSentences = "max-sentences"
	KeyLogLevel     = "log-level"
	KeySplitJoined  = "split-joined"
)

// Input formats.
const (
	InputCSV   = "csv"
	InputLines = "lines"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid setting")

// Config is the resolved configuration of one run.
type Config struct {
	Input        string   `mapstructure:"input"`
	Output       string   `mapstructure:"output"`
	Format       string   `mapstructure:"format"`
	Columns      []string `mapstructure:"column"`
	InputFormat  string   `mapstructure:"input-format"`
	Dict         string   `mapstructure:"dict"`
	BuiltinDict  bool     `mapstructure:"builtin-dict"`
	State        string   `mapstructure:"state"`
	Separator    string   `mapstructure:"separator"`
	MaxSentences int      `mapstructure:"max-sentences"`
	LogLevel     string   `mapstructure:"log-level"`
	SplitJoined  bool     `mapstructure:"split-joined"`
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyFormat, "csv")
	v.SetDefault(KeyColumn, []string{"번역", "translation"})
	v.SetDefault(KeyInputFormat, "")
	v.SetDefault(KeyBuiltinDict, true)
	v.SetDefault(KeySeparator, report.DefaultSeparator)
	v.SetDefault(KeyMaxSentences, 0)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeySplitJoined, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every flag in fs to the key of the same name.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	return errors.Wrap(v.BindPFlags(fs), "bind flags")
}

// ReadFile reads the config file at path. An empty path looks for
// $HOME/.kovocab.{yaml,yml,json,toml}; a missing default file is not an
// error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return errors.Wrapf(err, "expand %s", path)
		}
		v.SetConfigFile(expanded)
		return errors.Wrapf(v.ReadInConfig(), "read config %s", expanded)
	}

	home, err := homedir.Dir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(home)
	v.SetConfigName(FileName)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(err, "read config")
	}
	return nil
}

// Load resolves and validates the configuration. Paths are expanded with
// the home directory, and an empty input format is inferred from the input
// file extension.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}

	for _, p := range []*string{&c.Input, &c.Output, &c.Dict, &c.State} {
		if *p == "" || *p == "-" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return Config{}, errors.Wrapf(err, "expand %s", *p)
		}
		*p = expanded
	}

	c.Format = strings.ToLower(c.Format)
	if !slices.Contains(report.Formats, c.Format) {
		return Config{}, errors.Wrapf(ErrInvalid, "format %q (want one of %s)", c.Format, strings.Join(report.Formats, ", "))
	}

	c.InputFormat = strings.ToLower(c.InputFormat)
	if c.InputFormat == "" {
		c.InputFormat = inferInputFormat(c.Input)
	}
	if c.InputFormat != InputCSV && c.InputFormat != InputLines {
		return Config{}, errors.Wrapf(ErrInvalid, "input-format %q (want csv or lines)", c.InputFormat)
	}

	if c.MaxSentences < 0 {
		return Config{}, errors.Wrapf(ErrInvalid, "max-sentences %d", c.MaxSentences)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return Config{}, err
	}
	return c, nil
}

func inferInputFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text":
		return InputLines
	default:
		return InputCSV
	}
}

// Level returns the configured log level.
func (c Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, errors.Wrapf(ErrInvalid, "log-level %q", s)
	}
	return l, nil
}
