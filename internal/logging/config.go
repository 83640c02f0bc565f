package logging

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel     = "SKEMAWIRE_LOG_LEVEL"
	EnvLogTimestamp = "SKEMAWIRE_LOG_TIMESTAMP"
	EnvLogNoColor   = "SKEMAWIRE_LOG_NOCOLOR"
	EnvLogJSON      = "SKEMAWIRE_LOG_JSON"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Config is the resolved logger setup.
type Config struct {
	App       string
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	JSON      bool
	Out       io.Writer
}

type envOverrides struct {
	Level     string `env:"SKEMAWIRE_LOG_LEVEL"`
	Timestamp *bool  `env:"SKEMAWIRE_LOG_TIMESTAMP"`
	NoColor   *bool  `env:"SKEMAWIRE_LOG_NOCOLOR"`
	JSON      *bool  `env:"SKEMAWIRE_LOG_JSON"`
}

var configureOnce sync.Once

func ConfigureRuntime() {
	Configure(ProfileRuntime)
}

func ConfigureTests() {
	Configure(ProfileTest)
}

// Configure installs the global zerolog logger once per process.
func Configure(profile Profile) {
	configureOnce.Do(func() {
		cfg := DefaultConfig(profile)
		ApplyEnv(&cfg)
		zerolog.SetGlobalLevel(cfg.Level)
		log.Logger = New(cfg)
	})
}

func DefaultConfig(profile Profile) Config {
	cfg := Config{App: "skemawire", Out: os.Stderr}
	switch profile {
	case ProfileTest:
		cfg.Level = zerolog.DebugLevel
		cfg.Timestamp = false
	default:
		cfg.Level = zerolog.InfoLevel
		cfg.Timestamp = true
	}
	return cfg
}

// ApplyEnv overlays SKEMAWIRE_LOG_* variables; unparseable values are ignored.
func ApplyEnv(cfg *Config) {
	var raw envOverrides
	if err := env.Parse(&raw); err != nil {
		raw.dropInvalid(err)
	}
	if lvl, ok := ParseLevel(raw.Level); ok {
		cfg.Level = lvl
	}
	if raw.Timestamp != nil {
		cfg.Timestamp = *raw.Timestamp
	}
	if raw.NoColor != nil {
		cfg.NoColor = *raw.NoColor
	}
	if raw.JSON != nil {
		cfg.JSON = *raw.JSON
	}
}

// dropInvalid clears fields env allocated but could not parse.
func (o *envOverrides) dropInvalid(err error) {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return
	}
	for _, e := range agg.Errors {
		var pe env.ParseError
		if !errors.As(e, &pe) {
			continue
		}
		switch pe.Name {
		case "Timestamp":
			o.Timestamp = nil
		case "NoColor":
			o.NoColor = nil
		case "JSON":
			o.JSON = nil
		}
	}
}

// New builds a logger without touching global state.
func New(cfg Config) zerolog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	if !cfg.JSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    cfg.NoColor,
			TimeFormat: time.RFC3339,
		}
	}
	ctx := zerolog.New(out).Level(cfg.Level).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.App != "" {
		ctx = ctx.Str("app", cfg.App)
	}
	return ctx.Logger()
}

func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace", "diagnostics":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none", "inactive":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}
