package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevelAliases(t *testing.T) {
	cases := map[string]zerolog.Level{
		"diagnostics": zerolog.TraceLevel,
		" DEBUG ":     zerolog.DebugLevel,
		"warning":     zerolog.WarnLevel,
		"off":         zerolog.Disabled,
	}
	for raw, want := range cases {
		got, ok := ParseLevel(raw)
		if !ok || got != want {
			t.Fatalf("%q: expected %v, got %v ok=%v", raw, want, got, ok)
		}
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Fatalf("expected unknown level to be rejected")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogTimestamp, "false")
	t.Setenv(EnvLogJSON, "true")
	t.Setenv(EnvLogNoColor, "not-a-bool")
	cfg := DefaultConfig(ProfileRuntime)
	ApplyEnv(&cfg)
	if cfg.Level != zerolog.ErrorLevel {
		t.Fatalf("unexpected level: %v", cfg.Level)
	}
	if cfg.Timestamp {
		t.Fatalf("expected timestamp disabled")
	}
	if !cfg.JSON {
		t.Fatalf("expected json enabled")
	}
	if cfg.NoColor {
		t.Fatalf("expected invalid nocolor value to be ignored")
	}
}

func TestApplyEnvKeepsDefaultOnInvalidBool(t *testing.T) {
	t.Setenv(EnvLogTimestamp, "sometimes")
	t.Setenv(EnvLogNoColor, "1")
	cfg := DefaultConfig(ProfileRuntime)
	ApplyEnv(&cfg)
	if !cfg.Timestamp {
		t.Fatalf("expected runtime timestamp default to survive invalid value")
	}
	if !cfg.NoColor {
		t.Fatalf("expected nocolor enabled")
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{App: "skemadump", Level: zerolog.InfoLevel, JSON: true, Out: &buf})
	logger.Debug().Msg("hidden")
	logger.Info().Int("lessons", 3).Msg("decoded")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked: %s", out)
	}
	if !strings.Contains(out, `"app":"skemadump"`) || !strings.Contains(out, `"lessons":3`) {
		t.Fatalf("unexpected output: %s", out)
	}
}
