package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/skemawire/internal/protocol/gwt"
	"github.com/danmuck/skemawire/internal/testutil/testlog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDumpConfigDefaults(t *testing.T) {
	testlog.Start(t)
	cfg, err := LoadDumpConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := DefaultDumpConfig()
	if cfg.Location != def.Location || cfg.MaxDepth != def.MaxDepth || cfg.Mode != def.Mode || cfg.Output != def.Output {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadDumpConfigOverrides(t *testing.T) {
	testlog.Start(t)
	cfg, err := LoadDumpConfig(writeConfig(t, `
max_depth = 64
mode = " Assignments "
output = "json"

[[types]]
class = "x.Renamed"
alias = "dk.uddata.model.skema.SkemaBegivenhed"
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxDepth != 64 || cfg.Mode != "assignments" || cfg.Output != OutputJSON {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.Location != "UTC" {
		t.Fatalf("expected default location, got %q", cfg.Location)
	}
	if len(cfg.Types) != 1 || cfg.Types[0].Alias != "dk.uddata.model.skema.SkemaBegivenhed" {
		t.Fatalf("unexpected types: %+v", cfg.Types)
	}
}

func TestLoadDumpConfigRejects(t *testing.T) {
	testlog.Start(t)
	cases := map[string]string{
		"mode":      `mode = "calendar"`,
		"depth":     `max_depth = 0`,
		"output":    `output = "xml"`,
		"unknown":   `colour = "red"`,
		"type both": "[[types]]\nclass = \"a.B\"\ndecoder = \"event\"\nalias = \"c.D\"",
		"type none": "[[types]]\nclass = \"a.B\"",
		"location":  `location = "Mars/Olympus"`,
	}
	for name, body := range cases {
		if _, err := LoadDumpConfig(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestRegistryAppliesTypes(t *testing.T) {
	testlog.Start(t)
	reg, err := Registry([]TypeConfig{
		{Class: "x.MinuteEvent", Decoder: "event_minutes"},
		{Class: "x.Room", Alias: gwt.ClassRoom},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if e, ok := reg.Lookup("x.MinuteEvent/1"); !ok || e.ID != gwt.TypeEvent {
		t.Fatalf("expected minute event entry, got %+v", e)
	}
	if e, ok := reg.Lookup("x.Room"); !ok || e.ID != gwt.TypeRoom {
		t.Fatalf("expected room alias, got %+v", e)
	}

	if _, err := Registry([]TypeConfig{{Class: "x.A", Decoder: "nope"}}); err == nil {
		t.Fatalf("expected unknown decoder error")
	}
	if _, err := Registry([]TypeConfig{{Class: "x.A", Alias: "x.Missing"}}); err == nil {
		t.Fatalf("expected unknown alias error")
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "skemadump.toml")
	if err := WriteTemplate(path, "skemadump", false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, "skemadump", false); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected existing file error, got %v", err)
	}
	cfg, err := LoadDumpConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if _, err := cfg.DecoderOptions(); err != nil {
		t.Fatalf("template decoder options: %v", err)
	}
	if _, err := Template("ghost"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}
