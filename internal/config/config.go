package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

const (
	OutputText    = "text"
	OutputJSON    = "json"
	OutputMsgpack = "msgpack"
)

// DumpConfig drives cmd/skemadump.
type DumpConfig struct {
	Location string
	MaxDepth int
	Mode     string
	Output   string
	Types    []TypeConfig
}

// TypeConfig extends the type registry: either a built-in decoder name or an
// alias of an already registered class.
type TypeConfig struct {
	Class   string `toml:"class"`
	Decoder string `toml:"decoder"`
	Alias   string `toml:"alias"`
}

type fileConfig struct {
	Location string       `toml:"location"`
	MaxDepth int          `toml:"max_depth"`
	Mode     string       `toml:"mode"`
	Output   string       `toml:"output"`
	Types    []TypeConfig `toml:"types"`
}

func DefaultDumpConfig() DumpConfig {
	return DumpConfig{
		Location: "UTC",
		MaxDepth: 512,
		Mode:     "schedule",
		Output:   OutputText,
	}
}

// LoadDumpConfig overlays the keys present in path onto DefaultDumpConfig.
func LoadDumpConfig(path string) (DumpConfig, error) {
	cfg := DefaultDumpConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return DumpConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return DumpConfig{}, fmt.Errorf("config parse failed (%s): unknown key %s", path, undecoded[0])
	}

	if meta.IsDefined("location") {
		cfg.Location = strings.TrimSpace(raw.Location)
	}
	if meta.IsDefined("max_depth") {
		cfg.MaxDepth = raw.MaxDepth
	}
	if meta.IsDefined("mode") {
		cfg.Mode = strings.ToLower(strings.TrimSpace(raw.Mode))
	}
	if meta.IsDefined("output") {
		cfg.Output = strings.ToLower(strings.TrimSpace(raw.Output))
	}
	if meta.IsDefined("types") {
		cfg.Types = normalizeTypes(raw.Types)
	}

	if err := ValidateDumpConfig(cfg); err != nil {
		return DumpConfig{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func ValidateDumpConfig(cfg DumpConfig) error {
	if _, err := time.LoadLocation(cfg.Location); err != nil {
		return fmt.Errorf("location %q: %w", cfg.Location, err)
	}
	if cfg.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", cfg.MaxDepth)
	}
	switch cfg.Mode {
	case "schedule", "assignments", "graph":
	default:
		return fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	switch cfg.Output {
	case OutputText, OutputJSON, OutputMsgpack:
	default:
		return fmt.Errorf("unknown output %q", cfg.Output)
	}
	for i, tc := range cfg.Types {
		if err := ValidateTypeEntry(tc); err != nil {
			return fmt.Errorf("types[%d] invalid: %w", i, err)
		}
	}
	return nil
}

func ValidateTypeEntry(tc TypeConfig) error {
	if tc.Class == "" {
		return fmt.Errorf("class is required")
	}
	if (tc.Decoder == "") == (tc.Alias == "") {
		return fmt.Errorf("exactly one of decoder or alias is required for %s", tc.Class)
	}
	return nil
}

// ResolveLocation loads the configured time zone.
func (c DumpConfig) ResolveLocation() (*time.Location, error) {
	return time.LoadLocation(c.Location)
}

func normalizeTypes(in []TypeConfig) []TypeConfig {
	out := make([]TypeConfig, 0, len(in))
	for _, tc := range in {
		out = append(out, TypeConfig{
			Class:   strings.TrimSpace(tc.Class),
			Decoder: strings.ToLower(strings.TrimSpace(tc.Decoder)),
			Alias:   strings.TrimSpace(tc.Alias),
		})
	}
	return out
}
