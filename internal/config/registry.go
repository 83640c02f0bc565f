package config

import (
	"fmt"

	"github.com/danmuck/skemawire/internal/protocol/gwt"
	"github.com/danmuck/skemawire/internal/skema"
)

// Registry builds the default registry plus the configured extensions.
// A decoder entry for an already known class replaces its routine.
func Registry(types []TypeConfig) (*gwt.Registry, error) {
	reg := gwt.DefaultRegistry()
	for i, tc := range types {
		if tc.Alias != "" {
			if err := reg.Alias(tc.Class, tc.Alias); err != nil {
				return nil, fmt.Errorf("types[%d]: %w", i, err)
			}
			continue
		}
		id, fn, ok := gwt.RoutineByName(tc.Decoder)
		if !ok {
			return nil, fmt.Errorf("types[%d]: unknown decoder %q for %s", i, tc.Decoder, tc.Class)
		}
		reg.Replace(tc.Class, id, fn)
	}
	return reg, nil
}

// DecoderOptions maps the config onto skema.Decoder options.
func (c DumpConfig) DecoderOptions() ([]skema.Option, error) {
	loc, err := c.ResolveLocation()
	if err != nil {
		return nil, err
	}
	reg, err := Registry(c.Types)
	if err != nil {
		return nil, err
	}
	return []skema.Option{
		skema.WithRegistry(reg),
		skema.WithLocation(loc),
		skema.WithMaxDepth(c.MaxDepth),
	}, nil
}
