package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/danmuck/skemawire/internal/config"
	"github.com/danmuck/skemawire/internal/logging"
	"github.com/danmuck/skemawire/internal/protocol"
	"github.com/danmuck/skemawire/internal/protocol/gwt"
	"github.com/danmuck/skemawire/internal/skema"
)

func main() {
	logging.ConfigureRuntime()
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run decodes one saved response (file argument or stdin) and prints it.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("skemadump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "optional TOML config (see configgen -kind skemadump)")
	mode := fs.String("mode", "", "schedule|assignments|graph (overrides config)")
	output := fs.String("output", "", "text|json|msgpack (overrides config)")
	location := fs.String("location", "", "IANA zone for wall-clock dates (overrides config)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath, *mode, *output, *location)
	if err != nil {
		fmt.Fprintf(stderr, "skemadump: %v\n", err)
		return 2
	}

	raw, err := readInput(fs.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "skemadump: %v\n", err)
		return 1
	}

	opts, err := cfg.DecoderOptions()
	if err != nil {
		fmt.Fprintf(stderr, "skemadump: %v\n", err)
		return 2
	}
	dec := skema.NewDecoder(opts...)

	var result any
	switch skema.Mode(cfg.Mode) {
	case skema.ModeAssignments:
		result, err = dec.DecodeAssignments(raw)
	case skema.ModeGraph:
		var g *gwt.Graph
		if g, err = dec.DecodeGraph(raw); err == nil {
			result = summarize(g)
		}
	default:
		result, err = dec.DecodeSchedule(raw)
	}
	if err != nil {
		fmt.Fprintf(stderr, "skemadump: %s: %v\n", protocol.CodeOf(err), err)
		var exc *protocol.ExceptionError
		if errors.As(err, &exc) && len(exc.Strings) > 0 {
			fmt.Fprintf(stderr, "skemadump: server exception: %s\n", strings.Join(exc.Strings, " | "))
		}
		return 1
	}

	if err := write(stdout, cfg.Output, result); err != nil {
		fmt.Fprintf(stderr, "skemadump: %v\n", err)
		return 1
	}
	return 0
}

func write(w io.Writer, format string, result any) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case config.OutputMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(result)
	default:
		printText(w, result)
		return nil
	}
}

func loadConfig(path, mode, output, location string) (config.DumpConfig, error) {
	cfg := config.DefaultDumpConfig()
	if path != "" {
		loaded, err := config.LoadDumpConfig(path)
		if err != nil {
			return config.DumpConfig{}, err
		}
		cfg = loaded
	}
	if mode != "" {
		cfg.Mode = strings.ToLower(mode)
	}
	if output != "" {
		cfg.Output = strings.ToLower(output)
	}
	if location != "" {
		cfg.Location = location
	}
	if err := config.ValidateDumpConfig(cfg); err != nil {
		return config.DumpConfig{}, err
	}
	log.Debug().Str("mode", cfg.Mode).Str("location", cfg.Location).Int("types", len(cfg.Types)).Msg("skemadump config resolved")
	return cfg, nil
}

func readInput(args []string, stdin io.Reader) ([]byte, error) {
	switch len(args) {
	case 0:
		return io.ReadAll(stdin)
	case 1:
		if args[0] == "-" {
			return io.ReadAll(stdin)
		}
		return os.ReadFile(args[0])
	default:
		return nil, fmt.Errorf("expected at most one input file, got %d", len(args))
	}
}

type graphSummary struct {
	Objects  int            `json:"objects"`
	Consumed int            `json:"consumed"`
	Strings  int            `json:"strings"`
	Root     string         `json:"root"`
	Types    map[string]int `json:"types"`
}

func summarize(g *gwt.Graph) graphSummary {
	s := graphSummary{
		Objects:  g.Len(),
		Consumed: g.Consumed,
		Strings:  len(g.Strings),
		Root:     g.TypeOf(g.Root).String(),
		Types:    make(map[string]int),
	}
	for id, n := range g.Counts() {
		s.Types[id.String()] = n
	}
	return s
}

const clock = "2006-01-02 15:04"

func printText(w io.Writer, result any) {
	switch r := result.(type) {
	case []skema.Lesson:
		for _, l := range r {
			fmt.Fprintf(w, "%s-%s  %-24s %-10s rooms=[%s] staff=[%s]\n",
				l.Start.Format(clock), l.End.Format("15:04"), l.Subject, l.ClassName,
				strings.Join(l.Rooms, ", "), strings.Join(l.Staff, ", "))
			if l.Remark != nil {
				fmt.Fprintf(w, "    remark: %s\n", *l.Remark)
			}
			for _, n := range l.Notes {
				fmt.Fprintf(w, "    note %d: %s\n", n.ID, n.Text)
			}
		}
	case []skema.Assignment:
		for _, a := range r {
			state := "open"
			if a.Submitted {
				state = "submitted " + formatTime(a.SubmittedAt)
			}
			fmt.Fprintf(w, "week %-2d %-20s %-30s deadline=%s hours=%.2f/%.2f %s\n",
				a.Week, a.Subject, a.Title, formatTime(a.Deadline), a.SpentHours, a.BudgetHours, state)
		}
	case graphSummary:
		fmt.Fprintf(w, "root=%s objects=%d consumed=%d strings=%d\n", r.Root, r.Objects, r.Consumed, r.Strings)
		names := make([]string, 0, len(r.Types))
		for name := range r.Types {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %-16s %d\n", name, r.Types[name])
		}
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(clock)
}
