// Command blockpy runs the analyzer over a pre-built AST fixture and
// renders the resulting report, either as plain text on a terminal or as
// JSON when piped or given --json — the terminal check uses
// isatty.IsTerminal/IsCygwinTerminal. Its `history` subcommand lists past
// runs recorded with --history, via internal/store's Recent.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/jingwhale/blockpy/internal/analyzer"
	"github.com/jingwhale/blockpy/internal/ast"
	"github.com/jingwhale/blockpy/internal/config"
	"github.com/jingwhale/blockpy/internal/diagnostics"
	"github.com/jingwhale/blockpy/internal/report"
	"github.com/jingwhale/blockpy/internal/store"
)

// defaultHistoryFile is where `blockpy history` looks when --history is
// omitted. The analyze path records a run only when --history is given.
const defaultHistoryFile = "blockpy-history.db"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) > 0 && args[0] == "history" {
		return runHistory(args[1:])
	}

	opts, fail := parseArgs(args)
	if fail != "" {
		fmt.Fprintln(os.Stderr, fail)
		return 2
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blockpy: loading config: %v\n", err)
		return 1
	}

	data, err := os.ReadFile(opts.astPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blockpy: reading %s: %v\n", opts.astPath, err)
		return 1
	}
	mod, err := ast.DecodeModule(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blockpy: decoding ast: %v\n", err)
		return 1
	}

	start := time.Now()
	rep := analyzer.Analyze(mod, analyzer.ConfigFrom(cfg))
	elapsed := time.Since(start)

	if opts.historyPath != "" {
		if err := recordHistory(opts.historyPath, opts.astPath, rep); err != nil {
			fmt.Fprintf(os.Stderr, "blockpy: recording history: %v\n", err)
		}
	}

	if opts.jsonOut || !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		renderJSON(rep)
	} else {
		renderText(rep, elapsed)
	}

	if !rep.Success {
		return 1
	}
	if cfg.Strict {
		for _, issues := range rep.Issues {
			if len(issues) > 0 {
				return 1
			}
		}
	}
	return 0
}

// runHistory implements the `blockpy history [--history FILE] [-n N]`
// subcommand (SPEC_FULL.md 4.J): open the store and render store.Recent(n).
func runHistory(args []string) int {
	historyPath := defaultHistoryFile
	n := 20
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--history":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "blockpy: --history requires a path")
				return 2
			}
			historyPath = args[i]
		case "-n":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "blockpy: -n requires a count")
				return 2
			}
			count, err := strconv.Atoi(args[i])
			if err != nil {
				fmt.Fprintf(os.Stderr, "blockpy: -n: %v\n", err)
				return 2
			}
			n = count
		default:
			fmt.Fprintf(os.Stderr, "blockpy: unrecognized history argument %q\n", args[i])
			return 2
		}
	}

	st, err := store.Open(historyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blockpy: opening history: %v\n", err)
		return 1
	}
	defer st.Close()

	runs, err := st.Recent(n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blockpy: reading history: %v\n", err)
		return 1
	}
	renderHistory(runs)
	return 0
}

func renderHistory(runs []store.Run) {
	if len(runs) == 0 {
		fmt.Println("blockpy: no recorded runs")
		return
	}
	now := time.Now()
	for _, r := range runs {
		status := "ok"
		if !r.Success {
			status = "failed"
		}
		fmt.Printf("  %s  %-6s %s issues  %s  (%s)\n",
			r.RunID, status, humanize.Comma(int64(r.IssueCount)), r.File,
			humanize.RelTime(r.AnalyzedAt, now, "ago", "from now"))
	}
}

func recordHistory(path, file string, rep *report.Report) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Record(uuid.NewString(), file, time.Now(), rep)
}

type options struct {
	astPath     string
	configPath  string
	historyPath string
	jsonOut     bool
}

func parseArgs(args []string) (options, string) {
	opts := options{configPath: config.DefaultConfigFile}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--json":
			opts.jsonOut = true
		case "--config":
			i++
			if i >= len(args) {
				return opts, "blockpy: --config requires a path"
			}
			opts.configPath = args[i]
		case "--history":
			i++
			if i >= len(args) {
				return opts, "blockpy: --history requires a path"
			}
			opts.historyPath = args[i]
		default:
			opts.astPath = args[i]
		}
	}
	if opts.astPath == "" {
		return opts, "usage: blockpy [--json] [--config FILE] [--history FILE] AST_JSON_FILE\n" +
			"       blockpy history [--history FILE] [-n N]"
	}
	return opts, ""
}

func renderJSON(rep *report.Report) {
	out := map[string]interface{}{
		"success": rep.Success,
	}
	if rep.Error != nil {
		out["error"] = rep.Error.Error()
	}
	issues := map[string]int{}
	for kind, data := range rep.Issues {
		issues[string(kind)] = len(data)
	}
	out["issues"] = issues
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}

func renderText(rep *report.Report, elapsed time.Duration) {
	if !rep.Success {
		fmt.Printf("analysis failed: %v\n", rep.Error)
		return
	}
	total := 0
	for _, issues := range rep.Issues {
		total += len(issues)
	}
	fmt.Printf("blockpy: %s issues across %s variables (%s)\n",
		humanize.Comma(int64(total)),
		humanize.Comma(int64(len(rep.Variables))),
		humanize.RelTime(time.Now().Add(-elapsed), time.Now(), "", ""))
	for _, kind := range diagnostics.AllKinds {
		for _, d := range rep.Issues[kind] {
			fmt.Printf("  [%s] %s %s\n", kind, d.Name, d.Position)
		}
	}
}
