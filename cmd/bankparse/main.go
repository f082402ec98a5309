package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/bank-statement-parser/internal/categorize"
	"github.com/FACorreiaa/bank-statement-parser/internal/export"
	"github.com/FACorreiaa/bank-statement-parser/internal/extract"
	"github.com/FACorreiaa/bank-statement-parser/internal/layout"
	"github.com/FACorreiaa/bank-statement-parser/internal/notify"
	"github.com/FACorreiaa/bank-statement-parser/internal/pipeline"
	"github.com/FACorreiaa/bank-statement-parser/pkg/config"
	watch "github.com/FACorreiaa/bank-statement-parser/pkg/cron"
)

// Exit codes: 0 success, 1 processing failure, 2 usage or configuration error.
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return exitUsage
	}

	strictFlag := flag.Bool("strict", cfg.Parser.Strict, "Escalate warnings and reconciliation failures to a nonzero exit")
	verboseFlag := flag.Bool("verbose", cfg.Output.Verbose, "Enable debug logging")
	formatFlag := flag.String("format", cfg.Output.Format, "Output format: json, csv, or xlsx")
	outFlag := flag.String("out", cfg.Output.Path, "Output file path (defaults to stdout for json/csv)")
	reconcileFlag := flag.Bool("reconcile", cfg.Reconcile.Enabled, "Validate statement balance arithmetic and include the report")
	watchFlag := flag.Bool("watch", false, "Watch the input directory and process new PDFs as they arrive")
	scheduleFlag := flag.String("schedule", cfg.Watch.Schedule, "Re-scan schedule in watch mode (cron expression or @every form)")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `bankparse - bank statement PDF parser

Extracts transactions from statement PDFs into structured, deduplicated,
reconciled output. Accepts individual PDFs or directories of them; combined
multi-statement PDFs are split and deduplicated against standalone files.

Usage:
  bankparse [flags] <statement.pdf | directory> [more inputs ...]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  bankparse statements/
  bankparse --strict --reconcile --format=csv --out=txns.csv jan.pdf feb.pdf
  bankparse --watch --schedule="@every 5m" --out=result.json inbox/
`)
	}
	flag.Parse()

	if *versionFlag {
		fmt.Println("bankparse", config.Version)
		return exitOK
	}
	if flag.NArg() == 0 {
		flag.Usage()
		return exitUsage
	}

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	format, err := export.ParseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	if format == export.FormatXLSX && *outFlag == "" {
		fmt.Fprintln(os.Stderr, "xlsx output requires --out")
		return exitUsage
	}

	engine := categorize.NewEngine()
	engine.SetFuzzyThreshold(cfg.Categorize.FuzzyMinScore)

	p := pipeline.New(
		extract.NewPDFExtractor(),
		engine,
		pipeline.Options{
			Layout: layout.Options{
				YTolerance: cfg.Parser.YTolerance,
				SmallGap:   cfg.Parser.SmallGap,
				LargeGap:   cfg.Parser.LargeGap,
			},
			Tolerance: decimal.NewFromFloat(cfg.Reconcile.Tolerance),
			Strict:    *strictFlag,
			Reconcile: *reconcileFlag,
			Version:   config.Version,
		},
		logger,
	)

	if *watchFlag {
		return runWatch(p, format, *outFlag, *scheduleFlag, *strictFlag, cfg, logger)
	}

	paths, err := collectInputs(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "no PDF files found in the given inputs")
		return exitUsage
	}

	result := p.Run(paths)
	if err := writeOutput(result, format, *outFlag); err != nil {
		logger.Error("writing output failed", "error", err)
		return exitFail
	}

	if result.Failed(*strictFlag) {
		for _, v := range result.StrictViolations {
			logger.Warn("strict violation", "detail", v)
		}
		return exitFail
	}
	return exitOK
}

// runWatch processes the inbox on a schedule until SIGINT or SIGTERM. Each
// round rewrites the output with that round's result and, when notification
// is configured, emails the run report.
func runWatch(p *pipeline.Pipeline, format export.Format, out, schedule string, strict bool, cfg *config.Config, logger *slog.Logger) int {
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "watch mode takes exactly one directory")
		return exitUsage
	}
	dir := flag.Arg(0)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "watch mode requires a directory, got %q\n", dir)
		return exitUsage
	}

	notifier := notify.New(cfg.Notify.APIKey, cfg.Notify.From, cfg.Notify.To, logger)

	w := watch.NewWatcher(dir, func(paths []string) {
		result := p.Run(paths)
		if err := writeOutput(result, format, out); err != nil {
			logger.Error("writing output failed", "error", err)
		}
		if result.Failed(strict) {
			logger.Warn("run had failures", "run_id", result.RunID)
		}
		if notifier.Enabled() {
			if err := notifier.NotifyRun(result.Payload); err != nil {
				logger.Error("run report email failed", "error", err)
			}
		}
	}, logger)

	if err := w.Start(schedule); err != nil {
		fmt.Fprintln(os.Stderr, "invalid schedule:", err)
		return exitUsage
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Info("signal received, stopping watcher")
	<-w.Stop().Done()
	return exitOK
}

// collectInputs expands directories into their PDF files, sorted, and keeps
// explicit file arguments as-is.
func collectInputs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", arg, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
				continue
			}
			paths = append(paths, filepath.Join(arg, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func writeOutput(result *pipeline.BatchResult, format export.Format, out string) error {
	exporter, err := export.New(format)
	if err != nil {
		return err
	}

	w := os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}
	return exporter.Export(w, result.Payload)
}
