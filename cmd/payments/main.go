package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/tirasundara/payments-engine/internal/config"
	"github.com/tirasundara/payments-engine/internal/logging"
	"github.com/tirasundara/payments-engine/internal/report"
	"github.com/tirasundara/payments-engine/internal/repository"
	"github.com/tirasundara/payments-engine/internal/service"
	"go.uber.org/zap"
)

var (
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)

	errUsage = errors.New("invalid usage")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	default:
		stop()
		exitWithError(err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, lookupEnv func(string) (string, bool)) error {
	// Command-line flags
	var (
		configFile   string
		outputFormat string
		outputFile   string
		logLevel     string
		workers      int
		prettyPrint  bool
	)

	fs := flag.NewFlagSet("payments", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&configFile, "config", "", "Path to a YAML config file")
	fs.StringVar(&outputFormat, "format", "csv", "Output format: csv or json")
	fs.StringVar(&outputFile, "output", "", "Path to output file (if empty, writes to stdout)")
	fs.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default warn)")
	fs.IntVar(&workers, "workers", 1, "Number of workers; clients are partitioned across them")
	fs.BoolVar(&prettyPrint, "pretty", false, "Pretty print JSON output")

	// Custom usage message
	fs.Usage = func() {
		fmt.Fprint(stderr, `payments - applies a CSV of client transactions and reports the final accounts

Usage:
  payments [flags] <transactions.csv>

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprint(stderr, `
Examples:
  # Print account balances as CSV
  payments transactions.csv > accounts.csv

  # Report rejected transactions on stderr while processing on 4 workers
  payments -log-level info -workers 4 transactions.csv
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("%w: expected exactly one transactions file, got %d arguments", errUsage, fs.NArg())
	}
	inputFile := fs.Arg(0)

	// Resolve configuration: defaults, file, environment, then explicit flags
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(lookupEnv); err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Output.Format = outputFormat
		case "output":
			cfg.Output.File = outputFile
		case "log-level":
			cfg.Log.Level = logLevel
		case "workers":
			cfg.Workers = workers
		case "pretty":
			cfg.Output.Pretty = prettyPrint
		}
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	logger, _, err := logging.New(logging.Config{
		Environment: logging.Environment(cfg.Log.Environment),
		Level:       cfg.Log.Level,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	formatter, err := report.NewFormatter(cfg.Output.Format, cfg.Output.Pretty)
	if err != nil {
		return err
	}

	// Process the input
	repo := repository.NewCSVTransactionRepository(inputFile)
	processor := service.NewTransactionProcessor(repo, logger, service.WithWorkers(cfg.Workers))

	result, err := processor.Process(ctx)
	if err != nil {
		logger.Error("Processing failed", zap.String("input", inputFile), zap.Error(err))
		return err
	}

	if n := len(result.Rejections); n > 0 && logger.Core().Enabled(zap.InfoLevel) {
		yellow.Fprintf(stderr, "%d of %d transactions were rejected\n", n, result.TotalTxnsProcessed)
	}

	output, err := formatter.Format(result)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	if len(output) > 0 && output[len(output)-1] != '\n' {
		output = append(output, '\n')
	}

	// Output the result
	if cfg.Output.File != "" {
		outputPath := cfg.Output.File
		// If no extension is provided, add the formatter's default extension
		if !strings.Contains(outputPath, ".") {
			outputPath = fmt.Sprintf("%s.%s", outputPath, formatter.FileExtension())
		}

		if err := os.WriteFile(outputPath, output, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}

	// Write output to stdout
	if _, err := stdout.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func exitWithError(err error) {
	red.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, errUsage) {
		fmt.Fprintf(os.Stderr, "Run with -h flag for usage information.\n")
	}
	os.Exit(1)
}
