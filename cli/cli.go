// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/bspgraph/config"
	"github.com/katalvlaran/bspgraph/ctxlog"
)

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is an error that carries a process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns the job, a boolean
// indicating that the program should exit cleanly (help or nothing to do), or an
// *ExitError with ExitUsage.
//
// Precedence: flags that were set explicitly > job file > config.DefaultJob.
func Parse(ctx context.Context, args []string, output io.Writer, loader *config.Loader) (*config.Job, bool, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("ghsmst", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
ghsmst - minimum spanning forest with the GHS protocol in synchronous rounds.

Usage:
  ghsmst [options] [EDGES_CSV]

Arguments:
  EDGES_CSV
    Edge list "u,v,weight"; same as -input.

Options:
`)
		flagSet.PrintDefaults()
	}

	def := config.DefaultJob()
	configFlag := flagSet.String("config", "", "Path to an HCL job file.")
	inputFlag := flagSet.String("input", "", "Path to the edge-list CSV.")
	outputFlag := flagSet.String("output", "", "Path of the MST CSV to write. Empty prints to stdout.")
	summaryFlag := flagSet.String("summary", "", "Path of the YAML run summary to write.")
	wakeFlag := flagSet.String("wake", "", "Comma-separated auto-wake vertex ids. Empty wakes every vertex.")
	workersFlag := flagSet.Int("workers", def.Workers, "Concurrent vertex groups per round.")
	maxRoundsFlag := flagSet.Int("max-rounds", def.MaxRounds, "Round limit. 0 derives it from the vertex count.")
	timeoutFlag := flagSet.Duration("round-timeout", def.RoundTimeout, "Per-round deadline. 0 disables it.")
	storeFlag := flagSet.String("store", def.StoreKind, "Round substrate. Options: 'memory' or 'badger'.")
	storeDirFlag := flagSet.String("store-dir", "", "Badger directory. Empty keeps badger in memory.")
	metricsFlag := flagSet.String("metrics-addr", "", "Address of the Prometheus /metrics endpoint. Empty is disabled.")
	verifyFlag := flagSet.Bool("verify", false, "Compare the result with a sequential Kruskal forest.")
	logLevelFlag := flagSet.String("log-level", def.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", def.LogFormat, "Log output format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	if flagSet.NArg() > 1 {
		return nil, false, usageError("expected at most one positional argument, got %d", flagSet.NArg())
	}

	job := def
	if *configFlag != "" {
		var err error
		job, err = loader.Load(ctx, *configFlag)
		if err != nil {
			return nil, false, usageError("%v", err)
		}
		logger.Debug("Job file loaded.", "path", *configFlag)
	}

	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })
	overrides := map[string]func(){
		"input":         func() { job.Input = *inputFlag },
		"output":        func() { job.Output = *outputFlag },
		"summary":       func() { job.Summary = *summaryFlag },
		"wake":          func() { job.Wake = splitList(*wakeFlag) },
		"workers":       func() { job.Workers = *workersFlag },
		"max-rounds":    func() { job.MaxRounds = *maxRoundsFlag },
		"round-timeout": func() { job.RoundTimeout = *timeoutFlag },
		"store":         func() { job.StoreKind = strings.ToLower(*storeFlag) },
		"store-dir":     func() { job.StoreDir = *storeDirFlag },
		"metrics-addr":  func() { job.MetricsAddr = *metricsFlag },
		"verify":        func() { job.Verify = *verifyFlag },
		"log-level":     func() { job.LogLevel = strings.ToLower(*logLevelFlag) },
		"log-format":    func() { job.LogFormat = strings.ToLower(*logFormatFlag) },
	}
	for name, apply := range overrides {
		if set[name] {
			apply()
		}
	}
	if flagSet.NArg() == 1 {
		if set["input"] {
			return nil, false, usageError("input given both as -input and as an argument")
		}
		job.Input = flagSet.Arg(0)
	}

	if job.Input == "" {
		logger.Debug("No input provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if err := job.Validate(); err != nil {
		return nil, false, usageError("%v", err)
	}

	logger.Debug("CLI parser finished successfully.", "input", job.Input, "store", job.StoreKind)
	return &job, false, nil
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
