// SPDX-License-Identifier: MIT

// Command ghsmst computes the minimum spanning forest of an edge-list CSV with
// the GHS protocol executed in synchronous rounds.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/bspgraph/badgerstore"
	"github.com/katalvlaran/bspgraph/cli"
	"github.com/katalvlaran/bspgraph/config"
	"github.com/katalvlaran/bspgraph/ctxlog"
	"github.com/katalvlaran/bspgraph/graphio"
	"github.com/katalvlaran/bspgraph/metrics"
	"github.com/katalvlaran/bspgraph/mst"
	"github.com/katalvlaran/bspgraph/superstep"
)

// main is the entrypoint; run does the work and main maps errors to exit codes.
func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitFailure)
	}
}

// run parses args, executes the job and writes its outputs. Nothing is written
// when the computation or the verification fails.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	job, shouldExit, err := cli.Parse(ctx, args, outW, config.NewLoader())
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := newLogger(job.LogLevel, job.LogFormat, errW)
	ctx = ctxlog.WithLogger(ctx, logger)

	vertices, err := graphio.ReadEdgeFile(job.Input)
	if err != nil {
		return fmt.Errorf("read %s: %w", job.Input, err)
	}
	logger.Info("graph loaded", "input", job.Input, "vertices", len(vertices))

	opts := []mst.Option{
		mst.WithWorkers(job.Workers),
		mst.WithMaxRounds(job.MaxRounds),
		mst.WithRoundTimeout(job.RoundTimeout),
	}

	if job.StoreKind == config.StoreBadger {
		store, err := badgerstore.Open(job.StoreDir, badgerstore.WithLogger(logger.With("component", "badger")))
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts,
			mst.WithSubstrate(store),
			mst.WithTerminator(func(expected int) superstep.Terminator { return store.NewFlag(expected) }))
	}

	if job.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, mst.WithRecorder(metrics.NewRecorder(reg)))
		exp := metrics.NewExporter(job.MetricsAddr, reg)
		go func() {
			if err := exp.Start(); err != nil {
				logger.Error("metrics exporter failed", "addr", job.MetricsAddr, "error", err)
			}
		}()
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = exp.Stop(sctx)
		}()
		logger.Info("metrics exporter listening", "addr", job.MetricsAddr)
	}

	start := time.Now()
	res, err := mst.RunMST(ctx, vertices, job.Wake, opts...)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	elapsed := time.Since(start)

	if job.Verify {
		if err := res.Verify(vertices); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		logger.Info("result verified against kruskal")
	}

	// The summary goes first so a failed summary leaves no tree on disk.
	edges := res.Edges()
	if job.Summary != "" {
		sum := graphio.NewSummary(res)
		sum.Input = job.Input
		sum.Store = job.StoreKind
		sum.Verified = job.Verify
		sum.Elapsed = elapsed.Round(time.Millisecond).String()
		if err := graphio.WriteSummaryFile(job.Summary, sum); err != nil {
			return err
		}
	}

	if job.Output == "" {
		if err := graphio.WriteMSTCSV(outW, edges); err != nil {
			return err
		}
	} else if err := graphio.WriteMSTFile(job.Output, edges); err != nil {
		_ = os.Remove(job.Output)
		if job.Summary != "" {
			_ = os.Remove(job.Summary)
		}
		return err
	}

	logger.Info("done", "tree_edges", len(edges), "total_weight", res.TotalWeight(),
		"rounds", res.Stats.Rounds, "elapsed", elapsed)
	return nil
}

// newLogger creates and configures a new slog.Logger instance. It does not
// set the global logger.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(outW, handlerOpts))
}
