package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/telebench/telebench/internal/dbg"
	"github.com/telebench/telebench/pkg/bench"
	"github.com/telebench/telebench/pkg/bench/middleware"
	"github.com/telebench/telebench/pkg/data/duckdb"
	"github.com/telebench/telebench/pkg/data/mapper"
	"github.com/telebench/telebench/pkg/harness"
	"github.com/telebench/telebench/pkg/harness/hostlink"
	"github.com/telebench/telebench/pkg/utility"
)

type options struct {
	dataset     string
	dataFile    string
	lags        int
	lagsSet     bool
	scale       uint
	scaleSet    bool
	iterations  uint64
	itersSet    bool
	expectedCRC uint16
	crcGiven    bool
	crcMode     string
	resultsDB   string
	hostURL     string
	monitorIter bool
	monitorOut  bool
	debug       bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "autcor",
		Short:        "Fixed-point autocorrelation benchmark",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.crcGiven = cmd.Flags().Changed("expected-crc")
			opts.lagsSet = cmd.Flags().Changed("lags")
			opts.scaleSet = cmd.Flags().Changed("scale")
			opts.itersSet = cmd.Flags().Changed("iterations")
			return run(&opts)
		},
	}

	cmd.Flags().StringVar(&opts.dataset, "dataset", defaultDataset, "standard dataset name (pulse, sine, noise)")
	cmd.Flags().StringVar(&opts.dataFile, "data", "", "binary int16 sample file; overrides --dataset")
	cmd.Flags().IntVar(&opts.lags, "lags", lagCount, "number of correlation lags")
	cmd.Flags().UintVar(&opts.scale, "scale", 0, "partial product scale in bits")
	cmd.Flags().Uint64Var(&opts.iterations, "iterations", defaultIterations, "programmed iteration count")
	cmd.Flags().Uint16Var(&opts.expectedCRC, "expected-crc", 0, "expected output CRC for external datasets")
	cmd.Flags().StringVar(&opts.crcMode, "crc-mode", "non-intrusive", "checksum folding: intrusive, non-intrusive or off")
	cmd.Flags().StringVar(&opts.resultsDB, "results-db", "", "DuckDB file recording run history")
	cmd.Flags().StringVar(&opts.hostURL, "host", "", "websocket endpoint of a monitoring host")
	cmd.Flags().BoolVar(&opts.monitorIter, "monitor-iterations", false, "log every iteration event")
	cmd.Flags().BoolVar(&opts.monitorOut, "monitor-output", false, "log the coefficient block of every iteration")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "development log output")

	return cmd
}

func run(opts *options) error {
	logger := dbg.NewLogger(opts.debug)
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	wl, crcChecked, err := resolveWorkload(opts)
	if err != nil {
		return err
	}
	mode, err := parseCRCMode(opts.crcMode)
	if err != nil {
		return err
	}
	if mode == bench.CRCNone {
		crcChecked = false
	}

	programmed := wl.RecIterations
	if opts.itersSet {
		programmed = opts.iterations
	}

	tc := &harness.TCDef{
		ID:            benchID,
		Desc:          benchDesc,
		Member:        member,
		Processor:     processor,
		Platform:      platform,
		RecIterations: wl.RecIterations,
		Iterations:    programmed,
	}

	runID := utility.GetRunID().String()
	logger.Info("autcor",
		zap.String("run_id", runID),
		zap.String("dataset", wl.Name),
		zap.Int("data_size", len(wl.Input)),
		zap.Int("lags", wl.Lags),
		zap.Uint("scale", wl.Scale),
		zap.Uint64("iterations", programmed))

	var link *hostlink.Client
	if opts.hostURL != "" {
		link, err = hostlink.Dial(ctx, opts.hostURL, logger)
		if err != nil {
			logger.Warn("continuing without host link", zap.Error(err))
		}
	}

	// Create
	telemetry := middleware.NewTelemetry(logger)
	monitor := middleware.NewMonitor(logger, monitorFlags(opts))
	performance := middleware.NewPerformance(logger)

	runner, err := bench.NewRunner(logger, wl, tc, mode)
	if err != nil {
		return err
	}

	// Initialize
	runner.OnIteration = middleware.Chain(
		performance.WithIteration,
		monitor.WithIteration,
		telemetry.WithIteration,
	)(nil)

	// Execute the timed loop
	link.SignalStart(runID, tc.ID)
	go runner.Exec(ctx)

	if err := <-runner.Done(); err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Error("error during benchmark run", zap.Error(err))
		}
	}
	link.SignalFinished(runID, tc.ID, tc.Duration)

	runner.Statistics().Print(logger)
	telemetry.PrintStatistics()
	performance.PrintStatistics()

	exitCode := harness.ReportResults(logger, tc, wl.ExpectedCRC, crcChecked)
	passed := exitCode == harness.Success

	link.ReportResults(runID, tc, wl.ExpectedCRC, passed)
	link.Close()

	if opts.resultsDB != "" {
		// The signal context may already be cancelled; the history write
		// should still land.
		if err := storeRun(context.Background(), opts.resultsDB, runID, wl, tc, passed); err != nil {
			logger.Error("error storing run record", zap.Error(err))
		}
	}

	if !passed {
		return errors.New("benchmark failed")
	}
	return nil
}

// resolveWorkload picks a standard dataset or loads an external sample file.
// External datasets are only CRC-checked when the caller supplies the expected
// value.
func resolveWorkload(opts *options) (bench.Workload, bool, error) {
	if opts.dataFile == "" {
		wl, ok := workloads()[opts.dataset]
		if !ok {
			return bench.Workload{}, false, fmt.Errorf("unknown dataset %q", opts.dataset)
		}
		if opts.lagsSet {
			wl.Lags = opts.lags
		}
		if opts.scaleSet {
			wl.Scale = opts.scale
		}
		// Overriding the kernel parameters invalidates the stock CRC.
		crcChecked := !opts.lagsSet && !opts.scaleSet
		if opts.crcGiven {
			wl.ExpectedCRC = opts.expectedCRC
			crcChecked = true
		}
		return wl, crcChecked, nil
	}

	samples, err := mapper.LoadSamples(opts.dataFile)
	if err != nil {
		return bench.Workload{}, false, err
	}
	wl := bench.Workload{
		Name:          filepath.Base(opts.dataFile),
		Input:         samples,
		Lags:          lagCount,
		Scale:         0,
		RecIterations: defaultIterations,
	}
	if opts.lagsSet {
		wl.Lags = opts.lags
	}
	if opts.scaleSet {
		wl.Scale = opts.scale
	}
	if opts.crcGiven {
		wl.ExpectedCRC = opts.expectedCRC
	}
	return wl, opts.crcGiven, nil
}

func parseCRCMode(mode string) (bench.CRCMode, error) {
	switch mode {
	case "intrusive":
		return bench.CRCIntrusive, nil
	case "non-intrusive":
		return bench.CRCNonIntrusive, nil
	case "off":
		return bench.CRCNone, nil
	default:
		return bench.CRCNone, fmt.Errorf("unknown crc mode %q", mode)
	}
}

func monitorFlags(opts *options) middleware.MonitorFlags {
	flags := middleware.MonitorNone
	if opts.monitorIter {
		flags |= middleware.MonitorIterations
	}
	if opts.monitorOut {
		flags |= middleware.MonitorOutput
	}
	return flags
}

func storeRun(ctx context.Context, dsn, runID string, wl bench.Workload, tc *harness.TCDef, passed bool) error {
	w := duckdb.NewWriter(dsn)
	if err := w.Connect(ctx); err != nil {
		return err
	}
	defer w.Close()

	return w.InsertRun(ctx, duckdb.RunRecord{
		RunID:       runID,
		BenchID:     tc.ID,
		Dataset:     wl.Name,
		Iterations:  tc.Iterations,
		DurationNs:  tc.Duration,
		CRC:         tc.CRC,
		ExpectedCRC: wl.ExpectedCRC,
		Passed:      passed,
		CreatedAt:   time.Now().UTC(),
	})
}
