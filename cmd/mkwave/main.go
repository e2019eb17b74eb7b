// mkwave writes the standard benchmark datasets out as binary sample files, so
// runs on other machines can use identical inputs via the --data flag.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/telebench/telebench/internal/dbg"
	"github.com/telebench/telebench/pkg/data/mapper"
	"github.com/telebench/telebench/pkg/signal"
)

const (
	sineCoefQ14 = 30274
	sineSeed    = 3135
	noiseSeed   = 0x1234
)

func main() {
	var (
		outDir string
		size   int
		debug  bool
	)

	cmd := &cobra.Command{
		Use:          "mkwave",
		Short:        "Generate the standard benchmark sample files",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := dbg.NewLogger(debug)
			defer func(logger *zap.Logger) {
				_ = logger.Sync()
			}(logger)
			return write(logger, outDir, size)
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "data", "output directory")
	cmd.Flags().IntVar(&size, "size", 1024, "samples per dataset")
	cmd.Flags().BoolVar(&debug, "debug", false, "development log output")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func write(logger *zap.Logger, outDir string, size int) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	datasets := map[string][]int16{
		"pulse": signal.Pulse(size, 8192, size/16, size/8),
		"sine":  signal.Sine(size, sineCoefQ14, sineSeed),
		"noise": signal.Noise(size, noiseSeed),
	}

	for name, samples := range datasets {
		path := filepath.Join(outDir, name+".bin")
		if err := mapper.WriteFile(path, samples); err != nil {
			return err
		}
		logger.Info("dataset written",
			zap.String("path", path),
			zap.Int("samples", len(samples)))
	}
	return nil
}
