package main

import (
	"errors"
	"fmt"
	"os"

	checkerboard "github.com/gcslaoli/checkerboard-remover-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// go run ./cmd/cbclean sprite.png
// go run ./cmd/cbclean --suffix _alpha assets/*.png
// go run ./cmd/cbclean --config cbclean.yaml -v a.png b.png

var rootCmd = &cobra.Command{
	Use:          "cbclean [files...]",
	Short:        "Remove baked-in checkerboard backgrounds from RGBA PNG images",
	Long:         "Each file is written next to the original as <name>_clean.png. Files that are unreadable or have no alpha channel are skipped.",
	SilenceUsage: true,
	RunE:         runClean,
}

func init() {
	rootCmd.Flags().String("config", "", "YAML config file with detection thresholds")
	rootCmd.Flags().String("suffix", "", "Suffix inserted before the extension (default \"_clean\")")
	rootCmd.Flags().BoolP("verbose", "v", false, "Log skipped files and per-image stats")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runClean(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	suffix, _ := cmd.Flags().GetString("suffix")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if suffix != "" {
		cfg.Output.Suffix = suffix
	}

	logger, err := newLogger(cfg.Log.Mode, verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	opts, err := cfg.Detect.Options()
	if err != nil {
		return err
	}

	engine := checkerboard.NewEngine(opts, logger)
	if failed := cleanAll(engine, args, cfg.Output.Suffix, logger); failed > 0 {
		return fmt.Errorf("%d of %d files could not be written", failed, len(args))
	}
	return nil
}

// cleanAll processes each path independently and returns how many outputs
// failed to be written. Skipped inputs do not count as failures.
func cleanAll(engine *checkerboard.Engine, paths []string, suffix string, logger *zap.Logger) int {
	failed := 0
	for _, path := range paths {
		outPath, stats, err := engine.CleanFile(path, suffix)
		switch {
		case errors.Is(err, checkerboard.ErrNotApplicable):
			logger.Debug("skipped", zap.String("path", path), zap.Error(err))
		case err != nil:
			logger.Error("clean failed", zap.String("path", path), zap.Error(err))
			failed++
		default:
			logger.Info("cleaned",
				zap.String("path", path),
				zap.String("output", outPath),
				zap.Int("seeds", stats.Seeds),
				zap.Int("cleared", stats.Cleared),
			)
		}
	}
	return failed
}
