package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Someblueman/objectlists/internal/config"
	"github.com/Someblueman/objectlists/internal/objectlists"
)

var (
	configPath   string
	templatePath string
	outputPath   string
	checkOnly    bool
	verbose      bool

	logger *zap.Logger
)

var errStale = errors.New("object lists are stale")

var rootCmd = &cobra.Command{
	Use:   "objectlists",
	Short: "Generate standardobjectlist.ts from the objects bundled with OpenRCT2",
	Long: `objectlists reads the stock object definitions under <OpenRCT2>/data/object
and writes a TypeScript module of lookup tables (compatibility objects, ride
research categories, footpath variants and replacements).

The OpenRCT2 install folder is read from config.yaml. On first run the file is
created from config-template.yaml and has to be edited before running again.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runGenerate,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "settings file")
	rootCmd.Flags().StringVar(&templatePath, "template", config.DefaultTemplatePath, "template copied to --config on first run")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (overrides output_path)")
	rootCmd.Flags().BoolVar(&checkOnly, "check", false, "check staleness only (exit 1 if stale)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every classified object")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	cancel()

	switch {
	case err == nil:
	case errors.Is(err, errStale):
		fmt.Println("Object lists are stale")
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if checkOnly {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load(configPath, templatePath)
	if err != nil {
		return err
	}
	if outputPath != "" {
		cfg.OutputPath = outputPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger
	if log == nil {
		log = zap.NewNop()
	}
	opts := objectlists.Options{
		ObjectRoot: cfg.ObjectRoot(),
		OutputPath: cfg.OutputPath,
		Logger:     log,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if checkOnly {
		stale, err := objectlists.IsStale(ctx, opts)
		if err != nil {
			return err
		}
		if stale {
			return errStale
		}
		fmt.Println("Object lists are up to date")
		return nil
	}

	mod, err := objectlists.Generate(ctx, opts)
	if err != nil {
		return err
	}

	for _, s := range mod.Suggestions {
		log.Info("possible replacement for compatibility object",
			zap.String("id", s.CompatibilityID),
			zap.String("name", s.Name),
			zap.String("candidate", s.ReplacementID),
			zap.String("candidateName", s.ReplacementName),
			zap.Int("distance", s.Distance))
	}
	if len(mod.Unmatched) > 0 {
		log.Debug("compatibility objects without replacement", zap.Strings("ids", mod.Unmatched))
	}

	fmt.Printf("Generated %s: %d tables\n", opts.OutputPath, len(mod.Tables))
	return nil
}
