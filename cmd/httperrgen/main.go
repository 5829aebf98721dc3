/*
httperrgen generates HTTP error boilerplate from .httperr schema files.
For every schema file in the given directories it writes a sibling Go file
with the rendering, canonical conversion and wrapping code for each declared
error sum type.
*/
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/heat1q/httperrgen/pkg/generator"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		suffix      string
		packageName string
		verbose     bool
	)
	cmd := &cobra.Command{
		Use:   "httperrgen [directory ...]",
		Short: "Generate HTTP error code from .httperr schema files",
		Long: `httperrgen compiles error sum type declarations into Go source.
Each variant of a declaration gains a textual rendering, a conversion to the
canonical *httperr.Error and, for @from variants, a wrapping constructor.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg, err := buildConfig(configPath, suffix, packageName)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			dirs := args
			if len(dirs) == 0 {
				dirs = []string{"."}
			}
			failed := false
			for _, dir := range dirs {
				logger.Debug("generating", zap.String("dir", dir))
				if err := generator.Generate(dir, cfg); err != nil {
					failed = true
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					continue
				}
				logger.Info("generated", zap.String("dir", dir))
			}
			if failed {
				return errors.New("generation failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a httperrgen.yaml config file")
	cmd.Flags().StringVar(&suffix, "suffix", "", "suffix for generated files (<schema>.<suffix>.go)")
	cmd.Flags().StringVar(&packageName, "package", "", "package name for generated files")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

/* buildConfig merges the explicit config file, if any, with flag overrides.
A nil result lets the generator pick up per-directory configs. */
func buildConfig(configPath, suffix, packageName string) (*generator.Config, error) {
	if configPath == "" && suffix == "" && packageName == "" {
		return nil, nil
	}
	cfg := &generator.Config{}
	if configPath != "" {
		loaded, err := generator.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if suffix != "" {
		cfg.Suffix = suffix
	}
	if packageName != "" {
		cfg.Package = packageName
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}
