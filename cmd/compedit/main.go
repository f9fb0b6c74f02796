// compedit is a command-line front end for the component-document core:
// inspect, validate and edit the metadata embedded in generated component
// source files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"compedit/internal/config"
	"compedit/internal/document"
	"compedit/internal/logging"
	"compedit/internal/registry"
)

var (
	cfgPath string
	debug   bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "compedit",
	Short:         "Edit and inspect component document files",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(debug || cfg.Logging.Debug)
		if err != nil {
			return err
		}
		return nil
	},
}

// openDocument loads path with the built-in component types registered,
// placing new components per the configured jitter range.
func openDocument(path string) *document.Document {
	reg := registry.Builtin(registry.Params{
		JitterMin: cfg.Editor.JitterMin,
		JitterMax: cfg.Editor.JitterMax,
		Logger:    logger,
	})
	return document.New(path, reg, cfg, logger)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".compedit.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(showCmd, typesCmd, validateCmd, addCmd, renameCmd, watchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if logger != nil {
		_ = logger.Sync()
	}
}
