// Package cmd provides Cobra CLI commands for eve.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/eve/internal/cli"
	"github.com/bnema/eve/internal/domain/build"
)

var (
	app        *cli.App
	buildInfo  build.Info
	configFile string
	rootCmd    = &cobra.Command{
		Use:   "eve",
		Short: "Edit ESPHome device configurations",
		Long: `eve - a structured editor for ESPHome YAML configurations.

eve keeps the YAML text as the source of truth and edits it through a
parsed tree:
  - Canonical formatting with core sections in a fixed order
  - Disable and re-enable sections and components as comment blocks
  - Schema-driven forms for core sections and components
  - Board catalogs and pin pickers from schema files or a schema backend

Run 'eve tree <file>' to browse a document, or explore the subcommands
for scripted edits.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "gen-docs":
				return nil
			}

			var err error
			app, err = cli.NewApp(configFile, buildInfo)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "settings file (default $XDG_CONFIG_HOME/eve/config.toml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}
