package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/eve/internal/cli"
	"github.com/bnema/eve/internal/infrastructure/config"
)

var schemaCacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the offline schema cache",
}

var schemaCacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how many backend responses are stored",
	Args:  cobra.NoArgs,
	RunE:  runSchemaCacheStatus,
}

var schemaCacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored backend response",
	Args:  cobra.NoArgs,
	RunE:  runSchemaCacheClear,
}

func init() {
	schemaCmd.AddCommand(schemaCacheCmd)
	schemaCacheCmd.AddCommand(schemaCacheStatusCmd, schemaCacheClearCmd)
}

func requireSnapshots() (*cli.App, bool, error) {
	app, err := requireApp()
	if err != nil {
		return nil, false, err
	}
	if app.Snapshots == nil {
		fmt.Println(app.Theme.Subtle.Render("  Offline schema cache is off (needs schemas.url and schemas.offline_cache)"))
		return app, false, nil
	}
	return app, true, nil
}

func runSchemaCacheStatus(_ *cobra.Command, _ []string) error {
	app, ok, err := requireSnapshots()
	if err != nil || !ok {
		return err
	}
	n, err := app.Snapshots.Count(app.Ctx())
	if err != nil {
		return err
	}
	path, err := config.GetSchemaCacheFile()
	if err != nil {
		return err
	}
	fmt.Printf("  %s %s\n", app.Theme.Highlight.Render(fmt.Sprintf("%d", n)), "stored responses")
	fmt.Printf("  %s\n", app.Theme.Subtle.Render(path))
	return nil
}

func runSchemaCacheClear(_ *cobra.Command, _ []string) error {
	app, ok, err := requireSnapshots()
	if err != nil || !ok {
		return err
	}
	removed, err := app.Snapshots.Clear(app.Ctx())
	if err != nil {
		return err
	}
	fmt.Println(app.Theme.SuccessStyle.Render(fmt.Sprintf("Removed %d stored responses", removed)))
	return nil
}
