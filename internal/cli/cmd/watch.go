package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/eve/internal/infrastructure/config"
	"github.com/bnema/eve/internal/infrastructure/filesystem"
	"github.com/bnema/eve/internal/logging"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Check a document every time it is saved",
	Long: `Watch a document and print its highlights after every save. Settings
changes are picked up without a restart.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	path := args[0]

	ctx, stop := signal.NotifyContext(logging.WithComponent(app.Ctx(), "watch"), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := logging.FromContext(ctx)

	app.Manager.OnConfigChange(func(cfg *config.Config) {
		app.SetConfig(cfg)
		log.Info().Msg("settings reloaded")
	})
	if err := app.Manager.Watch(*log); err != nil {
		log.Warn().Err(err).Msg("settings watch unavailable")
	}

	check := func() {
		fmt.Printf("\n%s\n", app.Theme.Subtitle.Render(path))
		if _, err := checkDocument(app, path, nil); err != nil {
			fmt.Println(app.Theme.ErrorStyle.Render(err.Error()))
		}
	}
	check()

	log.Info().Str("path", path).Dur("debounce", app.WatchDebounce()).Msg("watching document")
	return filesystem.WatchDocument(ctx, path, app.WatchDebounce(), check)
}

