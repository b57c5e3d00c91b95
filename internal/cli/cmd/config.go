package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/bnema/eve/internal/application/usecase"
	"github.com/bnema/eve/internal/cli/styles"
	"github.com/bnema/eve/internal/infrastructure/config"
)

var (
	configYes           bool
	configInitForce     bool
	configSchemaJSON    bool
	configSchemaSection string
	configSchemaWrite   string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage eve settings",
	Long:  `View, initialize and migrate the eve settings file.`,
}

var configStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show settings file status and migration availability",
	RunE:  runConfigStatus,
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Bring the settings file up to date with the defaults",
	Long: `Compares your settings file with the current defaults.

Missing keys are added with default values, keys that were renamed keep
their value under the new name, and keys eve no longer knows are dropped.`,
	RunE: runConfigMigrate,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with every default",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as TOML",
	RunE:  runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Describe every settings key",
	Long: `List every settings key with its type, default and description.

With --write, a JSON Schema of the settings file is written instead, for
editor completion of config.toml.`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configStatusCmd, configMigrateCmd, configInitCmd, configShowCmd, configSchemaCmd)
	configMigrateCmd.Flags().BoolVarP(&configYes, "yes", "y", false, "skip confirmation prompt")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing settings file")
	configSchemaCmd.Flags().BoolVar(&configSchemaJSON, "json", false, "output keys as JSON")
	configSchemaCmd.Flags().StringVarP(&configSchemaSection, "section", "s", "", "only keys of this section")
	configSchemaCmd.Flags().StringVar(&configSchemaWrite, "write", "", "write config.schema.json to this directory (\"-\" for the settings directory)")
}

func settingsPath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	return config.GetConfigFile()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

func runConfigStatus(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	renderer := styles.NewConfigRenderer(app.Theme)
	uc := usecase.NewMigrateConfigUseCase(config.NewMigrator(configFile), config.NewDiffFormatter())

	path, err := settingsPath()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}
	if !fileExists(path) {
		fmt.Println(renderer.RenderNoConfigFile(path))
		return nil
	}

	result, err := uc.Check(app.Ctx(), usecase.CheckConfigMigrationInput{})
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}
	if !result.NeedsMigration {
		fmt.Println(renderer.RenderUpToDate(path))
		return nil
	}

	fmt.Println(renderer.RenderConfigInfo(path, len(result.MissingKeys)))
	fmt.Println(renderer.RenderMigrateHint())
	return nil
}

func runConfigMigrate(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	renderer := styles.NewConfigRenderer(app.Theme)
	uc := usecase.NewMigrateConfigUseCase(config.NewMigrator(configFile), config.NewDiffFormatter())

	path, err := settingsPath()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}
	if !fileExists(path) {
		fmt.Println(renderer.RenderNoConfigFile(path))
		return nil
	}

	ctx := app.Ctx()
	detected, err := uc.DetectChanges(ctx, usecase.DetectChangesInput{})
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}
	if !detected.HasChanges {
		fmt.Println(renderer.RenderUpToDate(path))
		return nil
	}

	fmt.Println(renderer.RenderConfigInfo(path, len(detected.Changes)))
	fmt.Println(renderer.RenderDiff(detected.DiffText))

	if configYes {
		return executeMigration(ctx, uc, renderer)
	}
	return runMigrateWithConfirmation(ctx, uc, renderer, app.Theme)
}

func executeMigration(ctx context.Context, uc *usecase.MigrateConfigUseCase, renderer *styles.ConfigRenderer) error {
	result, err := uc.Execute(ctx, usecase.MigrateConfigInput{})
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}
	if len(result.AppliedChanges) > 0 {
		fmt.Println(renderer.RenderMigrationSuccess(len(result.AppliedChanges), result.ConfigFile))
	}
	return nil
}

type migrateState int

const (
	migrateStateConfirm migrateState = iota
	migrateStateRunning
	migrateStateDone
)

// migrateModel asks for confirmation, then runs the migration behind a spinner.
type migrateModel struct {
	ctx      context.Context
	spinner  spinner.Model
	renderer *styles.ConfigRenderer
	confirm  styles.ConfirmModel
	state    migrateState
	uc       *usecase.MigrateConfigUseCase

	result   string
	err      error
	quitting bool
}

type migrateResultMsg struct {
	output *usecase.MigrateConfigOutput
	err    error
}

func newMigrateModel(ctx context.Context, renderer *styles.ConfigRenderer, theme *styles.Theme, uc *usecase.MigrateConfigUseCase) migrateModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	return migrateModel{
		ctx:      ctx,
		spinner:  s,
		renderer: renderer,
		confirm:  styles.NewConfirm(theme, "Apply these changes?"),
		state:    migrateStateConfirm,
		uc:       uc,
	}
}

func (m migrateModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m migrateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case migrateResultMsg:
		m.state = migrateStateDone
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		if len(msg.output.AppliedChanges) > 0 {
			m.result = m.renderer.RenderMigrationSuccess(len(msg.output.AppliedChanges), msg.output.ConfigFile)
		}
		return m, tea.Quit
	}

	if m.state == migrateStateConfirm {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		if m.confirm.Done() {
			if m.confirm.Result() {
				m.state = migrateStateRunning
				return m, m.runMigration()
			}
			m.quitting = true
			return m, tea.Quit
		}
		return m, cmd
	}
	return m, nil
}

func (m migrateModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.err != nil:
		return m.renderer.RenderError(m.err)
	case m.state == migrateStateDone:
		return m.result
	case m.state == migrateStateRunning:
		return fmt.Sprintf("\n  %s Migrating settings...\n", m.spinner.View())
	}
	return m.confirm.View()
}

func (m migrateModel) runMigration() tea.Cmd {
	return func() tea.Msg {
		result, err := m.uc.Execute(m.ctx, usecase.MigrateConfigInput{})
		return migrateResultMsg{output: result, err: err}
	}
}

func runMigrateWithConfirmation(ctx context.Context, uc *usecase.MigrateConfigUseCase, renderer *styles.ConfigRenderer, theme *styles.Theme) error {
	p := tea.NewProgram(newMigrateModel(ctx, renderer, theme, uc))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	path, err := settingsPath()
	if err != nil {
		return err
	}
	if fileExists(path) && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.EnsureDirectories(); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), docsDirPerm); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := config.WriteConfigOrdered(config.DefaultConfig(), path); err != nil {
		return err
	}
	fmt.Println(renderer.RenderInitialized(path))
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	data, err := toml.Marshal(app.Manager.Get())
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	if configSchemaWrite != "" {
		dir := configSchemaWrite
		if dir == "-" {
			dir = ""
		}
		path, err := config.GenerateSchemaFile(dir)
		if err != nil {
			return err
		}
		fmt.Println(styles.NewConfigRenderer(app.Theme).RenderInitialized(path))
		return nil
	}

	uc := usecase.NewGetConfigSchemaUseCase(config.NewSchemaProvider())
	out, err := uc.Execute(app.Ctx(), usecase.GetConfigSchemaInput{Section: configSchemaSection})
	if err != nil {
		return err
	}

	renderer := styles.NewConfigSchemaRenderer(app.Theme)
	if configSchemaJSON {
		js, err := renderer.RenderJSON(out.Keys)
		if err != nil {
			return err
		}
		fmt.Println(js)
		return nil
	}
	fmt.Println(renderer.Render(out.Keys))
	return nil
}
