package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bnema/eve/internal/application/usecase"
	"github.com/bnema/eve/internal/cli"
	"github.com/bnema/eve/internal/cli/model"
	"github.com/bnema/eve/internal/cli/styles"
	"github.com/bnema/eve/internal/domain/entity"
	"github.com/bnema/eve/internal/editor"
)

var (
	fmtWrite    bool
	fmtCheck    bool
	dryRun      bool
	issuesFile  string
	newForce    bool
	blocksTable bool
)

// errCheckFailed makes a command exit non-zero after its output was printed.
var errCheckFailed = errors.New("check failed")

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Rewrite a document in canonical form",
	Long: `Rewrite a document in canonical form: core sections in their fixed
order, a blank line between top-level blocks, and disabled blocks at the
end sorted by key.

Without --write the formatted text is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

var blocksCmd = &cobra.Command{
	Use:   "blocks <file>",
	Short: "List disabled blocks",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlocks,
}

var disableCmd = &cobra.Command{
	Use:   "disable <file> <section>",
	Short: "Comment out a core section or component",
	Long: `Comment out a core section or a live component, keeping it in the file
as a disabled block that 'eve enable' restores.

Sections are referenced as:
  wifi           core section
  sensor.0       first sensor component`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error { return runToggle(args, false) },
}

var enableCmd = &cobra.Command{
	Use:   "enable <file> <section>",
	Short: "Restore a disabled core section or component",
	Long: `Restore a disabled block.

Sections are referenced as:
  wifi                  core section
  sensor:dht:1a2b3c4d   disabled component block (see 'eve blocks')`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error { return runToggle(args, true) },
}

var setCmd = &cobra.Command{
	Use:   "set <file> <section> <field> [value]",
	Short: "Set or remove a field of a section",
	Long: `Set a field of a section. field is a dotted path relative to the
section, value is read as YAML. Omitting value removes the field.

Examples:
  eve set node.yaml esphome name kitchen
  eve set node.yaml wifi ap.password '!secret ap_password'
  eve set node.yaml sensor.0 update_interval 30s`,
	Args: cobra.RangeArgs(3, 4),
	RunE: runSet,
}

var locateCmd = &cobra.Command{
	Use:   "locate <file> <section> [field]",
	Short: "Print the source position of a section or field",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runLocate,
}

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Report parse errors and validator issues",
	Long: `Parse a document and print its highlights. Validator output can be
merged with --issues, a JSON array of {line, column, message, severity}.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var newCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Write a starter document",
	Args:  cobra.ExactArgs(1),
	RunE:  runNew,
}

func init() {
	rootCmd.AddCommand(fmtCmd, blocksCmd, disableCmd, enableCmd, setCmd, locateCmd, checkCmd, newCmd)
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write the result back to the file")
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "exit non-zero when the file is not formatted")
	blocksCmd.Flags().BoolVarP(&blocksTable, "table", "t", false, "browse blocks in a table")
	for _, c := range []*cobra.Command{disableCmd, enableCmd, setCmd} {
		c.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the result instead of writing it")
	}
	checkCmd.Flags().StringVar(&issuesFile, "issues", "", "validator issues as JSON")
	newCmd.Flags().BoolVarP(&newForce, "force", "f", false, "overwrite an existing file")
}

func runFmt(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	ctx := app.Ctx()

	uc := usecase.NewFormatDocumentUseCase(app.Repo, app.EditorOptions(ctx))
	out, err := uc.Execute(ctx, usecase.FormatDocumentInput{Path: args[0], Write: fmtWrite && !fmtCheck})
	if err != nil {
		return err
	}

	renderer := styles.NewDocumentRenderer(app.Theme)
	switch {
	case fmtCheck:
		fmt.Print(renderer.RenderFormatted(args[0], out.Changed, false))
		if out.Changed {
			return errCheckFailed
		}
	case fmtWrite:
		fmt.Print(renderer.RenderFormatted(args[0], out.Changed, out.Written))
		fmt.Print(renderer.RenderMessage(out.Message))
	default:
		fmt.Print(out.Text)
	}
	return nil
}

func runBlocks(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	ctx := app.Ctx()

	uc := usecase.NewListBlocksUseCase(app.Repo, app.EditorOptions(ctx))
	out, err := uc.Execute(ctx, usecase.ListBlocksInput{Path: args[0]})
	if err != nil {
		return err
	}

	rows := make([]styles.BlockRow, 0, len(out.Core)+len(out.Components))
	for _, b := range out.Core {
		rows = append(rows, styles.BlockRow{Kind: "core", Domain: b.Key, Line: b.Line})
	}
	for _, b := range out.Components {
		rows = append(rows, styles.BlockRow{Kind: "component", Domain: b.Domain, Platform: b.Platform, Hash: b.Hash, Line: b.Line})
	}

	if blocksTable {
		return runBlocksTable(app.Theme, rows)
	}
	fmt.Print(styles.NewDocumentRenderer(app.Theme).RenderBlocks(rows))
	return nil
}

func runToggle(args []string, enable bool) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	ctx := app.Ctx()

	target, err := parseTarget(args[1])
	if err != nil {
		return err
	}
	input := usecase.ToggleBlockInput{Path: args[0], Enable: enable, DryRun: dryRun}
	switch {
	case target.Core != "":
		input.Core = target.Core
	case enable && target.Key == "":
		return fmt.Errorf("enable a component by its block key (see 'eve blocks %s')", args[0])
	case enable:
		input.Domain, _, _ = strings.Cut(target.Key, ":")
		input.Key = target.Key
	case target.Key != "":
		return fmt.Errorf("%s is already disabled", target.Key)
	default:
		input.Domain, input.Index = target.Domain, target.Index
	}

	uc := usecase.NewToggleBlockUseCase(app.Repo, app.EditorOptions(ctx))
	out, err := uc.Execute(ctx, input)
	if err != nil {
		return err
	}
	if dryRun {
		fmt.Print(out.Text)
		return nil
	}

	renderer := styles.NewDocumentRenderer(app.Theme)
	fmt.Print(renderer.RenderToggled(args[1], enable, out.Key))
	fmt.Print(renderer.RenderMessage(out.Message))
	return nil
}

func runSet(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	ctx := app.Ctx()

	target, err := parseTarget(args[1])
	if err != nil {
		return err
	}
	var value string
	if len(args) == 4 {
		value = args[3]
	}

	uc := usecase.NewSetFieldUseCase(app.Repo, app.EditorOptions(ctx))
	out, err := uc.Execute(ctx, usecase.SetFieldInput{Path: args[0], Target: target, Field: args[2], Value: value, DryRun: dryRun})
	if err != nil {
		return err
	}
	if dryRun {
		fmt.Print(out.Text)
		return nil
	}
	if !out.Changed {
		fmt.Print(styles.NewDocumentRenderer(app.Theme).RenderMessage("No change."))
	}
	return nil
}

func runLocate(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	ctx := app.Ctx()

	target, err := parseTarget(args[1])
	if err != nil {
		return err
	}
	var field string
	if len(args) == 3 {
		field = args[2]
	}

	uc := usecase.NewLocateFieldUseCase(app.Repo, app.EditorOptions(ctx))
	out, err := uc.Execute(ctx, usecase.LocateFieldInput{Path: args[0], Target: target, Field: field})
	if err != nil {
		return err
	}
	fmt.Print(styles.NewDocumentRenderer(app.Theme).RenderLocation(args[0], out.Line, out.Column))
	return nil
}

func runCheck(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	var issues []entity.ValidateIssue
	if issuesFile != "" {
		data, err := afero.ReadFile(afero.NewOsFs(), issuesFile)
		if err != nil {
			return fmt.Errorf("read issues: %w", err)
		}
		if err := json.Unmarshal(data, &issues); err != nil {
			return fmt.Errorf("parse issues: %w", err)
		}
	}

	out, err := checkDocument(app, args[0], issues)
	if err != nil {
		return err
	}
	if out.HasErrors() {
		return errCheckFailed
	}
	return nil
}

// checkDocument runs the check use case and prints the highlights.
func checkDocument(app *cli.App, path string, issues []entity.ValidateIssue) (*usecase.CheckDocumentOutput, error) {
	ctx := app.Ctx()
	uc := usecase.NewCheckDocumentUseCase(app.Repo, app.EditorOptions(ctx))
	out, err := uc.Execute(ctx, usecase.CheckDocumentInput{Path: path, Issues: issues})
	if err != nil {
		return nil, err
	}

	renderer := styles.NewDocumentRenderer(app.Theme)
	for _, h := range out.Highlights {
		fmt.Print(renderer.RenderIssue(path, h.Line, h.Column, h.Severity, h.Message))
	}
	if out.ParseError != "" && len(out.Highlights) == 0 {
		fmt.Print(renderer.RenderIssue(path, 1, 0, entity.SeverityError, out.ParseError))
	}
	if len(out.Highlights) == 0 && out.ParseError == "" {
		fmt.Print(renderer.RenderMessage("No issues."))
	}
	return out, nil
}

func runNew(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	ctx := app.Ctx()

	exists, err := app.Repo.Exists(ctx, args[0])
	if err != nil {
		return err
	}
	if exists && !newForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", args[0])
	}
	if err := app.Repo.Write(ctx, args[0], editor.DefaultText); err != nil {
		return err
	}
	fmt.Print(styles.NewDocumentRenderer(app.Theme).RenderMessage("Wrote " + args[0]))
	return nil
}

func runBlocksTable(theme *styles.Theme, rows []styles.BlockRow) error {
	if _, err := tea.NewProgram(model.NewBlocksModel(theme, rows)).Run(); err != nil {
		return fmt.Errorf("blocks table: %w", err)
	}
	return nil
}
