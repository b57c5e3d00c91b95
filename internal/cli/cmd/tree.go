package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/eve/internal/cli/model"
	"github.com/bnema/eve/internal/cli/styles"
	"github.com/bnema/eve/internal/editor"
)

var treePrint bool

var treeCmd = &cobra.Command{
	Use:   "tree <file>",
	Short: "Browse and toggle the sections of a document",
	Long: `Open an interactive browser over the core sections and components of
a document. Sections can be enabled, disabled or deleted; press w to write
the result.

With --print the tree is printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().BoolVarP(&treePrint, "print", "p", false, "print the tree and exit")
}

func runTree(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	ctx := app.Ctx()
	path := args[0]

	text, err := app.Repo.Read(ctx, path)
	if err != nil {
		return err
	}
	store := editor.New(text, app.EditorOptions(ctx))

	if treePrint {
		if pe := store.ParseError(); pe != nil {
			return fmt.Errorf("parse %s: %w", path, pe)
		}
		fmt.Print(styles.NewDocumentRenderer(app.Theme).RenderTree(store.Tree()))
		return nil
	}

	m := model.NewTreeModel(ctx, app.Theme, app.Repo, path, store)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tree browser: %w", err)
	}
	return nil
}
