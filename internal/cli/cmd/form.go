package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/eve/internal/application/usecase"
	"github.com/bnema/eve/internal/cli/styles"
)

var formCmd = &cobra.Command{
	Use:   "form <file> <section>",
	Short: "Show the schema form of a section",
	Long: `Render the schema-driven form of a core section or component as an
outline of its fields and current values.

The board section lists the board catalog of the document's target.`,
	Args: cobra.ExactArgs(2),
	RunE: runForm,
}

func init() {
	rootCmd.AddCommand(formCmd)
}

func runForm(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	ctx := app.Ctx()

	target, err := parseTarget(args[1])
	if err != nil {
		return err
	}

	uc := usecase.NewRenderFormUseCase(app.Repo, app.Catalog, app.EditorOptions(ctx))
	out, err := uc.Execute(ctx, usecase.RenderFormInput{Path: args[0], Target: target})
	if err != nil {
		return err
	}

	renderer := styles.NewFormRenderer(app.Theme)
	if out.BoardTarget != "" {
		current := ""
		if ref := out.Store.BoardContext(); ref != nil {
			current = ref.Slug
		}
		fmt.Print(renderer.RenderBoards(out.Boards, current))
		return nil
	}
	if out.Widget == nil {
		if msg := out.Store.Message(); msg != "" {
			return errors.New(msg)
		}
		return fmt.Errorf("no form for %s", out.Selection)
	}
	fmt.Print(renderer.Render(out.Title, out.DocsURL, out.Widget))
	return nil
}
