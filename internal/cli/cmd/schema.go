package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bnema/eve/internal/cli"
	"github.com/bnema/eve/internal/cli/styles"
	"github.com/bnema/eve/internal/document"
	"github.com/bnema/eve/internal/domain/entity"
	"github.com/bnema/eve/internal/form"
	"github.com/bnema/eve/internal/schema"
)

var schemaCore bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect component schemas and board catalogs",
	Long: `Inspect the JSON schemas eve reads from the schema directory
(schemas.dir, default $XDG_DATA_HOME/eve/schemas):

  components/<domain>/<platform>.json
  core/<name>.json
  boards/<target>.json

When schemas.url is set they are fetched from that backend instead, and
with schemas.offline_cache the last responses are kept for offline use.`,
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List components that have a schema",
	Args:  cobra.NoArgs,
	RunE:  runSchemaList,
}

var schemaShowCmd = &cobra.Command{
	Use:   "show <domain> <platform> | --core <name>",
	Short: "Show the empty form of a component or core section",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSchemaShow,
}

var schemaExportCmd = &cobra.Command{
	Use:   "export <domain> <platform> | --core <name>",
	Short: "Print a component or core section schema as JSON Schema",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSchemaExport,
}

var schemaBoardsCmd = &cobra.Command{
	Use:   "boards <target>",
	Short: "List the boards of a target (esp32, esp8266)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemaBoards,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaListCmd, schemaShowCmd, schemaExportCmd, schemaBoardsCmd)
	schemaShowCmd.Flags().BoolVar(&schemaCore, "core", false, "show a core section schema")
	schemaExportCmd.Flags().BoolVar(&schemaCore, "core", false, "export a core section schema")
}

func runSchemaList(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	refs, err := app.Schemas.ListComponents(app.Ctx())
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		fmt.Println(app.Theme.Subtle.Render("  No component schemas found"))
		return nil
	}

	byDomain := make(map[string][]string)
	var domains []string
	for _, r := range refs {
		if _, ok := byDomain[r.Domain]; !ok {
			domains = append(domains, r.Domain)
		}
		byDomain[r.Domain] = append(byDomain[r.Domain], r.Platform)
	}

	iconStyle := lipgloss.NewStyle().Foreground(app.Theme.Accent)
	for _, d := range domains {
		fmt.Printf("  %s %s  %s\n",
			iconStyle.Render(styles.IconTree),
			app.Theme.Highlight.Render(d),
			strings.Join(byDomain[d], ", "),
		)
	}
	return nil
}

type loadedSchema struct {
	node  schema.Node
	title string
	path  string
	docs  string
}

// loadSchema fetches the schema named by args: <domain> <platform>, or a
// core section name with --core.
func loadSchema(app *cli.App, args []string) (*loadedSchema, error) {
	ctx := app.Ctx()
	var (
		out  loadedSchema
		docs *entity.Docs
	)
	if schemaCore {
		resp, err := app.Catalog.EnsureCoreSchema(ctx, args[0])
		if err != nil {
			return nil, err
		}
		out.node, docs, out.title, out.path = resp.Schema, resp.Docs, resp.DisplayName, args[0]
	} else {
		if len(args) != 2 {
			return nil, fmt.Errorf("expected <domain> <platform>")
		}
		resp, err := app.Catalog.EnsureSchema(ctx, args[0], args[1])
		if err != nil {
			return nil, err
		}
		out.node, docs, out.title, out.path = resp.Schema, resp.Docs, resp.DisplayName, args[0]+"."+args[1]
	}
	if out.title == "" {
		out.title = out.path
	}
	if docs != nil && docs.URL != nil {
		out.docs = *docs.URL
	}
	return &out, nil
}

func runSchemaShow(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	ls, err := loadSchema(app, args)
	if err != nil {
		return err
	}

	env := form.Env{State: form.NewState()}
	var w form.Widget
	if obj, ok := ls.node.(*schema.Object); ok {
		w = form.RenderObject(env, form.NewPath(ls.path), obj, document.NewMapping(), func(*document.Mapping) {})
	} else {
		w = form.Render(env, form.NewPath(ls.path), ls.node, nil, func(any) {})
	}
	fmt.Print(styles.NewFormRenderer(app.Theme).Render(ls.title, ls.docs, w))
	return nil
}

func runSchemaExport(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	ls, err := loadSchema(app, args)
	if err != nil {
		return err
	}

	js := schema.ToJSONSchema(ls.node)
	if js.Title == "" {
		js.Title = ls.title
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(js)
}

func runSchemaBoards(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	boards, err := app.Catalog.EnsureBoards(app.Ctx(), args[0])
	if err != nil {
		return err
	}
	fmt.Print(styles.NewFormRenderer(app.Theme).RenderBoards(boards, ""))
	return nil
}
