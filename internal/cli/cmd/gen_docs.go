package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/bnema/eve/internal/infrastructure/config"
)

const docsDirPerm = 0o755

var (
	genDocsOutputDir string
	genDocsFormat    string
)

// docGenerator writes the reference for root into dir and names the file
// extension it produces.
type docGenerator struct {
	ext   string
	write func(root *cobra.Command, dir string) error
}

var docGenerators = map[string]docGenerator{
	"man": {ext: ".1", write: func(root *cobra.Command, dir string) error {
		date := docsDate()
		return doc.GenManTree(root, &doc.GenManHeader{
			Title:   "EVE",
			Section: "1",
			Source:  "eve " + buildInfo.Version,
			Manual:  "eve reference",
			Date:    &date,
		}, dir)
	}},
	"markdown": {ext: ".md", write: doc.GenMarkdownTree},
}

var genDocsCmd = &cobra.Command{
	Use:   "gen-docs",
	Short: "Write the command reference as man pages or markdown",
	Long: `Write one page per eve command, built from the command tree itself:
usage line, descriptions, flags and inherited flags.

Formats:
  man       section 1 pages, written to $XDG_DATA_HOME/man/man1 unless
            --output is given; refresh the index with 'mandb' afterwards
  markdown  one .md file per command, written to ./docs by default

SOURCE_DATE_EPOCH, when set, fixes the date stamped on man pages.

Examples:
  eve gen-docs
  eve gen-docs -f markdown -o site/reference`,
	Args: cobra.NoArgs,
	RunE: runGenDocs,
}

func init() {
	rootCmd.AddCommand(genDocsCmd)
	genDocsCmd.Flags().StringVarP(&genDocsOutputDir, "output", "o", "", "directory to write the pages to")
	genDocsCmd.Flags().StringVarP(&genDocsFormat, "format", "f", "man", "page format: man or markdown")
}

func runGenDocs(_ *cobra.Command, _ []string) error {
	dir := genDocsOutputDir
	if dir == "" {
		switch genDocsFormat {
		case "man":
			manDir, err := config.GetManDir()
			if err != nil {
				return fmt.Errorf("resolve man directory: %w", err)
			}
			dir = manDir
		default:
			dir = "docs"
		}
	}

	pages, err := generateDocs(rootCmd, genDocsFormat, dir)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d %s pages to %s\n", len(pages), genDocsFormat, dir)
	for _, p := range pages {
		fmt.Printf("  %s\n", p)
	}
	return nil
}

// generateDocs writes the pages of format into dir and returns their file
// names, sorted.
func generateDocs(root *cobra.Command, format, dir string) ([]string, error) {
	gen, ok := docGenerators[format]
	if !ok {
		return nil, fmt.Errorf("unknown docs format %q (want man or markdown)", format)
	}
	if err := os.MkdirAll(dir, docsDirPerm); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	root.DisableAutoGenTag = true
	if err := gen.write(root, dir); err != nil {
		return nil, fmt.Errorf("write %s pages: %w", format, err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*"+gen.ext))
	if err != nil {
		return nil, err
	}
	pages := make([]string, 0, len(matches))
	for _, m := range matches {
		pages = append(pages, filepath.Base(m))
	}
	sort.Strings(pages)
	return pages, nil
}

func docsDate() time.Time {
	if epoch, err := strconv.ParseInt(os.Getenv("SOURCE_DATE_EPOCH"), 10, 64); err == nil {
		return time.Unix(epoch, 0).UTC()
	}
	return time.Now()
}
