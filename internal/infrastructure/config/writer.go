package config

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

var tableHeader = regexp.MustCompile(`^\s*\[([^\[\]]+)\]\s*$`)

// WriteConfigOrdered encodes cfg as TOML and replaces path with it. Keys
// keep struct order inside a table; tables are sorted by name so that
// editor, logging, schemas and watch always appear in the same place. The
// file is written next to path first and renamed over it.
func WriteConfigOrdered(cfg *Config, path string) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(sortTOMLSections(buf.String())), filePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}

// tomlTable is one [name] header with the lines up to the next header.
type tomlTable struct {
	name string // "schemas" or "logging.file"
	body []string
}

// sortTOMLSections reorders the tables of a TOML document by name. Keys
// that precede the first table stay on top. Tables are separated by exactly
// one blank line and the result ends with a single newline.
func sortTOMLSections(content string) string {
	var (
		head   []string
		tables []tomlTable
	)
	for _, line := range strings.Split(content, "\n") {
		if m := tableHeader.FindStringSubmatch(line); m != nil {
			tables = append(tables, tomlTable{name: strings.TrimSpace(m[1]), body: []string{line}})
			continue
		}
		if n := len(tables); n > 0 {
			tables[n-1].body = append(tables[n-1].body, line)
		} else {
			head = append(head, line)
		}
	}

	sort.SliceStable(tables, func(i, j int) bool { return tables[i].name < tables[j].name })

	chunks := make([]string, 0, len(tables)+1)
	if h := strings.Trim(strings.Join(head, "\n"), "\n"); h != "" {
		chunks = append(chunks, h)
	}
	for _, t := range tables {
		chunks = append(chunks, strings.Trim(strings.Join(t.body, "\n"), "\n"))
	}
	if len(chunks) == 0 {
		return ""
	}
	return strings.Join(chunks, "\n\n") + "\n"
}
