// Package migrations embeds SQL migration files for the SQL consent store and
// integration tests.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.sql
var FS embed.FS

// Up returns the forward migrations in apply order.
func Up() ([]string, error) {
	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	statements := make([]string, 0, len(files))
	for _, file := range files {
		content, err := fs.ReadFile(FS, file)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", file, err)
		}
		statements = append(statements, string(content))
	}
	return statements, nil
}
