package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies every *.up.sql file for the dialect in lexical order.
// Statements are written with IF NOT EXISTS so re-running is a no-op.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	dir := path.Join("migrations", string(dialect))
	entries, err := migrationsFS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("Migrate: read %s: %w", dir, err)
	}

	var upFiles []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			upFiles = append(upFiles, e.Name())
		}
	}
	sort.Strings(upFiles)

	for _, f := range upFiles {
		content, err := migrationsFS.ReadFile(path.Join(dir, f))
		if err != nil {
			return fmt.Errorf("Migrate: read %s: %w", f, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("Migrate: execute %s: %w", f, err)
		}
	}

	return nil
}
