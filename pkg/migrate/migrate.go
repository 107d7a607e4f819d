package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/pressly/goose/v3"
)

// DefaultDir is where create and validate write and read migration files.
const DefaultDir = "pkg/migrate/migrations"

//go:embed migrations/*.sql
var embedded embed.FS

// Embedded returns the migration set compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "migrations")
	if err != nil {
		panic(fmt.Sprintf("migrate: embedded migrations: %v", err))
	}
	return sub
}

// Source returns the on-disk migrations in dir, or the embedded set when dir
// is empty.
func Source(dir string) fs.FS {
	if dir == "" {
		return Embedded()
	}
	return os.DirFS(dir)
}

func newProvider(db *sql.DB, fsys fs.FS) (*goose.Provider, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	if fsys == nil {
		return nil, fmt.Errorf("migration source is required")
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return provider, nil
}

// Run executes up, down, redo or status against db. Results are written to out
// one line per migration.
func Run(ctx context.Context, db *sql.DB, fsys fs.FS, command string, out io.Writer) error {
	provider, err := newProvider(db, fsys)
	if err != nil {
		return err
	}
	if out == nil {
		out = io.Discard
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		writeResults(out, results...)
		if err != nil {
			return fmt.Errorf("goose up: %w", err)
		}
	case "down":
		result, err := provider.Down(ctx)
		writeResults(out, result)
		if err != nil {
			return fmt.Errorf("goose down: %w", err)
		}
	case "redo":
		result, err := provider.Down(ctx)
		writeResults(out, result)
		if err != nil {
			return fmt.Errorf("goose redo (down): %w", err)
		}
		result, err = provider.UpByOne(ctx)
		writeResults(out, result)
		if err != nil {
			return fmt.Errorf("goose redo (up): %w", err)
		}
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("goose status: %w", err)
		}
		for _, st := range statuses {
			applied := "pending"
			if st.State == goose.StateApplied {
				applied = st.AppliedAt.UTC().Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(out, "%-24s %s\n", applied, st.Source.Path)
		}
	default:
		return fmt.Errorf("unsupported goose command %q", command)
	}
	return nil
}

// MigrateToVersion moves the schema up or down until the recorded version
// equals targetVersion.
func MigrateToVersion(ctx context.Context, db *sql.DB, fsys fs.FS, targetVersion string, out io.Writer) error {
	if targetVersion == "" {
		return fmt.Errorf("targetVersion is required")
	}
	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}

	provider, err := newProvider(db, fsys)
	if err != nil {
		return err
	}
	if out == nil {
		out = io.Discard
	}

	current, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	var results []*goose.MigrationResult
	switch {
	case current == target:
		return nil
	case current < target:
		results, err = provider.UpTo(ctx, target)
	default:
		results, err = provider.DownTo(ctx, target)
	}
	writeResults(out, results...)
	if err != nil {
		return fmt.Errorf("goose migrate %d -> %d: %w", current, target, err)
	}
	return nil
}

func writeResults(out io.Writer, results ...*goose.MigrationResult) {
	for _, r := range results {
		if r == nil || r.Source == nil {
			continue
		}
		fmt.Fprintf(out, "%-4s %-60s %s\n", r.Direction, r.Source.Path, r.Duration.Round(time.Millisecond))
	}
}
