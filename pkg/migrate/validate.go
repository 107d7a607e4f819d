package migrate

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"strings"

	"go.uber.org/multierr"
)

var sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

const (
	upMarker    = "-- +goose Up"
	downMarker  = "-- +goose Down"
	beginMarker = "-- +goose StatementBegin"
	endMarker   = "-- +goose StatementEnd"
)

// ValidateDir runs ValidateFS over the migrations on disk in dir.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}
	return ValidateFS(os.DirFS(dir))
}

// ValidateFS checks file names, version uniqueness and goose annotations of
// every .sql file at the root of fsys. All problems are returned together.
func ValidateFS(fsys fs.FS) error {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}

	seen := map[string]string{}
	var errs error
	for _, name := range names {
		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			errs = multierr.Append(errs, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name))
			continue
		}
		version := m[1]
		if prev, ok := seen[version]; ok {
			errs = multierr.Append(errs, fmt.Errorf("duplicate migration version %s in %q and %q", version, prev, name))
			continue
		}
		seen[version] = name

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("read file %q: %w", path.Clean(name), err))
			continue
		}
		errs = multierr.Append(errs, checkAnnotations(name, string(data)))
	}
	return errs
}

func checkAnnotations(name, body string) error {
	var errs error
	if !strings.Contains(body, upMarker) {
		errs = multierr.Append(errs, fmt.Errorf("migration %q missing %q", name, upMarker))
	}
	if !strings.Contains(body, downMarker) {
		errs = multierr.Append(errs, fmt.Errorf("migration %q missing %q", name, downMarker))
	}
	if begins, ends := strings.Count(body, beginMarker), strings.Count(body, endMarker); begins != ends {
		errs = multierr.Append(errs, fmt.Errorf("migration %q has %d StatementBegin and %d StatementEnd", name, begins, ends))
	}
	return errs
}
