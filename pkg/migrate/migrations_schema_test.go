package migrate_test

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"go.uber.org/multierr"

	"github.com/angelmondragon/societyhub-backend/pkg/config"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
	"github.com/angelmondragon/societyhub-backend/pkg/migrate"
)

func readMigration(t *testing.T, suffix string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", "*_"+suffix+".sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no %s migration file found", suffix)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations: %v", err)
	}
}

func TestMembershipMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "create_user_societies")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS user_societies",
		"CONSTRAINT ux_user_societies_user_society UNIQUE (user_id, society_id)",
		"FOREIGN KEY (society_id) REFERENCES societies(id) ON DELETE CASCADE",
		"CHECK (role IN ('admin', 'manager', 'member'))",
		"DROP TABLE IF EXISTS user_societies",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestAssetMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "create_assets_and_amcs")

	checks := []string{
		"CONSTRAINT ux_asset_categories_society_name UNIQUE (society_id, name)",
		"FOREIGN KEY (category_id) REFERENCES asset_categories(id) ON DELETE RESTRICT",
		"FOREIGN KEY (amc_id) REFERENCES amcs(id) ON DELETE SET NULL",
		"CHECK (contract_end_date >= contract_start_date)",
		"DROP TABLE IF EXISTS amc_service_history",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()
	path, err := migrate.CreateSQLMigration(dir, "Add Society Notices!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_society_notices.sql") {
		t.Fatalf("unexpected migration path %q", path)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("generated migration should validate: %v", err)
	}
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "001_init.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatalf("expected invalid filename error")
	}

	dir = t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "20260101000000_init.sql"), []byte("-- +goose Up\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatalf("expected missing down section error")
	}
}

func TestMaybeRunDevSkipsOutsideDevAndOnSQLite(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "migrate-test", Output: io.Discard})

	cfg := &config.Config{
		App:          config.AppConfig{Env: config.AppEnvProd},
		FeatureFlags: config.FeatureFlagsConfig{AutoMigrate: true},
	}
	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, nil); err != nil {
		t.Fatalf("expected prod run to be skipped, got %v", err)
	}

	cfg.App.Env = config.AppEnvDev
	cfg.DB.Driver = config.DBDriverSQLite
	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, nil); err != nil {
		t.Fatalf("expected sqlite run to be skipped, got %v", err)
	}
}

func TestValidateDirReportsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"bad_name.sql":               "-- +goose Up\n-- +goose Down\n",
		"20260101000000_first.sql":   "-- +goose Up\n-- +goose Down\n",
		"20260101000000_second.sql":  "-- +goose Up\n-- +goose Down\n",
		"20260102000000_no_down.sql": "-- +goose Up\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}

	err := migrate.ValidateDir(dir)
	if got := len(multierr.Errors(err)); got != 3 {
		t.Fatalf("expected 3 problems, got %d: %v", got, err)
	}
}

func TestEmbeddedMatchesMigrationsDir(t *testing.T) {
	embedded, err := fs.Glob(migrate.Embedded(), "*.sql")
	if err != nil {
		t.Fatalf("glob embedded: %v", err)
	}
	onDisk, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	if err != nil {
		t.Fatalf("glob dir: %v", err)
	}
	if len(embedded) == 0 || len(embedded) != len(onDisk) {
		t.Fatalf("embedded set has %d files, dir has %d", len(embedded), len(onDisk))
	}
	for i, path := range onDisk {
		if embedded[i] != filepath.Base(path) {
			t.Fatalf("embedded[%d] = %s, want %s", i, embedded[i], filepath.Base(path))
		}
	}
}

func TestRunRequiresDB(t *testing.T) {
	if err := migrate.Run(context.Background(), nil, migrate.Embedded(), "up", io.Discard); err == nil {
		t.Fatalf("expected error without a db")
	}
	if err := migrate.MigrateToVersion(context.Background(), nil, migrate.Embedded(), "", io.Discard); err == nil {
		t.Fatalf("expected error without a target version")
	}
	if err := migrate.MigrateToVersion(context.Background(), nil, migrate.Embedded(), "latest", io.Discard); err == nil {
		t.Fatalf("expected error for a non numeric version")
	}
}

func TestValidateFSCatchesUnbalancedStatements(t *testing.T) {
	fsys := fstest.MapFS{
		"20260101000000_notices.sql": {Data: []byte("-- +goose Up\n-- +goose StatementBegin\nCREATE TABLE notices ();\n-- +goose Down\nDROP TABLE notices;\n")},
	}
	err := migrate.ValidateFS(fsys)
	if err == nil || !strings.Contains(err.Error(), "StatementBegin") {
		t.Fatalf("expected unbalanced statement error, got %v", err)
	}
	if err := migrate.ValidateFS(migrate.Embedded()); err != nil {
		t.Fatalf("embedded migrations should validate: %v", err)
	}
}
