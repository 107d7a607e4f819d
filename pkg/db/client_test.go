package db

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/pkg/config"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
)

type testModel struct {
	ID   int
	Name string
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&testModel{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	db := newTestDB(t)
	client := &Client{conn: db}

	ctx := context.Background()
	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&testModel{Name: "committed"}).Error
	}); err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	var count int64
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "rolled"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithTx to return an error")
	}
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed after rollback: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rollback to leave 1 record, got %d", count)
	}
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	client := &Client{conn: db}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}

type uniqueModel struct {
	ID    int
	Email string `gorm:"uniqueIndex:ux_unique_models_email"`
}

func TestIsUniqueViolation(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:unique_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&uniqueModel{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	if err := conn.Create(&uniqueModel{Email: "a@example.com"}).Error; err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	dupErr := conn.Create(&uniqueModel{Email: "a@example.com"}).Error
	if dupErr == nil {
		t.Fatal("expected duplicate insert to fail")
	}
	if !IsUniqueViolation(dupErr, "") {
		t.Fatalf("expected unique violation, got %v", dupErr)
	}
	if IsUniqueViolation(errors.New("connection reset"), "") {
		t.Fatal("unrelated errors should not match")
	}
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil should not match")
	}
}

func TestFromGormWrapsConnection(t *testing.T) {
	db := newTestDB(t)
	client := FromGorm(db)
	if client.DB() != db {
		t.Fatal("expected wrapped connection to be returned")
	}
}

func TestNewLogsFailedQueriesThroughServiceLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "db-test", Output: buf})

	client, err := New(context.Background(), config.DBConfig{
		Driver: config.DBDriverSQLite,
		DSN:    "file:gorm_logger_test?mode=memory&cache=shared",
	}, logg)
	if err != nil {
		t.Fatalf("open client: %v", err)
	}
	defer client.Close()

	if err := client.DB().Exec("SELECT * FROM missing_table").Error; err == nil {
		t.Fatal("expected query against missing table to fail")
	}
	out := buf.String()
	if !strings.Contains(out, "missing_table") || !strings.Contains(out, `"component":"gorm"`) {
		t.Fatalf("expected gorm failure in service log, got %s", out)
	}
}

func TestNewRequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{Driver: config.DBDriverSQLite}, nil); err == nil {
		t.Fatal("expected missing dsn error")
	}
}

func TestIsUniqueViolationMatchesPostgresConstraint(t *testing.T) {
	pgxErr := fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505", ConstraintName: "ux_user_societies_user_society"})
	if !IsUniqueViolation(pgxErr, "ux_user_societies_user_society") {
		t.Fatal("expected pgx violation to match its constraint")
	}
	if IsUniqueViolation(pgxErr, "ux_users_email") {
		t.Fatal("a different constraint should not match")
	}
	if !IsUniqueViolation(&pq.Error{Code: "23505", Constraint: "ux_users_email"}, "") {
		t.Fatal("expected lib/pq violation to match")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Fatal("foreign key violations are not unique violations")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(fmt.Errorf("create: %w", &pgconn.PgError{Code: "23503"})) {
		t.Fatal("expected pgx foreign key violation to match")
	}
	if !IsForeignKeyViolation(&pq.Error{Code: "23503"}) {
		t.Fatal("expected lib/pq foreign key violation to match")
	}
	if !IsForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")) {
		t.Fatal("expected sqlite foreign key failure to match")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("unique violations are not foreign key violations")
	}
	if IsForeignKeyViolation(nil) {
		t.Fatal("nil should not match")
	}
}
