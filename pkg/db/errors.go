package db

import (
	"strings"

	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a unique constraint violation. When
// constraintName is provided, only violations of that constraint match.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}

	if pg := pkgerrors.PGDetailsOf(err); pg != nil {
		if pg.Code != pgUniqueViolation {
			return false
		}
		return constraintName == "" || pg.Constraint == constraintName
	}

	msg := err.Error()
	// sqlite reports the violated columns, not the constraint name.
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return true
	}
	if !strings.Contains(msg, "duplicate key value") {
		return false
	}
	return constraintName == "" || strings.Contains(msg, constraintName)
}

// IsForeignKeyViolation reports whether err is a foreign key violation, i.e. a
// write referenced a row that does not exist.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if pg := pkgerrors.PGDetailsOf(err); pg != nil {
		return pg.Code == pgForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed") ||
		strings.Contains(err.Error(), "violates foreign key constraint")
}
