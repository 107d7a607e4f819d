package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ErrorDump is the log-only view of an error. None of it reaches clients.
type ErrorDump struct {
	TopMessage string   `json:"top_message"`
	Code       Code     `json:"code,omitempty"`
	Chain      []string `json:"chain,omitempty"`
	RootCause  string   `json:"root_cause,omitempty"`

	PG *PGDetails `json:"pg,omitempty"`
}

// PGDetails holds the server-side fields of a postgres error, whichever driver
// produced it.
type PGDetails struct {
	Code       string `json:"code"`
	Constraint string `json:"constraint,omitempty"`
	Table      string `json:"table,omitempty"`
	Column     string `json:"column,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Message    string `json:"message,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{TopMessage: err.Error(), PG: PGDetailsOf(err)}
	if te := As(err); te != nil {
		d.Code = te.Code()
	}
	var last error
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
		last = e
	}
	if last != err {
		d.RootCause = last.Error()
	}
	return d
}

// PGDetailsOf extracts postgres error fields from pgx or lib/pq errors found
// anywhere in the chain. It returns nil for everything else.
func PGDetailsOf(err error) *PGDetails {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return &PGDetails{
			Code:       pgxErr.Code,
			Constraint: pgxErr.ConstraintName,
			Table:      pgxErr.TableName,
			Column:     pgxErr.ColumnName,
			Detail:     pgxErr.Detail,
			Message:    pgxErr.Message,
		}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &PGDetails{
			Code:       string(pqErr.Code),
			Constraint: pqErr.Constraint,
			Table:      pqErr.Table,
			Column:     pqErr.Column,
			Detail:     pqErr.Detail,
			Message:    pqErr.Message,
		}
	}
	return nil
}

// Fields flattens the dump into log fields, omitting empty values.
func (d ErrorDump) Fields() map[string]any {
	fields := map[string]any{"error_message": d.TopMessage}
	if d.Code != "" {
		fields["error_code"] = string(d.Code)
	}
	if len(d.Chain) > 1 {
		fields["error_chain"] = d.Chain
	}
	if d.RootCause != "" {
		fields["error_root"] = d.RootCause
	}
	if d.PG != nil {
		fields["pg_code"] = d.PG.Code
		for k, v := range map[string]string{
			"pg_constraint": d.PG.Constraint,
			"pg_table":      d.PG.Table,
			"pg_column":     d.PG.Column,
			"pg_detail":     d.PG.Detail,
		} {
			if v != "" {
				fields[k] = v
			}
		}
	}
	return fields
}
