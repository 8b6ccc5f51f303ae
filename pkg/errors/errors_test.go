package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeInvalidSnapshot, status: http.StatusUnprocessableEntity, publicMsg: "pricing configuration is inconsistent", detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing hotel id")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing hotel id" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "hotel_id"})
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeDependency, cause, "load snapshot")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsAndCodeOf(t *testing.T) {
	err := New(CodeNotFound, "hotel missing")
	if got := As(err); got == nil || got.Code() != CodeNotFound {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
	if CodeOf(stdErrors.New("plain")) != CodeInternal {
		t.Fatalf("untyped errors should map to internal")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodeDependency, stdErrors.New("connection refused"), "load snapshot")
	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected two chain entries, got %v", dump.Chain)
	}
}

func TestDumpReadsDriverErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		database string
		check    func(t *testing.T, d ErrorDump)
	}{
		{
			name:     "pgx check violation",
			err:      &pgconn.PgError{Code: "23514", ConstraintName: "ota_channels_commission_check", TableName: "ota_channels", Message: "violates check constraint"},
			database: "postgres",
			check: func(t *testing.T, d ErrorDump) {
				if d.PGCode != "23514" || d.PGConstraint != "ota_channels_commission_check" || d.PGTable != "ota_channels" {
					t.Fatalf("unexpected pgx fields: %+v", d)
				}
			},
		},
		{
			name:     "pq unique violation",
			err:      &pq.Error{Code: "23505", Constraint: "campaigns_channel_promotion_key", Table: "campaigns"},
			database: "postgres",
			check: func(t *testing.T, d ErrorDump) {
				if d.PGCode != "23505" || d.PGConstraint != "campaigns_channel_promotion_key" {
					t.Fatalf("unexpected pq fields: %+v", d)
				}
			},
		},
		{
			name:     "sqlite constraint",
			err:      sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique},
			database: "sqlite",
			check: func(t *testing.T, d ErrorDump) {
				if d.SQLiteCode != sqlite3.ErrConstraint.Error() {
					t.Fatalf("unexpected sqlite code %q", d.SQLiteCode)
				}
				if d.SQLiteExtendedCode != fmt.Sprint(int(sqlite3.ErrConstraintUnique)) {
					t.Fatalf("unexpected sqlite extended code %q", d.SQLiteExtendedCode)
				}
				if d.PGCode != "" {
					t.Fatalf("sqlite errors must not fill postgres fields: %+v", d)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Dump(Wrap(CodeDependency, fmt.Errorf("save channel: %w", tt.err), "persist pricing config"))
			if d.Database != tt.database {
				t.Fatalf("expected database %q, got %q", tt.database, d.Database)
			}
			tt.check(t, d)
		})
	}

	if d := Dump(stdErrors.New("plain")); d.Database != "" {
		t.Fatalf("plain errors carry no database, got %q", d.Database)
	}
}
