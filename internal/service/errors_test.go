package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "rain_claims_rain_user_key"}

	if !isUniqueViolation(dup) {
		t.Fatal("unique violation not recognized")
	}
	if !isUniqueViolation(fmt.Errorf("insert claim: %w", dup)) {
		t.Fatal("wrapped unique violation not recognized")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("foreign key violation treated as duplicate")
	}
	if isUniqueViolation(errors.New("connection reset")) {
		t.Fatal("plain error treated as duplicate")
	}
}
