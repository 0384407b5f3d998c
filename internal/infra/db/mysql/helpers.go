package mysql

import (
	"database/sql"
	"strings"
)

// nullIfBlank maps nil or whitespace-only values to SQL NULL.
func nullIfBlank(s *string) sql.NullString {
	if s == nil || strings.TrimSpace(*s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func ptrOrNil(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
