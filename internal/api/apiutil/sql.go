package apiutil

import (
	"database/sql"
	"strings"
)

// ToNullString stores blank input as NULL.
func ToNullString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
