package utils

import "strings"

// NewNullString maps an optional value that was left blank, such as the
// customer name or phone on a walk-in bill, to NULL when it is archived.
func NewNullString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
