// Package normalize provides canonical forms for user-entered identifiers.
package normalize

import "strings"

// Email lowercases and trims an email address for storage and lookup.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name; case is preserved.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Phone trims a phone number; formatting is preserved as entered.
func Phone(s string) string {
	return strings.TrimSpace(s)
}
