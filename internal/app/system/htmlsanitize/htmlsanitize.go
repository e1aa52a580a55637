// Package htmlsanitize strips dangerous markup from user-supplied rich
// text before it is stored. Person notes are the only rich-text field.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.UGCPolicy()

// strict allows no markup at all; used for single-line fields.
var strict = bluemonday.StrictPolicy()

// Sanitize cleans user-generated rich text, keeping common formatting
// tags and safe links while removing scripts and event handlers.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

// PlainText strips all markup from a single-line field.
func PlainText(s string) string {
	return strict.Sanitize(s)
}
