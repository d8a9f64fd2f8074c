package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// CleanText strips any HTML from user-supplied free text and trims
// surrounding whitespace. Notes, triggers and messages are stored and
// rendered as plain text only.
func CleanText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}
