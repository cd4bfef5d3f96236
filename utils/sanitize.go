package utils

import "github.com/microcosm-cc/bluemonday"

// Green-area titles and descriptions are plain text rendered in the mobile
// app; strip all markup rather than allowing a safe subset.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize removes any HTML from user supplied text to prevent XSS.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
