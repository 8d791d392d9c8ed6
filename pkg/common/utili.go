package common

import (
	"regexp"
)

var reStemChars = regexp.MustCompile(`[^0-9A-Za-z_-]`)

// DateStem turns a dataset date into a file name stem. Well-formed dates pass
// unchanged; anything outside [0-9A-Za-z_-] becomes "_" and an empty date
// becomes "undated".
func DateStem(date string) string {
	if date == "" {
		return "undated"
	}
	return reStemChars.ReplaceAllString(date, "_")
}
