package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// StrictPolicy neutralizes all markup in user-supplied text. Every
// free-text field goes through it before storage and before display.
var StrictPolicy *bluemonday.Policy

func init() {
	StrictPolicy = bluemonday.StrictPolicy()
}

// Escape strips HTML elements and escapes markup-significant characters
// in user input
func Escape(input string) string {
	return StrictPolicy.Sanitize(strings.TrimSpace(input))
}

// EscapeAll applies Escape to each value in place and returns the slice
func EscapeAll(values ...*string) {
	for _, v := range values {
		if v != nil {
			*v = Escape(*v)
		}
	}
}
