package testing

import (
	"regexp"
	"strings"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes all ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// ContainsInOrder checks if the output contains all specified strings in order.
func ContainsInOrder(output string, expected ...string) bool {
	last := 0
	for _, exp := range expected {
		idx := strings.Index(output[last:], exp)
		if idx == -1 {
			return false
		}
		last += idx + len(exp)
	}
	return true
}
