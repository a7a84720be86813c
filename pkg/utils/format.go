// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"strings"
)

// Pluralize returns "n singular" or "n plural".
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// FileSafe makes a label usable in a file name.
func FileSafe(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
}
