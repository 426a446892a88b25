package tui

import "strings"

// MaskValue hides all but the tail of a value. Short values are hidden
// entirely.
func MaskValue(value string) string {
	runes := []rune(value)
	length := len(runes)
	switch {
	case length == 0:
		return ""
	case length <= 4:
		return strings.Repeat("*", length)
	case length <= 8:
		return strings.Repeat("*", length-2) + string(runes[length-2:])
	default:
		return strings.Repeat("*", length-4) + string(runes[length-4:])
	}
}
