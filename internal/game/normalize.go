package game

import "strings"

// Normalize prepares typed pinyin for comparison: lower case, trimmed, and
// with the keyboard stand-in "v" replaced by "ü". Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	return strings.ReplaceAll(s, "v", "ü")
}
