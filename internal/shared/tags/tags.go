package tags

import "strings"

// Parse turns a free-text tag string into a tag list: every whitespace
// character is removed first, then the result is split on commas.
// Empty input yields an empty list.
func Parse(raw string) []string {
	stripped := strings.Join(strings.Fields(raw), "")
	if stripped == "" {
		return []string{}
	}
	return strings.Split(stripped, ",")
}
