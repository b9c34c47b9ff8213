package model

import "strings"

// TagSeparator is what JoinTags puts between tags when rendering them back
// into the comma-separated form field.
const TagSeparator = ", "

// ParseTags turns the comma-separated tags field into an ordered tag list.
//
// Each piece is trimmed of surrounding whitespace and empty pieces are
// dropped. Order and duplicates are kept exactly as typed:
//
//	ParseTags("a, b ,, c")  → ["a", "b", "c"]
//	ParseTags("go, go")     → ["go", "go"]
//	ParseTags("  ")         → []
func ParseTags(text string) []string {
	tags := []string{}
	for _, piece := range strings.Split(text, ",") {
		if tag := strings.TrimSpace(piece); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTags renders tags back into the form field's text.
// JoinTags(ParseTags(s)) == s for any s without empty or padded segments.
func JoinTags(tags []string) string {
	return strings.Join(tags, TagSeparator)
}
