package engine

import (
	"regexp"
	"strings"
)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// CleanHTML strips HTML tags and trims whitespace. Used for classifier
// text where tag boundaries don't matter; prompt text goes through the
// markdown converter instead.
func CleanHTML(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}

// illegal filename characters, per the cover-letter naming scheme.
var illegalFilenameRe = regexp.MustCompile(`[\\/*?:"<>|]`)

// SanitizeFilename strips characters that are illegal in filenames on
// common filesystems. The result may be empty for pathological input.
func SanitizeFilename(s string) string {
	return strings.TrimSpace(illegalFilenameRe.ReplaceAllString(s, ""))
}

// classifyText builds the lower-cased name + stripped-description text
// the classifier matches against.
func classifyText(name, descriptionHTML string) string {
	return strings.ToLower(name + " " + CleanHTML(descriptionHTML))
}
