package media

import "regexp"

// Invalid Windows characters are \ / : * ? " < > |, invalid POSIX
// characters are / and NUL.
var (
	slashRe    = regexp.MustCompile(`[\\/]`)
	separateRe = regexp.MustCompile(`[:|] ?`)
	stripRe    = regexp.MustCompile("[*?\"<>\\x00]")
)

// Scrub makes title safe to use as a single path segment. Slashes become
// hyphens, colons and pipes become " - ", and the remaining reserved
// characters are removed. Scrub is idempotent.
func Scrub(title string) string {
	title = slashRe.ReplaceAllString(title, "-")
	title = separateRe.ReplaceAllString(title, " - ")
	return stripRe.ReplaceAllString(title, "")
}
