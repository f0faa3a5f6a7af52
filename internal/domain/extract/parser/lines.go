package parser

import (
	"regexp"
	"strings"
)

// anchorPattern marks the start of invoice content. Cover pages and email
// preambles before the first match carry no extractable fields and only
// produce false positives, so parsing starts at the anchor when one exists.
var anchorPattern = regexp.MustCompile(`(?i)Proforma\s+Invoice|PI\s*No|Code\s*No`)

// NormalizeLines splits raw extracted text into trimmed, non-blank lines.
// CRLF and bare CR line endings are folded into LF first so that documents
// produced on any platform split identically.
func NormalizeLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// AnchorIndex returns the index of the first line that looks like invoice
// content. When no line matches, it returns 0 so the caller parses the
// whole document rather than nothing.
func AnchorIndex(lines []string) int {
	for i, line := range lines {
		if anchorPattern.MatchString(line) {
			return i
		}
	}
	return 0
}
