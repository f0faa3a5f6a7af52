package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// codeNoPatterns are tried per line, in order, until a candidate passes
// validation. The order runs from explicit labels down to bare positional
// codes; on each line every pattern is attempted before moving on, so an
// explicitly labelled code earlier in the document always wins.
var codeNoPatterns = []*regexp.Regexp{
	// explicit "Code No" with assorted separators
	regexp.MustCompile(`(?i)(?:Code\s*(?:No|Number|#)?)\s*[\t:\-]?\s*([A-Za-z0-9\-_/]{2,30})`),
	// customer code variants
	regexp.MustCompile(`(?i)(?:Customer\s*Code|Cust\.?\s*Code)\s*[\t:\-]?\s*([A-Za-z0-9\-_/]{2,30})`),
	// code label at start of line
	regexp.MustCompile(`(?i)^(?:Code|COD)\s+([A-Za-z0-9\-_/]{2,30})(?:\s|$)`),
	// bare alphanumeric code such as A01696 or AB12345
	regexp.MustCompile(`(?i)(?:^|\s)([A-Z]{1,4}\d{2,8}[A-Z]?)(?:\s|$)`),
	regexp.MustCompile(`(?i)Code\s*:\s*([A-Za-z0-9\-_/]{2,30})`),
	// code wrapped in brackets or parentheses
	regexp.MustCompile(`(?i)Code\s*No\s*[\[\(]?\s*([A-Za-z0-9\-_/]{2,30})\s*[\]\)]?`),
}

var (
	dateShapePattern   = regexp.MustCompile(`^\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}$`)
	pureNumericPattern = regexp.MustCompile(`^\d+\.?\d*$`)
	hasLetterPattern   = regexp.MustCompile(`[A-Za-z]`)
	hasDigitPattern    = regexp.MustCompile(`\d`)
	productCodePattern = regexp.MustCompile(`(?i)^[A-Z0-9\-_/]{3,20}$`)
)

// codeNoDenylist rejects candidates that are really labels or page markers.
var codeNoDenylist = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^page\d*$`),
	regexp.MustCompile(`(?i)^\d+of\d+$`),
	regexp.MustCompile(`(?i)^total$`),
	regexp.MustCompile(`(?i)^subtotal$`),
	regexp.MustCompile(`(?i)^vat$`),
	regexp.MustCompile(`(?i)^tax$`),
	regexp.MustCompile(`(?i)^amount$`),
	regexp.MustCompile(`(?i)^invoice$`),
	regexp.MustCompile(`(?i)^proforma$`),
	regexp.MustCompile(`(?i)^customer$`),
	regexp.MustCompile(`(?i)^name$`),
	regexp.MustCompile(`(?i)^address$`),
	regexp.MustCompile(`(?i)^phone$`),
	regexp.MustCompile(`(?i)^email$`),
	regexp.MustCompile(`(?i)^ref$`),
	regexp.MustCompile(`(?i)^reference$`),
	regexp.MustCompile(`(?i)^date$`),
	regexp.MustCompile(`(?i)^terms$`),
}

// extractCodeNo scans for the customer code number. When no labelled or
// positional pattern yields a valid candidate, it falls back to scanning
// the customer-details section.
func extractCodeNo(lines []string) string {
	for _, line := range lines {
		for _, pattern := range codeNoPatterns {
			m := pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			candidate := strings.TrimSpace(m[1])
			if isValidCodeNo(candidate) {
				return candidate
			}
		}
	}
	return extractCodeNoFromCustomerSection(lines)
}

// isValidCodeNo filters out dates, amounts, page markers, and stray labels
// that happen to sit next to a "Code" token in the text.
func isValidCodeNo(candidate string) bool {
	if len(candidate) < 2 {
		return false
	}

	if dateShapePattern.MatchString(candidate) {
		return false
	}

	// Long pure numbers are amounts or phone fragments, not codes. Short
	// ones above 100000 still look like monetary values.
	if pureNumericPattern.MatchString(candidate) {
		if len(candidate) > 6 {
			return false
		}
		if n, err := strconv.Atoi(candidate); err == nil && n > 100000 {
			return false
		}
	}

	for _, pattern := range codeNoDenylist {
		if pattern.MatchString(candidate) {
			return false
		}
	}

	hasLetters := hasLetterPattern.MatchString(candidate)
	hasNumbers := hasDigitPattern.MatchString(candidate)

	if hasLetters || (hasNumbers && len(candidate) <= 8) {
		return true
	}

	return productCodePattern.MatchString(candidate)
}

var (
	customerSectionStart = regexp.MustCompile(`(?i)customer|client|cust\.?`)
	sellerSectionMarker  = regexp.MustCompile(`(?i)seller|vendor`)
	customerSectionEnd   = regexp.MustCompile(`(?i)description|items|qty|rate|amount|invoice|proforma`)

	customerCodePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:code|ref)\s*[:#]?\s*([A-Z0-9\-_/]{3,20})`),
		regexp.MustCompile(`(?i)^(?:code|ref)\s+([A-Z0-9\-_/]{3,20})`),
		regexp.MustCompile(`(?i)([A-Z]{2,4}\d{3,8})`),
	}
)

// extractCodeNoFromCustomerSection looks for a code inside the block of
// lines following a customer/client heading, stopping at the first line
// that belongs to the item table or another section.
func extractCodeNoFromCustomerSection(lines []string) string {
	inSection := false
	for _, line := range lines {
		if customerSectionStart.MatchString(line) && !sellerSectionMarker.MatchString(line) {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		if customerSectionEnd.MatchString(line) {
			break
		}
		for _, pattern := range customerCodePatterns {
			m := pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			candidate := strings.TrimSpace(m[1])
			if isValidCodeNo(candidate) {
				return candidate
			}
		}
	}
	return ""
}
