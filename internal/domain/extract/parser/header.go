package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var invoiceNoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:PI|Invoice)\s*(?:No|Number|#|\.)\s*[:\-]?\s*([A-Z0-9\-]{3,30})`),
	regexp.MustCompile(`(?i)(?:PI|Invoice)\s*[:\-]?\s*([A-Z0-9\-]{3,30})`),
	regexp.MustCompile(`(?i)PI\s*[:]?\s*([A-Z0-9\-]{3,30})`),
}

func extractInvoiceNo(lines []string) string {
	for _, line := range lines {
		for _, pattern := range invoiceNoPatterns {
			m := pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			candidate := strings.TrimSpace(m[1])
			if len(candidate) >= 3 {
				return candidate
			}
		}
	}
	return ""
}

var (
	customerNameLabel   = regexp.MustCompile(`(?i)Customer\s*Name`)
	customerNamePattern = regexp.MustCompile(`(?i)Customer\s*Name\s*[\t:]?\s*(.+?)(?:\s+Date|$)`)
	leadingDatePrefix   = regexp.MustCompile(`^\d{1,2}[/-]`)
	contactLinePrefix   = regexp.MustCompile(`(?i)^(?:Tel|Fax|Email|Phone|Address|Date)`)
)

// extractCustomerName reads the name off the Customer Name line, or from the
// following line when the label stands alone. A candidate that starts like a
// date means the name column was empty and the Date column bled over.
func extractCustomerName(lines []string) string {
	for i, line := range lines {
		if !customerNameLabel.MatchString(line) {
			continue
		}
		if m := customerNamePattern.FindStringSubmatch(line); m != nil {
			name := strings.TrimSpace(m[1])
			if name != "" && !leadingDatePrefix.MatchString(name) {
				return name
			}
		} else if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if next != "" && !contactLinePrefix.MatchString(next) {
				return next
			}
		}
	}
	return ""
}

var datePattern = regexp.MustCompile(`(?i)(?:Date|Invoice\s*Date)\s*[\t:]?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)

func extractDate(lines []string) string {
	for _, line := range lines {
		if m := datePattern.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}

var (
	addressLabelPattern = regexp.MustCompile(`(?i)(?:P\.?O\.?\s*B(?:OX)?|Address)\s*[\t:]?\s*(.+?)$`)
	addressStopPrefix   = regexp.MustCompile(`(?i)^(?:Tel|Fax|Email|Phone|Cust|Ref|Date|Del|Kind)`)
	addressInlineLabels = regexp.MustCompile(`(?i)\s*(?:Cust\s*Ref|Ref\s*Date|Del\.?\s*Date)\s*:.*$`)
	// strips a label and its immediate value when the columns of a
	// multi-column layout collapsed onto the address line
	addressJoinedLabels = regexp.MustCompile(`(?i)\s+(?:Cust\s*Ref|Ref\s*Date|Del\.?\s*Date)\s*:\s*\S*`)
	collapseWhitespace  = regexp.MustCompile(`\s+`)
)

// extractAddress starts at a P.O. BOX or Address label and collects up to
// five continuation lines, stopping at the first contact or reference line.
// Neighbouring-column labels that bled onto the address lines are stripped.
func extractAddress(lines []string) string {
	for i, line := range lines {
		m := addressLabelPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		var parts []string
		if first := strings.TrimSpace(m[1]); first != "" {
			parts = append(parts, first)
		}
		for j := i + 1; j < len(lines) && j < i+6; j++ {
			next := strings.TrimSpace(lines[j])
			if addressStopPrefix.MatchString(next) {
				break
			}
			if leadingDatePrefix.MatchString(next) {
				continue
			}
			cleaned := strings.TrimSpace(addressInlineLabels.ReplaceAllString(next, ""))
			if cleaned != "" {
				parts = append(parts, cleaned)
			}
		}

		address := strings.Join(parts, " ")
		address = addressJoinedLabels.ReplaceAllString(address, "")
		address = strings.TrimSpace(collapseWhitespace.ReplaceAllString(address, " "))
		if address != "" {
			return address
		}
	}
	return ""
}

var phonePattern = regexp.MustCompile(`(?i)(?:Tel|Telephone|Phone)\s*[\t:]?\s*([\+\d][\d\s\-/\(\)\.\,]{5,})`)

func extractPhone(lines []string) string {
	for _, line := range lines {
		if m := phonePattern.FindStringSubmatch(line); m != nil {
			phone := strings.TrimSpace(m[1])
			if len(phone) >= 7 {
				return phone
			}
		}
	}
	return ""
}

var emailPattern = regexp.MustCompile(`([\w\.-]+@[\w\.-]+\.\w+)`)

func extractEmail(lines []string) string {
	for _, line := range lines {
		if m := emailPattern.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}

var (
	referencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Reference|Cust\s*Ref|Ref\.?)\s*[:\-]?\s*(.+?)(?:\s+Date|$)`),
		regexp.MustCompile(`(?i)Ref\s*[:\-]?\s*([A-Z0-9\s\-]{3,30})`),
	}
	referenceTrailingLabels = regexp.MustCompile(`(?i)\s*(?:Date|Ref\s*Date|Del\s*Date).*$`)
)

func extractReference(lines []string) string {
	for _, line := range lines {
		for _, pattern := range referencePatterns {
			m := pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			candidate := strings.TrimSpace(m[1])
			if candidate == "" || leadingDatePrefix.MatchString(candidate) {
				continue
			}
			candidate = strings.TrimSpace(referenceTrailingLabels.ReplaceAllString(candidate, ""))
			if len(candidate) >= 2 {
				return candidate
			}
		}
	}
	return ""
}

// Label alternatives for each monetary header field, most specific first.
var (
	subtotalLabels = compileAmountLabels(`Net\s*Value`, `Subtotal`, `Net\s*Amount`)
	taxLabels      = compileAmountLabels(`VAT`, `Tax`, `GST`)
	totalLabels    = compileAmountLabels(`Gross\s*Value`, `Grand\s*Total`, `Total\s*Amount`)
)

var nonAmountChars = regexp.MustCompile(`[^\d\.]`)

func compileAmountLabels(labels ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(labels))
	for i, label := range labels {
		patterns[i] = regexp.MustCompile(`(?i)` + label + `\s*[:=]?\s*(?:TSH|TZS|UGX)?\s*([\d,]+\.?\d*)`)
	}
	return patterns
}

// extractMonetary finds the first amount following any of the given labels.
// Labels are tried in priority order across the whole document, so a
// "Net Value" anywhere beats a "Subtotal" on an earlier line. An optional
// currency token between label and amount is skipped.
func extractMonetary(lines []string, patterns []*regexp.Regexp) *decimal.Decimal {
	for _, pattern := range patterns {
		for _, line := range lines {
			m := pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			cleaned := nonAmountChars.ReplaceAllString(strings.ReplaceAll(m[1], ",", ""), "")
			if cleaned == "" {
				continue
			}
			d, err := decimal.NewFromString(cleaned)
			if err != nil {
				continue
			}
			return &d
		}
	}
	return nil
}
