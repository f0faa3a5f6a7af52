package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// tableHeaderKeywords identify the goods table header line. A line counts as
// the header when at least four of these column keywords appear on it.
var tableHeaderKeywords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(Sr|S\.?No?\.?|No\.?|#)\b`),
	regexp.MustCompile(`(?i)\b(Item\s*Code|Code|Item)\b`),
	regexp.MustCompile(`(?i)\b(Description|Desc)\b`),
	regexp.MustCompile(`(?i)\b(Type|Unit)\b`),
	regexp.MustCompile(`(?i)\b(Qty|Quantity)\b`),
	regexp.MustCompile(`(?i)\b(Rate|Price|Unit\s*Price)\b`),
	regexp.MustCompile(`(?i)\b(Value|Amount|Total)\b`),
}

const tableHeaderThreshold = 4

var (
	tableEndPattern = regexp.MustCompile(`(?i)(Net\s*Value|Gross\s*Value|Grand\s*Total|Total\s*Amount|Sub.*Total|Page\s*\d+|Customer\s*Information|Thank|Notes?)`)

	// row opener with serial number and an item code of 4 to 15 digits
	itemStartCoded = regexp.MustCompile(`^(\d+)\.?\s+(\d{4,15})\s+(.+)$`)
	// row opener with serial number only
	itemStartSimple = regexp.MustCompile(`^(\d+)\.?\s+(.+)$`)
	itemCodedPrefix = regexp.MustCompile(`^(\d+)\.?\s+(\d{4,15})\s+`)
)

// itemLine is one physical line attributed to an item under assembly. Only
// the opening line of a coded row carries a code.
type itemLine struct {
	code string
	text string
}

// findTableStart returns the index of the goods table header line, or -1.
func findTableStart(lines []string) int {
	for i, line := range lines {
		count := 0
		for _, kw := range tableHeaderKeywords {
			if kw.MatchString(line) {
				count++
			}
		}
		if count >= tableHeaderThreshold {
			return i
		}
	}
	return -1
}

// extractLineItems reconstructs the item rows below the table header. PDF
// extraction frequently splits one logical row across several text lines, so
// rows are accumulated until the next serial-numbered opener or the totals
// section, then parsed as a unit.
func extractLineItems(lines []string) []LineItem {
	var items []LineItem

	start := findTableStart(lines)
	if start == -1 {
		return items
	}

	var current []itemLine
	open := false

	flush := func() {
		if !open || len(current) == 0 {
			return
		}
		if item := parseItem(current); item != nil && item.Description != "" {
			items = append(items, *item)
		}
		current = nil
		open = false
	}

	for _, line := range lines[start+1:] {
		if tableEndPattern.MatchString(line) {
			break
		}

		if m := itemStartCoded.FindStringSubmatch(line); m != nil {
			flush()
			current = []itemLine{{code: m[2], text: m[3]}}
			open = true
			continue
		}

		if m := itemStartSimple.FindStringSubmatch(line); m != nil && !itemCodedPrefix.MatchString(line) {
			flush()
			current = []itemLine{{text: m[2]}}
			open = true
			continue
		}

		if open {
			current = append(current, itemLine{text: line})
		}
	}
	flush()

	return items
}

const unitVocabulary = `PCS|NOS|KG|HR|LTR|PC|UNT|BOX|SET|UNIT|PIECES|TYRE|TIRE`

var (
	bareItemCodePattern = regexp.MustCompile(`\b(\d{4,15})\b`)
	vatPercentToken     = regexp.MustCompile(`\s*\d+\.?\d*%\s*`)
	percentToken        = regexp.MustCompile(`\d+\.?\d*%`)
	standaloneUnit      = regexp.MustCompile(`(?i)\b(` + unitVocabulary + `)\b`)

	// full row: description, unit, qty, rate, value
	itemRowComplete = regexp.MustCompile(`^(.+?)\s+(` + unitVocabulary + `)\s+(\d+)\s+([\d,]+\.?\d{2})\s+([\d,]+\.?\d{2})$`)
	// row without a value column: description, unit, qty, rate
	itemRowWithUnit = regexp.MustCompile(`^(.+?)\s+(` + unitVocabulary + `)\s+(\d+)\s+([\d,]+\.?\d{2})`)
	// adjacent integer and amount, used when no unit column exists
	qtyRatePair = regexp.MustCompile(`(\d+)\s+([\d,]+\.?\d{2})`)

	anyNumberToken = regexp.MustCompile(`([\d,]+\.?\d*)`)
)

// itemTier is one row interpretation: a pure fragment-to-item matcher.
type itemTier struct {
	name  string
	parse func(full, cleaned, code string) *LineItem
}

// itemTiers are the row interpretations in decreasing order of structure.
// Exactly one tier produces each item; the first tier whose shape fits wins
// and the rest are never consulted for that row.
var itemTiers = []itemTier{
	{"complete", parseItemComplete},
	{"unit", parseItemWithUnit},
	{"pair", parseItemQtyRatePairs},
	{"heuristic", parseItemHeuristic},
}

// parseItem joins an item's lines into one block and runs it through the
// tier ladder. VAT percentages riding in the rate column are stripped before
// the structured tiers see the text.
func parseItem(itemLines []itemLine) *LineItem {
	if len(itemLines) == 0 {
		return nil
	}

	code := itemLines[0].code
	texts := make([]string, len(itemLines))
	for i, l := range itemLines {
		texts[i] = l.text
	}
	full := strings.Join(texts, " ")

	if code == "" {
		if m := bareItemCodePattern.FindStringSubmatch(full); m != nil {
			code = m[1]
		}
	}

	cleaned := strings.TrimSpace(vatPercentToken.ReplaceAllString(full, " "))

	for _, tier := range itemTiers {
		if item := tier.parse(full, cleaned, code); item != nil {
			return item
		}
	}
	return nil
}

// parseItemComplete handles fully structured rows. The value column is taken
// verbatim from the document, never recomputed, so a vendor's own rounding
// survives extraction.
func parseItemComplete(full, cleaned, code string) *LineItem {
	m := itemRowComplete.FindStringSubmatch(cleaned)
	if m == nil {
		return nil
	}

	qty, err := strconv.Atoi(m[3])
	if err != nil {
		return nil
	}
	rate, err := decimal.NewFromString(strings.ReplaceAll(m[4], ",", ""))
	if err != nil {
		return nil
	}
	value, err := decimal.NewFromString(strings.ReplaceAll(m[5], ",", ""))
	if err != nil {
		return nil
	}

	return &LineItem{
		Code:        code,
		Description: cleanDescription(stripItemCode(m[1], code)),
		Unit:        strings.ToUpper(m[2]),
		Qty:         qty,
		Rate:        rate,
		Value:       value,
	}
}

// parseItemWithUnit handles rows whose value column was cut off. The value
// is reconstructed as qty times rate.
func parseItemWithUnit(full, cleaned, code string) *LineItem {
	m := itemRowWithUnit.FindStringSubmatch(cleaned)
	if m == nil {
		return nil
	}

	qty, err := strconv.Atoi(m[3])
	if err != nil {
		return nil
	}
	rate, err := decimal.NewFromString(strings.ReplaceAll(m[4], ",", ""))
	if err != nil {
		return nil
	}

	return &LineItem{
		Code:        code,
		Description: cleanDescription(stripItemCode(m[1], code)),
		Unit:        strings.ToUpper(m[2]),
		Qty:         qty,
		Rate:        rate,
		Value:       rate.Mul(decimal.NewFromInt(int64(qty))),
	}
}

// parseItemQtyRatePairs handles rows without a recognizable unit column by
// pairing adjacent integer/amount tokens: the first pair's integer is the
// quantity, the second pair's amount is the rate.
func parseItemQtyRatePairs(full, cleaned, code string) *LineItem {
	matches := qtyRatePair.FindAllStringSubmatch(full, -1)
	if len(matches) < 2 {
		return nil
	}

	qty, err := strconv.Atoi(matches[0][1])
	if err != nil {
		return nil
	}
	rate, err := decimal.NewFromString(strings.ReplaceAll(matches[1][2], ",", ""))
	if err != nil {
		return nil
	}

	unit := ""
	if m := standaloneUnit.FindStringSubmatch(full); m != nil {
		unit = strings.ToUpper(m[1])
	}

	description := stripItemCode(full, code)
	for i := len(matches) - 1; i >= 0; i-- {
		description = strings.TrimSpace(strings.Replace(description, matches[i][0], "", 1))
	}
	description = stripUnitToken(description, unit)
	description = strings.TrimSpace(percentToken.ReplaceAllString(description, ""))

	return &LineItem{
		Code:        code,
		Description: cleanDescription(description),
		Unit:        unit,
		Qty:         qty,
		Rate:        rate,
		Value:       rate.Mul(decimal.NewFromInt(int64(qty))),
	}
}

var (
	qtyCandidateCap = decimal.NewFromInt(1000)
	integerValueCap = decimal.NewFromInt(10000)
	valueThreshold  = decimal.NewFromInt(1000)
)

// parseItemHeuristic is the last resort for badly mangled rows. It
// classifies every number on the row: small integers are quantity
// candidates, everything else a rate or value, then reconciles them.
// Magnitudes above 1000 read as a row total; rate is derived from it.
func parseItemHeuristic(full, cleaned, code string) *LineItem {
	type numToken struct {
		value     decimal.Decimal
		original  string
		isInteger bool
	}

	var numbers []numToken
	for _, m := range anyNumberToken.FindAllStringSubmatch(cleaned, -1) {
		d, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			continue
		}
		numbers = append(numbers, numToken{
			value:     d,
			original:  m[1],
			isInteger: d.IsInteger() && d.LessThan(integerValueCap),
		})
	}

	unit := ""
	if m := standaloneUnit.FindStringSubmatch(cleaned); m != nil {
		unit = strings.ToUpper(m[1])
	}

	var quantities, amounts []decimal.Decimal
	for _, n := range numbers {
		if n.isInteger && n.value.IsPositive() && n.value.LessThan(qtyCandidateCap) {
			quantities = append(quantities, n.value)
		} else {
			amounts = append(amounts, n.value)
		}
	}

	qty := 1
	rate := decimal.Zero
	value := decimal.Zero

	switch {
	case len(quantities) > 0 && len(amounts) > 0:
		qty = int(decimalMin(quantities).IntPart())
		largest := decimalMax(amounts)
		if largest.GreaterThan(valueThreshold) {
			value = largest
			rate = value.Div(decimal.NewFromInt(int64(qty)))
		} else {
			rate = largest
			value = rate.Mul(decimal.NewFromInt(int64(qty)))
		}
	case len(quantities) > 0:
		qty = int(decimalMin(quantities).IntPart())
	case len(amounts) > 0:
		rate = decimalMax(amounts)
		value = rate
	}

	description := stripItemCode(full, code)
	// remove longest tokens first so "1,037,400.00" goes before "4"
	tokens := make([]string, 0, len(numbers))
	for _, n := range numbers {
		tokens = append(tokens, n.original)
	}
	for _, tok := range sortByLengthDesc(tokens) {
		description = strings.TrimSpace(strings.Replace(description, tok, "", 1))
	}
	description = stripUnitToken(description, unit)
	description = strings.TrimSpace(percentToken.ReplaceAllString(description, ""))

	if len(description) < 2 {
		return nil
	}

	return &LineItem{
		Code:        code,
		Description: cleanDescription(description),
		Unit:        unit,
		Qty:         qty,
		Rate:        rate,
		Value:       value,
	}
}

func stripItemCode(text, code string) string {
	if code == "" {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(strings.Replace(text, code, "", 1))
}

func stripUnitToken(text, unit string) string {
	if unit == "" {
		return text
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(unit) + `\b`)
	return strings.TrimSpace(re.ReplaceAllString(text, ""))
}

func decimalMin(ds []decimal.Decimal) decimal.Decimal {
	min := ds[0]
	for _, d := range ds[1:] {
		if d.LessThan(min) {
			min = d
		}
	}
	return min
}

func decimalMax(ds []decimal.Decimal) decimal.Decimal {
	max := ds[0]
	for _, d := range ds[1:] {
		if d.GreaterThan(max) {
			max = d
		}
	}
	return max
}

func sortByLengthDesc(tokens []string) []string {
	out := make([]string, len(tokens))
	copy(out, tokens)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

var (
	edgeDashes     = regexp.MustCompile(`^[-\s]+|[-\s]+$`)
	isolatedMarks  = regexp.MustCompile(`\s+[-\*\.]\s+`)
	noiseWordsList = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bFOR\b`),
		regexp.MustCompile(`(?i)\bCAR\b`),
		regexp.MustCompile(`(?i)\bTYRES\b`),
		regexp.MustCompile(`(?i)\bRIMS\b`),
		regexp.MustCompile(`(?i)\bSMALL\b`),
	}
)

// cleanDescription normalizes whitespace and strips leftover separators,
// percentage fragments, and filler words from a reconstructed description.
func cleanDescription(description string) string {
	if description == "" {
		return ""
	}

	description = collapseWhitespace.ReplaceAllString(description, " ")
	description = edgeDashes.ReplaceAllString(description, "")
	description = isolatedMarks.ReplaceAllString(description, " ")
	description = strings.TrimSpace(percentToken.ReplaceAllString(description, ""))

	for _, noise := range noiseWordsList {
		description = strings.TrimSpace(noise.ReplaceAllString(description, ""))
	}
	return strings.TrimSpace(collapseWhitespace.ReplaceAllString(description, " "))
}
