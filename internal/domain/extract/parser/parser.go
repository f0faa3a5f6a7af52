// Package parser turns the raw text of a proforma/sales invoice into a
// structured record: header fields plus an ordered list of line items.
// Vendor templates vary wildly, so every extractor here is a tolerant,
// first-match-wins scanner rather than a fixed grammar; a field that cannot
// be found is simply absent, never an error.
package parser

import (
	"github.com/shopspring/decimal"
)

// HeaderFields holds the document-level invoice attributes. String fields
// use the empty string for "not found"; monetary fields use nil so that a
// genuine zero amount stays distinguishable from absence.
type HeaderFields struct {
	InvoiceNo    string           `json:"invoice_no,omitempty"`
	CodeNo       string           `json:"code_no,omitempty"`
	Date         string           `json:"date,omitempty"` // raw source string, locale varies
	CustomerName string           `json:"customer_name,omitempty"`
	Address      string           `json:"address,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	Email        string           `json:"email,omitempty"`
	Reference    string           `json:"reference,omitempty"`
	Subtotal     *decimal.Decimal `json:"subtotal,omitempty"`
	Tax          *decimal.Decimal `json:"tax,omitempty"`
	Total        *decimal.Decimal `json:"total,omitempty"`
}

// LineItem is one row of the invoice's goods/services table.
type LineItem struct {
	Code        string          `json:"code,omitempty"`
	Description string          `json:"description"`
	Unit        string          `json:"unit,omitempty"`
	Qty         int             `json:"qty"`
	Rate        decimal.Decimal `json:"rate"`
	Value       decimal.Decimal `json:"value"`
}

// ParsedInvoice is the complete structured result for one document.
type ParsedInvoice struct {
	Header HeaderFields `json:"header"`
	Items  []LineItem   `json:"items"`
}

// HasData reports whether the parse produced at least one usable signal.
// Partial extraction is still useful downstream; only a parse with nothing
// at all is classified as a failure by the caller.
func (p *ParsedInvoice) HasData() bool {
	return p.Header.CustomerName != "" ||
		p.Header.InvoiceNo != "" ||
		p.Header.Total != nil ||
		len(p.Items) > 0
}

// ParseInvoice extracts header fields and line items from invoice text.
// Each extractor runs independently over the anchored line sequence, so a
// field missing from the document never affects the others.
func ParseInvoice(text string) *ParsedInvoice {
	result := &ParsedInvoice{}

	lines := NormalizeLines(text)
	if len(lines) == 0 {
		return result
	}
	lines = lines[AnchorIndex(lines):]

	result.Header = HeaderFields{
		InvoiceNo:    extractInvoiceNo(lines),
		CodeNo:       extractCodeNo(lines),
		Date:         extractDate(lines),
		CustomerName: extractCustomerName(lines),
		Address:      extractAddress(lines),
		Phone:        extractPhone(lines),
		Email:        extractEmail(lines),
		Reference:    extractReference(lines),
		Subtotal:     extractMonetary(lines, subtotalLabels),
		Tax:          extractMonetary(lines, taxLabels),
		Total:        extractMonetary(lines, totalLabels),
	}
	result.Items = extractLineItems(lines)

	return result
}
