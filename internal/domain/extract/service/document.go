package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Document is the normalized invoice representation handed to exporters and
// archival. Field names follow the interchange layout used by the accounting
// side, so absent values are empty strings rather than nulls.
type Document struct {
	Metadata Metadata       `json:"invoice_metadata"`
	Seller   Party          `json:"seller_details"`
	Customer Party          `json:"customer_details"`
	Items    []DocumentItem `json:"items"`
	Totals   Totals         `json:"totals"`
	Notes    string         `json:"footer_notes"`
}

type Metadata struct {
	InvoiceType       string `json:"invoice_type"`
	InvoiceNumber     string `json:"invoice_number"`
	CustomerReference string `json:"customer_reference"`
	IssueDate         string `json:"issue_date"`
	Page              string `json:"page"`
	Pages             string `json:"pages"`
}

type Party struct {
	Code          string `json:"code,omitempty"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person,omitempty"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	VATNumber     string `json:"vat_number,omitempty"`
}

type DocumentItem struct {
	SrNo        int              `json:"sr_no"`
	ItemCode    string           `json:"item_code"`
	Description string           `json:"description"`
	Type        string           `json:"type"`
	Quantity    int              `json:"quantity"`
	Rate        *decimal.Decimal `json:"rate,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
}

type Totals struct {
	SubTotal   *decimal.Decimal `json:"sub_total,omitempty"`
	VATAmount  *decimal.Decimal `json:"vat_amount,omitempty"`
	VATPercent *decimal.Decimal `json:"vat_percent,omitempty"`
	GrandTotal *decimal.Decimal `json:"grand_total,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// BuildDocument converts a successful extraction result into the normalized
// document layout. An invoice number starting with PI marks the document a
// proforma invoice; anything else is a plain invoice.
func BuildDocument(result *Result) *Document {
	doc := &Document{
		Metadata: Metadata{
			InvoiceType: "Invoice",
			Page:        "1",
			Pages:       "1",
		},
	}
	if result == nil || result.Header == nil {
		return doc
	}

	h := result.Header
	if strings.HasPrefix(strings.ToUpper(h.InvoiceNo), "PI") {
		doc.Metadata.InvoiceType = "Proforma Invoice"
	}
	doc.Metadata.InvoiceNumber = h.InvoiceNo
	doc.Metadata.CustomerReference = h.Reference
	doc.Metadata.IssueDate = h.Date

	doc.Customer = Party{
		Code:    h.CodeNo,
		Name:    h.CustomerName,
		Address: h.Address,
		Phone:   h.Phone,
		Email:   h.Email,
	}

	doc.Items = make([]DocumentItem, 0, len(result.Items))
	for i, item := range result.Items {
		rate, value := item.Rate, item.Value
		doc.Items = append(doc.Items, DocumentItem{
			SrNo:        i + 1,
			ItemCode:    item.Code,
			Description: item.Description,
			Type:        item.Unit,
			Quantity:    item.Qty,
			Rate:        &rate,
			Value:       &value,
		})
	}

	doc.Totals = Totals{
		SubTotal:   h.Subtotal,
		VATAmount:  h.Tax,
		GrandTotal: h.Total,
		VATPercent: deriveVATPercent(h.Subtotal, h.Tax),
	}
	return doc
}

// deriveVATPercent computes tax/subtotal*100 rounded to two decimals. The
// rate is never derived from a zero or missing subtotal.
func deriveVATPercent(subtotal, tax *decimal.Decimal) *decimal.Decimal {
	if subtotal == nil || tax == nil || !subtotal.IsPositive() {
		return nil
	}
	pct := tax.Div(*subtotal).Mul(hundred).Round(2)
	return &pct
}
