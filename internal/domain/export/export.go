// Package export renders normalized invoice documents as XLSX workbooks and
// CSV files for the accounting side.
package export

import (
	"fmt"
	"log/slog"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/autotrack/proforma-extractor/internal/domain/extract/service"
)

// Service produces export payloads from extracted invoice documents.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

const sheetName = "Invoice"

// itemHeaderRow is the first row of the line-item table, below the header block.
const itemHeaderRow = 8

// ExportXLSX returns an XLSX workbook with a header block followed by the
// line-item table and totals.
func (s *Service) ExportXLSX(doc *service.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheetName, cell, v)
	}

	write(1, 1, doc.Metadata.InvoiceType)
	write(1, 2, "Invoice No")
	write(2, 2, doc.Metadata.InvoiceNumber)
	write(1, 3, "Date")
	write(2, 3, doc.Metadata.IssueDate)
	write(1, 4, "Customer")
	write(2, 4, doc.Customer.Name)
	write(1, 5, "Customer Code")
	write(2, 5, doc.Customer.Code)
	write(1, 6, "Address")
	write(2, 6, doc.Customer.Address)

	headers := []string{"Sr No", "Item Code", "Description", "Type", "Qty", "Rate", "Value"}
	for i, h := range headers {
		write(i+1, itemHeaderRow, h)
	}

	row := itemHeaderRow + 1
	for _, item := range doc.Items {
		write(1, row, item.SrNo)
		write(2, row, item.ItemCode)
		write(3, row, item.Description)
		write(4, row, item.Type)
		write(5, row, item.Quantity)
		write(6, row, decimalCell(item.Rate))
		write(7, row, decimalCell(item.Value))
		row++
	}

	row++
	totals := []struct {
		label  string
		amount *decimal.Decimal
	}{
		{"Net Value", doc.Totals.SubTotal},
		{"VAT", doc.Totals.VATAmount},
		{"VAT %", doc.Totals.VATPercent},
		{"Grand Total", doc.Totals.GrandTotal},
	}
	for _, tl := range totals {
		if tl.amount == nil {
			continue
		}
		write(6, row, tl.label)
		write(7, row, tl.amount.String())
		row++
	}

	_ = f.SetColWidth(sheetName, "C", "C", 48)
	_ = f.SetColWidth(sheetName, "F", "G", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	s.logger.Info("exported invoice workbook",
		slog.String("invoice_no", doc.Metadata.InvoiceNumber),
		slog.Int("items", len(doc.Items)))
	return buf.Bytes(), nil
}

// csvRow flattens one line item with its invoice context so a whole batch of
// invoices can share a single file.
type csvRow struct {
	InvoiceNo    string `csv:"invoice_no"`
	InvoiceType  string `csv:"invoice_type"`
	IssueDate    string `csv:"issue_date"`
	CustomerCode string `csv:"customer_code"`
	CustomerName string `csv:"customer_name"`
	SrNo         int    `csv:"sr_no"`
	ItemCode     string `csv:"item_code"`
	Description  string `csv:"description"`
	Type         string `csv:"type"`
	Quantity     int    `csv:"qty"`
	Rate         string `csv:"rate"`
	Value        string `csv:"value"`
}

// ExportCSV returns one CSV row per line item across the given documents.
// A document without items still contributes a single row carrying its
// header fields, so failed-to-parse tables stay visible in the output.
func (s *Service) ExportCSV(docs ...*service.Document) ([]byte, error) {
	var rows []csvRow
	for _, doc := range docs {
		base := csvRow{
			InvoiceNo:    doc.Metadata.InvoiceNumber,
			InvoiceType:  doc.Metadata.InvoiceType,
			IssueDate:    doc.Metadata.IssueDate,
			CustomerCode: doc.Customer.Code,
			CustomerName: doc.Customer.Name,
		}
		if len(doc.Items) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, item := range doc.Items {
			r := base
			r.SrNo = item.SrNo
			r.ItemCode = item.ItemCode
			r.Description = item.Description
			r.Type = item.Type
			r.Quantity = item.Quantity
			r.Rate = decimalCell(item.Rate)
			r.Value = decimalCell(item.Value)
			rows = append(rows, r)
		}
	}

	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("csv marshal: %w", err)
	}
	return out, nil
}

func decimalCell(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
