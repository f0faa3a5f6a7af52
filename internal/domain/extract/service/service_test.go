package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autotrack/proforma-extractor/internal/domain/extract/textextract"
)

type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) Extract(data []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

const goodInvoiceText = `Proforma Invoice
PI No: PI-1765632
Code No: A01696
Customer Name: ACME TRADING LTD
Net Value: 200.00
VAT: 36.00
Grand Total: 236.00`

func TestService_Extract_Classification(t *testing.T) {
	t.Run("empty file wins over pdf filename", func(t *testing.T) {
		fake := &fakeExtractor{}
		svc := NewWithExtractor(fake, nil)

		res, err := svc.Extract(context.Background(), nil, "invoice.pdf")
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, ErrEmptyFile, res.Error)
		assert.Equal(t, "File is empty.", res.Message)
		assert.Zero(t, fake.calls, "extractor must not run for empty uploads")
	})

	t.Run("image upload never reaches the extractor", func(t *testing.T) {
		fake := &fakeExtractor{}
		svc := NewWithExtractor(fake, nil)

		res, err := svc.Extract(context.Background(), []byte{0xFF, 0xD8}, "scan.jpg")
		require.NoError(t, err)
		assert.Equal(t, ErrImageNotSupported, res.Error)
		assert.False(t, res.OCRAvailable)
		assert.Zero(t, fake.calls)
	})

	t.Run("image filename wins over pdf content", func(t *testing.T) {
		fake := &fakeExtractor{}
		svc := NewWithExtractor(fake, nil)

		res, err := svc.Extract(context.Background(), []byte("%PDF-1.7\n..."), "photo.jpg")
		require.NoError(t, err)
		assert.Equal(t, ErrImageNotSupported, res.Error)
		assert.Zero(t, fake.calls)
	})

	t.Run("failure results carry an empty header object", func(t *testing.T) {
		svc := NewWithExtractor(&fakeExtractor{}, nil)

		res, err := svc.Extract(context.Background(), []byte("hello"), "notes.txt")
		require.NoError(t, err)
		require.NotNil(t, res.Header)

		out, err := json.Marshal(res)
		require.NoError(t, err)
		assert.Contains(t, string(out), `"header":{}`)
		assert.Contains(t, string(out), `"items":[]`)
	})

	t.Run("unsupported file type", func(t *testing.T) {
		svc := NewWithExtractor(&fakeExtractor{}, nil)

		res, err := svc.Extract(context.Background(), []byte("hello"), "notes.txt")
		require.NoError(t, err)
		assert.Equal(t, ErrUnsupportedType, res.Error)
		assert.Equal(t, "Please upload a PDF file.", res.Message)
	})
}

func TestService_Extract_Pipeline(t *testing.T) {
	pdfBytes := []byte("%PDF-1.4 fake")

	t.Run("extraction failure is a soft result", func(t *testing.T) {
		svc := NewWithExtractor(&fakeExtractor{err: errors.New("corrupt xref")}, nil)

		res, err := svc.Extract(context.Background(), pdfBytes, "broken.pdf")
		require.NoError(t, err)
		assert.Equal(t, ErrPDFExtraction, res.Error)
		assert.Contains(t, res.Message, "Could not extract text from PDF")
		assert.Contains(t, res.Message, "corrupt xref")
	})

	t.Run("scanned pdf without text layer", func(t *testing.T) {
		svc := NewWithExtractor(&fakeExtractor{err: textextract.ErrNoText}, nil)

		res, err := svc.Extract(context.Background(), pdfBytes, "scan.pdf")
		require.NoError(t, err)
		assert.Equal(t, ErrNoTextExtracted, res.Error)
		assert.Equal(t, "No readable text found in PDF.", res.Message)
	})

	t.Run("unparseable text keeps raw text for inspection", func(t *testing.T) {
		svc := NewWithExtractor(&fakeExtractor{text: "lorem ipsum dolor sit amet"}, nil)

		res, err := svc.Extract(context.Background(), pdfBytes, "odd.pdf")
		require.NoError(t, err)
		assert.Equal(t, ErrParsingFailed, res.Error)
		assert.Equal(t, "lorem ipsum dolor sit amet", res.RawText)
		assert.Empty(t, res.Items)
	})

	t.Run("successful extraction", func(t *testing.T) {
		svc := NewWithExtractor(&fakeExtractor{text: goodInvoiceText}, nil)

		res, err := svc.Extract(context.Background(), pdfBytes, "invoice.pdf")
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Empty(t, res.Error)
		assert.Equal(t, "Invoice data extracted successfully", res.Message)
		require.NotNil(t, res.Header)
		assert.Equal(t, "PI-1765632", res.Header.InvoiceNo)
		assert.Equal(t, "ACME TRADING LTD", res.Header.CustomerName)
		assert.Equal(t, goodInvoiceText, res.RawText)
	})

	t.Run("same input yields same result", func(t *testing.T) {
		svc := NewWithExtractor(&fakeExtractor{text: goodInvoiceText}, nil)

		a, err := svc.Extract(context.Background(), pdfBytes, "invoice.pdf")
		require.NoError(t, err)
		b, err := svc.Extract(context.Background(), pdfBytes, "invoice.pdf")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("cancelled context is a hard error", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		svc := NewWithExtractor(&fakeExtractor{text: goodInvoiceText}, nil)
		_, err := svc.Extract(ctx, pdfBytes, "invoice.pdf")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestBuildDocument(t *testing.T) {
	t.Run("proforma type and vat percent", func(t *testing.T) {
		svc := NewWithExtractor(&fakeExtractor{text: goodInvoiceText}, nil)
		res, err := svc.Extract(context.Background(), []byte("%PDF"), "invoice.pdf")
		require.NoError(t, err)
		require.True(t, res.Success)

		doc := BuildDocument(res)
		assert.Equal(t, "Proforma Invoice", doc.Metadata.InvoiceType)
		assert.Equal(t, "PI-1765632", doc.Metadata.InvoiceNumber)
		assert.Equal(t, "A01696", doc.Customer.Code)

		require.NotNil(t, doc.Totals.VATPercent)
		assert.True(t, doc.Totals.VATPercent.Equal(decimal.NewFromInt(18)),
			"36/200*100 = 18, got %s", doc.Totals.VATPercent)
	})

	t.Run("vat percent absent without positive subtotal", func(t *testing.T) {
		zero := decimal.Zero
		tax := decimal.NewFromInt(36)
		assert.Nil(t, deriveVATPercent(&zero, &tax))
		assert.Nil(t, deriveVATPercent(nil, &tax))
		assert.Nil(t, deriveVATPercent(&tax, nil))
	})

	t.Run("plain invoice numbering and sr_no ordering", func(t *testing.T) {
		svc := NewWithExtractor(&fakeExtractor{text: "Invoice No: 555123\nCustomer Name: X LTD\n" +
			"Sr Item Code Description Type Qty Rate Value\n" +
			"1 10000001 FIRST PART PCS 1 10.00 10.00\n" +
			"2 10000002 SECOND PART PCS 2 5.00 10.00\n" +
			"Grand Total: 20.00"}, nil)
		res, err := svc.Extract(context.Background(), []byte("%PDF"), "invoice.pdf")
		require.NoError(t, err)
		require.True(t, res.Success)

		doc := BuildDocument(res)
		assert.Equal(t, "Invoice", doc.Metadata.InvoiceType)
		require.Len(t, doc.Items, 2)
		assert.Equal(t, 1, doc.Items[0].SrNo)
		assert.Equal(t, 2, doc.Items[1].SrNo)
		assert.Equal(t, "FIRST PART", doc.Items[0].Description)
	})

	t.Run("nil result yields empty document", func(t *testing.T) {
		doc := BuildDocument(nil)
		assert.Equal(t, "Invoice", doc.Metadata.InvoiceType)
		assert.Empty(t, doc.Items)
	})
}
