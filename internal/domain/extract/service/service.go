// Package service orchestrates the extraction pipeline: classify the upload,
// pull text out of the PDF, parse it into structured invoice data, and
// assemble a result that downstream consumers can act on without inspecting
// errors. Failures are soft and carried as coded results; the only hard
// failure is a cancelled context.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/autotrack/proforma-extractor/internal/domain/extract/parser"
	"github.com/autotrack/proforma-extractor/internal/domain/extract/sniffer"
	"github.com/autotrack/proforma-extractor/internal/domain/extract/textextract"
)

// ErrorCode classifies why an extraction produced no structured data.
type ErrorCode string

const (
	ErrEmptyFile         ErrorCode = "empty_file"
	ErrImageNotSupported ErrorCode = "image_file_not_supported"
	ErrUnsupportedType   ErrorCode = "unsupported_file_type"
	ErrPDFExtraction     ErrorCode = "pdf_extraction_failed"
	ErrNoTextExtracted   ErrorCode = "no_text_extracted"
	ErrParsingFailed     ErrorCode = "parsing_failed"
)

// Result is the outcome of one extraction attempt. Success and Error are
// mutually exclusive. RawText is kept on parsing failures so a human can
// see what the parser saw; earlier failures have nothing to keep.
type Result struct {
	Success      bool                 `json:"success"`
	Error        ErrorCode            `json:"error,omitempty"`
	Message      string               `json:"message"`
	OCRAvailable bool                 `json:"ocr_available"`
	Header       *parser.HeaderFields `json:"header,omitempty"`
	Items        []parser.LineItem    `json:"items"`
	RawText      string               `json:"raw_text,omitempty"`
}

// TextExtractor pulls plain text from PDF bytes.
type TextExtractor interface {
	Extract(data []byte) (string, error)
}

// Service runs the extraction pipeline.
type Service struct {
	extractor TextExtractor
	logger    *slog.Logger
}

// New creates a Service with the default PDF backends.
func New(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		extractor: textextract.New(logger),
		logger:    logger,
	}
}

// NewWithExtractor creates a Service with a custom text extractor.
func NewWithExtractor(extractor TextExtractor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{extractor: extractor, logger: logger}
}

// Extract runs the full pipeline over one uploaded document. The same bytes
// and filename always produce the same result. Classification failures
// short-circuit before any PDF machinery runs, so an image upload never
// touches the extraction backends.
func (s *Service) Extract(ctx context.Context, data []byte, filename string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := s.logger.With(slog.String("filename", filename), slog.Int("bytes", len(data)))

	switch sniffer.Classify(data, filename) {
	case sniffer.KindEmpty:
		log.Warn("rejected empty upload")
		return failure(ErrEmptyFile, "File is empty."), nil
	case sniffer.KindImage:
		log.Warn("rejected image upload")
		return failure(ErrImageNotSupported, "Image files are not supported."), nil
	case sniffer.KindUnsupported:
		log.Warn("rejected unsupported upload")
		return failure(ErrUnsupportedType, "Please upload a PDF file."), nil
	}

	text, err := s.extractor.Extract(data)
	if err != nil {
		if errors.Is(err, textextract.ErrNoText) {
			log.Warn("pdf contains no text layer")
			return failure(ErrNoTextExtracted, "No readable text found in PDF."), nil
		}
		log.Error("pdf extraction failed", slog.Any("error", err))
		return failure(ErrPDFExtraction, fmt.Sprintf("Could not extract text from PDF: %v", err)), nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed := parser.ParseInvoice(text)
	if !parsed.HasData() {
		log.Warn("no structured data recognized", slog.Int("text_chars", len(text)))
		r := failure(ErrParsingFailed, "Could not extract structured data from PDF.")
		r.RawText = text
		return r, nil
	}

	log.Info("invoice extracted",
		slog.String("invoice_no", parsed.Header.InvoiceNo),
		slog.Int("items", len(parsed.Items)))

	return &Result{
		Success: true,
		Message: "Invoice data extracted successfully",
		Header:  &parsed.Header,
		Items:   parsed.Items,
		RawText: text,
	}, nil
}

func failure(code ErrorCode, message string) *Result {
	return &Result{
		Error:   code,
		Message: message,
		Header:  &parser.HeaderFields{},
		Items:   []parser.LineItem{},
	}
}
