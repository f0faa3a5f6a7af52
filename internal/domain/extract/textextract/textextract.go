// Package textextract converts PDF byte buffers into plain text.
// It tries an ordered list of backends: a reading-order-aware extractor
// first, then a simpler page-concatenation fallback for documents the
// primary backend cannot open. Only the embedded text layer is read;
// scanned (image-only) PDFs yield no text and are reported as such.
package textextract

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	dslipak "github.com/dslipak/pdf"
	"github.com/ledongthuc/pdf"
)

// ErrNoText indicates the document was opened but carries no text layer.
var ErrNoText = fmt.Errorf("no text found in PDF")

// Backend extracts text from an in-memory PDF document.
type Backend interface {
	// Name identifies the backend in composed failure messages.
	Name() string
	// Extract returns the concatenated page text, one newline per page.
	Extract(data []byte) (string, error)
}

// Extractor runs backends in priority order and returns the first
// non-blank result.
type Extractor struct {
	backends []Backend
	logger   *slog.Logger
}

// New creates an extractor with the default backend order.
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		backends: []Backend{readingOrderBackend{}, plainTextBackend{}},
		logger:   logger,
	}
}

// NewWithBackends creates an extractor with an explicit backend list.
func NewWithBackends(logger *slog.Logger, backends ...Backend) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{backends: backends, logger: logger}
}

// Extract converts PDF bytes to text. It returns the first backend's output
// that contains any non-blank text. When every backend fails or yields blank
// text, the error message names each backend and its reason so an operator
// can tell a corrupt document apart from a missing text layer.
func (e *Extractor) Extract(data []byte) (string, error) {
	if len(e.backends) == 0 {
		return "", fmt.Errorf("no PDF extraction backend available")
	}

	var failures []string
	hardFailure := false
	for _, b := range e.backends {
		text, err := tryBackend(b, data)
		if err != nil {
			e.logger.Warn("pdf backend failed",
				slog.String("backend", b.Name()), slog.Any("error", err))
			failures = append(failures, fmt.Sprintf("%s: %v", b.Name(), err))
			hardFailure = true
			continue
		}
		if strings.TrimSpace(text) == "" {
			e.logger.Warn("pdf backend extracted empty text", slog.String("backend", b.Name()))
			failures = append(failures, fmt.Sprintf("%s: %v", b.Name(), ErrNoText))
			continue
		}
		e.logger.Info("extracted text from PDF",
			slog.String("backend", b.Name()), slog.Int("chars", len(text)))
		return text, nil
	}

	// Every backend opened the document but found no text: the file is a
	// scanned image rather than corrupt, and callers treat that differently.
	if !hardFailure {
		return "", fmt.Errorf("%w (%s)", ErrNoText, strings.Join(failures, ". "))
	}
	return "", fmt.Errorf("PDF extraction failed - %s", strings.Join(failures, ". "))
}

// tryBackend isolates a single backend call. The underlying PDF libraries
// can panic on malformed cross-reference tables, so the panic is converted
// to an ordinary error at this boundary.
func tryBackend(b Backend, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return b.Extract(data)
}

// readingOrderBackend extracts text row by row so that columnar invoice
// tables come out in reading order.
type readingOrderBackend struct{}

func (readingOrderBackend) Name() string { return "ledongthuc" }

func (readingOrderBackend) Extract(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("read page %d: %w", i, err)
		}
		pageStart := sb.Len()
		for _, row := range rows {
			for j, word := range row.Content {
				if j > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(word.S)
			}
			sb.WriteByte('\n')
		}
		if sb.Len() > pageStart {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

// plainTextBackend concatenates each page's raw text stream. It preserves
// less layout than the reading-order backend but opens some malformed
// documents the primary backend rejects.
type plainTextBackend struct{}

func (plainTextBackend) Name() string { return "dslipak" }

func (plainTextBackend) Extract(data []byte) (string, error) {
	r, err := dslipak.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read page %d: %w", i, err)
		}
		if text != "" {
			sb.WriteString(text)
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}
