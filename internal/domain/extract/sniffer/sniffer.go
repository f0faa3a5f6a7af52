// Package sniffer provides automatic detection of uploaded document kinds.
// It classifies a byte buffer plus filename as PDF, image, or unsupported
// without reading past the first few bytes of content.
package sniffer

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Kind identifies the detected document kind
type Kind string

const (
	KindPDF         Kind = "pdf"
	KindImage       Kind = "image"
	KindUnsupported Kind = "unsupported"
	KindEmpty       Kind = "empty"
)

// pdfMagic is the signature found at the start of every PDF file
var pdfMagic = []byte("%PDF")

// imageExtensions are filename extensions recognized as raster images.
// Image documents are classified but never processed (no OCR support).
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".tiff": {},
	".bmp":  {},
}

// Classify determines the document kind from its bytes and declared filename.
// An empty buffer is KindEmpty regardless of filename, and an image extension
// wins over PDF content. A file is a PDF when its name ends in .pdf or its
// first four bytes carry the PDF signature; content beyond those four bytes
// is never inspected.
func Classify(data []byte, filename string) Kind {
	if len(data) == 0 {
		return KindEmpty
	}

	ext := strings.ToLower(filepath.Ext(filename))

	if _, ok := imageExtensions[ext]; ok {
		return KindImage
	}

	if ext == ".pdf" || bytes.HasPrefix(data, pdfMagic) {
		return KindPDF
	}

	return KindUnsupported
}

// IsImageExtension reports whether the filename carries a known image extension.
func IsImageExtension(filename string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}
