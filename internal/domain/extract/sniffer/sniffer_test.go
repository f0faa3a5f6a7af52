package sniffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Run("empty buffer wins over any filename", func(t *testing.T) {
		assert.Equal(t, KindEmpty, Classify(nil, "invoice.pdf"))
		assert.Equal(t, KindEmpty, Classify([]byte{}, "photo.jpg"))
		assert.Equal(t, KindEmpty, Classify([]byte{}, ""))
	})

	t.Run("pdf by extension", func(t *testing.T) {
		assert.Equal(t, KindPDF, Classify([]byte("anything"), "invoice.pdf"))
		assert.Equal(t, KindPDF, Classify([]byte("anything"), "INVOICE.PDF"))
	})

	t.Run("pdf by magic bytes", func(t *testing.T) {
		data := []byte("%PDF-1.7\n...")
		assert.Equal(t, KindPDF, Classify(data, "scan.bin"))
		assert.Equal(t, KindPDF, Classify(data, ""))
	})

	t.Run("image extensions", func(t *testing.T) {
		for _, name := range []string{"a.jpg", "a.jpeg", "a.png", "a.gif", "a.tiff", "a.bmp", "A.JPG"} {
			assert.Equal(t, KindImage, Classify([]byte{0xFF, 0xD8}, name), name)
		}
	})

	t.Run("image extension wins over pdf content", func(t *testing.T) {
		assert.Equal(t, KindImage, Classify([]byte("%PDF-1.7\n..."), "photo.jpg"))
	})

	t.Run("unsupported otherwise", func(t *testing.T) {
		assert.Equal(t, KindUnsupported, Classify([]byte("hello"), "notes.txt"))
		assert.Equal(t, KindUnsupported, Classify([]byte("hello"), "archive.zip"))
		assert.Equal(t, KindUnsupported, Classify([]byte("hello"), "no-extension"))
	})
}

func TestIsImageExtension(t *testing.T) {
	assert.True(t, IsImageExtension("photo.PNG"))
	assert.False(t, IsImageExtension("doc.pdf"))
	assert.False(t, IsImageExtension(""))
}
