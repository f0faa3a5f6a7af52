package storage

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalArchive(t *testing.T) {
	ctx := context.Background()

	newArchive := func(t *testing.T) *LocalArchive {
		a, err := NewLocalArchive(t.TempDir())
		require.NoError(t, err)
		return a
	}

	t.Run("save and read back", func(t *testing.T) {
		a := newArchive(t)

		entry, err := a.Save(ctx, "invoice.pdf", []byte("%PDF fake"), "Proforma Invoice\nPI No: 1")
		require.NoError(t, err)
		assert.Equal(t, "invoice.pdf", entry.Filename)
		assert.Equal(t, int64(9), entry.Size)
		assert.True(t, entry.HasText)

		got, err := a.Get(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, entry.ID, got.ID)

		r, err := a.OpenSource(ctx, entry.ID)
		require.NoError(t, err)
		defer r.Close()
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF fake"), data)

		text, err := a.Text(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, "Proforma Invoice\nPI No: 1", text)
	})

	t.Run("no text sidecar for textless documents", func(t *testing.T) {
		a := newArchive(t)

		entry, err := a.Save(ctx, "scan.pdf", []byte("%PDF"), "")
		require.NoError(t, err)
		assert.False(t, entry.HasText)

		text, err := a.Text(ctx, entry.ID)
		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("unknown id", func(t *testing.T) {
		a := newArchive(t)
		_, err := a.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("hostile filename cannot escape the archive", func(t *testing.T) {
		a := newArchive(t)

		entry, err := a.Save(ctx, "../../etc/passwd", []byte("x"), "")
		require.NoError(t, err)
		assert.NotContains(t, entry.SourcePath, "..")
		assert.NotContains(t, entry.SourcePath, "/")
	})

	t.Run("list newest first", func(t *testing.T) {
		a := newArchive(t)

		first, err := a.Save(ctx, "a.pdf", []byte("1"), "")
		require.NoError(t, err)
		second, err := a.Save(ctx, "b.pdf", []byte("2"), "")
		require.NoError(t, err)

		entries, err := a.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		ids := []uuid.UUID{entries[0].ID, entries[1].ID}
		assert.Contains(t, ids, first.ID)
		assert.Contains(t, ids, second.ID)
	})

	t.Run("delete removes everything", func(t *testing.T) {
		a := newArchive(t)

		entry, err := a.Save(ctx, "gone.pdf", []byte("x"), "text")
		require.NoError(t, err)
		require.NoError(t, a.Delete(ctx, entry.ID))

		_, err = a.Get(ctx, entry.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		entries, err := a.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
