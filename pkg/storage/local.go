package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalArchive implements Archive on the local filesystem. Each entry owns
// a source file, an optional .txt sidecar with the raw extracted text, and
// a JSON metadata record under .meta/.
type LocalArchive struct {
	basePath string
}

func NewLocalArchive(basePath string) (*LocalArchive, error) {
	if err := os.MkdirAll(filepath.Join(basePath, ".meta"), 0755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &LocalArchive{basePath: basePath}, nil
}

func (a *LocalArchive) Save(ctx context.Context, filename string, source []byte, rawText string) (*Entry, error) {
	id := uuid.New()

	storedName := fmt.Sprintf("%s_%s", id.String()[:8], sanitizeFilename(filename))
	sourcePath := filepath.Join(a.basePath, storedName)
	if err := os.WriteFile(sourcePath, source, 0644); err != nil {
		return nil, fmt.Errorf("write source: %w", err)
	}

	if rawText != "" {
		if err := os.WriteFile(a.textPath(id), []byte(rawText), 0644); err != nil {
			os.Remove(sourcePath)
			return nil, fmt.Errorf("write text: %w", err)
		}
	}

	entry := &Entry{
		ID:         id,
		Filename:   filename,
		Size:       int64(len(source)),
		SourcePath: storedName,
		HasText:    rawText != "",
		CreatedAt:  time.Now().UTC(),
	}
	if err := a.saveMetadata(entry); err != nil {
		os.Remove(sourcePath)
		os.Remove(a.textPath(id))
		return nil, err
	}
	return entry, nil
}

func (a *LocalArchive) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	data, err := os.ReadFile(a.metaPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return &entry, nil
}

func (a *LocalArchive) OpenSource(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	entry, err := a.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(a.basePath, entry.SourcePath))
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	return f, nil
}

func (a *LocalArchive) Text(ctx context.Context, id uuid.UUID) (string, error) {
	entry, err := a.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !entry.HasText {
		return "", nil
	}
	data, err := os.ReadFile(a.textPath(id))
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return string(data), nil
}

func (a *LocalArchive) List(ctx context.Context) ([]*Entry, error) {
	metaDir := filepath.Join(a.basePath, ".meta")
	dirEntries, err := os.ReadDir(metaDir)
	if err != nil {
		return nil, fmt.Errorf("list metadata: %w", err)
	}

	entries := make([]*Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(de.Name(), ".json"))
		if err != nil {
			continue
		}
		entry, err := a.Get(ctx, id)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (a *LocalArchive) Delete(ctx context.Context, id uuid.UUID) error {
	entry, err := a.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(a.basePath, entry.SourcePath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete source: %w", err)
	}
	os.Remove(a.textPath(id))
	os.Remove(a.metaPath(id))
	return nil
}

func (a *LocalArchive) saveMetadata(entry *Entry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(a.metaPath(entry.ID), data, 0644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

func (a *LocalArchive) metaPath(id uuid.UUID) string {
	return filepath.Join(a.basePath, ".meta", id.String()+".json")
}

func (a *LocalArchive) textPath(id uuid.UUID) string {
	return filepath.Join(a.basePath, ".meta", id.String()+".txt")
}

// sanitizeFilename replaces path separators and shell-hostile characters so
// uploaded names cannot escape the archive directory.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		"..", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}
