// Package exporter provides durable file export for generated reports. It
// defines the FileExporter interface, a filesystem implementation, and an
// in-memory implementation suitable for testing.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	ErrExportNotFound  = errors.New("export not found")
	ErrMissingFileName = errors.New("file name is required")
)

// FileExporter writes named report files and returns an opaque locator for
// each written file. Callers attach the locator to API responses or
// notifications; they never interpret it.
type FileExporter interface {
	Save(ctx context.Context, filename string, content []byte) (string, error)
	Open(ctx context.Context, locator string) ([]byte, error)
}

// ---------------------------------------------------------------------------
// Filesystem implementation
// ---------------------------------------------------------------------------

// FSExporter writes exports under a base directory. Locators are file://
// URIs.
type FSExporter struct {
	baseDir string
}

// NewFSExporter creates the base directory if needed.
func NewFSExporter(baseDir string) (*FSExporter, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &FSExporter{baseDir: baseDir}, nil
}

func (e *FSExporter) Save(ctx context.Context, filename string, content []byte) (string, error) {
	if filename == "" {
		return "", ErrMissingFileName
	}
	// Flatten any path components; exports are a flat namespace.
	path := filepath.Join(e.baseDir, filepath.Base(filename))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write export %s: %w", filename, err)
	}
	return "file://" + path, nil
}

func (e *FSExporter) Open(ctx context.Context, locator string) ([]byte, error) {
	path := strings.TrimPrefix(locator, "file://")
	if filepath.Dir(path) != filepath.Clean(e.baseDir) {
		return nil, ErrExportNotFound
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrExportNotFound
		}
		return nil, fmt.Errorf("read export: %w", err)
	}
	return data, nil
}

// ---------------------------------------------------------------------------
// In-memory implementation
// ---------------------------------------------------------------------------

// MemoryExporter keeps exports in a map. Locators are mem:// URIs.
type MemoryExporter struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemoryExporter() *MemoryExporter {
	return &MemoryExporter{files: make(map[string][]byte)}
}

func (e *MemoryExporter) Save(ctx context.Context, filename string, content []byte) (string, error) {
	if filename == "" {
		return "", ErrMissingFileName
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	e.mu.Lock()
	e.files[filename] = cp
	e.mu.Unlock()
	return "mem://" + filename, nil
}

func (e *MemoryExporter) Open(ctx context.Context, locator string) ([]byte, error) {
	name := strings.TrimPrefix(locator, "mem://")
	e.mu.RLock()
	defer e.mu.RUnlock()
	data, ok := e.files[name]
	if !ok {
		return nil, ErrExportNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// Len reports the number of stored exports.
func (e *MemoryExporter) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.files)
}
