package exporter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMemoryExporter_SaveAndOpen(t *testing.T) {
	e := NewMemoryExporter()
	ctx := context.Background()

	loc, err := e.Save(ctx, "case.csv", []byte("a,b\n1,2"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(loc, "mem://") {
		t.Errorf("locator = %q", loc)
	}

	data, err := e.Open(ctx, loc)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if string(data) != "a,b\n1,2" {
		t.Errorf("content = %q", data)
	}
	if e.Len() != 1 {
		t.Errorf("Len = %d", e.Len())
	}
}

func TestMemoryExporter_Errors(t *testing.T) {
	e := NewMemoryExporter()
	ctx := context.Background()

	if _, err := e.Save(ctx, "", []byte("x")); err != ErrMissingFileName {
		t.Errorf("expected ErrMissingFileName, got %v", err)
	}
	if _, err := e.Open(ctx, "mem://missing"); err != ErrExportNotFound {
		t.Errorf("expected ErrExportNotFound, got %v", err)
	}
}

func TestMemoryExporter_CopiesContent(t *testing.T) {
	e := NewMemoryExporter()
	ctx := context.Background()

	buf := []byte("original")
	loc, _ := e.Save(ctx, "f.txt", buf)
	buf[0] = 'X'

	data, _ := e.Open(ctx, loc)
	if string(data) != "original" {
		t.Errorf("stored content aliased caller buffer: %q", data)
	}
}

func TestFSExporter_SaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	e, err := NewFSExporter(dir)
	if err != nil {
		t.Fatalf("NewFSExporter: %v", err)
	}
	ctx := context.Background()

	loc, err := e.Save(ctx, "debrief.txt", []byte("summary"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(loc, "file://") {
		t.Errorf("locator = %q", loc)
	}

	data, err := e.Open(ctx, loc)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if string(data) != "summary" {
		t.Errorf("content = %q", data)
	}

	if _, err := os.Stat(filepath.Join(dir, "debrief.txt")); err != nil {
		t.Errorf("file not written: %v", err)
	}
}

func TestFSExporter_FlattensPaths(t *testing.T) {
	dir := t.TempDir()
	e, _ := NewFSExporter(dir)
	ctx := context.Background()

	loc, err := e.Save(ctx, "../escape.txt", []byte("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.Contains(loc, filepath.Join(dir, "escape.txt")) {
		t.Errorf("path traversal not flattened: %q", loc)
	}
}

func TestFSExporter_OpenOutsideBase(t *testing.T) {
	dir := t.TempDir()
	e, _ := NewFSExporter(dir)
	if _, err := e.Open(context.Background(), "file:///etc/hostname"); err != ErrExportNotFound {
		t.Errorf("expected ErrExportNotFound for outside path, got %v", err)
	}
}
