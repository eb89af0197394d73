package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFSSinkPutAndList(t *testing.T) {
	ctx := context.Background()
	sink, err := NewFSSink(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := sink.Put(ctx, "meetings/7/agenda.pdf", strings.NewReader("pdf"), 3, "application/pdf"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := sink.Put(ctx, "meetings/8/notes.txt", strings.NewReader("txt"), -1, ""); err != nil {
		t.Fatalf("Put: %v", err)
	}

	files, err := sink.List(ctx, "meetings/7/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 1 || files[0] != "meetings/7/agenda.pdf" {
		t.Fatalf("files = %v", files)
	}

	b, err := os.ReadFile(filepath.Join(sink.root, "meetings", "7", "agenda.pdf"))
	if err != nil || string(b) != "pdf" {
		t.Fatalf("content = %q, %v", b, err)
	}
}

func TestFSSinkStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	sink, err := NewFSSink(root)
	if err != nil {
		t.Fatal(err)
	}
	if err := sink.Put(context.Background(), "../../escape.txt", strings.NewReader("x"), 1, ""); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "escape.txt")); err != nil {
		t.Fatalf("object not kept under root: %v", err)
	}
}
