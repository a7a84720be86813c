package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLinesInsertsPageSeparator(t *testing.T) {
	pages := []Page{
		{"  Ex Date Record Date Payable Date ", "SPY fund"},
		{"January 1/15/2025 1/17/2025 1/31/2025"},
	}

	lines := Lines(pages)
	want := []string{
		"Ex Date Record Date Payable Date",
		"SPY fund",
		"",
		"January 1/15/2025 1/17/2025 1/31/2025",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i, w := range want {
		if lines[i].Text != w {
			t.Errorf("line %d = %q, want %q", i, lines[i].Text, w)
		}
		if lines[i].Index != i {
			t.Errorf("line %d carries index %d", i, lines[i].Index)
		}
	}
}

func TestLinesEmpty(t *testing.T) {
	if got := Lines(nil); len(got) != 0 {
		t.Errorf("Lines(nil) = %v, want empty", got)
	}
}

func TestSplitPages(t *testing.T) {
	pages := SplitPages("page one line one\npage one line two\n\fpage two line one\n")
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if len(pages[0]) != 2 || pages[0][1] != "page one line two" {
		t.Errorf("page one = %v", pages[0])
	}
	if len(pages[1]) != 1 || pages[1][0] != "page two line one" {
		t.Errorf("page two = %v", pages[1])
	}
}

func TestSplitPagesNoFormFeed(t *testing.T) {
	pages := SplitPages("only page\n")
	if len(pages) != 1 || len(pages[0]) != 1 || pages[0][0] != "only page" {
		t.Errorf("pages = %v", pages)
	}
}

func TestTextSourcePages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.txt")
	if err := os.WriteFile(path, []byte("alpha\nbeta\n\fgamma\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	pages, err := NewTextSource(path).Pages(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if pages[0][0] != "alpha" || pages[1][0] != "gamma" {
		t.Errorf("pages = %v", pages)
	}
}

func TestTextSourceMissingFile(t *testing.T) {
	_, err := NewTextSource(filepath.Join(t.TempDir(), "absent.txt")).Pages(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
