package unzip_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/littlefreaky/unzip"
)

func TestOpenUnsupportedFormat(t *testing.T) {
	archive := writeTestFile(t, "garbage.bin", []byte("this is not an archive"))

	_, err := unzip.Open(archive, unzip.NewConfig())
	if !errors.Is(err, unzip.ErrUnsupportedFormat) {
		t.Fatalf("Open() = %v, want ErrUnsupportedFormat", err)
	}
	var oe *unzip.OpenError
	if !errors.As(err, &oe) {
		t.Fatalf("Open() = %v, want OpenError", err)
	}
}

func TestOpenForcedTypeUnknown(t *testing.T) {
	archive := createTestZip(t, scenarioEntries())

	cfg := unzip.NewConfig(unzip.WithExtractionType("cab"))
	_, err := unzip.Open(archive, cfg)
	if !errors.Is(err, unzip.ErrUnsupportedFormat) {
		t.Fatalf("Open() = %v, want ErrUnsupportedFormat", err)
	}
}

func TestOpenDirectory(t *testing.T) {
	_, err := unzip.Open(t.TempDir(), unzip.NewConfig())
	var oe *unzip.OpenError
	if !errors.As(err, &oe) {
		t.Fatalf("Open() = %v, want OpenError", err)
	}
}

func TestOpenTruncatedZip(t *testing.T) {
	// valid magic bytes followed by nothing parseable
	archive := writeTestFile(t, "broken.zip", []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00})

	_, err := unzip.Open(archive, unzip.NewConfig())
	var oe *unzip.OpenError
	if !errors.As(err, &oe) {
		t.Fatalf("Open() = %v, want OpenError", err)
	}
}

func TestOpenRejectsTraversalNames(t *testing.T) {
	tests := []string{
		"../evil.txt",
		"/abs.txt",
		"a/../../evil.txt",
		"back\\slash.txt",
	}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			archive := createTestZip(t, []testEntry{
				{Name: name, Content: []byte("payload")},
			})

			_, err := unzip.Open(archive, unzip.NewConfig())
			var re *unzip.ReadError
			if !errors.As(err, &re) {
				t.Fatalf("Open() = %v, want ReadError", err)
			}
		})
	}
}

func TestOpenKindConflict(t *testing.T) {
	// "x" appears both as a file and as the parent of another file
	archive := createTestZip(t, []testEntry{
		{Name: "x", Content: []byte("file")},
		{Name: "x/y.txt", Content: []byte("nested")},
	})

	_, err := unzip.Open(archive, unzip.NewConfig())
	var dce *unzip.DirectoryCreateError
	if !errors.As(err, &dce) {
		t.Fatalf("Open() = %v, want DirectoryCreateError", err)
	}
}

func TestOpenDirFileConflict(t *testing.T) {
	archive := createTestZip(t, []testEntry{
		{Name: "x/", Dir: true},
		{Name: "x", Content: []byte("file")},
	})

	_, err := unzip.Open(archive, unzip.NewConfig())
	var dce *unzip.DirectoryCreateError
	if !errors.As(err, &dce) {
		t.Fatalf("Open() = %v, want DirectoryCreateError", err)
	}
}

func TestOpenDuplicateEntryLaterWins(t *testing.T) {
	archive := createTestZip(t, []testEntry{
		{Name: "dup.txt", Content: []byte("one")},
		{Name: "dup.txt", Content: []byte("two")},
	})

	s, err := unzip.Open(archive, unzip.NewConfig())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	children, err := s.Children(s.RootEntries()[0])
	if err != nil {
		t.Fatalf("Children() failed: %v", err)
	}
	if len(children) != 1 {
		t.Fatalf("got %d children, want 1", len(children))
	}

	rc, err := s.OpenContent(children[0])
	if err != nil {
		t.Fatalf("OpenContent() failed: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("reading content failed: %v", err)
	}
	if string(data) != "two" {
		t.Errorf("content = %q, want %q", data, "two")
	}
}

func TestSessionNavigation(t *testing.T) {
	archive := createTestZip(t, scenarioEntries())

	s, err := unzip.Open(archive, unzip.NewConfig())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if s.Format() != "zip" {
		t.Errorf("Format() = %q, want %q", s.Format(), "zip")
	}

	roots := s.RootEntries()
	if len(roots) != 1 {
		t.Fatalf("RootEntries() returned %d entries, want 1", len(roots))
	}
	root := roots[0]
	if !root.IsDir() {
		t.Fatal("root entry is not a directory")
	}

	top, err := s.Children(root)
	if err != nil {
		t.Fatalf("Children(root) failed: %v", err)
	}
	if len(top) != 1 || top[0].Name() != "a" || !top[0].IsDir() {
		t.Fatalf("unexpected top level entries: %v", top)
	}
	if top[0].Path() != "a" {
		t.Errorf("Path() = %q, want %q", top[0].Path(), "a")
	}

	inner, err := s.Children(top[0])
	if err != nil {
		t.Fatalf("Children(a) failed: %v", err)
	}
	if len(inner) != 2 {
		t.Fatalf("got %d children of a, want 2", len(inner))
	}

	// archive defined order: the file comes first
	if inner[0].Name() != "b.txt" || inner[0].IsDir() {
		t.Errorf("unexpected first child: %v", inner[0])
	}
	if inner[0].Size() != int64(len("hello")) {
		t.Errorf("Size() = %d, want %d", inner[0].Size(), len("hello"))
	}
	if inner[0].Path() != "a/b.txt" {
		t.Errorf("Path() = %q, want %q", inner[0].Path(), "a/b.txt")
	}
	if inner[1].Name() != "c" || !inner[1].IsDir() {
		t.Errorf("unexpected second child: %v", inner[1])
	}

	rc, err := s.OpenContent(inner[0])
	if err != nil {
		t.Fatalf("OpenContent() failed: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("reading content failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want %q", data, "hello")
	}
}

func TestChildrenOfFile(t *testing.T) {
	archive := createTestZip(t, scenarioEntries())

	s, err := unzip.Open(archive, unzip.NewConfig())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	top, err := s.Children(s.RootEntries()[0])
	if err != nil {
		t.Fatal(err)
	}
	inner, err := s.Children(top[0])
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Children(inner[0]) // a/b.txt
	var re *unzip.ReadError
	if !errors.As(err, &re) {
		t.Fatalf("Children(file) = %v, want ReadError", err)
	}
}

func TestOpenContentOfDirectory(t *testing.T) {
	archive := createTestZip(t, scenarioEntries())

	s, err := unzip.Open(archive, unzip.NewConfig())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	top, err := s.Children(s.RootEntries()[0])
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.OpenContent(top[0]) // a
	var re *unzip.ReadError
	if !errors.As(err, &re) {
		t.Fatalf("OpenContent(dir) = %v, want ReadError", err)
	}
}

func TestSessionCloseIdempotent(t *testing.T) {
	archive := createTestZip(t, scenarioEntries())

	s, err := unzip.Open(archive, unzip.NewConfig())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("first Close() failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close() failed: %v", err)
	}
}

func TestOpenImplicitDirectories(t *testing.T) {
	// no explicit entry for "deep" or "deep/er"
	archive := createTestZip(t, []testEntry{
		{Name: "deep/er/file.txt", Content: []byte("x")},
	})

	s, err := unzip.Open(archive, unzip.NewConfig())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	top, err := s.Children(s.RootEntries()[0])
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].Name() != "deep" || !top[0].IsDir() {
		t.Fatalf("implicit directory not materialized: %v", top)
	}
	mid, err := s.Children(top[0])
	if err != nil {
		t.Fatal(err)
	}
	if len(mid) != 1 || mid[0].Name() != "er" || !mid[0].IsDir() {
		t.Fatalf("implicit directory not materialized: %v", mid)
	}
}

func TestOpenDoesNotTouchFilesystem(t *testing.T) {
	archive := createTestZip(t, scenarioEntries())
	probe := filepath.Dir(archive)

	before, err := os.ReadDir(probe)
	if err != nil {
		t.Fatal(err)
	}

	s, err := unzip.Open(archive, unzip.NewConfig())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	s.Close()

	after, err := os.ReadDir(probe)
	if err != nil {
		t.Fatal(err)
	}
	if len(before) != len(after) {
		t.Errorf("opening the archive changed the directory next to it")
	}
}
