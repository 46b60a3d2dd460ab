package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("page.twig", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	// тот же путь с новым содержимым получает новый ID
	id2 := fs.Add("page.twig", []byte("hello {{ name }}"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("page.twig")
	if !exists || latestID != id2 {
		t.Errorf("Expected latest ID %d, got %d (exists=%v)", id2, latestID, exists)
	}

	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("Expected first file content to be 'hello world', got %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Expected 2 files, got %d", fs.Len())
	}
	if fs.Get(FileID(7)) != nil {
		t.Error("Expected nil for unknown FileID")
	}
}

func TestAddVirtualLineStarts(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []uint32
	}{
		{"lf", "a\nb\n", []uint32{0, 2, 4}},
		{"crlf", "a\r\nb", []uint32{0, 3}},
		{"bare cr", "a\rb\rc", []uint32{0, 2, 4}},
		{"empty", "", []uint32{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFileSet()
			file := fs.Get(fs.AddVirtual("v.twig", []byte(tt.content)))
			if len(file.LineStarts) != len(tt.want) {
				t.Fatalf("LineStarts = %v, want %v", file.LineStarts, tt.want)
			}
			for i := range tt.want {
				if file.LineStarts[i] != tt.want[i] {
					t.Fatalf("LineStarts = %v, want %v", file.LineStarts, tt.want)
				}
			}
			if file.Flags&FileVirtual == 0 {
				t.Error("Expected FileVirtual flag to be set")
			}
		})
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("v.twig", []byte("first\r\nsecond\rthird\nlast")))

	want := []string{"", "first", "second", "third", "last", ""}
	for n, w := range want {
		if got := file.GetLine(uint32(n)); got != w {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, w)
		}
	}
}

func TestRunesDecodesUTF8(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("v.twig", []byte("h\u00e9llo {{ \u043c\u0438\u0440 }}")))
	runes := file.Runes()
	if len(runes) != 15 {
		t.Fatalf("expected 15 codepoints, got %d", len(runes))
	}
	if runes[1] != '\u00e9' || runes[9] != '\u043c' {
		t.Fatalf("unexpected decode: %q", string(runes))
	}
}

func TestBOMRemoval(t *testing.T) {
	bomContent := []byte{0xEF, 0xBB, 0xBF, 'x', '\n'}
	withoutBOM, hadBOM := removeBOM(bomContent)
	if !hadBOM {
		t.Error("Expected BOM to be detected")
	}
	if string(withoutBOM) != "x\n" {
		t.Errorf("Expected content without BOM %q, got %q", "x\n", string(withoutBOM))
	}

	if _, had := removeBOM([]byte("ab")); had {
		t.Error("short content must not report a BOM")
	}
}

func TestLoadStripsBOMAndKeepsLineEndings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.twig")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\n{{ b }}\r\n")...)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "a\r\n{{ b }}\r\n" {
		t.Fatalf("unexpected content %q", file.Content)
	}
	if file.Flags&FileHadBOM == 0 {
		t.Error("Expected FileHadBOM flag to be set")
	}
	if got, ok := fs.GetByPath(path); !ok || got.ID != id {
		t.Error("GetByPath should find the loaded file")
	}
}

func TestLoadWithNormalizeNFC(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nfc.twig")
	// "e" + combining acute accent
	if err := os.WriteFile(path, []byte("cafe\u0301"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.LoadWith(path, LoadOptions{NormalizeNFC: true})
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "caf\u00e9" {
		t.Fatalf("expected NFC content, got %q", file.Content)
	}
	if file.Flags&FileNormalizedNFC == 0 {
		t.Error("Expected FileNormalizedNFC flag to be set")
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.twig")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFormatPathModes(t *testing.T) {
	f := &File{Path: "/very/long/path/to/some/deeply/nested/templates/page.twig"}
	if got := f.FormatPath("basename", ""); got != "page.twig" {
		t.Errorf("basename: got %q", got)
	}
	if got := f.FormatPath("auto", ""); got != "page.twig" {
		t.Errorf("auto: got %q", got)
	}
	short := &File{Path: "a/b.twig"}
	if got := short.FormatPath("auto", ""); got != "a/b.twig" {
		t.Errorf("auto short: got %q", got)
	}
	if got := short.FormatPath("", ""); got != "a/b.twig" {
		t.Errorf("default: got %q", got)
	}
}

func TestMarkerHelpers(t *testing.T) {
	a := Marker{Index: 2, Line: 1, Column: 3}
	b := Marker{Index: 5, Line: 2, Column: 1}
	if !a.Before(b) || b.Before(a) {
		t.Fatal("Before ordering is wrong")
	}
	if a.String() != "1:3" {
		t.Fatalf("String() = %q", a.String())
	}
	if lc := b.LineCol(); lc.Line != 2 || lc.Col != 1 {
		t.Fatalf("LineCol() = %+v", lc)
	}
}
