package rewrite

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/lexsync/internal/dictionary"
)

func TestRewritePreservesUntouchedLines(t *testing.T) {
	src := "# başlık\r\nkuşgiller\nkedi [P:Noun]  \nbalıkgiller\nat"
	var out bytes.Buffer
	res, err := Rewrite(strings.NewReader(src), &out, RemoveSuffixes([]string{"giller"}, false))
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if got := out.String(); got != "# başlık\r\nkedi [P:Noun]  \nat" {
		t.Fatalf("unexpected output %q", got)
	}
	if res.Kept != 3 || len(res.Dropped) != 2 || res.Dropped[0] != "kuşgiller" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestAddTag(t *testing.T) {
	src := "bayi\nbayi [P:Adj]\nbayi [P:Adv; A:EndsWithAyn]\nkedi [P:Noun]\n# vaki\n"
	var out bytes.Buffer
	res, err := Rewrite(strings.NewReader(src), &out, AddTag([]string{"bayi", "vaki"}, "A:EndsWithAyn"))
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	want := "bayi [A:EndsWithAyn]\nbayi [P:Adj; A:EndsWithAyn]\nbayi [P:Adv; A:EndsWithAyn]\nkedi [P:Noun]\n# vaki\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	if len(res.Replaced) != 2 || res.Replaced[1].Line != 2 || res.Replaced[1].Old != "bayi [P:Adj]" {
		t.Fatalf("unexpected replacements: %+v", res.Replaced)
	}
}

func TestAddTagRejectsMalformedLine(t *testing.T) {
	var out bytes.Buffer
	_, err := Rewrite(strings.NewReader("kedi\nat[P:Noun]\n"), &out, AddTag([]string{"at"}, "A:X"))
	if !errors.Is(err, dictionary.ErrMalformedEntry) {
		t.Fatalf("expected malformed entry error, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line number in %v", err)
	}
}

func TestRemoveLines(t *testing.T) {
	var out bytes.Buffer
	_, err := Rewrite(strings.NewReader("yöneltmek\nyöneltmek [P:Noun]\nyürütmek\n"), &out, RemoveLines([]string{" yöneltmek", "yürütmek"}))
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if out.String() != "yöneltmek [P:Noun]\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRemoveWords(t *testing.T) {
	var out bytes.Buffer
	res, err := Rewrite(strings.NewReader("ak\nak [P:Adj]\n# ak\nat\n"), &out, RemoveWords([]string{"ak"}))
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if out.String() != "# ak\nat\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if len(res.Dropped) != 2 {
		t.Fatalf("expected 2 dropped lines, got %v", res.Dropped)
	}
}

func TestChain(t *testing.T) {
	var out bytes.Buffer
	fn := Chain(RemoveWords([]string{"ak"}), RemoveSuffixes([]string{"giller"}, false), AddTag([]string{"at"}, "A:X"))
	res, err := Rewrite(strings.NewReader("ak\nkuşgiller\nat\nev\n"), &out, fn)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if out.String() != "at [A:X]\nev\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if len(res.Dropped) != 2 || len(res.Replaced) != 1 || res.Kept != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestFileInPlaceAndToOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "master.dict")
	if err := os.WriteFile(path, []byte("kitaplar\nkitap\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	outPath := filepath.Join(dir, "out", "new.dict")
	if _, err := File(path, outPath, RemoveSuffixes([]string{"lar"}, false)); err != nil {
		t.Fatalf("File: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil || string(data) != "kitap\n" {
		t.Fatalf("unexpected output file %q (%v)", data, err)
	}
	orig, _ := os.ReadFile(path)
	if string(orig) != "kitaplar\nkitap\n" {
		t.Fatalf("source should be untouched, got %q", orig)
	}

	if _, err := File(path, "", RemoveSuffixes([]string{"tap"}, false)); err != nil {
		t.Fatalf("File in place: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "kitaplar\n" {
		t.Fatalf("unexpected in-place result %q", data)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestFileKeepsPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.dict")
	if err := os.WriteFile(path, []byte("at\nkedi\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Chmod(path, 0o644); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	if _, err := File(path, "", RemoveWords([]string{"at"})); err != nil {
		t.Fatalf("File: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if got := info.Mode().Perm(); got != 0o644 {
		t.Fatalf("expected mode 0644, got %v", got)
	}
}

func TestAddTagKeepsIndentation(t *testing.T) {
	var out bytes.Buffer
	if _, err := Rewrite(strings.NewReader("  kedi [P:Noun]\n\tat\n"), &out, AddTag([]string{"kedi", "at"}, "A:X")); err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if got := out.String(); got != "  kedi [P:Noun; A:X]\n\tat [A:X]\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
