package dictionary

import (
	"errors"
	"testing"
)

func TestBuildExample(t *testing.T) {
	idx, err := Build([]string{"kedi [P:Noun]", "kedi [P:Adj]", "köpek"}, BuildOptions{})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if idx.Len() != 2 {
		t.Fatalf("expected 2 words, got %d", idx.Len())
	}
	kedi, ok := idx.Lookup("kedi")
	if !ok || !kedi.Equal(NewAnnotationSet("[P:Noun]", "[P:Adj]")) {
		t.Fatalf("unexpected kedi annotations: %v", kedi)
	}
	kopek, ok := idx.Lookup("köpek")
	if !ok || !kopek.Equal(NewAnnotationSet(NoAnnotation)) {
		t.Fatalf("unexpected köpek annotations: %v", kopek)
	}
	if idx.Entries() != 3 {
		t.Fatalf("expected 3 entries, got %d", idx.Entries())
	}
}

func TestBuildDuplicatesCollapse(t *testing.T) {
	idx, err := Build([]string{"kedi [P:Noun]", "  kedi [P:Noun]  "}, BuildOptions{})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	set, _ := idx.Lookup("kedi")
	if set.Len() != 1 {
		t.Fatalf("expected one annotation, got %v", set.Sorted())
	}
}

func TestBuildLookupMissing(t *testing.T) {
	idx, err := Build([]string{"kedi"}, BuildOptions{})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if _, ok := idx.Lookup("at"); ok {
		t.Fatalf("expected at to be absent")
	}
	if idx.Contains("at") {
		t.Fatalf("expected Contains to be false")
	}
}

func TestBuildMalformedReportsLine(t *testing.T) {
	_, err := Build([]string{"kedi [P:Noun]", "at[P:Noun]"}, BuildOptions{})
	if !errors.Is(err, ErrMalformedEntry) {
		t.Fatalf("expected malformed entry error, got %v", err)
	}
	var le *LineError
	if !errors.As(err, &le) || le.Line != 2 {
		t.Fatalf("expected error on line 2, got %v", err)
	}
}

func TestBuildLinePolicies(t *testing.T) {
	lines := []string{"kedi", "", "# yorum", "at [P:Noun]"}

	idx, err := Build(lines, BuildOptions{})
	if err != nil {
		t.Fatalf("default policies: %v", err)
	}
	if !idx.Contains("# yorum") {
		t.Fatalf("expected comment to be indexed as data by default")
	}

	idx, err = Build(lines, BuildOptions{Comments: LineSkip})
	if err != nil {
		t.Fatalf("skip comments: %v", err)
	}
	if idx.Contains("# yorum") || idx.Len() != 2 {
		t.Fatalf("expected comment to be skipped, got %v", idx.Words())
	}

	if _, err := Build(lines, BuildOptions{Blank: LineReject}); !errors.Is(err, ErrBlankLine) {
		t.Fatalf("expected ErrBlankLine, got %v", err)
	}
	if _, err := Build(lines, BuildOptions{Blank: LineKeep}); !errors.Is(err, ErrMalformedEntry) {
		t.Fatalf("expected kept blank line to be malformed, got %v", err)
	}
	_, err = Build(lines, BuildOptions{Comments: LineReject})
	var le *LineError
	if !errors.Is(err, ErrCommentLine) || !errors.As(err, &le) || le.Line != 3 {
		t.Fatalf("expected ErrCommentLine on line 3, got %v", err)
	}
}

func TestParseLinePolicy(t *testing.T) {
	for name, want := range map[string]LinePolicy{"": LineDefault, "keep": LineKeep, "Skip": LineSkip, "reject": LineReject} {
		got, err := ParseLinePolicy(name)
		if err != nil || got != want {
			t.Fatalf("ParseLinePolicy(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseLinePolicy("drop"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestIndexSelectAndPolysemous(t *testing.T) {
	idx := FromEntries([]Entry{
		{Word: "acı", Annotation: NoAnnotation},
		{Word: "acı", Annotation: "[P:Adj]"},
		{Word: "ah", Annotation: "[P:Interj]"},
		{Word: "ağaç", Annotation: NoAnnotation},
	})
	nounAdj := idx.Select(Predicate{Has: []string{"Adj", NoAnnotation}})
	if len(nounAdj) != 1 || nounAdj[0] != "acı" {
		t.Fatalf("unexpected noun+adj words: %v", nounAdj)
	}
	poly := idx.Polysemous()
	if len(poly) != 1 || poly[0] != "acı" {
		t.Fatalf("unexpected polysemous words: %v", poly)
	}
	words := idx.Words()
	if len(words) != 3 || words[0] != "acı" || words[1] != "ah" || words[2] != "ağaç" {
		t.Fatalf("unexpected word order: %v", words)
	}
}
