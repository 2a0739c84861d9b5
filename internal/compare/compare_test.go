package compare

import (
	"strings"
	"testing"

	"github.com/verte-zerg/lexsync/internal/dictionary"
)

func mustBuild(t *testing.T, lines ...string) *dictionary.Index {
	t.Helper()
	idx, err := dictionary.Build(lines, dictionary.BuildOptions{})
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	return idx
}

func TestCompareRelations(t *testing.T) {
	left := mustBuild(t, "acı", "acı [P:Adj]", "ah [P:Interj]", "ak", "al [P:Adj]", "at")
	right := mustBuild(t, "acı", "ah [P:Interj]", "ak", "ak [P:Adj]", "al [P:Adv]")

	results := Compare(left, right, Options{})
	got := map[string]dictionary.Relation{}
	for _, r := range results {
		got[r.Word] = r.Relation
	}
	want := map[string]dictionary.Relation{
		"acı": dictionary.RelationSuperset,
		"ah":  dictionary.RelationEqual,
		"ak":  dictionary.RelationSubset,
		"al":  dictionary.RelationDisjoint,
		"at":  dictionary.RelationMissing,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d results, got %v", len(want), got)
	}
	for w, rel := range want {
		if got[w] != rel {
			t.Fatalf("word %q: expected %v, got %v", w, rel, got[w])
		}
	}

	counts := Summarize(results)
	if counts.Total() != 5 || counts[dictionary.RelationMissing] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestCompareFilters(t *testing.T) {
	left := mustBuild(t, "acı", "acı [P:Adj]", "ak", "ak [P:Adj]", "at")
	right := mustBuild(t, "acı", "ak", "ak [P:Adj]")

	// Left nouns that are also adjectives, where the right side is a noun
	// without the adjective reading.
	results := Compare(left, right, Options{
		LeftMatch:  dictionary.Predicate{Has: []string{"Adj", dictionary.NoAnnotation}},
		RightMatch: dictionary.Predicate{Has: []string{dictionary.NoAnnotation}, Lacks: []string{"Adj"}},
		SkipEqual:  true,
	})
	if len(results) != 1 || results[0].Word != "acı" {
		t.Fatalf("unexpected results: %+v", results)
	}

	only := OnlyIn(left, right)
	if len(only) != 1 || only[0].Word != "at" {
		t.Fatalf("unexpected only-in results: %+v", only)
	}

	noMissing := Compare(left, right, Options{SkipMissing: true, SkipEqual: true})
	if len(noMissing) != 1 || noMissing[0].Word != "acı" {
		t.Fatalf("unexpected results: %+v", noMissing)
	}
}

func TestStatusLine(t *testing.T) {
	left := mustBuild(t, "acı", "acı [P:Adj]", "at", "ak")
	right := mustBuild(t, "acı", "ak")
	lines := []string{}
	for _, r := range Compare(left, right, Options{}) {
		lines = append(lines, StatusLine(r, "T", "Z"))
	}
	want := []string{
		"Z has less info for T line : acı 'NOMETA,[P:Adj]', matching lines in Z : 'NOMETA'",
		"Same T line : ak 'NOMETA', matching lines in Z : 'NOMETA'",
		"Z doesn't have word : at 'NOMETA'",
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected status lines:\n%s", strings.Join(lines, "\n"))
	}
}

func TestUnifiedDiff(t *testing.T) {
	out, err := UnifiedDiff([]string{"acı", "ak", "at"}, []string{"acı", "al", "at"}, "z.dict", "t.dict", 0)
	if err != nil {
		t.Fatalf("UnifiedDiff: %v", err)
	}
	for _, want := range []string{"--- z.dict", "+++ t.dict", "-ak\n", "+al\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("diff missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, " acı") {
		t.Fatalf("expected no context lines:\n%s", out)
	}
}

func TestMirror(t *testing.T) {
	left := mustBuild(t, "ak", "at [P:Noun]")
	right := mustBuild(t, "ak", "ek", "at [P:Noun]", "at [P:Verb]")

	results := Mirror(left, right, Options{
		LeftMatch:  dictionary.Predicate{Has: []string{"Noun"}},
		RightMatch: dictionary.Predicate{Has: []string{"Verb"}},
	})
	if len(results) != 1 || results[0].Word != "at" || results[0].Relation != dictionary.RelationSuperset {
		t.Fatalf("unexpected mirror results: %+v", results)
	}

	missing := Mirror(left, right, Options{OnlyMissing: true})
	if len(missing) != 1 || missing[0].Word != "ek" {
		t.Fatalf("unexpected mirror missing results: %+v", missing)
	}
}
