package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/lexsync/internal/dictionary"
	"github.com/verte-zerg/lexsync/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "lexsync.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	})
	return st
}

func sampleResults() []model.WordResult {
	return []model.WordResult{
		{Word: "kitap", Left: []string{"[P:Noun]"}, Right: []string{"[P:Noun]"}, Relation: dictionary.RelationEqual},
		{Word: "ak", Left: []string{"[P:Adj]", "[P:Noun]"}, Right: []string{"[P:Adj]"}, Relation: dictionary.RelationSuperset},
		{Word: "zzz", Left: []string{"NOMETA"}, Relation: dictionary.RelationMissing},
	}
}

func TestSaveRunAndGetRun(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	saved, err := st.SaveRun(ctx, model.Run{
		Left:  model.Side{Name: "T", Path: "/a.dict"},
		Right: model.Side{Name: "Z", Path: "/b.dict"},
	}, sampleResults())
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if len(saved.ID) != 26 {
		t.Fatalf("expected ULID id, got %q", saved.ID)
	}
	if saved.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
	if saved.Counts.Total() != 3 || saved.Counts[dictionary.RelationMissing] != 1 {
		t.Fatalf("unexpected counts: %v", saved.Counts)
	}

	got, err := st.GetRun(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Left != saved.Left || got.Right != saved.Right {
		t.Fatalf("unexpected sides: %+v", got)
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Fatalf("expected created_at %v, got %v", saved.CreatedAt, got.CreatedAt)
	}
	if got.Counts[dictionary.RelationEqual] != 1 || got.Counts[dictionary.RelationSuperset] != 1 {
		t.Fatalf("unexpected stored counts: %v", got.Counts)
	}
}

func TestGetRunNotFound(t *testing.T) {
	st := openTestStore(t)
	_, err := st.GetRun(context.Background(), "missing")
	if !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestListResults(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	run, err := st.SaveRun(ctx, model.Run{}, sampleResults())
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	all, err := st.ListResults(ctx, run.ID, nil)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 results, got %d", len(all))
	}
	if all[0].Word != "ak" || all[1].Word != "kitap" || all[2].Word != "zzz" {
		t.Fatalf("expected word order, got %+v", all)
	}
	if len(all[0].Left) != 2 || all[0].Left[1] != "[P:Noun]" {
		t.Fatalf("unexpected left annotations: %v", all[0].Left)
	}
	if all[2].Right != nil {
		t.Fatalf("expected missing word to have no right annotations, got %v", all[2].Right)
	}

	filtered, err := st.ListResults(ctx, run.ID, []dictionary.Relation{dictionary.RelationMissing, dictionary.RelationSuperset})
	if err != nil {
		t.Fatalf("ListResults filtered: %v", err)
	}
	if len(filtered) != 2 || filtered[0].Relation != dictionary.RelationSuperset || filtered[1].Relation != dictionary.RelationMissing {
		t.Fatalf("unexpected filtered results: %+v", filtered)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"first", "second", "third"} {
		if _, err := st.SaveRun(ctx, model.Run{
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Left:      model.Side{Name: name},
		}, nil); err != nil {
			t.Fatalf("SaveRun %s: %v", name, err)
		}
	}

	runs, err := st.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Left.Name != "third" || runs[1].Left.Name != "second" {
		t.Fatalf("unexpected order: %s, %s", runs[0].Left.Name, runs[1].Left.Name)
	}
	if runs[0].Counts.Total() != 0 {
		t.Fatalf("expected empty counts, got %v", runs[0].Counts)
	}

	all, err := st.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}
}
