// Package store handles SQLite persistence of comparison runs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/verte-zerg/lexsync/internal/dictionary"
	"github.com/verte-zerg/lexsync/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrRunNotFound is returned when a run id is unknown.
var ErrRunNotFound = errors.New("run not found")

// annotationSep joins annotations in one column; dictionary lines cannot
// contain newlines.
const annotationSep = "\n"

// Store wraps SQLite access for comparison runs.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			left_name TEXT NOT NULL,
			left_path TEXT NOT NULL,
			right_name TEXT NOT NULL,
			right_path TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_results (
			run_id TEXT NOT NULL,
			word TEXT NOT NULL,
			relation INTEGER NOT NULL,
			left_meta TEXT NOT NULL,
			right_meta TEXT NOT NULL,
			PRIMARY KEY (run_id, word)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_run_results_relation ON run_results(run_id, relation);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun stores a comparison and its per-word results. An empty run ID is
// replaced by a new ULID; a zero CreatedAt by the current time.
func (s *Store) SaveRun(ctx context.Context, run model.Run, results []model.WordResult) (model.Run, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if run.ID == "" {
		run.ID = ulid.Make().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Run{}, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, left_name, left_path, right_name, right_path)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.Format(time.RFC3339Nano),
		run.Left.Name,
		run.Left.Path,
		run.Right.Name,
		run.Right.Path,
	)
	if err != nil {
		return model.Run{}, err
	}

	if len(results) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO run_results (run_id, word, relation, left_meta, right_meta)
			 VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return model.Run{}, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, r := range results {
			if _, err = stmt.ExecContext(ctx, run.ID, r.Word, int(r.Relation),
				strings.Join(r.Left, annotationSep), strings.Join(r.Right, annotationSep)); err != nil {
				return model.Run{}, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return model.Run{}, err
	}
	run.Counts = countResults(results)
	return run, nil
}

// ListRuns returns the most recent runs first. A non-positive limit returns
// every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	query := `SELECT id, created_at, left_name, left_path, right_name, right_path
		FROM runs
		ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range runs {
		counts, err := s.relationCounts(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Counts = counts
	}
	return runs, nil
}

// GetRun loads one run by id.
func (s *Store) GetRun(ctx context.Context, id string) (model.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, left_name, left_path, right_name, right_path
		 FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return model.Run{}, err
	}
	counts, err := s.relationCounts(ctx, run.ID)
	if err != nil {
		return model.Run{}, err
	}
	run.Counts = counts
	return run, nil
}

// ListResults returns the word results of a run in word order, optionally
// restricted to the given relations.
func (s *Store) ListResults(ctx context.Context, runID string, relations []dictionary.Relation) ([]model.WordResult, error) {
	clauses := []string{"run_id = ?"}
	args := []any{runID}
	if len(relations) > 0 {
		placeholders := make([]string, len(relations))
		for i, r := range relations {
			placeholders[i] = "?"
			args = append(args, int(r))
		}
		clauses = append(clauses, fmt.Sprintf("relation IN (%s)", strings.Join(placeholders, ",")))
	}
	query := fmt.Sprintf(`SELECT word, relation, left_meta, right_meta
		FROM run_results
		WHERE %s
		ORDER BY word ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.WordResult
	for rows.Next() {
		var r model.WordResult
		var rel int
		var left, right string
		if err := rows.Scan(&r.Word, &rel, &left, &right); err != nil {
			return nil, err
		}
		r.Relation = dictionary.Relation(rel)
		r.Left = splitMeta(left)
		r.Right = splitMeta(right)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Store) relationCounts(ctx context.Context, runID string) (model.Counts, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT relation, COUNT(*) FROM run_results WHERE run_id = ? GROUP BY relation`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	counts := model.Counts{}
	for rows.Next() {
		var rel, n int
		if err := rows.Scan(&rel, &n); err != nil {
			return nil, err
		}
		counts[dictionary.Relation(rel)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (model.Run, error) {
	var run model.Run
	var createdAt string
	if err := row.Scan(&run.ID, &createdAt, &run.Left.Name, &run.Left.Path, &run.Right.Name, &run.Right.Path); err != nil {
		return model.Run{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return model.Run{}, err
	}
	run.CreatedAt = parsed
	return run, nil
}

func splitMeta(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, annotationSep)
}

func countResults(results []model.WordResult) model.Counts {
	counts := model.Counts{}
	for _, r := range results {
		counts[r.Relation]++
	}
	return counts
}
