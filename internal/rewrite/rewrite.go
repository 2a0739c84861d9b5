// Package rewrite produces edited copies of dictionary files. Lines that are
// not explicitly dropped or replaced are copied byte for byte, in order.
package rewrite

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type actionKind int

const (
	actionKeep actionKind = iota
	actionDrop
	actionReplace
)

// Action tells Rewrite what to do with one line.
type Action struct {
	kind actionKind
	text string
}

// Keep copies the line unchanged.
var Keep = Action{}

// Drop omits the line.
var Drop = Action{kind: actionDrop}

// Replace writes text instead of the line, keeping the original terminator.
func Replace(text string) Action {
	return Action{kind: actionReplace, text: text}
}

// Func decides the action for a line. The line is passed without its
// terminator.
type Func func(line string) (Action, error)

// Chain applies fns in order. The first Drop or Replace wins.
func Chain(fns ...Func) Func {
	return func(line string) (Action, error) {
		for _, fn := range fns {
			action, err := fn(line)
			if err != nil {
				return Keep, err
			}
			if action.kind != actionKeep {
				return action, nil
			}
		}
		return Keep, nil
	}
}

// Result summarizes a rewrite.
type Result struct {
	Kept     int
	Dropped  []string
	Replaced []Change
}

// Change records a replaced line.
type Change struct {
	Line int
	Old  string
	New  string
}

// Rewrite streams src to dst, applying fn to every line.
func Rewrite(src io.Reader, dst io.Writer, fn Func) (Result, error) {
	var res Result
	reader := bufio.NewReader(src)
	writer := bufio.NewWriter(dst)
	for n := 1; ; n++ {
		raw, rerr := reader.ReadString('\n')
		if raw != "" {
			body, term := splitTerminator(raw)
			action, err := fn(body)
			if err != nil {
				return res, fmt.Errorf("line %d: %w", n, err)
			}
			switch action.kind {
			case actionDrop:
				res.Dropped = append(res.Dropped, body)
			case actionReplace:
				res.Replaced = append(res.Replaced, Change{Line: n, Old: body, New: action.text})
				if _, err := writer.WriteString(action.text + term); err != nil {
					return res, fmt.Errorf("failed to write line %d: %w", n, err)
				}
			default:
				res.Kept++
				if _, err := writer.WriteString(raw); err != nil {
					return res, fmt.Errorf("failed to write line %d: %w", n, err)
				}
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return res, fmt.Errorf("failed to read line %d: %w", n, rerr)
		}
	}
	if err := writer.Flush(); err != nil {
		return res, fmt.Errorf("failed to flush output: %w", err)
	}
	return res, nil
}

// File rewrites the dictionary at path into out through a temporary file
// and a rename. An empty out rewrites path in place. The result carries the
// permission bits of path.
func File(path, out string, fn Func) (Result, error) {
	if out == "" {
		out = path
	}
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to stat dictionary: %w", err)
	}
	in, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer func() {
		if cerr := in.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return Result{}, fmt.Errorf("failed to create output dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(out), "dictionary-*.tmp")
	if err != nil {
		return Result{}, fmt.Errorf("failed to create temp dictionary: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	res, err := Rewrite(in, tmpFile, fn)
	if err != nil {
		return res, err
	}
	if err := tmpFile.Chmod(info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("failed to set dictionary permissions: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return res, fmt.Errorf("failed to close dictionary: %w", err)
	}
	if err := os.Rename(tmpPath, out); err != nil {
		return res, fmt.Errorf("failed to write dictionary: %w", err)
	}
	return res, nil
}

func splitTerminator(raw string) (body, term string) {
	switch {
	case strings.HasSuffix(raw, "\r\n"):
		return raw[:len(raw)-2], "\r\n"
	case strings.HasSuffix(raw, "\n"):
		return raw[:len(raw)-1], "\n"
	default:
		return raw, ""
	}
}
