// Package lines loads dictionary and word-list files line by line.
package lines

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrInvalidEncoding is matched by every EncodingError.
var ErrInvalidEncoding = errors.New("invalid UTF-8")

// EncodingError reports a line that is not valid UTF-8.
type EncodingError struct {
	Path string
	Line int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s:%d: invalid UTF-8", e.Path, e.Line)
}

// Is reports whether target is ErrInvalidEncoding.
func (e *EncodingError) Is(target error) bool {
	return target == ErrInvalidEncoding
}

// Load reads every line of the file at path. Line terminators are removed,
// other whitespace is kept.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()
	return Read(file, path)
}

// Read reads every line from r. name is used in encoding errors.
func Read(r io.Reader, name string) ([]string, error) {
	var out []string
	reader := bufio.NewReader(r)
	for n := 1; ; n++ {
		line, err := reader.ReadString('\n')
		if line != "" {
			if !utf8.ValidString(line) {
				return nil, &EncodingError{Path: name, Line: n}
			}
			line = strings.TrimSuffix(line, "\n")
			out = append(out, strings.TrimSuffix(line, "\r"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// LoadWords reads one word per line from the provided file path. Blank lines
// are dropped.
func LoadWords(path string) ([]string, error) {
	all, err := Load(path)
	if err != nil {
		return nil, err
	}
	var words []string
	for _, line := range all {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// Duplicates returns the stripped lines that occur more than once, each
// reported at every repeated occurrence.
func Duplicates(all []string) []string {
	seen := make(map[string]struct{}, len(all))
	var dups []string
	for _, line := range all {
		line = strings.TrimSpace(line)
		if _, ok := seen[line]; ok {
			dups = append(dups, line)
			continue
		}
		seen[line] = struct{}{}
	}
	return dups
}
