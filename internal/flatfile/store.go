// Package flatfile implements the line-oriented delimited-text persistence
// primitive backing every entity repository. One file per entity, first line
// is the header, one record per subsequent line. There is no file locking;
// the design assumes a single process owns each file.
package flatfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Store reads and writes delimiter-separated rows for a single-process owner.
type Store struct {
	delim string
}

// NewStore creates a comma-delimited store.
func NewStore() *Store {
	return &Store{delim: ","}
}

// ReadAll returns every line of the file split into fields, in file order.
// Row 0 is the header row; it is returned verbatim and never interpreted.
// Splitting preserves empty trailing fields.
func (s *Store) ReadAll(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("flatfile: read %s: %w", path, err)
	}
	defer f.Close()

	var rows [][]string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		rows = append(rows, strings.Split(line, s.delim))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("flatfile: read %s: %w", path, err)
	}
	return rows, nil
}

// AppendRow appends a single row without touching preceding bytes. A line
// separator is written before the row unless the file is currently empty,
// so files never carry a trailing newline.
func (s *Store) AppendRow(path string, row []string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("flatfile: append %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("flatfile: append %s: %w", path, err)
	}
	defer f.Close()

	line := strings.Join(row, s.delim)
	if info.Size() > 0 {
		line = "\n" + line
	}
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("flatfile: append %s: %w", path, err)
	}
	return nil
}

// WriteAll replaces the entire file content with the given rows, header
// included. Truncate-and-rewrite: a subsequent reader never sees old and new
// rows interleaved.
func (s *Store) WriteAll(path string, rows [][]string) error {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, s.delim)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return fmt.Errorf("flatfile: write %s: %w", path, err)
	}
	return nil
}

// EnsureFile creates the file with the given header row when it does not
// already exist. Existing files are left untouched.
func (s *Store) EnsureFile(path string, header []string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("flatfile: stat %s: %w", path, err)
	}
	return s.WriteAll(path, [][]string{header})
}
