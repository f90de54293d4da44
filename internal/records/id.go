// Package records holds plumbing shared by every entity repository:
// identifier allocation and the date/clock formats used across the CSV files.
package records

import (
	"fmt"
	"strconv"
	"strings"
)

// fallbackID is returned when a file holds no records yet.
const fallbackID = "A0001"

// NextID derives the next identifier from the ids already in a file.
//
// The first id acts as the template: its non-digit prefix and the width of
// its trailing digit run (default 4 when it has none) fix the pattern for
// the whole file. The numeric suffix of every id sharing that prefix feeds
// a max scan; ids with a different prefix or an unparsable suffix are
// ignored rather than rejected. The returned id is prefix + zero-padded
// max+1.
//
// Note the template asymmetry is load-bearing: a hand-edited first row
// silently changes the prefix and width of every subsequent allocation.
// Kept for compatibility with existing data files.
func NextID(existing []string) string {
	if len(existing) == 0 {
		return fallbackID
	}

	sample := strings.TrimSpace(existing[0])
	run := digitRun(sample)
	prefix := sample[:len(sample)-run]
	width := run
	if width <= 0 {
		width = 4
	}

	max := 0
	for _, id := range existing {
		id = strings.TrimSpace(id)
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if n, ok := numericSuffix(id); ok && n > max {
			max = n
		}
	}

	return fmt.Sprintf("%s%0*d", prefix, width, max+1)
}

// digitRun counts the trailing digits of id.
func digitRun(id string) int {
	n := 0
	for i := len(id) - 1; i >= 0 && id[i] >= '0' && id[i] <= '9'; i-- {
		n++
	}
	return n
}

// numericSuffix parses the trailing digit run of id, best-effort.
func numericSuffix(id string) (int, bool) {
	run := digitRun(id)
	if run == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(id[len(id)-run:])
	if err != nil {
		return 0, false
	}
	return n, true
}
