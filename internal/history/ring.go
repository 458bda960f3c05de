package history

import "strings"

// DefaultSize is the capacity used when a Ring is created with a
// non-positive size.
const DefaultSize = 10

// Ring is a fixed capacity round-robin log of command lines. Writes go to
// the slot after the last written one; browsing moves an independent cursor
// around the ring.
//
// With fewer than Cap() lines ever added, browsing may surface empty slots
// unless BlockOnEmpty is set.
type Ring struct {
	// BlockOnEmpty makes Up and Down step back off of an empty slot.
	BlockOnEmpty bool

	lines  []string
	index  int // next write slot
	browse int
}

// New creates a ring holding size lines.
func New(size int, blockOnEmpty bool) *Ring {
	if size <= 0 {
		size = DefaultSize
	}
	return &Ring{
		BlockOnEmpty: blockOnEmpty,
		lines:        make([]string, size),
	}
}

// Cap returns the fixed number of slots.
func (r *Ring) Cap() int { return len(r.lines) }

// Add records line, trimmed of trailing whitespace, unless it repeats the
// most recently written line. Adding resets the browse cursor.
func (r *Ring) Add(line string) {
	line = strings.TrimRight(line, " \t\r\n")
	if r.lines[r.wrap(r.index-1)] == line {
		return
	}
	r.lines[r.index] = line
	r.index = r.wrap(r.index + 1)
	r.browse = r.index
}

// Up moves the browse cursor to the previous slot and returns its line.
func (r *Ring) Up() string {
	r.browse = r.wrap(r.browse - 1)
	if r.BlockOnEmpty && r.lines[r.browse] == "" {
		r.browse = r.wrap(r.browse + 1)
	}
	return r.lines[r.browse]
}

// Down moves the browse cursor to the next slot and returns its line.
func (r *Ring) Down() string {
	r.browse = r.wrap(r.browse + 1)
	if r.BlockOnEmpty && r.lines[r.browse] == "" {
		r.browse = r.wrap(r.browse - 1)
	}
	return r.lines[r.browse]
}

// Last resets the browse cursor to the write position.
func (r *Ring) Last() { r.browse = r.index }

// Entries returns the non-empty stored lines, oldest first.
func (r *Ring) Entries() []string {
	var out []string
	for i := range r.lines {
		if line := r.lines[r.wrap(r.index+i)]; line != "" {
			out = append(out, line)
		}
	}
	return out
}

func (r *Ring) wrap(i int) int {
	n := len(r.lines)
	return ((i % n) + n) % n
}
