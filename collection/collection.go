// Package collection groups an ordered sequence of levels together with
// the free-form header text (collection-name comment lines) that
// preceded them in the source file.
package collection

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/sokoban-engine/core/level"
	"github.com/sokoban-engine/core/xsb"
)

// ErrIndexOutOfBounds is returned by index-taking mutators when the
// index does not address an existing level.
var ErrIndexOutOfBounds = errors.New("collection: index out of bounds")

// Collection is an ordered list of levels plus the header text (if any)
// that preceded them in the source.
type Collection struct {
	header string
	levels []*level.Level
}

// New returns an empty collection with the given header text.
func New(header string) *Collection {
	return &Collection{header: header}
}

// Header returns the collection's header text.
func (c *Collection) Header() string { return c.header }

// Levels returns the collection's levels in order. The returned slice is
// owned by Collection; callers must not mutate it.
func (c *Collection) Levels() []*level.Level { return c.levels }

// Len returns the number of levels in the collection.
func (c *Collection) Len() int { return len(c.levels) }

// IsEmpty reports whether the collection has no levels.
func (c *Collection) IsEmpty() bool { return len(c.levels) == 0 }

// Level returns the level at index, or nil and false if index is out of
// bounds.
func (c *Collection) Level(index int) (*level.Level, bool) {
	if index < 0 || index >= len(c.levels) {
		return nil, false
	}
	return c.levels[index], true
}

// AddLevel appends lvl to the end of the collection.
func (c *Collection) AddLevel(lvl *level.Level) {
	c.levels = append(c.levels, lvl)
}

// InsertLevel inserts lvl at index, shifting later levels up by one. It
// fails with ErrIndexOutOfBounds if index is not in [0, Len()].
func (c *Collection) InsertLevel(index int, lvl *level.Level) error {
	if index < 0 || index > len(c.levels) {
		return errors.Wrapf(ErrIndexOutOfBounds, "insert at %d, len %d", index, len(c.levels))
	}
	c.levels = append(c.levels, nil)
	copy(c.levels[index+1:], c.levels[index:])
	c.levels[index] = lvl
	return nil
}

// RemoveLevel removes and returns the level at index.
func (c *Collection) RemoveLevel(index int) (*level.Level, error) {
	if index < 0 || index >= len(c.levels) {
		return nil, errors.Wrapf(ErrIndexOutOfBounds, "remove at %d, len %d", index, len(c.levels))
	}
	lvl := c.levels[index]
	c.levels = append(c.levels[:index], c.levels[index+1:]...)
	return lvl, nil
}

// ReplaceLevel replaces the level at index with lvl, returning the
// previous occupant.
func (c *Collection) ReplaceLevel(index int, lvl *level.Level) (*level.Level, error) {
	if index < 0 || index >= len(c.levels) {
		return nil, errors.Wrapf(ErrIndexOutOfBounds, "replace at %d, len %d", index, len(c.levels))
	}
	old := c.levels[index]
	c.levels[index] = lvl
	return old, nil
}

// SwapLevels exchanges the levels at indices a and b.
func (c *Collection) SwapLevels(a, b int) error {
	if a < 0 || a >= len(c.levels) || b < 0 || b >= len(c.levels) {
		return errors.Wrapf(ErrIndexOutOfBounds, "swap %d, %d, len %d", a, b, len(c.levels))
	}
	c.levels[a], c.levels[b] = c.levels[b], c.levels[a]
	return nil
}

// FromXSB parses an XSB blob into a Collection: every line of leading
// `;`-prefixed text becomes the header, and every level that parses
// successfully is appended in order. Levels that fail to parse are
// skipped, and their errors are combined (via go.uber.org/multierr) into
// the returned error rather than aborting the whole collection.
func FromXSB(s string) (*Collection, error) {
	var header strings.Builder
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, ";") {
			header.WriteString(line)
			header.WriteString("\n")
			continue
		}
		if strings.TrimSpace(line) != "" {
			break
		}
	}

	c := New(header.String())
	var combined error
	parsed, err := xsb.ParseAll(s)
	if err != nil {
		combined = multierr.Append(combined, err)
	}
	for _, p := range parsed {
		c.AddLevel(level.FromParsed(p.Map, p.Metadata))
	}
	return c, combined
}

// ToXSB serializes the collection back to XSB text: the header, then
// each level's trimmed map followed by its metadata in sorted key order,
// separated by blank lines.
func (c *Collection) ToXSB() string {
	var out strings.Builder
	if c.header != "" {
		out.WriteString(c.header)
	}
	for i, lvl := range c.levels {
		if i > 0 || c.header != "" {
			out.WriteString("\n")
		}
		out.WriteString(xsb.MapToXSB(lvl.Map()))

		keys := make([]string, 0, len(lvl.Metadata()))
		for k := range lvl.Metadata() {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := lvl.Metadata()[k]
			if k == "comments" && strings.Contains(v, "\n") {
				out.WriteString("comment:\n")
				for _, line := range strings.Split(v, "\n") {
					out.WriteString(line)
					out.WriteString("\n")
				}
				out.WriteString("comment-end:\n")
				continue
			}
			out.WriteString(k)
			out.WriteString(": ")
			out.WriteString(v)
			out.WriteString("\n")
		}
	}
	return out.String()
}

// String implements fmt.Stringer by rendering the collection as XSB.
func (c *Collection) String() string { return c.ToXSB() }
