// Package xsb implements the XSB level text format: run-length decoding,
// the tile legend, metadata lines, and the collection-header/blank-line
// splitting rules.
package xsb

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/sokoban-engine/core/grid"
	"github.com/sokoban-engine/core/tiles"
	"github.com/sokoban-engine/core/vec2"
)

// legend maps an XSB character to the tile it represents.
var legend = map[rune]tiles.Tiles{
	'#': tiles.Wall,
	' ': tiles.Floor,
	'_': tiles.Floor,
	'-': tiles.Floor,
	'.': tiles.Goal,
	'@': tiles.Player,
	'+': tiles.Player | tiles.Goal,
	'$': tiles.Box,
	'*': tiles.Box | tiles.Goal,
}

// ParsedLevel is the in-memory result of parsing one XSB level: its map
// and its metadata key/value pairs (keys are lower-cased).
type ParsedLevel struct {
	Map      *grid.Map
	Metadata map[string]string
}

// Parse parses exactly one level out of s. It fails if s contains zero or
// more than one level.
func Parse(s string) (*ParsedLevel, error) {
	levels, err := collectLevels(s)
	if err != nil && len(levels) == 0 {
		return nil, err
	}
	if len(levels) != 1 {
		return nil, errors.Errorf("xsb: expected exactly one level, found %d", len(levels))
	}
	return levels[0], nil
}

// LoadFromStr lazily parses every level in s, in order, invoking yield
// for each result (either a parsed level or the error that made it
// unparseable). Iteration stops early if yield returns false, mirroring
// a Go 1.23+ range-over-func iterator without requiring that language
// version.
func LoadFromStr(s string, yield func(*ParsedLevel, error) bool) {
	blocks := splitBlocks(s)
	for _, block := range blocks {
		level, err := parseBlock(block)
		if !yield(level, err) {
			return
		}
	}
}

// LoadNthFromStr returns the n-th successfully parsed level (0-indexed)
// without materializing earlier ones beyond scanning past them. ok is
// false if fewer than n+1 levels parse successfully.
func LoadNthFromStr(s string, n int) (level *ParsedLevel, ok bool) {
	count := 0
	for _, block := range splitBlocks(s) {
		lvl, err := parseBlock(block)
		if err != nil {
			continue
		}
		if count == n {
			return lvl, true
		}
		count++
	}
	return nil, false
}

// ParseAll parses every level in s and returns the successfully parsed
// ones along with a combined error (via go.uber.org/multierr) describing
// every level that failed to parse. A completely empty s yields a
// zero-level result and a nil error, not an error.
func ParseAll(s string) ([]*ParsedLevel, error) {
	var out []*ParsedLevel
	var combined error
	for i, block := range splitBlocks(s) {
		lvl, err := parseBlock(block)
		if err != nil {
			combined = multierr.Append(combined, errors.Wrapf(err, "level %d", i))
			continue
		}
		out = append(out, lvl)
	}
	return out, combined
}

// collectLevels is the helper behind Parse: it materializes every
// level/error pair so Parse can check the total count.
func collectLevels(s string) ([]*ParsedLevel, error) {
	var levels []*ParsedLevel
	var firstErr error
	LoadFromStr(s, func(l *ParsedLevel, err error) bool {
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return true
		}
		levels = append(levels, l)
		return true
	})
	return levels, firstErr
}

// rawBlock is one map block plus the metadata lines that followed it,
// before tile interpretation.
type rawBlock struct {
	mapLines  []string
	metaLines []string
}

// splitBlocks scans s for consecutive (map block, trailing metadata)
// groups, splitting at the first blank line encountered after any map
// line has been consumed. Leading `;`-prefixed lines before the first
// map line are a collection header and are not part of any block.
//
// Classification is line-shape driven rather than character-set driven:
// once a line looks like metadata ("key: value", including the
// comment:/comment-end: markers), every following non-blank line in the
// block is treated as metadata too, even if it incidentally resembles a
// map row. This keeps map-line recognition permissive, so a genuinely
// unsupported tile character is caught by the legend lookup in
// parseBlock rather than silently reclassified as metadata.
func splitBlocks(s string) []rawBlock {
	lines := strings.Split(s, "\n")
	var blocks []rawBlock
	var cur rawBlock
	sawAnyLineInLevel := false
	inMetadata := false

	flush := func() {
		if sawAnyLineInLevel {
			blocks = append(blocks, cur)
		}
		cur = rawBlock{}
		sawAnyLineInLevel = false
		inMetadata = false
	}

	inHeader := true
	for _, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)

		if inHeader {
			if strings.HasPrefix(trimmed, ";") {
				continue
			}
			if trimmed == "" {
				continue
			}
			inHeader = false
		}

		if trimmed == "" {
			if sawAnyLineInLevel {
				flush()
			}
			continue
		}
		sawAnyLineInLevel = true
		if !inMetadata && looksLikeMetadata(line) {
			inMetadata = true
		}
		if inMetadata {
			cur.metaLines = append(cur.metaLines, line)
		} else {
			cur.mapLines = append(cur.mapLines, line)
		}
	}
	if sawAnyLineInLevel {
		blocks = append(blocks, cur)
	}
	return blocks
}

// looksLikeMetadata reports whether line has the "key: value" shape.
func looksLikeMetadata(line string) bool {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return false
	}
	key := strings.TrimSpace(line[:idx])
	if key == "" {
		return false
	}
	for _, c := range key {
		if !(c == '-' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}

// parseBlock turns a rawBlock into a ParsedLevel: RLE-decodes and
// interprets the map lines, then folds in metadata (including the
// multi-line comment block).
func parseBlock(b rawBlock) (*ParsedLevel, error) {
	decodedLines := make([]string, len(b.mapLines))
	width := 0
	for i, line := range b.mapLines {
		decoded, err := decodeRLE(line)
		if err != nil {
			return nil, errors.Wrap(err, "decoding map line")
		}
		decodedLines[i] = decoded
		if len(decoded) > width {
			width = len(decoded)
		}
	}
	height := len(decodedLines)
	if width == 0 || height == 0 {
		return nil, ErrEmptyMap
	}

	m := grid.New(width, height)
	playerCount := 0
	for y, line := range decodedLines {
		runes := []rune(line)
		for x := 0; x < width; x++ {
			c := ' '
			if x < len(runes) {
				c = runes[x]
			}
			t, ok := legend[c]
			if !ok {
				return nil, errors.Wrapf(ErrUnknownChar, "character %q at row %d col %d", c, y, x)
			}
			if t.Intersects(tiles.Player) {
				playerCount++
			}
			_ = m.Set(vec2.New(x, y), t)
		}
	}
	if playerCount == 0 {
		return nil, ErrNoPlayer
	}
	if playerCount > 1 {
		return nil, ErrMultiplePlayers
	}
	if !m.ValidateBoxesGoals() {
		return nil, ErrBoxGoalMismatch
	}

	metadata, err := parseMetadata(b.metaLines)
	if err != nil {
		return nil, err
	}

	return &ParsedLevel{Map: m, Metadata: metadata}, nil
}

// parseMetadata interprets "key: value" lines plus the multi-line
// comment:/comment-end: block. Keys are case-insensitive on parse and
// are stored lower-cased.
func parseMetadata(lines []string) (map[string]string, error) {
	metadata := map[string]string{}
	i := 0
	for i < len(lines) {
		line := lines[i]
		lower := strings.ToLower(strings.TrimSpace(line))
		if lower == "comment:" {
			var comment []string
			i++
			for i < len(lines) && strings.ToLower(strings.TrimSpace(lines[i])) != "comment-end:" {
				comment = append(comment, lines[i])
				i++
			}
			if i < len(lines) {
				i++ // skip comment-end:
			}
			metadata["comments"] = strings.Join(comment, "\n")
			continue
		}
		idx := strings.Index(line, ":")
		if idx > 0 {
			key := strings.ToLower(strings.TrimSpace(line[:idx]))
			value := strings.TrimSpace(line[idx+1:])
			metadata[key] = value
		}
		i++
	}
	return metadata, nil
}
