package xsb

import (
	"strings"

	"github.com/sokoban-engine/core/grid"
	"github.com/sokoban-engine/core/tiles"
	"github.com/sokoban-engine/core/vec2"
)

// reverseLegend maps a tile value back to its XSB character. Floor-on-
// floor uses a plain space; `_`/`-` are decoding aliases only and are
// never produced by the encoder.
var reverseLegend = map[tiles.Tiles]rune{
	tiles.Wall:               '#',
	tiles.Floor:              ' ',
	tiles.Goal:               '.',
	tiles.Player:             '@',
	tiles.Player | tiles.Goal: '+',
	tiles.Box:                '$',
	tiles.Box | tiles.Goal:   '*',
}

// MapToXSB renders m as trimmed XSB map text: rows/columns that are
// entirely Floor are trimmed from the edges, and the minimum common
// leading indentation is stripped. The result always ends in a trailing
// newline and contains no metadata lines.
func MapToXSB(m *grid.Map) string {
	trimmed := trimEmptyEdges(m)
	dims := trimmed.Dimensions()

	lines := make([]string, dims.Y)
	for y := 0; y < dims.Y; y++ {
		var b strings.Builder
		for x := 0; x < dims.X; x++ {
			t, _ := trimmed.Get(vec2.New(x, y))
			c, ok := reverseLegend[t]
			if !ok {
				c = '?'
			}
			b.WriteRune(c)
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}

	minPad := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		pad := len(line) - len(strings.TrimLeft(line, " "))
		if minPad == -1 || pad < minPad {
			minPad = pad
		}
	}
	if minPad < 0 {
		minPad = 0
	}

	var out strings.Builder
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			out.WriteString("\n")
			continue
		}
		trimmedLine := line
		if len(trimmedLine) >= minPad {
			trimmedLine = trimmedLine[minPad:]
		}
		out.WriteString(trimmedLine)
		out.WriteString("\n")
	}
	return out.String()
}

// trimEmptyEdges returns a copy of m with any leading/trailing rows and
// columns that contain only Floor removed. A map with no non-Floor tiles
// at all trims down to a minimal 3x3 Floor map.
func trimEmptyEdges(m *grid.Map) *grid.Map {
	dims := m.Dimensions()
	minX, maxX := dims.X, -1
	minY, maxY := dims.Y, -1

	for x := 0; x < dims.X; x++ {
		for y := 0; y < dims.Y; y++ {
			t, _ := m.Get(vec2.New(x, y))
			if t != tiles.Floor {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	if maxX < 0 || maxY < 0 {
		return grid.New(3, 3)
	}

	newW, newH := maxX-minX+1, maxY-minY+1
	out := grid.New(newW, newH)
	for x := 0; x < newW; x++ {
		for y := 0; y < newH; y++ {
			t, _ := m.Get(vec2.New(x+minX, y+minY))
			_ = out.Set(vec2.New(x, y), t)
		}
	}
	return out
}
