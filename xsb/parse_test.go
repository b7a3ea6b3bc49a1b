package xsb

import (
	"strings"
	"testing"

	"github.com/sokoban-engine/core/tiles"
	"github.com/sokoban-engine/core/vec2"
)

func TestDecodeRLESimple(t *testing.T) {
	got, err := decodeRLE("3(ab)2c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "ababab" + "cc"; got != want {
		t.Fatalf("decodeRLE = %q, want %q", got, want)
	}
}

func TestDecodeRLENested(t *testing.T) {
	got, err := decodeRLE("2(3#)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "###" + "###"; got != want {
		t.Fatalf("decodeRLE = %q, want %q", got, want)
	}
}

func TestDecodeRLEZeroCountFails(t *testing.T) {
	if _, err := decodeRLE("0#"); err == nil {
		t.Fatal("expected an error for a zero count")
	}
}

func TestDecodeRLEUnmatchedParenFails(t *testing.T) {
	if _, err := decodeRLE("2(##"); err == nil {
		t.Fatal("expected an error for an unmatched paren")
	}
}

func TestParseMinimalSolvable(t *testing.T) {
	lvl, err := Parse("#####\n#@$.#\n#####")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dims := lvl.Map.Dimensions()
	if dims != vec2.New(5, 3) {
		t.Fatalf("dimensions = %v, want (5,3)", dims)
	}
	player, ok := lvl.Map.PlayerPosition()
	if !ok || player != vec2.New(1, 1) {
		t.Fatalf("player = %v, %v; want (1,1), true", player, ok)
	}
	boxes := lvl.Map.BoxPositions()
	if len(boxes) != 1 || boxes[0] != vec2.New(2, 1) {
		t.Fatalf("boxes = %v", boxes)
	}
}

func TestParseRejectsNoPlayer(t *testing.T) {
	if _, err := Parse("#####\n#  .#\n#####"); err == nil {
		t.Fatal("expected an error for a map with no player")
	}
}

func TestParseRejectsMultiplePlayers(t *testing.T) {
	if _, err := Parse("#####\n#@@.#\n#####"); err == nil {
		t.Fatal("expected an error for a map with two players")
	}
}

func TestParseRejectsBoxGoalMismatch(t *testing.T) {
	if _, err := Parse("#####\n#@$ #\n#####"); err == nil {
		t.Fatal("expected an error for mismatched boxes/goals")
	}
}

func TestParseRejectsUnknownChar(t *testing.T) {
	if _, err := Parse("#####\n#@x.#\n#####"); err == nil {
		t.Fatal("expected an error for an unknown character")
	}
}

func TestParseRejectsMultipleLevels(t *testing.T) {
	text := "#####\n#@$.#\n#####\n\n#####\n#@$.#\n#####"
	if _, err := Parse(text); err == nil {
		t.Fatal("expected Parse to reject a blob with more than one level")
	}
}

func TestParsePadsShortRows(t *testing.T) {
	lvl, err := Parse("#####\n#@$.#\n#\n#####")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := lvl.Map.Get(vec2.New(3, 2))
	if !ok || v != tiles.Floor {
		t.Fatalf("expected padded cell to be Floor, got %v, %v", v, ok)
	}
}

func TestMetadataLowercasedAndComments(t *testing.T) {
	text := strings.Join([]string{
		"#####",
		"#@$.#",
		"#####",
		"Title: My Level",
		"comment:",
		"line one",
		"line two",
		"comment-end:",
	}, "\n")
	lvl, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := lvl.Metadata["title"]; got != "My Level" {
		t.Fatalf("metadata[title] = %q, want %q", got, "My Level")
	}
	if got := lvl.Metadata["comments"]; got != "line one\nline two" {
		t.Fatalf("metadata[comments] = %q", got)
	}
}

func TestLoadFromStrMultipleLevels(t *testing.T) {
	text := "#####\n#@$.#\n#####\ntitle: one\n\n#####\n#@$.#\n#####\ntitle: two"
	var titles []string
	LoadFromStr(text, func(l *ParsedLevel, err error) bool {
		if err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}
		titles = append(titles, l.Metadata["title"])
		return true
	})
	if len(titles) != 2 || titles[0] != "one" || titles[1] != "two" {
		t.Fatalf("titles = %v", titles)
	}
}

func TestLoadNthFromStr(t *testing.T) {
	text := "#####\n#@$.#\n#####\ntitle: one\n\n#####\n#@$.#\n#####\ntitle: two"
	lvl, ok := LoadNthFromStr(text, 1)
	if !ok || lvl.Metadata["title"] != "two" {
		t.Fatalf("LoadNthFromStr(1) = %v, %v", lvl, ok)
	}
	if _, ok := LoadNthFromStr(text, 5); ok {
		t.Fatal("expected LoadNthFromStr to report ok=false past the end")
	}
}

func TestParseAllEmptyBlobIsNotAnError(t *testing.T) {
	levels, err := ParseAll("")
	if err != nil {
		t.Fatalf("unexpected error on empty input: %v", err)
	}
	if len(levels) != 0 {
		t.Fatalf("expected zero levels, got %d", len(levels))
	}
}

func TestParseAllCombinesErrors(t *testing.T) {
	text := "#####\n#@$.#\n#####\n\n#####\n#  .#\n#####"
	levels, err := ParseAll(text)
	if len(levels) != 1 {
		t.Fatalf("expected one successfully parsed level, got %d", len(levels))
	}
	if err == nil {
		t.Fatal("expected a combined error describing the failed level")
	}
}

func TestHeaderLinesNotPartOfAnyBlock(t *testing.T) {
	text := "; collection header\n; more header\n\n#####\n#@$.#\n#####"
	blocks := splitBlocks(text)
	if len(blocks) != 1 {
		t.Fatalf("expected one block, got %d", len(blocks))
	}
}
