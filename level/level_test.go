package level

import (
	"testing"

	"github.com/sokoban-engine/core/direction"
)

func TestFromStrMinimalSolvable(t *testing.T) {
	lvl, err := FromStr("#####\n#@$.#\n#####")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lvl.IsSolved() {
		t.Fatal("freshly parsed level should not already be solved")
	}
}

func TestFromStrRejectsMultipleLevels(t *testing.T) {
	text := "#####\n#@$.#\n#####\n\n#####\n#@$.#\n#####"
	if _, err := FromStr(text); err == nil {
		t.Fatal("expected an error for a blob with more than one level")
	}
}

func TestDoActionsSolvesMinimalLevel(t *testing.T) {
	lvl, err := FromStr("#####\n#@$.#\n#####")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := lvl.DoActions([]direction.Direction{direction.Right}); err != nil {
		t.Fatalf("unexpected error pushing the box: %v", err)
	}
	if !lvl.IsSolved() {
		t.Fatal("expected the level to be solved after the push")
	}
	history := lvl.History()
	if len(history) != 1 || history[0].Kind != Push || history[0].Direction != direction.Right {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestDoActionsRejectsIllegalPush(t *testing.T) {
	lvl, err := FromStr("####\n#@$#\n#.##\n####")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := lvl.DoActions([]direction.Direction{direction.Right}); err == nil {
		t.Fatal("expected pushing a box into a wall to fail")
	}
	if lvl.IsSolved() {
		t.Fatal("a failed action must not mutate the level toward solved")
	}
}

func TestDoActionsMoveWithoutBox(t *testing.T) {
	lvl, err := FromStr("#####\n#@ *#\n#####")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := lvl.DoActions([]direction.Direction{direction.Right}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	player, ok := lvl.Map().PlayerPosition()
	if !ok {
		t.Fatal("expected a player position")
	}
	if player.X != 2 || player.Y != 1 {
		t.Fatalf("player at %v, want (2,1)", player)
	}
}

func TestUndoReversesPush(t *testing.T) {
	lvl, err := FromStr("#####\n#@$.#\n#####")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := lvl.DoActions([]direction.Direction{direction.Right}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := lvl.Undo(); err != nil {
		t.Fatalf("unexpected error undoing: %v", err)
	}
	if lvl.IsSolved() {
		t.Fatal("expected undo to un-solve the level")
	}
	if len(lvl.History()) != 0 {
		t.Fatalf("expected empty history after undo, got %v", lvl.History())
	}
}

func TestUndoWithoutHistoryFails(t *testing.T) {
	lvl, err := FromStr("#####\n#@$.#\n#####")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := lvl.Undo(); err == nil {
		t.Fatal("expected Undo to fail with no recorded actions")
	}
}

func TestResetRestoresOriginalAndClearsHistory(t *testing.T) {
	lvl, err := FromStr("#####\n#@$.#\n#####")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := lvl.DoActions([]direction.Direction{direction.Right}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lvl.Reset()
	if lvl.IsSolved() {
		t.Fatal("expected Reset to restore the unsolved state")
	}
	if len(lvl.History()) != 0 {
		t.Fatalf("expected empty history after Reset, got %v", lvl.History())
	}
}

func TestMetadataPreserved(t *testing.T) {
	lvl, err := FromStr("#####\n#@$.#\n#####\ntitle: demo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := lvl.Metadata()["title"]; got != "demo" {
		t.Fatalf("metadata[title] = %q, want %q", got, "demo")
	}
}
