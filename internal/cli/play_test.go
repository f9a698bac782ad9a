package cli

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/pathplay/pkg/editor"
	apperrors "github.com/matzehuels/pathplay/pkg/errors"
	"github.com/matzehuels/pathplay/pkg/graph"
	"github.com/matzehuels/pathplay/pkg/playback"
)

func testDoc(t *testing.T) *graph.Document {
	t.Helper()
	g, err := graph.New(4)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range []graph.Edge{
		{A: 0, B: 1, Weight: 1},
		{A: 1, B: 2, Weight: 2},
		{A: 0, B: 2, Weight: 4},
		{A: 2, B: 3, Weight: 1},
	} {
		if err := g.AddEdge(e.A, e.B, e.Weight); err != nil {
			t.Fatal(err)
		}
	}
	return &graph.Document{Graph: g, Source: 0}
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m playModel, keys ...string) (playModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(playModel)
	}
	return m, cmd
}

func tick(m playModel, run uint64) (playModel, tea.Cmd) {
	next, cmd := m.Update(tickMsg{run: run})
	return next.(playModel), cmd
}

func newTestModel(t *testing.T) playModel {
	t.Helper()
	return newPlayModel(testDoc(t), "", time.Second, graph.RandomOptions{Seed: 1})
}

func TestPlayRunsToCompletion(t *testing.T) {
	m, cmd := press(t, newTestModel(t), " ")
	if cmd == nil {
		t.Fatal("start should schedule a tick")
	}
	if got := m.ctrl.State(); got != playback.Running {
		t.Fatalf("state = %v, want running", got)
	}

	total := m.ctrl.Trace().Len()
	ticks := 0
	for cmd != nil {
		m, cmd = tick(m, m.run)
		ticks++
		if ticks > total+1 {
			t.Fatal("playback did not complete")
		}
	}
	if ticks != total+1 {
		t.Errorf("ticks = %d, want %d", ticks, total+1)
	}
	if got := m.ctrl.State(); got != playback.Completed {
		t.Errorf("state = %v, want completed", got)
	}
	if !strings.Contains(m.View(), "A → B → C → D") {
		t.Errorf("view lacks the path to D:\n%s", m.View())
	}
}

func TestPlayDropsStaleTicks(t *testing.T) {
	m, _ := press(t, newTestModel(t), " ")
	stale := m.run
	m, _ = press(t, m, "r")

	m, cmd := tick(m, stale)
	if cmd != nil {
		t.Error("stale tick scheduled another")
	}
	if m.ctrl.Step() != 0 {
		t.Errorf("step = %d, want 0", m.ctrl.Step())
	}

	// The kept trace can be replayed.
	m, cmd = press(t, m, "p")
	if cmd == nil || m.ctrl.State() != playback.Running {
		t.Fatalf("replay did not start, state = %v", m.ctrl.State())
	}
}

func TestPlayWithoutEdges(t *testing.T) {
	m, _ := press(t, newTestModel(t), "d", " ")
	if !apperrors.Is(m.err, apperrors.ErrCodePreconditionFailed) {
		t.Errorf("err = %v, want PRECONDITION_FAILED", m.err)
	}
	if m.ctrl.State() != playback.Idle {
		t.Errorf("state = %v, want idle", m.ctrl.State())
	}
}

func TestPlayEditorAddsEdge(t *testing.T) {
	m, _ := press(t, newTestModel(t), "e", "enter", "right", "right", "right", "enter")
	if got := m.session.Mode(); got != editor.ConfirmingWeight {
		t.Fatalf("mode = %v, want confirming-weight", got)
	}
	m, _ = press(t, m, "up", "up", "c")
	if m.err != nil {
		t.Fatalf("confirm: %v", m.err)
	}
	if w, ok := m.session.Graph().Weight(0, 3); !ok || w != 3 {
		t.Errorf("weight(A, D) = %d, %v; want 3, true", w, ok)
	}
	if got := m.session.Mode(); got != editor.PickingSource {
		t.Errorf("mode = %v, want picking-source", got)
	}

	m, _ = press(t, m, "esc")
	if got := m.session.Mode(); got != editor.Idle {
		t.Errorf("mode after esc = %v, want idle", got)
	}
}

func TestPlaySelectSource(t *testing.T) {
	m, _ := press(t, newTestModel(t), "left", "enter")
	if got := m.session.Source(); got != 3 {
		t.Errorf("source = %d, want 3", got)
	}
}

func TestPlaySourceKeyInEdgeMode(t *testing.T) {
	m, _ := press(t, newTestModel(t), "e", "right", "right", "s")
	if got := m.session.Source(); got != 2 {
		t.Errorf("source = %d, want 2", got)
	}
	if got := m.session.Mode(); got != editor.PickingSource {
		t.Errorf("mode = %v, want picking-source", got)
	}
}

func TestPlayLocksEditsWhileRunning(t *testing.T) {
	m, _ := press(t, newTestModel(t), " ", "d")
	if !apperrors.Is(m.err, apperrors.ErrCodePreconditionFailed) {
		t.Errorf("err = %v, want PRECONDITION_FAILED", m.err)
	}
	if got := m.session.Graph().EdgeCount(); got != 4 {
		t.Errorf("edges = %d, want 4", got)
	}

	m, _ = press(t, m, "right", "enter")
	if got := m.session.Source(); got != 0 {
		t.Errorf("source changed while running: %d", got)
	}
}

func TestPlayGraphChangeResets(t *testing.T) {
	m, _ := press(t, newTestModel(t), " ", "r", "]")
	if m.err != nil {
		t.Fatal(m.err)
	}
	if got := m.session.Graph().NodeCount(); got != 5 {
		t.Errorf("nodes = %d, want 5", got)
	}
	if m.ctrl.Trace() != nil {
		t.Error("trace kept after resize")
	}
}

func TestPlaySpeed(t *testing.T) {
	m, _ := press(t, newTestModel(t), "+")
	if m.interval != 900*time.Millisecond {
		t.Errorf("interval = %v, want 900ms", m.interval)
	}
	m, _ = press(t, m, "-", "-")
	if m.interval != 1100*time.Millisecond {
		t.Errorf("interval = %v, want 1.1s", m.interval)
	}
}

func TestPlaySave(t *testing.T) {
	m, _ := press(t, newTestModel(t), "w")
	if !apperrors.Is(m.err, apperrors.ErrCodePreconditionFailed) {
		t.Errorf("err = %v, want PRECONDITION_FAILED", m.err)
	}

	path := filepath.Join(t.TempDir(), "g.toml")
	m.path = path
	m, _ = press(t, m, "w")
	if m.err != nil {
		t.Fatal(m.err)
	}
	doc, err := graph.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Graph.EdgeCount() != 4 {
		t.Errorf("saved edges = %d, want 4", doc.Graph.EdgeCount())
	}
}

func TestPlayQuit(t *testing.T) {
	_, cmd := press(t, newTestModel(t), "q")
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
