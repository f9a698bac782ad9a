package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/pathplay/pkg/editor"
	apperrors "github.com/matzehuels/pathplay/pkg/errors"
	"github.com/matzehuels/pathplay/pkg/graph"
	"github.com/matzehuels/pathplay/pkg/pipeline"
	"github.com/matzehuels/pathplay/pkg/playback"
)

// DefaultTTL is how long an unused workspace lives.
const DefaultTTL = 30 * time.Minute

// Workspace is one browser tab's graph editor and player.
type Workspace struct {
	ID        string
	CreatedAt time.Time

	mu     sync.Mutex
	editor *editor.Session
	player *playback.Player
}

func newWorkspace(g *graph.Graph, player *playback.Player, now time.Time) *Workspace {
	return &Workspace{
		ID:        uuid.NewString(),
		CreatedAt: now,
		editor:    editor.NewSession(g),
		player:    player,
	}
}

// Edit applies fn to the editor. Edits are rejected while a playback is
// running. When resets is set and fn succeeds, the player drops its trace
// since it no longer matches the graph.
func (w *Workspace) Edit(fn func(*editor.Session) error, resets bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.editor.SetLocked(w.player.Frame().State == playback.Running)
	if err := fn(w.editor); err != nil {
		return err
	}
	if resets {
		w.player.Reset()
	}
	return nil
}

// Select clicks node id. The trace is dropped only if the click moved the
// source.
func (w *Workspace) Select(id int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.editor.SetLocked(w.player.Frame().State == playback.Running)
	before := w.editor.Source()
	if err := w.editor.Select(id); err != nil {
		return err
	}
	if w.editor.Source() != before {
		w.player.Reset()
	}
	return nil
}

// Replace swaps in a loaded graph document.
func (w *Workspace) Replace(doc *graph.Document) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.player.Frame().State == playback.Running {
		return apperrors.New(apperrors.ErrCodePreconditionFailed, "cannot replace the graph while playback is running")
	}
	w.editor = editor.FromDocument(doc)
	w.player.Reset()
	return nil
}

// Start computes a trace for the current graph and plays it, superseding a
// running playback.
func (w *Workspace) Start(ctx context.Context, runner *pipeline.Runner) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc := w.snapshotLocked()
	tr, err := runner.Compute(ctx, doc)
	if err != nil {
		return err
	}
	return w.player.Play(tr, doc.Graph.EdgeCount())
}

// Player returns the workspace player.
func (w *Workspace) Player() *playback.Player { return w.player }

// Snapshot returns a copy of the document being edited.
func (w *Workspace) Snapshot() graph.Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Workspace) snapshotLocked() graph.Document {
	doc := w.editor.Document()
	doc.Graph = doc.Graph.Clone()
	return doc
}

// View returns the JSON view of the workspace.
func (w *Workspace) View() (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return newView(w)
}

func (w *Workspace) close() { w.player.Close() }

type entry struct {
	ws        *Workspace
	expiresAt time.Time
}

// Store keeps workspaces in memory with a sliding expiry. It is safe for
// concurrent use.
type Store struct {
	mu    sync.Mutex
	items map[string]*entry
	ttl   time.Duration
	now   func() time.Time
}

// NewStore returns an empty store. A zero ttl means DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{items: make(map[string]*entry), ttl: ttl, now: time.Now}
}

// Add stores ws.
func (s *Store) Add(ws *Workspace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[ws.ID] = &entry{ws: ws, expiresAt: s.now().Add(s.ttl)}
}

// Get returns the workspace with id and extends its lifetime. Missing and
// expired workspaces are NOT_FOUND.
func (s *Store) Get(id string) (*Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[id]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "workspace %s not found", id)
	}
	now := s.now()
	if now.After(e.expiresAt) {
		delete(s.items, id)
		e.ws.close()
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "workspace %s expired", id)
	}
	e.expiresAt = now.Add(s.ttl)
	return e.ws, nil
}

// Delete removes and closes a workspace.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[id]
	if !ok {
		return apperrors.New(apperrors.ErrCodeNotFound, "workspace %s not found", id)
	}
	delete(s.items, id)
	e.ws.close()
	return nil
}

// Cleanup removes expired workspaces and returns how many were removed.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for id, e := range s.items {
		if now.After(e.expiresAt) {
			delete(s.items, id)
			e.ws.close()
			n++
		}
	}
	return n
}

// Len returns the number of stored workspaces.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Close closes every workspace.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.items {
		e.ws.close()
		delete(s.items, id)
	}
}
