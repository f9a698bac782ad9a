package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/pathplay/pkg/editor"
	apperrors "github.com/matzehuels/pathplay/pkg/errors"
	"github.com/matzehuels/pathplay/pkg/graph"
	"github.com/matzehuels/pathplay/pkg/playback"
	"github.com/matzehuels/pathplay/pkg/render"
)

type workspaceHandler func(w http.ResponseWriter, r *http.Request, ws *Workspace)

func (s *Server) withWorkspace(h workspaceHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := s.store.Get(chi.URLParam(r, "id"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		h(w, r, ws)
	}
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, ws *Workspace, status int) {
	v, err := ws.View()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, status, v)
}

// decodeOptionalJSON is decodeJSON that accepts an empty body.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := decodeJSON(w, r, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

type randomRequest struct {
	Density   float64 `json:"density"`
	MaxWeight int     `json:"max_weight"`
	Seed      uint64  `json:"seed"`
}

func (s *Server) randomOptions(req randomRequest) graph.RandomOptions {
	opts := s.random
	if req.Density != 0 {
		opts.Density = req.Density
	}
	if req.MaxWeight != 0 {
		opts.MaxWeight = req.MaxWeight
	}
	if req.Seed != 0 {
		opts.Seed = req.Seed
	}
	return opts
}

type createRequest struct {
	Nodes  int  `json:"nodes"`
	Random bool `json:"random"`
	randomRequest
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	n := req.Nodes
	if n == 0 {
		n = s.nodes
	}

	var g *graph.Graph
	var err error
	if req.Random {
		g, err = graph.Random(n, s.randomOptions(req.randomRequest))
	} else {
		g, err = graph.New(n)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	player := playback.NewPlayer(playback.Options{
		Interval: s.interval,
		Clock:    s.clock,
		Logger:   s.logger,
	})
	ws := newWorkspace(g, player, s.now())
	s.store.Add(ws)
	s.logger.Info("workspace created", "id", ws.ID, "nodes", n, "edges", g.EdgeCount())
	s.respond(w, r, ws, http.StatusCreated)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	s.respond(w, r, ws, http.StatusOK)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

var graphContentTypes = map[string]string{
	graph.FormatJSON: "application/json",
	graph.FormatTOML: "application/toml",
	graph.FormatYAML: "application/yaml",
}

// graphFormat picks the graph file format from the query or the
// Content-Type header. JSON is the default.
func graphFormat(r *http.Request) string {
	if f := r.URL.Query().Get("format"); f != "" {
		return strings.ToLower(f)
	}
	ct := r.Header.Get("Content-Type")
	for format, t := range graphContentTypes {
		if strings.HasPrefix(ct, t) {
			return format
		}
	}
	return graph.FormatJSON
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	format := graphFormat(r)
	var buf bytes.Buffer
	if err := graph.Encode(&buf, ws.Snapshot(), format); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", graphContentTypes[format])
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handlePutGraph(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	doc, err := graph.Decode(http.MaxBytesReader(w, r.Body, maxBody), graphFormat(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := ws.Replace(doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, ws, http.StatusOK)
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	tr := ws.Player().Trace()
	if tr == nil {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeNotFound, "no trace computed"))
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	writeJSON(w, http.StatusOK, ws.Player().Frame())
}

func (s *Server) handleFrameImage(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	format := chi.URLParam(r, "format")
	if err := render.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc := ws.Snapshot()
	frame := ws.Player().Frame()

	data, hit, err := s.runner.RenderFrame(r.Context(), doc, frame, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", render.ContentType(format))
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	_, _ = w.Write(data)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	if err := ws.Start(r.Context(), s.runner); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, ws, http.StatusOK)
}

func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	if err := ws.Player().Replay(); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, ws, http.StatusOK)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	ws.Player().Restart()
	s.respond(w, r, ws, http.StatusOK)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	ws.Player().Reset()
	s.respond(w, r, ws, http.StatusOK)
}

type intervalRequest struct {
	IntervalMS *int `json:"interval_ms"`
	Speed      *int `json:"speed"`
}

func (s *Server) handleInterval(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	var req intervalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var d time.Duration
	switch {
	case req.IntervalMS != nil:
		d = time.Duration(*req.IntervalMS) * time.Millisecond
	case req.Speed != nil:
		d = playback.SpeedToInterval(*req.Speed)
	default:
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "interval_ms or speed is required"))
		return
	}
	if err := ws.Player().SetInterval(d); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, ws, http.StatusOK)
}

type editorRequest struct {
	Node   *int `json:"node"`
	Weight int  `json:"weight"`
	Delta  int  `json:"delta"`
	Nodes  int  `json:"nodes"`
	randomRequest
}

func (req editorRequest) node() (int, error) {
	if req.Node == nil {
		return 0, apperrors.New(apperrors.ErrCodeInvalidInput, "node is required")
	}
	return *req.Node, nil
}

func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	var req editorRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var err error
	switch op := chi.URLParam(r, "op"); op {
	case "toggle":
		err = ws.Edit(func(e *editor.Session) error { e.ToggleEdgeMode(); return nil }, false)
	case "cancel":
		err = ws.Edit(func(e *editor.Session) error { e.Cancel(); return nil }, false)
	case "select":
		var id int
		if id, err = req.node(); err == nil {
			err = ws.Select(id)
		}
	case "source":
		var id int
		if id, err = req.node(); err == nil {
			err = ws.Edit(func(e *editor.Session) error { return e.SetSource(id) }, true)
		}
	case "weight":
		err = ws.Edit(func(e *editor.Session) error {
			if req.Delta != 0 {
				e.AdjustWeight(req.Delta)
				return nil
			}
			return e.SetWeight(req.Weight)
		}, false)
	case "confirm":
		err = ws.Edit(func(e *editor.Session) error { _, err := e.Confirm(); return err }, true)
	case "resize":
		err = ws.Edit(func(e *editor.Session) error { return e.Resize(req.Nodes) }, true)
	case "clear":
		err = ws.Edit(func(e *editor.Session) error { return e.ClearEdges() }, true)
	case "random":
		opts := s.randomOptions(req.randomRequest)
		err = ws.Edit(func(e *editor.Session) error { return e.Randomize(opts) }, true)
	default:
		err = apperrors.New(apperrors.ErrCodeNotFound, "unknown editor operation %q", op)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, ws, http.StatusOK)
}
