package server

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/matzehuels/pathplay/pkg/graph"
	"github.com/matzehuels/pathplay/pkg/playback"
	"github.com/matzehuels/pathplay/pkg/render"
)

// View is the JSON shape of a workspace.
type View struct {
	ID         string          `json:"id"`
	Graph      json.RawMessage `json:"graph"`
	Editor     EditorView      `json:"editor"`
	Frame      playback.Frame  `json:"frame"`
	Status     string          `json:"status"`
	Results    []render.Result `json:"results,omitempty"`
	IntervalMS int64           `json:"interval_ms"`
	Speed      int             `json:"speed"`
}

// EditorView describes the edge-creation state.
type EditorView struct {
	Mode   string `json:"mode"`
	Locked bool   `json:"locked"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Weight int    `json:"weight"`
}

func newView(w *Workspace) (View, error) {
	doc := w.editor.Document()
	var buf bytes.Buffer
	if err := graph.Encode(&buf, doc, graph.FormatJSON); err != nil {
		return View{}, err
	}

	frame := w.player.Frame()
	interval := w.player.Interval()
	v := View{
		ID:    w.ID,
		Graph: json.RawMessage(bytes.TrimSpace(buf.Bytes())),
		Editor: EditorView{
			Mode:   w.editor.Mode().String(),
			Locked: frame.State == playback.Running,
			Weight: w.editor.Weight(),
		},
		Frame:      frame,
		Status:     render.StatusLine(frame),
		Results:    render.Results(doc.Graph, frame),
		IntervalMS: int64(interval / time.Millisecond),
		Speed:      playback.IntervalToSpeed(interval),
	}
	if from, to, ok := w.editor.Pending(); ok {
		v.Editor.From = doc.Graph.LabelOf(from)
		if to >= 0 {
			v.Editor.To = doc.Graph.LabelOf(to)
		}
	}
	return v, nil
}
