package graph

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/matzehuels/pathplay/pkg/errors"
)

func sampleDoc(t *testing.T) Document {
	t.Helper()
	g, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range []Edge{{0, 1, 1}, {1, 2, 2}, {0, 2, 4}, {2, 3, 1}} {
		if err := g.AddEdge(e.A, e.B, e.Weight); err != nil {
			t.Fatal(err)
		}
	}
	return Document{Graph: g, Source: 0}
}

func TestEncodeDecodeFormats(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatTOML, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			doc := sampleDoc(t)
			doc.Source = 2

			var buf bytes.Buffer
			if err := Encode(&buf, doc, format); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got.Source != 2 {
				t.Errorf("Source = %d, want 2", got.Source)
			}
			if diff := cmp.Diff(doc.Graph.Edges(), got.Graph.Edges()); diff != "" {
				t.Errorf("edges mismatch (-want +got):\n%s", diff)
			}
			for i, n := range got.Graph.Nodes() {
				want := doc.Graph.nodes[i].Pos
				if math.Abs(n.Pos.X-want.X) > 1e-9 || math.Abs(n.Pos.Y-want.Y) > 1e-9 {
					t.Errorf("node %s pos = %v, want %v", n.Label, n.Pos, want)
				}
			}
		})
	}
}

func TestDecodeHandWrittenTOML(t *testing.T) {
	src := `
nodes = 3
source = "b"

[[edges]]
from = "A"
to = "B"
weight = 3

[[edges]]
from = "C"
to = "b"
weight = 1
`
	doc, err := Decode(strings.NewReader(src), FormatTOML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Source != 1 {
		t.Errorf("Source = %d, want 1", doc.Source)
	}
	if w, ok := doc.Graph.Weight(1, 2); !ok || w != 1 {
		t.Errorf("Weight(B, C) = %d, %v", w, ok)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		input    string
		wantCode apperrors.Code
		wantErr  error
	}{
		{"malformed json", FormatJSON, `{"nodes": `, apperrors.ErrCodeInvalidFormat, nil},
		{"unknown format", "xml", `<graph/>`, apperrors.ErrCodeInvalidFormat, nil},
		{"too few nodes", FormatJSON, `{"nodes": 1, "edges": []}`, apperrors.ErrCodeInvalidInput, nil},
		{"unknown label", FormatJSON, `{"nodes": 2, "edges": [{"from": "A", "to": "Q", "weight": 1}]}`, apperrors.ErrCodeInvalidInput, ErrUnknownNode},
		{"duplicate", FormatYAML, "nodes: 2\nedges:\n  - {from: A, to: B, weight: 1}\n  - {from: B, to: A, weight: 2}\n", apperrors.ErrCodeInvalidEdge, ErrDuplicateEdge},
		{"bad source", FormatJSON, `{"nodes": 2, "source": "Z", "edges": []}`, apperrors.ErrCodeInvalidInput, ErrUnknownNode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			if !apperrors.Is(err, tt.wantCode) {
				t.Errorf("Decode() error = %v, want code %s", err, tt.wantCode)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"g.json", "g.toml", "g.yml"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(path, sampleDoc(t)); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
		doc, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", name, err)
		}
		if doc.Graph.EdgeCount() != 4 {
			t.Errorf("%s: EdgeCount() = %d, want 4", name, doc.Graph.EdgeCount())
		}
	}

	_, err := ReadFile(filepath.Join(dir, "missing.json"))
	if !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		t.Errorf("ReadFile(missing) error = %v, want NOT_FOUND", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile(missing) should wrap os.ErrNotExist, got %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"graph.json": FormatJSON,
		"graph.TOML": FormatTOML,
		"graph.yaml": FormatYAML,
		"graph.yml":  FormatYAML,
		"graph":      FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
