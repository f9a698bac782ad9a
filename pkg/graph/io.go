package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperrors "github.com/matzehuels/pathplay/pkg/errors"
)

// Supported graph file formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Document is a graph together with the source node picked in the editor.
// It is what graph files store.
type Document struct {
	Graph  *Graph
	Source int
}

// file is the on-disk shape. Nodes are referenced by label so files stay
// readable and hand-editable:
//
//	nodes = 4
//	source = "A"
//
//	[[edges]]
//	from = "A"
//	to = "B"
//	weight = 1
type file struct {
	Nodes     int        `json:"nodes" toml:"nodes" yaml:"nodes"`
	Source    string     `json:"source,omitempty" toml:"source,omitempty" yaml:"source,omitempty"`
	Edges     []fileEdge `json:"edges" toml:"edges" yaml:"edges"`
	Positions []Point    `json:"positions,omitempty" toml:"positions,omitempty" yaml:"positions,omitempty"`
}

type fileEdge struct {
	From   string `json:"from" toml:"from" yaml:"from"`
	To     string `json:"to" toml:"to" yaml:"to"`
	Weight int    `json:"weight" toml:"weight" yaml:"weight"`
}

// FormatFromPath infers the file format from a path's extension.
// Unknown extensions fall back to JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ValidateFormat returns an INVALID_FORMAT error for unsupported formats.
func ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatTOML, FormatYAML:
		return nil
	}
	return apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported graph format %q (want json, toml or yaml)", format)
}

// Encode writes doc to w in the given format.
func Encode(w io.Writer, doc Document, format string) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}
	out := toFile(doc)

	var err error
	switch format {
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(out)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(out); err == nil {
			err = enc.Close()
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(out)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode %s", format)
	}
	return nil
}

// Decode reads a graph document in the given format from r and validates it.
// Decoding failures carry INVALID_FORMAT; structural problems carry the
// codes returned by [Graph.AddEdge] and [Graph.Validate].
func Decode(r io.Reader, format string) (*Document, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	var in file
	var err error
	switch format {
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&in)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&in)
	default:
		err = json.NewDecoder(r).Decode(&in)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode %s", format)
	}
	return fromFile(in)
}

// ReadFile decodes the graph document at path, inferring the format from the
// extension.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// WriteFile encodes doc to path, inferring the format from the extension.
func WriteFile(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Encode(f, doc, FormatFromPath(path))
}

func toFile(doc Document) file {
	g := doc.Graph
	out := file{
		Nodes:     g.NodeCount(),
		Source:    g.LabelOf(doc.Source),
		Edges:     make([]fileEdge, 0, g.EdgeCount()),
		Positions: make([]Point, 0, g.NodeCount()),
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, fileEdge{From: g.LabelOf(e.A), To: g.LabelOf(e.B), Weight: e.Weight})
	}
	for _, n := range g.Nodes() {
		out.Positions = append(out.Positions, n.Pos)
	}
	return out
}

func fromFile(in file) (*Document, error) {
	g, err := New(in.Nodes)
	if err != nil {
		return nil, err
	}
	if len(in.Positions) > 0 {
		g.SetPositions(in.Positions)
	}

	node := func(label string) (int, error) {
		id, ok := LabelIndex(strings.ToUpper(strings.TrimSpace(label)))
		if !ok || !g.HasNode(id) {
			return 0, apperrors.Wrap(apperrors.ErrCodeInvalidInput, ErrUnknownNode, "node %q", label)
		}
		return id, nil
	}

	for _, e := range in.Edges {
		a, err := node(e.From)
		if err != nil {
			return nil, err
		}
		b, err := node(e.To)
		if err != nil {
			return nil, err
		}
		if err := g.AddEdge(a, b, e.Weight); err != nil {
			return nil, err
		}
	}

	doc := &Document{Graph: g}
	if in.Source != "" {
		if doc.Source, err = node(in.Source); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
