package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathplay/pkg/editor"
	apperrors "github.com/matzehuels/pathplay/pkg/errors"
	"github.com/matzehuels/pathplay/pkg/graph"
	"github.com/matzehuels/pathplay/pkg/pathfind"
	"github.com/matzehuels/pathplay/pkg/playback"
	"github.com/matzehuels/pathplay/pkg/render"
)

// playCommand creates the play command, the interactive terminal player.
func (c *CLI) playCommand() *cobra.Command {
	var (
		source   string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "play [graph-file]",
		Short: "Animate shortest paths in the terminal",
		Long: `Animate shortest paths in the terminal.

The player reveals one node per tick and updates distances as they are
relaxed. The graph can be edited between runs: pick a source, draw edges,
or generate a random graph. With a graph file, w saves the edited graph
back to it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			if !cmd.Flags().Changed("interval") {
				interval = c.Config.Interval()
			}
			return c.runPlay(cmd.Context(), path, source, interval)
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "source node label (overrides the file)")
	cmd.Flags().DurationVarP(&interval, "interval", "i", playback.DefaultInterval, "time between steps (100ms-2s)")

	return cmd
}

func (c *CLI) runPlay(ctx context.Context, path, source string, interval time.Duration) error {
	if err := apperrors.ValidateInterval(interval); err != nil {
		return err
	}
	doc, err := c.loadDocument(path, source)
	if err != nil {
		return err
	}

	m := newPlayModel(doc, path, interval, c.Config.RandomOptions())
	final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(playModel); ok && fm.saved {
		loggerFromContext(ctx).Info("saved graph", "path", path)
	}
	return nil
}

// tickMsg advances the playback. run identifies the playback that
// scheduled it; ticks from an abandoned run are dropped.
type tickMsg struct{ run uint64 }

// playModel is the bubbletea model of the terminal player.
type playModel struct {
	session  *editor.Session
	ctrl     *playback.Controller
	interval time.Duration
	random   graph.RandomOptions
	path     string

	run    uint64
	cursor int
	msg    string
	err    error
	saved  bool
}

func newPlayModel(doc *graph.Document, path string, interval time.Duration, random graph.RandomOptions) playModel {
	return playModel{
		session:  editor.FromDocument(doc),
		ctrl:     playback.NewController(),
		interval: interval,
		random:   random,
		path:     path,
		cursor:   doc.Source,
	}
}

func (m playModel) Init() tea.Cmd { return nil }

func (m playModel) tick() tea.Cmd {
	run := m.run
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{run: run} })
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.run != m.run {
			return m, nil
		}
		if m.ctrl.Tick() {
			return m, m.tick()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m playModel) handleKey(key string) (tea.Model, tea.Cmd) {
	m.msg, m.err = "", nil
	n := m.session.Graph().NodeCount()

	switch key {
	case "q", "ctrl+c":
		m.run++
		return m, tea.Quit

	// Playback.
	case " ":
		return m.start()
	case "p":
		if m.ctrl.State() == playback.Running {
			return m, nil
		}
		if m.err = m.ctrl.Replay(); m.err != nil {
			return m, nil
		}
		m.run++
		return m, m.tick()
	case "r":
		m.run++
		m.ctrl.Restart()
	case "x":
		m.run++
		m.ctrl.Reset()
	case "+", "=":
		m.interval = playback.Faster(m.interval)
	case "-", "_":
		m.interval = playback.Slower(m.interval)

	// Node cursor.
	case "left", "h":
		m.cursor = (m.cursor + n - 1) % n
	case "right", "l":
		m.cursor = (m.cursor + 1) % n
	case "enter", "s":
		before := m.session.Source()
		m.err = m.edit(func(s *editor.Session) error {
			if key == "s" {
				return s.SetSource(m.cursor)
			}
			return s.Select(m.cursor)
		})
		if m.err == nil && m.session.Source() != before {
			m.ctrl.Reset()
		}

	// Editing.
	case "e":
		m.session.ToggleEdgeMode()
	case "esc":
		m.session.Cancel()
	case "up", "k":
		m.session.AdjustWeight(1)
	case "down", "j":
		m.session.AdjustWeight(-1)
	case "c":
		var e graph.Edge
		m.err = m.edit(func(s *editor.Session) (err error) { e, err = s.Confirm(); return err })
		if m.err == nil {
			m.ctrl.Reset()
			g := m.session.Graph()
			m.msg = fmt.Sprintf("Added edge %s-%s (%d)", g.LabelOf(e.A), g.LabelOf(e.B), e.Weight)
		}
	case "g":
		m.err = m.edit(func(s *editor.Session) error { return s.Randomize(m.random) })
		if m.err == nil {
			m.ctrl.Reset()
		}
	case "d":
		m.err = m.edit(func(s *editor.Session) error { return s.ClearEdges() })
		if m.err == nil {
			m.ctrl.Reset()
		}
	case "[", "]":
		size := n - 1
		if key == "]" {
			size = n + 1
		}
		m.err = m.edit(func(s *editor.Session) error { return s.Resize(size) })
		if m.err == nil {
			m.ctrl.Reset()
			m.cursor = 0
		}
	case "w":
		if m.path == "" {
			m.err = apperrors.New(apperrors.ErrCodePreconditionFailed, "no graph file to save to")
			return m, nil
		}
		if m.err = graph.WriteFile(m.path, m.session.Document()); m.err == nil {
			m.saved = true
			m.msg = "Saved " + m.path
		}
	}
	return m, nil
}

// edit runs fn with the session locked while a playback is running.
func (m playModel) edit(fn func(*editor.Session) error) error {
	m.session.SetLocked(m.ctrl.State() == playback.Running)
	return fn(m.session)
}

// start computes a fresh trace and plays it, abandoning a running playback.
func (m playModel) start() (tea.Model, tea.Cmd) {
	g := m.session.Graph().Clone()
	tr, err := pathfind.Compute(g, m.session.Source())
	if err != nil {
		m.err = err
		return m, nil
	}
	if m.ctrl.State() == playback.Running {
		m.ctrl.Restart()
	}
	if m.err = m.ctrl.Start(tr, g.EdgeCount()); m.err != nil {
		return m, nil
	}
	m.run++
	return m, m.tick()
}

func (m playModel) View() string {
	var b strings.Builder
	g := m.session.Graph()
	frame := m.ctrl.Frame()

	b.WriteString(StyleTitle.Render(appName))
	b.WriteString("  ")
	b.WriteString(StyleValue.Render(render.StatusLine(frame)))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("speed %d · %s", playback.IntervalToSpeed(m.interval), m.interval)))
	b.WriteString("\n\n")

	b.WriteString(m.nodeTable(g, frame))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("edges: "))
	b.WriteString(edgeList(g))
	b.WriteString("\n")

	if line := m.editorLine(g); line != "" {
		b.WriteString(StyleWarning.Render(line))
		b.WriteString("\n")
	}
	if results := render.Results(g, frame); len(results) > 0 {
		b.WriteString("\n")
		b.WriteString(resultsTable(results))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + apperrors.UserMessage(m.err) + "\n")
	case m.msg != "":
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + m.msg + "\n")
	}
	b.WriteString(StyleDim.Render("space start · p replay · r restart · x reset · +/- speed · ←/→ node · ⏎ select · s source"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("e edge mode · ↑/↓ weight · c confirm · esc cancel · g random · d clear · [/] nodes · w save · q quit"))
	return b.String()
}

func (m playModel) nodeTable(g *graph.Graph, f playback.Frame) string {
	source := m.session.Source()
	rows := make([][]string, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		cursor := "  "
		if n.ID == m.cursor {
			cursor = "▸ "
		}
		dist := ""
		if f.ShowDistances && n.ID < len(f.Distances) {
			dist = distanceText(f.Distances[n.ID])
		}
		state := ""
		switch {
		case n.ID == source:
			state = "source"
		case f.IsVisited(n.ID):
			state = "visited"
		}
		rows = append(rows, []string{cursor, n.Label, dist, state})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Distance", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col != 1 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			switch rows[row][3] {
			case "source":
				return styleSourceNode
			case "visited":
				return styleVisitedNode
			}
			return stylePlainNode
		}).
		Render()
}

func (m playModel) editorLine(g *graph.Graph) string {
	from, to, _ := m.session.Pending()
	switch m.session.Mode() {
	case editor.PickingSource:
		return "Edge mode: select the first node"
	case editor.PickingTarget:
		return fmt.Sprintf("Edge from %s: select the second node", g.LabelOf(from))
	case editor.ConfirmingWeight:
		return fmt.Sprintf("Edge %s-%s weight %d: c to add", g.LabelOf(from), g.LabelOf(to), m.session.Weight())
	}
	return ""
}
