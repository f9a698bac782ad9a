package playback

import (
	apperrors "github.com/matzehuels/pathplay/pkg/errors"
	"github.com/matzehuels/pathplay/pkg/observability"
	"github.com/matzehuels/pathplay/pkg/pathfind"
)

// NoSource is the Frame.Source of a controller that holds no trace.
const NoSource = -1

// Frame is a render snapshot of the controller.
type Frame struct {
	State State `json:"state"`
	Step  int   `json:"step"`
	Total int   `json:"total"`

	// Visited holds the first min(Step, Total) entries of the visit order.
	Visited []int `json:"visited"`

	// Distances is the snapshot at index min(Step, SnapshotCount-1). It is
	// nil when the controller holds no trace.
	Distances pathfind.DistanceTable `json:"distances"`

	// ShowDistances is set once the first node has been revealed. Renderers
	// hide distance badges otherwise.
	ShowDistances bool `json:"show_distances"`

	// Paths is only filled in the Completed state.
	Paths map[int][]int `json:"paths,omitempty"`

	Source  int    `json:"source"`
	TraceID string `json:"trace_id,omitempty"`
}

// IsVisited reports whether id is among the revealed nodes.
func (f Frame) IsVisited(id int) bool {
	for _, v := range f.Visited {
		if v == id {
			return true
		}
	}
	return false
}

// OnPath reports whether the edge a-b lies on any path in f.Paths.
func (f Frame) OnPath(a, b int) bool {
	for _, p := range f.Paths {
		for i := 1; i < len(p); i++ {
			if (p[i-1] == a && p[i] == b) || (p[i-1] == b && p[i] == a) {
				return true
			}
		}
	}
	return false
}

// Controller steps through a trace. It is not safe for concurrent use; see
// [Player] for the locked, timer-driven wrapper.
//
// The zero value is an Idle controller with no trace.
type Controller struct {
	state     State
	step      int
	trace     *pathfind.Trace
	edgeCount int
}

// NewController returns an Idle controller.
func NewController() *Controller { return &Controller{} }

// State returns the current phase.
func (c *Controller) State() State { return c.state }

// Step returns the current step counter.
func (c *Controller) Step() int { return c.step }

// Trace returns the adopted trace, or nil.
func (c *Controller) Trace() *pathfind.Trace { return c.trace }

// Start adopts tr and begins a run at step 0.
//
// It returns a PRECONDITION_FAILED error, leaving the controller unchanged,
// if tr is nil, if the graph has no edges, or if a run is already in
// progress.
func (c *Controller) Start(tr *pathfind.Trace, edgeCount int) error {
	if tr == nil {
		return apperrors.New(apperrors.ErrCodePreconditionFailed, "no trace to play")
	}
	if edgeCount <= 0 {
		return apperrors.New(apperrors.ErrCodePreconditionFailed, "graph has no edges")
	}
	if c.state == Running {
		return apperrors.New(apperrors.ErrCodePreconditionFailed, "playback already running")
	}
	c.trace = tr
	c.edgeCount = edgeCount
	c.step = 0
	c.transition(Running)
	return nil
}

// Replay starts the kept trace again. It fails like [Controller.Start] when
// no trace is kept.
func (c *Controller) Replay() error {
	return c.Start(c.trace, c.edgeCount)
}

// Tick advances a running playback by one step and reports whether another
// tick should be scheduled. Ticks outside Running do nothing, so a late
// wake-up can never move a reset controller.
func (c *Controller) Tick() bool {
	if c.state != Running {
		return false
	}
	total := c.trace.Len()
	if c.step <= total {
		c.step++
		observability.Playback().OnTick(c.step, total)
	}
	if c.step > total {
		c.transition(Completed)
		return false
	}
	return true
}

// Reset returns to Idle at step 0 and discards the trace.
func (c *Controller) Reset() {
	c.trace = nil
	c.edgeCount = 0
	c.step = 0
	c.transition(Idle)
}

// Restart returns to Idle at step 0 but keeps the trace for [Controller.Replay].
func (c *Controller) Restart() {
	c.step = 0
	c.transition(Idle)
}

// Frame returns the render snapshot for the current step.
func (c *Controller) Frame() Frame {
	f := Frame{
		State:   c.state,
		Step:    c.step,
		Source:  NoSource,
		Visited: []int{},
	}
	if c.trace == nil {
		return f
	}

	f.Total = c.trace.Len()
	f.Source = c.trace.Source()
	f.TraceID = c.trace.ID().String()
	f.Visited = c.trace.Visited(c.step)
	f.Distances = c.trace.DistanceAt(c.step)
	f.ShowDistances = c.state != Idle && c.step > 0
	if c.state == Completed {
		f.Paths = c.trace.Paths()
	}
	return f
}

func (c *Controller) transition(to State) {
	from := c.state
	c.state = to
	if from != to {
		observability.Playback().OnStateChange(from.String(), to.String(), c.step)
	}
}

// FrameAt returns the frame a fresh playback of tr shows after step ticks.
// A negative step plays to completion. Errors are those of
// [Controller.Start].
func FrameAt(tr *pathfind.Trace, edgeCount, step int) (Frame, error) {
	c := NewController()
	if err := c.Start(tr, edgeCount); err != nil {
		return Frame{}, err
	}
	for i := 0; step < 0 || i < step; i++ {
		if !c.Tick() {
			break
		}
	}
	return c.Frame(), nil
}
