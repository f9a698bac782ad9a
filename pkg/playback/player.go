package playback

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/pathplay/pkg/errors"
	"github.com/matzehuels/pathplay/pkg/pathfind"
)

// Options configures a [Player].
type Options struct {
	// Interval between ticks. Zero means DefaultInterval; other values are
	// clamped to [MinInterval, MaxInterval].
	Interval time.Duration

	// Clock schedules ticks. Nil means the real clock.
	Clock Clock

	// Logger receives debug output. Nil means log.Default().
	Logger *log.Logger

	// OnFrame is called after every transition with the new frame. It runs
	// with the player locked and must not call back into the Player.
	OnFrame func(Frame)
}

// Player drives a [Controller] in real time.
//
// Timer callbacks arrive on runtime goroutines, so all methods lock the
// player. There is still one logical flow: at most one tick is pending and
// a tick queued for an earlier run is discarded.
type Player struct {
	mu       sync.Mutex
	ctrl     *Controller
	sched    *Scheduler
	interval time.Duration
	run      uint64
	closed   bool
	onFrame  func(Frame)
	logger   *log.Logger
}

// NewPlayer returns an Idle player.
func NewPlayer(opts Options) *Player {
	interval := opts.Interval
	if interval == 0 {
		interval = DefaultInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		ctrl:     NewController(),
		sched:    NewScheduler(opts.Clock),
		interval: ClampInterval(interval),
		onFrame:  opts.OnFrame,
		logger:   logger,
	}
}

// Play starts animating tr. A run already in progress is abandoned first
// and its pending tick cancelled. Errors are those of [Controller.Start].
func (p *Player) Play(tr *pathfind.Trace, edgeCount int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.checkOpen(); err != nil {
		return err
	}
	if tr == nil || edgeCount <= 0 {
		// Let the controller produce the error without touching the current run.
		return p.ctrl.Start(tr, edgeCount)
	}
	p.cancelLocked()
	if p.ctrl.State() == Running {
		p.ctrl.Restart()
	}
	if err := p.ctrl.Start(tr, edgeCount); err != nil {
		return err
	}
	p.logger.Debug("playback started", "trace", tr.ID(), "steps", tr.Len(), "interval", p.interval)
	p.afterStartLocked()
	return nil
}

// Replay starts the kept trace again from step 0.
func (p *Player) Replay() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.checkOpen(); err != nil {
		return err
	}
	if p.ctrl.State() == Running {
		return apperrors.New(apperrors.ErrCodePreconditionFailed, "playback already running")
	}
	if err := p.ctrl.Replay(); err != nil {
		return err
	}
	p.cancelLocked()
	p.afterStartLocked()
	return nil
}

// Reset stops playback and discards the trace.
func (p *Player) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cancelLocked()
	p.ctrl.Reset()
	p.logger.Debug("playback reset")
	p.emitLocked()
}

// Restart stops playback and rewinds to step 0, keeping the trace.
func (p *Player) Restart() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cancelLocked()
	p.ctrl.Restart()
	p.logger.Debug("playback restarted")
	p.emitLocked()
}

// SetInterval changes the tick interval. It takes effect from the next
// scheduled tick. Values outside [MinInterval, MaxInterval] are rejected
// with INVALID_INPUT.
func (p *Player) SetInterval(d time.Duration) error {
	if err := apperrors.ValidateInterval(d); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.interval = d
	return nil
}

// Interval returns the current tick interval.
func (p *Player) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// Frame returns the current render snapshot.
func (p *Player) Frame() Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl.Frame()
}

// Trace returns the trace being played or kept, or nil.
func (p *Player) Trace() *pathfind.Trace {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl.Trace()
}

// Close cancels any pending tick. Further calls to Play and Replay fail.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelLocked()
	p.closed = true
	return nil
}

func (p *Player) checkOpen() error {
	if p.closed {
		return apperrors.New(apperrors.ErrCodePreconditionFailed, "player closed")
	}
	return nil
}

// cancelLocked drops the pending tick and invalidates any callback already
// in flight.
func (p *Player) cancelLocked() {
	p.run++
	p.sched.Stop()
}

func (p *Player) afterStartLocked() {
	p.emitLocked()
	p.scheduleLocked()
}

func (p *Player) scheduleLocked() {
	run := p.run
	p.sched.Schedule(p.interval, func() { p.tick(run) })
}

func (p *Player) tick(run uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if run != p.run || p.closed {
		return
	}
	more := p.ctrl.Tick()
	p.emitLocked()
	if more {
		p.scheduleLocked()
		return
	}
	if p.ctrl.State() == Completed {
		p.logger.Debug("playback completed", "steps", p.ctrl.Step())
	}
}

func (p *Player) emitLocked() {
	if p.onFrame != nil {
		p.onFrame(p.ctrl.Frame())
	}
}
