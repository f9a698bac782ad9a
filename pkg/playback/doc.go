// Package playback replays a [pathfind.Trace] one visited node at a time.
//
// # Overview
//
// A [Controller] is the pure state machine behind the player:
//
//	Idle ──Start──▶ Running ──Tick (step > len)──▶ Completed
//	  ▲                │                               │
//	  └──Reset/Restart─┴────────────Reset/Restart──────┘
//
// The step counter runs from 0 to len(VisitOrder)+1. While Running, each
// [Controller.Tick] reveals one more visited node; the tick that moves the
// step past the end of the visit order completes the run. [Controller.Frame]
// turns the current position into everything a renderer needs.
//
// A [Player] drives a Controller in real time. It owns a [Scheduler] with at
// most one pending wake-up, so starting, restarting or resetting a run
// always cancels the tick that was queued for the previous one.
//
//	p := playback.NewPlayer(playback.Options{
//	    Interval: playback.DefaultInterval,
//	    OnFrame:  func(f playback.Frame) { draw(f) },
//	})
//	defer p.Close()
//	if err := p.Play(trace, g.EdgeCount()); err != nil {
//	    return err
//	}
//
// # Speed
//
// The interval between ticks lies in [100ms, 2000ms]. The speed slider of
// the terminal player maps onto it with [SpeedToInterval], where a higher
// speed means a shorter interval.
package playback
