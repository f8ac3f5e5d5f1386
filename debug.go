package motion

import (
	"fmt"
	"time"
)

// debugStats holds per-frame timing and node counts.
// Only populated when the Orchestrator is in debug mode.
type debugStats struct {
	frame       uint64
	tickTime    time.Duration
	subscribers int
	nodes       int
	running     int
	settled     int
}

// debugLog reports frame stats at debug level.
func (o *Orchestrator) debugLog(stats debugStats) {
	if !o.debug {
		return
	}
	Logger().Debug("motion frame",
		"frame", stats.frame,
		"tick", stats.tickTime,
		"subscribers", stats.subscribers,
		"nodes", stats.nodes,
		"running", stats.running,
		"settled", stats.settled,
	)
}

// globalDebug mirrors the most recently set Orchestrator debug flag so that
// element tree operations (which lack an Orchestrator pointer) can check it
// cheaply.
var globalDebug bool

// debugCheckDisposed panics with a descriptive message when a disposed
// element is used in a tree operation. Only called in debug mode.
func debugCheckDisposed(e *Element, op string) {
	if e.disposed {
		panic(fmt.Sprintf("motion debug: %s on disposed element %q (ID %d)", op, e.Name, e.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(e *Element) {
	depth := 0
	for p := e; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("element tree too deep", "depth", depth, "limit", debugMaxTreeDepth, "element", e.Name)
	}
}

// debugCheckChildCount warns if an element has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(e *Element) {
	if len(e.children) > debugMaxChildCount {
		Logger().Warn("element has too many children", "element", e.Name, "children", len(e.children), "limit", debugMaxChildCount)
	}
}
