package animator

import "fmt"

// globalDebug enables structural checks that are too costly or too strict for
// release builds: disposed-node panics, tree depth warnings, and stale action
// panics.
var globalDebug bool

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access and use of actions from a disposed mixer panic, and deep trees are
// reported through the package logger.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug mode is enabled.
func DebugMode() bool {
	return globalDebug
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("animator debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 64

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		l := Logger()
		l.Warn().
			Int("depth", depth).
			Int("threshold", debugMaxTreeDepth).
			Str("node", n.Name).
			Msg("tree depth exceeds threshold")
	}
}

// debugCheckStale panics when an action handed out by a disposed mixer is
// used. Outside debug mode the call is silently ignored by the caller.
func debugCheckStale(a *ClipAction, op string) {
	clip := "<nil>"
	if a.clip != nil {
		clip = a.clip.Name
	}
	panic(fmt.Sprintf("animator debug: %s on stale action for clip %q (mixer generation %d disposed)",
		op, clip, a.mixer.generation))
}
