package animator

import "math"

// Vec3 is a 3D vector used for bone positions and keyframe values.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Lerp linearly interpolates from v toward o. t is not clamped.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		v.X + (o.X-v.X)*t,
		v.Y + (o.Y-v.Y)*t,
		v.Z + (o.Z-v.Z)*t,
	}
}

// ApproxEqual reports whether every component of v is within eps of o.
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps &&
		math.Abs(v.Y-o.Y) <= eps &&
		math.Abs(v.Z-o.Z) <= eps
}

// NodeType distinguishes scene-graph nodes.
type NodeType uint8

const (
	NodeTypeGroup NodeType = iota // transform-only node with no skeletal meaning
	NodeTypeBone                  // skeletal bone driven by clip tracks
)

// String returns a lowercase name for the node type.
func (t NodeType) String() string {
	switch t {
	case NodeTypeGroup:
		return "group"
	case NodeTypeBone:
		return "bone"
	default:
		return "unknown"
	}
}

// LoopMode selects what an action does when its time reaches the clip end.
type LoopMode uint8

const (
	LoopRepeat   LoopMode = iota // wrap back to the start (default)
	LoopOnce                     // play once, then finish
	LoopPingPong                 // reverse direction at each end
)

// String returns the manifest spelling of the loop mode.
func (m LoopMode) String() string {
	switch m {
	case LoopOnce:
		return "once"
	case LoopPingPong:
		return "pingpong"
	default:
		return "repeat"
	}
}

// ParseLoopMode converts a manifest spelling into a LoopMode. The empty
// string maps to LoopRepeat.
func ParseLoopMode(s string) (LoopMode, bool) {
	switch s {
	case "", "repeat":
		return LoopRepeat, true
	case "once":
		return LoopOnce, true
	case "pingpong":
		return LoopPingPong, true
	}
	return LoopRepeat, false
}

// Play button labels reported by Session.PlayLabel.
const (
	LabelPlay = "Play"
	LabelStop = "Stop"
)
