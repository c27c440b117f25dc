package animator

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ramp drives one scalar from a start value to an end value over a duration.
// Actions use it for weight fades and time-scale warps. Call update(dt) each
// mixer tick; once Done is true the value holds at the end.
type ramp struct {
	tween *gween.Tween
	value float64
	end   float64
	Done  bool
}

// newRamp creates a linear ramp. A non-positive duration completes on the
// first update.
func newRamp(from, to, duration float64) *ramp {
	r := &ramp{value: from, end: to}
	if duration > 0 {
		r.tween = gween.New(float32(from), float32(to), float32(duration), ease.Linear)
	}
	return r
}

// update advances the ramp by dt seconds and returns the current value.
func (r *ramp) update(dt float64) float64 {
	if r.Done {
		return r.value
	}
	if r.tween == nil {
		r.value = r.end
		r.Done = true
		return r.value
	}
	val, finished := r.tween.Update(float32(dt))
	r.value = float64(val)
	if finished {
		r.value = r.end
		r.Done = true
	}
	return r.value
}
