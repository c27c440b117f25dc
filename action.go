package animator

// Action is a live playback binding of one clip to one mixer. Sessions only
// talk to actions through this interface so hosts can supply their own
// primitive; ClipAction is the implementation shipped with SkeletonMixer.
type Action interface {
	// Play schedules the action on its mixer.
	Play()
	// Stop unschedules the action and resets it.
	Stop()
	// Reset rewinds the cursor, re-enables the action, clears pause and
	// cancels any fade or warp in progress.
	Reset()
	// IsRunning reports whether the action is scheduled, enabled and unpaused.
	IsRunning() bool

	Enabled() bool
	SetEnabled(enabled bool)

	// EffectiveWeight returns the weight the mixer applied on its last
	// update, or the value set by SetEffectiveWeight since then.
	EffectiveWeight() float64
	// SetEffectiveWeight sets the weight and cancels any fade in progress.
	// Values are not clamped.
	SetEffectiveWeight(weight float64)

	EffectiveTimeScale() float64
	// SetEffectiveTimeScale sets the time-scale and cancels any warp.
	SetEffectiveTimeScale(scale float64)

	// CrossFadeFrom fades from out while fading the receiver in over
	// duration seconds. With warp, both time-scales are ramped so the two
	// clips stay in phase during the blend.
	CrossFadeFrom(from Action, duration float64, warp bool)

	Clip() *Clip
	Loop() LoopMode
	ClampWhenFinished() bool
	// Time returns the cursor position in clip seconds.
	Time() float64
}

// ClipAction is the Action created by SkeletonMixer.
type ClipAction struct {
	mixer *SkeletonMixer
	clip  *Clip

	loop              LoopMode
	clampWhenFinished bool

	scheduled bool
	enabled   bool
	paused    bool

	time      float64
	loopCount int // -1 until the first tick after Reset

	weight          float64
	effectiveWeight float64
	fade            *ramp

	timeScale          float64
	effectiveTimeScale float64
	warp               *ramp
}

var _ Action = (*ClipAction)(nil)

func newClipAction(m *SkeletonMixer, clip *Clip) *ClipAction {
	return &ClipAction{
		mixer:              m,
		clip:               clip,
		loop:               clip.Loop,
		clampWhenFinished:  clip.ClampWhenFinished,
		enabled:            true,
		loopCount:          -1,
		weight:             1,
		effectiveWeight:    1,
		timeScale:          1,
		effectiveTimeScale: 1,
	}
}

// stale reports whether the owning mixer has been disposed. In debug mode a
// stale access panics instead.
func (a *ClipAction) stale(op string) bool {
	if !a.mixer.disposed {
		return false
	}
	if globalDebug {
		debugCheckStale(a, op)
	}
	return true
}

// Play schedules the action on its mixer.
func (a *ClipAction) Play() {
	if a.stale("Play") {
		return
	}
	a.mixer.activate(a)
}

// Stop unschedules the action and resets it.
func (a *ClipAction) Stop() {
	if a.stale("Stop") {
		return
	}
	a.mixer.deactivate(a)
	a.Reset()
}

// Reset rewinds the action to time zero and cancels fades and warps.
func (a *ClipAction) Reset() {
	if a.stale("Reset") {
		return
	}
	a.paused = false
	a.enabled = true
	a.time = 0
	a.loopCount = -1
	a.fade = nil
	a.warp = nil
}

// IsRunning reports whether the action is scheduled, enabled, unpaused and
// has a non-zero time-scale.
func (a *ClipAction) IsRunning() bool {
	return a.scheduled && a.enabled && !a.paused && a.timeScale != 0 && !a.mixer.disposed
}

func (a *ClipAction) Enabled() bool { return a.enabled }

func (a *ClipAction) SetEnabled(enabled bool) {
	if a.stale("SetEnabled") {
		return
	}
	a.enabled = enabled
}

func (a *ClipAction) EffectiveWeight() float64 { return a.effectiveWeight }

func (a *ClipAction) SetEffectiveWeight(weight float64) {
	if a.stale("SetEffectiveWeight") {
		return
	}
	a.weight = weight
	if a.enabled {
		a.effectiveWeight = weight
	} else {
		a.effectiveWeight = 0
	}
	a.fade = nil
}

func (a *ClipAction) EffectiveTimeScale() float64 { return a.effectiveTimeScale }

func (a *ClipAction) SetEffectiveTimeScale(scale float64) {
	if a.stale("SetEffectiveTimeScale") {
		return
	}
	a.timeScale = scale
	if a.paused {
		a.effectiveTimeScale = 0
	} else {
		a.effectiveTimeScale = scale
	}
	a.warp = nil
}

// CrossFadeFrom fades from out and the receiver in over duration seconds.
// A from action owned by another mixer, or by another Action implementation,
// is left alone; only the fade-in is scheduled.
func (a *ClipAction) CrossFadeFrom(from Action, duration float64, warp bool) {
	if a.stale("CrossFadeFrom") {
		return
	}
	out, ok := from.(*ClipAction)
	if ok && out.mixer == a.mixer {
		out.fadeOut(duration)
	} else {
		out = nil
	}
	a.fadeIn(duration)

	if warp && out != nil {
		inDur, outDur := a.clip.Duration, out.clip.Duration
		if inDur > 0 && outDur > 0 {
			out.warpTo(1, outDur/inDur, duration)
			a.warpTo(inDur/outDur, 1, duration)
		}
	}
}

func (a *ClipAction) Clip() *Clip { return a.clip }

func (a *ClipAction) Loop() LoopMode { return a.loop }

// SetLoop changes the loop mode for this action only.
func (a *ClipAction) SetLoop(mode LoopMode) { a.loop = mode }

func (a *ClipAction) ClampWhenFinished() bool { return a.clampWhenFinished }

// SetClampWhenFinished changes whether a LoopOnce action holds its last pose.
func (a *ClipAction) SetClampWhenFinished(clamp bool) { a.clampWhenFinished = clamp }

func (a *ClipAction) Time() float64 { return a.time }

// Paused reports whether the action is held (for example a clamped one-shot
// that reached its end).
func (a *ClipAction) Paused() bool { return a.paused }

// --- scheduling helpers ---

func (a *ClipAction) fadeIn(duration float64) {
	a.fade = newRamp(0, 1, duration)
}

func (a *ClipAction) fadeOut(duration float64) {
	a.fade = newRamp(1, 0, duration)
}

// warpTo ramps the effective time-scale from start to end. When the ramp
// completes, end becomes the action's time-scale.
func (a *ClipAction) warpTo(start, end, duration float64) {
	a.warp = newRamp(start, end, duration)
}

// --- per-tick evaluation (called by SkeletonMixer.Update) ---

// updateTimeScale evaluates the warp ramp and returns the effective scale.
func (a *ClipAction) updateTimeScale(dt float64) float64 {
	scale := 0.0
	if !a.paused {
		scale = a.timeScale
		if a.warp != nil {
			scale = a.warp.update(dt)
			if a.warp.Done {
				a.warp = nil
				if scale == 0 {
					a.paused = true
				} else {
					a.timeScale = scale
				}
			}
		}
	}
	a.effectiveTimeScale = scale
	return scale
}

// updateWeight evaluates the fade ramp and returns the effective weight.
func (a *ClipAction) updateWeight(dt float64) float64 {
	w := 0.0
	if a.enabled {
		w = a.weight
		if a.fade != nil {
			v := a.fade.update(dt)
			w *= v
			if a.fade.Done {
				a.fade = nil
				if v == 0 {
					a.enabled = false
				}
			}
		}
	}
	a.effectiveWeight = w
	return w
}

// updateTime advances the cursor by delta clip seconds, applying the loop
// mode. It returns the clip time to sample and whether the action finished
// on this tick.
func (a *ClipAction) updateTime(delta float64) (clipTime float64, finished bool) {
	duration := a.clip.Duration
	t := a.time + delta

	if delta == 0 {
		if a.loopCount == -1 {
			return a.time, false
		}
		return a.pingPongTime(a.time, duration), false
	}

	if a.loop == LoopOnce {
		if a.loopCount == -1 {
			a.loopCount = 0
		}
		switch {
		case t >= duration:
			t = duration
		case t < 0:
			t = 0
		default:
			a.time = t
			return t, false
		}
		if a.clampWhenFinished {
			a.paused = true
		} else {
			a.enabled = false
		}
		a.time = t
		return t, true
	}

	if a.loopCount == -1 {
		a.loopCount = 0
	}
	if duration <= 0 {
		a.time = 0
		return 0, false
	}
	for t >= duration {
		t -= duration
		a.loopCount++
	}
	for t < 0 {
		t += duration
		a.loopCount++
	}
	a.time = t
	return a.pingPongTime(t, duration), false
}

func (a *ClipAction) pingPongTime(t, duration float64) float64 {
	if a.loop == LoopPingPong && a.loopCount&1 == 1 {
		return duration - t
	}
	return t
}
