package animator

// FinishedEvent describes an action that completed a play-through.
type FinishedEvent struct {
	// Action is the action that finished. It belongs to the generation that
	// was current when the event fired.
	Action Action
	// Clip is the registry key the action was bound under, or the clip name
	// when no key maps to it.
	Clip string
}

// autoReturnOptions is the crossfade used to leave an unclamped one-shot.
var autoReturnOptions = MixOptions{Transition: DefaultTransition, Weight: DefaultWeight, Warp: false}

// OnAnimationFinished registers fn to run, in registration order, every
// time an action finishes.
func (s *Session) OnAnimationFinished(fn func(FinishedEvent)) {
	if fn == nil {
		return
	}
	s.listeners = append(s.listeners, fn)
}

// ClearAnimationFinished removes every finished listener.
func (s *Session) ClearAnimationFinished() {
	s.listeners = nil
}

// handleFinished is the mixer's finished subscriber. It latches a pending
// stop, notifies listeners, and, when the active action is a LoopOnce clip
// that does not clamp, crossfades back to the first registered action
// without warping.
func (s *Session) handleFinished(a Action) {
	if s.stopping {
		s.stopping = false
		s.stopped = true
	}

	name := s.registry.NameOf(a)
	if name == "" && a != nil && a.Clip() != nil {
		name = a.Clip().Name
	}
	s.metrics.finished(name)
	s.log.Debug().Str("clip", name).Bool("stopped", s.stopped).Msg("finished")

	ev := FinishedEvent{Action: a, Clip: name}
	listeners := append([]func(FinishedEvent){}, s.listeners...)
	for _, fn := range listeners {
		fn(ev)
	}

	if !s.cfg.AutoReturn {
		return
	}
	active := s.blend.Active()
	if active == nil || active.Loop() != LoopOnce || active.ClampWhenFinished() {
		return
	}
	first := s.registry.FirstName()
	s.blend.Mix(first, autoReturnOptions)
	s.metrics.autoReturn()
	s.log.Debug().Str("to", first).Msg("auto return")
}
