package animator

// Mixer advances and blends the actions bound to one skeleton. Sessions own
// exactly one mixer at a time and replace it whenever the clip set changes.
type Mixer interface {
	// ClipAction returns the action bound to clip, creating it on first use.
	ClipAction(clip *Clip) Action
	// NewAction always binds a fresh action to clip, even when clip already
	// has one. Two registry keys sharing a clip get independent actions.
	NewAction(clip *Clip) Action
	// ExistingAction returns the action bound to clip, or nil.
	ExistingAction(clip *Clip) Action
	// StopAllActions stops and resets every scheduled action.
	StopAllActions()
	// Update advances scheduled actions by dt seconds and writes the blended
	// pose to the skeleton.
	Update(dt float64)
	// SetFinishedHandler installs fn as the single finished-event
	// subscriber, replacing any previous one. A nil fn unsubscribes.
	SetFinishedHandler(fn func(Action))
	// Dispose invalidates the mixer and every action it handed out.
	Dispose()
	// Generation identifies this mixer instance; every mixer gets a new one.
	Generation() uint64
}

// MixerFactory builds a mixer for a skeleton root.
type MixerFactory func(root *Node) Mixer

var mixerGeneration uint64

// SkeletonMixer is the Mixer shipped with the package. It blends clip tracks
// into bone positions using weighted averaging, falling back to each bone's
// bind position when the summed weight is below 1.
type SkeletonMixer struct {
	root       *Node
	generation uint64
	disposed   bool

	actions   []*ClipAction
	byClip    map[*Clip]*ClipAction
	scheduled []*ClipAction

	bones map[string]*Node
	bind  map[*Node]Vec3
	accum map[*Node]*accumulator

	time     float64
	finished func(Action)
	pending  []*ClipAction
}

type accumulator struct {
	value  Vec3
	weight float64
}

var _ Mixer = (*SkeletonMixer)(nil)

// NewSkeletonMixer creates a mixer for the skeleton rooted at root and
// captures every bone's current position as its bind pose.
func NewSkeletonMixer(root *Node) *SkeletonMixer {
	mixerGeneration++
	m := &SkeletonMixer{
		root:       root,
		generation: mixerGeneration,
		byClip:     make(map[*Clip]*ClipAction),
		bones:      make(map[string]*Node),
		bind:       make(map[*Node]Vec3),
		accum:      make(map[*Node]*accumulator),
	}
	Walk(root, func(n *Node) {
		if !n.IsBone() {
			return
		}
		if _, dup := m.bones[n.Name]; !dup {
			m.bones[n.Name] = n
		}
		m.bind[n] = n.Position
	})
	return m
}

// NewSkeletonMixerFactory adapts NewSkeletonMixer to MixerFactory.
func NewSkeletonMixerFactory() MixerFactory {
	return func(root *Node) Mixer { return NewSkeletonMixer(root) }
}

// Root returns the skeleton root the mixer animates.
func (m *SkeletonMixer) Root() *Node { return m.root }

// Generation returns the mixer's instance number.
func (m *SkeletonMixer) Generation() uint64 { return m.generation }

// Time returns the total scaled time the mixer has advanced.
func (m *SkeletonMixer) Time() float64 { return m.time }

// ClipAction returns the action bound to clip, creating it if needed.
// Returns nil for a nil clip or a disposed mixer.
func (m *SkeletonMixer) ClipAction(clip *Clip) Action {
	if clip == nil || m.disposed {
		return nil
	}
	if a, ok := m.byClip[clip]; ok {
		return a
	}
	a := newClipAction(m, clip)
	m.byClip[clip] = a
	m.actions = append(m.actions, a)
	return a
}

// NewAction creates a fresh action for clip. The first action created for a
// clip stays the one ClipAction and ExistingAction return.
func (m *SkeletonMixer) NewAction(clip *Clip) Action {
	if clip == nil || m.disposed {
		return nil
	}
	a := newClipAction(m, clip)
	if _, ok := m.byClip[clip]; !ok {
		m.byClip[clip] = a
	}
	m.actions = append(m.actions, a)
	return a
}

// ExistingAction returns the action bound to clip, or nil.
func (m *SkeletonMixer) ExistingAction(clip *Clip) Action {
	if a, ok := m.byClip[clip]; ok {
		return a
	}
	return nil
}

// Actions returns every action created by this mixer in creation order.
// The returned slice MUST NOT be mutated.
func (m *SkeletonMixer) Actions() []*ClipAction {
	return m.actions
}

// StopAllActions stops and resets every scheduled action.
func (m *SkeletonMixer) StopAllActions() {
	if m.disposed {
		return
	}
	for _, a := range m.scheduled {
		a.scheduled = false
		a.Reset()
	}
	m.scheduled = m.scheduled[:0]
}

// SetFinishedHandler installs the single finished-event subscriber.
func (m *SkeletonMixer) SetFinishedHandler(fn func(Action)) {
	m.finished = fn
}

// Dispose invalidates the mixer and puts every bone back at its bind
// position. Every action it created becomes stale: mutating calls are
// ignored (or panic in debug mode).
func (m *SkeletonMixer) Dispose() {
	if m.disposed {
		return
	}
	for bone, pos := range m.bind {
		bone.Position = pos
	}
	m.disposed = true
	m.scheduled = nil
	m.finished = nil
	m.pending = nil
}

// IsDisposed reports whether Dispose has been called.
func (m *SkeletonMixer) IsDisposed() bool { return m.disposed }

func (m *SkeletonMixer) activate(a *ClipAction) {
	if a.scheduled {
		return
	}
	a.scheduled = true
	m.scheduled = append(m.scheduled, a)
}

func (m *SkeletonMixer) deactivate(a *ClipAction) {
	if !a.scheduled {
		return
	}
	a.scheduled = false
	for i, s := range m.scheduled {
		if s == a {
			m.scheduled = append(m.scheduled[:i], m.scheduled[i+1:]...)
			return
		}
	}
}

// Update advances every scheduled action by dt seconds, blends their tracks
// into the skeleton, then delivers finished events in scheduling order.
// Handlers run after the pose is written, so a crossfade they start takes
// effect on the next update.
func (m *SkeletonMixer) Update(dt float64) {
	if m.disposed {
		return
	}
	m.time += dt

	for n := range m.accum {
		delete(m.accum, n)
	}

	for _, a := range m.scheduled {
		if !a.enabled {
			m.accumulate(a, a.time, a.updateWeight(dt))
			continue
		}
		delta := dt * a.updateTimeScale(dt)
		clipTime, done := a.updateTime(delta)
		w := a.updateWeight(dt)
		if done {
			m.pending = append(m.pending, a)
		}
		m.accumulate(a, clipTime, w)
	}

	m.apply()

	if len(m.pending) == 0 {
		return
	}
	pending := m.pending
	m.pending = nil
	for _, a := range pending {
		if m.finished != nil && !m.disposed {
			m.finished(a)
		}
	}
}

// accumulate folds one action's sample into the per-bone running average.
// Bones touched by a scheduled action are always registered, enabled or
// not, so a zero weight still restores the bind pose.
func (m *SkeletonMixer) accumulate(a *ClipAction, clipTime, weight float64) {
	for i := range a.clip.Tracks {
		tr := &a.clip.Tracks[i]
		bone, ok := m.bones[tr.Bone]
		if !ok {
			continue
		}
		acc, ok := m.accum[bone]
		if !ok {
			acc = &accumulator{}
			m.accum[bone] = acc
		}
		if weight <= 0 {
			continue
		}
		v := tr.Sample(clipTime)
		if acc.weight == 0 {
			acc.value = v
			acc.weight = weight
			continue
		}
		acc.weight += weight
		acc.value = acc.value.Lerp(v, weight/acc.weight)
	}
}

func (m *SkeletonMixer) apply() {
	for bone, acc := range m.accum {
		bind := m.bind[bone]
		if acc.weight < 1 {
			bone.Position = bind.Lerp(acc.value, acc.weight)
			continue
		}
		bone.Position = acc.value
	}
}
