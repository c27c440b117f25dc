package animator

import "github.com/rs/zerolog"

// Session plays the clips of one skeleton. It owns the mixer, the action
// registry and the blend controller, tracks which clip is selected for
// manual preview, and runs the stop/resume lifecycle:
//
//	active -> stopping -> stopped -> (Resume) -> active
//
// A Stop request only latches into stopped when the next finished event
// arrives; it never interrupts a clip mid-play.
//
// Sessions are single-threaded: call every method from the frame loop.
type Session struct {
	owner    *Node
	clips    ClipSource
	frames   FrameSource
	newMixer MixerFactory

	mixer     Mixer
	registry  *ActionRegistry
	blend     *BlendController
	listening bool

	selected int

	stopped   bool
	stopping  bool
	playLabel string
	preview   Subscription

	listeners []func(FinishedEvent)

	cfg     Config
	metrics *Metrics
	log     zerolog.Logger
	userLog *zerolog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithConfig applies cfg. Its Debug and LogLevel fields take effect
// package-wide.
func WithConfig(cfg Config) SessionOption {
	return func(s *Session) { s.cfg = cfg }
}

// WithMetrics reports session activity to m.
func WithMetrics(m *Metrics) SessionOption {
	return func(s *Session) { s.metrics = m }
}

// WithFrameSource sets the tick provider used by the editor preview and
// consulted for the running state. The default is a fresh Ticker.
func WithFrameSource(fs FrameSource) SessionOption {
	return func(s *Session) { s.frames = fs }
}

// WithMixerFactory replaces the SkeletonMixer with a host mixer.
func WithMixerFactory(f MixerFactory) SessionOption {
	return func(s *Session) { s.newMixer = f }
}

// WithLogger sets the session's logger. It wins over the package logger
// configured from Config.LogLevel.
func WithLogger(l zerolog.Logger) SessionOption {
	return func(s *Session) { s.userLog = &l }
}

// NewSession creates a session animating the skeleton under owner with the
// clips in clips. No mixer is built until one is needed.
func NewSession(owner *Node, clips ClipSource, opts ...SessionOption) *Session {
	s := &Session{
		owner:     owner,
		clips:     clips,
		registry:  NewActionRegistry(),
		playLabel: LabelPlay,
		cfg:       DefaultConfig(),
		log:       withComponent("session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.frames == nil {
		s.frames = NewTicker()
	}
	if s.newMixer == nil {
		s.newMixer = NewSkeletonMixerFactory()
	}
	if s.cfg.LogLevel != "" {
		Configure(LogConfig{Level: s.cfg.LogLevel})
		s.log = withComponent("session")
	}
	if s.cfg.Debug {
		SetDebugMode(true)
	}
	s.blend = NewBlendController(s.registry)
	s.blend.metrics = s.metrics
	if s.userLog != nil {
		s.log = *s.userLog
		s.blend.log = s.log.With().Str("sub", "blend").Logger()
	}
	return s
}

// Owner returns the node whose subtree the session animates.
func (s *Session) Owner() *Node { return s.owner }

// Frames returns the session's frame source.
func (s *Session) Frames() FrameSource { return s.frames }

// Registry returns the action registry. Handles fetched from it are only
// valid until the next rebuild.
func (s *Session) Registry() *ActionRegistry { return s.registry }

// Generation returns the registry generation; it changes on every rebuild.
func (s *Session) Generation() uint64 { return s.registry.Generation() }

// Mixer returns the current mixer, building it (and the registry) on first
// use.
func (s *Session) Mixer() Mixer {
	if s.mixer == nil {
		s.rebuild()
	}
	return s.mixer
}

// --- change detection ---

// Changed reports whether the clip set no longer matches the registry.
func (s *Session) Changed() bool {
	return HasChanged(s.registry.Names(), s.clips, s.registry)
}

// Refresh rebuilds the mixer and registry if the clip set changed. It
// reports whether a rebuild happened.
func (s *Session) Refresh() bool {
	if !s.Changed() {
		return false
	}
	s.rebuild()
	return true
}

// rebuild disposes the current mixer and binds a fresh one. Every action
// handle from the previous generation is invalid afterwards.
func (s *Session) rebuild() {
	if s.mixer != nil {
		s.mixer.SetFinishedHandler(nil)
		s.mixer.Dispose()
	}
	s.mixer = s.newMixer(s.owner)
	s.registry.Rebuild(s.clips, s.mixer)
	s.blend.prime(s.mixer)
	if s.listening {
		s.mixer.SetFinishedHandler(s.handleFinished)
	}
	s.metrics.rebuild()
	s.log.Debug().
		Uint64("generation", s.registry.Generation()).
		Strs("clips", s.registry.Names()).
		Msg("rebuilt actions")
}

// --- selection ---

// Options returns the clip names available for selection, in order. Once
// a mixer exists this may rebuild it to pick up clip set edits.
func (s *Session) Options() []string {
	if s.mixer == nil {
		return s.clips.Names()
	}
	s.Refresh()
	return s.registry.Names()
}

// Selected returns the selection index.
func (s *Session) Selected() int { return s.selected }

// SetSelection selects the clip at index i. Side effects: the active
// action is rewound, the mixer is rebuilt if the clip set changed, and if
// editor preview is playing the new selection starts playing.
func (s *Session) SetSelection(i int) {
	s.selected = i
	if a := s.blend.Active(); a != nil {
		a.Reset()
	}
	s.Refresh()
	if s.playLabel == LabelStop && !s.frames.Running() {
		s.playSelected()
	}
}

// SelectedName returns the selected clip name, or "" when the index is out
// of range.
func (s *Session) SelectedName() string {
	return s.registry.Name(s.selected)
}

// SelectedAction returns the selected action, or nil.
func (s *Session) SelectedAction() Action {
	return s.registry.Get(s.SelectedName())
}

func (s *Session) stopSelected() {
	s.blend.Stop(s.SelectedName())
}

func (s *Session) playSelected() {
	s.stopSelected()
	s.playLabel = LabelStop
	if a := s.SelectedAction(); a != nil {
		a.Play()
	}
}

// --- editor preview ---

// PlayLabel returns "Stop" while editor preview is playing, else "Play".
func (s *Session) PlayLabel() string { return s.playLabel }

// Previewing reports whether the preview tick callback is installed.
func (s *Session) Previewing() bool { return s.preview != nil }

// Play toggles editor preview of the selected clip. It does nothing while
// the frame source reports a running simulation.
//
// Turning preview on builds the mixer, rebuilds on pending edits, plays
// the selection, and subscribes a tick callback that ignores live ticks,
// rebuilds when the clip set changes, advances the mixer and pins the
// root bone to the position it had when preview started. Turning it off
// stops playback and releases the callback.
func (s *Session) Play() {
	if s.frames.Running() {
		return
	}

	if s.playLabel == LabelPlay && s.preview == nil {
		s.Mixer()
		s.Refresh()
		s.playSelected()

		root := s.RootBone()
		var pinned Vec3
		if root != nil {
			pinned = root.Position
		}
		s.preview = s.frames.OnUpdate(func(t Tick) {
			if t.Live {
				return
			}
			if s.Changed() {
				s.stopSelected()
				s.rebuild()
				s.playSelected()
			}
			s.mixer.Update(t.Delta)
			if root != nil {
				root.Position = pinned
			}
		})
		s.metrics.previewing(true)
		s.log.Debug().Str("clip", s.SelectedName()).Msg("preview started")
		return
	}

	s.playLabel = LabelPlay
	s.stopSelected()
	s.stopPreview()
}

// stopPreview releases the preview callback. Safe when none is installed.
func (s *Session) stopPreview() {
	if s.preview == nil {
		return
	}
	s.preview.Stop()
	s.preview = nil
	s.metrics.previewing(false)
	s.log.Debug().Msg("preview stopped")
}

// Awake releases any editor preview left running when the host switches to
// live simulation.
func (s *Session) Awake() {
	s.stopPreview()
	s.playLabel = LabelPlay
}

// Close releases the preview callback and disposes the mixer.
func (s *Session) Close() {
	s.stopPreview()
	if s.mixer != nil {
		s.mixer.SetFinishedHandler(nil)
		s.mixer.Dispose()
		s.mixer = nil
	}
	s.listening = false
	s.blend.prime(nil)
}

// --- runtime lifecycle ---

// Start prepares live playback: it rebuilds the mixer, rewinds the selected
// action, halts everything, then plays every action at weight 0 so later
// crossfades never need to enable one lazily. It subscribes the finished
// handler and crossfades into the first available action at full weight.
func (s *Session) Start() {
	s.rebuild()
	if a := s.SelectedAction(); a != nil {
		a.Reset()
	}
	s.mixer.StopAllActions()

	first := ""
	for _, name := range s.registry.Names() {
		a := s.registry.Get(name)
		if a == nil {
			continue
		}
		if first == "" {
			first = name
		}
		a.Play()
		a.SetEffectiveWeight(0)
	}

	s.listening = true
	s.mixer.SetFinishedHandler(s.handleFinished)

	if first != "" {
		s.blend.Mix(first, s.cfg.mixOptions())
	}
	s.log.Debug().Str("first", first).Msg("started")
}

// Update advances the mixer by dt seconds. Horizontal root motion is
// removed: the root bone's X and Z are restored to their pre-update values
// while Y keeps whatever the clips produced.
func (s *Session) Update(dt float64) {
	m := s.Mixer()
	root := s.RootBone()
	var pos Vec3
	if root != nil {
		pos = root.Position
	}

	m.Update(dt)

	if root != nil {
		root.Position.X = pos.X
		root.Position.Z = pos.Z
	}
}

// Stop requests a stop. It takes effect at the next finished event.
func (s *Session) Stop() {
	s.stopping = true
}

// Resume clears any pending or latched stop.
func (s *Session) Resume() {
	s.stopped = false
	s.stopping = false
}

// IsActive reports whether no stop is pending or latched.
func (s *Session) IsActive() bool {
	return !s.stopped && !s.stopping
}

// Stopped reports whether a stop request has latched.
func (s *Session) Stopped() bool { return s.stopped }

// Stopping reports whether a stop request is waiting for a finished event.
func (s *Session) Stopping() bool { return s.stopping }

// RootBone returns the first bone under the owner in depth-first order.
func (s *Session) RootBone() *Node {
	return FindRootBone(s.owner)
}

// --- blending ---

// Mix crossfades to the action under name using the session's configured
// transition and warp at full weight.
func (s *Session) Mix(name string) {
	s.blend.Mix(name, s.cfg.mixOptions())
}

// MixWith crossfades or re-weights with explicit options.
func (s *Session) MixWith(name string, opts MixOptions) {
	s.blend.Mix(name, opts)
}

// Action returns the action under name in the current generation, or nil.
func (s *Session) Action(name string) Action {
	return s.registry.Get(name)
}

// SetWeight sets the effective weight of the action under name.
func (s *Session) SetWeight(name string, weight float64) {
	s.blend.SetWeight(name, weight)
}

// Weight returns the effective weight of the action under name.
func (s *Session) Weight(name string) float64 {
	return s.blend.Weight(name)
}

// SetBaseAction makes the action under name the base of the next re-weight.
func (s *Session) SetBaseAction(name string) {
	s.blend.SetBase(name)
}

// Active returns the leading action, or nil.
func (s *Session) Active() Action { return s.blend.Active() }

// Base returns the base action (the first action until a crossfade sets it).
func (s *Session) Base() Action { return s.blend.Base() }
