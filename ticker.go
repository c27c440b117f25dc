package animator

// Tick is one frame delivered by a FrameSource.
type Tick struct {
	// Delta is the elapsed time since the previous tick, in seconds.
	Delta float64
	// Live is true when the tick comes from the running simulation rather
	// than an editor preview loop.
	Live bool
}

// Subscription cancels a frame callback. Stop is idempotent.
type Subscription interface {
	Stop()
}

// FrameSource delivers per-frame ticks and reports whether the host runtime
// is simulating.
type FrameSource interface {
	Running() bool
	OnUpdate(fn func(Tick)) Subscription
}

// Ticker is a FrameSource driven by explicit Advance calls. Hosts call
// Advance once per frame; tests call it to step time deterministically.
type Ticker struct {
	running bool
	subs    []*tickerSub
}

type tickerSub struct {
	t  *Ticker
	fn func(Tick)
}

var _ FrameSource = (*Ticker)(nil)

// NewTicker creates an idle ticker (not running).
func NewTicker() *Ticker {
	return &Ticker{}
}

// Running reports whether the ticker is in live simulation mode.
func (t *Ticker) Running() bool { return t.running }

// SetRunning switches between live simulation and preview ticks.
func (t *Ticker) SetRunning(running bool) { t.running = running }

// OnUpdate registers fn to be called on every Advance.
func (t *Ticker) OnUpdate(fn func(Tick)) Subscription {
	s := &tickerSub{t: t, fn: fn}
	t.subs = append(t.subs, s)
	return s
}

// NumSubscribers returns the number of live callbacks.
func (t *Ticker) NumSubscribers() int { return len(t.subs) }

// Advance delivers a tick of dt seconds to every subscriber in registration
// order. A callback stopped by an earlier one during the same round is
// skipped.
func (t *Ticker) Advance(dt float64) {
	if len(t.subs) == 0 {
		return
	}
	tick := Tick{Delta: dt, Live: t.running}
	subs := make([]*tickerSub, len(t.subs))
	copy(subs, t.subs)
	for _, s := range subs {
		if s.fn != nil {
			s.fn(tick)
		}
	}
}

// Stop removes the callback. Safe to call more than once.
func (s *tickerSub) Stop() {
	if s.t == nil {
		return
	}
	subs := s.t.subs
	for i, other := range subs {
		if other == s {
			copy(subs[i:], subs[i+1:])
			subs[len(subs)-1] = nil
			s.t.subs = subs[:len(subs)-1]
			break
		}
	}
	s.t = nil
	s.fn = nil
}
