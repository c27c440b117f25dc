package animator

import "github.com/rs/zerolog"

// Mix defaults.
const (
	DefaultTransition = 0.1
	DefaultWeight     = 1.0

	// exclusiveWeight is the target weight at or above which Mix treats a
	// crossfade as a hard cut and silences the base action first.
	exclusiveWeight = 0.8
)

// MixOptions tunes a Mix call.
type MixOptions struct {
	// Transition is the crossfade duration in seconds.
	Transition float64
	// Weight is the target effective weight of the incoming action. It is
	// passed through unclamped.
	Weight float64
	// Warp ramps both time-scales during the crossfade so the clips stay
	// in phase.
	Warp bool
}

// DefaultMixOptions returns a 0.1s warped crossfade to full weight.
func DefaultMixOptions() MixOptions {
	return MixOptions{Transition: DefaultTransition, Weight: DefaultWeight, Warp: true}
}

// BlendController is the crossfade and weight state machine. It tracks the
// action currently leading (active) and the one it replaced (base). At rest
// the active action carries weight 1; during a transition at most one other
// action is fading out.
type BlendController struct {
	registry *ActionRegistry
	mixer    Mixer

	active Action
	base   Action

	metrics *Metrics
	log     zerolog.Logger
}

// NewBlendController creates a controller resolving names through reg.
func NewBlendController(reg *ActionRegistry) *BlendController {
	return &BlendController{registry: reg, log: withComponent("blend")}
}

// Active returns the leading action, or nil before the first Mix.
func (c *BlendController) Active() Action { return c.active }

// Base returns the action blended under the active one. Until a crossfade
// has set it, the registry's first action stands in.
func (c *BlendController) Base() Action {
	if c.base == nil {
		return c.registry.First()
	}
	return c.base
}

// SetBase makes the action under name the base. Unknown names clear it, so
// Base falls back to the first action again.
func (c *BlendController) SetBase(name string) {
	c.base = c.registry.Get(name)
}

// SetBaseAction makes a the base action.
func (c *BlendController) SetBaseAction(a Action) {
	c.base = a
}

// SetWeight sets the effective weight of the action under name. Unknown
// names are ignored.
func (c *BlendController) SetWeight(name string, weight float64) {
	setWeight(c.registry.Get(name), weight)
}

// Weight returns the effective weight of the action under name, or 0 for
// unknown names.
func (c *BlendController) Weight(name string) float64 {
	if a := c.registry.Get(name); a != nil {
		return a.EffectiveWeight()
	}
	return 0
}

// Stop rewinds the selected action and halts every action on the mixer.
func (c *BlendController) Stop(selected string) {
	if a := c.registry.Get(selected); a != nil {
		a.Reset()
	}
	if c.mixer != nil {
		c.mixer.StopAllActions()
	}
}

// Mix makes the action under name lead.
//
// If it already leads, this only re-weights: the active action takes
// opts.Weight and, for weights below 1, the base action is re-enabled at
// time-scale 1 and weight 1-opts.Weight so the pair sums to 1.
//
// Otherwise the action is rewound and crossfaded in from the current active
// action over opts.Transition seconds. On the very first Mix there is no
// active action yet, so the crossfade runs from the action to itself, which
// only primes its weight. Weights of 0.8 and above zero the base action
// before the fade. The replaced action becomes the base.
//
// Unknown names and placeholders are ignored.
func (c *BlendController) Mix(name string, opts MixOptions) {
	action := c.registry.Get(name)
	if action == nil {
		return
	}

	if action == c.active {
		action.SetEffectiveWeight(opts.Weight)
		if opts.Weight < 1 {
			if base := c.Base(); base != nil {
				base.SetEnabled(true)
				base.SetEffectiveTimeScale(1)
				base.SetEffectiveWeight(1 - opts.Weight)
			}
		}
		c.metrics.reweight()
		c.log.Debug().Str("action", name).Float64("weight", opts.Weight).Msg("reweight")
		return
	}

	action.Reset()

	if c.active == nil {
		c.active = action
	}

	c.active.SetEnabled(true)
	action.SetEnabled(true)

	if opts.Weight >= exclusiveWeight {
		setWeight(c.Base(), 0)
	}

	action.CrossFadeFrom(c.active, opts.Transition, opts.Warp)
	action.SetEffectiveWeight(opts.Weight)

	c.base = c.active
	c.active = action

	c.metrics.crossfade()
	c.log.Debug().
		Str("to", name).
		Str("from", c.registry.NameOf(c.base)).
		Float64("transition", opts.Transition).
		Float64("weight", opts.Weight).
		Bool("warp", opts.Warp).
		Msg("crossfade")
}

// prime binds the controller to a freshly rebuilt mixer and forgets any
// action handle from the previous generation.
func (c *BlendController) prime(m Mixer) {
	c.mixer = m
	c.active = nil
	c.base = nil
}

func setWeight(a Action, weight float64) {
	if a != nil {
		a.SetEffectiveWeight(weight)
	}
}
