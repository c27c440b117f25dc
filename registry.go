package animator

// ActionRegistry maps clip names to actions bound to the session's current
// mixer. Every Rebuild starts a new generation; actions from earlier
// generations belong to a disposed mixer and must not be used.
type ActionRegistry struct {
	names      []string
	actions    map[string]Action
	generation uint64
}

// NewActionRegistry creates an empty registry (generation 0).
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{actions: make(map[string]Action)}
}

// Rebuild binds a fresh action for every clip in clips, in order, using
// mixer; names sharing one clip still get distinct actions. Names whose clip
// is nil keep an explicit nil placeholder so key order and indices match
// clips exactly. The previous generation's actions are dropped.
func (r *ActionRegistry) Rebuild(clips ClipSource, mixer Mixer) {
	names := clips.Names()
	actions := make(map[string]Action, len(names))
	for _, name := range names {
		clip := clips.Clip(name)
		if clip == nil || mixer == nil {
			actions[name] = nil
			continue
		}
		actions[name] = mixer.NewAction(clip)
	}
	r.names = names
	r.actions = actions
	r.generation++
}

// Get returns the action under name, or nil for unknown names and
// placeholders.
func (r *ActionRegistry) Get(name string) Action {
	return r.actions[name]
}

// Has reports whether name is a key of the registry, placeholder or not.
func (r *ActionRegistry) Has(name string) bool {
	_, ok := r.actions[name]
	return ok
}

// Names returns a copy of the registry keys in clip order.
func (r *ActionRegistry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Name returns the key at index i, or "" when i is out of range.
func (r *ActionRegistry) Name(i int) string {
	if i < 0 || i >= len(r.names) {
		return ""
	}
	return r.names[i]
}

// Len returns the number of keys, placeholders included.
func (r *ActionRegistry) Len() int {
	return len(r.names)
}

// Actions returns the bound actions in key order, skipping placeholders.
func (r *ActionRegistry) Actions() []Action {
	out := make([]Action, 0, len(r.names))
	for _, name := range r.names {
		if a := r.actions[name]; a != nil {
			out = append(out, a)
		}
	}
	return out
}

// FirstName returns the first key, or "" for an empty registry.
func (r *ActionRegistry) FirstName() string {
	return r.Name(0)
}

// First returns the action under the first key. It is nil when the registry
// is empty or the first slot is a placeholder.
func (r *ActionRegistry) First() Action {
	return r.Get(r.FirstName())
}

// NameOf returns the key bound to a, or "" if a is not in this generation.
func (r *ActionRegistry) NameOf(a Action) string {
	if a == nil {
		return ""
	}
	for _, name := range r.names {
		if r.actions[name] == a {
			return name
		}
	}
	return ""
}

// Generation returns the number of rebuilds performed.
func (r *ActionRegistry) Generation() uint64 {
	return r.generation
}
