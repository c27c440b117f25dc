package animator

import "sort"

// Keyframe is a bone position at a point in clip time (seconds).
type Keyframe struct {
	Time     float64
	Position Vec3
}

// Track animates the position of one bone, addressed by name.
// Keys must be sorted by Time.
type Track struct {
	Bone string
	Keys []Keyframe
}

// Sample returns the track position at time t. Times before the first key
// or after the last key hold the nearest end value. Sample on an empty track
// returns the zero vector.
func (tr *Track) Sample(t float64) Vec3 {
	n := len(tr.Keys)
	if n == 0 {
		return Vec3{}
	}
	if t <= tr.Keys[0].Time {
		return tr.Keys[0].Position
	}
	if t >= tr.Keys[n-1].Time {
		return tr.Keys[n-1].Position
	}
	// First key strictly after t; i >= 1 given the guards above.
	i := sort.Search(n, func(i int) bool { return tr.Keys[i].Time > t })
	a, b := tr.Keys[i-1], tr.Keys[i]
	span := b.Time - a.Time
	if span <= 0 {
		return b.Position
	}
	return a.Position.Lerp(b.Position, (t-a.Time)/span)
}

// Clip is an immutable animation asset. Clips are compared by pointer: two
// clips with identical content are still different clips.
type Clip struct {
	Name     string
	Duration float64

	// Loop and ClampWhenFinished seed the matching settings of every action
	// bound to this clip.
	Loop              LoopMode
	ClampWhenFinished bool

	Tracks []Track
}

// NewClip creates a clip. If duration is not positive it is derived from the
// latest keyframe across all tracks.
func NewClip(name string, duration float64, tracks ...Track) *Clip {
	c := &Clip{Name: name, Duration: duration, Tracks: tracks}
	if c.Duration <= 0 {
		for i := range tracks {
			if k := tracks[i].Keys; len(k) > 0 && k[len(k)-1].Time > c.Duration {
				c.Duration = k[len(k)-1].Time
			}
		}
	}
	return c
}

// ClipSource is the ordered name -> clip mapping a session animates. A nil
// clip marks a declared but unassigned slot. The mapping may change between
// any two calls; sessions detect edits and rebuild.
type ClipSource interface {
	Names() []string
	Clip(name string) *Clip
}

// ClipSet is an insertion-ordered, mutable ClipSource.
type ClipSet struct {
	names []string
	clips map[string]*Clip
}

// NewClipSet creates a set holding clips in the given order, keyed by
// clip name.
func NewClipSet(clips ...*Clip) *ClipSet {
	s := &ClipSet{clips: make(map[string]*Clip, len(clips))}
	for _, c := range clips {
		s.Set(c.Name, c)
	}
	return s
}

// Set assigns clip to name. New names are appended; existing names keep
// their position. A nil clip declares an empty slot.
func (s *ClipSet) Set(name string, clip *Clip) {
	if s.clips == nil {
		s.clips = make(map[string]*Clip)
	}
	if _, ok := s.clips[name]; !ok {
		s.names = append(s.names, name)
	}
	s.clips[name] = clip
}

// Declare adds an empty slot for name if it is not already present.
func (s *ClipSet) Declare(name string) {
	if _, ok := s.clips[name]; ok {
		return
	}
	s.Set(name, nil)
}

// Remove deletes name from the set. No-op for unknown names.
func (s *ClipSet) Remove(name string) {
	if _, ok := s.clips[name]; !ok {
		return
	}
	delete(s.clips, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			return
		}
	}
}

// Move relocates name to index, shifting the others. Indices outside the
// valid range are clamped. No-op for unknown names.
func (s *ClipSet) Move(name string, index int) {
	from := s.indexOf(name)
	if from < 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(s.names) {
		index = len(s.names) - 1
	}
	if from == index {
		return
	}
	if from < index {
		copy(s.names[from:], s.names[from+1:index+1])
	} else {
		copy(s.names[index+1:], s.names[index:from])
	}
	s.names[index] = name
}

// Replace swaps the whole contents of s for those of other, in place.
// Holders of s observe the new clips on their next change check.
func (s *ClipSet) Replace(other *ClipSet) {
	s.names = append(s.names[:0], other.names...)
	s.clips = make(map[string]*Clip, len(other.clips))
	for k, v := range other.clips {
		s.clips[k] = v
	}
}

// Names returns a copy of the keys in insertion order.
func (s *ClipSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Clip returns the clip under name, or nil for unknown names and empty slots.
func (s *ClipSet) Clip(name string) *Clip {
	return s.clips[name]
}

// Len returns the number of keys, empty slots included.
func (s *ClipSet) Len() int {
	return len(s.names)
}

func (s *ClipSet) indexOf(name string) int {
	for i, n := range s.names {
		if n == name {
			return i
		}
	}
	return -1
}
