package animator

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest errors, matched with errors.Is.
var (
	ErrNoClips      = errors.New("animator: manifest declares no clips")
	ErrBadKeyframes = errors.New("animator: keyframes out of order")
	ErrUnknownBone  = errors.New("animator: track targets unknown bone")
	ErrBadLoopMode  = errors.New("animator: unknown loop mode")
)

// Manifest is a YAML description of a skeleton and its ordered clip set.
//
//	skeleton:
//	  name: hero
//	  children:
//	    - name: hips
//	      bone: true
//	      position: [0, 1, 0]
//	clips:
//	  - name: idle
//	    duration: 1
//	    tracks:
//	      - bone: hips
//	        keys:
//	          - {t: 0, pos: [0, 1, 0]}
//	          - {t: 1, pos: [0, 1.1, 0]}
//	  - name: wave
//	    empty: true
type Manifest struct {
	Skeleton NodeSpec   `yaml:"skeleton"`
	Clips    []ClipSpec `yaml:"clips"`
}

// NodeSpec describes one scene-graph node and its children.
type NodeSpec struct {
	Name     string     `yaml:"name"`
	Bone     bool       `yaml:"bone"`
	Position []float64  `yaml:"position"`
	Children []NodeSpec `yaml:"children"`
}

// ClipSpec describes one clip slot. Empty declares a slot with no clip.
type ClipSpec struct {
	Name     string      `yaml:"name"`
	Empty    bool        `yaml:"empty"`
	Duration float64     `yaml:"duration"`
	Loop     string      `yaml:"loop"`
	Clamp    bool        `yaml:"clamp"`
	Tracks   []TrackSpec `yaml:"tracks"`
}

// TrackSpec describes one bone track.
type TrackSpec struct {
	Bone string    `yaml:"bone"`
	Keys []KeySpec `yaml:"keys"`
}

// KeySpec is one keyframe: a time and an [x, y, z] position. Missing
// components are zero.
type KeySpec struct {
	T   float64   `yaml:"t"`
	Pos []float64 `yaml:"pos"`
}

// ParseManifest decodes a manifest document.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("animator: unmarshal manifest: %w", err)
	}
	if len(m.Clips) == 0 {
		return nil, ErrNoClips
	}
	return &m, nil
}

// LoadManifest reads and decodes the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("animator: load manifest %s: %w", path, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("animator: manifest %s: %w", path, err)
	}
	return m, nil
}

// BuildSkeleton creates the node tree described by the manifest.
func (m *Manifest) BuildSkeleton() *Node {
	return buildNode(m.Skeleton)
}

func buildNode(spec NodeSpec) *Node {
	var n *Node
	if spec.Bone {
		n = NewBone(spec.Name, vec3From(spec.Position))
	} else {
		n = NewGroup(spec.Name)
		n.Position = vec3From(spec.Position)
	}
	for _, c := range spec.Children {
		n.AddChild(buildNode(c))
	}
	return n
}

// BoneNames returns every bone declared in the skeleton, depth-first.
func (m *Manifest) BoneNames() []string {
	var out []string
	var walk func(NodeSpec)
	walk = func(spec NodeSpec) {
		if spec.Bone {
			out = append(out, spec.Name)
		}
		for _, c := range spec.Children {
			walk(c)
		}
	}
	walk(m.Skeleton)
	return out
}

// ClipSet builds a fresh ClipSet from the manifest, in declaration order.
// Every call returns new clip values, so a session holding an older set sees
// each clip as changed.
func (m *Manifest) ClipSet() (*ClipSet, error) {
	bones := make(map[string]bool)
	for _, b := range m.BoneNames() {
		bones[b] = true
	}

	set := NewClipSet()
	for _, spec := range m.Clips {
		if spec.Empty {
			set.Declare(spec.Name)
			continue
		}
		clip, err := spec.build(bones)
		if err != nil {
			return nil, fmt.Errorf("animator: clip %q: %w", spec.Name, err)
		}
		set.Set(spec.Name, clip)
	}
	return set, nil
}

// ApplyTo replaces the contents of dst with a fresh build of the manifest.
func (m *Manifest) ApplyTo(dst *ClipSet) error {
	set, err := m.ClipSet()
	if err != nil {
		return err
	}
	dst.Replace(set)
	return nil
}

func (spec ClipSpec) build(bones map[string]bool) (*Clip, error) {
	loop, ok := ParseLoopMode(spec.Loop)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrBadLoopMode, spec.Loop)
	}
	tracks := make([]Track, 0, len(spec.Tracks))
	for _, ts := range spec.Tracks {
		if len(bones) > 0 && !bones[ts.Bone] {
			return nil, fmt.Errorf("%w %q", ErrUnknownBone, ts.Bone)
		}
		keys := make([]Keyframe, len(ts.Keys))
		for i, k := range ts.Keys {
			if i > 0 && k.T < ts.Keys[i-1].T {
				return nil, fmt.Errorf("%w: bone %q key %d", ErrBadKeyframes, ts.Bone, i)
			}
			keys[i] = Keyframe{Time: k.T, Position: vec3From(k.Pos)}
		}
		tracks = append(tracks, Track{Bone: ts.Bone, Keys: keys})
	}
	clip := NewClip(spec.Name, spec.Duration, tracks...)
	clip.Loop = loop
	clip.ClampWhenFinished = spec.Clamp
	return clip, nil
}

func vec3From(v []float64) Vec3 {
	var out Vec3
	if len(v) > 0 {
		out.X = v[0]
	}
	if len(v) > 1 {
		out.Y = v[1]
	}
	if len(v) > 2 {
		out.Z = v[2]
	}
	return out
}
