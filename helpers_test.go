package animator

import "testing"

// rig is a small skeleton with idle/run/jump clips, idle first.
type rig struct {
	root  *Node
	hips  *Node
	hand  *Node
	idle  *Clip
	run   *Clip
	jump  *Clip
	clips *ClipSet
}

func newRig(t *testing.T) *rig {
	t.Helper()
	r := &rig{}
	r.root = NewGroup("hero")
	armature := NewGroup("armature")
	r.hips = NewBone("hips", Vec3{0, 1, 0})
	r.hand = NewBone("hand", Vec3{1, 1, 0})
	r.root.AddChild(armature)
	armature.AddChild(r.hips)
	r.hips.AddChild(r.hand)

	r.idle = NewClip("idle", 1, Track{Bone: "hand", Keys: []Keyframe{
		{Time: 0, Position: Vec3{1, 1, 0}},
		{Time: 1, Position: Vec3{1, 2, 0}},
	}})
	// run moves the hips forward: horizontal root motion.
	r.run = NewClip("run", 1, Track{Bone: "hips", Keys: []Keyframe{
		{Time: 0, Position: Vec3{0, 1, 0}},
		{Time: 1, Position: Vec3{0, 1, 4}},
	}})
	// jump lifts and moves the hips.
	r.jump = NewClip("jump", 0.5, Track{Bone: "hips", Keys: []Keyframe{
		{Time: 0, Position: Vec3{0, 1, 0}},
		{Time: 0.5, Position: Vec3{2, 3, 2}},
	}})
	r.jump.Loop = LoopOnce

	r.clips = NewClipSet(r.idle, r.run, r.jump)
	return r
}

func (r *rig) session(opts ...SessionOption) *Session {
	return NewSession(r.root, r.clips, opts...)
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}
