// Package animator is a skeletal animation-blending controller.
//
// A [Session] plays the named clips of one skeleton. One clip leads at a
// time; switching clips crossfades, re-mixing the leading clip re-weights it
// against the previous one, and edits to the clip set made while the
// session is live are detected and rebuilt every frame. Horizontal
// root-bone motion is removed so in-place animation stays in place.
//
// # Quick start
//
//	root := animator.NewGroup("hero")
//	hips := animator.NewBone("hips", animator.Vec3{Y: 1})
//	root.AddChild(hips)
//
//	clips := animator.NewClipSet(idle, run, jump) // idle first: the default
//	s := animator.NewSession(root, clips)
//	s.Start()
//
//	// each frame:
//	s.Update(dt)
//
//	// on input:
//	s.Mix("run")
//
// # Host primitives
//
// The session drives actions through the [Action] and [Mixer] interfaces and
// reads ticks from a [FrameSource]. The package ships [SkeletonMixer],
// [ClipAction] and [Ticker] as defaults; pass [WithMixerFactory] or
// [WithFrameSource] to plug in a host engine.
//
// # Generations
//
// Every rebuild disposes the previous mixer. Action handles fetched before
// a rebuild are stale; re-fetch them with [Session.Action]. In debug mode
// ([SetDebugMode]) using a stale [ClipAction] panics.
//
// # Editor preview
//
// [Session.Play] toggles a preview loop on the session's frame source. It
// ignores live ticks, follows clip set edits, and pins the root bone to
// where it stood when preview began.
//
// # Manifests
//
// Skeletons and clip sets can be described in YAML (see [Manifest]) and
// reloaded on save with a [ManifestWatcher]. A [Script] replays session
// commands frame by frame. The animctl command in cmd/animctl inspects,
// simulates and previews manifests.
package animator
