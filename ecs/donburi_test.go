package ecs

import (
	"testing"

	"github.com/phanxgames/animator"

	"github.com/yohamta/donburi"
)

func newSession(t *testing.T) *animator.Session {
	t.Helper()
	root := animator.NewGroup("hero")
	root.AddChild(animator.NewBone("hips", animator.Vec3{}))
	jump := animator.NewClip("jump", 0.5)
	jump.Loop = animator.LoopOnce
	clips := animator.NewClipSet(
		animator.NewClip("idle", 1),
		animator.NewClip("run", 1),
		jump,
	)
	s := animator.NewSession(root, clips)
	s.Start()
	return s
}

func TestDonburiListener_PublishesFinishedEvents(t *testing.T) {
	world := donburi.NewWorld()
	s := newSession(t)
	s.OnAnimationFinished(NewDonburiListener(world))

	var received []animator.FinishedEvent
	FinishedEventType.Subscribe(world, func(w donburi.World, e animator.FinishedEvent) {
		received = append(received, e)
	})

	s.Mix("jump")
	s.Update(0.6)

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected no events before processing, got %d", len(received))
	}
	ProcessFinishedEvents(world)

	if len(received) != 1 {
		t.Fatalf("expected 1 event, got %d", len(received))
	}
	if received[0].Clip != "jump" {
		t.Errorf("Clip = %q, want jump", received[0].Clip)
	}
	if received[0].Action != s.Action("jump") {
		t.Error("event should carry the jump action")
	}
}

func TestMixRequests_AppliedInPublishOrder(t *testing.T) {
	world := donburi.NewWorld()
	s := newSession(t)
	BindMixRequests(world, s)

	MixRequestType.Publish(world, MixRequest{Clip: "run"})
	MixRequestType.Publish(world, MixRequest{Clip: "idle"})

	if s.Active() != s.Action("idle") {
		t.Fatal("requests should not apply before processing")
	}
	ProcessMixRequests(world)

	if s.Active() != s.Action("idle") {
		t.Error("active should be idle after run then idle")
	}
	if s.Base() != s.Action("run") {
		t.Error("base should be run")
	}
}

func TestMixRequests_ExplicitOptions(t *testing.T) {
	world := donburi.NewWorld()
	s := newSession(t)
	BindMixRequests(world, s)

	opts := animator.MixOptions{Transition: 0.2, Weight: 0.25, Warp: false}
	MixRequestType.Publish(world, MixRequest{Clip: "run"})
	MixRequestType.Publish(world, MixRequest{Clip: "run", Options: &opts})
	ProcessMixRequests(world)

	if got := s.Weight("run"); got != 0.25 {
		t.Errorf("run weight = %v, want 0.25", got)
	}
	if got := s.Weight("idle"); got != 0.75 {
		t.Errorf("idle (base) weight = %v, want 0.75", got)
	}
}
