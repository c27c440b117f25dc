package animator

import (
	"fmt"
	"strings"
	"testing"
)

func TestMixerSingleActionFullWeight(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	m.ClipAction(r.idle).Play()

	m.Update(0.5)

	if !r.hand.Position.ApproxEqual(Vec3{1, 1.5, 0}, 1e-9) {
		t.Errorf("hand = %v, want (1, 1.5, 0)", r.hand.Position)
	}
}

func TestMixerPartialWeightBlendsBindPose(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	a := m.ClipAction(r.idle)
	a.Play()
	a.SetEffectiveWeight(0.5)

	m.Update(0.5)

	// Halfway between bind (1, 1, 0) and sample (1, 1.5, 0).
	if !r.hand.Position.ApproxEqual(Vec3{1, 1.25, 0}, 1e-9) {
		t.Errorf("hand = %v, want (1, 1.25, 0)", r.hand.Position)
	}
}

func TestMixerZeroWeightRestoresBindPose(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	a := m.ClipAction(r.idle)
	a.Play()
	m.Update(0.5)

	a.SetEffectiveWeight(0)
	m.Update(0.1)

	if r.hand.Position != (Vec3{1, 1, 0}) {
		t.Errorf("hand = %v, want bind (1, 1, 0)", r.hand.Position)
	}
}

func TestMixerAveragesOverlappingActions(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	m.ClipAction(r.run).Play()
	m.ClipAction(r.jump).Play()

	m.Update(0.25)

	// run at 0.25 -> (0, 1, 1); jump at 0.25 -> (1, 2, 1).
	if !r.hips.Position.ApproxEqual(Vec3{0.5, 1.5, 1}, 1e-9) {
		t.Errorf("hips = %v, want (0.5, 1.5, 1)", r.hips.Position)
	}
}

func TestMixerClipActionIsCached(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	if m.ExistingAction(r.idle) != nil {
		t.Error("ExistingAction before ClipAction should be nil")
	}
	a := m.ClipAction(r.idle)
	if m.ClipAction(r.idle) != a || m.ExistingAction(r.idle) != a {
		t.Error("ClipAction should return the same action for a clip")
	}
	if m.ClipAction(nil) != nil {
		t.Error("ClipAction(nil) should be nil")
	}
}

func TestMixerRepeatWraps(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	a := m.ClipAction(r.idle)
	a.Play()

	m.Update(1.25)

	if !approx(a.Time(), 0.25) {
		t.Errorf("Time = %v, want 0.25", a.Time())
	}
	if !r.hand.Position.ApproxEqual(Vec3{1, 1.25, 0}, 1e-9) {
		t.Errorf("hand = %v, want (1, 1.25, 0)", r.hand.Position)
	}
}

func TestMixerPingPongReverses(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	a := m.ClipAction(r.idle).(*ClipAction)
	a.SetLoop(LoopPingPong)
	a.Play()

	m.Update(1.25)

	if !r.hand.Position.ApproxEqual(Vec3{1, 1.75, 0}, 1e-9) {
		t.Errorf("hand = %v, want (1, 1.75, 0) on the way back", r.hand.Position)
	}
}

func TestMixerTimeScale(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	a := m.ClipAction(r.idle)
	a.Play()
	a.SetEffectiveTimeScale(0.5)

	m.Update(0.5)

	if !approx(a.Time(), 0.25) {
		t.Errorf("Time = %v, want 0.25", a.Time())
	}
}

func TestMixerOnceUnclampedFinishesAndDisables(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	a := m.ClipAction(r.jump)
	a.Play()

	var finished []Action
	m.SetFinishedHandler(func(a Action) { finished = append(finished, a) })

	m.Update(0.3)
	if len(finished) != 0 {
		t.Fatal("should not finish before the clip end")
	}
	m.Update(0.3)
	if len(finished) != 1 || finished[0] != a {
		t.Fatalf("finished = %v, want [jump]", finished)
	}
	if a.Enabled() {
		t.Error("unclamped one-shot should be disabled after finishing")
	}
	if a.EffectiveWeight() != 0 {
		t.Errorf("EffectiveWeight = %v, want 0", a.EffectiveWeight())
	}
	if !approx(a.Time(), 0.5) {
		t.Errorf("Time = %v, want clip end 0.5", a.Time())
	}
	if r.hips.Position != (Vec3{0, 1, 0}) {
		t.Errorf("hips = %v, want bind pose", r.hips.Position)
	}

	m.Update(0.3)
	if len(finished) != 1 {
		t.Errorf("finished fired %d times, want 1", len(finished))
	}
}

func TestMixerOnceClampedHoldsLastPose(t *testing.T) {
	r := newRig(t)
	r.jump.ClampWhenFinished = true
	m := NewSkeletonMixer(r.root)
	a := m.ClipAction(r.jump).(*ClipAction)
	a.Play()

	count := 0
	m.SetFinishedHandler(func(Action) { count++ })

	m.Update(0.6)
	m.Update(0.6)

	if count != 1 {
		t.Errorf("finished fired %d times, want 1", count)
	}
	if !a.Paused() || !a.Enabled() {
		t.Errorf("clamped action: paused=%v enabled=%v, want true true", a.Paused(), a.Enabled())
	}
	if a.IsRunning() {
		t.Error("paused action should not report running")
	}
	if !r.hips.Position.ApproxEqual(Vec3{2, 3, 2}, 1e-9) {
		t.Errorf("hips = %v, want last pose (2, 3, 2)", r.hips.Position)
	}
}

func TestMixerFinishedHandlerIsSingleSlot(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	m.ClipAction(r.jump).Play()

	first, second := 0, 0
	m.SetFinishedHandler(func(Action) { first++ })
	m.SetFinishedHandler(func(Action) { second++ })

	m.Update(1)

	if first != 0 || second != 1 {
		t.Errorf("first=%d second=%d, want 0 1", first, second)
	}
}

func TestCrossFadeFromRampsWeights(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	out := m.ClipAction(r.run)
	in := m.ClipAction(r.idle)
	out.Play()
	in.Play()

	in.CrossFadeFrom(out, 0.5, false)

	m.Update(0.25)
	if !approx(out.EffectiveWeight(), 0.5) || !approx(in.EffectiveWeight(), 0.5) {
		t.Errorf("midway weights out=%v in=%v, want 0.5 0.5", out.EffectiveWeight(), in.EffectiveWeight())
	}

	m.Update(0.25)
	if out.EffectiveWeight() != 0 || in.EffectiveWeight() != 1 {
		t.Errorf("final weights out=%v in=%v, want 0 1", out.EffectiveWeight(), in.EffectiveWeight())
	}
	if out.Enabled() {
		t.Error("faded-out action should be disabled")
	}
}

func TestSetEffectiveWeightCancelsFade(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	out := m.ClipAction(r.run)
	in := m.ClipAction(r.idle)
	out.Play()
	in.Play()

	in.CrossFadeFrom(out, 0.5, false)
	in.SetEffectiveWeight(1)

	m.Update(0.25)
	if in.EffectiveWeight() != 1 {
		t.Errorf("in weight = %v, want 1 (fade cancelled)", in.EffectiveWeight())
	}
}

func TestCrossFadeWarpMatchesDurations(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	out := m.ClipAction(r.run) // 1s
	in := m.ClipAction(r.jump) // 0.5s
	out.Play()
	in.Play()

	in.CrossFadeFrom(out, 0.2, true)

	// run speeds up 1 -> 2, jump starts at half speed 0.5 -> 1.
	m.Update(0.1)
	if !approx(out.EffectiveTimeScale(), 1.5) || !approx(in.EffectiveTimeScale(), 0.75) {
		t.Errorf("midway scales out=%v in=%v, want 1.5 0.75", out.EffectiveTimeScale(), in.EffectiveTimeScale())
	}

	m.Update(0.1)
	if !approx(out.EffectiveTimeScale(), 2) {
		t.Errorf("out scale = %v, want 2", out.EffectiveTimeScale())
	}
	if !approx(in.EffectiveTimeScale(), 1) {
		t.Errorf("in scale = %v, want 1", in.EffectiveTimeScale())
	}
}

func TestSetEffectiveTimeScaleCancelsWarp(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	out := m.ClipAction(r.run)
	in := m.ClipAction(r.jump)
	out.Play()
	in.Play()

	in.CrossFadeFrom(out, 0.2, true)
	out.SetEffectiveTimeScale(1)

	m.Update(0.1)
	if out.EffectiveTimeScale() != 1 {
		t.Errorf("out scale = %v, want 1 (warp cancelled)", out.EffectiveTimeScale())
	}
}

func TestStopAllActionsResets(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	a := m.ClipAction(r.idle)
	a.Play()
	m.Update(0.4)

	m.StopAllActions()

	if a.IsRunning() {
		t.Error("action should not run after StopAllActions")
	}
	if a.Time() != 0 {
		t.Errorf("Time = %v, want 0", a.Time())
	}
	m.Update(0.4)
	if a.Time() != 0 {
		t.Error("unscheduled action should not advance")
	}
}

func TestActionStopUnschedules(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	a := m.ClipAction(r.idle)
	a.Play()
	a.Play() // idempotent
	if len(m.scheduled) != 1 {
		t.Fatalf("scheduled = %d, want 1", len(m.scheduled))
	}
	a.Stop()
	if len(m.scheduled) != 0 || a.IsRunning() {
		t.Error("Stop should unschedule the action")
	}
}

func TestDisposeRestoresBindPoseAndInvalidatesActions(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	a := m.ClipAction(r.run)
	a.Play()
	m.Update(0.5)
	if r.hips.Position == (Vec3{0, 1, 0}) {
		t.Fatal("precondition: hips should have moved")
	}

	m.Dispose()

	if r.hips.Position != (Vec3{0, 1, 0}) {
		t.Errorf("hips = %v, want bind pose after Dispose", r.hips.Position)
	}
	before := a.EffectiveWeight()
	a.SetEffectiveWeight(0.3)
	a.Play()
	if a.EffectiveWeight() != before {
		t.Error("stale action should ignore SetEffectiveWeight")
	}
	if a.IsRunning() {
		t.Error("stale action should not report running")
	}
	if m.ClipAction(r.idle) != nil {
		t.Error("disposed mixer should not create actions")
	}
	m.Update(1) // no-op, no panic
	m.Dispose() // idempotent
}

func TestDebugMode_StaleActionPanics(t *testing.T) {
	SetDebugMode(true)
	defer SetDebugMode(false)

	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	a := m.ClipAction(r.run)
	m.Dispose()

	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatal("expected panic using a stale action, got none")
		}
		msg := fmt.Sprint(rec)
		if !strings.Contains(msg, "stale") || !strings.Contains(msg, "run") {
			t.Errorf("panic message should mention stale and the clip, got: %s", msg)
		}
	}()
	a.Reset()
}

func TestMixerNewActionIsFresh(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	first := m.NewAction(r.idle)
	second := m.NewAction(r.idle)
	if first == second {
		t.Fatal("NewAction should not reuse an action")
	}
	if m.ClipAction(r.idle) != first || m.ExistingAction(r.idle) != first {
		t.Error("the first action should stay the clip's cached action")
	}
	if got := len(m.Actions()); got != 2 {
		t.Errorf("Actions() len = %d, want 2", got)
	}
	if m.NewAction(nil) != nil {
		t.Error("NewAction(nil) should be nil")
	}
}

func TestMixerDisabledActionRestoresBind(t *testing.T) {
	r := newRig(t)
	m := NewSkeletonMixer(r.root)
	a := m.ClipAction(r.run)
	a.Play()

	m.Update(0.5)
	if !r.hips.Position.ApproxEqual(Vec3{0, 1, 2}, 1e-9) {
		t.Fatalf("hips = %v, want (0, 1, 2) midway", r.hips.Position)
	}

	a.SetEnabled(false)
	m.Update(0.1)
	if r.hips.Position != (Vec3{0, 1, 0}) {
		t.Errorf("hips = %v, want bind pose once run is disabled", r.hips.Position)
	}
}
