package ecs

import (
	"github.com/phanxgames/animator"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FinishedEventType is the Donburi event type for animator finished events.
var FinishedEventType = events.NewEventType[animator.FinishedEvent]()

// MixRequest asks a session to crossfade to Clip. A nil Options uses the
// session's configured transition and warp at full weight.
type MixRequest struct {
	Clip    string
	Options *animator.MixOptions
}

// MixRequestType is the Donburi event type ECS systems publish MixRequests on.
var MixRequestType = events.NewEventType[MixRequest]()

// NewDonburiListener returns a finished listener that publishes each event
// to FinishedEventType in world. Register it with
// Session.OnAnimationFinished; subscribers see the events when the world
// processes them.
func NewDonburiListener(world donburi.World) func(animator.FinishedEvent) {
	return func(e animator.FinishedEvent) {
		FinishedEventType.Publish(world, e)
	}
}

// mixTarget is the part of *animator.Session that ProcessMixRequests uses.
type mixTarget interface {
	Mix(name string)
	MixWith(name string, opts animator.MixOptions)
}

// BindMixRequests subscribes session to MixRequestType in world. Bind once
// per session; requests are applied when ProcessMixRequests runs.
func BindMixRequests(world donburi.World, session mixTarget) {
	MixRequestType.Subscribe(world, func(w donburi.World, req MixRequest) {
		if req.Options != nil {
			session.MixWith(req.Clip, *req.Options)
			return
		}
		session.Mix(req.Clip)
	})
}

// ProcessMixRequests delivers every queued MixRequest in world, in publish
// order. Call it from the frame loop before advancing the session.
func ProcessMixRequests(world donburi.World) {
	MixRequestType.ProcessEvents(world)
}

// ProcessFinishedEvents delivers queued finished events to their
// subscribers.
func ProcessFinishedEvents(world donburi.World) {
	FinishedEventType.ProcessEvents(world)
}
