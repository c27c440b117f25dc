// Package ecs bridges animator sessions and a [Donburi] world.
//
// Finished events flow out of a session into the world through
// [NewDonburiListener]; ECS systems subscribe to [FinishedEventType].
// Systems ask for crossfades by publishing a [MixRequest] on
// [MixRequestType]; a session bound with [BindMixRequests] applies them when
// [ProcessMixRequests] runs in the frame loop.
//
// Usage:
//
//	session.OnAnimationFinished(ecs.NewDonburiListener(world))
//	ecs.BindMixRequests(world, session)
//	ecs.MixRequestType.Publish(world, ecs.MixRequest{Clip: "run"})
//	ecs.ProcessMixRequests(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
