// ABOUTME: Package documentation for event
// ABOUTME: Describes the notification bus used by the canvas facade
// Package event provides a small topic-keyed publish/subscribe bus.
//
// The canvas publishes redraw and scroll notifications on it; anything
// extending the visualization subscribes to a topic instead of hooking into
// the rendering core. Publish never blocks: a subscriber whose buffer is
// full misses the event.
//
// Example:
//
//	bus := event.NewBus()
//	id, ch := bus.Subscribe("redraw")
//	defer bus.Unsubscribe(id)
//	for ev := range ch {
//		// react to ev.Payload
//	}
package event
