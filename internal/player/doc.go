// Package player wires the playlist, the playback engine and the progress
// clock into the player controller.
//
// The controller turns user commands (play/pause, next, previous, seek)
// and clock events into engine calls, and publishes display events for a
// presentation layer. All of its state is owned by the goroutine running
// [Controller.Run]; other goroutines talk to it through [Controller.Send].
//
// Example:
//
//	ctrl := player.NewController(playlist, engine, func(e player.Event) {
//	    fmt.Printf("%#v\n", e)
//	}, player.Options{Logger: log})
//	ctrl.Start()
//	go ctrl.Run(ctx)
//	ctrl.Send(player.TogglePlayPause{})
package player
