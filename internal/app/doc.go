// Package app wires settings, logging, the asset store, the audio device
// and the player controller into a ready-to-run player.
//
// Example:
//
//	a, err := app.New(ctx, settings, app.Options{OnEvent: handle})
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//	return a.Controller.Run(ctx)
package app
