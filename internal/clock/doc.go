// Package clock implements the progress clock: a one-second ticker that
// samples the playback position, reports it, and detects the end of the
// track.
package clock
