// Package logger builds the structured logger shared by the player
// components: JSON lines with RFC3339 timestamps, optionally mirrored to a
// size-rotated file.
package logger
