// Package device opens the system audio output.
//
// It is kept apart from package audio so the engine and its tests build
// without the native sound libraries; only binaries import it.
package device
