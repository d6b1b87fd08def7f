// Package editor implements core.Editor and core.Notifier outside of a
// note-taking host: on a string buffer, on a vault document, on a logger
// and on a plain writer.
package editor
