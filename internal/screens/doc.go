// Package screens implements the per-screen update loops and the screen
// set itself (clock, playback, webradio, menus, screensaver, system info).
//
// Every screen shares one worker shape: a single-slot mailbox feeding a
// background goroutine that renders the newest playback snapshot to the
// display. Snapshots published faster than the screen can draw coalesce in
// the mailbox; the loop only ever renders the latest one. Between backend
// pushes the loop redraws on a timer, synthesizing elapsed-time progress
// from the wall clock while a track with a known duration is playing.
//
// A loop checks its activity predicate immediately before pushing a frame,
// so a worker that was stopped mid-frame never draws over the screen that
// replaced it. Stop joins the worker with a bounded wait and logs, rather
// than hangs, if the worker is slow to exit.
package screens
