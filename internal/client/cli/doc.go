// Package cli implements the interactive TrackVers client: a small REPL over
// the session, catalog, dashboard and tutorial stores. Commands print their
// own output and errors; the loop itself only reads, dispatches and keeps
// going.
package cli
