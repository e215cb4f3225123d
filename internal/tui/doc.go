// Package tui shows a running simulation in the terminal: a Bubble Tea
// program with live controls, and a plain ANSI renderer that plugs into a
// batch run as an observer.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from zero fields
//	+/-   - Steps per frame
//	↑/↓   - Move the z slice
//	P     - Cycle polarization
//	C     - Toggle voltage/current
//	W     - Toggle wavefront view
//	T     - Cycle colour themes
//	Q     - Quit
package tui
