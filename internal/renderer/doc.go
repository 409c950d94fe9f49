// Package renderer draws the piano roll into a character backend.
//
// Each frame is drawn from scratch in layers:
//
//	grid      beat ticks and bar lines
//	notes     one bracketed run of cells per note
//	selection marquee or fixed selection border
//	status    the bottom line
//
// The backend is responsible for sending only changed cells to the
// terminal.
package renderer
