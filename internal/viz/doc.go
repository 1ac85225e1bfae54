// Package viz provides terminal rendering for polynomials and root searches.
//
//   - [Canvas]: braille pixel canvas, 2x4 dots per character
//   - [Plot]: world-coordinate plot of a polynomial built on canvases
//   - [Explorer]: Bubble Tea model that steps Newton-Raphson interactively
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	n, Space - Next Newton iteration
//	A        - Toggle autoplay
//	←/→      - Move the starting guess and restart
//	R        - Restart from the current starting guess
//	D        - Toggle derivative overlay
//	T        - Cycle color themes
//	Q        - Quit
package viz
