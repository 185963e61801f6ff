// Package viz provides the terminal side of bodelab.
//
// The package implements a slider app using the Bubble Tea framework:
//
//   - [App]: one slider per transfer-function parameter, re-evaluated on
//     every change
//   - [Canvas]: Braille-based pixel canvas with data [Axes] for the Bode
//     and pole panels
//   - [ASCIIBode]: static asciigraph rendering for non-interactive output
//
// # Key Bindings
//
//	j/k    - Select slider
//	h/l    - Step down/up (H/L for ten steps)
//	Enter  - Type a value
//	Tab    - Cycle shape
//	P      - Next preset
//	R      - Reset
//	T      - Cycle color themes
//	Q      - Quit
package viz
