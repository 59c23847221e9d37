// Package viz renders a running engine in the terminal.
//
// The live view is a Bubble Tea program:
//
//   - [Model]: steps the engine in wall-clock time and draws every particle
//     of the published frame onto a [Canvas]
//   - [Canvas]: braille sub-pixel grid with a color per cell
//   - [NewMenu]: preset picker that launches a live view
//
// # Controls
//
//	Click  - Spawn an effect at the pointer
//	Drag   - Spawn a trail of effects
//	Wheel  - Rotate the spawn hue
//	Space  - Pause/Resume
//	S      - Spawn at a random position
//	?      - Show help overlay
//	Q      - Quit
package viz
