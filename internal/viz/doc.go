// Package viz provides the terminal host for the bloom.
//
// The engine renders at [Scale] pixels per braille dot and every frame is
// downsampled onto a colored braille [Canvas] next to a stats panel:
//
//   - smoothed loudness meter and loudness history graph
//   - microphone status and spectrum sparkline
//   - frame counter and current arm length offset
//
// # Key Bindings
//
//	Space - Pause/Resume
//	C     - Clear trails
//	?     - Show help
//	Q     - Quit
package viz
