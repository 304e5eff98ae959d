// Package export writes rendered frames and tip paths to disk: PNG stills,
// animated GIFs and SVG path drawings.
package export
