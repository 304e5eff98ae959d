// Package render turns loudness into a composited frame: it scales the arm
// lengths, steps the ensemble, extends each member's trail and places a dot
// on every tip.
package render
