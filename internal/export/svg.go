package export

import (
	"fmt"
	"image/color"
	"strings"
)

type point struct{ X, Y float64 }

// PathRecorder collects the tip path of every member in center-relative
// coordinates. A Break starts a new sub-path, mirroring a trail reset.
type PathRecorder struct {
	paths  [][][]point
	colors []color.RGBA
}

func NewPathRecorder(members int) *PathRecorder {
	r := &PathRecorder{
		paths:  make([][][]point, members),
		colors: make([]color.RGBA, members),
	}
	r.Break()
	return r
}

// Add appends a point for member i drawn in c.
func (r *PathRecorder) Add(i int, x, y float64, c color.RGBA) {
	sub := r.paths[i]
	sub[len(sub)-1] = append(sub[len(sub)-1], point{x, y})
	r.colors[i] = c
}

func (r *PathRecorder) Break() {
	for i := range r.paths {
		if n := len(r.paths[i]); n > 0 && len(r.paths[i][n-1]) == 0 {
			continue
		}
		r.paths[i] = append(r.paths[i], nil)
	}
}

// SVG renders every recorded path with its latest color around (cx, cy).
func (r *PathRecorder) SVG(width, height int, cx, cy float64, background string, alpha float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	for i, subs := range r.paths {
		c := r.colors[i]
		for _, pts := range subs {
			if len(pts) < 2 {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="#%02x%02x%02x" stroke-opacity="%.2f" stroke-width="1" d="M`,
				c.R, c.G, c.B, alpha))
			for j, p := range pts {
				if j == 0 {
					sb.WriteString(fmt.Sprintf("%.1f,%.1f", cx+p.X, cy+p.Y))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", cx+p.X, cy+p.Y))
				}
			}
			sb.WriteString("\"/>\n")
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
