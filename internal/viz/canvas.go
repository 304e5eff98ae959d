package viz

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of braille cells, each with the color of its brightest
// lit dot.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]color.RGBA
}

func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]color.RGBA, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.RGBA, w)
	}
	c.Clear()
	return c
}

// SubWidth and SubHeight are the canvas size in dots.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set lights the dot at (x, y) in dot coordinates with col. The cell keeps
// whichever of its dot colors is brightest.
func (c *Canvas) Set(x, y int, col color.RGBA) {
	if x < 0 || y < 0 {
		return
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][cx] |= rune(pixelMap[y%4][x%2])
	if luma(col) > luma(c.Colors[row][cx]) {
		c.Colors[row][cx] = col
	}
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = color.RGBA{}
		}
	}
}

// Rasterize downsamples img onto the canvas. Each dot covers a scale×scale
// block and is lit when any pixel in the block differs from bg by more than
// threshold on some channel.
func (c *Canvas) Rasterize(img *image.RGBA, bg color.RGBA, scale int, threshold uint8) {
	c.Clear()
	if scale < 1 {
		scale = 1
	}
	b := img.Bounds()

	for sy := 0; sy < c.SubHeight(); sy++ {
		y0 := b.Min.Y + sy*scale
		if y0 >= b.Max.Y {
			break
		}
		for sx := 0; sx < c.SubWidth(); sx++ {
			x0 := b.Min.X + sx*scale
			if x0 >= b.Max.X {
				break
			}
			if col, ok := brightest(img, x0, y0, scale, bg, threshold); ok {
				c.Set(sx, sy, col)
			}
		}
	}
}

func brightest(img *image.RGBA, x0, y0, scale int, bg color.RGBA, threshold uint8) (color.RGBA, bool) {
	b := img.Bounds()
	var best color.RGBA
	found := false
	for y := y0; y < y0+scale && y < b.Max.Y; y++ {
		for x := x0; x < x0+scale && x < b.Max.X; x++ {
			p := img.RGBAAt(x, y)
			if diff(p.R, bg.R) <= threshold && diff(p.G, bg.G) <= threshold && diff(p.B, bg.B) <= threshold {
				continue
			}
			if !found || luma(p) > luma(best) {
				best = p
				found = true
			}
		}
	}
	return best, found
}

// String renders the canvas without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render renders the canvas with per-cell foreground colors.
func (c *Canvas) Render() string {
	var b strings.Builder
	for y, row := range c.Grid {
		for x, r := range row {
			if r == blank {
				b.WriteRune(r)
				continue
			}
			col := c.Colors[y][x]
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(int(col.R), int(col.G), int(col.B))))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func diff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func luma(c color.RGBA) int {
	return 299*int(c.R) + 587*int(c.G) + 114*int(c.B)
}
