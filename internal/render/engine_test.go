package render_test

import (
	"image"
	"image/color"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chaosbloom/internal/render"
)

type call struct {
	kind string
	x, y float64
}

// recordingSurface keeps the order of draw calls.
type recordingSurface struct {
	calls []call
	last  *image.RGBA
}

func (s *recordingSurface) Present(trail *image.RGBA) {
	s.calls = append(s.calls, call{kind: "present"})
	s.last = trail
}

func (s *recordingSurface) FillCircle(x, y, r float64, c color.RGBA) {
	s.calls = append(s.calls, call{kind: "circle", x: x, y: y})
}

func constant(v float64) render.Loudness {
	return render.LoudnessFunc(func() float64 { return v })
}

func newEngine(w, h int, src render.Loudness) *render.Engine {
	opts := render.DefaultOptions()
	opts.Seed = 42
	e, err := render.NewEngine(opts, w, h, src, nil)
	Expect(err).NotTo(HaveOccurred())
	return e
}

var _ = Describe("Engine", func() {
	var black = color.RGBA{A: 255}

	It("rejects an unknown integrator", func() {
		opts := render.DefaultOptions()
		opts.Integrator = "leapfrog"
		_, err := render.NewEngine(opts, 100, 100, nil, nil)
		Expect(err).To(HaveOccurred())
	})

	It("rejects invalid ensemble parameters", func() {
		opts := render.DefaultOptions()
		opts.Params.Instances = 0
		_, err := render.NewEngine(opts, 100, 100, nil, nil)
		Expect(err).To(HaveOccurred())
	})

	It("counts frames from one", func() {
		e := newEngine(200, 200, nil)
		Expect(e.Frame()).To(Equal(0))
		Expect(e.Tick().Frame).To(Equal(1))
		Expect(e.Tick().Frame).To(Equal(2))
	})

	It("draws no segments on the first frame but records every point", func() {
		e := newEngine(400, 300, constant(0))

		stats := e.Tick()
		Expect(stats.Segments).To(BeZero())
		for _, m := range e.Chain().Members() {
			Expect(m.HasLast).To(BeTrue())
		}

		Expect(e.Tick().Segments).To(Equal(e.Chain().Len()))
	})

	It("lengthens the arms with loudness", func() {
		e := newEngine(400, 300, constant(0.05))
		stats := e.Tick()
		Expect(stats.Offset).To(BeNumerically("~", 50, 1e-9))

		r1, r2 := e.Chain().Lengths()
		Expect(r1).To(BeNumerically("~", 200, 1e-9))
		Expect(r2).To(BeNumerically("~", 200, 1e-9))
	})

	It("treats a missing loudness source as silence", func() {
		e := newEngine(400, 300, nil)
		Expect(e.Tick().Offset).To(BeZero())
	})

	It("presents the trail before drawing one dot per member", func() {
		e := newEngine(400, 300, constant(0.01))
		dst := &recordingSurface{}
		e.TickTo(dst)

		n := e.Chain().Len()
		Expect(dst.calls).To(HaveLen(n + 1))
		Expect(dst.calls[0].kind).To(Equal("present"))

		cx, cy := e.View().Center()
		for i, m := range e.Chain().Members() {
			c := dst.calls[i+1]
			Expect(c.kind).To(Equal("circle"))
			Expect(c.x).To(BeNumerically("~", cx+m.Position.X, 1e-9))
			Expect(c.y).To(BeNumerically("~", cy+m.Position.Y, 1e-9))
		}
	})

	It("never darkens the trail between resizes", func() {
		e := newEngine(320, 240, constant(0.03))
		prev := make([]uint8, len(e.View().Trail().Snapshot().Pix))

		for i := 0; i < 120; i++ {
			copy(prev, e.View().Trail().Snapshot().Pix)
			e.Tick()
			decreased := -1
			for j, v := range e.View().Trail().Snapshot().Pix {
				if v < prev[j] {
					decreased = j
					break
				}
			}
			Expect(decreased).To(Equal(-1), "tick %d darkened the trail", i)
		}
	})

	Describe("Resize", func() {
		It("wipes the trail and keeps the physics", func() {
			e := newEngine(320, 240, constant(0.02))
			for i := 0; i < 50; i++ {
				e.Tick()
			}

			before := make([][]float64, e.Chain().Len())
			for i := range before {
				before[i] = e.Chain().Member(i).State
			}

			e.Resize(640, 480)

			trail := e.View().Trail()
			Expect(trail.Bounds().Dx()).To(Equal(640))
			Expect(trail.Bounds().Dy()).To(Equal(480))
			for y := 0; y < 480; y += 7 {
				for x := 0; x < 640; x += 7 {
					Expect(trail.At(x, y)).To(Equal(black))
				}
			}
			for i := range before {
				Expect([]float64(e.Chain().Member(i).State)).To(Equal(before[i]))
			}
		})

		It("suppresses segments on the first frame afterwards", func() {
			e := newEngine(320, 240, constant(0.02))
			e.Tick()
			Expect(e.Tick().Segments).To(Equal(e.Chain().Len()))

			e.Resize(300, 300)
			Expect(e.Tick().Segments).To(BeZero())
			Expect(e.Tick().Segments).To(Equal(e.Chain().Len()))
		})

		It("is safe against concurrent ticks", func() {
			e := newEngine(200, 200, constant(0.02))

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					e.Resize(200+i, 150+i)
				}
			}()
			for i := 0; i < 200; i++ {
				e.Tick()
			}
			wg.Wait()

			Expect(e.Chain().Check()).To(Succeed())
		})
	})

	It("tolerates a zero-sized viewport", func() {
		e := newEngine(0, 0, constant(0.02))
		dst := &recordingSurface{}
		Expect(func() {
			e.TickTo(dst)
			e.TickTo(dst)
		}).NotTo(Panic())
		Expect(dst.last.Bounds().Empty()).To(BeTrue())
	})

	It("renders identical frames from the same seed", func() {
		a := newEngine(160, 120, constant(0.04))
		b := newEngine(160, 120, constant(0.04))
		for i := 0; i < 100; i++ {
			a.Tick()
			b.Tick()
		}
		Expect(a.Surface().Image().Pix).To(Equal(b.Surface().Image().Pix))
	})
})

var _ = Describe("ImageSurface", func() {
	It("copies the trail and paints dots on top", func() {
		trail := image.NewRGBA(image.Rect(0, 0, 20, 20))
		trail.SetRGBA(0, 0, color.RGBA{9, 9, 9, 255})

		s := render.NewImageSurface()
		s.Present(trail)
		s.FillCircle(10, 10, 4, color.RGBA{255, 0, 0, 255})

		Expect(s.Image().RGBAAt(0, 0)).To(Equal(color.RGBA{9, 9, 9, 255}))
		Expect(s.Image().RGBAAt(10, 10)).To(Equal(color.RGBA{255, 0, 0, 255}))
		Expect(s.Image().RGBAAt(19, 19)).To(Equal(color.RGBA{}))
		// the trail itself is untouched by dots
		Expect(trail.RGBAAt(10, 10)).To(Equal(color.RGBA{}))
	})

	It("clips dots at the edges", func() {
		s := render.NewImageSurface()
		s.Present(image.NewRGBA(image.Rect(0, 0, 5, 5)))
		Expect(func() { s.FillCircle(-2, 6, 4, color.RGBA{A: 255}) }).NotTo(Panic())
	})
})

var _ = Describe("RedrawTo", func() {
	It("repeats the last frame without advancing", func() {
		e := newEngine(200, 150, constant(0.01))
		dst := &recordingSurface{}

		e.RedrawTo(dst)
		Expect(dst.calls).To(BeEmpty())

		e.Tick()
		pos := e.Chain().Member(0).Position
		e.RedrawTo(dst)

		Expect(e.Frame()).To(Equal(1))
		Expect(dst.calls).To(HaveLen(e.Chain().Len() + 1))
		Expect(e.Chain().Member(0).Position).To(Equal(pos))
	})
})
