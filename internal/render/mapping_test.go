package render_test

import (
	"image/color"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chaosbloom/internal/render"
)

var _ = Describe("LengthOffset", func() {
	DescribeTable("maps loudness onto [0, max]",
		func(loudness, want float64) {
			Expect(render.LengthOffset(loudness, 0.05, 50)).To(BeNumerically("~", want, 1e-9))
		},
		Entry("silence", 0.0, 0.0),
		Entry("half the ceiling", 0.025, 25.0),
		Entry("at the ceiling", 0.05, 50.0),
		Entry("far above the ceiling", 1.0, 50.0),
		Entry("negative input", -0.2, 0.0),
		Entry("NaN input", math.NaN(), 0.0),
	)

	It("is zero for a degenerate ceiling", func() {
		Expect(render.LengthOffset(0.5, 0, 50)).To(BeZero())
	})
})

var _ = Describe("Hue", func() {
	DescribeTable("spreads members around the wheel and drifts with the frame",
		func(i, frame, n int, want float64) {
			Expect(render.Hue(i, frame, n, 0.2)).To(BeNumerically("~", want, 1e-9))
		},
		Entry("first member on the first frame", 0, 1, 30, 0.2),
		Entry("opposite member", 15, 1, 30, 180.2),
		Entry("wraps past 360", 29, 1800, 30, 348.0),
		Entry("single member", 0, 10, 1, 2.0),
	)

	It("produces saturated primaries", func() {
		Expect(render.HueColor(0)).To(Equal(color.RGBA{255, 0, 0, 255}))
		Expect(render.HueColor(120)).To(Equal(color.RGBA{0, 255, 0, 255}))
		Expect(render.HueColor(240)).To(Equal(color.RGBA{0, 0, 255, 255}))
	})
})
