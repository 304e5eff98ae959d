package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/chaosbloom/internal/render"
)

var benchFrames int

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "measure frames per second for several ensemble sizes",
		RunE:  runBench,
	}
	cmd.Flags().IntVar(&benchFrames, "frames", 300, "frames per size")
	return cmd
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, logger, closeLog, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	sizes := []int{1, 10, 30, 100, 300}
	loudness := render.LoudnessFunc(func() float64 { return cfg.Audio.Ceiling / 2 })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INSTANCES\tFRAMES\tTIME\tFRAMES/SEC\tMS/FRAME")

	for _, n := range sizes {
		opts, err := cfg.EngineOptions()
		if err != nil {
			return err
		}
		opts.Params.Instances = n
		opts.Seed = 1

		engine, err := render.NewEngine(opts, cfg.Window.Width, cfg.Window.Height, loudness, logger)
		if err != nil {
			return err
		}

		start := time.Now()
		for i := 0; i < benchFrames; i++ {
			engine.Tick()
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.3f\n",
			n,
			benchFrames,
			elapsed.Round(time.Millisecond),
			float64(benchFrames)/elapsed.Seconds(),
			float64(elapsed.Microseconds())/1000/float64(benchFrames),
		)
	}
	return w.Flush()
}
