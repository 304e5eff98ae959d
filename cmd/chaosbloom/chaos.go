package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/chaosbloom/internal/analysis"
	"github.com/san-kum/chaosbloom/internal/dynamo"
	"github.com/san-kum/chaosbloom/internal/integrators"
	"github.com/san-kum/chaosbloom/internal/physics"
)

var (
	chaosSteps int
	chaosSet   map[string]string
)

func newChaosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chaos",
		Short: "estimate the Lyapunov exponent across the loudness range",
		RunE:  runChaos,
	}
	cmd.Flags().IntVar(&chaosSteps, "steps", 5000, "steps per estimate")
	cmd.Flags().StringToStringVar(&chaosSet, "set", nil, "override model parameters, e.g. --set gravity=0.3,m2=5")
	return cmd
}

func runChaos(cmd *cobra.Command, args []string) error {
	cfg, _, closeLog, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	p := cfg.Params()
	x0 := dynamo.State{math.Pi / 2, math.Pi / 2, 0, 0}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LOUDNESS\tOFFSET\tARMS\tLAMBDA\tDOUBLING (STEPS)")
	for _, frac := range []float64{0, 0.25, 0.5, 0.75, 1} {
		offset := frac * cfg.Render.MaxOffset
		sys := &physics.DoublePendulum{
			M1: p.Mass1, M2: p.Mass2,
			L1: p.Arm1 + offset, L2: p.Arm2 + offset,
			Gravity: p.Gravity,
		}
		if err := applyParams(sys, chaosSet); err != nil {
			return err
		}
		integ, err := integrators.ByName(cfg.Physics.Integrator)
		if err != nil {
			return err
		}

		lambda := analysis.LyapunovExponent(sys, integ, x0, p.Timestep, chaosSteps, 1e-8)
		doubling := "-"
		if lambda > 0 {
			doubling = fmt.Sprintf("%.0f", math.Ln2/lambda)
		}
		fmt.Fprintf(w, "%.4f\t%.1f\t%.0f/%.0f\t%.5f\t%s\n",
			frac*cfg.Audio.Ceiling, offset, sys.L1, sys.L2, lambda, doubling)
	}
	return w.Flush()
}

func applyParams(sys dynamo.Configurable, set map[string]string) error {
	for name, raw := range set {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("--set %s: %w", name, err)
		}
		if err := sys.SetParam(name, v); err != nil {
			return fmt.Errorf("--set %s: %w (known: %v)", name, err, paramNames(sys))
		}
	}
	return nil
}

func paramNames(sys dynamo.Configurable) []string {
	names := make([]string, 0)
	for k := range sys.GetParams() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
