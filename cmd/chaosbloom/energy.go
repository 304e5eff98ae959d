package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/chaosbloom/internal/config"
	"github.com/san-kum/chaosbloom/internal/ensemble"
	"github.com/san-kum/chaosbloom/internal/integrators"
	"github.com/san-kum/chaosbloom/internal/metrics"
	"github.com/san-kum/chaosbloom/internal/physics"
)

// stableOmega is the angular velocity, in radians per step, above which a
// member is considered to be spinning out.
const stableOmega = 1.0

var (
	energySteps     int
	energyTolerance float64
)

func newEnergyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "energy",
		Short: "compare integrator energy drift on a single undamped pendulum",
		RunE:  runEnergy,
	}
	cmd.Flags().IntVar(&energySteps, "steps", 10000, "number of steps")
	cmd.Flags().Float64Var(&energyTolerance, "tolerance", 0.01, "allowed drift as a fraction of the energy scale")
	return cmd
}

type driftResult struct {
	energy    *metrics.EnergyDrift
	stability *metrics.Stability
}

// drift runs one undamped, unjittered member at the base arm lengths.
func drift(cfg *config.Config, name string, steps int) (driftResult, error) {
	integ, err := integrators.ByName(name)
	if err != nil {
		return driftResult{}, err
	}

	p := cfg.Params()
	p.Instances = 1
	p.Damping = 1.0
	p.Jitter = 0
	chain, err := ensemble.New(p, integ, nil)
	if err != nil {
		return driftResult{}, err
	}

	sys := &physics.DoublePendulum{M1: p.Mass1, M2: p.Mass2, L1: p.Arm1, L2: p.Arm2, Gravity: p.Gravity}
	res := driftResult{
		energy:    metrics.NewEnergyDrift(sys, chain.EnergyScale()),
		stability: metrics.NewStability(stableOmega),
	}
	observers := []metrics.Metric{res.energy, res.stability}

	for _, m := range observers {
		m.Observe(chain.Member(0).State, 0)
	}
	for i := 1; i <= steps; i++ {
		chain.Step(0)
		for _, m := range observers {
			m.Observe(chain.Member(0).State, float64(i)*p.Timestep)
		}
	}
	return res, nil
}

func runEnergy(cmd *cobra.Command, args []string) error {
	cfg, _, closeLog, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer closeLog()

	names := integrators.Names()
	results := make(map[string]driftResult, len(names))
	for _, name := range names {
		m, err := drift(cfg, name, energySteps)
		if err != nil {
			return err
		}
		results[name] = m
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tINITIAL\tFINAL\tMAX |DRIFT|\tOF SCALE\tSTABLE\tRESULT")
	for _, name := range names {
		m := results[name].energy
		verdict := "ok"
		if m.Value() > energyTolerance {
			verdict = "exceeds tolerance"
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4g\t%.3f%%\t%.1f%%\t%s\n",
			name, m.Initial(), m.Current(), m.MaxAbs(), m.Value()*100, results[name].stability.Value()*100, verdict)
	}
	w.Flush()
	fmt.Println()

	for _, name := range names {
		data := downsample(results[name].energy.Series(), 80)
		if !finiteSeries(data) {
			fmt.Printf("%s: energy diverged, nothing to plot\n\n", name)
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("energy drift (%s)", name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = data[i*len(data)/n]
	}
	return out
}

func finiteSeries(data []float64) bool {
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return len(data) > 1
}
