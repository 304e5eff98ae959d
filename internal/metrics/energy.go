package metrics

import (
	"math"

	"github.com/san-kum/chaosbloom/internal/dynamo"
)

// EnergyDrift tracks how far a conserved quantity wanders from its first
// observed value.
type EnergyDrift struct {
	name          string
	sys           dynamo.Hamiltonian
	scale         float64
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
	series        []float64
}

// NewEnergyDrift measures drift of sys. Value reports the largest absolute
// drift divided by scale; a non-positive scale reports it unscaled.
func NewEnergyDrift(sys dynamo.Hamiltonian, scale float64) *EnergyDrift {
	return &EnergyDrift{
		name:  "energy_drift",
		sys:   sys,
		scale: scale,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	energy := e.sys.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.currentEnergy = energy
	e.samples++

	drift := math.Abs(energy - e.initialEnergy)
	if math.IsNaN(drift) {
		drift = math.Inf(1)
	}
	e.maxDrift = math.Max(e.maxDrift, drift)
	e.series = append(e.series, energy-e.initialEnergy)
}

func (e *EnergyDrift) Value() float64 {
	if e.scale <= 0 {
		return e.maxDrift
	}
	return e.maxDrift / e.scale
}

func (e *EnergyDrift) Initial() float64 { return e.initialEnergy }

func (e *EnergyDrift) Current() float64 { return e.currentEnergy }

func (e *EnergyDrift) MaxAbs() float64 { return e.maxDrift }

// Series is the signed drift of every observation, oldest first.
func (e *EnergyDrift) Series() []float64 { return e.series }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
	e.series = nil
}
