package dynamo

import "errors"

// Domain errors for simulation and configuration.
var (
	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownParam is returned by SetParam for names a system does not expose.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrUnknownIntegrator is returned when an integrator name has no implementation.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrAudioUnavailable indicates the capture device could not be opened or started.
	// It is logged, never propagated into the frame loop.
	ErrAudioUnavailable = errors.New("dynamo: audio capture unavailable")
)

// StepError wraps an error with the tick and member it occurred on.
type StepError struct {
	Tick    int
	Member  int
	Wrapped error
}

func (e *StepError) Error() string {
	return e.Wrapped.Error()
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
