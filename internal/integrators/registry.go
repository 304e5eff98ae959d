package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/chaosbloom/internal/dynamo"
)

var constructors = map[string]func() dynamo.Integrator{
	"rk4":   func() dynamo.Integrator { return NewRK4() },
	"euler": func() dynamo.Integrator { return NewEuler() },
}

// ByName returns a fresh integrator for name.
func ByName(name string) (dynamo.Integrator, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownIntegrator, name, Names())
	}
	return ctor(), nil
}

func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
