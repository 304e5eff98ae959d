// Package metrics observes ensemble members and the frame loop.
package metrics

import "github.com/san-kum/chaosbloom/internal/dynamo"

type Metric interface {
	Name() string
	Observe(x dynamo.State, t float64)
	Value() float64
	Reset()
}
