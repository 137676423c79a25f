// Package curves generates smooth per-iteration parameter trajectories
// over a fixed step budget. Each trajectory is a natural cubic spline
// fitted through a handful of random knots inside the parameter's range,
// sampled once per iteration and clamped back into the range.
package curves

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"

	"sfgen/internal/core"
)

// ErrIndex is returned for lookups at or beyond the step budget.
var ErrIndex = errors.New("curves: iteration out of range")

// Range bounds a parameter trajectory. Lo is the value anchored at
// iteration 0 and Hi the value anchored at the final iteration; the
// spline wanders between the two in between.
type Range struct {
	Lo float64
	Hi float64
}

// knotCount is the number of spline knots per trajectory, including the
// two anchored endpoints.
const knotCount = 5

// Set holds one sampled trajectory per named parameter.
type Set struct {
	steps  int
	values map[string][]float64
}

// Generate builds a Set for every named range over the given number of
// steps. Trajectories are deterministic for a given RNG. Ranges are
// consumed in sorted name order so the RNG draw sequence is stable.
func Generate(steps int, ranges map[string]Range, rng *core.RNG) (*Set, error) {
	if steps < 2 {
		return nil, fmt.Errorf("curves: need at least 2 steps, got %d", steps)
	}
	if rng == nil {
		return nil, errors.New("curves: nil rng")
	}

	names := make([]string, 0, len(ranges))
	for name := range ranges {
		names = append(names, name)
	}
	sort.Strings(names)

	s := &Set{steps: steps, values: make(map[string][]float64, len(ranges))}
	for _, name := range names {
		r := ranges[name]
		samples, err := sampleTrajectory(steps, r, rng)
		if err != nil {
			return nil, fmt.Errorf("curves: %s: %w", name, err)
		}
		s.values[name] = samples
	}
	return s, nil
}

func sampleTrajectory(steps int, r Range, rng *core.RNG) ([]float64, error) {
	lo, hi := math.Min(r.Lo, r.Hi), math.Max(r.Lo, r.Hi)

	xs := make([]float64, knotCount)
	ys := make([]float64, knotCount)
	span := float64(steps-1) / float64(knotCount-1)
	for i := range xs {
		xs[i] = span * float64(i)
		ys[i] = rng.UniformRange(lo, hi)
	}
	// Anchor the endpoints so the trajectory starts at Lo and ends at Hi.
	ys[0] = r.Lo
	ys[knotCount-1] = r.Hi

	var nc interp.NaturalCubic
	if err := nc.Fit(xs, ys); err != nil {
		return nil, err
	}

	samples := make([]float64, steps)
	for i := range samples {
		samples[i] = clamp(nc.Predict(float64(i)), lo, hi)
	}
	return samples, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Steps returns the step budget the set was generated for.
func (s *Set) Steps() int { return s.steps }

// Names lists the parameters the set carries, in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Value returns the trajectory value of the named parameter at the given
// iteration. Lookups at or beyond the step budget fail with ErrIndex.
func (s *Set) Value(name string, iteration int) (float64, error) {
	traj, ok := s.values[name]
	if !ok {
		return 0, fmt.Errorf("curves: unknown parameter %q", name)
	}
	if iteration < 0 || iteration >= s.steps {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrIndex, iteration, s.steps)
	}
	return traj[iteration], nil
}
