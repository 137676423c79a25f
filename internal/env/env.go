// Package env holds the physical constants that drive crystal growth and
// advances them per iteration from a precomputed curve set.
package env

import (
	"errors"
	"fmt"

	"sfgen/internal/core"
	"sfgen/internal/curves"
)

// ErrCurveIndex is reported when an environment refresh indexes its curve
// source at or beyond the curve step budget.
var ErrCurveIndex = curves.ErrIndex

// Parameter names used by the curve source. The set is closed: the
// background density gamma is drawn once per run and never curve-driven.
const (
	ParamBeta    = "beta"
	ParamTheta   = "theta"
	ParamAlpha   = "alpha"
	ParamKappa   = "kappa"
	ParamMu      = "mu"
	ParamUpsilon = "upsilon"
	ParamSigma   = "sigma"
)

// Environment carries the current scalar constants of the growth model.
//
//	Beta    — attachment threshold for tips (1–2 attached neighbors)
//	Theta   — diffusion-sum threshold for concavities (3 neighbors)
//	Alpha   — boundary-mass threshold for concavities (3 neighbors)
//	Kappa   — freezing rate (diffusive → crystal fraction)
//	Mu      — boundary-mass melting rate
//	Upsilon — crystal-mass melting rate
//	Sigma   — multiplicative noise amplitude
//	Gamma   — background diffusive density, fixed per run
type Environment struct {
	Beta    float64
	Theta   float64
	Alpha   float64
	Kappa   float64
	Mu      float64
	Upsilon float64
	Sigma   float64
	Gamma   float64

	curveSet *curves.Set
	factory  values
}

type values struct {
	Beta, Theta, Alpha, Kappa, Mu, Upsilon, Sigma, Gamma float64
}

// Default returns an Environment with the canonical fixed constants and
// no curve source; Step is a no-op on it.
func Default() Environment {
	e := Environment{
		Beta:    1.3,
		Theta:   0.025,
		Alpha:   0.08,
		Kappa:   0.003,
		Mu:      0.07,
		Upsilon: 0.00005,
		Sigma:   0.00001,
		Gamma:   0.5,
	}
	e.factory = e.snapshot()
	return e
}

// CurveRanges returns the canonical trajectory range for each curve-driven
// parameter.
func CurveRanges() map[string]curves.Range {
	return map[string]curves.Range{
		ParamBeta:    {Lo: 1.3, Hi: 2},
		ParamTheta:   {Lo: 0.01, Hi: 0.04},
		ParamAlpha:   {Lo: 0.02, Hi: 0.1},
		ParamKappa:   {Lo: 0.001, Hi: 0.01},
		ParamMu:      {Lo: 0.01, Hi: 0.1},
		ParamUpsilon: {Lo: 0.00001, Hi: 0.0001},
		ParamSigma:   {Lo: 0.00001, Hi: 0.000001},
	}
}

// Build generates curve trajectories for every curve-driven parameter over
// the given step budget, reads their iteration-0 values as the initial
// environment, and draws gamma once uniformly from [minGamma, maxGamma).
func Build(steps int, minGamma, maxGamma float64, rng *core.RNG) (*Environment, error) {
	if rng == nil {
		return nil, errors.New("env: nil rng")
	}
	cs, err := curves.Generate(steps, CurveRanges(), rng)
	if err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	e := &Environment{curveSet: cs}
	if err := e.apply(0); err != nil {
		return nil, err
	}
	e.Gamma = rng.UniformRange(minGamma, maxGamma)
	e.factory = e.snapshot()
	return e, nil
}

// Step rewrites all curve-driven parameter values from the curve source at
// the given iteration. Without a curve source it is a no-op. It fails with
// an error wrapping ErrCurveIndex when iteration is out of the curve's
// step budget; callers must keep max iteration counts within it.
func (e *Environment) Step(iteration int) error {
	if e.curveSet == nil {
		return nil
	}
	return e.apply(iteration)
}

// Steps returns the curve step budget, or 0 when no curve source is set.
func (e *Environment) Steps() int {
	if e.curveSet == nil {
		return 0
	}
	return e.curveSet.Steps()
}

// Factory restores and returns a copy of the environment's initial values.
func (e *Environment) Factory() Environment {
	restored := Environment{
		Beta:    e.factory.Beta,
		Theta:   e.factory.Theta,
		Alpha:   e.factory.Alpha,
		Kappa:   e.factory.Kappa,
		Mu:      e.factory.Mu,
		Upsilon: e.factory.Upsilon,
		Sigma:   e.factory.Sigma,
		Gamma:   e.factory.Gamma,
		curveSet: e.curveSet,
		factory:  e.factory,
	}
	return restored
}

func (e *Environment) snapshot() values {
	return values{
		Beta: e.Beta, Theta: e.Theta, Alpha: e.Alpha, Kappa: e.Kappa,
		Mu: e.Mu, Upsilon: e.Upsilon, Sigma: e.Sigma, Gamma: e.Gamma,
	}
}

func (e *Environment) apply(iteration int) error {
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{ParamBeta, &e.Beta},
		{ParamTheta, &e.Theta},
		{ParamAlpha, &e.Alpha},
		{ParamKappa, &e.Kappa},
		{ParamMu, &e.Mu},
		{ParamUpsilon, &e.Upsilon},
		{ParamSigma, &e.Sigma},
	} {
		v, err := e.curveSet.Value(p.name, iteration)
		if err != nil {
			return fmt.Errorf("env: refresh %s: %w", p.name, err)
		}
		*p.dst = v
	}
	return nil
}
