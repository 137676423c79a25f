package curves

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sfgen/internal/core"
)

func testRanges() map[string]Range {
	return map[string]Range{
		"beta":  {Lo: 1.3, Hi: 2},
		"sigma": {Lo: 0.00001, Hi: 0.000001}, // decreasing trajectory
	}
}

func TestGenerateValidation(t *testing.T) {
	_, err := Generate(1, testRanges(), core.NewRNG(1))
	assert.Error(t, err, "step budgets below 2 must be rejected")

	_, err = Generate(10, testRanges(), nil)
	assert.Error(t, err, "nil rng must be rejected")
}

func TestGenerateStaysInRange(t *testing.T) {
	s, err := Generate(200, testRanges(), core.NewRNG(42))
	require.NoError(t, err)

	for name, r := range testRanges() {
		lo, hi := r.Lo, r.Hi
		if lo > hi {
			lo, hi = hi, lo
		}
		for i := 0; i < s.Steps(); i++ {
			v, err := s.Value(name, i)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, lo, "%s at %d", name, i)
			assert.LessOrEqual(t, v, hi, "%s at %d", name, i)
		}
	}
}

func TestGenerateAnchorsEndpoints(t *testing.T) {
	s, err := Generate(100, testRanges(), core.NewRNG(7))
	require.NoError(t, err)

	v, err := s.Value("beta", 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.3, v, 1e-9)

	v, err = s.Value("beta", 99)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 1e-9)
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(50, testRanges(), core.NewRNG(1234))
	require.NoError(t, err)
	b, err := Generate(50, testRanges(), core.NewRNG(1234))
	require.NoError(t, err)

	for _, name := range a.Names() {
		for i := 0; i < a.Steps(); i++ {
			av, err := a.Value(name, i)
			require.NoError(t, err)
			bv, err := b.Value(name, i)
			require.NoError(t, err)
			assert.Equal(t, av, bv, "%s diverges at %d", name, i)
		}
	}
}

func TestValueBounds(t *testing.T) {
	s, err := Generate(10, testRanges(), core.NewRNG(5))
	require.NoError(t, err)

	_, err = s.Value("beta", 10)
	assert.True(t, errors.Is(err, ErrIndex), "lookup at the budget must fail with ErrIndex")

	_, err = s.Value("beta", -1)
	assert.True(t, errors.Is(err, ErrIndex))

	_, err = s.Value("nope", 0)
	assert.Error(t, err)

	_, err = s.Value("beta", 9)
	assert.NoError(t, err)
}

func TestNames(t *testing.T) {
	s, err := Generate(10, testRanges(), core.NewRNG(5))
	require.NoError(t, err)
	assert.Equal(t, []string{"beta", "sigma"}, s.Names())
}
