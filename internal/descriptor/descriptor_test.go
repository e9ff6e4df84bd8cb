// Copyright Iowa State University, 2026. All rights reserved.

package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzahariev/logkpredict/internal/mol"
)

func TestNewCalculator(t *testing.T) {
	calc, err := NewCalculator()
	require.NoError(t, err)

	names := calc.Names()
	require.Len(t, names, 40)
	assert.Equal(t, "PEOE_VSA1", names[0])
	assert.Equal(t, "RingCount", names[14])
	assert.Equal(t, "TPSA", names[37])
	assert.Equal(t, "VSA_EState1", names[38])
	assert.Equal(t, "VSA_EState10", names[39])
}

func TestCompute_Deterministic(t *testing.T) {
	calc, err := NewCalculator()
	require.NoError(t, err)

	build := func() *mol.Molecule {
		m := ethanolamine(t)
		mol.Sanitize(m)
		return m
	}

	first, err := calc.Compute(build())
	require.NoError(t, err)
	require.Len(t, first, 40)

	for i := 0; i < 3; i++ {
		again, err := calc.Compute(build())
		require.NoError(t, err)
		assert.Equal(t, first, again, "vector changed on run %d", i)
	}
}

func TestCompute_RingCount(t *testing.T) {
	calc, err := NewCalculator()
	require.NoError(t, err)

	// Cyclopropane: one ring, no heteroatoms, so TPSA is zero too.
	m := &mol.Molecule{
		Atoms: []mol.Atom{
			{Symbol: "C", AtomicNum: 6},
			{Symbol: "C", AtomicNum: 6},
			{Symbol: "C", AtomicNum: 6},
		},
		Bonds: []mol.Bond{
			{Begin: 0, End: 1, Type: mol.Single},
			{Begin: 1, End: 2, Type: mol.Single},
			{Begin: 2, End: 0, Type: mol.Single},
		},
	}
	mol.Sanitize(m)

	vec, err := calc.Compute(m)
	require.NoError(t, err)
	assert.Equal(t, 1.0, vec[14], "RingCount")
	assert.Equal(t, 0.0, vec[37], "TPSA")
}

func TestCompute_TPSAPositive(t *testing.T) {
	calc, err := NewCalculator()
	require.NoError(t, err)

	m := ethanolamine(t)
	mol.Sanitize(m)

	vec, err := calc.Compute(m)
	require.NoError(t, err)
	assert.Greater(t, vec[37], 0.0, "TPSA with N and O present")
}

func TestCompute_EmptyStructure(t *testing.T) {
	calc, err := NewCalculator()
	require.NoError(t, err)

	_, err = calc.Compute(&mol.Molecule{})
	require.ErrorIs(t, err, ErrComputation)

	_, err = calc.Compute(nil)
	require.ErrorIs(t, err, ErrComputation)
}

// ethanolamine builds H2N-CH2-CH2-OH as a heavy-atom graph.
func ethanolamine(t *testing.T) *mol.Molecule {
	t.Helper()
	return &mol.Molecule{
		Atoms: []mol.Atom{
			{Symbol: "N", AtomicNum: 7},
			{Symbol: "C", AtomicNum: 6},
			{Symbol: "C", AtomicNum: 6},
			{Symbol: "O", AtomicNum: 8},
		},
		Bonds: []mol.Bond{
			{Begin: 0, End: 1, Type: mol.Single},
			{Begin: 1, End: 2, Type: mol.Single},
			{Begin: 2, End: 3, Type: mol.Single},
		},
	}
}
