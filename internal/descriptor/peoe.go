// Copyright Iowa State University, 2026. All rights reserved.

package descriptor

import (
	"math"

	"github.com/fzahariev/logkpredict/internal/mol"
)

// Gasteiger PEOE electronegativity parameters a, b, c of
// chi(q) = a + b*q + c*q^2, keyed by element and hybridization.
type peoeParams struct{ a, b, c float64 }

var peoeTable = map[int]map[mol.Hybridization]peoeParams{
	1: {mol.HybridUnset: {7.17, 6.24, -0.56}},
	6: {
		mol.SP3: {7.98, 9.18, 1.88},
		mol.SP2: {8.79, 9.32, 1.51},
		mol.SP:  {10.39, 9.45, 0.73},
	},
	7: {
		mol.SP3: {11.54, 10.82, 1.36},
		mol.SP2: {12.87, 11.15, 0.85},
		mol.SP:  {15.68, 11.70, -0.27},
	},
	8: {
		mol.SP3: {14.18, 12.92, 1.39},
		mol.SP2: {17.07, 13.79, 0.47},
	},
	9:  {mol.SP3: {14.66, 13.85, 2.31}},
	15: {mol.SP3: {8.90, 8.24, 0.96}},
	16: {mol.SP3: {10.14, 9.13, 1.38}},
	17: {mol.SP3: {11.00, 9.69, 1.35}},
	35: {mol.SP3: {10.08, 8.47, 1.16}},
	53: {mol.SP3: {9.90, 7.96, 0.96}},
}

const (
	peoeIterations = 12
	peoeDamping    = 0.5
	// Cation electronegativity of hydrogen, the special-cased normalizer.
	chiPlusH = 20.02
)

// gasteigerCharges iterates partial equalization of orbital
// electronegativity over the sigma framework. Atoms without parameters
// (metals) keep their formal charge and do not exchange.
func gasteigerCharges(m *mol.Molecule) []float64 {
	n := len(m.Atoms)
	charges := make([]float64, n)
	hCharges := make([]float64, n) // implicit hydrogen pool per heavy atom
	params := make([]*peoeParams, n)

	for i, a := range m.Atoms {
		charges[i] = float64(a.Charge)
		params[i] = lookupPeoe(a.AtomicNum, a.Hybrid)
	}

	hp := lookupPeoe(1, mol.HybridUnset)
	damp := 1.0

	for iter := 0; iter < peoeIterations; iter++ {
		damp *= peoeDamping

		chi := make([]float64, n)
		chiPlus := make([]float64, n)
		for i := range m.Atoms {
			p := params[i]
			if p == nil {
				continue
			}
			q := charges[i]
			chi[i] = p.a + p.b*q + p.c*q*q
			chiPlus[i] = p.a + p.b + p.c
			if m.Atoms[i].AtomicNum == 1 {
				chiPlus[i] = chiPlusH
			}
		}

		delta := make([]float64, n)
		for _, b := range m.Bonds {
			i, j := b.Begin, b.End
			if params[i] == nil || params[j] == nil {
				continue
			}
			var dq float64
			if chi[j] > chi[i] {
				dq = (chi[j] - chi[i]) / chiPlus[i]
			} else {
				dq = (chi[j] - chi[i]) / chiPlus[j]
			}
			delta[i] += dq * damp
			delta[j] -= dq * damp
		}

		// Implicit hydrogens exchange with their heavy atom.
		for i, a := range m.Atoms {
			if params[i] == nil || a.NumHs == 0 {
				continue
			}
			qh := hCharges[i] / float64(a.NumHs)
			chiH := hp.a + hp.b*qh + hp.c*qh*qh
			var dq float64
			if chiH > chi[i] {
				dq = (chiH - chi[i]) / chiPlus[i]
			} else {
				dq = (chiH - chi[i]) / chiPlusH
			}
			delta[i] += dq * damp * float64(a.NumHs)
			hCharges[i] -= dq * damp * float64(a.NumHs)
		}

		moved := 0.0
		for i := range delta {
			charges[i] += delta[i]
			moved += math.Abs(delta[i])
		}
		if moved < 1e-8 {
			break
		}
	}

	return charges
}

func lookupPeoe(z int, h mol.Hybridization) *peoeParams {
	byHyb, ok := peoeTable[z]
	if !ok {
		return nil
	}
	if p, ok := byHyb[h]; ok {
		return &p
	}
	// Fall back to the sp3 row, then to any row, so sp2 sulfur and
	// friends still participate.
	if p, ok := byHyb[mol.SP3]; ok {
		return &p
	}
	for _, p := range byHyb {
		return &p
	}
	return nil
}
