// Copyright Iowa State University, 2026. All rights reserved.

package descriptor

import (
	"math"

	"github.com/fzahariev/logkpredict/internal/mol"
)

// Van der Waals radii (angstroms) for the labute surface-area model.
// Elements missing from the table fall back to vdwDefault.
var vdwRadii = map[int]float64{
	1: 1.20, 5: 2.00, 6: 1.70, 7: 1.60, 8: 1.55, 9: 1.50,
	14: 2.10, 15: 1.95, 16: 1.80, 17: 1.80, 35: 1.90, 53: 2.10,
	3: 1.82, 11: 2.27, 12: 1.73, 19: 2.75, 20: 2.45,
}

const vdwDefault = 2.0

// bondLengthOffset shortens the ideal bond length per bond type when
// estimating buried surface. Dative bonds behave like singles.
func bondLengthOffset(t mol.BondType) float64 {
	switch t {
	case mol.Double:
		return 0.2
	case mol.Triple:
		return 0.3
	case mol.Aromatic:
		return 0.2
	default:
		return 0.1
	}
}

// vsaContributions computes the approximate accessible van der Waals
// surface area of every atom (labute's spherical-cap model), implicit
// hydrogens folded into their heavy atom.
func vsaContributions(m *mol.Molecule) []float64 {
	out := make([]float64, len(m.Atoms))
	for i, a := range m.Atoms {
		ri := radius(a.AtomicNum)
		area := 4 * math.Pi * ri * ri

		for _, b := range m.Bonds {
			if b.Begin != i && b.End != i {
				continue
			}
			j := b.Other(i)
			area -= buriedCap(ri, radius(m.Atoms[j].AtomicNum), bondLengthOffset(b.Type))
		}
		// Implicit hydrogens bury surface like explicit single bonds.
		rh := vdwRadii[1]
		for k := 0; k < a.NumHs; k++ {
			area -= buriedCap(ri, rh, 0.1)
		}

		if area < 0 {
			area = 0
		}
		out[i] = area
	}
	return out
}

// buriedCap returns the spherical-cap area of the ri sphere hidden by a
// neighbor of radius rj at the ideal bond distance.
func buriedCap(ri, rj, offset float64) float64 {
	d := ri + rj - offset
	lo := math.Abs(ri - rj)
	if d < lo {
		d = lo
	}
	if d > ri+rj {
		d = ri + rj
	}
	if d == 0 {
		return 0
	}
	h := ri - (d*d+ri*ri-rj*rj)/(2*d)
	if h < 0 {
		h = 0
	}
	if h > 2*ri {
		h = 2 * ri
	}
	return 2 * math.Pi * ri * h
}

func radius(z int) float64 {
	if r, ok := vdwRadii[z]; ok {
		return r
	}
	return vdwDefault
}

// binSums distributes per-atom values into bins of a companion property:
// bin k collects values[i] where bounds[k-1] < props[i] <= bounds[k], with
// the open-ended bins at either extreme. len(result) == len(bounds)+1.
func binSums(values, props, bounds []float64) []float64 {
	out := make([]float64, len(bounds)+1)
	for i, p := range props {
		k := 0
		for k < len(bounds) && p > bounds[k] {
			k++
		}
		out[k] += values[i]
	}
	return out
}

// Bin boundaries pinned alongside the catalog: partial charge bins for
// PEOE_VSA, molar refractivity bins for SMR_VSA, logP bins for SlogP_VSA,
// and surface-area bins for VSA_EState.
var (
	peoeBounds  = []float64{-0.30, -0.25, -0.20, -0.15, -0.10, -0.05, 0, 0.05, 0.10, 0.15, 0.20, 0.25, 0.30}
	smrBounds   = []float64{1.29, 1.82, 2.24, 2.45, 2.75, 3.05, 3.63, 3.80, 4.00}
	slogpBounds = []float64{-0.40, -0.20, 0, 0.10, 0.15, 0.20, 0.25, 0.30, 0.40, 0.50, 0.60}
	vsaBounds   = []float64{4.78, 5.00, 5.41, 5.74, 6.00, 6.07, 6.45, 7.00, 11.00}
)
