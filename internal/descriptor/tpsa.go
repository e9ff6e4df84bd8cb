// Copyright Iowa State University, 2026. All rights reserved.

package descriptor

import "github.com/fzahariev/logkpredict/internal/mol"

// tpsa sums Ertl polar-surface-area fragment contributions over nitrogen
// and oxygen atoms. Donor atoms bound to a metal keep their contribution:
// the dative bond is ignored in the fragment match, matching the sigma
// environment before conversion.
func tpsa(m *mol.Molecule) float64 {
	total := 0.0
	for i, a := range m.Atoms {
		switch a.AtomicNum {
		case 7:
			total += nitrogenPSA(m, i)
		case 8:
			total += oxygenPSA(m, i)
		}
	}
	return total
}

func bondProfile(m *mol.Molecule, idx int) (singles, doubles, triples int) {
	for _, b := range m.Bonds {
		if b.Begin != idx && b.End != idx {
			continue
		}
		switch b.Type {
		case mol.Double:
			doubles++
		case mol.Triple:
			triples++
		case mol.Aromatic:
			// handled through the aromatic flag
		case mol.Dative:
			// ignored: the donor's sigma environment is unchanged
		default:
			singles++
		}
	}
	return singles, doubles, triples
}

func nitrogenPSA(m *mol.Molecule, idx int) float64 {
	a := m.Atoms[idx]
	s, d, t := bondProfile(m, idx)

	if a.IsAromat {
		switch {
		case a.Charge > 0:
			if a.NumHs > 0 {
				return 14.14
			}
			return 4.10
		case a.NumHs > 0:
			return 15.79
		case s > 0:
			return 4.93 // substituted aromatic n
		default:
			return 12.89
		}
	}

	if a.Charge > 0 {
		switch {
		case a.NumHs >= 3:
			return 27.64
		case a.NumHs == 2:
			if d > 0 {
				return 25.59
			}
			return 16.61
		case a.NumHs == 1:
			if d > 0 {
				return 13.97
			}
			return 4.44
		case t > 0:
			return 4.36
		case d > 0:
			return 3.01
		default:
			return 0.00
		}
	}

	switch {
	case a.NumHs >= 2:
		return 26.02
	case a.NumHs == 1:
		if d > 0 {
			return 23.85
		}
		if a.RingSize3 {
			return 21.94
		}
		return 12.03
	case t > 0:
		return 23.79
	case d > 0 && s > 0 && d == 1:
		return 12.36
	case d >= 2:
		return 11.68
	case a.RingSize3:
		return 3.01
	default:
		return 3.24
	}
}

func oxygenPSA(m *mol.Molecule, idx int) float64 {
	a := m.Atoms[idx]
	_, d, _ := bondProfile(m, idx)

	switch {
	case a.IsAromat:
		return 13.14
	case a.Charge < 0:
		return 23.06
	case a.NumHs > 0:
		return 20.23
	case d > 0:
		return 17.07
	case a.RingSize3:
		return 12.53
	default:
		return 9.23
	}
}
