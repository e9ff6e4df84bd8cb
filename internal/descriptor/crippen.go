// Copyright Iowa State University, 2026. All rights reserved.

package descriptor

import "github.com/fzahariev/logkpredict/internal/mol"

// Wildman-Crippen atomic contributions to logP and molar refractivity,
// reduced to the atom types that occur in metal-ligand complexes. Values
// are pinned alongside the catalog; the type codes follow the original
// publication.
type crippenContrib struct{ logP, mr float64 }

var crippenTypes = map[string]crippenContrib{
	"C1":  {0.1441, 2.503},  // aliphatic C, only C/H neighbors, sp3
	"C3":  {-0.2035, 2.753}, // aliphatic C bonded to N/O/halogen
	"C5":  {-0.2783, 5.007}, // carbonyl-type C (double bond to heteroatom)
	"C6":  {0.1551, 3.513},  // sp2/sp C, only C/H neighbors
	"C18": {0.1581, 3.350},  // aromatic CH
	"C21": {0.1360, 3.509},  // aromatic C substituted by carbon
	"C23": {0.5437, 3.853},  // aromatic C substituted by N/O
	"N1":  {-1.0190, 2.262}, // primary amine N
	"N2":  {-0.7096, 2.173}, // secondary amine N
	"N7":  {-0.3187, 1.839}, // tertiary amine N
	"N9":  {0.01508, 1.725}, // nitrile / sp N
	"N11": {-0.3239, 2.202}, // aromatic N
	"N13": {-0.3396, 0.2905}, // charged N
	"NS":  {-0.4806, 2.134}, // nitrogen supertype
	"O1":  {0.1552, 1.080},  // aromatic O
	"O2":  {-0.2893, 0.8238}, // alcohol / hydroxyl O
	"O3":  {-0.0684, 1.085}, // ether O
	"O9":  {-0.1526, 0.0},   // carbonyl O
	"O12": {-1.3260, 0.6865}, // charged O
	"OS":  {-0.1188, 0.6865}, // oxygen supertype
	"H1":  {0.1230, 1.057},  // hydrocarbon H
	"H2":  {-0.2677, 1.395}, // H on heteroatom
	"F":   {0.4202, 1.108},
	"Cl":  {0.6895, 5.853},
	"Br":  {0.8456, 8.927},
	"I":   {0.8857, 14.02},
	"P":   {0.8612, 6.922},
	"S1":  {0.6482, 7.591},  // aliphatic S
	"S3":  {0.6237, 6.691},  // aromatic S
	"Me":  {-0.0025, 5.754}, // metal
	"Hal": {-0.2405, 2.0},   // remaining heteroatoms
}

// crippenContribs assigns every atom a logP and MR contribution. Implicit
// hydrogens are folded into their heavy atom.
func crippenContribs(m *mol.Molecule) (logP, mr []float64) {
	logP = make([]float64, len(m.Atoms))
	mr = make([]float64, len(m.Atoms))
	for i := range m.Atoms {
		c := crippenTypes[crippenType(m, i)]
		logP[i] = c.logP
		mr[i] = c.mr

		// Hydrogens on carbon are H1, on heteroatoms H2.
		h := crippenTypes["H1"]
		if m.Atoms[i].AtomicNum != 6 {
			h = crippenTypes["H2"]
		}
		logP[i] += float64(m.Atoms[i].NumHs) * h.logP
		mr[i] += float64(m.Atoms[i].NumHs) * h.mr
	}
	return logP, mr
}

func crippenType(m *mol.Molecule, idx int) string {
	a := m.Atoms[idx]
	switch a.AtomicNum {
	case 6:
		return carbonType(m, idx)
	case 7:
		return nitrogenType(m, idx)
	case 8:
		return oxygenType(m, idx)
	case 9:
		return "F"
	case 15:
		return "P"
	case 16:
		if a.IsAromat {
			return "S3"
		}
		return "S1"
	case 17:
		return "Cl"
	case 35:
		return "Br"
	case 53:
		return "I"
	case 1:
		return "H1"
	}
	if mol.IsMetal(a.AtomicNum) {
		return "Me"
	}
	return "Hal"
}

func carbonType(m *mol.Molecule, idx int) string {
	a := m.Atoms[idx]
	hetero := false
	heteroDouble := false
	for _, b := range m.Bonds {
		if b.Begin != idx && b.End != idx {
			continue
		}
		z := m.Atoms[b.Other(idx)].AtomicNum
		if z != 6 && z != 1 {
			hetero = true
			if b.Type == mol.Double {
				heteroDouble = true
			}
		}
	}
	switch {
	case a.IsAromat && !hetero:
		if m.Degree(idx)+a.NumHs <= 2 || a.NumHs > 0 {
			return "C18"
		}
		return "C21"
	case a.IsAromat:
		return "C23"
	case heteroDouble:
		return "C5"
	case a.Hybrid == mol.SP2 || a.Hybrid == mol.SP:
		return "C6"
	case hetero:
		return "C3"
	default:
		return "C1"
	}
}

func nitrogenType(m *mol.Molecule, idx int) string {
	a := m.Atoms[idx]
	switch {
	case a.Charge > 0:
		return "N13"
	case a.IsAromat:
		return "N11"
	case a.Hybrid == mol.SP:
		return "N9"
	case a.NumHs >= 2:
		return "N1"
	case a.NumHs == 1:
		return "N2"
	case a.Hybrid == mol.SP3:
		return "N7"
	default:
		return "NS"
	}
}

func oxygenType(m *mol.Molecule, idx int) string {
	a := m.Atoms[idx]
	hasDouble := false
	for _, b := range m.Bonds {
		if (b.Begin == idx || b.End == idx) && b.Type == mol.Double {
			hasDouble = true
		}
	}
	switch {
	case a.Charge < 0:
		return "O12"
	case a.IsAromat:
		return "O1"
	case hasDouble:
		return "O9"
	case a.NumHs > 0:
		return "O2"
	case m.Degree(idx) == 2:
		return "O3"
	default:
		return "OS"
	}
}
