// Copyright Iowa State University, 2026. All rights reserved.

// Package mol implements a mutable molecular graph for metal-ligand
// complexes: MOL-block parsing, dative bond conversion, a restricted
// sanitization pass, and canonical SMILES generation.
package mol

import "errors"

// ErrStructureBuild reports a structure block that cannot be parsed into a
// molecular graph.
var ErrStructureBuild = errors.New("structure build failed")

// BondType classifies a bond. Dative bonds are directional: Begin is the
// donor, End the acceptor.
type BondType int

const (
	Single BondType = iota + 1
	Double
	Triple
	Aromatic
	Dative
)

// Order returns the nominal integer bond order. Aromatic reports 1 here;
// valence accounting in ValenceOrderSum weighs it as 1.5. Dative
// contributes nothing to the donor's valence.
func (t BondType) Order() int {
	switch t {
	case Double:
		return 2
	case Triple:
		return 3
	default:
		return 1
	}
}

// Hybridization of an atom, assigned by the sanitization pass.
type Hybridization int

const (
	HybridUnset Hybridization = iota
	SP
	SP2
	SP3
	HybridOther
)

// Atom is a node in the molecular graph.
type Atom struct {
	Symbol    string
	AtomicNum int
	X, Y, Z   float64
	Charge    int

	// Derived by Sanitize.
	NumHs     int // implicit hydrogens
	Radicals  int // unpaired electrons
	IsAromat  bool
	Hybrid    Hybridization
	InRing    bool
	RingSize3 bool // member of a three-membered ring
}

// Bond is an edge in the molecular graph. For dative bonds Begin is the
// donor atom index and End the acceptor.
type Bond struct {
	Begin, End int
	Type       BondType
}

// Other returns the bond endpoint that is not idx.
func (b Bond) Other(idx int) int {
	if b.Begin == idx {
		return b.End
	}
	return b.Begin
}

// Molecule is a mutable molecular graph. Atom indices are stable for the
// lifetime of the molecule; bonds may be removed and re-added.
type Molecule struct {
	Atoms []Atom
	Bonds []Bond

	// Rings holds the perceived ring atom index sets, filled by Sanitize.
	Rings [][]int
}

// NumAtoms returns the atom count.
func (m *Molecule) NumAtoms() int { return len(m.Atoms) }

// NumBonds returns the bond count.
func (m *Molecule) NumBonds() int { return len(m.Bonds) }

// BondBetween returns the index of the bond joining atoms i and j, or -1.
func (m *Molecule) BondBetween(i, j int) int {
	for bi, b := range m.Bonds {
		if (b.Begin == i && b.End == j) || (b.Begin == j && b.End == i) {
			return bi
		}
	}
	return -1
}

// RemoveBond deletes the bond joining atoms i and j, if present.
func (m *Molecule) RemoveBond(i, j int) bool {
	bi := m.BondBetween(i, j)
	if bi < 0 {
		return false
	}
	m.Bonds = append(m.Bonds[:bi], m.Bonds[bi+1:]...)
	return true
}

// AddBond appends a bond of the given type from atom i to atom j.
func (m *Molecule) AddBond(i, j int, t BondType) {
	m.Bonds = append(m.Bonds, Bond{Begin: i, End: j, Type: t})
}

// Neighbors returns the indices of atoms bonded to atom idx, in bond order.
func (m *Molecule) Neighbors(idx int) []int {
	var out []int
	for _, b := range m.Bonds {
		if b.Begin == idx {
			out = append(out, b.End)
		} else if b.End == idx {
			out = append(out, b.Begin)
		}
	}
	return out
}

// Degree returns the number of explicit connections of atom idx, dative
// bonds included.
func (m *Molecule) Degree(idx int) int {
	n := 0
	for _, b := range m.Bonds {
		if b.Begin == idx || b.End == idx {
			n++
		}
	}
	return n
}

// ValenceOrderSum returns the summed bond order at atom idx for valence
// accounting, rounded up. Aromatic bonds weigh 1.5, so two aromatic ring
// bonds consume 3 valences. A dative bond counts toward the acceptor only,
// matching the convention that the donor supplies both electrons without
// spending a valence.
func (m *Molecule) ValenceOrderSum(idx int) int {
	doubled := 0
	for _, b := range m.Bonds {
		switch {
		case b.Type == Dative:
			if b.End == idx {
				doubled += 2
			}
		case b.Begin == idx || b.End == idx:
			if b.Type == Aromatic {
				doubled += 3
			} else {
				doubled += 2 * b.Type.Order()
			}
		}
	}
	return (doubled + 1) / 2
}

// Components returns the number of connected components, counting dative
// bonds as connections.
func (m *Molecule) Components() int {
	n := len(m.Atoms)
	if n == 0 {
		return 0
	}
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	for _, b := range m.Bonds {
		ra, rb := find(b.Begin), find(b.End)
		if ra != rb {
			parent[ra] = rb
		}
	}
	comps := 0
	for i := range parent {
		if find(i) == i {
			comps++
		}
	}
	return comps
}

// RingBondCount returns the cyclomatic number (the SSSR ring count):
// bonds - atoms + components.
func (m *Molecule) RingBondCount() int {
	n := len(m.Bonds) - len(m.Atoms) + m.Components()
	if n < 0 {
		return 0
	}
	return n
}
