// Copyright Iowa State University, 2026. All rights reserved.

package mol

// Atomic-number bands for the common nonmetals. Anything outside these is
// treated as a metal center for dative bond purposes.
const (
	hydrogen = 1
	boron    = 5
	fluorine = 9
	silicon  = 14
	chlorine = 17
	bromine  = 35
)

// IsMetal reports whether atomic number z falls outside the common-nonmetal
// bands: 1, 5-9, 14-17, and 35 are not metals; everything else is.
func IsMetal(z int) bool {
	switch {
	case z == hydrogen:
		return false
	case z >= boron && z <= fluorine:
		return false
	case z >= silicon && z <= chlorine:
		return false
	case z == bromine:
		return false
	}
	return true
}

// SetDativeBonds rewrites every bond between a metal center and a donor
// atom as a directional dative bond from donor to metal, then re-derives
// chemical state with the restricted sanitization pass. Atoms are never
// added or removed; already-dative bonds are left untouched, so the
// operation is idempotent.
//
// donors lists the donor atomic numbers; nil means the default {N, O}.
// The returned warnings come from the best-effort sanitize pass.
func SetDativeBonds(m *Molecule, donors []int) []Warning {
	if len(donors) == 0 {
		donors = []int{7, 8}
	}
	donorSet := make(map[int]bool, len(donors))
	for _, z := range donors {
		donorSet[z] = true
	}

	for metal := range m.Atoms {
		if !IsMetal(m.Atoms[metal].AtomicNum) {
			continue
		}
		for _, nbr := range m.Neighbors(metal) {
			if !donorSet[m.Atoms[nbr].AtomicNum] {
				continue
			}
			bi := m.BondBetween(nbr, metal)
			if bi < 0 || m.Bonds[bi].Type == Dative {
				continue
			}
			m.RemoveBond(nbr, metal)
			m.AddBond(nbr, metal, Dative)
		}
	}

	return Sanitize(m)
}
