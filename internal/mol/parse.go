// Copyright Iowa State University, 2026. All rights reserved.

package mol

import (
	"fmt"
	"strconv"
	"strings"
)

// FromMolBlock builds a Molecule from a V2000 MOL block in non-strict mode:
// no valence or aromaticity perception happens here, matching the deferred
// validity contract. Chemical state is derived later by Sanitize.
func FromMolBlock(block string) (*Molecule, error) {
	lines := strings.Split(strings.ReplaceAll(block, "\r\n", "\n"), "\n")
	if len(lines) < 4 {
		return nil, fmt.Errorf("%w: mol block has %d lines, need at least 4", ErrStructureBuild, len(lines))
	}

	// The counts line carries the V2000 tag; header length is normally 3
	// lines but HostDesigner output has been seen with stray blanks.
	countsIdx := -1
	for i, line := range lines {
		if strings.Contains(line, "V2000") {
			countsIdx = i
			break
		}
	}
	if countsIdx < 0 {
		return nil, fmt.Errorf("%w: no V2000 counts line", ErrStructureBuild)
	}

	counts := lines[countsIdx]
	numAtoms, err := fixedInt(counts, 0, 3)
	if err != nil {
		return nil, fmt.Errorf("%w: counts line %q: %v", ErrStructureBuild, counts, err)
	}
	numBonds, err := fixedInt(counts, 3, 6)
	if err != nil {
		return nil, fmt.Errorf("%w: counts line %q: %v", ErrStructureBuild, counts, err)
	}

	body := lines[countsIdx+1:]
	if len(body) < numAtoms+numBonds {
		return nil, fmt.Errorf("%w: block truncated: %d lines for %d atoms and %d bonds",
			ErrStructureBuild, len(body), numAtoms, numBonds)
	}

	m := &Molecule{Atoms: make([]Atom, numAtoms)}

	for i := 0; i < numAtoms; i++ {
		line := body[i]
		if len(line) < 34 {
			return nil, fmt.Errorf("%w: atom line %d too short: %q", ErrStructureBuild, i+1, line)
		}
		x, _ := strconv.ParseFloat(strings.TrimSpace(line[0:10]), 64)
		y, _ := strconv.ParseFloat(strings.TrimSpace(line[10:20]), 64)
		z, _ := strconv.ParseFloat(strings.TrimSpace(line[20:30]), 64)
		sym := strings.TrimSpace(line[31:min(34, len(line))])
		an := AtomicNumber(sym)
		if an == 0 {
			return nil, fmt.Errorf("%w: atom line %d: unknown element %q", ErrStructureBuild, i+1, sym)
		}
		a := Atom{Symbol: Symbol(an), AtomicNum: an, X: x, Y: y, Z: z}
		if len(line) >= 39 {
			a.Charge = chargeFromCode(fixedIntLenient(line, 36, 39))
		}
		m.Atoms[i] = a
	}

	for i := 0; i < numBonds; i++ {
		line := body[numAtoms+i]
		if len(line) < 9 {
			return nil, fmt.Errorf("%w: bond line %d too short: %q", ErrStructureBuild, i+1, line)
		}
		from, err1 := fixedInt(line, 0, 3)
		to, err2 := fixedInt(line, 3, 6)
		order, err3 := fixedInt(line, 6, 9)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("%w: bond line %d unparseable: %q", ErrStructureBuild, i+1, line)
		}
		if from < 1 || from > numAtoms || to < 1 || to > numAtoms {
			return nil, fmt.Errorf("%w: bond line %d references atom out of range: %q",
				ErrStructureBuild, i+1, line)
		}
		m.Bonds = append(m.Bonds, Bond{Begin: from - 1, End: to - 1, Type: bondTypeFromOrder(order)})
	}

	// Property block: M  CHG supersedes atom-line charge codes.
	applyProperties(m, body[numAtoms+numBonds:])

	return m, nil
}

func bondTypeFromOrder(order int) BondType {
	switch order {
	case 2:
		return Double
	case 3:
		return Triple
	case 4:
		return Aromatic
	default:
		return Single
	}
}

// chargeFromCode maps the ctab atom-line charge code to a formal charge.
// Code 4 is a doublet radical marker, not a charge.
func chargeFromCode(code int) int {
	switch code {
	case 1:
		return 3
	case 2:
		return 2
	case 3:
		return 1
	case 5:
		return -1
	case 6:
		return -2
	case 7:
		return -3
	default:
		return 0
	}
}

func applyProperties(m *Molecule, lines []string) {
	sawChg := false
	for _, line := range lines {
		if strings.HasPrefix(line, "M  END") {
			break
		}
		if !strings.HasPrefix(line, "M  CHG") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		if !sawChg {
			// First CHG line resets every atom charge per ctab spec.
			for i := range m.Atoms {
				m.Atoms[i].Charge = 0
			}
			sawChg = true
		}
		n, _ := strconv.Atoi(fields[2])
		for k := 0; k < n && 3+2*k+1 < len(fields); k++ {
			idx, err1 := strconv.Atoi(fields[3+2*k])
			chg, err2 := strconv.Atoi(fields[3+2*k+1])
			if err1 != nil || err2 != nil || idx < 1 || idx > len(m.Atoms) {
				continue
			}
			m.Atoms[idx-1].Charge = chg
		}
	}
}

func fixedInt(line string, from, to int) (int, error) {
	if len(line) < to {
		to = len(line)
	}
	if from >= to {
		return 0, fmt.Errorf("field [%d:%d] out of range", from, to)
	}
	return strconv.Atoi(strings.TrimSpace(line[from:to]))
}

func fixedIntLenient(line string, from, to int) int {
	n, _ := fixedInt(line, from, to)
	return n
}
