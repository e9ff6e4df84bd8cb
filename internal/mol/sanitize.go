// Copyright Iowa State University, 2026. All rights reserved.

package mol

import "fmt"

// Warning reports a non-fatal problem found during the restricted
// sanitization pass. The pass is best-effort: a structure that fails part
// of it is still usable, uncorrected beyond what the pass achieved.
type Warning struct {
	AtomIdx int // -1 when not atom-specific
	Msg     string
}

func (w Warning) String() string {
	if w.AtomIdx >= 0 {
		return fmt.Sprintf("atom %d: %s", w.AtomIdx, w.Msg)
	}
	return w.Msg
}

// Sanitize runs the restricted validity pass over the molecule: ring
// perception, implicit hydrogen assignment, radical detection, aromaticity
// and conjugation assignment, and hybridization assignment. It never fails;
// whatever cannot be derived is reported as a warning and left unset.
func Sanitize(m *Molecule) []Warning {
	var warnings []Warning

	perceiveRings(m)
	warnings = append(warnings, assignValence(m)...)
	assignAromaticity(m)
	assignHybridization(m)

	return warnings
}

// perceiveRings builds a cycle basis: for each non-tree edge the shortest
// ring through it. Symmetric duplicates collapse to one entry.
func perceiveRings(m *Molecule) {
	m.Rings = nil
	for i := range m.Atoms {
		m.Atoms[i].InRing = false
		m.Atoms[i].RingSize3 = false
	}

	n := len(m.Atoms)
	adj := make([][]int, n)
	for _, b := range m.Bonds {
		adj[b.Begin] = append(adj[b.Begin], b.End)
		adj[b.End] = append(adj[b.End], b.Begin)
	}

	// Spanning forest via BFS; non-tree edges close rings.
	visited := make([]bool, n)
	treeEdge := make(map[[2]int]bool)
	var closures [][2]int
	for root := 0; root < n; root++ {
		if visited[root] {
			continue
		}
		queue := []int{root}
		visited[root] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range adj[cur] {
				if !visited[nb] {
					visited[nb] = true
					treeEdge[edgeKey(cur, nb)] = true
					queue = append(queue, nb)
				} else if !treeEdge[edgeKey(cur, nb)] && cur < nb {
					closures = append(closures, [2]int{cur, nb})
				}
			}
		}
	}

	seen := make(map[string]bool)
	for _, e := range closures {
		ring := shortestRing(adj, e[0], e[1], n)
		if ring == nil {
			continue
		}
		key := ringKey(ring)
		if seen[key] {
			continue
		}
		seen[key] = true
		m.Rings = append(m.Rings, ring)
		for _, a := range ring {
			m.Atoms[a].InRing = true
			if len(ring) == 3 {
				m.Atoms[a].RingSize3 = true
			}
		}
	}
}

// shortestRing finds the shortest path from u to v avoiding the direct
// u-v edge, and returns it as a ring including both endpoints.
func shortestRing(adj [][]int, u, v, n int) []int {
	prev := make([]int, n)
	for i := range prev {
		prev[i] = -1
	}
	prev[u] = u
	queue := []int{u}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range adj[cur] {
			if cur == u && nb == v {
				continue // skip the closing edge itself
			}
			if prev[nb] == -1 {
				prev[nb] = cur
				if nb == v {
					var ring []int
					for x := v; x != u; x = prev[x] {
						ring = append(ring, x)
					}
					ring = append(ring, u)
					return ring
				}
				queue = append(queue, nb)
			}
		}
	}
	return nil
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func ringKey(ring []int) string {
	// Deterministic key from sorted membership.
	key := ""
	sorted := append([]int(nil), ring...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j] < sorted[i] {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	for _, a := range sorted {
		key += fmt.Sprintf("%d,", a)
	}
	return key
}

// assignValence derives implicit hydrogen counts and radical electrons from
// the standard valence model. Metals and other elements without a default
// valence get no implicit hydrogens.
func assignValence(m *Molecule) []Warning {
	var warnings []Warning
	for i := range m.Atoms {
		a := &m.Atoms[i]
		used := m.ValenceOrderSum(i)

		dv := defaultValence(a.AtomicNum, used)
		if dv < 0 {
			a.NumHs = 0
			a.Radicals = 0
			continue
		}

		// Charge shifts the target valence: N+ binds four, O- binds one.
		target := dv
		if ve, ok := valenceElectrons[a.AtomicNum]; ok {
			if ve >= 4 {
				target = dv + a.Charge
			} else {
				target = dv - a.Charge
			}
		}

		switch {
		case used > target:
			warnings = append(warnings, Warning{AtomIdx: i,
				Msg: fmt.Sprintf("valence %d exceeds allowed %d for %s", used, target, a.Symbol)})
			a.NumHs = 0
			a.Radicals = 0
		default:
			a.NumHs = target - used
			a.Radicals = 0
		}
	}
	return warnings
}

// assignAromaticity marks rings aromatic using a restricted Hueckel rule:
// every ring atom must be able to go sp2 and the pi electron count must be
// 4n+2. Dative bonds disqualify a ring.
func assignAromaticity(m *Molecule) {
	for i := range m.Atoms {
		m.Atoms[i].IsAromat = false
	}
	for _, ring := range m.Rings {
		if len(ring) < 5 || len(ring) > 7 {
			continue
		}
		pi, ok := piElectrons(m, ring)
		if !ok || pi%4 != 2 {
			continue
		}
		for _, a := range ring {
			m.Atoms[a].IsAromat = true
		}
		for k := range ring {
			bi := m.BondBetween(ring[k], ring[(k+1)%len(ring)])
			if bi >= 0 && m.Bonds[bi].Type != Dative {
				m.Bonds[bi].Type = Aromatic
			}
		}
	}
}

// piElectrons counts pi electrons contributed by each ring atom, returning
// ok=false when any atom cannot participate in an aromatic system.
func piElectrons(m *Molecule, ring []int) (int, bool) {
	inRing := make(map[int]bool, len(ring))
	for _, a := range ring {
		inRing[a] = true
	}

	total := 0
	for _, ai := range ring {
		a := m.Atoms[ai]
		hasDouble := false
		for _, b := range m.Bonds {
			if b.Begin != ai && b.End != ai {
				continue
			}
			if b.Type == Dative {
				return 0, false
			}
			if b.Type == Double || b.Type == Aromatic {
				hasDouble = true
			}
			if b.Type == Triple {
				return 0, false
			}
		}
		switch a.AtomicNum {
		case 6:
			if !hasDouble {
				if a.Charge == -1 {
					total += 2
					continue
				}
				return 0, false
			}
			total++
		case 7, 15:
			if hasDouble {
				total++
			} else {
				total += 2 // pyrrole-type lone pair
			}
		case 8, 16:
			if hasDouble {
				return 0, false
			}
			total += 2
		default:
			return 0, false
		}
	}
	return total, true
}

// assignHybridization derives per-atom hybridization from sigma framework
// and lone pairs.
func assignHybridization(m *Molecule) {
	for i := range m.Atoms {
		a := &m.Atoms[i]

		if IsMetal(a.AtomicNum) {
			a.Hybrid = HybridOther
			continue
		}
		if a.IsAromat {
			a.Hybrid = SP2
			continue
		}

		maxOrder := 1
		doubles := 0
		for _, b := range m.Bonds {
			if b.Begin != i && b.End != i {
				continue
			}
			o := b.Type.Order()
			if b.Type == Dative {
				o = 1
			}
			if o > maxOrder {
				maxOrder = o
			}
			if o == 2 {
				doubles++
			}
		}

		switch {
		case maxOrder >= 3 || doubles >= 2:
			a.Hybrid = SP
		case maxOrder == 2:
			a.Hybrid = SP2
		default:
			a.Hybrid = SP3
		}
	}
}
