// Copyright Iowa State University, 2026. All rights reserved.

package mol

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ToSmiles writes a canonical SMILES for the molecule with implicit
// hydrogens. Dative bonds render as -> (donor to acceptor, written in
// traversal direction) and <- for the reverse traversal. Atom ordering is
// canonical: Morgan-style rank refinement with deterministic tie-breaking,
// so structurally identical graphs produce identical strings.
func ToSmiles(m *Molecule) string {
	if len(m.Atoms) == 0 {
		return ""
	}

	ranks := canonicalRanks(m)
	w := &smilesWriter{m: m, ranks: ranks, visited: make([]bool, len(m.Atoms))}

	// Components in order of their lowest-ranked atom.
	var starts []int
	for {
		start := -1
		for i := range m.Atoms {
			if w.visited[i] {
				continue
			}
			if start < 0 || ranks[i] < ranks[start] {
				start = i
			}
		}
		if start < 0 {
			break
		}
		w.markComponent(start)
		starts = append(starts, start)
	}

	for i := range w.visited {
		w.visited[i] = false
	}
	w.assignClosures(starts)
	for i := range w.visited {
		w.visited[i] = false
	}

	var parts []string
	for _, s := range starts {
		var b strings.Builder
		w.walk(s, -1, &b)
		parts = append(parts, b.String())
	}
	return strings.Join(parts, ".")
}

type closure struct {
	digit int
	bond  int
}

type smilesWriter struct {
	m       *Molecule
	ranks   []int
	visited []bool

	closures    map[int][]closure // atom index -> closure digits
	closureBond []bool            // bond index -> written as ring closure
	nextDigit   int
}

func (w *smilesWriter) markComponent(start int) {
	stack := []int{start}
	w.visited[start] = true
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, nb := range w.m.Neighbors(cur) {
			if !w.visited[nb] {
				w.visited[nb] = true
				stack = append(stack, nb)
			}
		}
	}
}

// orderedNeighbors returns cur's neighbors sorted by canonical rank.
func (w *smilesWriter) orderedNeighbors(cur int) []int {
	nbs := w.m.Neighbors(cur)
	sort.Slice(nbs, func(i, j int) bool { return w.ranks[nbs[i]] < w.ranks[nbs[j]] })
	return nbs
}

// assignClosures does a dry-run DFS to allocate ring-closure digits so the
// writing pass knows them up front.
func (w *smilesWriter) assignClosures(starts []int) {
	w.closures = make(map[int][]closure)
	w.closureBond = make([]bool, len(w.m.Bonds))
	w.nextDigit = 1
	usedBond := make([]bool, len(w.m.Bonds))

	var dfs func(cur, parentBond int)
	dfs = func(cur, parentBond int) {
		w.visited[cur] = true
		for _, nb := range w.orderedNeighbors(cur) {
			bi := w.m.BondBetween(cur, nb)
			if bi == parentBond || usedBond[bi] {
				continue
			}
			if w.visited[nb] {
				usedBond[bi] = true
				w.closureBond[bi] = true
				d := w.nextDigit
				w.nextDigit++
				w.closures[cur] = append(w.closures[cur], closure{digit: d, bond: bi})
				w.closures[nb] = append(w.closures[nb], closure{digit: d, bond: bi})
				continue
			}
			usedBond[bi] = true
			dfs(nb, bi)
		}
	}
	for _, s := range starts {
		dfs(s, -1)
	}
}

func (w *smilesWriter) walk(cur, parentBond int, b *strings.Builder) {
	w.visited[cur] = true
	b.WriteString(w.atomToken(cur))

	for _, c := range w.closures[cur] {
		b.WriteString(w.bondToken(c.bond, cur))
		b.WriteString(closureDigit(c.digit))
	}

	var children []int
	for _, nb := range w.orderedNeighbors(cur) {
		bi := w.m.BondBetween(cur, nb)
		if bi == parentBond || w.closureBond[bi] || w.visited[nb] {
			continue
		}
		children = append(children, nb)
	}

	for i, nb := range children {
		bi := w.m.BondBetween(cur, nb)
		if w.visited[nb] {
			continue // claimed by an earlier branch
		}
		last := i == len(children)-1
		if !last {
			b.WriteString("(")
		}
		b.WriteString(w.bondToken(bi, cur))
		w.walk(nb, bi, b)
		if !last {
			b.WriteString(")")
		}
	}
}

// bondToken renders the bond symbol as seen when leaving atom `from`.
func (w *smilesWriter) bondToken(bi, from int) string {
	bond := w.m.Bonds[bi]
	switch bond.Type {
	case Double:
		return "="
	case Triple:
		return "#"
	case Aromatic:
		return ""
	case Dative:
		if bond.Begin == from {
			return "->"
		}
		return "<-"
	default:
		return ""
	}
}

// atomToken renders one atom, bracketed when outside the organic subset,
// charged, or involved in a dative bond (matching the toolkit convention
// that keeps donor and acceptor environments explicit).
func (w *smilesWriter) atomToken(idx int) string {
	a := w.m.Atoms[idx]
	sym := a.Symbol
	if a.IsAromat && organicSubset[a.AtomicNum] {
		sym = strings.ToLower(sym)
	}

	if !w.needsBracket(idx) {
		return sym
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(sym)
	switch {
	case a.NumHs == 1:
		b.WriteString("H")
	case a.NumHs > 1:
		fmt.Fprintf(&b, "H%d", a.NumHs)
	}
	switch {
	case a.Charge == 1:
		b.WriteString("+")
	case a.Charge > 1:
		fmt.Fprintf(&b, "+%d", a.Charge)
	case a.Charge == -1:
		b.WriteString("-")
	case a.Charge < -1:
		fmt.Fprintf(&b, "-%d", -a.Charge)
	}
	b.WriteString("]")
	return b.String()
}

func (w *smilesWriter) needsBracket(idx int) bool {
	a := w.m.Atoms[idx]
	if !organicSubset[a.AtomicNum] || a.Charge != 0 || a.Radicals > 0 {
		return true
	}
	for _, b := range w.m.Bonds {
		if b.Type == Dative && (b.Begin == idx || b.End == idx) {
			return true
		}
	}
	return false
}

func closureDigit(d int) string {
	if d < 10 {
		return fmt.Sprintf("%d", d)
	}
	return fmt.Sprintf("%%%d", d)
}

// canonicalRanks computes a canonical atom ordering by iterative invariant
// refinement. Ties after refinement break on the lowest atom index, which
// keeps the output deterministic for symmetric graphs.
func canonicalRanks(m *Molecule) []int {
	n := len(m.Atoms)
	inv := make([]string, n)
	for i, a := range m.Atoms {
		arom := 0
		if a.IsAromat {
			arom = 1
		}
		inv[i] = fmt.Sprintf("%03d|%02d|%+03d|%d|%d",
			a.AtomicNum, m.Degree(i), a.Charge, a.NumHs, arom)
	}

	ranks := rankStrings(inv)
	for iter := 0; iter < n; iter++ {
		next := make([]string, n)
		for i := range m.Atoms {
			nbRanks := []int{}
			for _, nb := range m.Neighbors(i) {
				nbRanks = append(nbRanks, ranks[nb])
			}
			sort.Ints(nbRanks)
			next[i] = fmt.Sprintf("%06d|%v", ranks[i], nbRanks)
		}
		newRanks := rankStrings(next)
		if equalInts(newRanks, ranks) {
			break
		}
		ranks = newRanks
	}

	// Final tie-break: stable ordering by (rank, index).
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if ranks[order[a]] != ranks[order[b]] {
			return ranks[order[a]] < ranks[order[b]]
		}
		return order[a] < order[b]
	})
	final := make([]int, n)
	for pos, idx := range order {
		final[idx] = pos
	}
	return final
}

func rankStrings(keys []string) []int {
	uniq := append([]string(nil), keys...)
	sort.Strings(uniq)
	pos := make(map[string]int)
	for _, k := range uniq {
		if _, ok := pos[k]; !ok {
			pos[k] = len(pos)
		}
	}
	out := make([]int, len(keys))
	for i, k := range keys {
		out[i] = pos[k]
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// The dative conversion leaves hydrogen-count annotations stranded next to
// arrow notation; two ordered substitutions strip them without touching
// anything else. Charge annotations survive.
var (
	// H count written after an outgoing arrow's metal symbol: ->[FeH2 etc.
	metalHydrogenPattern = regexp.MustCompile(`(->\[[A-Z][a-z]?)(H\d?)`)

	// H count immediately before a (possibly charged) bracket close that
	// abuts an arrow: [NH]-> or [OH2+]<- styles.
	hydrogenBracketPattern = regexp.MustCompile(`(H\d?)((?:\+\d?)?\](?:<-|->))`)
)

// CleanSmiles removes hydrogen-count tokens adjacent to dative-bond arrows,
// applying the metal-side substitution first, then the donor-side one.
func CleanSmiles(smiles string) string {
	cleaned := metalHydrogenPattern.ReplaceAllString(smiles, "$1")
	return hydrogenBracketPattern.ReplaceAllString(cleaned, "$2")
}
