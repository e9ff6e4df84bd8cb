// Copyright Iowa State University, 2026. All rights reserved.

package descriptor

import "github.com/fzahariev/logkpredict/internal/mol"

// estateIndices computes Kier-Hall electrotopological state indices:
// the intrinsic state I = ((2/n)^2 * dv + 1) / d perturbed by every other
// atom as (Ii - Ij) / dij^2, dij being the topological distance plus one.
// Atoms without a valence-electron entry (metals) get index zero but still
// perturb distances by occupying graph positions.
func estateIndices(m *mol.Molecule) []float64 {
	n := len(m.Atoms)
	intrinsic := make([]float64, n)
	active := make([]bool, n)

	for i, a := range m.Atoms {
		ve, ok := valenceElectronsOf(a.AtomicNum)
		if !ok {
			continue
		}
		degree := heavyDegree(m, i)
		if degree == 0 {
			degree = 1
		}
		dv := float64(ve - a.NumHs)
		pq := float64(principalQuantumOf(a.AtomicNum))
		intrinsic[i] = ((2.0/pq)*(2.0/pq)*dv + 1.0) / float64(degree)
		active[i] = true
	}

	dist := topologicalDistances(m)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if !active[i] {
			continue
		}
		s := intrinsic[i]
		for j := 0; j < n; j++ {
			if i == j || !active[j] || dist[i][j] < 0 {
				continue
			}
			d := float64(dist[i][j] + 1)
			s += (intrinsic[i] - intrinsic[j]) / (d * d)
		}
		out[i] = s
	}
	return out
}

func heavyDegree(m *mol.Molecule, idx int) int {
	n := 0
	for _, nb := range m.Neighbors(idx) {
		if m.Atoms[nb].AtomicNum != 1 {
			n++
		}
	}
	return n
}

// topologicalDistances returns all-pairs shortest path lengths by BFS;
// unreachable pairs get -1.
func topologicalDistances(m *mol.Molecule) [][]int {
	n := len(m.Atoms)
	adj := make([][]int, n)
	for _, b := range m.Bonds {
		adj[b.Begin] = append(adj[b.Begin], b.End)
		adj[b.End] = append(adj[b.End], b.Begin)
	}

	dist := make([][]int, n)
	for src := 0; src < n; src++ {
		d := make([]int, n)
		for i := range d {
			d[i] = -1
		}
		d[src] = 0
		queue := []int{src}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range adj[cur] {
				if d[nb] == -1 {
					d[nb] = d[cur] + 1
					queue = append(queue, nb)
				}
			}
		}
		dist[src] = d
	}
	return dist
}

var estateValenceElectrons = map[int]int{
	1: 1, 5: 3, 6: 4, 7: 5, 8: 6, 9: 7,
	14: 4, 15: 5, 16: 6, 17: 7, 35: 7, 53: 7,
}

func valenceElectronsOf(z int) (int, bool) {
	ve, ok := estateValenceElectrons[z]
	return ve, ok
}

func principalQuantumOf(z int) int {
	switch {
	case z <= 2:
		return 1
	case z <= 10:
		return 2
	case z <= 18:
		return 3
	case z <= 36:
		return 4
	case z <= 54:
		return 5
	case z <= 86:
		return 6
	default:
		return 7
	}
}
