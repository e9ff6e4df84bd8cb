// Copyright Iowa State University, 2026. All rights reserved.

// Package descriptor evaluates the fixed window of molecular descriptors
// the stability-constant model was trained on: positions [100,140) of the
// pinned 200-name catalog. The catalog ships as a static asset; any drift
// between the asset and the compiled registry is a hard error, never a
// silent reordering.
package descriptor

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/fzahariev/logkpredict/internal/mol"
)

//go:embed catalog.txt
var catalogAsset string

// CatalogVersion tags the descriptor ordering the model was trained
// against. Bump only together with a retrained model.
const CatalogVersion = "rdkit-2020.09"

const (
	windowStart = 100
	windowEnd   = 140
)

var (
	// ErrCatalogMismatch reports that the compiled registry cannot
	// reproduce the pinned catalog window in order.
	ErrCatalogMismatch = errors.New("descriptor catalog mismatch")

	// ErrComputation reports a structure too malformed for descriptor
	// evaluation. Fatal by default: no partial vector is returned.
	ErrComputation = errors.New("descriptor computation failed")
)

// evalContext caches per-molecule intermediates shared by the window.
type evalContext struct {
	m       *mol.Molecule
	vsa     []float64
	peoe    []float64
	smr     []float64
	slogp   []float64
	estates []float64
}

type descriptorFn func(*evalContext) float64

// registry maps every computable descriptor name to its evaluator.
var registry = buildRegistry()

func buildRegistry() map[string]descriptorFn {
	reg := make(map[string]descriptorFn)

	bin := func(sums func(*evalContext) []float64, k int) descriptorFn {
		return func(c *evalContext) float64 { return sums(c)[k] }
	}
	peoeSums := func(c *evalContext) []float64 { return c.peoe }
	smrSums := func(c *evalContext) []float64 { return c.smr }
	slogpSums := func(c *evalContext) []float64 { return c.slogp }

	for k := 0; k < len(peoeBounds)+1; k++ {
		reg[fmt.Sprintf("PEOE_VSA%d", k+1)] = bin(peoeSums, k)
	}
	for k := 0; k < len(smrBounds)+1; k++ {
		reg[fmt.Sprintf("SMR_VSA%d", k+1)] = bin(smrSums, k)
	}
	for k := 0; k < len(slogpBounds)+1; k++ {
		reg[fmt.Sprintf("SlogP_VSA%d", k+1)] = bin(slogpSums, k)
	}
	for k := 0; k < len(vsaBounds)+1; k++ {
		k := k
		reg[fmt.Sprintf("VSA_EState%d", k+1)] = func(c *evalContext) float64 {
			return binSums(c.estates, c.vsa, vsaBounds)[k]
		}
	}

	reg["RingCount"] = func(c *evalContext) float64 { return float64(c.m.RingBondCount()) }
	reg["TPSA"] = func(c *evalContext) float64 { return tpsa(c.m) }

	return reg
}

// Calculator evaluates the pinned descriptor window over converted
// structures.
type Calculator struct {
	names []string // the 40 window names, catalog order
}

// NewCalculator loads the pinned catalog, slices the window, and verifies
// the registry can reproduce it name for name, in order.
func NewCalculator() (*Calculator, error) {
	catalog := strings.Split(strings.TrimSpace(catalogAsset), "\n")
	for i := range catalog {
		catalog[i] = strings.TrimSpace(catalog[i])
	}
	if len(catalog) < windowEnd {
		return nil, fmt.Errorf("%w: catalog %s has %d names, window needs %d",
			ErrCatalogMismatch, CatalogVersion, len(catalog), windowEnd)
	}

	window := catalog[windowStart:windowEnd]
	for i, name := range window {
		if _, ok := registry[name]; !ok {
			return nil, fmt.Errorf("%w: catalog %s position %d names %q, which no evaluator provides",
				ErrCatalogMismatch, CatalogVersion, windowStart+i, name)
		}
	}

	return &Calculator{names: window}, nil
}

// Names returns the 40 descriptor names in evaluation order.
func (c *Calculator) Names() []string {
	return append([]string(nil), c.names...)
}

// Compute evaluates the window over the converted structure. The result is
// deterministic: identical graphs produce bit-identical vectors.
func (c *Calculator) Compute(m *mol.Molecule) ([]float64, error) {
	if m == nil || len(m.Atoms) == 0 {
		return nil, fmt.Errorf("%w: empty structure", ErrComputation)
	}

	vsa := vsaContributions(m)
	charges := gasteigerCharges(m)
	logP, mr := crippenContribs(m)

	ctx := &evalContext{
		m:       m,
		vsa:     vsa,
		peoe:    binSums(vsa, charges, peoeBounds),
		smr:     binSums(vsa, mr, smrBounds),
		slogp:   binSums(vsa, logP, slogpBounds),
		estates: estateIndices(m),
	}

	out := make([]float64, len(c.names))
	for i, name := range c.names {
		v := registry[name](ctx)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s is not finite for this structure", ErrComputation, name)
		}
		out[i] = v
	}
	return out, nil
}
