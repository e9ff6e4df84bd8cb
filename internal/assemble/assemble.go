// Copyright Iowa State University, 2026. All rights reserved.

// Package assemble normalizes raw record features and joins them with the
// descriptor vector into the model's input row. Column order is fixed by
// the model's training data and must not drift.
package assemble

import (
	"math"
	"strconv"
	"strings"

	"github.com/fzahariev/logkpredict/pkg/types"
)

// FeatureHeader is the literal column-name line the model's feature table
// carries. It names the raw features only; the descriptor columns follow
// unnamed, exactly as during training.
const FeatureHeader = "I_in, Z_lig, Z_met, nrot, met_r, met_CN, E_strain, G_solv, rdhE, rdhC"

// Per-position min-max constants for the scaled mode, shared with the
// training pipeline. Order-significant.
var (
	featureMins = []float64{0, -4, 1, 0, 0.231, 4, 0, 59.8, -1.52, -0.36}
	featureMaxs = []float64{0.11, 0, 4, 4, 1.942, 9, 12.22, 1567.9, 8.98, 1.26}
)

// denominator below this is treated as zero and the value passes unscaled.
const scaleEpsilon = 1e-9

// Normalize transforms the raw features per the configured mode: min-max
// scaling for NormalizationScaled, rounding only for NormalizationRaw.
// Either way every value is rounded to 4 decimal places.
func Normalize(raw []float64, mode types.Normalization) []float64 {
	out := make([]float64, len(raw))
	for i, v := range raw {
		if mode == types.NormalizationScaled && i < len(featureMins) {
			v = scale(v, featureMins[i], featureMaxs[i])
		}
		out[i] = round4(v)
	}
	return out
}

// scale min-max rescales v into [0,1] over [lo,hi]. A span within
// scaleEpsilon of zero returns v unchanged.
func scale(v, lo, hi float64) float64 {
	span := hi - lo
	if math.Abs(span) <= scaleEpsilon {
		return v
	}
	return (v - lo) / span
}

// Row joins normalized features and descriptor values into the final
// comma-space separated feature row.
func Row(features, descriptors []float64) string {
	parts := make([]string, 0, len(features)+len(descriptors))
	for _, v := range features {
		parts = append(parts, formatValue(v))
	}
	for _, v := range descriptors {
		parts = append(parts, formatValue(v))
	}
	return strings.Join(parts, ", ")
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// formatValue renders a float the shortest way that round-trips, so 0.5
// stays "0.5" and integers stay bare.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
