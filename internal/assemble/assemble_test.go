// Copyright Iowa State University, 2026. All rights reserved.

package assemble

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzahariev/logkpredict/pkg/types"
)

func TestNormalize_Scaled(t *testing.T) {
	mins := append([]float64(nil), featureMins...)
	maxs := append([]float64(nil), featureMaxs...)

	atMin := Normalize(mins, types.NormalizationScaled)
	require.Len(t, atMin, len(mins))
	for i, v := range atMin {
		assert.InDelta(t, 0.0, v, 1e-4, "position %d at the training minimum", i)
	}

	atMax := Normalize(maxs, types.NormalizationScaled)
	for i, v := range atMax {
		assert.InDelta(t, 1.0, v, 1e-4, "position %d at the training maximum", i)
	}
}

func TestNormalize_ScaledMidpoint(t *testing.T) {
	mid := make([]float64, len(featureMins))
	for i := range mid {
		mid[i] = (featureMins[i] + featureMaxs[i]) / 2
	}
	got := Normalize(mid, types.NormalizationScaled)
	for i, v := range got {
		assert.InDelta(t, 0.5, v, 1e-4, "position %d at the training midpoint", i)
	}
}

func TestScale_ZeroSpanUnscaled(t *testing.T) {
	tests := []struct {
		name   string
		v      float64
		lo, hi float64
		want   float64
	}{
		{name: "identical bounds", v: 2.5, lo: 2.5, hi: 2.5, want: 2.5},
		{name: "span below epsilon", v: 7.0, lo: 1.0, hi: 1.0 + 1e-12, want: 7.0},
		{name: "span at epsilon", v: 3.0, lo: 0, hi: 1e-9, want: 3.0},
		{name: "normal span scales", v: 5.0, lo: 0, hi: 10.0, want: 0.5},
		{name: "negative span scales", v: 5.0, lo: 10.0, hi: 0, want: 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scale(tt.v, tt.lo, tt.hi))
		})
	}
}

func TestNormalize_Raw(t *testing.T) {
	raw := []float64{0.5, 1.0, 0.2, -1.0, 2.0, 6.0, 3.0, 100.0, -0.5, 0.1}
	got := Normalize(raw, types.NormalizationRaw)
	assert.Equal(t, raw, got, "raw mode only rounds")
}

func TestNormalize_Rounds(t *testing.T) {
	got := Normalize([]float64{0.123456789}, types.NormalizationRaw)
	assert.Equal(t, []float64{0.1235}, got)
}

func TestNormalize_ExtraPositionsPassThrough(t *testing.T) {
	// A row longer than the constant tables keeps its tail unscaled.
	raw := make([]float64, len(featureMins)+2)
	for i := range raw {
		raw[i] = featureMins[i%len(featureMins)]
	}
	raw[len(raw)-1] = 7.5
	got := Normalize(raw, types.NormalizationScaled)
	require.Len(t, got, len(raw))
	assert.Equal(t, 7.5, got[len(got)-1])
}

func TestRow(t *testing.T) {
	features := []float64{0.5, 1.0}
	descriptors := []float64{0.0, 12.25, -3.0}

	row := Row(features, descriptors)
	assert.Equal(t, "0.5, 1, 0, 12.25, -3", row)
	assert.Len(t, strings.Split(row, ", "), 5)
}

func TestRow_FullWidth(t *testing.T) {
	features := make([]float64, 10)
	descriptors := make([]float64, 40)
	row := Row(features, descriptors)
	assert.Len(t, strings.Split(row, ", "), 50)
}

func TestFeatureHeader(t *testing.T) {
	cols := strings.Split(FeatureHeader, ", ")
	require.Len(t, cols, 10)
	assert.Equal(t, "I_in", cols[0])
	assert.Equal(t, "rdhC", cols[9])
}
