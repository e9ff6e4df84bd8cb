// Copyright Iowa State University, 2026. All rights reserved.

// Package record parses HostDesigner logk input records into a raw feature
// list and a MOL structure block.
package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fzahariev/logkpredict/pkg/types"
)

// ErrMalformedRecord reports an input record with too few lines or
// non-numeric feature tokens.
var ErrMalformedRecord = errors.New("malformed record")

// terminator marks the end of the structure block (SDF record separator).
const terminator = "$$$$"

// Record is a parsed logk input record: the selected raw features and the
// MOL structure block, newlines preserved, terminator excluded.
type Record struct {
	Features []float64
	MolBlock string
}

// Parse splits a raw record into features and structure block.
//
// Line 0 is a header and ignored. Line 1 holds whitespace-separated numeric
// tokens; the scheme selects which tokens become features. Lines 2..N-1 are
// the structure block; a trailing terminator line is excluded.
func Parse(lines []string, scheme types.FeatureScheme) (*Record, error) {
	if len(lines) < 3 {
		return nil, fmt.Errorf("%w: need header, feature line, and structure block, got %d lines",
			ErrMalformedRecord, len(lines))
	}

	features, err := parseFeatures(lines[1], scheme)
	if err != nil {
		return nil, err
	}

	block := extractMolBlock(lines[2:])
	if block == "" {
		return nil, fmt.Errorf("%w: no structure block found", ErrMalformedRecord)
	}

	return &Record{Features: features, MolBlock: block}, nil
}

// parseFeatures selects and converts the raw feature tokens from the numeric
// line according to the configured scheme.
func parseFeatures(line string, scheme types.FeatureScheme) ([]float64, error) {
	tokens := strings.Fields(strings.TrimSuffix(line, "\n"))

	var selected []string
	switch scheme {
	case types.SchemeA:
		// Tokens 3-5 plus everything from token 7 onward.
		if len(tokens) < 8 {
			return nil, fmt.Errorf("%w: feature line %q has %d tokens, scheme a needs at least 8",
				ErrMalformedRecord, line, len(tokens))
		}
		selected = append(selected, tokens[3:6]...)
		selected = append(selected, tokens[7:]...)
	case types.SchemeB, "":
		// Everything from token 2 onward.
		if len(tokens) < 3 {
			return nil, fmt.Errorf("%w: feature line %q has %d tokens, scheme b needs at least 3",
				ErrMalformedRecord, line, len(tokens))
		}
		selected = tokens[2:]
	default:
		return nil, fmt.Errorf("%w: unknown feature scheme %q", ErrMalformedRecord, scheme)
	}

	features := make([]float64, 0, len(selected))
	for _, tok := range selected {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: feature line %q: token %q is not numeric",
				ErrMalformedRecord, line, tok)
		}
		features = append(features, v)
	}
	return features, nil
}

// extractMolBlock joins the structure lines, stopping at the terminator.
// Newlines are preserved so downstream V2000 parsing sees the block verbatim.
func extractMolBlock(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		if strings.TrimSpace(line) == terminator {
			break
		}
		b.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}
