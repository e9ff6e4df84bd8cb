// Copyright Iowa State University, 2026. All rights reserved.

package mol

import (
	"errors"
	"strings"
	"testing"
)

// ammineCopperBlock is a minimal Cu complex with two ammonia donors and a
// carbon spectator, written as plain covalent bonds the way HostDesigner
// emits structures.
const ammineCopperBlock = `complex
  HostDesigner

  4  3  0  0  0  0  0  0  0  0999 V2000
    0.0000    0.0000    0.0000 Cu  0  0  0  0  0  0  0  0  0  0  0  0
    2.0000    0.0000    0.0000 N   0  0  0  0  0  0  0  0  0  0  0  0
   -2.0000    0.0000    0.0000 N   0  0  0  0  0  0  0  0  0  0  0  0
    2.0000    1.5000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
  1  2  1  0
  1  3  1  0
  2  4  1  0
M  END
`

func TestFromMolBlock(t *testing.T) {
	tests := []struct {
		name      string
		block     string
		wantAtoms int
		wantBonds int
		wantErr   bool
	}{
		{
			name:      "copper ammine complex",
			block:     ammineCopperBlock,
			wantAtoms: 4,
			wantBonds: 3,
		},
		{
			name:    "too few lines",
			block:   "just\ntwo\n",
			wantErr: true,
		},
		{
			name:    "no counts line",
			block:   "a\nb\nc\nd\ne\n",
			wantErr: true,
		},
		{
			name: "bond references missing atom",
			block: `x

  1  1  0  0  0  0  0  0  0  0999 V2000
    0.0000    0.0000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
  1  9  1  0
M  END
`,
			wantErr: true,
		},
		{
			name: "unknown element",
			block: `x

  1  0  0  0  0  0  0  0  0  0999 V2000
    0.0000    0.0000    0.0000 Xx  0  0  0  0  0  0  0  0  0  0  0  0
M  END
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := FromMolBlock(tt.block)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrStructureBuild) {
					t.Errorf("error %v is not ErrStructureBuild", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromMolBlock: %v", err)
			}
			if m.NumAtoms() != tt.wantAtoms {
				t.Errorf("atoms = %d, want %d", m.NumAtoms(), tt.wantAtoms)
			}
			if m.NumBonds() != tt.wantBonds {
				t.Errorf("bonds = %d, want %d", m.NumBonds(), tt.wantBonds)
			}
		})
	}
}

func TestFromMolBlock_ChargeProperty(t *testing.T) {
	block := `x

  1  0  0  0  0  0  0  0  0  0999 V2000
    0.0000    0.0000    0.0000 Cu  0  0  0  0  0  0  0  0  0  0  0  0
M  CHG  1   1   2
M  END
`
	m, err := FromMolBlock(block)
	if err != nil {
		t.Fatalf("FromMolBlock: %v", err)
	}
	if m.Atoms[0].Charge != 2 {
		t.Errorf("charge = %d, want 2", m.Atoms[0].Charge)
	}
}

func TestIsMetal(t *testing.T) {
	nonMetals := []int{1, 5, 6, 7, 8, 9, 14, 15, 16, 17, 35}
	for _, z := range nonMetals {
		if IsMetal(z) {
			t.Errorf("IsMetal(%d) = true, want false", z)
		}
	}
	metals := []int{3, 11, 12, 13, 20, 26, 29, 63, 92}
	for _, z := range metals {
		if !IsMetal(z) {
			t.Errorf("IsMetal(%d) = false, want true", z)
		}
	}
}

func TestSetDativeBonds(t *testing.T) {
	m, err := FromMolBlock(ammineCopperBlock)
	if err != nil {
		t.Fatalf("FromMolBlock: %v", err)
	}

	SetDativeBonds(m, nil)

	dative := 0
	for _, b := range m.Bonds {
		if b.Type == Dative {
			dative++
			if m.Atoms[b.End].Symbol != "Cu" {
				t.Errorf("dative bond points at %s, want Cu", m.Atoms[b.End].Symbol)
			}
			if m.Atoms[b.Begin].AtomicNum != 7 {
				t.Errorf("dative donor is %s, want N", m.Atoms[b.Begin].Symbol)
			}
		}
	}
	if dative != 2 {
		t.Errorf("dative bonds = %d, want 2", dative)
	}
	if m.NumAtoms() != 4 {
		t.Errorf("atom count changed to %d", m.NumAtoms())
	}
	// The C-N bond stays covalent.
	if bi := m.BondBetween(1, 3); bi < 0 || m.Bonds[bi].Type != Single {
		t.Error("spectator C-N bond was rewritten")
	}
}

func TestSetDativeBonds_Idempotent(t *testing.T) {
	m, err := FromMolBlock(ammineCopperBlock)
	if err != nil {
		t.Fatalf("FromMolBlock: %v", err)
	}

	SetDativeBonds(m, nil)
	first := bondSnapshot(m)
	SetDativeBonds(m, nil)
	second := bondSnapshot(m)

	if first != second {
		t.Errorf("bond set changed on second conversion:\nfirst:  %s\nsecond: %s", first, second)
	}
}

func TestSetDativeBonds_DonorSet(t *testing.T) {
	m, err := FromMolBlock(ammineCopperBlock)
	if err != nil {
		t.Fatalf("FromMolBlock: %v", err)
	}

	// Restrict donors to oxygen: nothing should convert.
	SetDativeBonds(m, []int{8})
	for _, b := range m.Bonds {
		if b.Type == Dative {
			t.Error("nitrogen converted despite oxygen-only donor set")
		}
	}
}

func bondSnapshot(m *Molecule) string {
	var parts []string
	for _, b := range m.Bonds {
		parts = append(parts, strings.Join([]string{
			m.Atoms[b.Begin].Symbol, m.Atoms[b.End].Symbol, bondName(b.Type),
		}, "-"))
	}
	// Order-insensitive comparison.
	for i := 0; i < len(parts); i++ {
		for j := i + 1; j < len(parts); j++ {
			if parts[j] < parts[i] {
				parts[i], parts[j] = parts[j], parts[i]
			}
		}
	}
	return strings.Join(parts, " ")
}

func bondName(t BondType) string {
	switch t {
	case Double:
		return "double"
	case Triple:
		return "triple"
	case Aromatic:
		return "aromatic"
	case Dative:
		return "dative"
	default:
		return "single"
	}
}
