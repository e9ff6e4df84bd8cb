// Copyright Iowa State University, 2026. All rights reserved.

package mol

import "testing"

func TestToSmiles_Linear(t *testing.T) {
	// Ethanol skeleton: C-C-O.
	m := &Molecule{
		Atoms: []Atom{
			{Symbol: "C", AtomicNum: 6},
			{Symbol: "C", AtomicNum: 6},
			{Symbol: "O", AtomicNum: 8},
		},
		Bonds: []Bond{
			{Begin: 0, End: 1, Type: Single},
			{Begin: 1, End: 2, Type: Single},
		},
	}
	if got := ToSmiles(m); got != "CCO" {
		t.Errorf("ToSmiles = %q, want %q", got, "CCO")
	}
}

func TestToSmiles_DativeComplex(t *testing.T) {
	m, err := FromMolBlock(ammineCopperBlock)
	if err != nil {
		t.Fatalf("FromMolBlock: %v", err)
	}
	SetDativeBonds(m, nil)

	got := ToSmiles(m)
	want := "C[NH2]->[Cu]<-[NH3]"
	if got != want {
		t.Errorf("ToSmiles = %q, want %q", got, want)
	}
}

func TestToSmiles_Deterministic(t *testing.T) {
	build := func() *Molecule {
		m, err := FromMolBlock(ammineCopperBlock)
		if err != nil {
			t.Fatalf("FromMolBlock: %v", err)
		}
		SetDativeBonds(m, nil)
		return m
	}

	first := ToSmiles(build())
	for i := 0; i < 5; i++ {
		if got := ToSmiles(build()); got != first {
			t.Fatalf("run %d produced %q, first run produced %q", i, got, first)
		}
	}
}

func TestToSmiles_DisconnectedComponents(t *testing.T) {
	m := &Molecule{
		Atoms: []Atom{
			{Symbol: "C", AtomicNum: 6},
			{Symbol: "O", AtomicNum: 8},
		},
	}
	if got := ToSmiles(m); got != "C.O" {
		t.Errorf("ToSmiles = %q, want %q", got, "C.O")
	}
}

func TestCleanSmiles(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "hydrogen before donor arrow",
			in:   "[NH]->[Fe]",
			want: "[N]->[Fe]",
		},
		{
			name: "hydrogen count before donor arrow",
			in:   "C[NH2]->[Cu]",
			want: "C[N]->[Cu]",
		},
		{
			name: "hydrogen after metal symbol",
			in:   "->[FeH2]",
			want: "->[Fe]",
		},
		{
			name: "charge only is untouched",
			in:   "[N+]->[Fe]",
			want: "[N+]->[Fe]",
		},
		{
			name: "charge survives hydrogen removal",
			in:   "[NH+]->[Fe]",
			want: "[N+]->[Fe]",
		},
		{
			name: "reverse arrow donor side",
			in:   "[Cu]<-[OH2]",
			want: "[Cu]<-[OH2]",
		},
		{
			name: "hydrogen before reverse arrow",
			in:   "[OH2]<-[Cu]",
			want: "[O]<-[Cu]",
		},
		{
			name: "no dative bonds",
			in:   "CC(=O)[NH2]",
			want: "CC(=O)[NH2]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanSmiles(tt.in); got != tt.want {
				t.Errorf("CleanSmiles(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
