// Copyright Iowa State University, 2026. All rights reserved.

package mol

import "strings"

// symbols maps atomic number to element symbol for the elements that occur
// in HostDesigner complexes: the organic subset plus the metals of the
// training set (alkali, alkaline earth, transition, lanthanide, actinide).
var symbols = map[int]string{
	1: "H", 2: "He", 3: "Li", 4: "Be", 5: "B", 6: "C", 7: "N", 8: "O",
	9: "F", 10: "Ne", 11: "Na", 12: "Mg", 13: "Al", 14: "Si", 15: "P",
	16: "S", 17: "Cl", 18: "Ar", 19: "K", 20: "Ca", 21: "Sc", 22: "Ti",
	23: "V", 24: "Cr", 25: "Mn", 26: "Fe", 27: "Co", 28: "Ni", 29: "Cu",
	30: "Zn", 31: "Ga", 32: "Ge", 33: "As", 34: "Se", 35: "Br", 36: "Kr",
	37: "Rb", 38: "Sr", 39: "Y", 40: "Zr", 41: "Nb", 42: "Mo", 43: "Tc",
	44: "Ru", 45: "Rh", 46: "Pd", 47: "Ag", 48: "Cd", 49: "In", 50: "Sn",
	51: "Sb", 52: "Te", 53: "I", 54: "Xe", 55: "Cs", 56: "Ba", 57: "La",
	58: "Ce", 59: "Pr", 60: "Nd", 61: "Pm", 62: "Sm", 63: "Eu", 64: "Gd",
	65: "Tb", 66: "Dy", 67: "Ho", 68: "Er", 69: "Tm", 70: "Yb", 71: "Lu",
	72: "Hf", 73: "Ta", 74: "W", 75: "Re", 76: "Os", 77: "Ir", 78: "Pt",
	79: "Au", 80: "Hg", 81: "Tl", 82: "Pb", 83: "Bi", 84: "Po", 85: "At",
	86: "Rn", 87: "Fr", 88: "Ra", 89: "Ac", 90: "Th", 91: "Pa", 92: "U",
	93: "Np", 94: "Pu", 95: "Am", 96: "Cm",
}

// atomicNums is the inverse of symbols.
var atomicNums = func() map[string]int {
	m := make(map[string]int, len(symbols))
	for z, s := range symbols {
		m[s] = z
	}
	return m
}()

// AtomicNumber resolves an element symbol to its atomic number, 0 if unknown.
// MOL blocks occasionally carry symbols in odd case ("FE", "cl").
func AtomicNumber(symbol string) int {
	s := strings.TrimSpace(symbol)
	if z, ok := atomicNums[s]; ok {
		return z
	}
	if len(s) == 0 {
		return 0
	}
	norm := strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	return atomicNums[norm]
}

// Symbol returns the element symbol for an atomic number, "*" if unknown.
func Symbol(z int) string {
	if s, ok := symbols[z]; ok {
		return s
	}
	return "*"
}

// defaultValences gives the implicit-hydrogen valence model for the organic
// subset. Elements absent from the table get no implicit hydrogens.
var defaultValences = map[int][]int{
	1:  {1},
	5:  {3},
	6:  {4},
	7:  {3},
	8:  {2},
	9:  {1},
	14: {4},
	15: {3, 5},
	16: {2, 4, 6},
	17: {1},
	35: {1},
	53: {1},
}

// defaultValence returns the smallest standard valence of element z that is
// >= used, or -1 when the element carries no implicit hydrogens.
func defaultValence(z, used int) int {
	vals, ok := defaultValences[z]
	if !ok {
		return -1
	}
	for _, v := range vals {
		if v >= used {
			return v
		}
	}
	return vals[len(vals)-1]
}

// valenceElectrons gives outer-shell electron counts used for radical and
// E-state accounting.
var valenceElectrons = map[int]int{
	1: 1, 5: 3, 6: 4, 7: 5, 8: 6, 9: 7,
	14: 4, 15: 5, 16: 6, 17: 7, 35: 7, 53: 7,
}

// organicSubset lists elements SMILES may write without brackets.
var organicSubset = map[int]bool{
	5: true, 6: true, 7: true, 8: true, 9: true,
	15: true, 16: true, 17: true, 35: true, 53: true,
}
