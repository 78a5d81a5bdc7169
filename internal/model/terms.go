package model

import "sort"

// Symbol identifies a chemical species or abstract resource by name.
type Symbol string

// Terms is a term multiset: a mapping from symbol to a strictly positive
// multiplicity. A Terms value is never mutated after construction; the only
// combining operation is MergeTerms, which produces a fresh multiset.
type Terms map[Symbol]int

// MergeTerms combines two term multisets by summing multiplicities per
// symbol. It is commutative and associative and leaves both arguments
// untouched.
func MergeTerms(a, b Terms) Terms {
	res := make(Terms, len(a)+len(b))
	for _, m := range []Terms{a, b} {
		for sym, n := range m {
			res[sym] += n
		}
	}
	return res
}

// Symbols returns the multiset's symbols in sorted order, for deterministic
// iteration.
func (t Terms) Symbols() []Symbol {
	syms := make([]Symbol, 0, len(t))
	for sym := range t {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

// Has reports whether the symbol carries a multiplicity in this multiset.
func (t Terms) Has(sym Symbol) bool {
	_, ok := t[sym]
	return ok
}
