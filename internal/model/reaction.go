package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Cost is the number of elementary cycles one execution of a reaction takes.
// It is strictly positive: the rate formulation divides by it and the cycle
// formulation feeds it to an lcm.
type Cost int

// NewCost validates and wraps a reaction cost.
func NewCost(v int) (Cost, error) {
	if v < 1 {
		return 0, errors.New("reaction cost must be a positive integer")
	}
	return Cost(v), nil
}

// Reaction transforms an input term multiset into an output term multiset,
// taking Cost cycles per execution.
type Reaction struct {
	Inputs  Terms
	Outputs Terms
	Cost    Cost

	// Label is an optional display name used in solver output. Labels are
	// unique across a program so output lines stay distinguishable.
	Label string

	// LabelRange is the source range of the label attribute, when present.
	LabelRange hcl.Range

	// DeclRange is the source range of the declaring block.
	DeclRange hcl.Range
}

// VarName derives the reaction's canonical decision-variable name from its
// sorted input and output multisets. Two reactions with identical multisets
// collapse to the same name regardless of declaration order.
func (r *Reaction) VarName() string {
	return fmt.Sprintf("machine_%s_into_%s", termsIdent(r.Inputs), termsIdent(r.Outputs))
}

// DisplayName is the declared label if present, else the canonical name.
func (r *Reaction) DisplayName() string {
	if r.Label != "" {
		return r.Label
	}
	return r.VarName()
}

func termsIdent(t Terms) string {
	parts := make([]string, 0, len(t))
	for _, sym := range t.Symbols() {
		parts = append(parts, fmt.Sprintf("%d%s", t[sym], strings.ReplaceAll(string(sym), "-", "_")))
	}
	return strings.Join(parts, "_")
}
