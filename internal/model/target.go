package model

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
)

// Goal is the optimization objective of a target. Exactly one variant is
// active; every consumer switches exhaustively over the two concrete types.
type Goal interface {
	isGoal()
}

// ResourcesGoal minimizes the weighted net external draw of its symbols.
type ResourcesGoal struct {
	Weights Terms
}

// ReactionsGoal minimizes total reaction activity.
type ReactionsGoal struct{}

func (ResourcesGoal) isGoal() {}
func (ReactionsGoal) isGoal() {}

// Target is a named optimization scenario over the program's reactions.
type Target struct {
	Name string

	// Inputs are the externally supplied, free species, in declared order.
	Inputs []Symbol

	// Constraints maps a symbol to its minimum required net production.
	Constraints Terms

	// InTime is the positive time horizon used by the rate formulation.
	InTime int

	// Goal is nil for an incomplete target; compilation rejects that.
	Goal Goal

	// DeclRange is the source range of the declaring block.
	DeclRange hcl.Range
}

// FreeInputs returns the target's free species as a membership set.
func (t *Target) FreeInputs() map[Symbol]struct{} {
	free := make(map[Symbol]struct{}, len(t.Inputs))
	for _, sym := range t.Inputs {
		free[sym] = struct{}{}
	}
	return free
}

// Program is the parsed reaction network: name-keyed targets plus the
// reactions in declaration order. Read-only once built.
type Program struct {
	Targets   map[string]*Target
	Reactions []*Reaction
}

// TargetNames lists the declared target names in sorted order.
func (p *Program) TargetNames() []string {
	names := make([]string, 0, len(p.Targets))
	for name := range p.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReactionSymbols returns the union of every reaction's input and output
// symbols, sorted.
func (p *Program) ReactionSymbols() []Symbol {
	all := Terms{}
	for _, r := range p.Reactions {
		all = MergeTerms(all, MergeTerms(r.Inputs, r.Outputs))
	}
	return all.Symbols()
}
