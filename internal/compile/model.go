package compile

import "github.com/vk/fluxgridgo/internal/model"

// Coeff is a small rational coefficient. Den is 1 everywhere in ModeCycles;
// in ModeRates it carries the reaction cost (or the time horizon) as a
// divisor. Coefficients are kept unreduced so the serialized model mirrors
// the source quantities.
type Coeff struct {
	Num int
	Den int
}

// IsIntegral reports whether the coefficient has no fractional part.
func (c Coeff) IsIntegral() bool {
	return c.Den == 1 || c.Num%c.Den == 0
}

// Term is one linear term: Coeff times the named decision variable.
type Term struct {
	Coeff Coeff
	Var   string
}

// Domain is the declared domain of a decision variable.
type Domain int

const (
	// DomainRate is a non-negative real (non-negativity emitted as a
	// separate constraint).
	DomainRate Domain = iota

	// DomainCycles is a non-negative integer cycle count.
	DomainCycles
)

// Variable is one decision variable; every reaction contributes exactly one.
type Variable struct {
	Name   string
	Domain Domain
}

// ConstraintKind distinguishes the two linear constraint families.
type ConstraintKind int

const (
	// KindTarget requires a symbol's net production to meet the target's
	// declared minimum.
	KindTarget ConstraintKind = iota

	// KindBalance requires a non-exempt symbol's production to cover its
	// consumption.
	KindBalance
)

// Constraint is one linear constraint over the production and consumption
// terms of a single symbol:
//
//	KindTarget:  sum(Production) - sum(Consumption) >= Min
//	KindBalance: sum(Production) >= sum(Consumption)
type Constraint struct {
	Kind        ConstraintKind
	Symbol      model.Symbol
	Production  []Term
	Consumption []Term
	Min         Coeff // meaningful for KindTarget only
}

// Objective is the compiled goal; exactly one concrete type is produced,
// matching the program's goal variant.
type Objective interface {
	isObjective()
}

// MinimizeActivity minimizes the plain sum of all reaction variables.
type MinimizeActivity struct {
	Vars []string
}

// MinimizeDraw minimizes the weighted net external draw,
// sum(Consumption) - sum(Production), of the goal's resource symbols.
type MinimizeDraw struct {
	Production  []Term
	Consumption []Term
}

func (MinimizeActivity) isObjective() {}
func (MinimizeDraw) isObjective()     {}

// Output describes one entry of the solver's result-extraction directive.
type Output struct {
	Var   string
	Label string
}

// Model is the compiled constraint model handed to the serializer.
type Model struct {
	Mode      Mode
	Variables []Variable

	// NonNegative lists the variables needing an explicit >= 0 constraint.
	// Populated in ModeRates only; cycle domains carry their own bound.
	NonNegative []string

	TargetConstraints  []Constraint
	BalanceConstraints []Constraint
	Objective          Objective
	Outputs            []Output
}
