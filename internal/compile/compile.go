package compile

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/fluxgridgo/internal/ctxlog"
	"github.com/vk/fluxgridgo/internal/model"
)

// Compile walks the program and the selected target and produces the
// constraint model for the requested mode. The program is never mutated.
// Failures come back as span-labeled diagnostics.
func Compile(ctx context.Context, prog *model.Program, target *model.Target, mode Mode) (*Model, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Compiling target.", "target", target.Name, "mode", mode.String(), "reactions", len(prog.Reactions))

	if target.Goal == nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Missing goal specification",
			Detail:   fmt.Sprintf("Target %q declares no goal. Add a goal block with either 'reactions = true' or a 'resources' weight map.", target.Name),
			Subject:  target.DeclRange.Ptr(),
		}}
	}

	// Scale factor for ModeCycles: lcm of all costs, so that every
	// coefficient L/cost stays an exact integer. Unused in ModeRates.
	scale := 1
	if mode == ModeCycles {
		costs := make([]int, len(prog.Reactions))
		for i, r := range prog.Reactions {
			costs[i] = int(r.Cost)
		}
		scale = lcmAll(costs)
		logger.Debug("Computed cycle scale factor.", "lcm", scale)
	}

	m := &Model{Mode: mode}

	for _, r := range prog.Reactions {
		domain := DomainRate
		if mode == ModeCycles {
			domain = DomainCycles
		}
		m.Variables = append(m.Variables, Variable{Name: r.VarName(), Domain: domain})
		if mode == ModeRates {
			m.NonNegative = append(m.NonNegative, r.VarName())
		}
		m.Outputs = append(m.Outputs, Output{Var: r.VarName(), Label: r.DisplayName()})
	}

	for _, sym := range target.Constraints.Symbols() {
		c := Constraint{Kind: KindTarget, Symbol: sym}
		c.Production, c.Consumption = symbolTerms(prog, sym, mode, scale)
		if mode == ModeRates {
			c.Min = Coeff{Num: target.Constraints[sym], Den: target.InTime}
		} else {
			c.Min = Coeff{Num: target.Constraints[sym] * scale, Den: 1}
		}
		m.TargetConstraints = append(m.TargetConstraints, c)
	}

	free := target.FreeInputs()
	for _, sym := range prog.ReactionSymbols() {
		// A symbol with its own target constraint is handled there; no
		// separate conservation constraint.
		if target.Constraints.Has(sym) {
			continue
		}
		if balanceExempt(sym, target.Goal, free, mode) {
			continue
		}
		c := Constraint{Kind: KindBalance, Symbol: sym}
		c.Production, c.Consumption = symbolTerms(prog, sym, mode, scale)
		m.BalanceConstraints = append(m.BalanceConstraints, c)
	}

	m.Objective = buildObjective(prog, target.Goal)

	logger.Debug("Compilation finished.",
		"variables", len(m.Variables),
		"target_constraints", len(m.TargetConstraints),
		"balance_constraints", len(m.BalanceConstraints))
	return m, nil
}

// symbolTerms collects the symbol's production and consumption terms over
// every reaction, in program order. In ModeRates the coefficient is
// multiplicity/cost; in ModeCycles it is (scale/cost)*multiplicity.
func symbolTerms(prog *model.Program, sym model.Symbol, mode Mode, scale int) (production, consumption []Term) {
	for _, r := range prog.Reactions {
		if mult, ok := r.Inputs[sym]; ok {
			consumption = append(consumption, Term{Coeff: reactionCoeff(mult, r.Cost, mode, scale), Var: r.VarName()})
		}
		if mult, ok := r.Outputs[sym]; ok {
			production = append(production, Term{Coeff: reactionCoeff(mult, r.Cost, mode, scale), Var: r.VarName()})
		}
	}
	return production, consumption
}

func reactionCoeff(mult int, cost model.Cost, mode Mode, scale int) Coeff {
	if mode == ModeCycles {
		return Coeff{Num: scale / int(cost) * mult, Den: 1}
	}
	return Coeff{Num: mult, Den: int(cost)}
}

// balanceExempt reports whether a symbol may be net-consumed without a
// balancing producer: declared free inputs always are, and under a resource
// goal in the rate formulation the optimized resources are too.
func balanceExempt(sym model.Symbol, goal model.Goal, free map[model.Symbol]struct{}, mode Mode) bool {
	switch g := goal.(type) {
	case model.ReactionsGoal:
		_, ok := free[sym]
		return ok
	case model.ResourcesGoal:
		if _, ok := free[sym]; ok {
			return true
		}
		return mode == ModeRates && g.Weights.Has(sym)
	default:
		return false
	}
}

// buildObjective constructs the objective for the active goal variant. The
// resource objective weighs raw multiplicities (no cost divisor): it prices
// what each execution draws, not the rate at which it draws it.
func buildObjective(prog *model.Program, goal model.Goal) Objective {
	switch g := goal.(type) {
	case model.ReactionsGoal:
		obj := MinimizeActivity{}
		for _, r := range prog.Reactions {
			obj.Vars = append(obj.Vars, r.VarName())
		}
		return obj
	case model.ResourcesGoal:
		obj := MinimizeDraw{}
		for _, sym := range g.Weights.Symbols() {
			weight := g.Weights[sym]
			for _, r := range prog.Reactions {
				if mult, ok := r.Inputs[sym]; ok {
					obj.Consumption = append(obj.Consumption, Term{Coeff: Coeff{Num: mult * weight, Den: 1}, Var: r.VarName()})
				}
				if mult, ok := r.Outputs[sym]; ok {
					obj.Production = append(obj.Production, Term{Coeff: Coeff{Num: mult * weight, Den: 1}, Var: r.VarName()})
				}
			}
		}
		return obj
	default:
		return nil
	}
}
