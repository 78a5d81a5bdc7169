package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/fluxgridgo/internal/model"
	"github.com/vk/fluxgridgo/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// decodeReaction translates one `reaction` block into the model, validating
// multiplicities and the strictly positive cost up front.
func decodeReaction(block *hcl.Block) (*model.Reaction, hcl.Diagnostics) {
	content, diags := block.Body.Content(schema.ReactionSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	reaction := &model.Reaction{DeclRange: block.DefRange}

	if attr, ok := content.Attributes["inputs"]; ok {
		terms, moreDiags := decodeTerms(attr)
		diags = append(diags, moreDiags...)
		reaction.Inputs = terms
	}
	if attr, ok := content.Attributes["outputs"]; ok {
		terms, moreDiags := decodeTerms(attr)
		diags = append(diags, moreDiags...)
		reaction.Outputs = terms
	}
	if attr, ok := content.Attributes["cost"]; ok {
		raw, moreDiags := decodeInt(attr)
		diags = append(diags, moreDiags...)
		if !moreDiags.HasErrors() {
			cost, err := model.NewCost(raw)
			if err != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid reaction cost",
					Detail:   fmt.Sprintf("Cost %d is not allowed: %s.", raw, err),
					Subject:  attr.Expr.Range().Ptr(),
				})
			}
			reaction.Cost = cost
		}
	}
	if attr, ok := content.Attributes["label"]; ok {
		label, moreDiags := decodeString(attr)
		diags = append(diags, moreDiags...)
		reaction.Label = label
		reaction.LabelRange = attr.Range
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return reaction, diags
}

// decodeTarget translates one `target` block into the model. A missing goal
// block is legal here; compilation rejects it later with this block's span.
func decodeTarget(block *hcl.Block) (*model.Target, hcl.Diagnostics) {
	content, diags := block.Body.Content(schema.TargetSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	target := &model.Target{
		Name:        block.Labels[0],
		Constraints: model.Terms{},
		DeclRange:   block.DefRange,
	}

	if attr, ok := content.Attributes["inputs"]; ok {
		syms, moreDiags := decodeSymbolList(attr)
		diags = append(diags, moreDiags...)
		target.Inputs = syms
	}
	if attr, ok := content.Attributes["constraints"]; ok {
		terms, moreDiags := decodeTerms(attr)
		diags = append(diags, moreDiags...)
		if terms != nil {
			target.Constraints = terms
		}
	}
	if attr, ok := content.Attributes["in_time"]; ok {
		horizon, moreDiags := decodeInt(attr)
		diags = append(diags, moreDiags...)
		if !moreDiags.HasErrors() && horizon < 1 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid time horizon",
				Detail:   fmt.Sprintf("in_time must be a positive integer, got %d.", horizon),
				Subject:  attr.Expr.Range().Ptr(),
			})
		}
		target.InTime = horizon
	}

	goalBlock, moreDiags := schema.FindUniqueBlock(content.Blocks.OfType("goal"), "goal")
	diags = append(diags, moreDiags...)
	if goalBlock != nil {
		goal, moreDiags := decodeGoal(goalBlock)
		diags = append(diags, moreDiags...)
		target.Goal = goal
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return target, diags
}

// decodeGoal translates a `goal` block into one of the two goal variants.
func decodeGoal(block *hcl.Block) (model.Goal, hcl.Diagnostics) {
	content, diags := block.Body.Content(schema.GoalSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	reactionsAttr, hasReactions := content.Attributes["reactions"]
	resourcesAttr, hasResources := content.Attributes["resources"]

	switch {
	case hasReactions && hasResources:
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Conflicting goal variants",
			Detail:   "A goal is either 'reactions' or 'resources', never both.",
			Subject:  resourcesAttr.Range.Ptr(),
		})
	case hasReactions:
		enabled, moreDiags := decodeBool(reactionsAttr)
		diags = append(diags, moreDiags...)
		if diags.HasErrors() {
			return nil, diags
		}
		if !enabled {
			return nil, append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid goal",
				Detail:   "'reactions' can only be set to true; omit the goal block instead of disabling it.",
				Subject:  reactionsAttr.Expr.Range().Ptr(),
			})
		}
		return model.ReactionsGoal{}, diags
	case hasResources:
		weights, moreDiags := decodeTerms(resourcesAttr)
		diags = append(diags, moreDiags...)
		if diags.HasErrors() {
			return nil, diags
		}
		return model.ResourcesGoal{Weights: weights}, diags
	default:
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Empty goal block",
			Detail:   "A goal block must set either 'reactions = true' or a 'resources' weight map.",
			Subject:  block.DefRange.Ptr(),
		})
	}
}

// decodeTerms evaluates an attribute as a symbol -> positive multiplicity
// map.
func decodeTerms(attr *hcl.Attribute) (model.Terms, hcl.Diagnostics) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}

	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid term multiset",
			Detail:   fmt.Sprintf("Attribute %q must be a map from symbol to multiplicity.", attr.Name),
			Subject:  attr.Expr.Range().Ptr(),
		})
	}

	terms := make(model.Terms)
	for it := val.ElementIterator(); it.Next(); {
		key, elem := it.Element()
		sym := key.AsString()

		var mult int
		if err := gocty.FromCtyValue(elem, &mult); err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid multiplicity",
				Detail:   fmt.Sprintf("Multiplicity of %q must be an integer: %s.", sym, err),
				Subject:  attr.Expr.Range().Ptr(),
			})
			continue
		}
		if mult < 1 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid multiplicity",
				Detail:   fmt.Sprintf("Multiplicity of %q must be strictly positive, got %d.", sym, mult),
				Subject:  attr.Expr.Range().Ptr(),
			})
			continue
		}
		terms[model.Symbol(sym)] = mult
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return terms, diags
}

// decodeSymbolList evaluates an attribute as an ordered list of symbols.
func decodeSymbolList(attr *hcl.Attribute) ([]model.Symbol, hcl.Diagnostics) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}

	if !val.CanIterateElements() {
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid symbol list",
			Detail:   fmt.Sprintf("Attribute %q must be a list of symbol names.", attr.Name),
			Subject:  attr.Expr.Range().Ptr(),
		})
	}

	var syms []model.Symbol
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		str, err := convert.Convert(elem, cty.String)
		if err != nil || str.IsNull() {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid symbol list",
				Detail:   fmt.Sprintf("Every element of %q must be a symbol name.", attr.Name),
				Subject:  attr.Expr.Range().Ptr(),
			})
			continue
		}
		syms = append(syms, model.Symbol(str.AsString()))
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return syms, diags
}

func decodeBool(attr *hcl.Attribute) (bool, hcl.Diagnostics) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return false, diags
	}
	b, err := convert.Convert(val, cty.Bool)
	if err != nil || b.IsNull() {
		return false, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid boolean value",
			Detail:   fmt.Sprintf("Attribute %q must be a boolean.", attr.Name),
			Subject:  attr.Expr.Range().Ptr(),
		})
	}
	return b.True(), diags
}

func decodeInt(attr *hcl.Attribute) (int, hcl.Diagnostics) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return 0, diags
	}
	var n int
	if err := gocty.FromCtyValue(val, &n); err != nil {
		return 0, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid integer value",
			Detail:   fmt.Sprintf("Attribute %q must be an integer: %s.", attr.Name, err),
			Subject:  attr.Expr.Range().Ptr(),
		})
	}
	return n, diags
}

func decodeString(attr *hcl.Attribute) (string, hcl.Diagnostics) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil || str.IsNull() {
		return "", append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid string value",
			Detail:   fmt.Sprintf("Attribute %q must be a string.", attr.Name),
			Subject:  attr.Expr.Range().Ptr(),
		})
	}
	return str.AsString(), diags
}
