package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// RootSchema matches the top-level blocks of a network file.
var RootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "reaction"},
		{Type: "target", LabelNames: []string{"name"}},
	},
}

// ReactionSchema matches the body of a `reaction` block.
var ReactionSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "inputs", Required: true},
		{Name: "outputs", Required: true},
		{Name: "cost", Required: true},
		{Name: "label"},
	},
}

// TargetSchema matches the body of a `target` block. The goal lives in a
// nested block so its two variants stay mutually exclusive.
var TargetSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "inputs"},
		{Name: "constraints"},
		{Name: "in_time", Required: true},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "goal"},
	},
}

// GoalSchema matches the body of a `goal` block. Exactly one of the two
// attributes may be set.
var GoalSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "reactions"},
		{Name: "resources"},
	},
}

// FindUniqueBlock searches a slice of blocks for all blocks of a given name.
// It returns a diagnostic error if more than one block of that name is found.
// If no block is found, it returns nil.
func FindUniqueBlock(blocks hcl.Blocks, name string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type == name {
			if found != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate \"" + name + "\" block",
					Detail:   "Only one \"" + name + "\" block is allowed.",
					Subject:  &block.DefRange,
				})
			}
			found = block
		}
	}

	return found, diags
}
