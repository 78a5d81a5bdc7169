package hcl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/fluxgridgo/internal/model"
)

const smeltSource = `
reaction {
  inputs  = { A = 2 }
  outputs = { B = 1 }
  cost    = 1
  label   = "smelt"
}

reaction {
  inputs  = { B = 1 }
  outputs = { C = 1 }
  cost    = 2
}

target "plates" {
  inputs      = ["A"]
  constraints = { C = 1 }
  in_time     = 10

  goal {
    reactions = true
  }
}

target "cheap" {
  in_time = 10

  goal {
    resources = { C = 1 }
  }
}
`

func TestLoadSource_FullProgram(t *testing.T) {
	t.Parallel()

	loader := NewLoader()
	prog, diags := loader.LoadSource(context.Background(), "net.hcl", []byte(smeltSource))
	require.False(t, diags.HasErrors(), diags.Error())

	require.Len(t, prog.Reactions, 2)
	r1 := prog.Reactions[0]
	assert.Equal(t, model.Terms{"A": 2}, r1.Inputs)
	assert.Equal(t, model.Terms{"B": 1}, r1.Outputs)
	assert.Equal(t, model.Cost(1), r1.Cost)
	assert.Equal(t, "smelt", r1.Label)
	assert.Equal(t, "", prog.Reactions[1].Label)

	require.Len(t, prog.Targets, 2)
	target := prog.Targets["plates"]
	require.NotNil(t, target)
	assert.Equal(t, []model.Symbol{"A"}, target.Inputs)
	assert.Equal(t, model.Terms{"C": 1}, target.Constraints)
	assert.Equal(t, 10, target.InTime)
	assert.IsType(t, model.ReactionsGoal{}, target.Goal)

	cheap := prog.Targets["cheap"]
	require.NotNil(t, cheap)
	res, ok := cheap.Goal.(model.ResourcesGoal)
	require.True(t, ok)
	assert.Equal(t, model.Terms{"C": 1}, res.Weights)
	assert.Empty(t, cheap.Constraints)

	// The parsed file stays available for diagnostic rendering.
	assert.Contains(t, loader.Files(), "net.hcl")
}

func TestLoadSource_QuotedSymbolNames(t *testing.T) {
	t.Parallel()

	src := `
reaction {
  inputs  = { "iron-ore" = 2 }
  outputs = { "iron-plate" = 1 }
  cost    = 1
}
`
	prog, diags := NewLoader().LoadSource(context.Background(), "net.hcl", []byte(src))
	require.False(t, diags.HasErrors(), diags.Error())

	require.Len(t, prog.Reactions, 1)
	assert.Equal(t, model.Terms{"iron-ore": 2}, prog.Reactions[0].Inputs)
	assert.Equal(t, "machine_2iron_ore_into_1iron_plate", prog.Reactions[0].VarName())
}

func TestLoadSource_MissingGoalIsLegal(t *testing.T) {
	t.Parallel()

	// An incomplete target parses fine; the compiler rejects it later.
	src := `
target "incomplete" {
  in_time = 5
}
`
	prog, diags := NewLoader().LoadSource(context.Background(), "net.hcl", []byte(src))
	require.False(t, diags.HasErrors(), diags.Error())
	require.NotNil(t, prog.Targets["incomplete"])
	assert.Nil(t, prog.Targets["incomplete"].Goal)
}

func TestLoadSource_DuplicateLabelPointsAtSecondLabel(t *testing.T) {
	t.Parallel()

	src := `
reaction {
  inputs  = { a = 1 }
  outputs = { b = 1 }
  cost    = 1
  label   = "smelt"
}
reaction {
  inputs  = { b = 1 }
  outputs = { c = 1 }
  cost    = 1
  label   = "smelt"
}
`
	prog, diags := NewLoader().LoadSource(context.Background(), "net.hcl", []byte(src))

	require.True(t, diags.HasErrors())
	assert.Nil(t, prog)
	d := diags[0]
	assert.Equal(t, "Duplicate reaction label", d.Summary)
	require.NotNil(t, d.Subject)
	assert.Equal(t, 12, d.Subject.Start.Line, "span must cover the second label attribute")
}

func TestLoadSource_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		src     string
		summary string
	}{
		{
			name:    "syntax_error",
			src:     "reaction {\n",
			summary: "Unclosed configuration block",
		},
		{
			name: "zero_cost",
			src: `
reaction {
  inputs  = { a = 1 }
  outputs = { b = 1 }
  cost    = 0
}
`,
			summary: "Invalid reaction cost",
		},
		{
			name: "negative_multiplicity",
			src: `
reaction {
  inputs  = { a = -1 }
  outputs = { b = 1 }
  cost    = 1
}
`,
			summary: "Invalid multiplicity",
		},
		{
			name: "fractional_multiplicity",
			src: `
reaction {
  inputs  = { a = 1.5 }
  outputs = { b = 1 }
  cost    = 1
}
`,
			summary: "Invalid multiplicity",
		},
		{
			name: "zero_horizon",
			src: `
target "t" {
  in_time = 0
  goal { reactions = true }
}
`,
			summary: "Invalid time horizon",
		},
		{
			name: "both_goal_variants",
			src: `
target "t" {
  in_time = 1
  goal {
    reactions = true
    resources = { a = 1 }
  }
}
`,
			summary: "Conflicting goal variants",
		},
		{
			name: "empty_goal",
			src: `
target "t" {
  in_time = 1
  goal {}
}
`,
			summary: "Empty goal block",
		},
		{
			name: "two_goal_blocks",
			src: `
target "t" {
  in_time = 1
  goal { reactions = true }
  goal { reactions = true }
}
`,
			summary: "Duplicate \"goal\" block",
		},
		{
			name: "duplicate_label",
			src: `
reaction {
  inputs  = { a = 1 }
  outputs = { b = 1 }
  cost    = 1
  label   = "smelt"
}
reaction {
  inputs  = { b = 1 }
  outputs = { c = 1 }
  cost    = 1
  label   = "smelt"
}
`,
			summary: "Duplicate reaction label",
		},
		{
			name: "duplicate_target",
			src: `
target "t" {
  in_time = 1
  goal { reactions = true }
}
target "t" {
  in_time = 2
  goal { reactions = true }
}
`,
			summary: "Duplicate target name",
		},
		{
			name: "terms_not_a_map",
			src: `
reaction {
  inputs  = ["a"]
  outputs = { b = 1 }
  cost    = 1
}
`,
			summary: "Invalid term multiset",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			prog, diags := NewLoader().LoadSource(context.Background(), "net.hcl", []byte(tc.src))

			require.True(t, diags.HasErrors(), "expected a diagnostic for %s", tc.name)
			assert.Nil(t, prog)

			var summaries []string
			for _, d := range diags {
				summaries = append(summaries, d.Summary)
			}
			assert.Contains(t, summaries, tc.summary)
		})
	}
}
