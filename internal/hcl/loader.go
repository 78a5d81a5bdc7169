package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/fluxgridgo/internal/ctxlog"
	"github.com/vk/fluxgridgo/internal/model"
	"github.com/vk/fluxgridgo/internal/schema"
)

// Loader parses network source files and builds the model.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new network file loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Files exposes the parsed file map for diagnostic rendering.
func (l *Loader) Files() map[string]*hcl.File {
	return l.parser.Files()
}

// LoadSource parses one source buffer and translates it into a Program.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*model.Program, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing network source.", "file", filename, "bytes", len(src))

	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	content, moreDiags := file.Body.Content(schema.RootSchema)
	diags = append(diags, moreDiags...)
	if diags.HasErrors() {
		return nil, diags
	}

	prog := &model.Program{Targets: make(map[string]*model.Target)}
	labels := make(map[string]hcl.Range)

	for _, block := range content.Blocks {
		switch block.Type {
		case "reaction":
			reaction, moreDiags := decodeReaction(block)
			diags = append(diags, moreDiags...)
			if moreDiags.HasErrors() {
				continue
			}
			if reaction.Label != "" {
				if prev, exists := labels[reaction.Label]; exists {
					diags = append(diags, &hcl.Diagnostic{
						Severity: hcl.DiagError,
						Summary:  "Duplicate reaction label",
						Detail:   fmt.Sprintf("Label %q is already used by the reaction at %s; labels must be unique within a program.", reaction.Label, prev),
						Subject:  reaction.LabelRange.Ptr(),
					})
					continue
				}
				labels[reaction.Label] = reaction.LabelRange
			}
			prog.Reactions = append(prog.Reactions, reaction)
		case "target":
			target, moreDiags := decodeTarget(block)
			diags = append(diags, moreDiags...)
			if moreDiags.HasErrors() {
				continue
			}
			if _, exists := prog.Targets[target.Name]; exists {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate target name",
					Detail:   fmt.Sprintf("A target named %q is already declared; target names must be unique within a program.", target.Name),
					Subject:  block.DefRange.Ptr(),
				})
				continue
			}
			prog.Targets[target.Name] = target
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}

	logger.Debug("Network source loaded.", "reactions", len(prog.Reactions), "targets", len(prog.Targets))
	return prog, diags
}
