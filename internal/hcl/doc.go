// Package hcl loads reaction-network source files. It parses HCL, decodes
// the blocks against the schemas in internal/schema, and translates them
// into the immutable model, validating the structural invariants (positive
// multiplicities and costs, unique target names, a single goal variant) as
// it goes. Every failure is a span-labeled diagnostic.
package hcl
