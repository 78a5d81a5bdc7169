// Package schema declares the HCL body schemas of the network source
// language: reaction and target blocks, and the nested goal block. The
// loader in internal/hcl decodes against these and translates the result
// into the model package's structures.
package schema
