// Package minizinc renders a compiled constraint model into MiniZinc source
// text. Rendering is deterministic: the same model over the same program
// reproduces the same bytes.
package minizinc
