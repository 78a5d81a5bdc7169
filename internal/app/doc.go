// Package app contains the core application logic. It wires the loader,
// compiler, serializer, and solver runner into the one-shot pipeline:
// read source, build the model, compile the selected target, serialize the
// MiniZinc file, run the solver, print its report.
package app
