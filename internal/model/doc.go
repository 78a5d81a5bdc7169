// Package model defines the immutable reaction-network data model: symbols,
// term multisets, reactions, targets, goals, and the program that groups
// them. The model is built once by the loader and is read-only afterwards.
package model
