// Package compile turns a reaction network and one selected target into a
// constraint model: decision variables, linear constraints, and an objective
// expression. Two numeric modes exist. ModeRates assigns each reaction a
// non-negative real steady-state rate and divides contributions by the
// reaction cost; ModeCycles assigns integer cycle counts and rescales every
// coefficient by lcm(costs)/cost so the model stays integral.
package compile
