// Package hcl loads declarative experiment definitions from .hcl files and
// evaluates them into rv experiments.
//
// A definition file holds `variable`, `locals` and `experiment` blocks.
// Variables are bound from runner arguments at evaluation time, so loading
// only parses and indexes; nothing is evaluated until an experiment is
// requested. Each experiment is exposed to the registry as `hcl.<name>`.
package hcl
