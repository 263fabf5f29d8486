// Package registry is the glue between experiment sets and the CLI.
//
// Each experiment set (compiled Go code or a loaded HCL definition) is a
// Module that registers named methods. A method declares the runner
// arguments it accepts and returns the experiments it builds. The app
// selects methods by name, validates the arguments against each method's
// declared parameters, and calls them.
package registry
