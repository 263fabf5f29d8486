// Package dag holds the dependency graph between the runner commands of an
// experiment plan. Nodes are command names; an edge a -> b means b consumes
// what a produces. The graph rejects cycles and yields a deterministic
// topological order.
package dag
