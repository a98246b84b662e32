// Package dag provides the dependency graph used to order build steps. It
// builds a Directed Acyclic Graph (DAG) of named nodes, detects cycles by
// naming their members, and produces a deterministic topological order:
// among mutually-independent nodes the tie is always broken
// lexicographically, so the same graph yields the same order on every run.
package dag
