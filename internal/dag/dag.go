package dag

import (
	"fmt"
	"sort"
)

// node is a single vertex with its adjacency in both directions.
type node struct {
	id         string
	deps       map[string]*node
	dependents map[string]*node
}

// Graph is a directed graph keyed by node ID. It is not safe for concurrent
// mutation; the pipeline builds and orders a graph within a single run.
type Graph struct {
	nodes map[string]*node
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
}

// Has reports whether a node with the given ID exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. An error is
// returned if either node does not exist or if the edge would create a
// self-reference.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode

	return nil
}

// TopoSort returns all node IDs ordered so that every dependency precedes
// its dependents (Kahn's algorithm). Ready nodes are emitted in
// lexicographic order, which makes the result deterministic for a given
// graph. A cycle yields an error naming its members.
func (g *Graph) TopoSort() ([]string, error) {
	indegree := make(map[string]int, len(g.nodes))
	for id, n := range g.nodes {
		indegree[id] = len(n.deps)
	}

	var ready []string
	for id, d := range indegree {
		if d == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		var unblocked []string
		for depID := range g.nodes[id].dependents {
			indegree[depID]--
			if indegree[depID] == 0 {
				unblocked = append(unblocked, depID)
			}
		}
		sort.Strings(unblocked)
		ready = mergeSorted(ready, unblocked)
	}

	if len(order) != len(g.nodes) {
		cycle := g.FindCycle()
		return nil, fmt.Errorf("cycle detected involving %v", cycle)
	}
	return order, nil
}

// mergeSorted merges two lexicographically sorted slices into one.
func mergeSorted(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] <= b[j] {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// FindCycle searches the graph for a dependency cycle using depth-first
// search. It returns the IDs of the members of the first cycle found, in
// traversal order, or nil if the graph is acyclic. The search starts from
// nodes in lexicographic order so the reported cycle is stable.
func (g *Graph) FindCycle() []string {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string

	var visit func(n *node) []string
	visit = func(n *node) []string {
		visited[n.id] = true
		onStack[n.id] = true
		stack = append(stack, n.id)

		for _, depID := range sortedKeys(n.dependents) {
			dep := n.dependents[depID]
			if onStack[dep.id] {
				// Slice the stack back to the first occurrence: those
				// entries are exactly the cycle members.
				for i, id := range stack {
					if id == dep.id {
						return append([]string(nil), stack[i:]...)
					}
				}
			}
			if !visited[dep.id] {
				if cycle := visit(dep); cycle != nil {
					return cycle
				}
			}
		}

		onStack[n.id] = false
		stack = stack[:len(stack)-1]
		return nil
	}

	for _, id := range sortedKeys(g.nodes) {
		if !visited[id] {
			if cycle := visit(g.nodes[id]); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

func sortedKeys(m map[string]*node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
