package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("a")
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Has("a"))

	g.AddNode("a") // Test idempotency
	assert.Equal(t, 1, g.Len())

	g.AddNode("b")
	assert.Equal(t, 2, g.Len())
	assert.True(t, g.Has("b"))
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("a", "b") // b depends on a
		require.NoError(t, err)

		nodeA := g.nodes["a"]
		nodeB := g.nodes["b"]
		assert.Contains(t, nodeA.dependents, "b")
		assert.Contains(t, nodeB.deps, "a")
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode("a")

		err := g.AddEdge("dne", "a")
		require.Error(t, err)

		err = g.AddEdge("a", "dne")
		require.Error(t, err)

		err = g.AddEdge("a", "a")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "self-referential")
	})
}

func TestTopoSort(t *testing.T) {
	t.Run("independent nodes come out lexicographically", func(t *testing.T) {
		g := New()
		for _, id := range []string{"zeta", "alpha", "mid"} {
			g.AddNode(id)
		}

		order, err := g.TopoSort()
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "mid", "zeta"}, order)
	})

	t.Run("dependencies precede dependents", func(t *testing.T) {
		g := New()
		for _, id := range []string{"a", "b", "c", "d"} {
			g.AddNode(id)
		}
		// d -> b -> a, c independent.
		require.NoError(t, g.AddEdge("d", "b"))
		require.NoError(t, g.AddEdge("b", "a"))

		order, err := g.TopoSort()
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "d", "b", "a"}, order)
	})

	t.Run("is deterministic across runs", func(t *testing.T) {
		build := func() *Graph {
			g := New()
			for _, id := range []string{"x", "m", "q", "b", "z"} {
				g.AddNode(id)
			}
			require.NoError(t, g.AddEdge("z", "b"))
			return g
		}

		first, err := build().TopoSort()
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := build().TopoSort()
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("cycle is an error", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a"))

		_, err := g.TopoSort()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cycle")
	})
}

func TestFindCycle(t *testing.T) {
	t.Run("acyclic graph has no cycle", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))

		assert.Nil(t, g.FindCycle())
	})

	t.Run("three node cycle names all members", func(t *testing.T) {
		g := New()
		for _, id := range []string{"a", "b", "c", "off"} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("c", "a"))
		// A node hanging off the cycle must not be reported as a member.
		require.NoError(t, g.AddEdge("c", "off"))

		cycle := g.FindCycle()
		require.Len(t, cycle, 3)
		assert.ElementsMatch(t, []string{"a", "b", "c"}, cycle)
	})
}
