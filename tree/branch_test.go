package tree_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CDCgov/tidytree/newick"
	"github.com/CDCgov/tidytree/tree"
)

// parse is a test helper wrapping newick.Parse.
func parse(t *testing.T, s string) *tree.Branch {
	t.Helper()
	b, err := newick.Parse(s)
	require.NoError(t, err)
	return b
}

func ids(bs []*tree.Branch) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.ID
	}
	return out
}

func TestAddChild(t *testing.T) {
	root := tree.New("root", 0)
	a := root.NewChild("A", 1)
	b := root.NewChild("B", 2)

	assert.Len(t, root.Children, 2)
	assert.Equal(t, root, a.Parent)
	assert.Equal(t, root, b.Parent)
	assert.True(t, root.IsRoot())
	assert.True(t, a.IsLeaf())
	assert.True(t, a.IsChildOf(root))
	assert.True(t, root.HasChild(a))
	assert.True(t, root.IsConsistent())

	// reattaching moves the child, never duplicates it
	other := tree.New("other", 0)
	other.AddChild(a)
	assert.Len(t, root.Children, 1)
	assert.Equal(t, other, a.Parent)
	assert.True(t, root.IsConsistent())
	assert.True(t, other.IsConsistent())
}

func TestAddParent(t *testing.T) {
	root := tree.New("root", 0)
	a := root.NewChild("A", 1)
	mid := a.AddParent(tree.New("mid", 0))

	assert.Equal(t, root, mid.Parent)
	assert.Equal(t, mid, a.Parent)
	assert.True(t, root.IsConsistent())
	assert.Equal(t, []string{"root", "mid", "A"}, ids([]*tree.Branch{root, root.Children[0], mid.Children[0]}))
}

func TestTraversalOrders(t *testing.T) {
	root := parse(t, "((C:3,D:4)E:5,A:1,B:2)F;")

	var pre, post, bfs []string
	root.EachBefore(func(b *tree.Branch) { pre = append(pre, b.ID) })
	root.EachAfter(func(b *tree.Branch) { post = append(post, b.ID) })
	root.Each(func(b *tree.Branch) { bfs = append(bfs, b.ID) })

	assert.Equal(t, []string{"F", "E", "C", "D", "A", "B"}, pre)
	assert.Equal(t, []string{"C", "D", "E", "A", "B", "F"}, post)
	assert.Equal(t, []string{"F", "E", "A", "B", "C", "D"}, bfs)

	var kids []string
	root.EachChild(func(b *tree.Branch) { kids = append(kids, b.ID) })
	assert.Equal(t, []string{"E", "A", "B"}, kids)
}

func TestFixDistances(t *testing.T) {
	root := parse(t, "(A:1,B:2,(C:3,D:4)E:5)F;")

	a := root.Descendant("A")
	e := root.Descendant("E")
	c := root.Descendant("C")

	assert.Equal(t, 0, root.Depth)
	assert.Equal(t, 1, a.Depth)
	assert.Equal(t, 1, e.Depth)
	assert.Equal(t, 2, c.Depth)

	assert.Equal(t, 2, root.Height)
	assert.Equal(t, 1, e.Height)
	assert.Equal(t, 1, a.Height)
	assert.Equal(t, 0, c.Height)

	assert.Equal(t, 4, root.Leaves)
	assert.Equal(t, 2, e.Leaves)
	assert.Equal(t, 1, c.Leaves)

	assert.InDelta(t, 12, e.Weight, 1e-12)
	assert.InDelta(t, 15, root.Weight, 1e-12)

	// invariant: depth is the parent's depth plus one, everywhere
	root.EachBefore(func(b *tree.Branch) {
		if b.IsRoot() {
			assert.Equal(t, 0, b.Depth)
		} else {
			assert.Equal(t, b.Parent.Depth+1, b.Depth)
		}
	})
}

func TestFixDistancesIdempotent(t *testing.T) {
	root := parse(t, "(A:1,B:2,(C:3,D:4)E:5)F;")

	type snap struct {
		depth, height, leaves int
		weight                float64
	}
	record := func() map[string]snap {
		m := make(map[string]snap)
		root.EachBefore(func(b *tree.Branch) {
			m[b.ID] = snap{b.Depth, b.Height, b.Leaves, b.Weight}
		})
		return m
	}

	first := record()
	root.FixDistances()
	assert.Equal(t, first, record())
}

func TestFixDistancesFromDescendant(t *testing.T) {
	root := parse(t, "(A:1,(C:3,D:4)E:5)F;")
	c := root.Descendant("C")

	// calling on any branch recomputes the whole tree
	c.FixDistances()
	assert.Equal(t, 0, root.Depth)
	assert.Equal(t, 2, c.Depth)
	assert.Equal(t, 3, root.Leaves)
}

func TestDescendantQueries(t *testing.T) {
	root := parse(t, "(A:1,B:2,(C:3,D:4)E:5)F;")
	e := root.Descendant("E")
	c := root.Descendant("C")

	assert.Equal(t, root, c.Root())
	assert.Equal(t, []string{"E", "F"}, ids(c.Ancestors()))
	assert.Equal(t, []string{"A", "B", "E", "C", "D"}, ids(root.Descendants()))
	assert.Equal(t, []string{"A", "B", "C", "D"}, ids(root.Tips()))
	assert.Equal(t, 6, root.Size())

	assert.True(t, root.HasDescendant(c))
	assert.True(t, e.HasDescendant(c))
	assert.False(t, e.HasDescendant(e))
	assert.False(t, c.HasDescendant(e))
	assert.True(t, c.IsDescendantOf(root))
	assert.Nil(t, root.Descendant("nope"))
}

func TestClone(t *testing.T) {
	root := parse(t, "(A:1,B:2,(C:3,D:4)E:5)F;")
	cp := root.Clone()

	assert.True(t, cp.IsRoot())
	assert.True(t, cp.IsConsistent())
	assert.Equal(t, newick.Marshal(root), newick.Marshal(cp))

	// mutating the copy leaves the original alone
	cp.Descendant("E").Isolate()
	assert.Equal(t, 6, root.Size())
	assert.Equal(t, 3, cp.Size())
}

func TestObjectRoundTrip(t *testing.T) {
	root := parse(t, "(A:1,B:2,(C:3,D:4)E:5)F;")
	o := root.Object()

	assert.Equal(t, "F", o.ID)
	require.Len(t, o.Children, 3)
	assert.Equal(t, "E", o.Children[2].ID)
	assert.Equal(t, 4.0, o.Children[2].Children[1].Length)

	// plain objects are cycle-free and serialize directly
	raw, err := json.Marshal(o)
	require.NoError(t, err)
	var back tree.Object
	require.NoError(t, json.Unmarshal(raw, &back))

	rebuilt := tree.FromObject(back)
	assert.True(t, rebuilt.IsConsistent())
	assert.Equal(t, newick.Marshal(root), newick.Marshal(rebuilt))
	assert.Equal(t, 4, rebuilt.Leaves)
}
