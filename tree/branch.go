package tree

import (
	"errors"
)

// Errors reported for invalid structural operations. They are returned
// wrapped; test with errors.Is.
var (
	// ErrRootExcise is returned when excising a root with more than one
	// child, which has no unambiguous reattachment target.
	ErrRootExcise = errors.New("cannot excise a root with multiple children")

	// ErrRootInvert is returned when inverting a root, which has no
	// parent to invert with.
	ErrRootInvert = errors.New("cannot invert the root")

	// ErrRootReplace is returned when replacing a root, which has no
	// parent to hold the replacement.
	ErrRootReplace = errors.New("cannot replace the root")

	// ErrDisjoint is returned when relating two branches that do not
	// share a root.
	ErrDisjoint = errors.New("branches do not belong to the same tree")

	// ErrNotDescendant is returned when a path query names a branch that
	// is not a descendant of the receiver.
	ErrNotDescendant = errors.New("branch is not a descendant")
)

// A Branch is a node in a phylogenetic tree. The zero value is a bare,
// unlabeled root; use New or AddChild to build trees.
//
// Depth, Height, Leaves and Weight are derived quantities, valid only
// after FixDistances has run on a structurally unchanged tree.
type Branch struct {
	// The label of this branch. Internal branches are often unlabeled.
	ID string

	// The length of the edge between this branch and its parent.
	Length float64

	// The parent branch, or nil for the root. This is a back-reference
	// only; a branch is owned by its parent's Children.
	Parent *Branch

	// All children of this branch, in order.
	Children []*Branch

	// Number of edges from the root.
	Depth int

	// Number of edges to the furthest descendant leaf.
	Height int

	// Number of leaves in the subtree rooted here (1 for a leaf).
	Leaves int

	// Length plus the sum of the children's Weight: the total branch
	// length of the subtree rooted here, including its own edge.
	// Normalize rescales this field in place.
	Weight float64

	// Number of excised branches this branch has absorbed.
	Representing int
}

// New returns a branch with the given label and edge length and no
// parent or children.
func New(id string, length float64) *Branch {
	return &Branch{ID: id, Length: length}
}

// AddChild attaches c as the last child of b and sets its parent to b.
// If c already has a parent, it is detached from it first. Returns c.
func (b *Branch) AddChild(c *Branch) *Branch {
	if c.Parent != nil {
		c.Parent.dropChild(c)
	}
	c.Parent = b
	b.Children = append(b.Children, c)
	return c
}

// NewChild creates a branch with the given label and length, attaches it
// as the last child of b, and returns it.
func (b *Branch) NewChild(id string, length float64) *Branch {
	return b.AddChild(New(id, length))
}

// AddParent inserts p between b and b's current parent: p takes b's place
// among the old parent's children (if any) and b becomes a child of p.
// Returns p.
func (b *Branch) AddParent(p *Branch) *Branch {
	if old := b.Parent; old != nil {
		for i, c := range old.Children {
			if c == b {
				old.Children[i] = p
				break
			}
		}
		p.Parent = old
	}
	b.Parent = p
	p.Children = append(p.Children, b)
	return p
}

// IsRoot reports whether b has no parent.
func (b *Branch) IsRoot() bool { return b.Parent == nil }

// IsLeaf reports whether b has no children.
func (b *Branch) IsLeaf() bool { return len(b.Children) == 0 }

// IsChildOf reports whether p is the parent of b.
func (b *Branch) IsChildOf(p *Branch) bool { return b.Parent == p }

// IsDescendantOf reports whether a is a proper ancestor of b.
func (b *Branch) IsDescendantOf(a *Branch) bool {
	for cur := b.Parent; cur != nil; cur = cur.Parent {
		if cur == a {
			return true
		}
	}
	return false
}

// HasChild reports whether c is an immediate child of b.
func (b *Branch) HasChild(c *Branch) bool {
	for _, child := range b.Children {
		if child == c {
			return true
		}
	}
	return false
}

// HasDescendant reports whether d is a proper descendant of b.
func (b *Branch) HasDescendant(d *Branch) bool {
	return d != b && d.IsDescendantOf(b)
}

// Root walks the parent chain and returns the root of the tree
// containing b.
func (b *Branch) Root() *Branch {
	cur := b
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// Ancestors returns the chain of b's proper ancestors, nearest first.
func (b *Branch) Ancestors() []*Branch {
	var as []*Branch
	for cur := b.Parent; cur != nil; cur = cur.Parent {
		as = append(as, cur)
	}
	return as
}

// Descendants returns all proper descendants of b in pre-order.
func (b *Branch) Descendants() []*Branch {
	var ds []*Branch
	b.EachBefore(func(d *Branch) {
		if d != b {
			ds = append(ds, d)
		}
	})
	return ds
}

// Descendant returns the first branch with the given label in a
// pre-order scan of the subtree rooted at b (including b itself), or nil
// if there is none.
func (b *Branch) Descendant(id string) *Branch {
	var found *Branch
	b.EachBefore(func(d *Branch) {
		if found == nil && d.ID == id {
			found = d
		}
	})
	return found
}

// Tips returns the leaves of the subtree rooted at b, in pre-order.
func (b *Branch) Tips() []*Branch {
	var tips []*Branch
	b.EachBefore(func(d *Branch) {
		if d.IsLeaf() {
			tips = append(tips, d)
		}
	})
	return tips
}

// Size returns the number of branches in the subtree rooted at b,
// including b itself.
func (b *Branch) Size() int {
	n := 0
	b.EachBefore(func(*Branch) { n++ })
	return n
}

// IsConsistent reports whether every branch in the subtree rooted at b
// is the parent of each of its children, recursively.
func (b *Branch) IsConsistent() bool {
	for _, c := range b.Children {
		if c.Parent != b || !c.IsConsistent() {
			return false
		}
	}
	return true
}

// FixParenthood repairs the parent back-reference of every descendant so
// that each child points at the branch that holds it. Returns b.
func (b *Branch) FixParenthood() *Branch {
	for _, c := range b.Children {
		c.Parent = b
		c.FixParenthood()
	}
	return b
}

// Clone returns a deep copy of the subtree rooted at b. The copy is a
// root: its Parent is nil and its Length is preserved.
func (b *Branch) Clone() *Branch {
	c := &Branch{
		ID:           b.ID,
		Length:       b.Length,
		Depth:        b.Depth,
		Height:       b.Height,
		Leaves:       b.Leaves,
		Weight:       b.Weight,
		Representing: b.Representing,
	}
	for _, child := range b.Children {
		cc := child.Clone()
		cc.Parent = c
		c.Children = append(c.Children, cc)
	}
	return c
}

// dropChild removes c from b's children without touching c's parent
// reference.
func (b *Branch) dropChild(c *Branch) {
	for i, child := range b.Children {
		if child == c {
			b.Children = append(b.Children[:i], b.Children[i+1:]...)
			return
		}
	}
}
