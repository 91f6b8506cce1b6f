package tree

import (
	"slices"
)

// consolidateThreshold is the edge length below which Consolidate
// collapses a branch into its parent.
const consolidateThreshold = 0.0005

// Excise removes b from its tree, reattaching each of b's children
// directly to b's parent with b's length absorbed into theirs, so every
// root-to-leaf path keeps its total length. The parent's Representing
// count is incremented.
//
// Excising a root with more than one child returns ErrRootExcise: there
// is no branch to reattach the children to. Excising a root with a
// single child promotes that child to root.
//
// Returns the branch the children now hang from: the old parent, or the
// promoted child for a single-child root. Derived quantities are stale
// until FixDistances.
func (b *Branch) Excise() (*Branch, error) {
	if b.IsRoot() && len(b.Children) > 1 {
		return nil, ErrRootExcise
	}
	p := b.Parent
	children := b.Children
	b.Children = nil
	for _, c := range children {
		c.Length += b.Length
		c.Parent = p
		if p != nil {
			p.Children = append(p.Children, c)
		}
	}
	if p == nil {
		if len(children) == 0 {
			return b, nil
		}
		return children[0], nil
	}
	p.dropChild(b)
	p.Representing++
	b.Parent = nil
	return p, nil
}

// Isolate detaches the subtree rooted at b from the rest of its tree,
// making b a root. Returns b.
func (b *Branch) Isolate() *Branch {
	if b.Parent != nil {
		b.Parent.dropChild(b)
		b.Parent = nil
	}
	return b
}

// Remove drops the subtree rooted at b from its tree and returns the
// root of what remains. Removing a root is a no-op that returns the
// root itself.
func (b *Branch) Remove() *Branch {
	root := b.Root()
	if root == b {
		return root
	}
	b.Isolate()
	return root
}

// Replace puts r in b's place among b's parent's children, preserving
// position. b is detached and returned. Returns ErrRootReplace when b is
// a root.
func (b *Branch) Replace(r *Branch) (*Branch, error) {
	p := b.Parent
	if p == nil {
		return nil, ErrRootReplace
	}
	if r.Parent != nil {
		r.Parent.dropChild(r)
	}
	for i, c := range p.Children {
		if c == b {
			p.Children[i] = r
			break
		}
	}
	r.Parent = p
	b.Parent = nil
	return b, nil
}

// Invert swaps b with its immediate parent: their lengths are exchanged,
// the old parent becomes a child of b, and b's parent becomes the old
// parent's former parent. Returns ErrRootInvert when b is a root.
//
// Invert is a low-level primitive: it deliberately leaves the former
// grandparent's child list pointing at the old parent, so it must be
// applied along a root-to-branch path in root-first order, as Reroot
// does, for the tree to come out consistent.
func (b *Branch) Invert() (*Branch, error) {
	p := b.Parent
	if p == nil {
		return nil, ErrRootInvert
	}
	b.Length, p.Length = p.Length, b.Length
	b.Parent = p.Parent
	p.dropChild(b)
	p.Parent = b
	b.Children = append(b.Children, p)
	return b, nil
}

// Reroot makes b the root of its tree by inverting the chain of
// branches between the old root and b, one link at a time starting
// nearest the root, then recomputes distances. Any previously held root
// reference is obsolete afterwards. Returns b.
func (b *Branch) Reroot() *Branch {
	var path []*Branch
	for cur := b; !cur.IsRoot(); cur = cur.Parent {
		path = append(path, cur)
	}
	for i := len(path) - 1; i >= 0; i-- {
		// every path element has a parent at its turn, so Invert
		// cannot fail here
		_, _ = path[i].Invert()
	}
	return b.FixDistances()
}

// Simplify excises, in post-order, every branch of b's tree that has
// exactly one child, folding its label into the child's with a "+"
// separator, then recomputes distances. Returns the root of the
// simplified tree, which may differ from the old root when the root
// itself had a single child.
func (b *Branch) Simplify() *Branch {
	root := b.Root()
	var order []*Branch
	root.EachAfter(func(d *Branch) { order = append(order, d) })
	for _, d := range order {
		if len(d.Children) != 1 {
			continue
		}
		child := d.Children[0]
		switch {
		case child.ID == "":
			child.ID = d.ID
		case d.ID != "":
			child.ID = d.ID + "+" + child.ID
		}
		next, err := d.Excise()
		if err != nil {
			continue
		}
		if d == root {
			root = next
		}
	}
	return root.FixDistances()
}

// Consolidate excises, in post-order, every non-root branch of b's tree
// whose length is below a near-zero threshold, folding its label into
// its parent's with a "+" separator, then recomputes distances. Returns
// the root.
func (b *Branch) Consolidate() *Branch {
	root := b.Root()
	var order []*Branch
	root.EachAfter(func(d *Branch) { order = append(order, d) })
	for _, d := range order {
		if d.IsRoot() || d.Length >= consolidateThreshold {
			continue
		}
		switch {
		case d.Parent.ID == "":
			d.Parent.ID = d.ID
		case d.ID != "":
			d.Parent.ID = d.Parent.ID + "+" + d.ID
		}
		d.Excise()
	}
	return root.FixDistances()
}

// Sort reorders the children of every branch in the subtree rooted at b,
// in pre-order, using cmp as a three-way comparator. A nil cmp sorts
// ascending by subtree leaf count, so FixDistances should have run
// first. The sort is stable. Returns b.
func (b *Branch) Sort(cmp func(a, c *Branch) int) *Branch {
	if cmp == nil {
		cmp = func(a, c *Branch) int { return a.Leaves - c.Leaves }
	}
	return b.EachBefore(func(d *Branch) {
		slices.SortStableFunc(d.Children, cmp)
	})
}

// Flip reverses the order of b's immediate children. Returns b.
func (b *Branch) Flip() *Branch {
	slices.Reverse(b.Children)
	return b
}
