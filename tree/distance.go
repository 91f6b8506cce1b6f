package tree

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// FixDistances recomputes the derived quantities of every branch in the
// tree containing b, starting from its root: a pre-order pass assigns
// Depth (0 at the root, parent's plus one below it) while tracking the
// maximum, and a post-order pass assigns Height as the distance to that
// maximum, Leaves as the subtree leaf count, and Weight as the subtree's
// total branch length including the branch's own edge. Idempotent.
// Returns b for chaining.
func (b *Branch) FixDistances() *Branch {
	root := b.Root()
	maxDepth := 0
	root.EachBefore(func(d *Branch) {
		if d.IsRoot() {
			d.Depth = 0
		} else {
			d.Depth = d.Parent.Depth + 1
		}
		if d.Depth > maxDepth {
			maxDepth = d.Depth
		}
	})
	root.EachAfter(func(d *Branch) {
		d.Height = maxDepth - d.Depth
		if d.IsLeaf() {
			d.Leaves = 1
			d.Weight = d.Length
			return
		}
		leaves := 0
		weight := d.Length
		for _, c := range d.Children {
			leaves += c.Leaves
			weight += c.Weight
		}
		d.Leaves = leaves
		d.Weight = weight
	})
	return b
}

// MRCA returns the most recent common ancestor of b and other: the
// nearest ancestor of b (possibly b itself) that contains other in its
// subtree. Returns ErrDisjoint if the two branches do not share a root.
func (b *Branch) MRCA(other *Branch) (*Branch, error) {
	for cur := b; cur != nil; cur = cur.Parent {
		if cur == other || cur.HasDescendant(other) {
			return cur, nil
		}
	}
	return nil, fmt.Errorf("mrca of %q and %q: %w", b.ID, other.ID, ErrDisjoint)
}

// DepthOf returns the sum of edge lengths along the path from d up to b.
// d must be b itself (depth 0) or a descendant of b; otherwise
// ErrNotDescendant is returned.
func (b *Branch) DepthOf(d *Branch) (float64, error) {
	depth := 0.0
	for cur := d; cur != b; cur = cur.Parent {
		if cur == nil {
			return 0, fmt.Errorf("depth of %q below %q: %w", d.ID, b.ID, ErrNotDescendant)
		}
		depth += cur.Length
	}
	return depth, nil
}

// DistanceTo returns the patristic distance between b and cousin: the
// sum of edge lengths along the path through their most recent common
// ancestor. Returns ErrDisjoint if they do not share a tree.
func (b *Branch) DistanceTo(cousin *Branch) (float64, error) {
	mrca, err := b.MRCA(cousin)
	if err != nil {
		return 0, err
	}
	down, err := mrca.DepthOf(b)
	if err != nil {
		return 0, err
	}
	up, err := mrca.DepthOf(cousin)
	if err != nil {
		return 0, err
	}
	return down + up, nil
}

// DistanceBetween returns the patristic distance between a and b, which
// must share a tree.
func DistanceBetween(a, b *Branch) (float64, error) {
	return a.DistanceTo(b)
}

// DistanceMatrix returns the all-pairs patristic distance matrix over
// the leaves of the subtree rooted at b, together with the leaf labels
// in matrix order (pre-order).
func (b *Branch) DistanceMatrix() (*mat.Dense, []string) {
	tips := b.Tips()
	n := len(tips)
	ids := make([]string, n)
	for i, t := range tips {
		if t.ID == "" {
			ids[i] = strconv.Itoa(i)
		} else {
			ids[i] = t.ID
		}
	}
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			anc := mrcaOf(tips[i], tips[j])
			di := pathLength(tips[i], anc)
			dj := pathLength(tips[j], anc)
			m.Set(i, j, di+dj)
			m.Set(j, i, di+dj)
		}
	}
	return m, ids
}

// mrcaOf finds the common ancestor of two branches of the same tree by
// marking the ancestor chain of one and walking up from the other.
func mrcaOf(a, b *Branch) *Branch {
	seen := make(map[*Branch]bool)
	for cur := a; cur != nil; cur = cur.Parent {
		seen[cur] = true
	}
	cur := b
	for !seen[cur] {
		cur = cur.Parent
	}
	return cur
}

// pathLength sums edge lengths from d up to its ancestor anc.
func pathLength(d, anc *Branch) float64 {
	sum := 0.0
	for cur := d; cur != anc; cur = cur.Parent {
		sum += cur.Length
	}
	return sum
}

// Normalize linearly rescales the Weight of every branch in the subtree
// rooted at b into the interval [min, max]. FixDistances restores the
// cumulative-length semantics of Weight. Returns b.
func (b *Branch) Normalize(min, max float64) *Branch {
	lo, hi := b.Weight, b.Weight
	b.Each(func(d *Branch) {
		if d.Weight < lo {
			lo = d.Weight
		}
		if d.Weight > hi {
			hi = d.Weight
		}
	})
	if hi == lo {
		b.Each(func(d *Branch) { d.Weight = min })
		return b
	}
	ratio := (max - min) / (hi - lo)
	b.Each(func(d *Branch) { d.Weight = (d.Weight-lo)*ratio + min })
	return b
}
