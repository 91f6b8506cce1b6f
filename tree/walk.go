package tree

// Each visits every branch in the subtree rooted at b, including b
// itself, in breadth-first order, and applies fn to each. Returns b for
// chaining.
func (b *Branch) Each(fn func(*Branch)) *Branch {
	queue := []*Branch{b}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		fn(cur)
		queue = append(queue, cur.Children...)
	}
	return b
}

// EachBefore visits every branch in the subtree rooted at b in pre-order
// (a branch before its children) and applies fn to each. Returns b.
func (b *Branch) EachBefore(fn func(*Branch)) *Branch {
	fn(b)
	for _, c := range b.Children {
		c.EachBefore(fn)
	}
	return b
}

// EachAfter visits every branch in the subtree rooted at b in post-order
// (a branch after its children) and applies fn to each. Returns b.
func (b *Branch) EachAfter(fn func(*Branch)) *Branch {
	for _, c := range b.Children {
		c.EachAfter(fn)
	}
	fn(b)
	return b
}

// EachChild applies fn to each immediate child of b, in order.
// Returns b.
func (b *Branch) EachChild(fn func(*Branch)) *Branch {
	for _, c := range b.Children {
		fn(c)
	}
	return b
}
