package tree

// An Object is a plain, cycle-free rendition of a subtree: the same
// shape a hierarchical layout or JSON consumer expects, with no parent
// back-references.
type Object struct {
	ID       string   `json:"id"`
	Length   float64  `json:"length"`
	Children []Object `json:"children,omitempty"`
}

// Object converts the subtree rooted at b into a plain Object suitable
// for JSON serialization.
func (b *Branch) Object() Object {
	o := Object{ID: b.ID, Length: b.Length}
	for _, c := range b.Children {
		o.Children = append(o.Children, c.Object())
	}
	return o
}

// FromObject builds a tree from a plain Object and returns its root,
// with distances already computed.
func FromObject(o Object) *Branch {
	root := fromObject(o)
	return root.FixDistances()
}

func fromObject(o Object) *Branch {
	b := New(o.ID, o.Length)
	for _, c := range o.Children {
		b.AddChild(fromObject(c))
	}
	return b
}
