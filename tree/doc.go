/*
Package tree provides a rooted, ordered, n-ary tree of labeled, weighted
branches, as used to represent phylogenies. A tree is simply its root
Branch; every Branch carries a label, the length of the edge to its
parent, and its child branches.

The package supports traversal (breadth-first, pre-order and post-order),
structural mutation (excision, isolation, inversion, rerooting,
simplification and consolidation), patristic distance queries, and
conversion to cycle-free plain objects and all-pairs leaf distance
matrices.

Derived per-branch quantities (Depth, Height, Leaves, Weight) are only
valid after a call to FixDistances; any structural mutation leaves them
stale until FixDistances runs again. Reroot, Simplify and Consolidate
call it on your behalf.
*/
package tree
