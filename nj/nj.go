/*
Package nj infers unrooted binary phylogenetic trees from pairwise
distance matrices with the neighbor-joining method of Saitou and Nei,
using the sorted-row pruning search of Studier and Keppler to avoid
scanning every pair on every join.

The input matrix must be square and symmetric with a zero diagonal and
no negative entries; Infer validates these preconditions and fails fast
on violations. The resulting tree reproduces the input distances exactly
when they are additive, and minimizes the corrected-distance criterion
pair by pair otherwise.
*/
package nj

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/CDCgov/tidytree/tree"
)

// symmetryTol is the largest |D[i][j]-D[j][i]| accepted before the
// matrix is rejected as asymmetric.
const symmetryTol = 1e-9

// ErrBadMatrix is returned, wrapped with detail, for any malformed
// distance matrix.
var ErrBadMatrix = errors.New("malformed distance matrix")

// Infer builds an unrooted binary tree from the nxn distance matrix d
// and returns its root, with distances computed. ids labels the taxa in
// matrix order; a nil ids labels them with their stringified indices.
func Infer(d *mat.Dense, ids []string) (*tree.Branch, error) {
	rows, cols := d.Dims()
	if rows != cols {
		return nil, fmt.Errorf("%w: %dx%d is not square", ErrBadMatrix, rows, cols)
	}
	m := make([][]float64, rows)
	for i := range m {
		m[i] = mat.Row(nil, i, d)
	}
	return InferMatrix(m, ids)
}

// InferMatrix is Infer for callers holding a raw slice matrix.
func InferMatrix(d [][]float64, ids []string) (*tree.Branch, error) {
	n := len(d)
	if err := validate(d, ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = make([]string, n)
		for i := range ids {
			ids[i] = strconv.Itoa(i)
		}
	}

	st := newState(d, ids)
	for st.cN > 2 {
		i, j := st.search()
		st.join(i, j)
	}
	return st.finish(), nil
}

func validate(d [][]float64, ids []string) error {
	n := len(d)
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 taxa, have %d", ErrBadMatrix, n)
	}
	if ids != nil && len(ids) != n {
		return fmt.Errorf("%w: %d taxa but %d labels", ErrBadMatrix, n, len(ids))
	}
	// every row must be full-length before the symmetry loop reads
	// across rows
	for i, row := range d {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d entries, want %d", ErrBadMatrix, i, len(row), n)
		}
	}
	for i, row := range d {
		if row[i] != 0 {
			return fmt.Errorf("%w: nonzero diagonal at %d", ErrBadMatrix, i)
		}
		for j, v := range row {
			if v < 0 {
				return fmt.Errorf("%w: negative distance at (%d,%d)", ErrBadMatrix, i, j)
			}
			if math.Abs(v-d[j][i]) > symmetryTol {
				return fmt.Errorf("%w: asymmetric at (%d,%d)", ErrBadMatrix, i, j)
			}
		}
	}
	return nil
}

// state carries the live neighbor-joining bookkeeping. Slot i of the
// working matrix stands for original taxon i until it is joined; after a
// join of (i, j), slot i is retired and slot j stands for the merged
// cluster, which is assigned the next free logical label.
type state struct {
	n  int // original taxon count
	cN int // active taxon count

	d       [][]float64 // working distances, indexed by slot
	rowSums []float64
	sumMax  float64 // largest active row sum, for the pruning bound

	// Per-slot distances sorted ascending with the matching slot
	// permutation. Rows other than the freshly merged one go stale as
	// joins proceed; stale entries only loosen the pruning bound, since
	// fresh distances are re-read from d before a pair is accepted.
	sorted [][]float64
	perm   [][]int

	removed []bool

	// Logical label per slot, and the node built for each label. Labels
	// below n are leaves; labels from n up are merge results.
	slotLabel []int
	nodes     []*tree.Branch
	nextLabel int

	ids []string
}

func newState(d [][]float64, ids []string) *state {
	n := len(d)
	st := &state{
		n:         n,
		cN:        n,
		d:         make([][]float64, n),
		rowSums:   make([]float64, n),
		sorted:    make([][]float64, n),
		perm:      make([][]int, n),
		removed:   make([]bool, n),
		slotLabel: make([]int, n),
		nodes:     make([]*tree.Branch, 2*n),
		nextLabel: n,
		ids:       ids,
	}
	for i := range st.d {
		st.d[i] = append([]float64(nil), d[i]...)
		st.slotLabel[i] = i
		sum := 0.0
		for _, v := range d[i] {
			sum += v
		}
		st.rowSums[i] = sum
		if sum > st.sumMax {
			st.sumMax = sum
		}
		st.sorted[i], st.perm[i] = sortRow(d[i], i)
	}
	return st
}

// search finds the active pair (i, j) minimizing
// Q(i,j) = (cN-2)*D[i][j] - rowSums[i] - rowSums[j], scanning each row's
// candidates in ascending sorted-distance order and abandoning a row as
// soon as the bound (cN-2)*dist - rowSums[i] - sumMax proves it cannot
// improve on the best pair found so far. Ties keep the first candidate
// met in scan order.
func (st *state) search() (int, int) {
	n2 := float64(st.cN - 2)
	qMin := math.Inf(1)
	minI, minJ := -1, -1

	// seed with each row's nearest active neighbor
	for r := 0; r < st.n; r++ {
		if st.removed[r] || len(st.perm[r]) == 0 {
			continue
		}
		c := st.perm[r][0]
		if st.removed[c] {
			continue
		}
		if q := st.d[r][c]*n2 - st.rowSums[r] - st.rowSums[c]; q < qMin {
			qMin, minI, minJ = q, r, c
		}
	}

	for r := 0; r < st.n; r++ {
		if st.removed[r] {
			continue
		}
		for c, dist := range st.sorted[r] {
			c2 := st.perm[r][c]
			if st.removed[c2] {
				continue
			}
			if dist*n2-st.rowSums[r]-st.sumMax > qMin {
				break
			}
			if q := st.d[r][c2]*n2 - st.rowSums[r] - st.rowSums[c2]; q < qMin {
				qMin, minI, minJ = q, r, c2
			}
		}
	}
	return minI, minJ
}

// node returns the branch for a logical label, creating the leaf on
// first use, and sets the length of its edge to the merge node being
// built.
func (st *state) node(label int, length float64) *tree.Branch {
	if label < st.n {
		leaf := tree.New(st.ids[label], length)
		st.nodes[label] = leaf
		return leaf
	}
	b := st.nodes[label]
	b.Length = length
	return b
}

// join merges slots i and j: builds the new internal node with branch
// lengths d1 = D/2 + (r_i - r_j)/(2cN-4) and d2 = D - d1, folds the
// merged cluster's distances into slot j, and retires slot i.
func (st *state) join(i, j int) {
	dij := st.d[i][j]
	d1 := 0.5*dij + (st.rowSums[i]-st.rowSums[j])/float64(2*st.cN-4)
	d2 := dij - d1

	n1 := st.node(st.slotLabel[i], d1)
	n2 := st.node(st.slotLabel[j], d2)
	merged := tree.New("", 0)
	merged.AddChild(n1)
	merged.AddChild(n2)

	st.recalculate(i, j)
	st.sorted[j], st.perm[j] = sortRow(st.d[j], j)
	st.sorted[i], st.perm[i] = nil, nil
	st.cN--

	st.nodes[st.nextLabel] = merged
	st.slotLabel[i] = -1
	st.slotLabel[j] = st.nextLabel
	st.nextLabel++
}

// recalculate replaces slot j's row and column with the merged
// cluster's distances, 0.5*(D[i][k]+D[j][k]-D[i][j]) for every active k,
// and updates the row sums incrementally.
func (st *state) recalculate(i, j int) {
	dij := st.d[i][j]
	newRow := make([]float64, st.n)
	change := make([]float64, st.n)
	st.removed[i] = true
	sum := 0.0
	for k := 0; k < st.n; k++ {
		if st.removed[k] || k == j {
			continue
		}
		both := st.d[i][k] + st.d[j][k]
		newRow[k] = 0.5 * (both - dij)
		change[k] = -0.5 * (both + dij)
		sum += newRow[k]
	}
	newMax := 0.0
	for k := 0; k < st.n; k++ {
		st.d[i][k] = -1
		st.d[k][i] = -1
		if st.removed[k] || k == j {
			continue
		}
		st.d[j][k] = newRow[k]
		st.d[k][j] = newRow[k]
		st.rowSums[k] += change[k]
		if st.rowSums[k] > newMax {
			newMax = st.rowSums[k]
		}
	}
	st.d[j][j] = 0
	st.rowSums[i] = 0
	st.rowSums[j] = sum
	if sum > newMax {
		newMax = sum
	}
	st.sumMax = newMax
}

// finish joins the last two active clusters at half the remaining
// distance each and returns the repaired, measured tree.
func (st *state) finish() *tree.Branch {
	i, j := -1, -1
	for k := 0; k < st.n; k++ {
		if st.removed[k] {
			continue
		}
		if i < 0 {
			i = k
		} else {
			j = k
			break
		}
	}
	half := st.d[i][j] / 2
	n1 := st.node(st.slotLabel[i], half)
	n2 := st.node(st.slotLabel[j], half)
	root := tree.New("", 0)
	root.AddChild(n1)
	root.AddChild(n2)
	root.FixParenthood()
	return root.FixDistances()
}

// sortRow returns row's distances in ascending order alongside the
// matching slot indices, skipping the row's own diagonal entry. Ties
// keep slot order, so the pruning scan is deterministic.
func sortRow(row []float64, self int) ([]float64, []int) {
	dist := make([]float64, 0, len(row)-1)
	perm := make([]int, 0, len(row)-1)
	for j, v := range row {
		if j != self {
			dist = append(dist, v)
			perm = append(perm, j)
		}
	}
	sort.Stable(&rowSorter{dist, perm})
	return dist, perm
}

type rowSorter struct {
	dist []float64
	perm []int
}

func (s *rowSorter) Len() int           { return len(s.dist) }
func (s *rowSorter) Less(i, j int) bool { return s.dist[i] < s.dist[j] }
func (s *rowSorter) Swap(i, j int) {
	s.dist[i], s.dist[j] = s.dist[j], s.dist[i]
	s.perm[i], s.perm[j] = s.perm[j], s.perm[i]
}
