package nj_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/CDCgov/tidytree/newick"
	"github.com/CDCgov/tidytree/nj"
	"github.com/CDCgov/tidytree/tree"
)

// The classic 4-taxon worked example: additive distances on the quartet
// AB|CD with external branches A=2, B=3, C=4, D=4 and an internal edge
// of 3.
var quartet = [][]float64{
	{0, 5, 9, 9},
	{5, 0, 10, 10},
	{9, 10, 0, 8},
	{9, 10, 8, 0},
}

func TestInferQuartet(t *testing.T) {
	root, err := nj.InferMatrix(quartet, []string{"A", "B", "C", "D"})
	require.NoError(t, err)

	assert.True(t, root.IsRoot())
	assert.True(t, root.IsConsistent())
	assert.Equal(t, 4, root.Leaves)

	a := root.Descendant("A")
	b := root.Descendant("B")
	require.NotNil(t, a)
	require.NotNil(t, b)

	// A and B join first and come out as sisters
	assert.Equal(t, a.Parent, b.Parent)
	assert.InDelta(t, 2, a.Length, 1e-9)
	assert.InDelta(t, 3, b.Length, 1e-9)

	// the input distances are additive, so the tree reproduces them
	m, ids := root.DistanceMatrix()
	require.Equal(t, []string{"A", "B", "C", "D"}, ids)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.InDelta(t, quartet[i][j], m.At(i, j), 1e-9, "distance %s-%s", ids[i], ids[j])
		}
	}
}

func TestInferQuartetUnrootedSisters(t *testing.T) {
	root, err := nj.InferMatrix(quartet, []string{"A", "B", "C", "D"})
	require.NoError(t, err)

	// in the unrooted sense C and D are sisters: the path between them
	// crosses no other leaf's attachment
	c := root.Descendant("C")
	d := root.Descendant("D")
	dist, err := c.DistanceTo(d)
	require.NoError(t, err)
	assert.InDelta(t, 8, dist, 1e-9)

	ab, err := root.Descendant("A").DistanceTo(root.Descendant("B"))
	require.NoError(t, err)
	assert.InDelta(t, 5, ab, 1e-9)
}

func TestInferPair(t *testing.T) {
	root, err := nj.InferMatrix([][]float64{{0, 4}, {4, 0}}, []string{"L", "R"})
	require.NoError(t, err)

	require.Len(t, root.Children, 2)
	assert.InDelta(t, 2, root.Children[0].Length, 1e-12)
	assert.InDelta(t, 2, root.Children[1].Length, 1e-12)
	assert.Equal(t, "L", root.Children[0].ID)
	assert.Equal(t, "R", root.Children[1].ID)
}

func TestInferDefaultLabels(t *testing.T) {
	root, err := nj.InferMatrix(quartet, nil)
	require.NoError(t, err)
	for _, want := range []string{"0", "1", "2", "3"} {
		assert.NotNil(t, root.Descendant(want), "label %q", want)
	}
}

func TestInferFromDense(t *testing.T) {
	src := "(A:1,B:2,(C:3,D:4)E:5)F;"
	orig, err := newick.Parse(src)
	require.NoError(t, err)
	m, ids := orig.DistanceMatrix()

	root, err := nj.Infer(m, ids)
	require.NoError(t, err)

	// additive input: every pairwise distance is reproduced
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			got, err := tree.DistanceBetween(root.Descendant(a), root.Descendant(b))
			require.NoError(t, err)
			want, err := tree.DistanceBetween(orig.Descendant(a), orig.Descendant(b))
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-9, "distance %s-%s", a, b)
		}
	}
}

func TestInferValidation(t *testing.T) {
	cases := map[string]struct {
		d   [][]float64
		ids []string
	}{
		"too small":    {[][]float64{{0}}, nil},
		"ragged":       {[][]float64{{0, 1}, {1}}, nil},
		"empty row":    {[][]float64{{0, 1}, {}}, nil},
		"long row":     {[][]float64{{0, 1}, {1, 0, 2}}, nil},
		"asymmetric":   {[][]float64{{0, 1}, {2, 0}}, nil},
		"diagonal":     {[][]float64{{1, 1}, {1, 0}}, nil},
		"negative":     {[][]float64{{0, -1}, {-1, 0}}, nil},
		"label count":  {[][]float64{{0, 1}, {1, 0}}, []string{"A"}},
	}
	for name, c := range cases {
		_, err := nj.InferMatrix(c.d, c.ids)
		assert.ErrorIs(t, err, nj.ErrBadMatrix, name)
	}
}

func TestInferNonSquareDense(t *testing.T) {
	_, err := nj.Infer(mat.NewDense(2, 3, nil), nil)
	assert.ErrorIs(t, err, nj.ErrBadMatrix)
}
