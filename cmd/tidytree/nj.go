package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/js-arias/command"

	"github.com/CDCgov/tidytree/newick"
	"github.com/CDCgov/tidytree/nj"
)

var njCmd = &command.Command{
	Usage: "nj [<matrix-file>]",
	Short: "infer a tree from a distance matrix",
	Long: `
Command nj reads a pairwise distance matrix in CSV format and infers an
unrooted binary tree with the neighbor-joining method, printing the
result as a Newick string.

The CSV input must have a header row naming the taxa, and each following
row must start with the taxon name followed by its distances, in header
order:

	,A,B,C,D
	A,0,5,9,9
	B,5,0,10,10
	C,9,10,0,8
	D,9,10,8,0

If no file is given, or the file is "-", the matrix is read from the
standard input.
	`,
	Run: njRun,
}

func njRun(c *command.Command, args []string) error {
	in, err := openInput(args)
	if err != nil {
		return err
	}
	defer in.Close()

	ids, d, err := readMatrixCSV(in)
	if err != nil {
		return fmt.Errorf("while reading matrix: %v", err)
	}
	t, err := nj.InferMatrix(d, ids)
	if err != nil {
		return err
	}
	return newick.Write(c.Stdout(), t)
}

// readMatrixCSV parses a labeled square distance matrix: a header row
// with taxon names, then one row per taxon of name plus distances.
func readMatrixCSV(in io.Reader) ([]string, [][]float64, error) {
	r := csv.NewReader(in)
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("expected a header and at least one row, got %d lines", len(rows))
	}
	ids := rows[0][1:]
	n := len(ids)
	d := make([][]float64, 0, n)
	for _, row := range rows[1:] {
		if len(row) != n+1 {
			return nil, nil, fmt.Errorf("row %q: expected %d fields", row[0], n+1)
		}
		dists := make([]float64, n)
		for i, f := range row[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("row %q: bad distance %q", row[0], f)
			}
			dists[i] = v
		}
		d = append(d, dists)
	}
	return ids, d, nil
}
