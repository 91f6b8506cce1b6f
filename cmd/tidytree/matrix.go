package main

import (
	"encoding/csv"
	"strconv"

	"github.com/js-arias/command"
)

var matrixCmd = &command.Command{
	Usage: "matrix [<tree-file>]",
	Short: "print the patristic distance matrix of a tree",
	Run:   matrixRun,
	Long: `
Command matrix reads a Newick tree and prints the matrix of pairwise
patristic distances between its leaves, in CSV format with a header row,
suitable as input for the nj command.

If no file is given, or the file is "-", the tree is read from the
standard input.
	`,
}

func matrixRun(c *command.Command, args []string) error {
	t, err := readTree(args)
	if err != nil {
		return err
	}
	m, ids := t.DistanceMatrix()

	w := csv.NewWriter(c.Stdout())
	if err := w.Write(append([]string{""}, ids...)); err != nil {
		return err
	}
	for i, id := range ids {
		row := make([]string, len(ids)+1)
		row[0] = id
		for j := range ids {
			row[j+1] = strconv.FormatFloat(m.At(i, j), 'f', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
