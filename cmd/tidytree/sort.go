package main

import (
	"github.com/js-arias/command"

	"github.com/CDCgov/tidytree/newick"
	"github.com/CDCgov/tidytree/tree"
)

var sortCmd = &command.Command{
	Usage:    "sort [--desc] [<tree-file>]",
	Short:    "sort the children of every branch",
	SetFlags: sortFlags,
	Run:      sortRun,
	Long: `
Command sort reads a Newick tree, orders the children of every branch by
subtree size (ascending by default), and prints the result as a Newick
string.

If no file is given, or the file is "-", the tree is read from the
standard input.
	`,
}

var sortDesc bool

func sortFlags(c *command.Command) {
	c.Flags().BoolVar(&sortDesc, "desc", false, "sort larger subtrees first")
}

func sortRun(c *command.Command, args []string) error {
	t, err := readTree(args)
	if err != nil {
		return err
	}
	var cmp func(a, b *tree.Branch) int
	if sortDesc {
		cmp = func(a, b *tree.Branch) int { return b.Leaves - a.Leaves }
	}
	return newick.Write(c.Stdout(), t.Sort(cmp))
}
