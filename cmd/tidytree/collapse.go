package main

import (
	"github.com/js-arias/command"

	"github.com/CDCgov/tidytree/newick"
)

var simplifyCmd = &command.Command{
	Usage: "simplify [<tree-file>]",
	Short: "collapse single-child branches",
	Run:   simplifyRun,
	Long: `
Command simplify reads a Newick tree, excises every internal branch with
exactly one child while preserving path lengths and folding labels
together with a "+" separator, and prints the result as a Newick string.

If no file is given, or the file is "-", the tree is read from the
standard input.
	`,
}

var consolidateCmd = &command.Command{
	Usage: "consolidate [<tree-file>]",
	Short: "collapse near-zero-length branches",
	Run:   consolidateRun,
	Long: `
Command consolidate reads a Newick tree, excises every branch whose
length is effectively zero while folding its label into its parent's,
and prints the result as a Newick string.

If no file is given, or the file is "-", the tree is read from the
standard input.
	`,
}

func simplifyRun(c *command.Command, args []string) error {
	t, err := readTree(args)
	if err != nil {
		return err
	}
	return newick.Write(c.Stdout(), t.Simplify())
}

func consolidateRun(c *command.Command, args []string) error {
	t, err := readTree(args)
	if err != nil {
		return err
	}
	return newick.Write(c.Stdout(), t.Consolidate())
}
