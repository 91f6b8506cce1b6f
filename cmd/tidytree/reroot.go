package main

import (
	"fmt"

	"github.com/js-arias/command"

	"github.com/CDCgov/tidytree/newick"
)

var rerootCmd = &command.Command{
	Usage:    "reroot --on <branch> [<tree-file>]",
	Short:    "reroot a tree on a named branch",
	SetFlags: rerootFlags,
	Run:      rerootRun,
	Long: `
Command reroot reads a Newick tree, makes the branch with the given
label the new root, and prints the rerooted tree as a Newick string.
Pairwise patristic distances are unchanged by rerooting.

If no file is given, or the file is "-", the tree is read from the
standard input.
	`,
}

var rerootOn string

func rerootFlags(c *command.Command) {
	c.Flags().StringVar(&rerootOn, "on", "", "label of the new root branch")
}

func rerootRun(c *command.Command, args []string) error {
	if rerootOn == "" {
		return fmt.Errorf("flag --on must be set")
	}
	t, err := readTree(args)
	if err != nil {
		return err
	}
	b := t.Descendant(rerootOn)
	if b == nil {
		return fmt.Errorf("branch %q: not in tree", rerootOn)
	}
	return newick.Write(c.Stdout(), b.Reroot())
}
