// TidyTree is a tool for manipulating phylogenetic trees.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"

	"github.com/CDCgov/tidytree/newick"
	"github.com/CDCgov/tidytree/tree"
)

var app = &command.Command{
	Usage: "tidytree <command> [<argument>...]",
	Short: "a tool for manipulating phylogenetic trees",
}

func init() {
	app.Add(njCmd)
	app.Add(rerootCmd)
	app.Add(simplifyCmd)
	app.Add(consolidateCmd)
	app.Add(sortCmd)
	app.Add(matrixCmd)
}

func main() {
	app.Main()
}

// openInput opens the file named by the first argument, or stdin when
// there is no argument or it is "-".
func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(args[0])
}

// readTree reads a single Newick tree from the input named by args.
func readTree(args []string) (*tree.Branch, error) {
	in, err := openInput(args)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	t, err := newick.NewReader(in).ReadTree()
	if err != nil {
		return nil, fmt.Errorf("while reading tree: %v", err)
	}
	return t, nil
}
