/*
Package newick reads and writes phylogenetic trees in the Newick format,
converting between Newick text and tree.Branch values. The format used
is roughly equivalent to the conventions established here:
http://evolution.genetics.washington.edu/phylip/newick_doc.html.
Comments and quoted labels are not (yet) implemented.

A tree is written as nested parenthesized descendant lists, each subtree
optionally followed by a label and a colon-prefixed branch length, with a
semicolon terminating the outermost subtree:

	(A:0.1,B:0.2,(C:0.3,D:0.4):0.5);

Reading a tree runs FixDistances before returning it, so derived branch
quantities are immediately valid. Branch lengths in the input may use
exponent notation; written output never does.
*/
package newick
