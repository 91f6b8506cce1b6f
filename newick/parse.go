package newick

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/CDCgov/tidytree/tree"
)

// A ParseError describes malformed Newick input and the line it was
// found on.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("newick: line %d: %s", e.Line, e.Msg)
}

// Reader holds the state necessary to read trees from Newick formatted
// input.
type Reader struct {
	*lexer
}

// NewReader returns a reader ready for reading trees from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{lex(r)}
}

// Parse reads a single tree from a Newick string. Input that is empty
// or malformed yields an error, never a partial tree.
func Parse(s string) (*tree.Branch, error) {
	t, err := NewReader(strings.NewReader(s)).ReadTree()
	if err == io.EOF {
		return nil, &ParseError{Line: 1, Msg: "empty input"}
	}
	return t, err
}

// ReadAll returns all of the Newick trees in the source input. The
// first error that occurs is returned with no trees. The error is never
// io.EOF.
func (r *Reader) ReadAll() ([]*tree.Branch, error) {
	var trees []*tree.Branch
	for {
		t, err := r.ReadTree()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	return trees, nil
}

// ReadTree reads a single tree from the source input and returns its
// root with distances already computed. At the end of the input, a nil
// tree is returned with io.EOF as the error.
func (r *Reader) ReadTree() (*tree.Branch, error) {
	tok := r.nextToken()
	root := tree.New("", 0)
	switch tok.typ {
	case tokenTerminal:
		return root, nil
	case tokenEOF:
		return nil, io.EOF
	}

	if err := r.parse(root, tok); err != nil {
		return nil, err
	}

	if tok = r.nextToken(); tok.typ != tokenTerminal {
		return nil, expectErr(tok, "a terminating ';'")
	}
	return root.FixDistances(), nil
}

// parse fills in parent from the token stream, starting at next. A
// subtree token closes parent directly; a '(' opens parent's descendant
// list, which must be followed by parent's own subtree token.
func (r *Reader) parse(parent *tree.Branch, next token) error {
	switch next.typ {
	case tokenSubtree:
		return setLabelLength(parent, next)
	case tokenDescStart:
	default:
		return expectErr(next, "a descendant list or a subtree")
	}

	for {
		tok := r.nextToken()
		switch tok.typ {
		case tokenSubtree:
			child := parent.NewChild("", 0)
			if err := setLabelLength(child, tok); err != nil {
				return err
			}
		case tokenDescStart:
			child := parent.NewChild("", 0)
			if err := r.parse(child, tok); err != nil {
				return err
			}
		case tokenDescEnd:
			tok = r.nextToken()
			if tok.typ != tokenSubtree {
				return expectErr(tok, "a subtree")
			}
			return setLabelLength(parent, tok)
		default:
			return expectErr(tok, "a descendant list or a subtree")
		}
	}
}

// setLabelLength splits a subtree token of the form "label",
// "label:length" or ":length" into the branch's ID and Length. A
// missing length defaults to 0.
func setLabelLength(b *tree.Branch, tok token) error {
	val := strings.TrimSpace(tok.val)
	if val == "" {
		return nil
	}
	pieces := strings.SplitN(val, ":", 2)
	b.ID = pieces[0]
	if len(pieces) == 2 {
		length, err := strconv.ParseFloat(pieces[1], 64)
		if err != nil {
			return &ParseError{tok.line, fmt.Sprintf("invalid branch length %q", pieces[1])}
		}
		b.Length = length
	}
	return nil
}

func expectErr(tok token, expected string) error {
	if tok.typ == tokenError {
		return &ParseError{tok.line, tok.val}
	}
	return &ParseError{tok.line, fmt.Sprintf("unexpected %s, expected %s", tok.typ, expected)}
}
