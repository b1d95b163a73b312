// Package testkit holds invariant checks shared by tests and fuzzers.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"lupin/internal/ast"
	"lupin/internal/source"
	"lupin/internal/token"
)

func contentLen(sf *source.File) (uint32, error) {
	n, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return 0, fmt.Errorf("len content overflow: %w", err)
	}
	return n, nil
}

// CheckTokenInvariants validates a token sequence produced from sf:
// 1) it ends with exactly one EOF, whose span is empty at end of input
// 2) spans belong to sf, are in bounds and never overlap or go backwards
// 3) every non-EOF token's Text is the exact source slice of its span
func CheckTokenInvariants(toks []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(toks) == 0 {
		return fmt.Errorf("empty token sequence")
	}
	end, err := contentLen(sf)
	if err != nil {
		return err
	}

	var prevEnd uint32
	for i, tok := range toks {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End < sp.Start || sp.End > end {
			return fmt.Errorf("token %d: span %v out of bounds (len %d)", i, sp, end)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d: span %v overlaps previous end %d", i, sp, prevEnd)
		}
		prevEnd = sp.End

		last := i == len(toks)-1
		if tok.Kind == token.EOF {
			if !last {
				return fmt.Errorf("token %d: EOF before the end of the sequence", i)
			}
			if !sp.Empty() || sp.Start != end {
				return fmt.Errorf("EOF span %v should be empty at offset %d", sp, end)
			}
			continue
		}
		if last {
			return fmt.Errorf("sequence does not end with EOF: last is %s", tok.Describe())
		}
		if sp.Empty() {
			return fmt.Errorf("token %d: empty span for %s", i, tok.Describe())
		}
		if got := sf.Slice(sp); got != tok.Text {
			return fmt.Errorf("token %d: text %q differs from source %q", i, tok.Text, got)
		}
	}
	return nil
}

// CheckTreeSpans validates the spans of a parsed tree:
// 1) every node span is non-empty and inside sf
// 2) each child span lies inside its parent span
// 3) siblings appear in source order without overlapping
func CheckTreeSpans(root *ast.Root, sf *source.File) error {
	if root == nil || root.Stmt == nil || sf == nil {
		return fmt.Errorf("nil root or file")
	}
	end, err := contentLen(sf)
	if err != nil {
		return err
	}

	var check func(n ast.Node) error
	check = func(n ast.Node) error {
		sp := n.Span()
		if sp.Empty() || sp.End > end || sp.File != sf.ID {
			return fmt.Errorf("%T: bad span %v", n, sp)
		}
		var prevEnd uint32
		for i, c := range ast.Children(n) {
			csp := c.Span()
			if !sp.Contains(csp) {
				return fmt.Errorf("%T: child %T span %v outside parent %v", n, c, csp, sp)
			}
			if i > 0 && csp.Start < prevEnd {
				return fmt.Errorf("%T: child %T span %v overlaps sibling ending at %d", n, c, csp, prevEnd)
			}
			prevEnd = csp.End
			if err := check(c); err != nil {
				return err
			}
		}
		return nil
	}
	return check(root)
}
