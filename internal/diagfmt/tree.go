package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"lupin/internal/ast"
	"lupin/internal/source"
)

// TreeNode is the printable form of an ast node.
type TreeNode struct {
	Label    string      `json:"label" yaml:"label"`
	Span     SpanJSON    `json:"span" yaml:"span"`
	Children []*TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

func nodeLabel(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Root:
		return "Root"
	case *ast.Assignment:
		return fmt.Sprintf("Assignment %s", n.Name.Text)
	case *ast.FuncDef:
		return fmt.Sprintf("FuncDef %s", n.Name.Text)
	case *ast.FuncArg:
		return fmt.Sprintf("Arg %s", n.Name.Text)
	case *ast.Type:
		return fmt.Sprintf("Type %s", n.Name.Text)
	case *ast.LiteralExpr:
		return fmt.Sprintf("Literal %s %s", n.Tok.Literal().Kind, n.Tok.Text)
	case *ast.NameExpr:
		return fmt.Sprintf("Name %s", n.Name.Text)
	case *ast.ParenExpr:
		return "Paren"
	case *ast.BinaryExpr:
		return fmt.Sprintf("Binary %s", n.Op)
	case *ast.DelimitedPunctuated[*ast.FuncArg]:
		label := fmt.Sprintf("Args (%d)", n.Len())
		if n.HasTrailingSeparator() {
			label += " trailing-comma"
		}
		return label
	default:
		return fmt.Sprintf("%T", n)
	}
}

// BuildTree converts the subtree rooted at n.
func BuildTree(n ast.Node) *TreeNode {
	sp := n.Span()
	tn := &TreeNode{Label: nodeLabel(n), Span: SpanJSON{Start: sp.Start, End: sp.End}}
	for _, c := range ast.Children(n) {
		tn.Children = append(tn.Children, BuildTree(c))
	}
	return tn
}

// FormatTreePretty draws the tree with box-drawing guides. When fs is not
// nil each label is followed by its line:col range.
func FormatTreePretty(w io.Writer, root *ast.Root, fs *source.FileSet) error {
	var sb strings.Builder
	var walk func(n ast.Node, tn *TreeNode, prefix string, last, top bool)
	walk = func(n ast.Node, tn *TreeNode, prefix string, last, top bool) {
		branch, next := "├─ ", "│  "
		if last {
			branch, next = "└─ ", "   "
		}
		if top {
			branch, next = "", ""
		}
		sb.WriteString(prefix + branch + tn.Label)
		if fs != nil {
			s, e := fs.Resolve(n.Span())
			fmt.Fprintf(&sb, " [%d:%d-%d:%d]", s.Line, s.Col, e.Line, e.Col)
		}
		sb.WriteString("\n")
		children := ast.Children(n)
		for i, c := range children {
			walk(c, tn.Children[i], prefix+next, i == len(children)-1, false)
		}
	}
	walk(root, BuildTree(root), "", true, true)
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatTreeJSON writes the tree as indented JSON.
func FormatTreeJSON(w io.Writer, root *ast.Root) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildTree(root))
}

// FormatTreeYAML writes the tree as a YAML document.
func FormatTreeYAML(w io.Writer, root *ast.Root) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildTree(root)); err != nil {
		return err
	}
	return enc.Close()
}
