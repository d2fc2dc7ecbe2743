package printer

import (
	"strings"

	"github.com/trilemma-dev/Required-sub000/ast"
)

// Tree renders req as an indented ASCII tree using a 3-char-per-depth
// column scheme: "|  " carries an ancestor's vertical bar past a
// subtree that still has a following sibling, "   " once that ancestor has
// no more siblings, and each child's own line opens with "|--" or, for the
// last child in document order, "\--".
func Tree(req ast.Requirement) string {
	var b strings.Builder
	b.WriteString(label(req))
	b.WriteString("\n")
	writeChildren(&b, children(req), "")
	return b.String()
}

func writeChildren(b *strings.Builder, kids []ast.Requirement, prefix string) {
	for i, c := range kids {
		last := i == len(kids)-1
		branch := "|--"
		col := "|  "
		if last {
			branch = "\\--"
			col = "   "
		}
		b.WriteString(prefix)
		b.WriteString(branch)
		b.WriteString(label(c))
		b.WriteString("\n")
		writeChildren(b, children(c), prefix+col)
	}
}

// Label is the text a single tree line shows for req: the general signifier
// for a compound node, or the full canonical text form for a constraint
// leaf (constraints have no child requirements to recurse into). Exported
// so eval's evaluation-tree renderer can reuse the same per-node text.
func Label(req ast.Requirement) string {
	return label(req)
}

func label(req ast.Requirement) string {
	switch req.(type) {
	case *ast.And:
		return "and"
	case *ast.Or:
		return "or"
	case *ast.Not:
		return "!"
	case *ast.Paren:
		return "()"
	default:
		return TextForm(req)
	}
}

func children(req ast.Requirement) []ast.Requirement {
	switch n := req.(type) {
	case *ast.And:
		return []ast.Requirement{n.LHS, n.RHS}
	case *ast.Or:
		return []ast.Requirement{n.LHS, n.RHS}
	case *ast.Not:
		return []ast.Requirement{n.Child}
	case *ast.Paren:
		return []ast.Requirement{n.Child}
	default:
		return nil
	}
}
