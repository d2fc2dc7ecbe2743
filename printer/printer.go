// Package printer renders a requirement AST back to text: a canonical,
// reparseable TextForm and an indented ASCII tree. Both walk the same
// closed AST variant set via type switches.
package printer

import (
	"fmt"
	"strings"

	"github.com/trilemma-dev/Required-sub000/ast"
)

// TextForm renders req as a valid, reparseable requirement string. It does
// not preserve the original source's whitespace, comments, or explicit
// parenthesization beyond what ast.Paren nodes record.
func TextForm(req ast.Requirement) string {
	var b strings.Builder
	writeText(&b, req)
	return b.String()
}

// TextFormSet renders a requirement set using the fixed canonical tag order
// (ast.TagOrder), joining entries with newline-separated "tag => requirement"
// clauses.
func TextFormSet(set *ast.RequirementSet) string {
	var b strings.Builder
	for i, tag := range set.OrderedTags() {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s => %s", tag, TextForm(set.Entries[tag]))
	}
	return b.String()
}

func writeText(b *strings.Builder, req ast.Requirement) {
	switch n := req.(type) {
	case *ast.And:
		writeText(b, n.LHS)
		b.WriteString(" and ")
		writeText(b, n.RHS)
	case *ast.Or:
		writeText(b, n.LHS)
		b.WriteString(" or ")
		writeText(b, n.RHS)
	case *ast.Not:
		b.WriteString("!")
		writeText(b, n.Child)
	case *ast.Paren:
		b.WriteString("(")
		writeText(b, n.Child)
		b.WriteString(")")
	case *ast.Identifier:
		b.WriteString("identifier ")
		if n.Explicit {
			b.WriteString("= ")
		}
		b.WriteString(quoteValue(n.Constant))
	case *ast.Info:
		fmt.Fprintf(b, "info[%s] %s", quoteValue(n.Key), matchText(n.Match))
	case *ast.Entitlement:
		fmt.Fprintf(b, "entitlement[%s] %s", quoteValue(n.Key), matchText(n.Match))
	case *ast.CodeDirectoryHash:
		b.WriteString("cdhash ")
		if n.IsFilePath {
			b.WriteString(quoteValue(n.FilePath))
		} else {
			fmt.Fprintf(b, `H"%s"`, n.HashConstant)
		}
	case *ast.Certificate:
		writeCertificateText(b, n)
	default:
		panic(fmt.Sprintf("printer: unhandled requirement type %T", req))
	}
}

func writeCertificateText(b *strings.Builder, n *ast.Certificate) {
	switch n.Kind {
	case ast.CertWholeApple:
		b.WriteString("anchor apple")
	case ast.CertWholeAppleGeneric:
		b.WriteString("anchor apple generic")
	case ast.CertWholeHashConstant:
		b.WriteString(positionText(n.Position))
		fmt.Fprintf(b, ` = H"%s"`, n.HashConstant)
	case ast.CertWholeHashFilePath:
		b.WriteString(positionText(n.Position))
		b.WriteString(" = ")
		b.WriteString(quoteValue(n.FilePath))
	case ast.CertElement:
		fmt.Fprintf(b, "%s[%s] %s", positionText(n.Position), quoteValue(n.ElementKey), matchText(n.Match))
	case ast.CertElementImplicitExists:
		fmt.Fprintf(b, "%s[%s]", positionText(n.Position), quoteValue(n.ElementKey))
	case ast.CertTrusted:
		b.WriteString(positionText(n.Position))
		b.WriteString(" trusted")
	default:
		panic(fmt.Sprintf("printer: unhandled certificate kind %v", n.Kind))
	}
}

func positionText(pos ast.CertificatePosition) string {
	switch pos.Kind {
	case ast.PosAnchor:
		return "anchor"
	case ast.PosRoot:
		return "certificate root"
	case ast.PosLeaf:
		return "certificate leaf"
	case ast.PosPositiveFromLeaf:
		return fmt.Sprintf("certificate %d", pos.N)
	case ast.PosNegativeFromAnchor:
		return fmt.Sprintf("certificate -%d", pos.N)
	default:
		panic(fmt.Sprintf("printer: unhandled position kind %v", pos.Kind))
	}
}

func matchText(m ast.MatchExpr) string {
	switch m.Kind {
	case ast.MatchUnarySuffixExists:
		return "exists"
	case ast.MatchInfix:
		return fmt.Sprintf("%s %s", m.Op, quoteValue(m.String))
	case ast.MatchInfixEqualsWildcard:
		q := quoteValue(m.Wildcard.S)
		switch m.Wildcard.Kind {
		case ast.WildcardPrefix:
			return "= *" + q
		case ast.WildcardPostfix:
			return "= " + q + "*"
		case ast.WildcardBoth:
			return "= *" + q + "*"
		default:
			panic(fmt.Sprintf("printer: unhandled wildcard kind %v", m.Wildcard.Kind))
		}
	default:
		panic(fmt.Sprintf("printer: unhandled match kind %v", m.Kind))
	}
}

// quoteValue renders s as a double-quoted Identifier token, escaping `\` and
// `"`. Quoting unconditionally keeps TextForm simple and always valid,
// rather than special-casing the unquoted-run character set.
func quoteValue(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || c == '"' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}
