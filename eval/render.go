package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/trilemma-dev/Required-sub000/printer"
)

// RenderEvaluation walks e the same way printer.Tree walks an AST — one
// line per node, compound nodes showing their signifier and leaves their
// canonical text form — suffixing every line with {true}/{false} and
// numbering unsatisfied leaves with a footnote marker in document order.
// When superscript is false the footnote marker is a plain "[n]" instead of
// a Unicode superscript, for terminals that can't render superscript digits.
func RenderEvaluation(e *Evaluation, superscript bool) string {
	var b strings.Builder
	var footnotes []string
	writeEvalNode(&b, e, "", &footnotes, superscript)

	if len(footnotes) == 0 {
		return b.String()
	}

	b.WriteString("\nConstraint(s) not satisfied:\n")
	for i, f := range footnotes {
		fmt.Fprintf(&b, "%d: %s\n", i+1, f)
	}
	return b.String()
}

func writeEvalNode(b *strings.Builder, e *Evaluation, prefix string, footnotes *[]string, superscript bool) {
	b.WriteString(evalLabel(e, footnotes, superscript))
	b.WriteString("\n")
	writeEvalChildren(b, e.Children, prefix, footnotes, superscript)
}

func writeEvalChildren(b *strings.Builder, kids []*Evaluation, prefix string, footnotes *[]string, superscript bool) {
	for i, c := range kids {
		last := i == len(kids)-1
		branch, col := "|--", "|  "
		if last {
			branch, col = "\\--", "   "
		}
		b.WriteString(prefix)
		b.WriteString(branch)
		b.WriteString(evalLabel(c, footnotes, superscript))
		b.WriteString("\n")
		writeEvalChildren(b, c.Children, prefix+col, footnotes, superscript)
	}
}

func evalLabel(e *Evaluation, footnotes *[]string, superscript bool) string {
	text := printer.Label(e.Node)

	status := "{false}"
	if e.Satisfied {
		status = "{true}"
	}

	if len(e.Children) == 0 && !e.Satisfied {
		*footnotes = append(*footnotes, e.Explanation)
		return fmt.Sprintf("%s %s%s", text, status, footnoteMark(len(*footnotes), superscript))
	}
	return fmt.Sprintf("%s %s", text, status)
}

func footnoteMark(n int, superscript bool) string {
	if !superscript {
		return fmt.Sprintf("[%d]", n)
	}
	digits := strconv.Itoa(n)
	var b strings.Builder
	for _, d := range digits {
		b.WriteRune(superDigit(d))
	}
	return b.String()
}

var superDigits = [10]rune{'⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹'}

func superDigit(d rune) rune {
	return superDigits[d-'0']
}
