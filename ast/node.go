// Package ast defines the typed abstract syntax tree for the code-signing
// requirement language: a closed set of five constraint (leaf) variants and
// four compound (And/Or/Not/Paren) variants, plus the requirement-set
// mapping. Every node is immutable once constructed and exposes the exact
// source range it was parsed from.
package ast

import "github.com/trilemma-dev/Required-sub000/token"

// Requirement is any node that can stand as a boolean condition: the four
// compound nodes and the five constraint leaves. The set is closed — callers
// outside this package are expected to type-switch exhaustively rather than
// extend it.
type Requirement interface {
	// Range returns the exact source span the node was parsed from,
	// excluding surrounding whitespace/comments but including interior ones.
	Range() token.Range

	requirementNode()
}

// And is a compound requirement satisfied iff both children are.
type And struct {
	LHS, RHS Requirement
	Rng      token.Range
}

func (n *And) Range() token.Range { return n.Rng }
func (*And) requirementNode()     {}

// Or is a compound requirement satisfied iff at least one child is.
type Or struct {
	LHS, RHS Requirement
	Rng      token.Range
}

func (n *Or) Range() token.Range { return n.Rng }
func (*Or) requirementNode()     {}

// Not is a compound requirement satisfied iff its child is not.
type Not struct {
	Child Requirement
	Rng   token.Range
}

func (n *Not) Range() token.Range { return n.Rng }
func (*Not) requirementNode()     {}

// Paren wraps a parenthesized requirement. It is a distinct node (rather
// than being discarded during parsing) so that TextForm can round-trip the
// original grouping and the ASCII tree can show it explicitly.
type Paren struct {
	Child Requirement
	Rng   token.Range
}

func (n *Paren) Range() token.Range { return n.Rng }
func (*Paren) requirementNode()     {}
