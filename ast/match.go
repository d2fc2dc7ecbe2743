package ast

import "github.com/trilemma-dev/Required-sub000/token"

// MatchOp is one of the comparison operators a MatchExpr's Infix variant can
// carry.
type MatchOp string

const (
	MatchOpEQ MatchOp = "="
	MatchOpLT MatchOp = "<"
	MatchOpGT MatchOp = ">"
	MatchOpLE MatchOp = "<="
	MatchOpGE MatchOp = ">="
)

// MatchExprKind discriminates the three shapes a MatchExpr can take.
type MatchExprKind int

const (
	// MatchInfix is `op string`, e.g. `>= "17.4.2"`. Wildcards are not
	// permitted in this form.
	MatchInfix MatchExprKind = iota
	// MatchInfixEqualsWildcard is `= *s`, `= s*`, or `= *s*`.
	MatchInfixEqualsWildcard
	// MatchUnarySuffixExists is the bare `exists` keyword.
	MatchUnarySuffixExists
)

// MatchExpr is the match expression attached to Info, Entitlement, and
// certificate Element constraints.
type MatchExpr struct {
	Kind     MatchExprKind
	Op       MatchOp        // valid when Kind == MatchInfix
	String   string         // valid when Kind == MatchInfix
	Wildcard WildcardString // valid when Kind == MatchInfixEqualsWildcard
	Rng      token.Range
}

func (m MatchExpr) Range() token.Range { return m.Rng }

// WildcardKind discriminates where the literal portion of a wildcard string
// sits relative to the `*` markers.
type WildcardKind int

const (
	// WildcardPrefix is `*s`: the value must end with s.
	WildcardPrefix WildcardKind = iota
	// WildcardPostfix is `s*`: the value must begin with s.
	WildcardPostfix
	// WildcardBoth is `*s*`: the value must contain s.
	WildcardBoth
)

// WildcardString is the literal portion of a wildcard equality match,
// together with which side(s) the `*` appeared on.
type WildcardString struct {
	Kind WildcardKind
	S    string
}
