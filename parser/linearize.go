package parser

import (
	"github.com/trilemma-dev/Required-sub000/ast"
	"github.com/trilemma-dev/Required-sub000/token"
)

// elemKind tags what occupies a linearize slot.
type elemKind int

const (
	elemRequirement elemKind = iota
	elemNegation
	elemAnd
	elemOr
)

// element is one slot of the flat sequence phase 1 produces: either a parsed
// operand or one of the three operator symbols.
type element struct {
	kind elemKind
	req  ast.Requirement // valid when kind == elemRequirement
	tok  token.Token      // the operator token, valid for elemNegation/And/Or
}

// linearize is phase 1 of parsing: a left-to-right scan that collects
// parenthesized groups, `!`, `and`/`or`, and constraints into a flat
// element slice, leaving fold to impose precedence. depth tracks paren
// nesting purely so a stray top-level `)` is reported distinctly from one
// that legitimately closes a group.
func (p *parser) linearize(depth int) []element {
	var elems []element

	for {
		t := p.peek()

		switch {
		case t.Kind == token.KindEOF:
			return elems

		case t.Kind == token.KindRParen:
			if depth == 0 {
				p.raiseAt(ErrInvalid, "unexpected ')'")
			}
			return elems

		case t.Kind == token.KindLParen:
			open := p.advance()
			inner := p.linearize(depth + 1)
			if p.peek().Kind != token.KindRParen {
				p.raiseAt(ErrInvalid, "expected ')' to close '('")
			}
			closeTok := p.advance()
			req := foldPrecedence(inner)
			elems = append(elems, element{
				kind: elemRequirement,
				req:  &ast.Paren{Child: req, Rng: span(open, closeTok)},
			})

		case t.Kind == token.KindNegation:
			elems = append(elems, element{kind: elemNegation, tok: p.advance()})

		case t.Kind == token.KindIdentifier && t.Raw == "and":
			elems = append(elems, element{kind: elemAnd, tok: p.advance()})

		case t.Kind == token.KindIdentifier && t.Raw == "or":
			elems = append(elems, element{kind: elemOr, tok: p.advance()})

		default:
			req, ok := tryParseConstraint(p)
			if !ok {
				p.raiseAt(ErrInvalid, "expected a requirement, '(', or '!'")
			}
			elems = append(elems, element{kind: elemRequirement, req: req})
		}
	}
}

// foldPrecedence is phase 2 of parsing: negation right-to-left, then
// and/or left-to-right, each a repeated pass over the slice until no
// more combinations apply. The final slice must hold exactly one operand.
func foldPrecedence(elems []element) ast.Requirement {
	elems = foldNegation(elems)
	elems = foldInfix(elems, elemAnd)
	elems = foldInfix(elems, elemOr)

	if len(elems) != 1 || elems[0].kind != elemRequirement {
		idx := 0
		if len(elems) > 0 {
			idx = operatorIndex(elems[0])
		}
		raise(ErrInvalid, idx, "malformed requirement: operators and operands do not balance")
	}
	return elems[0].req
}

func operatorIndex(e element) int {
	if e.kind == elemRequirement {
		return e.req.Range().Start
	}
	return e.tok.Range.Start
}

// foldNegation scans right-to-left so that a run of negations (`!!x`) folds
// in one sweep: the rightmost `!` combines with the operand to its right
// first, producing a new operand that the next `!` to its left then
// combines with.
func foldNegation(elems []element) []element {
	for {
		i := -1
		for k := len(elems) - 1; k >= 0; k-- {
			if elems[k].kind == elemNegation {
				i = k
				break
			}
		}
		if i == -1 {
			return elems
		}
		if i+1 >= len(elems) || elems[i+1].kind != elemRequirement {
			raise(ErrInvalidNegation, elems[i].tok.Range.Start, "'!' must be followed by a requirement")
		}
		operand := elems[i+1]
		combined := element{
			kind: elemRequirement,
			req:  &ast.Not{Child: operand.req, Rng: unionRange(elems[i].tok.Range, operand.req.Range())},
		}
		next := make([]element, 0, len(elems)-1)
		next = append(next, elems[:i]...)
		next = append(next, combined)
		next = append(next, elems[i+2:]...)
		elems = next
	}
}

// foldInfix repeatedly folds the first op-kind symbol (elemAnd or elemOr)
// found with a requirement operand on each side, left to right, until none
// remain.
func foldInfix(elems []element, op elemKind) []element {
	kindName := ErrInvalidAnd
	if op == elemOr {
		kindName = ErrInvalidOr
	}

	for {
		i := -1
		for k, e := range elems {
			if e.kind == op {
				i = k
				break
			}
		}
		if i == -1 {
			return elems
		}
		if i == 0 || i+1 >= len(elems) || elems[i-1].kind != elemRequirement || elems[i+1].kind != elemRequirement {
			raise(kindName, elems[i].tok.Range.Start, "operator must sit between two requirements")
		}
		lhs, rhs := elems[i-1], elems[i+1]
		var combined ast.Requirement
		rng := unionRange(lhs.req.Range(), rhs.req.Range())
		if op == elemAnd {
			combined = &ast.And{LHS: lhs.req, RHS: rhs.req, Rng: rng}
		} else {
			combined = &ast.Or{LHS: lhs.req, RHS: rhs.req, Rng: rng}
		}
		next := make([]element, 0, len(elems)-2)
		next = append(next, elems[:i-1]...)
		next = append(next, element{kind: elemRequirement, req: combined})
		next = append(next, elems[i+2:]...)
		elems = next
	}
}
