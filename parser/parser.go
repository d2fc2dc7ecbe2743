// Package parser turns a token sequence into a Requirement or a
// RequirementSet using a recursive-descent approach: a flat token buffer
// with a single lookahead, constraint sub-parsers that return ok=false
// rather than erroring when the keyword doesn't match, and panic/recover to
// unwind a failed parse. Recovery happens once at the outermost call rather
// than per-production, since a malformed requirement must abort parsing
// entirely rather than skip-and-continue.
package parser

import (
	"fmt"

	"github.com/trilemma-dev/Required-sub000/ast"
	"github.com/trilemma-dev/Required-sub000/lexer"
	"github.com/trilemma-dev/Required-sub000/token"
)

// Result is the outcome of a successful Parse: exactly one of Requirement or
// Set is non-nil.
type Result struct {
	Requirement ast.Requirement
	Set         *ast.RequirementSet
}

// IsSet reports whether the parse produced a requirement set rather than a
// single requirement.
func (r Result) IsSet() bool { return r.Set != nil }

// Parse tokenizes and parses source, returning either a single requirement
// or a requirement set. Parsing never partially recovers: the first error —
// tokenization or syntax — aborts the whole call.
func Parse(source string) (result Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			perr, ok := rec.(*ParserError)
			if !ok {
				panic(rec)
			}
			err = perr
			result = Result{}
		}
	}()

	toks, terr := lexer.Tokenize(source)
	if terr != nil {
		return Result{}, terr
	}
	filtered := lexer.Filter(toks)

	if looksLikeRequirementSet(filtered) {
		set := parseRequirementSet(filtered)
		return Result{Set: set}, nil
	}

	p := &parser{toks: filtered}
	elems := p.linearize(0)
	req := foldPrecedence(elems)
	return Result{Requirement: req}, nil
}

func isTagKeyword(s string) bool {
	switch ast.RequirementTag(s) {
	case ast.TagHost, ast.TagGuest, ast.TagLibrary, ast.TagDesignated:
		return true
	}
	return false
}

func looksLikeRequirementSet(toks []token.Token) bool {
	if len(toks) == 0 || toks[0].Kind != token.KindIdentifier || !isTagKeyword(toks[0].Raw) {
		return false
	}
	for _, t := range toks {
		if t.Kind == token.KindRequirementSet {
			return true
		}
	}
	return false
}

func parseRequirementSet(toks []token.Token) *ast.RequirementSet {
	var arrows []int
	for i, t := range toks {
		if t.Kind == token.KindRequirementSet {
			arrows = append(arrows, i)
		}
	}
	if len(arrows) == 0 {
		raise(ErrInvalidRequirementSet, 0, "a requirement set must contain at least one '=>'")
	}

	entries := map[ast.RequirementTag]ast.Requirement{}
	for k, idx := range arrows {
		if idx == 0 || toks[idx-1].Kind != token.KindIdentifier || !isTagKeyword(toks[idx-1].Raw) {
			raise(ErrInvalidRequirementSet, toks[idx].Range.Start, "'=>' must be preceded by a recognized tag (host, guest, library, designated)")
		}
		tagTok := toks[idx-1]
		tag := ast.RequirementTag(tagTok.Raw)
		if _, exists := entries[tag]; exists {
			raise(ErrInvalidRequirementSet, tagTok.Range.Start, fmt.Sprintf("duplicate tag %q", tag))
		}

		bodyStart := idx + 1
		bodyEnd := len(toks) - 1 // exclude the trailing EOF token
		if k+1 < len(arrows) {
			bodyEnd = arrows[k+1] - 1 // exclude the next tag identifier
		}
		if bodyStart >= bodyEnd {
			raise(ErrInvalidRequirementSet, tagTok.Range.End, fmt.Sprintf("tag %q has no requirement body", tag))
		}

		body := make([]token.Token, 0, bodyEnd-bodyStart+1)
		body = append(body, toks[bodyStart:bodyEnd]...)
		body = append(body, token.Token{Kind: token.KindEOF, Range: token.Range{Start: toks[bodyEnd-1].Range.End, End: toks[bodyEnd-1].Range.End}})

		bp := &parser{toks: body}
		elems := bp.linearize(0)
		entries[tag] = foldPrecedence(elems)
	}

	rng := token.Range{Start: toks[0].Range.Start, End: toks[len(toks)-2].Range.End}
	return &ast.RequirementSet{Entries: entries, Rng: rng}
}

// parser walks a flat, trivia-filtered token slice with one token of
// lookahead, simplified to an index since this grammar has no need to
// re-buffer a peeked token across calls.
type parser struct {
	toks []token.Token
	pos  int
	prev token.Token // last token returned by advance, for closing a node's range
}

func (p *parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	p.prev = t
	return t
}

// lastConsumed returns the most recently advanced-past token, used to close
// a node's range after a tail of optional tokens (e.g. an optional match
// expression).
func (p *parser) lastConsumed() token.Token {
	return p.prev
}

func (p *parser) raiseAt(kind ErrorKind, description string) {
	raise(kind, p.peek().Range.Start, description)
}

func span(a, b token.Token) token.Range {
	return token.Range{Start: a.Range.Start, End: b.Range.End}
}

func unionRange(a, b token.Range) token.Range {
	start, end := a.Start, a.End
	if b.Start < start {
		start = b.Start
	}
	if b.End > end {
		end = b.End
	}
	return token.Range{Start: start, End: end}
}
