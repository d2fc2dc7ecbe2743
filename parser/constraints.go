package parser

import (
	"strings"

	"github.com/trilemma-dev/Required-sub000/ast"
	"github.com/trilemma-dev/Required-sub000/token"
)

// tryParseConstraint tries each constraint sub-parser in a fixed order,
// returning the first that accepts. ok is false only
// when no sub-parser recognized the leading keyword at all; once a
// sub-parser commits to a keyword, any further failure panics rather than
// falling through to the next one.
func tryParseConstraint(p *parser) (ast.Requirement, bool) {
	if req, ok := parseIdentifierConstraint(p); ok {
		return req, true
	}
	if req, ok := parseInfoConstraint(p); ok {
		return req, true
	}
	if req, ok := parseEntitlementConstraint(p); ok {
		return req, true
	}
	if req, ok := parseCertificateConstraint(p); ok {
		return req, true
	}
	if req, ok := parseCodeDirectoryHashConstraint(p); ok {
		return req, true
	}
	return nil, false
}

func isKeyword(t token.Token, raw string) bool {
	return t.Kind == token.KindIdentifier && t.Raw == raw
}

// parseIdentifierConstraint parses `identifier <id>` or `identifier = <id>`.
func parseIdentifierConstraint(p *parser) (ast.Requirement, bool) {
	start := p.peek()
	if !isKeyword(start, "identifier") {
		return nil, false
	}
	p.advance()

	explicit := false
	if p.peek().Kind == token.KindEquals {
		p.advance()
		explicit = true
	}

	valTok := p.peek()
	if valTok.Kind != token.KindIdentifier {
		p.raiseAt(ErrInvalidIdentifier, "expected an identifier value after 'identifier'")
	}
	p.advance()

	return &ast.Identifier{
		Constant: decodeIdentifierValue(valTok.Raw),
		Explicit: explicit,
		Rng:      span(start, valTok),
	}, true
}

// parseInfoConstraint parses `info[key] <match>`.
func parseInfoConstraint(p *parser) (ast.Requirement, bool) {
	start := p.peek()
	if !isKeyword(start, "info") {
		return nil, false
	}
	p.advance()

	key := parseBracketedKey(p, ErrInvalidInfo)
	match, ok := parseMatchExpr(p)
	if !ok {
		p.raiseAt(ErrInvalidMatchExpr, "expected a match expression after 'info[...]'")
	}

	return &ast.Info{Key: key, Match: match, Rng: span(start, p.lastConsumed())}, true
}

// parseEntitlementConstraint parses `entitlement[key] <match>`.
func parseEntitlementConstraint(p *parser) (ast.Requirement, bool) {
	start := p.peek()
	if !isKeyword(start, "entitlement") {
		return nil, false
	}
	p.advance()

	key := parseBracketedKey(p, ErrInvalidInfo)
	match, ok := parseMatchExpr(p)
	if !ok {
		p.raiseAt(ErrInvalidMatchExpr, "expected a match expression after 'entitlement[...]'")
	}

	return &ast.Entitlement{Key: key, Match: match, Rng: span(start, p.lastConsumed())}, true
}

func parseBracketedKey(p *parser, kind ErrorKind) string {
	if p.peek().Kind != token.KindLBracket {
		p.raiseAt(kind, "expected '[' to open a key expression")
	}
	p.advance()

	keyTok := p.peek()
	if keyTok.Kind != token.KindIdentifier {
		p.raiseAt(ErrInvalidKeyExpr, "expected an identifier key inside '[...]'")
	}
	p.advance()

	if p.peek().Kind != token.KindRBracket {
		p.raiseAt(ErrInvalidKeyExpr, "expected ']' to close a key expression")
	}
	p.advance()

	return decodeIdentifierValue(keyTok.Raw)
}

// parseCodeDirectoryHashConstraint parses `cdhash H"..."` or `cdhash <path>`.
func parseCodeDirectoryHashConstraint(p *parser) (ast.Requirement, bool) {
	start := p.peek()
	if !isKeyword(start, "cdhash") {
		return nil, false
	}
	p.advance()

	t := p.peek()
	switch t.Kind {
	case token.KindHashConstant:
		p.advance()
		return &ast.CodeDirectoryHash{HashConstant: decodeHashConstant(t.Raw), Rng: span(start, t)}, true
	case token.KindIdentifier:
		p.advance()
		return &ast.CodeDirectoryHash{IsFilePath: true, FilePath: decodeIdentifierValue(t.Raw), Rng: span(start, t)}, true
	default:
		p.raiseAt(ErrInvalidCodeDirectoryHash, "expected a hash constant or a file path after 'cdhash'")
		return nil, false
	}
}

// parseCertificateConstraint parses every shape of the certificate
// constraint: anchor apple [generic], <position> trusted, <position> =
// <hash-or-path>, and <position>[key] [match].
func parseCertificateConstraint(p *parser) (ast.Requirement, bool) {
	start := p.peek()
	isAnchorKeyword := isKeyword(start, "anchor")
	if !isAnchorKeyword && !isKeyword(start, "certificate") && !isKeyword(start, "cert") {
		return nil, false
	}
	p.advance()

	if isAnchorKeyword && isKeyword(p.peek(), "apple") {
		appleTok := p.advance()
		if isKeyword(p.peek(), "generic") {
			genTok := p.advance()
			return &ast.Certificate{Kind: ast.CertWholeAppleGeneric, Rng: span(start, genTok)}, true
		}
		return &ast.Certificate{Kind: ast.CertWholeApple, Rng: span(start, appleTok)}, true
	}

	pos := parseCertificatePosition(p, start, isAnchorKeyword)
	return parseCertificateTail(p, start, pos), true
}

func parseCertificatePosition(p *parser, opener token.Token, isAnchorKeyword bool) ast.CertificatePosition {
	if isAnchorKeyword {
		return ast.CertificatePosition{Kind: ast.PosAnchor, Rng: opener.Range}
	}

	t := p.peek()
	switch {
	case isKeyword(t, "root"):
		p.advance()
		return ast.CertificatePosition{Kind: ast.PosRoot, Rng: span(opener, t)}
	case isKeyword(t, "leaf"):
		p.advance()
		return ast.CertificatePosition{Kind: ast.PosLeaf, Rng: span(opener, t)}
	case t.Kind == token.KindIdentifier && isUnsignedInt(t.Raw):
		p.advance()
		return ast.CertificatePosition{Kind: ast.PosPositiveFromLeaf, N: parseUnsignedInt(t.Raw), Rng: span(opener, t)}
	case t.Kind == token.KindMinus:
		p.advance()
		numTok := p.peek()
		if numTok.Kind != token.KindIdentifier || !isUnsignedInt(numTok.Raw) {
			p.raiseAt(ErrInvalidCertificate, "expected an unsigned integer after '-'")
		}
		p.advance()
		return ast.CertificatePosition{Kind: ast.PosNegativeFromAnchor, N: parseUnsignedInt(numTok.Raw), Rng: span(opener, numTok)}
	default:
		p.raiseAt(ErrInvalidCertificate, "expected 'root', 'leaf', an integer, or '-<integer>' after 'certificate'")
		return ast.CertificatePosition{}
	}
}

func parseCertificateTail(p *parser, opener token.Token, pos ast.CertificatePosition) *ast.Certificate {
	t := p.peek()
	switch {
	case isKeyword(t, "trusted"):
		p.advance()
		return &ast.Certificate{Kind: ast.CertTrusted, Position: pos, Rng: span(opener, t)}

	case t.Kind == token.KindEquals:
		p.advance()
		valTok := p.peek()
		switch valTok.Kind {
		case token.KindHashConstant:
			p.advance()
			return &ast.Certificate{Kind: ast.CertWholeHashConstant, Position: pos, HashConstant: decodeHashConstant(valTok.Raw), Rng: span(opener, valTok)}
		case token.KindIdentifier:
			p.advance()
			return &ast.Certificate{Kind: ast.CertWholeHashFilePath, Position: pos, FilePath: decodeIdentifierValue(valTok.Raw), Rng: span(opener, valTok)}
		default:
			p.raiseAt(ErrInvalidCertificate, "expected a hash constant or a file path after '='")
			return nil
		}

	case t.Kind == token.KindLBracket:
		key := parseBracketedKey(p, ErrInvalidCertificate)
		if match, ok := parseMatchExpr(p); ok {
			return &ast.Certificate{Kind: ast.CertElement, Position: pos, ElementKey: key, Match: match, Rng: span(opener, p.lastConsumed())}
		}
		return &ast.Certificate{Kind: ast.CertElementImplicitExists, Position: pos, ElementKey: key, Rng: span(opener, p.lastConsumed())}

	default:
		p.raiseAt(ErrInvalidCertificate, "expected 'trusted', '=', or '[key]' after a certificate position")
		return nil
	}
}

// parseMatchExpr parses the `exists` / comparison / wildcard-equality forms.
// ok is false (with no tokens consumed) when the current token cannot start
// a match expression at all.
func parseMatchExpr(p *parser) (ast.MatchExpr, bool) {
	t := p.peek()

	if isKeyword(t, "exists") {
		p.advance()
		return ast.MatchExpr{Kind: ast.MatchUnarySuffixExists, Rng: t.Range}, true
	}

	op, opTok, isOp := matchOp(t)
	if !isOp {
		return ast.MatchExpr{}, false
	}
	p.advance()

	if op != ast.MatchOpEQ {
		valTok := p.peek()
		if valTok.Kind != token.KindIdentifier {
			p.raiseAt(ErrInvalidMatchExpr, "expected a string after a comparison operator")
		}
		p.advance()
		if p.peek().Kind == token.KindWildcard {
			p.raiseAt(ErrInvalidMatchExpr, "wildcards are only permitted with '='")
		}
		return ast.MatchExpr{Kind: ast.MatchInfix, Op: op, String: decodeIdentifierValue(valTok.Raw), Rng: span(opTok, valTok)}, true
	}

	// '=': bare identifier, prefix `*s`, postfix `s*`, or both `*s*`.
	if p.peek().Kind == token.KindWildcard {
		star1 := p.advance()
		valTok := p.peek()
		if valTok.Kind != token.KindIdentifier {
			p.raiseAt(ErrInvalidMatchExpr, "expected a string after '*'")
		}
		p.advance()
		if p.peek().Kind == token.KindWildcard {
			star2 := p.advance()
			w := ast.WildcardString{Kind: ast.WildcardBoth, S: decodeIdentifierValue(valTok.Raw)}
			return ast.MatchExpr{Kind: ast.MatchInfixEqualsWildcard, Wildcard: w, Rng: span(star1, star2)}, true
		}
		w := ast.WildcardString{Kind: ast.WildcardPrefix, S: decodeIdentifierValue(valTok.Raw)}
		return ast.MatchExpr{Kind: ast.MatchInfixEqualsWildcard, Wildcard: w, Rng: span(star1, valTok)}, true
	}

	valTok := p.peek()
	if valTok.Kind != token.KindIdentifier {
		p.raiseAt(ErrInvalidMatchExpr, "expected a string or '*' after '='")
	}
	p.advance()
	if p.peek().Kind == token.KindWildcard {
		starTok := p.advance()
		w := ast.WildcardString{Kind: ast.WildcardPostfix, S: decodeIdentifierValue(valTok.Raw)}
		return ast.MatchExpr{Kind: ast.MatchInfixEqualsWildcard, Wildcard: w, Rng: span(opTok, starTok)}, true
	}
	return ast.MatchExpr{Kind: ast.MatchInfix, Op: ast.MatchOpEQ, String: decodeIdentifierValue(valTok.Raw), Rng: span(opTok, valTok)}, true
}

func matchOp(t token.Token) (ast.MatchOp, token.Token, bool) {
	switch t.Kind {
	case token.KindEquals:
		return ast.MatchOpEQ, t, true
	case token.KindLessThan:
		return ast.MatchOpLT, t, true
	case token.KindGreaterThan:
		return ast.MatchOpGT, t, true
	case token.KindLessEq:
		return ast.MatchOpLE, t, true
	case token.KindGreaterEq:
		return ast.MatchOpGE, t, true
	default:
		return "", token.Token{}, false
	}
}

// decodeIdentifierValue strips surrounding quotes and decodes `\`-escapes
// from a quoted Identifier token's raw text; unquoted raw text passes
// through unchanged.
func decodeIdentifierValue(raw string) string {
	if len(raw) < 2 || raw[0] != '"' {
		return raw
	}
	inner := raw[1 : len(raw)-1]
	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
			b.WriteByte(inner[i])
			continue
		}
		b.WriteByte(inner[i])
	}
	return b.String()
}

// decodeHashConstant extracts the hex digits from a `H"..."` token and
// lower-cases them for comparison purposes.
func decodeHashConstant(raw string) string {
	inner := raw
	if len(inner) >= 3 {
		inner = inner[2 : len(inner)-1]
	}
	return strings.ToLower(inner)
}

func isUnsignedInt(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parseUnsignedInt(s string) uint32 {
	var n uint32
	for i := 0; i < len(s); i++ {
		n = n*10 + uint32(s[i]-'0')
	}
	return n
}
