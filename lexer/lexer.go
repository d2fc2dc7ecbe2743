// Package lexer tokenizes code-signing requirement source text.
//
// Tokenize performs a single greedy left-to-right scan: at each position it
// tries the token rules in a fixed order, commits to the
// first one that matches, and advances past the matched text. The tokenizer
// is unaware of keywords — "and", "anchor", "cdhash", and every other
// reserved word surface only as Identifier tokens; disambiguating them is the
// parser's job.
package lexer

import (
	"github.com/trilemma-dev/Required-sub000/token"
)

// Tokenize scans src into an ordered token sequence. The final token is
// always a KindEOF token whose Range is the empty range at len(src). On
// failure it returns the tokens recognized so far together with a
// TokenizationError describing where the scan got stuck.
func Tokenize(src string) ([]token.Token, *TokenizationError) {
	var toks []token.Token
	i := 0
	n := len(src)

	for i < n {
		start := i
		c := src[i]

		// 1. Whitespace: one character per token.
		if c == ' ' || c == '\t' || c == '\n' {
			i++
			toks = append(toks, sym(token.KindWhitespace, src, start, i))
			continue
		}

		// 2. Comment.
		if c == '/' && i+1 < n && src[i+1] == '/' {
			j := i + 2
			for j < n && src[j] != '\n' {
				j++
			}
			if j < n {
				j++ // consume the terminating newline
			}
			toks = append(toks, sym(token.KindComment, src, start, j))
			i = j
			continue
		}
		if c == '/' && i+1 < n && src[i+1] == '*' {
			j := i + 2
			closed := false
			for j+1 < n {
				if src[j] == '*' && src[j+1] == '/' {
					j += 2
					closed = true
					break
				}
				j++
			}
			if !closed {
				return toks, &TokenizationError{Source: src, FailureIndex: start}
			}
			toks = append(toks, sym(token.KindComment, src, start, j))
			i = j
			continue
		}

		// 3. HashConstant: H" followed by hex digits followed by ".
		if c == 'H' && i+1 < n && src[i+1] == '"' {
			j := i + 2
			for j < n && isHexDigit(src[j]) {
				j++
			}
			if j >= n || src[j] != '"' {
				return toks, &TokenizationError{Source: src, FailureIndex: start}
			}
			j++
			toks = append(toks, sym(token.KindHashConstant, src, start, j))
			i = j
			continue
		}

		// 4. Identifier (quoted string, unquoted path, or unquoted run).
		if tok, j, matched, terr := scanIdentifier(src, i); terr != nil {
			return toks, terr
		} else if matched {
			toks = append(toks, tok)
			i = j
			continue
		}

		// 5. RequirementSet => — must precede Equals.
		if c == '=' && i+1 < n && src[i+1] == '>' {
			toks = append(toks, sym(token.KindRequirementSet, src, start, i+2))
			i += 2
			continue
		}

		// 6. Negation !.
		if c == '!' {
			toks = append(toks, sym(token.KindNegation, src, start, i+1))
			i++
			continue
		}

		// 7. LessEq <= — must precede LessThan.
		if c == '<' && i+1 < n && src[i+1] == '=' {
			toks = append(toks, sym(token.KindLessEq, src, start, i+2))
			i += 2
			continue
		}

		// 8. GreaterEq >= — must precede GreaterThan.
		if c == '>' && i+1 < n && src[i+1] == '=' {
			toks = append(toks, sym(token.KindGreaterEq, src, start, i+2))
			i += 2
			continue
		}

		// 9. Single-char tokens.
		if kind, ok := singleCharKind(c); ok {
			toks = append(toks, sym(kind, src, start, i+1))
			i++
			continue
		}

		return toks, &TokenizationError{Source: src, FailureIndex: start}
	}

	toks = append(toks, token.Token{Kind: token.KindEOF, Range: token.Range{Start: n, End: n}})
	return toks, nil
}

func singleCharKind(c byte) (token.Kind, bool) {
	switch c {
	case '=':
		return token.KindEquals, true
	case '<':
		return token.KindLessThan, true
	case '>':
		return token.KindGreaterThan, true
	case '*':
		return token.KindWildcard, true
	case '-':
		return token.KindMinus, true
	case '(':
		return token.KindLParen, true
	case ')':
		return token.KindRParen, true
	case '[':
		return token.KindLBracket, true
	case ']':
		return token.KindRBracket, true
	}
	return "", false
}

// scanIdentifier implements the three Identifier sub-cases (quoted string,
// unquoted absolute path, unquoted run). It returns matched=false (with no
// error) when the current position cannot start an identifier at all, so
// the caller can fall through to the remaining rules.
func scanIdentifier(src string, i int) (token.Token, int, bool, *TokenizationError) {
	n := len(src)
	c := src[i]
	start := i

	switch {
	case c == '"':
		j := i + 1
		for j < n && src[j] != '"' {
			if src[j] == '\\' {
				j += 2
				continue
			}
			j++
		}
		if j >= n || src[j] != '"' {
			return token.Token{}, i, false, &TokenizationError{Source: src, FailureIndex: start}
		}
		j++
		return sym(token.KindIdentifier, src, start, j), j, true, nil

	case c == '/':
		j := i
		for j < n && isPathChar(src[j]) {
			j++
		}
		return sym(token.KindIdentifier, src, start, j), j, true, nil

	case isLetter(c) || isDigit(c) || c == '.':
		j := i
		for j < n && (isLetter(src[j]) || isDigit(src[j]) || src[j] == '.') {
			j++
		}
		return sym(token.KindIdentifier, src, start, j), j, true, nil

	default:
		return token.Token{}, i, false, nil
	}
}

func sym(kind token.Kind, src string, start, end int) token.Token {
	return token.Token{Kind: kind, Raw: src[start:end], Range: token.Range{Start: start, End: end}}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isPathChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '.' || c == '/'
}

// Filter removes whitespace and comment tokens, the view the parser
// consumes. The tokenizer itself never discards them so that source-range
// accounting over the raw text stays exact.
func Filter(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.IsTrivia() {
			continue
		}
		out = append(out, t)
	}
	return out
}
