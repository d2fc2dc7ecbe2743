package lexer

import (
	"testing"

	"github.com/trilemma-dev/Required-sub000/token"
)

func TestTokenize(t *testing.T) {
	sym := func(kind token.Kind, raw string, start int) token.Token {
		return token.Token{Kind: kind, Raw: raw, Range: token.Range{Start: start, End: start + len(raw)}}
	}

	tests := []struct {
		caption string
		src     string
		want    []token.Token
	}{
		{
			caption: "operators and brackets",
			src:     "=><=>=*-()[]!",
			want: []token.Token{
				sym(token.KindRequirementSet, "=>", 0),
				sym(token.KindLessEq, "<=", 2),
				sym(token.KindGreaterEq, ">=", 4),
				sym(token.KindWildcard, "*", 6),
				sym(token.KindMinus, "-", 7),
				sym(token.KindLParen, "(", 8),
				sym(token.KindRParen, ")", 9),
				sym(token.KindLBracket, "[", 10),
				sym(token.KindRBracket, "]", 11),
				sym(token.KindNegation, "!", 12),
			},
		},
		{
			caption: "requirement set arrow precedes equals",
			src:     "=>",
			want: []token.Token{
				sym(token.KindRequirementSet, "=>", 0),
			},
		},
		{
			caption: "unquoted identifier and quoted identifier",
			src:     `anchor "com.apple.Safari"`,
			want: []token.Token{
				sym(token.KindIdentifier, "anchor", 0),
				sym(token.KindWhitespace, " ", 6),
				sym(token.KindIdentifier, `"com.apple.Safari"`, 7),
			},
		},
		{
			caption: "quoted string with escapes never terminates on an escaped quote",
			src:     `"a\"b"`,
			want: []token.Token{
				sym(token.KindIdentifier, `"a\"b"`, 0),
			},
		},
		{
			caption: "unquoted absolute path",
			src:     "/usr/local/bin/cert.cer",
			want: []token.Token{
				sym(token.KindIdentifier, "/usr/local/bin/cert.cer", 0),
			},
		},
		{
			caption: "hash constant",
			src:     `H"d5800a21"`,
			want: []token.Token{
				sym(token.KindHashConstant, `H"d5800a21"`, 0),
			},
		},
		{
			caption: "line comment consumed to end of line",
			src:     "anchor // trailing note\napple",
			want: []token.Token{
				sym(token.KindIdentifier, "anchor", 0),
				sym(token.KindWhitespace, " ", 6),
				sym(token.KindComment, "// trailing note\n", 7),
				sym(token.KindIdentifier, "apple", 24),
			},
		},
		{
			caption: "block comment mid expression",
			src:     "anchor /* note */ apple",
			want: []token.Token{
				sym(token.KindIdentifier, "anchor", 0),
				sym(token.KindWhitespace, " ", 6),
				sym(token.KindComment, "/* note */", 7),
				sym(token.KindWhitespace, " ", 17),
				sym(token.KindIdentifier, "apple", 18),
			},
		},
		{
			caption: "leading digit identifier tokenizes fine",
			src:     "17.4",
			want: []token.Token{
				sym(token.KindIdentifier, "17.4", 0),
			},
		},
	}

	for _, test := range tests {
		t.Run(test.caption, func(t *testing.T) {
			got, err := Tokenize(test.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := append(append([]token.Token{}, test.want...), token.Token{
				Kind:  token.KindEOF,
				Range: token.Range{Start: len(test.src), End: len(test.src)},
			})
			if len(got) != len(want) {
				t.Fatalf("token count mismatch: got %d, want %d\ngot: %+v\nwant: %+v", len(got), len(want), got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("token %d: got %+v, want %+v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		caption      string
		src          string
		failureIndex int
		guidance     string
	}{
		{
			caption:      "unterminated block comment",
			src:          "anchor /* oops",
			failureIndex: 7,
			guidance:     "unterminated block comment: missing closing */",
		},
		{
			caption:      "unterminated hash constant",
			src:          `H"abc`,
			failureIndex: 0,
			guidance:     `unterminated or invalid hash constant: expected hex digits followed by a closing "`,
		},
		{
			caption:      "invalid hex digit stops the hash constant",
			src:          `H"XYZ"`,
			failureIndex: 0,
			guidance:     `unterminated or invalid hash constant: expected hex digits followed by a closing "`,
		},
		{
			caption:      "unterminated quoted string",
			src:          `"abc`,
			failureIndex: 0,
			guidance:     `unterminated quoted string: missing closing "`,
		},
		{
			caption:      "unrecognized character",
			src:          "anchor %",
			failureIndex: 7,
			guidance:     `unrecognized character '%'`,
		},
	}

	for _, test := range tests {
		t.Run(test.caption, func(t *testing.T) {
			_, err := Tokenize(test.src)
			if err == nil {
				t.Fatalf("expected an error, got none")
			}
			if err.FailureIndex != test.failureIndex {
				t.Errorf("FailureIndex: got %d, want %d", err.FailureIndex, test.failureIndex)
			}
			if g := err.DebugGuidance(); g != test.guidance {
				t.Errorf("DebugGuidance: got %q, want %q", g, test.guidance)
			}
		})
	}
}

func TestFilterRemovesTrivia(t *testing.T) {
	toks, err := Tokenize("anchor // c\napple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	filtered := Filter(toks)
	for _, tok := range filtered {
		if tok.IsTrivia() {
			t.Fatalf("Filter left a trivia token in: %+v", tok)
		}
	}
	if len(filtered) != 3 { // anchor, apple, EOF
		t.Fatalf("got %d non-trivia tokens, want 3: %+v", len(filtered), filtered)
	}
}
