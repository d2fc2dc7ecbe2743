package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trilemma-dev/Required-sub000/ast"
	"github.com/trilemma-dev/Required-sub000/parser"
	"github.com/trilemma-dev/Required-sub000/printer"
)

func mustParseReq(t *testing.T, src string) ast.Requirement {
	t.Helper()
	res, err := parser.Parse(src)
	require.NoError(t, err, "source: %s", src)
	require.False(t, res.IsSet())
	return res.Requirement
}

func TestParseSimpleAndIdentifier(t *testing.T) {
	req := mustParseReq(t, `identifier "com.apple.Safari" and anchor apple`)
	and, ok := req.(*ast.And)
	require.True(t, ok)

	id, ok := and.LHS.(*ast.Identifier)
	require.True(t, ok)
	require.Equal(t, "com.apple.Safari", id.Constant)
	require.False(t, id.Explicit)

	cert, ok := and.RHS.(*ast.Certificate)
	require.True(t, ok)
	require.Equal(t, ast.CertWholeApple, cert.Kind)
}

func TestParseDoubleNegation(t *testing.T) {
	req := mustParseReq(t, `!!identifier "x"`)
	outer, ok := req.(*ast.Not)
	require.True(t, ok)
	inner, ok := outer.Child.(*ast.Not)
	require.True(t, ok)
	id, ok := inner.Child.(*ast.Identifier)
	require.True(t, ok)
	require.Equal(t, "x", id.Constant)
}

func TestCertificateRootAppleIsRejected(t *testing.T) {
	_, err := parser.Parse(`certificate root apple`)
	require.Error(t, err)
}

func TestAnchorAppleIsAccepted(t *testing.T) {
	req := mustParseReq(t, `anchor apple`)
	cert, ok := req.(*ast.Certificate)
	require.True(t, ok)
	require.Equal(t, ast.CertWholeApple, cert.Kind)
}

func TestAnchorTrustedVsCertificateAnchorTrusted(t *testing.T) {
	req := mustParseReq(t, `anchor trusted`)
	cert, ok := req.(*ast.Certificate)
	require.True(t, ok)
	require.Equal(t, ast.CertTrusted, cert.Kind)
	require.Equal(t, ast.PosAnchor, cert.Position.Kind)

	_, err := parser.Parse(`certificate anchor trusted`)
	require.Error(t, err)
}

func TestInfoExists(t *testing.T) {
	req := mustParseReq(t, `info[K] exists`)
	info, ok := req.(*ast.Info)
	require.True(t, ok)
	require.Equal(t, "K", info.Key)
	require.Equal(t, ast.MatchUnarySuffixExists, info.Match.Kind)
}

func TestCommentsMidExpressionIgnored(t *testing.T) {
	withComment := mustParseReq(t, `anchor /* note */ apple`)
	without := mustParseReq(t, `anchor apple`)
	require.Equal(t, printer.TextForm(without), printer.TextForm(withComment))
}

func TestCDHashFilePathVsHashConstant(t *testing.T) {
	req := mustParseReq(t, `cdhash "/path with spaces/cert.cer"`)
	cdh, ok := req.(*ast.CodeDirectoryHash)
	require.True(t, ok)
	require.True(t, cdh.IsFilePath)
	require.Equal(t, "/path with spaces/cert.cer", cdh.FilePath)

	req2 := mustParseReq(t, `cdhash H"d5800a216ffd83b116b7b0f6047cb7f570f49329"`)
	cdh2, ok := req2.(*ast.CodeDirectoryHash)
	require.True(t, ok)
	require.False(t, cdh2.IsFilePath)
	require.Equal(t, "d5800a216ffd83b116b7b0f6047cb7f570f49329", cdh2.HashConstant)
}

func TestWildcardForms(t *testing.T) {
	prefix := mustParseReq(t, `info[K] = *s`).(*ast.Info)
	require.Equal(t, ast.MatchInfixEqualsWildcard, prefix.Match.Kind)
	require.Equal(t, ast.WildcardPrefix, prefix.Match.Wildcard.Kind)

	postfix := mustParseReq(t, `info[K] = s*`).(*ast.Info)
	require.Equal(t, ast.WildcardPostfix, postfix.Match.Wildcard.Kind)

	both := mustParseReq(t, `info[K] = *s*`).(*ast.Info)
	require.Equal(t, ast.WildcardBoth, both.Match.Wildcard.Kind)

	_, err := parser.Parse(`info[K] <= *s`)
	require.Error(t, err)
}

func TestIdentifierWithNoOperandIsParserError(t *testing.T) {
	_, err := parser.Parse(`identifier`)
	require.Error(t, err)
	perr, ok := err.(*parser.ParserError)
	require.True(t, ok)
	require.Equal(t, parser.ErrInvalidIdentifier, perr.Kind)
}

func TestParseRequirementSet(t *testing.T) {
	res, err := parser.Parse(`host => anchor apple and identifier com.apple.perl    designated => entitlement["com.apple.security.app-sandbox"] exists`)
	require.NoError(t, err)
	require.True(t, res.IsSet())

	host, ok := res.Set.Entries[ast.TagHost]
	require.True(t, ok)
	hostAnd, ok := host.(*ast.And)
	require.True(t, ok)
	cert, ok := hostAnd.LHS.(*ast.Certificate)
	require.True(t, ok)
	require.Equal(t, ast.CertWholeApple, cert.Kind)

	designated, ok := res.Set.Entries[ast.TagDesignated]
	require.True(t, ok)
	ent, ok := designated.(*ast.Entitlement)
	require.True(t, ok)
	require.Equal(t, "com.apple.security.app-sandbox", ent.Key)
	require.Equal(t, ast.MatchUnarySuffixExists, ent.Match.Kind)
}

func TestParseRequirementSetDuplicateTagIsError(t *testing.T) {
	_, err := parser.Parse(`host => anchor apple host => anchor apple`)
	require.Error(t, err)
}

func TestLargeRepresentativeScenario(t *testing.T) {
	src := `(anchor trusted and cdhash H"d5800a216ffd83b116b7b0f6047cb7f570f49329" or anchor apple generic and certificate -1[field.1.2.840.113635.100.6.2.6] and info[CFBundleVersion] >= "17.4.2" and certificate leaf[subject.OU] = "59GAB85EFG") and !!identifier "com.apple.dt.Xcode"`
	req := mustParseReq(t, src)

	top, ok := req.(*ast.And)
	require.True(t, ok)

	paren, ok := top.LHS.(*ast.Paren)
	require.True(t, ok)
	_, ok = paren.Child.(*ast.Or)
	require.True(t, ok)

	outerNot, ok := top.RHS.(*ast.Not)
	require.True(t, ok)
	innerNot, ok := outerNot.Child.(*ast.Not)
	require.True(t, ok)
	id, ok := innerNot.Child.(*ast.Identifier)
	require.True(t, ok)
	require.Equal(t, "com.apple.dt.Xcode", id.Constant)
}

func TestRoundTrip(t *testing.T) {
	srcs := []string{
		`identifier com.apple.Safari and anchor apple`,
		`anchor apple generic and certificate -1[field.1.2.840.113635.100.6.2.6]`,
		`info[CFBundleVersion] >= "17.4.2"`,
		`!!identifier "com.apple.dt.Xcode"`,
		`entitlement["com.apple.security.app-sandbox"] exists`,
	}
	for _, src := range srcs {
		req := mustParseReq(t, src)
		text := printer.TextForm(req)
		req2 := mustParseReq(t, text)
		require.Equal(t, printer.TextForm(req), printer.TextForm(req2))
	}
}
