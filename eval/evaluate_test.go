package eval_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trilemma-dev/Required-sub000/eval"
	"github.com/trilemma-dev/Required-sub000/eval/fixture"
	"github.com/trilemma-dev/Required-sub000/parser"
)

func parseRequirement(t *testing.T, src string) (result parser.Result) {
	t.Helper()
	result, err := parser.Parse(src)
	require.NoError(t, err)
	require.False(t, result.IsSet())
	return result
}

func TestEvaluateIdentifier(t *testing.T) {
	doc, err := fixture.Load([]byte(`{"identifier": "com.apple.Safari"}`))
	require.NoError(t, err)
	subj := doc.Subject()

	res := parseRequirement(t, `identifier com.apple.Safari`)
	e := eval.Evaluate(res.Requirement, subj)
	require.True(t, e.Satisfied)

	res2 := parseRequirement(t, `identifier com.apple.Mail`)
	e2 := eval.Evaluate(res2.Requirement, subj)
	require.False(t, e2.Satisfied)
}

func TestEvaluateDoubleNegationMatchesOperand(t *testing.T) {
	doc, err := fixture.Load([]byte(`{"identifier": "com.apple.Safari"}`))
	require.NoError(t, err)
	subj := doc.Subject()

	x := parseRequirement(t, `identifier com.apple.Safari`).Requirement
	notNot := parseRequirement(t, `!!identifier com.apple.Safari`).Requirement

	ex := eval.Evaluate(x, subj)
	enn := eval.Evaluate(notNot, subj)
	require.Equal(t, ex.Satisfied, enn.Satisfied)
}

func TestEvaluateInfoNumericComparison(t *testing.T) {
	doc, err := fixture.Load([]byte(`{"info": {"CFBundleVersion": "17.4.10"}}`))
	require.NoError(t, err)
	subj := doc.Subject()

	res := parseRequirement(t, `info[CFBundleVersion] >= "17.4.2"`)
	e := eval.Evaluate(res.Requirement, subj)
	require.True(t, e.Satisfied)
}

func TestEvaluateEntitlementExists(t *testing.T) {
	doc, err := fixture.Load([]byte(`{"entitlements": {"com.apple.security.app-sandbox": true}}`))
	require.NoError(t, err)
	subj := doc.Subject()

	res := parseRequirement(t, `entitlement["com.apple.security.app-sandbox"] exists`)
	e := eval.Evaluate(res.Requirement, subj)
	require.True(t, e.Satisfied)
}

func TestEvaluateEntitlementFalseDoesNotSatisfyExists(t *testing.T) {
	doc, err := fixture.Load([]byte(`{"entitlements": {"com.apple.security.app-sandbox": false}}`))
	require.NoError(t, err)
	subj := doc.Subject()

	res := parseRequirement(t, `entitlement["com.apple.security.app-sandbox"] exists`)
	e := eval.Evaluate(res.Requirement, subj)
	require.False(t, e.Satisfied)
}

func TestRenderEvaluationFootnotes(t *testing.T) {
	doc, err := fixture.Load([]byte(`{"identifier": "com.apple.Mail"}`))
	require.NoError(t, err)
	subj := doc.Subject()

	res := parseRequirement(t, `identifier com.apple.Safari and identifier com.apple.Mail`)
	e := eval.Evaluate(res.Requirement, subj)
	out := eval.RenderEvaluation(e, true)

	require.Contains(t, out, "{false}")
	require.Contains(t, out, "Constraint(s) not satisfied:")
	require.True(t, strings.Contains(out, "¹") || strings.Contains(out, "[1]"))
}
