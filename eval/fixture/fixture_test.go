package fixture_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trilemma-dev/Required-sub000/eval/fixture"
)

func TestLoadAndSubjectAccessors(t *testing.T) {
	doc, err := fixture.Load([]byte(`{
		"identifier": "com.apple.Safari",
		"info": {"CFBundleVersion": "17.4.10"},
		"entitlements": {"com.apple.security.app-sandbox": true},
		"codeDirectoryHash": "d5800a216ffd83b116b7b0f6047cb7f570f49329",
		"certificateChain": [
			{"rawDerHex": "aabbcc", "fields": {"OU": "59GAB85EFG"}, "oids": ["1.2.840.113635.100.6.2.6"]}
		],
		"validity": {"anchor apple": "ok"}
	}`))
	require.NoError(t, err)

	subj := doc.Subject()

	id, ok := subj.Identifier()
	require.True(t, ok)
	require.Equal(t, "com.apple.Safari", id)

	info, ok := subj.InfoDict()
	require.True(t, ok)
	require.Equal(t, "17.4.10", info["CFBundleVersion"])

	chain, ok := subj.CertificateChain()
	require.True(t, ok)
	require.Len(t, chain, 1)
	ou, ok := chain[0].Field("OU")
	require.True(t, ok)
	require.Equal(t, "59GAB85EFG", ou)
	require.True(t, chain[0].HasOID("1.2.840.113635.100.6.2.6"))

	result, err := subj.CheckValidity("anchor apple")
	require.NoError(t, err)
	require.Equal(t, 0, int(result))
}

func TestSubjectAbsentFieldsReportNotPresent(t *testing.T) {
	doc, err := fixture.Load([]byte(`{}`))
	require.NoError(t, err)
	subj := doc.Subject()

	_, ok := subj.Identifier()
	require.False(t, ok)
	_, ok = subj.InfoDict()
	require.False(t, ok)
	_, ok = subj.CertificateChain()
	require.False(t, ok)
}
