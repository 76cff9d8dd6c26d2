package policy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"blockalloc/errs"
)

func TestParse_KnownTokens(t *testing.T) {
	cases := map[string]Policy{
		"":         FirstFit,
		"FirstFit": FirstFit,
		"NextFit":  NextFit,
		"BestFit":  BestFit,
		"WorstFit": WorstFit,
	}
	for token, want := range cases {
		got, err := Parse(token)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestParse_UnknownTokenIsBadArgument(t *testing.T) {
	_, err := Parse("RandomFit")
	require.ErrorIs(t, err, errs.ErrBadArgument)
}

func TestString_RoundTripsKnownPolicies(t *testing.T) {
	for _, p := range []Policy{FirstFit, NextFit, BestFit, WorstFit} {
		got, err := Parse(p.String())
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
}

func TestString_UnknownValueIsReported(t *testing.T) {
	require.Equal(t, "Unknown", Policy(99).String())
}

func TestZeroValueIsFirstFit(t *testing.T) {
	var p Policy
	require.Equal(t, FirstFit, p)
}
