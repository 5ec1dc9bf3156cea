package session_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/honeylink/honeylink-core/pkg/session"
)

func TestVersionNegotiator_S1HappyPathFallback(t *testing.T) {
	n, err := session.DefaultVersionNegotiator("1.5.0")
	require.NoError(t, err)

	result, err := n.Negotiate("1.2.0")
	require.NoError(t, err)
	require.Equal(t, "1.2.0", result.Negotiated.String())
	require.True(t, result.IsFallback)
}

func TestVersionNegotiator_ClientEqualsServerNoFallback(t *testing.T) {
	n, err := session.DefaultVersionNegotiator("1.5.0")
	require.NoError(t, err)

	result, err := n.Negotiate("1.5.0")
	require.NoError(t, err)
	require.Equal(t, "1.5.0", result.Negotiated.String())
	require.False(t, result.IsFallback)
}

func TestVersionNegotiator_ClientAboveServerCapsAtServer(t *testing.T) {
	n, err := session.DefaultVersionNegotiator("1.5.0")
	require.NoError(t, err)

	result, err := n.Negotiate("2.0.0")
	require.NoError(t, err)
	require.Equal(t, "1.5.0", result.Negotiated.String())
	require.False(t, result.IsFallback)
}

func TestVersionNegotiator_S6OutsideRangeFails(t *testing.T) {
	n, err := session.DefaultVersionNegotiator("1.5.0")
	require.NoError(t, err)

	_, err = n.Negotiate("3.0.0")
	require.Error(t, err)
	var vnf *session.VersionNegotiationFailedError
	require.ErrorAs(t, err, &vnf)
	require.Equal(t, "3.0.0", vnf.Client)
	require.Equal(t, "1.5.0", vnf.Server)
}
