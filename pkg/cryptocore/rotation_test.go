package cryptocore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotationManager_RotateAdvancesVersion(t *testing.T) {
	r := NewRotationManager(KeyScopeSession, time.Hour)
	var k1 [32]byte
	k1[0] = 1
	r.Initialize(k1)

	var k2 [32]byte
	k2[0] = 2
	version, err := r.Rotate(k2)
	require.NoError(t, err)
	assert.Equal(t, KeyVersion(2), version)

	current, err := r.Current()
	require.NoError(t, err)
	assert.Equal(t, k2, current.Key)
}

func TestRotationManager_AcceptsPreviousDuringGrace(t *testing.T) {
	r := NewRotationManager(KeyScopeSession, time.Hour)
	var k1 [32]byte
	k1[0] = 1
	r.Initialize(k1)

	var k2 [32]byte
	k2[0] = 2
	_, err := r.Rotate(k2)
	require.NoError(t, err)

	prev, err := r.Lookup(KeyVersion(1))
	require.NoError(t, err)
	assert.Equal(t, k1, prev.Key)
}

func TestRotationManager_RotateWithoutInitializeFails(t *testing.T) {
	r := NewRotationManager(KeyScopeSession, time.Hour)
	_, err := r.Rotate([32]byte{})
	assert.ErrorIs(t, err, ErrNoCurrentKey)
}
