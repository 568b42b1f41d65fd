package security

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/planifikues/travel-planner/internal/core/domain"
)

func newTestHasher(t *testing.T) *BcryptHasher {
	t.Helper()
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("pw123")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123", hash)
	assert.True(t, h.Verify("pw123", hash))
	assert.False(t, h.Verify("wrongpassword", hash))
}

func TestBcryptHasher_SaltedOutputs(t *testing.T) {
	h := newTestHasher(t)

	first, err := h.Hash("pw123")
	require.NoError(t, err)
	second, err := h.Hash("pw123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("pw123", first))
	assert.True(t, h.Verify("pw123", second))
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := newTestHasher(t)

	assert.False(t, h.Verify("pw123", "invalidhash"))
	assert.False(t, h.Verify("pw123", ""))
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost + 1)
	require.NoError(t, err)

	hash, err := h.Hash("pw123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
}

func TestBcryptHasher_RejectsBadInput(t *testing.T) {
	h := newTestHasher(t)

	_, err := h.Hash("")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = h.Hash(strings.Repeat("x", 73))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestNewBcryptHasher_CostRange(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost - 1)
	assert.Error(t, err)
	_, err = NewBcryptHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}
