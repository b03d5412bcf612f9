package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := NewManager("secret", 30*time.Minute)

	raw, err := m.Issue("alice@example.com", time.Now())
	require.NoError(t, err)

	subject, err := m.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)
}

func TestVerifyExpiredToken(t *testing.T) {
	m := NewManager("secret", 30*time.Minute)

	raw, err := m.Issue("alice@example.com", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = m.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	m := NewManager("secret", 30*time.Minute)

	raw, err := m.Issue("alice@example.com", time.Now())
	require.NoError(t, err)

	other := NewManager("different-secret", 30*time.Minute)
	_, err = other.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	m := NewManager("secret", 30*time.Minute)

	for _, raw := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		_, err := m.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "raw=%q", raw)
	}
}

func TestTTL(t *testing.T) {
	m := NewManager("secret", 45*time.Minute)
	assert.Equal(t, 45*time.Minute, m.TTL())
}
