package token

import (
	"context"
	"testing"
	"time"

	"doseup-parent/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_IssueAndVerify(t *testing.T) {
	s, err := NewSigner("test-secret", time.Hour)
	require.NoError(t, err)

	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	tok, exp, err := s.Issue(context.Background(), auth.Claims{ParentID: "p-1", AdminID: "a-1", Phone: "+51999"})
	require.NoError(t, err)
	assert.Equal(t, base.Add(time.Hour), exp)

	c, err := s.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{ParentID: "p-1", AdminID: "a-1", Phone: "+51999"}, c)
}

func TestSigner_RejectsExpiredAndForeignTokens(t *testing.T) {
	s, err := NewSigner("test-secret", time.Minute)
	require.NoError(t, err)

	base := time.Now()
	s.now = func() time.Time { return base }
	tok, _, err := s.Issue(context.Background(), auth.Claims{ParentID: "p-1", AdminID: "a-1"})
	require.NoError(t, err)

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = s.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	other, err := NewSigner("other-secret", time.Minute)
	require.NoError(t, err)
	s.now = func() time.Time { return base }
	_, err = other.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = s.Verify(context.Background(), "garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestNewSigner_Validates(t *testing.T) {
	_, err := NewSigner("", time.Hour)
	assert.Error(t, err)
	_, err = NewSigner("x", 0)
	assert.Error(t, err)
}
