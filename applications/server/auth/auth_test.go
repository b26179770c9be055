package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	s := NewSigner("secret")

	token, err := s.Sign("u1", true)
	require.NoError(t, err)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.True(t, claims.Admin)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewSigner("secret").Sign("u1", true)
	require.NoError(t, err)

	_, err = NewSigner("other").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	s := NewSigner("secret")
	s.now = func() time.Time { return time.Now().Add(-2 * tokenTTL) }

	token, err := s.Sign("u1", false)
	require.NoError(t, err)

	_, err = NewSigner("secret").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestFromRequest(t *testing.T) {
	s := NewSigner("secret")
	token, err := s.Sign("u1", false)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{"missing", "", ErrNoToken},
		{"wrong scheme", "Basic " + token, ErrInvalidToken},
		{"empty token", "Bearer ", ErrInvalidToken},
		{"garbage", "Bearer abc.def.ghi", ErrInvalidToken},
		{"valid", "Bearer " + token, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			claims, err := s.FromRequest(r)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u1", claims.UserID)
			assert.False(t, claims.Admin)
		})
	}
}

func TestClaimsContext(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	_, ok := FromContext(r.Context())
	assert.False(t, ok)

	ctx := WithClaims(r.Context(), &Claims{UserID: "u1"})
	c, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", c.UserID)
}
