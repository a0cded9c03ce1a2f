package passwordreset

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIsWellFormed(t *testing.T) {
	cases := []struct {
		token    Token
		expected bool
	}{
		{token: "", expected: false},
		{token: "a", expected: true},
		{token: Token(strings.Repeat("a", MaxTokenLength)), expected: true},
		{token: Token(strings.Repeat("a", MaxTokenLength+1)), expected: false},
	}

	for _, testCase := range cases {
		assert.Equal(t, testCase.expected, testCase.token.IsWellFormed(), len(testCase.token))
	}
}

func TestTokenResetURL(t *testing.T) {
	cases := []struct {
		base     string
		token    Token
		expected string
	}{
		{
			base:     "https://fintrack.example.com/reset-password",
			token:    "abc",
			expected: "https://fintrack.example.com/reset-password?token=abc",
		},
		{
			base:     "https://fintrack.example.com/reset-password?lang=en",
			token:    "abc",
			expected: "https://fintrack.example.com/reset-password?lang=en&token=abc",
		},
		{
			base:     "/reset-password?token=old",
			token:    "a b&c",
			expected: "/reset-password?token=a+b%26c",
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.base, func(t *testing.T) {
			base, err := url.Parse(testCase.base)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, testCase.token.ResetURL(*base))
		})
	}
}

func TestResetTokenIsExpired(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	token := ResetToken{Token: "abc", Email: "user@example.com", ExpiresAt: now}

	assert.False(t, token.IsExpired(now.Add(-time.Millisecond)))
	assert.False(t, token.IsExpired(now))
	assert.True(t, token.IsExpired(now.Add(time.Millisecond)))
}

func TestVerificationErr(t *testing.T) {
	assert.NoError(t, Valid(ResetToken{}).Err())
	assert.ErrorIs(t, Invalid().Err(), ErrInvalidToken)
	assert.ErrorIs(t, Expired().Err(), ErrExpiredToken)
}
