package requestpasswordreset

import (
	"context"
	"errors"
	c "fintrack/internal/core/domain/common"
	passwordreset "fintrack/internal/core/domain/password_reset"
	ratelimiter "fintrack/internal/core/domain/rate_limiter"
	service "fintrack/internal/core/services/request_password_reset"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var EXPIRES_AT = time.Date(2024, 3, 1, 12, 15, 0, 0, time.UTC)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.Token = passwordreset.ResetToken{Token: "abc123", Email: input.Email, ExpiresAt: EXPIRES_AT}
	return result, nil
}

func baseUrl(t *testing.T) url.URL {
	u, err := url.Parse("https://fintrack.example.com/reset-password")
	require.NoError(t, err)
	return *u
}

func TestRequestPasswordResetHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
		expectedBody   string
		expectedInput  *service.Input
	}{
		{
			id:             "success",
			body:           `{"email": "User@Example.com"}`,
			expectedStatus: http.StatusCreated,
			expectedBody: `{
				"expires_at": "2024-03-01T12:15:00Z",
				"reset_url": "https://fintrack.example.com/reset-password?token=abc123",
				"token": "abc123"
			}`,
			expectedInput: &service.Input{Email: c.Email("user@example.com")},
		},
		{
			id:             "surrounding spaces",
			body:           `{"email": " user@example.com "}`,
			expectedStatus: http.StatusCreated,
			expectedBody: `{
				"expires_at": "2024-03-01T12:15:00Z",
				"reset_url": "https://fintrack.example.com/reset-password?token=abc123",
				"token": "abc123"
			}`,
			expectedInput: &service.Input{Email: c.Email("user@example.com")},
		},
		{
			id:             "blank email",
			body:           `{"email": "   "}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"email": "cannot be blank"}`,
		},
		{
			id:             "malformed json",
			body:           `{"email": `,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error": "invalid request data"}`,
		},
		{
			id:             "invalid email",
			body:           `{"email": "not-an-email"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"email": "must be a valid email address"}`,
		},
		{
			id:             "missing email",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"email": "cannot be blank"}`,
		},
		{
			id:             "unknown account",
			body:           `{"email": "user@example.com"}`,
			serviceErr:     passwordreset.ErrUnknownAccount,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"error": "unknown account"}`,
			expectedInput:  &service.Input{Email: c.Email("user@example.com")},
		},
		{
			id:             "rate limit exceeded",
			body:           `{"email": "user@example.com"}`,
			serviceErr:     ratelimiter.ErrRateLimitExceeded,
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   `{"error": "rate limit exceeded"}`,
			expectedInput:  &service.Input{Email: c.Email("user@example.com")},
		},
		{
			id:             "internal error",
			body:           `{"email": "user@example.com"}`,
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error": "internal error"}`,
			expectedInput:  &service.Input{Email: c.Email("user@example.com")},
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.id, func(t *testing.T) {
			stub := &stubService{err: testCase.serviceErr}
			handler := New(stub, true, baseUrl(t))

			req := httptest.NewRequest(http.MethodPost, "/auth/password_reset/token", strings.NewReader(testCase.body))
			rw := httptest.NewRecorder()
			handler.ServeHTTP(rw, req)

			assert.Equal(t, testCase.expectedStatus, rw.Code)
			assert.JSONEq(t, testCase.expectedBody, rw.Body.String())
			assert.Equal(t, testCase.expectedInput, stub.input)
		})
	}
}

func TestRequestPasswordResetHandlerHidesToken(t *testing.T) {
	stub := &stubService{}
	handler := New(stub, false, baseUrl(t))

	req := httptest.NewRequest(
		http.MethodPost,
		"/auth/password_reset/token",
		strings.NewReader(`{"email": "user@example.com"}`),
	)
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, req)

	assert.Equal(t, http.StatusCreated, rw.Code)
	assert.JSONEq(t, `{"expires_at": "2024-03-01T12:15:00Z"}`, rw.Body.String())
}
