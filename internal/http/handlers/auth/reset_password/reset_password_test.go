package resetpassword

import (
	"context"
	"errors"
	passwordreset "fintrack/internal/core/domain/password_reset"
	"fintrack/internal/core/domain/user"
	service "fintrack/internal/core/services/reset_password"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.Email = "user@example.com"
	return result, nil
}

const VALID_BODY = `{"token": "abc123", "password": "new-password", "password_confirmation": "new-password"}`

func TestResetPasswordHandler(t *testing.T) {
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
			body:           VALID_BODY,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"email": "user@example.com"}`,
			expectedInput:  &service.Input{Token: "abc123", NewPassword: user.RawPassword("new-password")},
		},
		{
			id:             "malformed json",
			body:           `{"token": [`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error": "invalid request data"}`,
		},
		{
			id:             "missing token",
			body:           `{"password": "new-password", "password_confirmation": "new-password"}`,
			serviceErr:     passwordreset.ErrMissingToken,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error": "missing token"}`,
			expectedInput:  &service.Input{Token: "", NewPassword: user.RawPassword("new-password")},
		},
		{
			id:             "too long token",
			body:           `{"token": "` + strings.Repeat("a", passwordreset.MaxTokenLength+1) + `", "password": "new-password", "password_confirmation": "new-password"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"token": "the length must be no more than 1024"}`,
		},
		{
			id:             "short password",
			body:           `{"token": "abc123", "password": "12345", "password_confirmation": "12345"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"password": "the length must be between 6 and 256"}`,
		},
		{
			id:             "confirmation mismatch",
			body:           `{"token": "abc123", "password": "new-password", "password_confirmation": "other-password"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"password_confirmation": "passwords do not match"}`,
		},
		{
			id:             "invalid token",
			body:           VALID_BODY,
			serviceErr:     passwordreset.ErrInvalidToken,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"error": "invalid token"}`,
			expectedInput:  &service.Input{Token: "abc123", NewPassword: user.RawPassword("new-password")},
		},
		{
			id:             "expired token",
			body:           VALID_BODY,
			serviceErr:     passwordreset.ErrExpiredToken,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"error": "expired token"}`,
			expectedInput:  &service.Input{Token: "abc123", NewPassword: user.RawPassword("new-password")},
		},
		{
			id:             "user missing at completion",
			body:           VALID_BODY,
			serviceErr:     passwordreset.ErrUserMissingAtCompletion,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"error": "user does not exist"}`,
			expectedInput:  &service.Input{Token: "abc123", NewPassword: user.RawPassword("new-password")},
		},
		{
			id:             "internal error",
			body:           VALID_BODY,
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error": "internal error"}`,
			expectedInput:  &service.Input{Token: "abc123", NewPassword: user.RawPassword("new-password")},
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.id, func(t *testing.T) {
			stub := &stubService{err: testCase.serviceErr}
			handler := New(stub)

			req := httptest.NewRequest(http.MethodPut, "/auth/password_reset", strings.NewReader(testCase.body))
			rw := httptest.NewRecorder()
			handler.ServeHTTP(rw, req)

			assert.Equal(t, testCase.expectedStatus, rw.Code)
			assert.JSONEq(t, testCase.expectedBody, rw.Body.String())
			assert.Equal(t, testCase.expectedInput, stub.input)
		})
	}
}
