package verifypasswordresettoken

import (
	"errors"
	e "fintrack/internal/core/domain/errors"
	passwordreset "fintrack/internal/core/domain/password_reset"
	"fintrack/internal/core/services"
	service "fintrack/internal/core/services/verify_password_reset_token"
	"fintrack/internal/http/handlers/response"
	"net/http"
	"time"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	result, err := h.service.Run(r.Context(), service.Input{Token: passwordreset.Token(token)})
	if err != nil {
		switch {
		case errors.Is(err, passwordreset.ErrMissingToken):
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
		case errors.Is(err, passwordreset.ErrInvalidToken), errors.Is(err, passwordreset.ErrExpiredToken):
			response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, Result{Email: string(result.Email), ExpiresAt: result.ExpiresAt}, http.StatusOK)
}
