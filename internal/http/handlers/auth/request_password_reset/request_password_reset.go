package requestpasswordreset

import (
	"encoding/json"
	"errors"
	c "fintrack/internal/core/domain/common"
	e "fintrack/internal/core/domain/errors"
	passwordreset "fintrack/internal/core/domain/password_reset"
	ratelimiter "fintrack/internal/core/domain/rate_limiter"
	"fintrack/internal/core/services"
	service "fintrack/internal/core/services/request_password_reset"
	"fintrack/internal/http/handlers/response"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service      services.Service[service.Input, service.Result]
	exposeToken  bool
	resetBaseUrl url.URL
}

// New creates the handler. When exposeToken is set the token and the
// reset URL are returned to the client, otherwise they are delivered
// out of band.
func New(
	service services.Service[service.Input, service.Result],
	exposeToken bool,
	resetBaseUrl url.URL,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, exposeToken: exposeToken, resetBaseUrl: resetBaseUrl}
}

type Input struct {
	Email string `json:"email"`
}

// FromJSON decodes the input and strips surrounding spaces
// the client may send along with the email.
func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	if err := e.Decode(i); err != nil {
		return err
	}
	i.Email = strings.TrimSpace(i.Email)
	return nil
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
	)
}

type Result struct {
	ExpiresAt time.Time `json:"expires_at"`
	ResetUrl  string    `json:"reset_url,omitempty"`
	Token     string    `json:"token,omitempty"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequestData(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{Email: c.NewEmail(input.Email)},
	)
	if err != nil {
		switch {
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		case errors.Is(err, passwordreset.ErrUnknownAccount):
			response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	res := Result{ExpiresAt: result.Token.ExpiresAt}
	if h.exposeToken {
		res.Token = string(result.Token.Token)
		res.ResetUrl = result.Token.Token.ResetURL(h.resetBaseUrl)
	}
	response.Render(rw, res, http.StatusCreated)
}
