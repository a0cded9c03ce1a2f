package resetpassword

import (
	"encoding/json"
	"errors"
	e "fintrack/internal/core/domain/errors"
	passwordreset "fintrack/internal/core/domain/password_reset"
	"fintrack/internal/core/domain/user"
	"fintrack/internal/core/services"
	resetpassword "fintrack/internal/core/services/reset_password"
	"fintrack/internal/http/handlers/response"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	service services.Service[resetpassword.Input, resetpassword.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Token                string `json:"token"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Length(0, passwordreset.MaxTokenLength)),
		validation.Field(&i.Password, validation.Required, validation.Length(6, 256)),
		validation.Field(&i.PasswordConfirmation, validation.Required, validation.By(i.matchesPassword)),
	)
}

func (i Input) matchesPassword(value interface{}) error {
	confirmation, _ := value.(string)
	if confirmation != i.Password {
		return errors.New("passwords do not match")
	}
	return nil
}

type Result struct {
	Email string `json:"email"`
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
		resetpassword.Input{
			Token:       passwordreset.Token(input.Token),
			NewPassword: user.RawPassword(input.Password),
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, passwordreset.ErrMissingToken):
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
		case errors.Is(err, passwordreset.ErrInvalidToken),
			errors.Is(err, passwordreset.ErrExpiredToken),
			errors.Is(err, passwordreset.ErrUserMissingAtCompletion):
			response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, Result{Email: string(result.Email)}, http.StatusOK)
}
