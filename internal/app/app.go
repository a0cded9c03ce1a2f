package app

import (
	"fintrack/internal/app/deps"
	"fintrack/internal/app/services"
	"fintrack/internal/config"
	requestpasswordreset "fintrack/internal/http/handlers/auth/request_password_reset"
	resetpassword "fintrack/internal/http/handlers/auth/reset_password"
	verifypasswordresettoken "fintrack/internal/http/handlers/auth/verify_password_reset_token"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func NewRouter(cfg *config.Config, s *services.Services) http.Handler {
	exposeToken := cfg.PasswordResetDelivery == config.DeliveryResponse

	passwordResetRouter := chi.NewRouter()
	passwordResetRouter.Method(
		http.MethodPost,
		"/token",
		requestpasswordreset.New(s.RequestPasswordReset, exposeToken, cfg.PasswordResetBaseUrl),
	)
	passwordResetRouter.Method(
		http.MethodGet,
		"/token",
		verifypasswordresettoken.New(s.VerifyPasswordResetToken),
	)
	passwordResetRouter.Method(http.MethodPut, "/", resetpassword.New(s.ResetPassword))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth/password_reset", passwordResetRouter)

	return router
}

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: NewRouter(deps.Config, s),
		Addr:    address,
	}
}
