package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

// tokenResponse mirrors the OAuth2 password-flow reply shape.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// handleLogin accepts form-encoded credentials and returns a bearer token.
// All failure causes reply 401 with no further detail.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With("op", "handleLogin", "request_id", middleware.GetReqID(r.Context()))

	if err := r.ParseForm(); err != nil {
		log.Error(r.Context(), "failed to parse form", "error", err.Error())
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, respError("invalid request"))
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, respError("username and password are required"))
		return
	}

	user, err := s.tokens.Authenticate(r.Context(), username, password)
	if err != nil {
		s.metrics.LoginCounter.WithLabelValues("failure").Inc()
		renderError(w, r, err)
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		log.Error(r.Context(), "failed to issue token", "error", err.Error())
		renderError(w, r, err)
		return
	}

	s.metrics.LoginCounter.WithLabelValues("success").Inc()
	log.Info(r.Context(), "user logged in", "username", username)

	render.JSON(w, r, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
