package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/b3rknt/Modanist/internal/auth"
)

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Token    string         `json:"token,omitempty"`
	State    string         `json:"state"`
	Identity *auth.Identity `json:"identity,omitempty"`
}

// Register creates an account and signs it in. Email and password are
// validated locally; the store is never touched on a validation failure.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_fields", "email and password are required")
		return
	}

	token, identity, err := s.auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmail):
			respondError(w, http.StatusBadRequest, "invalid_email", err.Error())
		case errors.Is(err, auth.ErrWeakPassword):
			respondError(w, http.StatusBadRequest, "weak_password", err.Error())
		case errors.Is(err, auth.ErrEmailTaken):
			respondError(w, http.StatusConflict, "email_taken", err.Error())
		default:
			s.log.Error().Err(err).Msg("sign-up failed")
			respondError(w, http.StatusBadGateway, "auth_unavailable", "could not register")
		}
		return
	}

	g := s.gate(deviceID(r))
	g.SignIn()

	respondJSON(w, http.StatusCreated, SessionResponse{
		Token:    token,
		State:    g.State().String(),
		Identity: identity,
	})
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_fields", "email and password are required")
		return
	}

	token, identity, err := s.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmail):
			respondError(w, http.StatusBadRequest, "invalid_email", err.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		default:
			s.log.Error().Err(err).Msg("sign-in failed")
			respondError(w, http.StatusBadGateway, "auth_unavailable", "could not sign in")
		}
		return
	}

	g := s.gate(deviceID(r))
	g.SignIn()

	respondJSON(w, http.StatusOK, SessionResponse{
		Token:    token,
		State:    g.State().String(),
		Identity: identity,
	})
}

// GuestLogin is the explicit "continue as guest" action from the
// unauthenticated screen.
func (s *Server) GuestLogin(w http.ResponseWriter, r *http.Request) {
	token, identity, err := s.auth.GuestToken()
	if err != nil {
		s.log.Error().Err(err).Msg("guest token failed")
		respondError(w, http.StatusInternalServerError, "auth_unavailable", "could not start guest session")
		return
	}

	g := s.gate(deviceID(r))
	if g.Pending() {
		g.Resolve(nil)
	}
	g.Guest()

	respondJSON(w, http.StatusOK, SessionResponse{
		Token:    token,
		State:    g.State().String(),
		Identity: identity,
	})
}

// Logout revokes the token and discards the in-memory session.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "no session token")
		return
	}

	identity := identityFromContext(r.Context())
	if err := s.auth.SignOut(token); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid_token", "no such session")
		return
	}
	if identity != nil {
		s.sessions.Drop(identity.UserID)
	}

	g := s.gate(deviceID(r))
	g.SignOut()

	respondJSON(w, http.StatusOK, SessionResponse{State: g.State().String()})
}

// SessionCheck resolves the device's navigation gate from the presented
// token. Until this has run, the gate is pending and the client renders
// nothing.
func (s *Server) SessionCheck(w http.ResponseWriter, r *http.Request) {
	g := s.gate(deviceID(r))
	identity := identityFromContext(r.Context())
	g.Resolve(identity)

	respondJSON(w, http.StatusOK, SessionResponse{
		State:    g.State().String(),
		Identity: identity,
	})
}
