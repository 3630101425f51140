package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/b3rknt/Modanist/internal/domain"
	"github.com/b3rknt/Modanist/internal/profile"
)

// GetProfile returns the saved profile, or an empty one when the user has
// never saved: the profile screen starts from a blank form, not an error.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	p, err := s.profiles.Get(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			respondJSON(w, http.StatusOK, domain.Profile{})
			return
		}
		s.log.Error().Err(err).Msg("failed to get profile")
		respondError(w, http.StatusBadGateway, "profile_unavailable", "could not load profile")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// SaveProfile overwrites the whole profile document.
func (s *Server) SaveProfile(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	var p domain.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := s.profiles.Put(r.Context(), identity.UserID, p); err != nil {
		s.log.Error().Err(err).Msg("failed to save profile")
		respondError(w, http.StatusBadGateway, "profile_unavailable", "could not save profile")
		return
	}
	respondJSON(w, http.StatusOK, p)
}
