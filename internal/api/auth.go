package api

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/kidandcat/projectview/internal/db"
	"github.com/kidandcat/projectview/internal/model"
)

type contextKey string

const userKey contextKey = "user"

const authKeyword = "Token"

// CurrentUser returns the user authenticated by requireToken.
func CurrentUser(r *http.Request) *model.User {
	if u, ok := r.Context().Value(userKey).(*model.User); ok {
		return u
	}
	return nil
}

func (s *Server) handleObtainToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "JSON parse error")
			return
		}
	} else {
		req.Username = r.FormValue("username")
		req.Password = r.FormValue("password")
	}

	missing := map[string][]string{}
	if req.Username == "" {
		missing["username"] = []string{"This field is required."}
	}
	if req.Password == "" {
		missing["password"] = []string{"This field is required."}
	}
	if len(missing) > 0 {
		writeJSON(w, http.StatusBadRequest, missing)
		return
	}

	user, err := s.store.Authenticate(r.Context(), req.Username, req.Password)
	if errors.Is(err, db.ErrInvalidCredentials) {
		hlog.FromRequest(r).Info().Str("username", req.Username).Msg("login rejected")
		writeJSON(w, http.StatusBadRequest, map[string][]string{
			"non_field_errors": {"Unable to log in with provided credentials."},
		})
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("error authenticating")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := s.store.TokenForUser(r.Context(), user.ID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Int64("user_id", user.ID).Msg("error issuing token")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", authKeyword)
	writeError(w, http.StatusUnauthorized, msg)
}

// requireToken authenticates "Authorization: Token <key>" headers and puts
// the token's user in the request context.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fields := strings.Fields(r.Header.Get("Authorization"))
		if len(fields) == 0 || fields[0] != authKeyword {
			unauthorized(w, "Authentication credentials were not provided.")
			return
		}
		if len(fields) == 1 {
			unauthorized(w, "Invalid token header. No credentials provided.")
			return
		}
		if len(fields) > 2 {
			unauthorized(w, "Invalid token header. Token string should not contain spaces.")
			return
		}

		user, err := s.store.UserByToken(r.Context(), fields[1])
		if errors.Is(err, db.ErrNotFound) {
			unauthorized(w, "Invalid token.")
			return
		}
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("error checking token")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
