package http

import (
	"net/http"
	"time"

	"drawtrack/internal/auth"
	"drawtrack/internal/core"
)

// requireAuth resolves the session cookie into an identity and puts it on
// the request context. Requests without a live session get a 401.
func (s *Server) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.SessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		identity, ok := s.auth.Sessions().Get(cookie.Value)
		if !ok {
			s.clearSessionCookie(w)
			writeError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
	})
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.auth.OAuthConfigured() {
		writeError(w, http.StatusNotFound, "Google login is not configured")
		return
	}
	url, err := s.auth.AuthURL()
	if err != nil {
		respondError(w, r, err)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if !s.auth.OAuthConfigured() {
		writeError(w, http.StatusNotFound, "Google login is not configured")
		return
	}

	q := r.URL.Query()
	if errParam := q.Get("error"); errParam != "" {
		s.logger.Warn("OAuth callback rejected", "error", errParam)
		writeError(w, http.StatusUnauthorized, "Google login was denied")
		return
	}
	state, code := q.Get("state"), q.Get("code")
	if state == "" || code == "" {
		writeError(w, http.StatusBadRequest, "Missing state or code")
		return
	}

	identity, err := s.auth.HandleCallback(r.Context(), state, code)
	if err != nil {
		s.logger.Warn("OAuth callback failed", "error", err)
		writeError(w, http.StatusUnauthorized, "Google login failed")
		return
	}

	s.startSession(w, identity)
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleDevLogin is the local-development bypass. It only exists while
// Google OAuth is unconfigured.
func (s *Server) handleDevLogin(w http.ResponseWriter, r *http.Request) {
	if s.auth.OAuthConfigured() {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	identity, err := s.auth.DevLogin(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.startSession(w, identity)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, identity)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookie); err == nil {
		s.auth.Sessions().Delete(cookie.Value)
	}
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) startSession(w http.ResponseWriter, identity core.Identity) {
	id := s.auth.Sessions().Create(identity)
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.auth.Sessions().TTL() / time.Second),
		HttpOnly: true,
		Secure:   !s.devMode,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !s.devMode,
		SameSite: http.SameSiteLaxMode,
	})
}
