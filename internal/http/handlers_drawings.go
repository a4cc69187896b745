package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"drawtrack/internal/auth"
	"drawtrack/internal/core"
)

// createDrawingRequest mirrors the JSON create payload. Deadline stays a raw
// string so validation reports format problems alongside the other fields.
type createDrawingRequest struct {
	ClientName         string `json:"clientName"`
	DrawingTitle       string `json:"drawingTitle"`
	DrawingDescription string `json:"drawingDescription"`
	Deadline           string `json:"deadline"`
	Amount             string `json:"amount"`
	Completed          bool   `json:"completed"`
	Favorite           bool   `json:"favorite"`
}

// updateDrawingRequest is the partial-update payload; absent fields stay
// untouched.
type updateDrawingRequest struct {
	ClientName         *string    `json:"clientName"`
	DrawingTitle       *string    `json:"drawingTitle"`
	DrawingDescription *string    `json:"drawingDescription"`
	Deadline           *core.Date `json:"deadline"`
	Amount             *string    `json:"amount"`
	Completed          *bool      `json:"completed"`
	Favorite           *bool      `json:"favorite"`
}

func (s *Server) handleListDrawings(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	q := r.URL.Query()
	category := core.Category(q.Get("category"))
	if category != "" && !category.IsValid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Message: "Invalid input",
			Errors:  map[string]string{"category": "unknown category"},
		})
		return
	}

	entries, err := s.entries.List(r.Context(), identity.ID, category, q.Get("q"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreateDrawing(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var req createDrawingRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	created, err := s.entries.Create(r.Context(), identity.ID, core.NewEntry{
		ClientName:         req.ClientName,
		DrawingTitle:       req.DrawingTitle,
		DrawingDescription: req.DrawingDescription,
		Deadline:           req.Deadline,
		Amount:             req.Amount,
		Completed:          req.Completed,
		Favorite:           req.Favorite,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateDrawing(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	var req updateDrawingRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	updated, err := s.entries.Update(r.Context(), identity.ID, id, core.EntryPatch{
		ClientName:         req.ClientName,
		DrawingTitle:       req.DrawingTitle,
		DrawingDescription: req.DrawingDescription,
		Deadline:           req.Deadline,
		Amount:             req.Amount,
		Completed:          req.Completed,
		Favorite:           req.Favorite,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteDrawing(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	if err := s.entries.Delete(r.Context(), identity.ID, id); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// The flag endpoints set the value from the body; anything but an explicit
// true reads as false, so repeating a request is idempotent.
func (s *Server) handleSetFavorite(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	var req struct {
		Favorite bool `json:"favorite"`
	}
	if !readFlagBody(w, r, &req) {
		return
	}

	updated, err := s.entries.Update(r.Context(), identity.ID, id, core.EntryPatch{Favorite: &req.Favorite})
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleSetCompleted(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	var req struct {
		Completed bool `json:"completed"`
	}
	if !readFlagBody(w, r, &req) {
		return
	}

	updated, err := s.entries.Update(r.Context(), identity.ID, id, core.EntryPatch{Completed: &req.Completed})
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// readFlagBody decodes the flag payload; an empty body means the flag is
// absent and therefore false. Reports whether the caller may proceed.
func readFlagBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := readJSON(w, r, dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeError(w, http.StatusBadRequest, "Invalid JSON body")
	return false
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	summary, err := s.entries.Summary(r.Context(), identity.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// entryID parses the {id} path segment. A non-numeric id cannot name an
// entry, so it reads as not found rather than a syntax error.
func entryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "Drawing entry not found")
		return 0, false
	}
	return id, true
}
