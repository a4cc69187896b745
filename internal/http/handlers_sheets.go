package http

import (
	"errors"
	"net/http"
)

type syncResponse struct {
	Success     bool  `json:"success"`
	RowsUpdated int64 `json:"rowsUpdated"`
}

// handleSheetsSync runs a full mirror push synchronously. In development a
// failed or missing mirror reports success with zero rows so local work is
// never blocked on Google credentials; production reports the failure.
func (s *Server) handleSheetsSync(w http.ResponseWriter, r *http.Request) {
	rows, err := s.runSync(r)
	if err != nil {
		if s.devMode {
			s.logger.Warn("Mirror sync skipped in development", "error", err)
			writeJSON(w, http.StatusOK, syncResponse{Success: true, RowsUpdated: 0})
			return
		}
		respondError(w, r, err)
		return
	}
	s.dataCache.Delete(mirrorDataKey)
	writeJSON(w, http.StatusOK, syncResponse{Success: true, RowsUpdated: rows})
}

func (s *Server) runSync(r *http.Request) (int64, error) {
	if s.syncer == nil {
		return 0, errors.New("spreadsheet mirror is not configured")
	}
	return s.syncer.SyncAll(r.Context())
}

const mirrorDataKey = "mirror"

func (s *Server) handleSheetsData(w http.ResponseWriter, r *http.Request) {
	if s.mirror == nil {
		writeError(w, http.StatusInternalServerError, "Spreadsheet mirror is not configured")
		return
	}
	if data, ok := s.dataCache.Get(mirrorDataKey); ok {
		writeJSON(w, http.StatusOK, data)
		return
	}
	data, err := s.mirror.Data(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.dataCache.Set(mirrorDataKey, data)
	writeJSON(w, http.StatusOK, data)
}
