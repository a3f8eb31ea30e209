package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/jonathan/resume-wizard/internal/settings"
)

const maxSettingBytes = 64 << 10

// handleGetSetting returns a stored JSON setting verbatim.
func (s *Server) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	value, err := s.settings.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(value)
}

// handlePutSetting stores any valid JSON document under key.
func (s *Server) handlePutSetting(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	value, err := io.ReadAll(io.LimitReader(r.Body, maxSettingBytes+1))
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	if len(value) > maxSettingBytes {
		s.writeError(w, r, &ErrValidation{Field: "body", Message: "setting exceeds 64KiB"})
		return
	}
	if !json.Valid(value) {
		s.writeError(w, r, &ErrValidation{Field: "body", Message: "setting must be valid JSON"})
		return
	}
	if err := s.settings.Put(r.Context(), key, value); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetPanelLayout returns the stored floating panel layout, falling back
// to defaults for anything missing or unreadable.
func (s *Server) handleGetPanelLayout(w http.ResponseWriter, r *http.Request) {
	layout, err := settings.LoadLayout(r.Context(), s.settings, r.PathValue("key"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, layout)
}

// handlePutPanelLayout clamps and stores a floating panel layout.
func (s *Server) handlePutPanelLayout(w http.ResponseWriter, r *http.Request) {
	var layout settings.Layout
	if err := decodeRequest(r, &layout); err != nil {
		s.writeError(w, r, err)
		return
	}
	saved, err := settings.SaveLayout(r.Context(), s.settings, r.PathValue("key"), layout)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, saved)
}
