package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-wizard/internal/listedit"
	"github.com/jonathan/resume-wizard/internal/selection"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

// sectionParam parses the {section} path value.
func sectionParam(r *http.Request) (types.Section, error) {
	raw := r.PathValue("section")
	sec, ok := types.ParseSection(raw)
	if !ok {
		return "", &ErrValidation{Field: "section", Message: fmt.Sprintf("unknown section %q", raw)}
	}
	return sec, nil
}

// entryParams parses the {section} and {index} path values.
func entryParams(r *http.Request) (types.Section, int, error) {
	sec, err := sectionParam(r)
	if err != nil {
		return "", 0, err
	}
	i, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || i < 0 {
		return "", 0, &ErrValidation{Field: "index", Message: "must be a non-negative integer"}
	}
	return sec, i, nil
}

// EntryResponse is returned when an entry is created.
type EntryResponse struct {
	Index int         `json:"index"`
	View  wizard.View `json:"view"`
}

// SkillsResponse is returned when skills are added in bulk.
type SkillsResponse struct {
	Added int         `json:"added"`
	View  wizard.View `json:"view"`
}

// MappedResponse reports whether text has been mapped and how to highlight it.
type MappedResponse struct {
	Text     string              `json:"text"`
	Mapped   bool                `json:"mapped"`
	Segments []selection.Segment `json:"segments"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req types.SelectTextRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(c *wizard.Controller) error { return c.Select(req.Text) })
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(c *wizard.Controller) error {
		c.ClearSelection()
		return nil
	})
}

func (s *Server) handleApplySelection(w http.ResponseWriter, r *http.Request) {
	var req types.ApplySelectionRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(c *wizard.Controller) error { return c.ApplySelection(req.Field) })
}

func (s *Server) handleSetActive(w http.ResponseWriter, r *http.Request) {
	var req types.SetActiveRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	sec, _ := types.ParseSection(req.Section)
	s.mutate(w, r, func(c *wizard.Controller) error { return c.SetActive(sec, req.Index) })
}

// handleMapped answers GET /sessions/{id}/mapped?text=...
func (s *Server) handleMapped(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	s.respond(w, r, http.StatusOK, func(c *wizard.Controller) (any, error) {
		return MappedResponse{Text: text, Mapped: c.IsMapped(text), Segments: c.Highlight(text)}, nil
	})
}

func (s *Server) handleSetLayout(w http.ResponseWriter, r *http.Request) {
	var req types.LayoutRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(c *wizard.Controller) error {
		c.SetFloating(req.Floating)
		return nil
	})
}

func (s *Server) handleOpenContextMenu(w http.ResponseWriter, r *http.Request) {
	var req types.ContextMenuRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(c *wizard.Controller) error { return c.OpenContextMenu(req.Text, req.X, req.Y) })
}

func (s *Server) handleSendToField(w http.ResponseWriter, r *http.Request) {
	var req types.SendToFieldRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(c *wizard.Controller) error { return c.SendToField(req.Path) })
}

func (s *Server) handleCloseContextMenu(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(c *wizard.Controller) error {
		c.CloseContextMenu()
		return nil
	})
}

func (s *Server) handleUpdateBasic(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateFieldRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	value, ok := req.Value.(string)
	if !ok {
		s.writeError(w, r, &ErrValidation{Field: "value", Message: "basic info values must be strings"})
		return
	}
	s.mutate(w, r, func(c *wizard.Controller) error { return c.UpdateBasic(req.Field, value) })
}

func (s *Server) handleClearBasic(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(c *wizard.Controller) error { return c.ClearBasic() })
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	sec, err := sectionParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusCreated, func(c *wizard.Controller) (any, error) {
		i, err := c.AddEntry(sec)
		if err != nil {
			return nil, err
		}
		return EntryResponse{Index: i, View: c.View()}, nil
	})
}

func (s *Server) handleClearEntries(w http.ResponseWriter, r *http.Request) {
	sec, err := sectionParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(c *wizard.Controller) error { return c.ClearEntries(sec) })
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	sec, i, err := entryParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req types.UpdateFieldRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(c *wizard.Controller) error { return c.UpdateEntry(sec, i, req.Field, req.Value) })
}

func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	sec, i, err := entryParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(c *wizard.Controller) error { return c.RemoveEntry(sec, i) })
}

func (s *Server) handleDuplicateEntry(w http.ResponseWriter, r *http.Request) {
	sec, i, err := entryParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(c *wizard.Controller) error { return c.DuplicateEntry(sec, i) })
}

func (s *Server) handleClearEntry(w http.ResponseWriter, r *http.Request) {
	sec, i, err := entryParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(c *wizard.Controller) error { return c.ClearEntry(sec, i) })
}

// handleMoveEntry moves an entry one step or to an absolute position.
func (s *Server) handleMoveEntry(w http.ResponseWriter, r *http.Request) {
	sec, i, err := entryParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req types.MoveRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(c *wizard.Controller) error {
		if req.To != nil {
			return c.MoveEntry(sec, i, *req.To)
		}
		return c.StepEntry(sec, i, listedit.Direction(req.Direction))
	})
}

// handleDrag drives a drag-and-drop gesture within one section.
func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	sec, err := sectionParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req types.DragRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(c *wizard.Controller) error {
		switch req.Action {
		case "start":
			return c.StartDrag(sec, req.Index)
		case "over":
			return c.DragOver(sec, req.Index)
		case "drop":
			return c.DropEntry(sec, req.Index)
		default:
			c.EndDrag(sec)
			return nil
		}
	})
}

func (s *Server) handleBulkSkills(w http.ResponseWriter, r *http.Request) {
	var req types.BulkSkillsRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, func(c *wizard.Controller) (any, error) {
		var (
			n   int
			err error
		)
		if req.FromSelection {
			n, err = c.AddSkillsFromSelection()
		} else {
			n, err = c.AddSkills(req.Text)
		}
		if err != nil {
			return nil, err
		}
		return SkillsResponse{Added: n, View: c.View()}, nil
	})
}

func (s *Server) handleClearSkills(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(c *wizard.Controller) error { return c.ClearEntries(types.SectionSkills) })
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(c *wizard.Controller) error { return c.Advance() })
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req types.NavigateRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	sec, _ := types.ParseSection(req.Section)
	s.mutate(w, r, func(c *wizard.Controller) error { return c.Navigate(sec) })
}
