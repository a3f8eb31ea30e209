package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jonathan/resume-wizard/internal/blobstore"
	"github.com/jonathan/resume-wizard/internal/handoff"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/upload"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

const (
	maxJSONBody      = 1 << 20
	multipartMemory  = 1 << 20
	resumeFormField  = "resume"
	keepAliveEvery   = 15 * time.Second
	blobCleanupAfter = 10 * time.Second
)

// decodeRequest reads a JSON body into dst and runs its Validate method.
func decodeRequest(r *http.Request, dst any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if v, ok := dst.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return &ErrValidation{Field: "body", Message: err.Error()}
		}
	}
	return nil
}

// session resolves the {id} path value.
func (s *Server) session(r *http.Request) (*Session, error) {
	id := r.PathValue("id")
	sess, ok := s.registry.Get(id)
	if !ok {
		return nil, &ErrSessionNotFound{ID: id}
	}
	return sess, nil
}

// mutate runs fn under the session lock and responds with the resulting view.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(c *wizard.Controller) error) {
	s.respond(w, r, http.StatusOK, func(c *wizard.Controller) (any, error) {
		if err := fn(c); err != nil {
			return nil, err
		}
		return c.View(), nil
	})
}

// respond runs fn under the session lock and writes whatever it returns.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, fn func(c *wizard.Controller) (any, error)) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var out any
	err = sess.Do(s.now(), func(c *wizard.Controller) error {
		var ferr error
		out, ferr = fn(c)
		return ferr
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if out == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.jsonResponse(w, status, out)
}

// readUpload extracts and checks the multipart resume file.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*upload.File, error) {
	limit := s.checker.Limit
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &upload.RejectionError{Reason: upload.ReasonSize, Size: tooLarge.Limit, Limit: limit}
		}
		return nil, &ErrValidation{Field: resumeFormField, Message: fmt.Sprintf("invalid multipart form: %v", err)}
	}
	file, header, err := r.FormFile(resumeFormField)
	if err != nil {
		return nil, &ErrValidation{Field: resumeFormField, Message: "a resume file is required"}
	}
	defer func() { _ = file.Close() }()

	return s.checker.Check(header.Filename, header.Header.Get("Content-Type"), file)
}

// storeUpload writes an accepted upload to the blob store.
func (s *Server) storeUpload(ctx context.Context, f *upload.File) (types.ResumeFile, error) {
	key := blobstore.NewKey(f.Filename)
	if err := s.blobs.Put(ctx, key, f.ContentType, f.Data); err != nil {
		return types.ResumeFile{}, err
	}
	return types.ResumeFile{
		Key:         key,
		Filename:    f.Filename,
		ContentType: f.ContentType,
		Size:        f.Size(),
	}, nil
}

// deleteBlob removes a stored resume, logging rather than failing.
func (s *Server) deleteBlob(key string) {
	if key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), blobCleanupAfter)
	defer cancel()
	if err := s.blobs.Delete(ctx, key); err != nil && !errors.Is(err, blobstore.ErrNotFound) {
		s.logger.Warn("failed to delete resume blob", slog.String("key", key), slog.Any("error", err))
	}
}

// discardResume removes the blob of a discarded session.
func (s *Server) discardResume(sess *Session) {
	var key string
	_ = sess.Do(s.now(), func(c *wizard.Controller) error {
		key = c.Resume().Key
		return nil
	})
	s.deleteBlob(key)
}

// sessionOptions builds the controller options for a new session.
func (s *Server) sessionOptions(resume types.ResumeFile) func(id string, mu sync.Locker) wizard.Options {
	return func(id string, mu sync.Locker) wizard.Options {
		opts := wizard.Options{
			Resume:        resume,
			Logger:        s.logger,
			Saver:         s.settings,
			AutosaveDelay: s.cfg.AutosaveDelay,
			MilestoneTTL:  s.cfg.MilestoneTTL,
			ErrorTTL:      s.cfg.ErrorTTL,
			Now:           s.now,
			OnComplete: func(ctx context.Context, summary types.ProfileSummary) error {
				return s.publisher.Publish(ctx, handoff.Message{
					SessionID:   id,
					Summary:     summary,
					CompletedAt: s.now(),
				})
			},
		}
		if s.cfg.NewScheduler != nil {
			opts.Scheduler = s.cfg.NewScheduler(mu)
		}
		return opts
	}
}

// handleCreateSession accepts a resume upload and starts a wizard session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	f, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resume, err := s.storeUpload(r.Context(), f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess := s.registry.Create(s.sessionOptions(resume))
	s.logger.InfoContext(r.Context(), "session created",
		slog.String("session_id", sess.ID()),
		slog.String("filename", resume.Filename),
		slog.String("content_type", resume.ContentType),
		slog.Int64("size", resume.Size),
	)

	var view wizard.View
	_ = sess.Do(s.now(), func(c *wizard.Controller) error {
		view = c.View()
		return nil
	})
	w.Header().Set("Location", "/sessions/"+sess.ID())
	s.jsonResponse(w, http.StatusCreated, view)
}

// handleGetSession returns the session view.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(*wizard.Controller) error { return nil })
}

// handleDeleteSession discards a session and its stored resume.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, ok := s.registry.Remove(id)
	if !ok {
		s.writeError(w, r, &ErrSessionNotFound{ID: id})
		return
	}
	s.discardResume(sess)
	s.logger.InfoContext(r.Context(), "session deleted", slog.String("session_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// handleGetResume streams the uploaded resume file back for viewing.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var resume types.ResumeFile
	_ = sess.Do(s.now(), func(c *wizard.Controller) error {
		resume = c.Resume()
		return nil
	})

	obj, err := s.blobs.Get(r.Context(), resume.Key)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(obj.Data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", resume.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(obj.Data)
}

// handleReplaceResume swaps the session's resume. ?clear=true also resets
// every entered value.
func (s *Server) handleReplaceResume(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	reset := false
	if v := r.URL.Query().Get("clear"); v != "" {
		if reset, err = strconv.ParseBool(v); err != nil {
			s.writeError(w, r, &ErrValidation{Field: "clear", Message: "must be a boolean"})
			return
		}
	}

	f, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resume, err := s.storeUpload(r.Context(), f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var previous string
	var view wizard.View
	err = sess.Do(s.now(), func(c *wizard.Controller) error {
		previous = c.Resume().Key
		if err := c.ChangeResume(resume, reset); err != nil {
			return err
		}
		view = c.View()
		return nil
	})
	if err != nil {
		s.deleteBlob(resume.Key)
		s.writeError(w, r, err)
		return
	}
	s.deleteBlob(previous)
	s.jsonResponse(w, http.StatusOK, view)
}

// handleEvents streams session events as server-sent events until the
// client disconnects or the session is discarded.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	events, stop := sess.Subscribe()
	defer stop()

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	var view wizard.View
	_ = sess.Do(s.now(), func(c *wizard.Controller) error {
		view = c.View()
		return nil
	})
	if err := sse.WriteEvent("view", view); err != nil {
		return
	}

	keepAlive := time.NewTicker(keepAliveEvery)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case e, ok := <-events:
			if !ok {
				sse.WriteClosed(sess.ID())
				return
			}
			if err := sse.WriteEvent(string(e.Type), e); err != nil {
				s.logger.DebugContext(r.Context(), "event stream write failed", slog.Any("error", err))
				return
			}
		case <-keepAlive.C:
			if err := sse.WriteKeepAlive(); err != nil {
				return
			}
		}
	}
}

// handleComplete validates every section and hands the profile off.
func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, func(c *wizard.Controller) (any, error) {
		summary, err := c.Complete(r.Context())
		if err != nil {
			return nil, err
		}
		return map[string]any{"summary": summary, "view": c.View()}, nil
	})
}

// handleReview returns the per-section review report.
func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, func(c *wizard.Controller) (any, error) {
		snap := c.Snapshot()
		return map[string]any{
			"report":       c.Review(),
			"progress":     c.Progress(),
			"can_complete": snap.CanComplete(),
		}, nil
	})
}

// handleExportSnapshot returns the session state as a JSON snapshot.
func (s *Server) handleExportSnapshot(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, func(c *wizard.Controller) (any, error) {
		return c.Export(), nil
	})
}

// handleImportSnapshot replaces the session state with a validated snapshot.
func (s *Server) handleImportSnapshot(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	s.mutate(w, r, func(c *wizard.Controller) error {
		return c.ImportJSON(data)
	})
}
