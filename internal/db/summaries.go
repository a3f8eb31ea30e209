package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-wizard/internal/types"
)

// SummaryRecord is an archived completion.
type SummaryRecord struct {
	ID          uuid.UUID            `json:"id"`
	SessionID   string               `json:"session_id"`
	Summary     types.ProfileSummary `json:"summary"`
	CompletedAt time.Time            `json:"completed_at"`
}

// SaveSummary archives the summary of a completed session and returns its ID.
// A session is archived at most once; a repeat returns the existing ID.
func (db *DB) SaveSummary(ctx context.Context, sessionID string, s types.ProfileSummary) (uuid.UUID, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal summary: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO profile_summaries
		   (session_id, full_name, email, phone, experiences_count, projects_count, education_count, skills_count, summary)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (session_id) DO UPDATE SET session_id = EXCLUDED.session_id
		 RETURNING id`,
		sessionID, s.BasicInfo.FullName, s.BasicInfo.Email, s.BasicInfo.Phone,
		s.ExperiencesCount, s.ProjectsCount, s.EducationCount, s.SkillsCount, body,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save summary for session %s: %w", sessionID, err)
	}
	return id, nil
}

// GetSummary returns the archived summary for sessionID, or nil if none exists.
func (db *DB) GetSummary(ctx context.Context, sessionID string) (*SummaryRecord, error) {
	var rec SummaryRecord
	var body []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, session_id, summary, completed_at FROM profile_summaries WHERE session_id = $1`,
		sessionID,
	).Scan(&rec.ID, &rec.SessionID, &body, &rec.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get summary for session %s: %w", sessionID, err)
	}
	if err := json.Unmarshal(body, &rec.Summary); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}
	return &rec, nil
}

// ListSummaries returns the most recent archived summaries, newest first.
func (db *DB) ListSummaries(ctx context.Context, limit int) ([]SummaryRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, session_id, summary, completed_at
		 FROM profile_summaries ORDER BY completed_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	defer rows.Close()

	var out []SummaryRecord
	for rows.Next() {
		var rec SummaryRecord
		var body []byte
		if err := rows.Scan(&rec.ID, &rec.SessionID, &body, &rec.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		if err := json.Unmarshal(body, &rec.Summary); err != nil {
			return nil, fmt.Errorf("failed to decode summary: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
