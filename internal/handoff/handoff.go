// Package handoff delivers a completed profile summary to the enclosing
// application. Each completed session is published exactly once.
package handoff

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/jonathan/resume-wizard/internal/types"
)

// DefaultQueue is the queue completions are published to.
const DefaultQueue = "profile.completed"

// Message is the completion payload.
type Message struct {
	SessionID   string               `json:"session_id"`
	Summary     types.ProfileSummary `json:"summary"`
	CompletedAt time.Time            `json:"completed_at"`
}

// Publisher delivers completion messages.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Log writes completions to a logger. It is the default when no broker or
// database is configured.
type Log struct {
	logger *slog.Logger
}

// NewLog returns a Log publisher writing to logger.
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

func (l *Log) Publish(_ context.Context, msg Message) error {
	l.logger.Info("profile completed",
		slog.String("session_id", msg.SessionID),
		slog.String("name", msg.Summary.BasicInfo.FullName),
		slog.Int("experiences", msg.Summary.ExperiencesCount),
		slog.Int("projects", msg.Summary.ProjectsCount),
		slog.Int("education", msg.Summary.EducationCount),
		slog.Int("skills", msg.Summary.SkillsCount),
	)
	return nil
}

func (l *Log) Close() error { return nil }

// AMQP publishes completions as JSON to a durable queue.
type AMQP struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// DialAMQP connects to url and declares queue.
func DialAMQP(url, queue string) (*AMQP, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error opening channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("error declaring queue %s: %w", queue, err)
	}
	return &AMQP{conn: conn, ch: ch, queue: queue}, nil
}

func (a *AMQP) Publish(_ context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal completion: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	err = a.ch.Publish(
		"",
		a.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    msg.CompletedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish completion for %s: %w", msg.SessionID, err)
	}
	return nil
}

// Close closes the channel and connection.
func (a *AMQP) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ch != nil {
		a.ch.Close()
	}
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}

// Archiver stores completion summaries. *db.DB implements it.
type Archiver interface {
	SaveSummary(ctx context.Context, sessionID string, s types.ProfileSummary) (uuid.UUID, error)
}

// Postgres archives completions in the profile_summaries table.
type Postgres struct {
	archive Archiver
	logger  *slog.Logger
}

// NewPostgres returns a publisher backed by archive.
func NewPostgres(archive Archiver, logger *slog.Logger) *Postgres {
	if logger == nil {
		logger = slog.Default()
	}
	return &Postgres{archive: archive, logger: logger}
}

func (p *Postgres) Publish(ctx context.Context, msg Message) error {
	id, err := p.archive.SaveSummary(ctx, msg.SessionID, msg.Summary)
	if err != nil {
		return err
	}
	p.logger.Info("profile summary archived", slog.String("session_id", msg.SessionID), slog.String("summary_id", id.String()))
	return nil
}

func (p *Postgres) Close() error { return nil }

// Once wraps a Publisher so each session is published at most once.
// A failed publish may be retried.
type Once struct {
	next Publisher
	mu   sync.Mutex
	done map[string]bool
}

// NewOnce wraps next.
func NewOnce(next Publisher) *Once {
	return &Once{next: next, done: make(map[string]bool)}
}

func (o *Once) Publish(ctx context.Context, msg Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.done[msg.SessionID] {
		return nil
	}
	if err := o.next.Publish(ctx, msg); err != nil {
		return err
	}
	o.done[msg.SessionID] = true
	return nil
}

func (o *Once) Close() error { return o.next.Close() }
