package services

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rmateos/taskdeck-be/internal/models"
)

// EventServiceProvider defines the interface for activity feed services.
type EventServiceProvider interface {
	Record(eventType, level, message, userID string) error
	Recent(userID string, limit int) ([]models.Event, error)
}

// EventBroadcaster pushes a recorded event to a user's live connections.
type EventBroadcaster interface {
	BroadcastTo(userID string, message []byte)
}

// EventService persists activity events and forwards them to the hub.
type EventService struct {
	db  *sql.DB
	hub EventBroadcaster // may be nil when no live feed is wired
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB, hub EventBroadcaster) *EventService {
	return &EventService{db: db, hub: hub}
}

// Record logs a new event to the user's activity feed and broadcasts it to
// any live websocket connections the user holds.
func (s *EventService) Record(eventType, level, message, userID string) error {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO events (id, type, level, message, user_id, created_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(event.ID, event.Type, event.Level, event.Message, event.UserID, event.CreatedAt); err != nil {
		return err
	}

	if s.hub != nil {
		if payload, err := json.Marshal(event); err == nil {
			s.hub.BroadcastTo(userID, payload)
		}
	}
	return nil
}

// Recent retrieves the user's most recent activity events.
func (s *EventService) Recent(userID string, limit int) ([]models.Event, error) {
	rows, err := s.db.Query(`
		SELECT id, type, level, message, user_id, created_at
		FROM events WHERE user_id = ? ORDER BY rowid DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.UserID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
