package punch

import (
	"time"
)

// EventType is the direction of a punch.
type EventType string

const (
	EventCheckIn  EventType = "CheckIn"
	EventCheckOut EventType = "CheckOut"
)

// Source records which surface produced the punch.
type Source string

const (
	SourceWeb    Source = "Web"
	SourceMobile Source = "Mobile"
	SourceSystem Source = "Auto-System"
)

// Punch is a single immutable check-in/check-out event. Rows are append-only;
// corrections happen on the attendance summary, never here.
type Punch struct {
	ID             string
	UserID         string
	EventType      EventType
	EventTime      time.Time
	Latitude       *float64
	Longitude      *float64
	AccuracyMeters *float64
	Source         Source
	Notes          *string
	CreatedAt      time.Time
}
