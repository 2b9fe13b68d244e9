package events

import "time"

// EventType names the events published inside the process.
type EventType string

const (
	// EventReadingRecorded fires after a glucose reading is stored.
	EventReadingRecorded EventType = "reading.recorded"
)

// Event carries a typed payload through the dispatcher.
type Event struct {
	Type    EventType
	Payload any
}

// ReadingRecorded is the payload for EventReadingRecorded.
type ReadingRecorded struct {
	ReadingID    int64
	PatientID    int64
	GlucoseLevel float64
	ReadingTime  time.Time
}
