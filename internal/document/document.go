package document

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks caller mistakes (unknown enum tags, missing fields).
// The API boundary maps it to a 400 response.
var ErrInvalidInput = errors.New("invalid input")

// ErrChunkingFailed marks internal processing faults. Details stay in the
// logs; the API boundary maps it to a 500 response.
var ErrChunkingFailed = errors.New("chunking failed")

// Source identifies the system a document came from.
type Source string

const (
	SourceConfluence Source = "confluence"
)

// ParseSource validates a source tag from the wire.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceConfluence:
		return Source(s), nil
	}
	return "", fmt.Errorf("%w: unknown source %q", ErrInvalidInput, s)
}

// Valid reports whether the source is a known tag.
func (s Source) Valid() bool {
	_, err := ParseSource(string(s))
	return err == nil
}

// EventType identifies the lifecycle event that triggered chunking.
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// ParseEventType validates an event-type tag from the wire.
func ParseEventType(s string) (EventType, error) {
	switch EventType(s) {
	case EventCreated, EventUpdated, EventDeleted:
		return EventType(s), nil
	}
	return "", fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, s)
}

// Valid reports whether the event type is a known tag.
func (e EventType) Valid() bool {
	_, err := ParseEventType(string(e))
	return err == nil
}

// Document is the input to one chunking call. It is owned by the caller and
// never mutated by the pipeline.
type Document struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Source   Source         `json:"source"`
	SpaceKey string         `json:"space_key,omitempty"`
	Version  int            `json:"version"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Chunk is one node of the chunk graph returned to the caller. IDs are
// content-addressed, so re-chunking identical input reproduces them.
type Chunk struct {
	ID            string         `json:"id"`
	DocumentID    string         `json:"document_id"`
	ParentChunkID string         `json:"parent_chunk_id,omitempty"`
	ChildChunkIDs []string       `json:"child_chunk_ids"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	Header        string         `json:"header,omitempty"`
	Level         int            `json:"level"`
	EventType     string         `json:"event_type"`
	Source        string         `json:"source"`
	DocumentTitle string         `json:"document_title"`
	Timestamp     string         `json:"timestamp"`
	Metadata      map[string]any `json:"metadata"`
}
