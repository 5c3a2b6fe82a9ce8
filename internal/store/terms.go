package store

import (
	"context"
	"errors"
	"strings"

	"github.com/abhisek/glossary/internal/glossary"
)

var (
	// ErrTopicNotFound is returned when no backing data exists for a topic.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrUnavailable wraps I/O failures of the underlying storage.
	ErrUnavailable = errors.New("term store unavailable")
)

// TermStore maps a topic to its ordered raw record lines.
//
// Every backend lays topics out the same way: creating a topic writes a
// blank line 0, and each append adds one "keyword -$- meaning" line after
// it. Read returns all lines, including line 0.
type TermStore interface {
	// Read returns the topic's lines in order. Returns ErrTopicNotFound
	// if the topic has never been appended to.
	Read(ctx context.Context, topic string) ([]string, error)

	// Append adds one record to the topic, creating it if absent.
	// Records that do not parse are rejected before anything is written.
	Append(ctx context.Context, topic, record string) error
}

// Lister is implemented by term stores that can enumerate their topics.
type Lister interface {
	// Topics returns the normalized topic names in ascending order.
	Topics(ctx context.Context) ([]string, error)
}

// validateRecord rejects records that would not read back as one
// well-formed line.
func validateRecord(record string) error {
	if strings.ContainsAny(record, "\r\n") {
		return &glossary.RecordError{Raw: record, Reason: "record must be a single line"}
	}
	_, err := glossary.ParseRecord(record)
	return err
}
