package store

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/abhisek/glossary/internal/glossary"
)

// MemoryStore is an in-process TermStore with the same line layout as
// FileStore.
type MemoryStore struct {
	topics map[string][]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{topics: make(map[string][]string)}
}

// Seed replaces a topic's lines verbatim, bypassing validation.
// Used to load corpora that already exist, malformed lines included.
func (s *MemoryStore) Seed(topic string, lines ...string) error {
	name, err := glossary.NormalizeTopic(topic)
	if err != nil {
		return err
	}
	s.topics[name] = slices.Clone(lines)
	return nil
}

func (s *MemoryStore) Read(_ context.Context, topic string) ([]string, error) {
	name, err := glossary.NormalizeTopic(topic)
	if err != nil {
		return nil, err
	}
	lines, ok := s.topics[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTopicNotFound, topic)
	}
	return slices.Clone(lines), nil
}

func (s *MemoryStore) Append(_ context.Context, topic, record string) error {
	if err := validateRecord(record); err != nil {
		return err
	}
	name, err := glossary.NormalizeTopic(topic)
	if err != nil {
		return err
	}

	lines, ok := s.topics[name]
	if !ok {
		lines = []string{""}
	}
	s.topics[name] = append(lines, record)
	return nil
}

func (s *MemoryStore) Topics(_ context.Context) ([]string, error) {
	topics := make([]string, 0, len(s.topics))
	for t := range s.topics {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics, nil
}
