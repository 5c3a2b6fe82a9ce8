package glossary

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTopic is returned for topic names that cannot name a corpus.
var ErrInvalidTopic = errors.New("invalid topic")

// NormalizeTopic trims and lowercases a topic name. Topics map to file
// names, so path separators and dot-only names are rejected.
func NormalizeTopic(topic string) (string, error) {
	t := strings.ToLower(strings.TrimSpace(topic))
	if t == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidTopic)
	}
	if strings.ContainsAny(t, `/\`) || strings.Trim(t, ".") == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidTopic, topic)
	}
	return t, nil
}
