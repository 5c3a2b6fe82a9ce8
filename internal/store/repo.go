package store

import (
	"context"
	"time"
)

// SessionEventData captures the outcome of one practice session.
type SessionEventData struct {
	SessionID string
	Topic     string
	StartedAt time.Time
	EndedAt   time.Time
	Questions int
	Correct   int
	EndPhase  string // Terminal session phase, e.g. "done" or "exhausted"
}

// AnswerEventData captures a single graded answer.
type AnswerEventData struct {
	SessionID     string
	Topic         string
	Keyword       string
	CorrectLetter string
	Answer        string
	Correct       bool
	AnsweredAt    time.Time
}

// TopicStats aggregates practice history for one topic.
type TopicStats struct {
	Topic    string
	Sessions int
	Answers  int
	Correct  int
}

// Accuracy returns the fraction of correct answers, or 0 with no answers.
func (t TopicStats) Accuracy() float64 {
	if t.Answers == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Answers)
}

// HistoryRepo provides append and aggregate access to practice history.
type HistoryRepo interface {
	// AppendSession records a finished practice session.
	AppendSession(ctx context.Context, data SessionEventData) error

	// AppendAnswer records a graded answer.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// TopicStats aggregates history per topic, ordered by topic name.
	// An empty topic returns every topic.
	TopicStats(ctx context.Context, topic string) ([]TopicStats, error)
}
