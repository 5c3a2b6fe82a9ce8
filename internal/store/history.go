package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
)

type historyRepo struct {
	db *sql.DB
}

func (r *historyRepo) AppendSession(ctx context.Context, data SessionEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO practice_sessions
			(session_id, topic, started_at, ended_at, questions, correct, end_phase)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		data.SessionID,
		data.Topic,
		data.StartedAt.UnixMilli(),
		data.EndedAt.UnixMilli(),
		data.Questions,
		data.Correct,
		data.EndPhase,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *historyRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	correct := 0
	if data.Correct {
		correct = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO answer_events
			(session_id, topic, keyword, correct_letter, answer, correct, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		data.SessionID,
		data.Topic,
		data.Keyword,
		data.CorrectLetter,
		data.Answer,
		correct,
		data.AnsweredAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *historyRepo) TopicStats(ctx context.Context, topic string) ([]TopicStats, error) {
	byTopic := make(map[string]*TopicStats)
	get := func(name string) *TopicStats {
		ts, ok := byTopic[name]
		if !ok {
			ts = &TopicStats{Topic: name}
			byTopic[name] = ts
		}
		return ts
	}

	sessions := `SELECT topic, COUNT(*) FROM practice_sessions`
	answers := `SELECT topic, COUNT(*), COALESCE(SUM(correct), 0) FROM answer_events`
	var args []any
	if topic != "" {
		sessions += ` WHERE topic = ?`
		answers += ` WHERE topic = ?`
		args = append(args, topic)
	}
	sessions += ` GROUP BY topic`
	answers += ` GROUP BY topic`

	rows, err := r.db.QueryContext(ctx, sessions, args...)
	if err != nil {
		return nil, fmt.Errorf("query session stats: %w", err)
	}
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan session stats: %w", err)
		}
		get(name).Sessions = n
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("read session stats: %w", err)
	}

	rows, err = r.db.QueryContext(ctx, answers, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var total, correct int
		if err := rows.Scan(&name, &total, &correct); err != nil {
			return nil, fmt.Errorf("scan answer stats: %w", err)
		}
		ts := get(name)
		ts.Answers = total
		ts.Correct = correct
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read answer stats: %w", err)
	}

	stats := make([]TopicStats, 0, len(byTopic))
	for _, ts := range byTopic {
		stats = append(stats, *ts)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Topic < stats[j].Topic })
	return stats, nil
}
