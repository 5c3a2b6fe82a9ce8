package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abhisek/glossary/internal/glossary"
)

// SQLiteTermStore keeps topic lines in the terms table, keyed by topic and
// line number.
type SQLiteTermStore struct {
	db *sql.DB
}

func (s *SQLiteTermStore) Read(ctx context.Context, topic string) ([]string, error) {
	name, err := glossary.NormalizeTopic(topic)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT record FROM terms WHERE topic = ? ORDER BY line_no`, name)
	if err != nil {
		return nil, fmt.Errorf("%w: query topic %q: %w", ErrUnavailable, name, err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var rec string
		if err := rows.Scan(&rec); err != nil {
			return nil, fmt.Errorf("%w: scan topic %q: %w", ErrUnavailable, name, err)
		}
		lines = append(lines, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read topic %q: %w", ErrUnavailable, name, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTopicNotFound, topic)
	}
	return lines, nil
}

// Append inserts the record after the topic's last line. A new topic gets
// the blank line 0 first, in the same transaction.
func (s *SQLiteTermStore) Append(ctx context.Context, topic, record string) error {
	if err := validateRecord(record); err != nil {
		return err
	}
	name, err := glossary.NormalizeTopic(topic)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrUnavailable, err)
	}
	defer tx.Rollback()

	var last int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(line_no), -1) FROM terms WHERE topic = ?`, name).Scan(&last)
	if err != nil {
		return fmt.Errorf("%w: last line of %q: %w", ErrUnavailable, name, err)
	}

	if last < 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO terms (topic, line_no, record) VALUES (?, 0, '')`, name); err != nil {
			return fmt.Errorf("%w: create topic %q: %w", ErrUnavailable, name, err)
		}
		last = 0
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO terms (topic, line_no, record) VALUES (?, ?, ?)`, name, last+1, record); err != nil {
		return fmt.Errorf("%w: append to %q: %w", ErrUnavailable, name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrUnavailable, err)
	}
	return nil
}

func (s *SQLiteTermStore) Topics(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT topic FROM terms ORDER BY topic`)
	if err != nil {
		return nil, fmt.Errorf("%w: list topics: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: scan topic: %w", ErrUnavailable, err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}
