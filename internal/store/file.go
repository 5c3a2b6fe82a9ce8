package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/glossary/internal/glossary"
)

// topicExt is the file extension of a topic file.
const topicExt = ".txt"

// FileStore keeps one newline-separated text file per topic in a directory.
// The file for topic "Chemistry" is "<dir>/chemistry.txt".
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir. The directory is created
// on first append.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the directory holding the topic files.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file that backs topic.
func (s *FileStore) Path(topic string) (string, error) {
	name, err := glossary.NormalizeTopic(topic)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name+topicExt), nil
}

func (s *FileStore) Read(_ context.Context, topic string) ([]string, error) {
	path, err := s.Path(topic)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTopicNotFound, topic)
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrUnavailable, path, err)
	}
	return splitLines(string(data)), nil
}

// Append writes "\n" followed by the record, so a new file starts with a
// blank line.
func (s *FileStore) Append(_ context.Context, topic, record string) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	path, err := s.Path(topic)
	if err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrUnavailable, s.dir, err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrUnavailable, path, err)
	}
	if _, err := f.WriteString("\n" + record); err != nil {
		f.Close()
		return fmt.Errorf("%w: write %s: %w", ErrUnavailable, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrUnavailable, path, err)
	}
	return nil
}

func (s *FileStore) Topics(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: list %s: %w", ErrUnavailable, s.dir, err)
	}

	var topics []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), topicExt) {
			continue
		}
		topics = append(topics, strings.TrimSuffix(e.Name(), topicExt))
	}
	return topics, nil
}

// splitLines splits on "\n", drops a trailing "\r" from each line, and
// does not produce an empty final line for content ending in a newline.
func splitLines(content string) []string {
	if content == "" {
		return []string{}
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
