package quiz

import (
	"errors"
	"fmt"
)

// MinCorpusSize is the smallest corpus that can start a practice session.
const MinCorpusSize = 4

// firstEligible is the lowest index ever drawn. Line 0 of a topic is the
// blank line written when the topic was created.
const firstEligible = 1

var (
	// ErrInsufficientCorpus is returned when a corpus has too few records
	// to supply a distinct correct answer and three decoys.
	ErrInsufficientCorpus = errors.New("insufficient corpus")

	// ErrCorpusExhausted is returned when every eligible record has
	// already been asked as the correct answer in this session.
	ErrCorpusExhausted = errors.New("every term has been asked this session")
)

// Sampler draws distinct corpus indices for questions. It remembers
// which indices were asked as the correct answer, so a Sampler must live
// for exactly one practice session.
//
// Draws use rejection sampling over [1, corpusSize). Before each loop the
// sampler counts the eligible indices left, so a loop only starts when
// at least one acceptable draw exists.
type Sampler struct {
	rng  Rand
	used map[int]struct{}
}

// NewSampler returns a Sampler with an empty used set.
func NewSampler(rng Rand) *Sampler {
	return &Sampler{rng: rng, used: make(map[int]struct{})}
}

// Used reports how many indices have been asked as correct answers.
func (s *Sampler) Used() int {
	return len(s.used)
}

// WasUsed reports whether idx has been asked as a correct answer.
func (s *Sampler) WasUsed(idx int) bool {
	_, ok := s.used[idx]
	return ok
}

// PickCorrect draws an index not yet used as a correct answer and marks
// it used.
func (s *Sampler) PickCorrect(corpusSize int) (int, error) {
	if corpusSize < MinCorpusSize {
		return 0, fmt.Errorf("%w: %d records, need at least %d", ErrInsufficientCorpus, corpusSize, MinCorpusSize)
	}
	if remaining(corpusSize, s.used) == 0 {
		return 0, ErrCorpusExhausted
	}

	idx := s.draw(corpusSize, s.used)
	s.used[idx] = struct{}{}
	return idx, nil
}

// PickDecoy draws an index that is not in exclude.
func (s *Sampler) PickDecoy(corpusSize int, exclude map[int]struct{}) (int, error) {
	if corpusSize <= firstEligible {
		return 0, fmt.Errorf("%w: %d records", ErrInsufficientCorpus, corpusSize)
	}
	if remaining(corpusSize, exclude) == 0 {
		return 0, fmt.Errorf("%w: no decoy left among %d records", ErrInsufficientCorpus, corpusSize)
	}
	return s.draw(corpusSize, exclude), nil
}

// Sample picks one correct index and three decoys, all pairwise distinct.
func (s *Sampler) Sample(corpusSize int) (Selection, error) {
	if eligible := corpusSize - firstEligible; eligible < OptionCount {
		return Selection{}, fmt.Errorf("%w: %d eligible records, need %d", ErrInsufficientCorpus, max(eligible, 0), OptionCount)
	}

	var sel Selection
	correct, err := s.PickCorrect(corpusSize)
	if err != nil {
		return Selection{}, err
	}
	sel.Correct = correct

	exclude := map[int]struct{}{correct: {}}
	for i := range sel.Decoys {
		d, err := s.PickDecoy(corpusSize, exclude)
		if err != nil {
			return Selection{}, fmt.Errorf("decoy %d: %w", i+1, err)
		}
		sel.Decoys[i] = d
		exclude[d] = struct{}{}
	}
	return sel, nil
}

// draw returns the first uniform draw from [1, corpusSize) not in exclude.
// Callers must ensure remaining(corpusSize, exclude) > 0.
func (s *Sampler) draw(corpusSize int, exclude map[int]struct{}) int {
	for {
		idx := firstEligible + s.rng.IntN(corpusSize-firstEligible)
		if _, taken := exclude[idx]; !taken {
			return idx
		}
	}
}

// remaining counts eligible indices in [1, corpusSize) absent from exclude.
func remaining(corpusSize int, exclude map[int]struct{}) int {
	n := corpusSize - firstEligible
	for idx := range exclude {
		if idx >= firstEligible && idx < corpusSize {
			n--
		}
	}
	return n
}
