//go:build cucumber

package quiz

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"
)

// TestPracticeFeatures executes the practice feature scenarios via godog.
func TestPracticeFeatures(t *testing.T) {
	featurePath := filepath.Join("..", "..", "features", "practice.feature")
	suite := godog.TestSuite{
		Name:                "practice",
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeScenario wires step definitions for the practice feature.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &practiceState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*state = practiceState{}
		return ctx, nil
	})

	ctx.Step(`^a topic with the records:$`, state.givenRecords)
	ctx.Step(`^I generate a question with seed (\d+)$`, state.generateWithSeed)
	ctx.Step(`^I generate (\d+) questions with fresh sessions$`, state.generateFresh)
	ctx.Step(`^I keep generating questions in one session with seed (\d+)$`, state.generateUntilDone)
	ctx.Step(`^the sampled indices are distinct$`, state.indicesDistinct)
	ctx.Step(`^no sampled index is 0$`, state.noZeroIndex)
	ctx.Step(`^no sampled index is 0 in any of them$`, state.noZeroIndexInAny)
	ctx.Step(`^the options carry the meanings of the sampled records in order$`, state.optionsInOrder)
	ctx.Step(`^the prompt names one of "([^"]+)"$`, state.promptNamesOneOf)
	ctx.Step(`^answering with the correct letter in lowercase is correct$`, state.lowercaseCorrect)
	ctx.Step(`^answering with a different letter is wrong$`, state.otherLetterWrong)
	ctx.Step(`^the session stops after (\d+) questions with "([^"]+)"$`, state.sessionStops)
	ctx.Step(`^generation fails with "([^"]+)"$`, state.generationFails)
}

// practiceState holds scenario state for the practice feature.
type practiceState struct {
	corpus     []string
	selections []Selection
	questions  []*Question
	err        error
}

func (s *practiceState) givenRecords(table *godog.Table) error {
	s.corpus = nil
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		s.corpus = append(s.corpus, row.Cells[0].Value)
	}
	return nil
}

func (s *practiceState) generate(sampler *Sampler, rng Rand) error {
	sel, err := sampler.Sample(len(s.corpus))
	if err != nil {
		return err
	}
	q, err := BuildFromCorpus(s.corpus, sel, rng)
	if err != nil {
		return err
	}
	s.selections = append(s.selections, sel)
	s.questions = append(s.questions, q)
	return nil
}

func (s *practiceState) generateWithSeed(seed int) error {
	rng := seeded(uint64(seed))
	s.err = s.generate(NewSampler(rng), rng)
	return nil
}

func (s *practiceState) generateFresh(n int) error {
	for i := 0; i < n; i++ {
		rng := seeded(uint64(i))
		if err := s.generate(NewSampler(rng), rng); err != nil {
			return err
		}
	}
	return nil
}

func (s *practiceState) generateUntilDone(seed int) error {
	rng := seeded(uint64(seed))
	sampler := NewSampler(rng)
	for i := 0; i <= len(s.corpus); i++ {
		if err := s.generate(sampler, rng); err != nil {
			s.err = err
			return nil
		}
	}
	return fmt.Errorf("session never ran out of terms")
}

func (s *practiceState) last() (Selection, *Question, error) {
	if s.err != nil {
		return Selection{}, nil, s.err
	}
	if len(s.questions) == 0 {
		return Selection{}, nil, errors.New("no question generated")
	}
	n := len(s.questions) - 1
	return s.selections[n], s.questions[n], nil
}

func (s *practiceState) indicesDistinct() error {
	sel, _, err := s.last()
	if err != nil {
		return err
	}
	seen := make(map[int]bool)
	for _, idx := range sel.Indices() {
		if seen[idx] {
			return fmt.Errorf("index %d sampled twice in %v", idx, sel.Indices())
		}
		seen[idx] = true
	}
	return nil
}

func (s *practiceState) noZeroIndex() error {
	sel, _, err := s.last()
	if err != nil {
		return err
	}
	for _, idx := range sel.Indices() {
		if idx == 0 {
			return fmt.Errorf("index 0 sampled in %v", sel.Indices())
		}
	}
	return nil
}

func (s *practiceState) noZeroIndexInAny() error {
	for _, sel := range s.selections {
		for _, idx := range sel.Indices() {
			if idx == 0 {
				return fmt.Errorf("index 0 sampled in %v", sel.Indices())
			}
		}
	}
	return nil
}

func (s *practiceState) optionsInOrder() error {
	sel, q, err := s.last()
	if err != nil {
		return err
	}
	for i, idx := range sel.Indices() {
		_, meaning, _ := strings.Cut(s.corpus[idx], "-$-")
		if q.Options[i].Meaning != strings.TrimSpace(meaning) {
			return fmt.Errorf("option %s = %q, want meaning of record %d", q.Options[i].Letter, q.Options[i].Meaning, idx)
		}
	}
	return nil
}

func (s *practiceState) promptNamesOneOf(list string) error {
	_, q, err := s.last()
	if err != nil {
		return err
	}
	for _, kw := range strings.Split(list, ",") {
		if q.Prompt == fmt.Sprintf("What does %s refer to?", strings.TrimSpace(kw)) {
			return nil
		}
	}
	return fmt.Errorf("prompt %q names none of %s", q.Prompt, list)
}

func (s *practiceState) lowercaseCorrect() error {
	_, q, err := s.last()
	if err != nil {
		return err
	}
	if !Grade(strings.ToLower(q.CorrectLetter), q) {
		return fmt.Errorf("lowercase %q graded wrong", q.CorrectLetter)
	}
	return nil
}

func (s *practiceState) otherLetterWrong() error {
	_, q, err := s.last()
	if err != nil {
		return err
	}
	for _, l := range Letters {
		if l != q.CorrectLetter && Grade(l, q) {
			return fmt.Errorf("letter %s graded correct, want only %s", l, q.CorrectLetter)
		}
	}
	return nil
}

func (s *practiceState) sessionStops(n int, msg string) error {
	if len(s.questions) != n {
		return fmt.Errorf("generated %d questions, want %d", len(s.questions), n)
	}
	if s.err == nil || !strings.Contains(s.err.Error(), msg) {
		return fmt.Errorf("error = %v, want %q", s.err, msg)
	}
	return nil
}

func (s *practiceState) generationFails(msg string) error {
	if s.err == nil {
		return fmt.Errorf("expected generation to fail with %q", msg)
	}
	if !strings.Contains(s.err.Error(), msg) {
		return fmt.Errorf("error = %v, want %q", s.err, msg)
	}
	return nil
}
