package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/glossary/internal/glossary"
	"github.com/abhisek/glossary/internal/quiz"
	"github.com/abhisek/glossary/internal/store"
)

// Messages shown to the learner at session boundaries.
const (
	MsgTopicNotFound    = "A file for this topic does not exist"
	MsgInsufficientData = "There are not enough lines in this file to run a test"
	MsgExhausted        = "You have practiced every term in this topic!"
	MsgContinuePrompt   = "Try another question? (Y/N)"
	MsgNextQuestion     = "New test incoming!"
	MsgGoodbye          = "Ok, have a nice day!"
)

// UI is the presentation collaborator. The session decides what to say;
// the UI decides how it looks.
type UI interface {
	// Ask shows text (if any) and blocks for one line of input, trimmed.
	// Returns io.EOF when input is closed.
	Ask(ctx context.Context, text string) (string, error)

	// ShowQuestion renders the prompt and the four options.
	ShowQuestion(q *quiz.Question)

	// ShowResult reports the graded answer.
	ShowResult(answer string, correct bool, q *quiz.Question)

	// Notify shows an informational message.
	Notify(msg string)
}

// Recorder persists practice history. Implemented by store.HistoryRepo.
type Recorder interface {
	AppendSession(ctx context.Context, data store.SessionEventData) error
	AppendAnswer(ctx context.Context, data store.AnswerEventData) error
}

// Options configures a Session.
type Options struct {
	Topic    string
	Store    store.TermStore
	UI       UI
	Rand     quiz.Rand
	Recorder Recorder    // optional
	Logger   *zap.Logger // optional
	Now      func() time.Time
}

// Session runs one practice session: load the corpus, then ask questions
// until the learner stops or the topic runs out of terms.
type Session struct {
	opts  Options
	log   *zap.Logger
	state *State
}

// New validates opts and prepares a session in PhaseAwaitingCorpus.
func New(opts Options) (*Session, error) {
	topic, err := glossary.NormalizeTopic(opts.Topic)
	if err != nil {
		return nil, err
	}
	if opts.Store == nil {
		return nil, errors.New("session: nil term store")
	}
	if opts.UI == nil {
		return nil, errors.New("session: nil UI")
	}
	if opts.Rand == nil {
		return nil, errors.New("session: nil random source")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	id := uuid.NewString()
	return &Session{
		opts: opts,
		log:  log.With(zap.String("session_id", id), zap.String("topic", topic)),
		state: &State{
			ID:      id,
			Topic:   topic,
			Phase:   PhaseAwaitingCorpus,
			Sampler: quiz.NewSampler(opts.Rand),
		},
	}, nil
}

// State exposes the session state for inspection.
func (s *Session) State() *State {
	return s.state
}

// Run drives the session to a terminal phase. Conditions the learner can
// act on (missing topic, too few terms, every term asked) end the session
// with a message and a nil error. Malformed records, store failures and
// context cancellation are returned.
func (s *Session) Run(ctx context.Context) (*Summary, error) {
	st := s.state
	st.StartTime = s.opts.Now()

	if err := s.loadCorpus(ctx); err != nil {
		return st.summary(s.opts.Now()), err
	}

	for !st.Phase.Terminal() {
		if err := ctx.Err(); err != nil {
			return s.finish(ctx), err
		}
		if err := s.round(ctx); err != nil {
			return s.finish(ctx), err
		}
	}
	return s.finish(ctx), nil
}

func (s *Session) loadCorpus(ctx context.Context) error {
	st := s.state
	lines, err := s.opts.Store.Read(ctx, st.Topic)
	switch {
	case errors.Is(err, store.ErrTopicNotFound):
		st.Phase = PhaseTopicNotFound
		s.opts.UI.Notify(MsgTopicNotFound)
		return nil
	case err != nil:
		return fmt.Errorf("load topic %q: %w", st.Topic, err)
	}

	st.Corpus = lines
	s.log.Debug("corpus loaded", zap.Int("lines", len(lines)))

	if len(lines) < quiz.MinCorpusSize {
		st.Phase = PhaseInsufficientData
		s.opts.UI.Notify(MsgInsufficientData)
		return nil
	}
	st.Phase = PhaseSampling
	return nil
}

// round runs Sampling → Questioning → Grading once.
func (s *Session) round(ctx context.Context) error {
	st := s.state

	st.Phase = PhaseSampling
	sel, err := st.Sampler.Sample(len(st.Corpus))
	switch {
	case errors.Is(err, quiz.ErrCorpusExhausted):
		st.Phase = PhaseExhausted
		s.opts.UI.Notify(MsgExhausted)
		return nil
	case errors.Is(err, quiz.ErrInsufficientCorpus):
		st.Phase = PhaseInsufficientData
		s.opts.UI.Notify(MsgInsufficientData)
		return nil
	case err != nil:
		return fmt.Errorf("sample question: %w", err)
	}
	st.Selection = sel

	st.Phase = PhaseQuestioning
	q, err := quiz.BuildFromCorpus(st.Corpus, sel, s.opts.Rand)
	if err != nil {
		return fmt.Errorf("build question: %w", err)
	}
	st.CurrentQuestion = q
	s.log.Debug("question built", zap.Ints("indices", sel.Indices()), zap.String("correct", q.CorrectLetter))

	s.opts.UI.ShowQuestion(q)
	answer, err := s.opts.UI.Ask(ctx, "")
	if err != nil {
		return s.stopOnEOF(err)
	}

	st.Phase = PhaseGrading
	correct := quiz.Grade(answer, q)
	st.TotalQuestions++
	if correct {
		st.TotalCorrect++
	}
	s.opts.UI.ShowResult(answer, correct, q)
	s.recordAnswer(ctx, q, answer, correct)
	st.CurrentQuestion = nil

	again, err := s.opts.UI.Ask(ctx, MsgContinuePrompt)
	if err != nil {
		return s.stopOnEOF(err)
	}
	if strings.EqualFold(strings.TrimSpace(again), "y") {
		s.opts.UI.Notify(MsgNextQuestion)
		st.Phase = PhaseSampling
		return nil
	}
	s.opts.UI.Notify(MsgGoodbye)
	st.Phase = PhaseDone
	return nil
}

// stopOnEOF ends the session quietly when input is closed.
func (s *Session) stopOnEOF(err error) error {
	if errors.Is(err, io.EOF) {
		s.state.Phase = PhaseDone
		return nil
	}
	return fmt.Errorf("read answer: %w", err)
}

func (s *Session) recordAnswer(ctx context.Context, q *quiz.Question, answer string, correct bool) {
	if s.opts.Recorder == nil {
		return
	}
	err := s.opts.Recorder.AppendAnswer(ctx, store.AnswerEventData{
		SessionID:     s.state.ID,
		Topic:         s.state.Topic,
		Keyword:       q.Keyword,
		CorrectLetter: q.CorrectLetter,
		Answer:        answer,
		Correct:       correct,
		AnsweredAt:    s.opts.Now(),
	})
	if err != nil {
		s.log.Warn("failed to record answer", zap.Error(err))
	}
}

// finish records the session outcome, if anything was asked, and builds
// the summary.
func (s *Session) finish(ctx context.Context) *Summary {
	now := s.opts.Now()
	sum := s.state.summary(now)
	if s.opts.Recorder == nil || sum.Questions == 0 {
		return sum
	}

	// Record even when ctx was cancelled mid-session.
	err := s.opts.Recorder.AppendSession(context.WithoutCancel(ctx), store.SessionEventData{
		SessionID: sum.SessionID,
		Topic:     sum.Topic,
		StartedAt: s.state.StartTime,
		EndedAt:   now,
		Questions: sum.Questions,
		Correct:   sum.Correct,
		EndPhase:  sum.Phase.String(),
	})
	if err != nil {
		s.log.Warn("failed to record session", zap.Error(err))
	}
	return sum
}
