package session

import (
	"time"

	"github.com/abhisek/glossary/internal/quiz"
)

// Phase represents the current phase of a practice session.
type Phase int

const (
	PhaseAwaitingCorpus   Phase = iota // Loading the topic's records
	PhaseSampling                      // Drawing indices for the next question
	PhaseQuestioning                   // Showing a question and waiting for an answer
	PhaseGrading                       // Grading and asking whether to continue
	PhaseDone                          // Learner chose to stop
	PhaseInsufficientData              // Topic too small to build a question
	PhaseTopicNotFound                 // Topic has no backing data
	PhaseExhausted                     // Every term has been asked
)

var phaseNames = map[Phase]string{
	PhaseAwaitingCorpus:   "awaiting_corpus",
	PhaseSampling:         "sampling",
	PhaseQuestioning:      "questioning",
	PhaseGrading:          "grading",
	PhaseDone:             "done",
	PhaseInsufficientData: "insufficient_data",
	PhaseTopicNotFound:    "topic_not_found",
	PhaseExhausted:        "exhausted",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transition leaves p.
func (p Phase) Terminal() bool {
	return p >= PhaseDone
}

// State tracks the runtime state of one practice session.
type State struct {
	// ID is the UUID for this session.
	ID string

	// Topic is the normalized topic being practiced.
	Topic string

	// Phase is the current session phase.
	Phase Phase

	// Corpus holds the topic's lines, read once when the session starts.
	Corpus []string

	// Sampler owns the set of indices already asked as correct answers.
	Sampler *quiz.Sampler

	// Selection is the index set behind CurrentQuestion.
	Selection quiz.Selection

	// CurrentQuestion is the question being asked (nil between rounds).
	CurrentQuestion *quiz.Question

	// TotalQuestions is the count of questions answered so far.
	TotalQuestions int

	// TotalCorrect is the count of correct answers so far.
	TotalCorrect int

	// StartTime is when the session began.
	StartTime time.Time
}

// Summary reports how a session ended.
type Summary struct {
	SessionID string
	Topic     string
	Questions int
	Correct   int
	Phase     Phase
	Duration  time.Duration
}

func (s *State) summary(now time.Time) *Summary {
	return &Summary{
		SessionID: s.ID,
		Topic:     s.Topic,
		Questions: s.TotalQuestions,
		Correct:   s.TotalCorrect,
		Phase:     s.Phase,
		Duration:  now.Sub(s.StartTime),
	}
}
