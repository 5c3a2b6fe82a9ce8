package quiz

// OptionCount is the number of answer options in every question.
const OptionCount = 4

// correctSlots is the number of leading positions eligible to hold the
// graded answer. The last option is never designated correct.
const correctSlots = 3

// Letters labels option positions 0..3.
var Letters = [OptionCount]string{"A", "B", "C", "D"}

// Rand is the random source used for every draw. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a uniform value in [0, n). n must be positive.
	IntN(n int) int
}

// Option is a single answer choice shown to the learner.
type Option struct {
	Letter  string
	Meaning string
}

// Question is a multiple-choice question built from four records.
type Question struct {
	// Prompt is the text shown to the learner, e.g. "What does Ion refer to?".
	Prompt string

	// Keyword is the trimmed keyword the prompt asks about.
	Keyword string

	// Options holds exactly four options labelled A-D in record order.
	Options []Option

	// CorrectLetter is the letter graded as correct.
	CorrectLetter string
}

// CorrectOption returns the option whose letter is CorrectLetter.
func (q *Question) CorrectOption() (Option, bool) {
	for _, o := range q.Options {
		if o.Letter == q.CorrectLetter {
			return o, true
		}
	}
	return Option{}, false
}

// Selection is the set of corpus indices sampled for one question.
type Selection struct {
	Correct int
	Decoys  [3]int
}

// Indices returns the sampled indices in question order: correct first,
// then the decoys in the order they were drawn.
func (s Selection) Indices() []int {
	return []int{s.Correct, s.Decoys[0], s.Decoys[1], s.Decoys[2]}
}
