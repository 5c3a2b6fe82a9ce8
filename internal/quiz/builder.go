package quiz

import (
	"errors"
	"fmt"

	"github.com/abhisek/glossary/internal/glossary"
)

// ErrWrongRecordCount is returned when Build receives other than four records.
var ErrWrongRecordCount = errors.New("question needs exactly four records")

// Build turns four raw records (correct, decoy1, decoy2, decoy3) into a
// question. Options keep the record order; rng picks which of the first
// three positions is graded correct, and that record's keyword goes into
// the prompt.
//
// All records are parsed before anything is drawn, so a malformed record
// fails with glossary.ErrMalformedRecord and never yields a partial question.
func Build(records []string, rng Rand) (*Question, error) {
	if len(records) != OptionCount {
		return nil, fmt.Errorf("%w: got %d", ErrWrongRecordCount, len(records))
	}

	terms := make([]glossary.Term, len(records))
	for i, raw := range records {
		t, err := glossary.ParseRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("option %s: %w", Letters[i], err)
		}
		terms[i] = t
	}

	correctPos := rng.IntN(correctSlots)

	q := &Question{
		Options:       make([]Option, len(terms)),
		CorrectLetter: Letters[correctPos],
		Keyword:       terms[correctPos].Keyword,
	}
	for i, t := range terms {
		q.Options[i] = Option{Letter: Letters[i], Meaning: t.Meaning}
	}
	q.Prompt = fmt.Sprintf("What does %s refer to?", q.Keyword)

	return q, nil
}

// BuildFromCorpus builds a question from the corpus lines at sel's indices.
func BuildFromCorpus(corpus []string, sel Selection, rng Rand) (*Question, error) {
	idx := sel.Indices()
	records := make([]string, len(idx))
	for i, n := range idx {
		if n < 0 || n >= len(corpus) {
			return nil, fmt.Errorf("%w: index %d outside corpus of %d", ErrInsufficientCorpus, n, len(corpus))
		}
		records[i] = corpus[n]
	}
	return Build(records, rng)
}
