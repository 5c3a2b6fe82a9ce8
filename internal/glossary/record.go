package glossary

import (
	"errors"
	"fmt"
	"strings"
)

// Separator is the token that splits a stored record into keyword and meaning.
const Separator = "-$-"

// Delimiter is the separator as it is written between the two fields.
const Delimiter = " " + Separator + " "

// ErrMalformedRecord is returned when a stored line is not a valid
// "keyword -$- meaning" record.
var ErrMalformedRecord = errors.New("malformed record")

// RecordError describes why a record failed to parse.
type RecordError struct {
	Raw    string // The offending record text
	Reason string // Human-readable description of the failure
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("malformed record %q: %s", e.Raw, e.Reason)
}

// Unwrap lets callers match with errors.Is(err, ErrMalformedRecord).
func (e *RecordError) Unwrap() error {
	return ErrMalformedRecord
}

// Term is a parsed glossary entry.
type Term struct {
	Keyword string
	Meaning string
}

// String formats the term in its on-disk record form.
func (t Term) String() string {
	return t.Keyword + Delimiter + t.Meaning
}

// ParseRecord splits a raw record into its keyword and meaning.
// Both fields are trimmed and must be non-empty, and the separator
// must occur exactly once.
func ParseRecord(raw string) (Term, error) {
	switch n := strings.Count(raw, Separator); n {
	case 0:
		return Term{}, &RecordError{Raw: raw, Reason: "missing " + Separator + " separator"}
	case 1:
	default:
		return Term{}, &RecordError{Raw: raw, Reason: fmt.Sprintf("separator appears %d times", n)}
	}

	keyword, meaning, _ := strings.Cut(raw, Separator)
	keyword = strings.TrimSpace(keyword)
	meaning = strings.TrimSpace(meaning)

	if keyword == "" {
		return Term{}, &RecordError{Raw: raw, Reason: "empty keyword"}
	}
	if meaning == "" {
		return Term{}, &RecordError{Raw: raw, Reason: "empty meaning"}
	}
	return Term{Keyword: keyword, Meaning: meaning}, nil
}

// NewTerm validates user-entered fields so that the formatted record
// parses back to the same keyword and meaning.
func NewTerm(keyword, meaning string) (Term, error) {
	t := Term{Keyword: strings.TrimSpace(keyword), Meaning: strings.TrimSpace(meaning)}
	raw := t.String()
	if strings.ContainsAny(raw, "\r\n") {
		return Term{}, &RecordError{Raw: raw, Reason: "record must be a single line"}
	}
	if _, err := ParseRecord(raw); err != nil {
		return Term{}, err
	}
	return t, nil
}
