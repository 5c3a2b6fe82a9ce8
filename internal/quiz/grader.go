package quiz

import "strings"

// Grade reports whether input names the question's correct letter.
// Whitespace is trimmed and case is ignored; there is no partial credit.
func Grade(input string, q *Question) bool {
	return strings.ToLower(strings.TrimSpace(input)) == strings.ToLower(strings.TrimSpace(q.CorrectLetter))
}
