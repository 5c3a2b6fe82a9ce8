package quiz

import "testing"

func TestGrade(t *testing.T) {
	q := &Question{CorrectLetter: "B"}

	tests := []struct {
		input string
		want  bool
	}{
		{"b", true},
		{"B", true},
		{"B ", true},
		{"  b\n", true},
		{"c", false},
		{"", false},
		{"bb", false},
		{"B) two or more atoms", false},
	}

	for _, tt := range tests {
		if got := Grade(tt.input, q); got != tt.want {
			t.Errorf("Grade(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestGradeNormalizesCorrectLetter(t *testing.T) {
	q := &Question{CorrectLetter: " c "}
	if !Grade("C", q) {
		t.Error("expected C to match a padded lowercase correct letter")
	}
}
