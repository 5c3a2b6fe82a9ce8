package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/glossary/internal/quiz"
	"github.com/abhisek/glossary/internal/ui/theme"
)

// Console is a line-based terminal UI. Styled output is downsampled to
// what the writer supports, so piped output is plain text.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Console reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Ask prints text (if any) and returns the next input line, trimmed.
// The read itself blocks until a line arrives or input closes.
func (c *Console) Ask(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if text != "" {
		lipgloss.Fprintln(c.out, theme.Body.Render(text))
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Welcome prints the banner.
func (c *Console) Welcome() {
	lipgloss.Fprintln(c.out, theme.Title.Render("Welcome to the Glossary CLI APP!"))
}

// ShowQuestion prints the prompt followed by one " X - meaning" line per option.
func (c *Console) ShowQuestion(q *quiz.Question) {
	lipgloss.Fprintln(c.out, theme.Question.Render(q.Prompt))
	for _, o := range q.Options {
		lipgloss.Fprintln(c.out, " "+theme.OptionLetter.Render(o.Letter)+" - "+theme.Body.Render(o.Meaning))
	}
}

// ShowResult echoes the answer and whether it was right.
func (c *Console) ShowResult(answer string, correct bool, q *quiz.Question) {
	lipgloss.Fprintln(c.out, theme.Hint.Render("Your choice was: "+strings.ToLower(strings.TrimSpace(answer))))
	if correct {
		lipgloss.Fprintln(c.out, theme.Correct.Render("You are correct!"))
		return
	}
	lipgloss.Fprintln(c.out, theme.Incorrect.Render("You are wrong!"))
	if opt, ok := q.CorrectOption(); ok {
		lipgloss.Fprintln(c.out, theme.Hint.Render(fmt.Sprintf("The answer was %s - %s", opt.Letter, opt.Meaning)))
	}
}

// Notify prints an informational message.
func (c *Console) Notify(msg string) {
	lipgloss.Fprintln(c.out, theme.Body.Render(msg))
}
