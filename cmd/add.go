package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/glossary/internal/glossary"
	"github.com/abhisek/glossary/internal/store"
)

const (
	termNamePrompt    = "What is the name of the new glossary term:"
	termMeaningPrompt = "What is the meaning of this term:"
)

var addCmd = &cobra.Command{
	Use:   "add [topic]",
	Short: "Add a term to a topic",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var topic string
		if len(args) > 0 {
			topic = args[0]
		}
		topic, err := resolveTopic(ctx, env.ui, topic, topicPrompt)
		if err != nil {
			return err
		}
		return addTerm(ctx, env.ui, env.terms, topic)
	},
}

// addTerm asks for a name and a meaning and appends the record to topic.
// Nothing is written unless both form a valid record.
func addTerm(ctx context.Context, ui prompter, terms store.TermStore, topic string) error {
	name, err := ui.Ask(ctx, termNamePrompt)
	if err != nil {
		return fmt.Errorf("read term name: %w", err)
	}
	meaning, err := ui.Ask(ctx, termMeaningPrompt)
	if err != nil {
		return fmt.Errorf("read term meaning: %w", err)
	}

	t, err := glossary.NewTerm(name, meaning)
	if err != nil {
		return err
	}
	if err := terms.Append(ctx, topic, t.String()); err != nil {
		return fmt.Errorf("add term to %q: %w", topic, err)
	}
	return nil
}
