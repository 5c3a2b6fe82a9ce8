package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/glossary/internal/store"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List known topics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lister, ok := env.terms.(store.Lister)
		if !ok {
			return errors.New("the configured term store cannot list topics")
		}
		topics, err := lister.Topics(cmd.Context())
		if err != nil {
			return fmt.Errorf("list topics: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(topics) == 0 {
			fmt.Fprintln(out, "No topics yet. Add a term with 'glossary add <topic>'.")
			return nil
		}
		for _, t := range topics {
			fmt.Fprintln(out, t)
		}
		return nil
	},
}
