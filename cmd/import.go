package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/glossary/internal/glossary"
	"github.com/abhisek/glossary/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <topic> <file.yaml>",
	Short: "Add every term from a YAML file to a topic",
	Long: `Import reads a YAML document of the form

  terms:
    - name: Atom
      meaning: smallest unit of matter

and appends each term to the topic. The whole file is validated first.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()

		n, err := importTerms(cmd.Context(), env.terms, args[0], f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d terms into %s.\n", n, args[0])
		return nil
	},
}

// importTerms appends the terms decoded from r to topic, in file order.
func importTerms(ctx context.Context, terms store.TermStore, topic string, r io.Reader) (int, error) {
	if _, err := glossary.NormalizeTopic(topic); err != nil {
		return 0, err
	}
	loaded, err := glossary.LoadTerms(r)
	if err != nil {
		return 0, fmt.Errorf("read import file: %w", err)
	}
	for i, t := range loaded {
		if err := terms.Append(ctx, topic, t.String()); err != nil {
			return i, fmt.Errorf("import term %q: %w", t.Keyword, err)
		}
	}
	return len(loaded), nil
}
