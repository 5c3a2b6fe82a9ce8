package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/glossary/internal/config"
	"github.com/abhisek/glossary/internal/ui/components"
)

const (
	actionAdd      = components.ActivityAdd
	actionPractice = components.ActivityPractice
	actionQuit     = components.ActivityQuit
)

var errUnknownAction = errors.New("unknown activity")

var rootCmd = &cobra.Command{
	Use:   "glossary [action] [topic]",
	Short: "Terminal glossary trainer",
	Long: `Glossary keeps per-topic lists of terms and their meanings and quizzes you on them.

  glossary add chemistry        add a term to the chemistry topic
  glossary practice chemistry   answer multiple-choice questions

Run without arguments to pick an activity interactively.`,
	Args:              cobra.MaximumNArgs(2),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupEnv,
	RunE:              runRoot,
}

// Execute runs the root command and prints any error the way the
// interactive app reports failures.
func Execute() error {
	defer closeEnv()
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Application error:", err)
	}
	return err
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e := env

	var action, topic string
	if len(args) > 0 {
		action = strings.ToLower(strings.TrimSpace(args[0]))
	}
	if len(args) > 1 {
		topic = args[1]
	}

	prompt := topicPrompt
	if action == "" {
		picked, err := chooseActivity(ctx, e.ui, e.picker)
		if err != nil {
			return err
		}
		if picked == actionQuit {
			e.ui.Notify("Quitting Program.")
			return nil
		}
		action = picked
		prompt = activityTopicPrompt(action)
	}

	switch action {
	case actionAdd, actionPractice:
	default:
		e.ui.Notify(fmt.Sprintf("Improper arguments received. You entered %s.", action))
		e.ui.Notify("The activity option must be 'add' or 'practice'")
		return fmt.Errorf("%w: %q", errUnknownAction, action)
	}

	topic, err := resolveTopic(ctx, e.ui, topic, prompt)
	if err != nil {
		return err
	}

	if action == actionAdd {
		return addTerm(ctx, e.ui, e.terms, topic)
	}
	return practice(ctx, e, topic)
}
