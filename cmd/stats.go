package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/abhisek/glossary/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats [topic]",
	Short: "Show practice history per topic",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := env.database()
		if err != nil {
			return err
		}
		var topic string
		if len(args) > 0 {
			topic = strings.ToLower(strings.TrimSpace(args[0]))
		}

		stats, err := db.History().TopicStats(cmd.Context(), topic)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		printStats(cmd.OutOrStdout(), stats)
		return nil
	},
}

// topicColumnWidth is the display width of the topic column.
const topicColumnWidth = 20

func printStats(w io.Writer, stats []store.TopicStats) {
	if len(stats) == 0 {
		fmt.Fprintln(w, "No practice sessions recorded.")
		return
	}

	fmt.Fprintf(w, "%s  %-8s  %-8s  %-8s  %s\n", padCell("Topic", topicColumnWidth), "Sessions", "Answers", "Correct", "Accuracy")
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for _, s := range stats {
		fmt.Fprintf(w, "%s  %-8d  %-8d  %-8d  %5.1f%%\n",
			padCell(s.Topic, topicColumnWidth), s.Sessions, s.Answers, s.Correct, s.Accuracy()*100)
	}
}

// padCell truncates s to width terminal cells and pads it with spaces.
// Wide and multi-byte characters are never split.
func padCell(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	return s + strings.Repeat(" ", max(width-ansi.StringWidth(s), 0))
}
