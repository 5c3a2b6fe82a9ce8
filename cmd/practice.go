package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/glossary/internal/session"
)

var practiceCmd = &cobra.Command{
	Use:   "practice [topic]",
	Short: "Answer multiple-choice questions on a topic",
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
		return practice(ctx, env, topic)
	},
}

// newRand returns a PCG source seeded from seed, or randomly when seed is 0.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func practice(ctx context.Context, e *appEnv, topic string) error {
	opts := session.Options{
		Topic:  topic,
		Store:  e.terms,
		UI:     e.ui,
		Rand:   newRand(e.cfg.Seed),
		Logger: e.log,
	}
	if h := e.history(); h != nil {
		opts.Recorder = h
	}

	s, err := session.New(opts)
	if err != nil {
		return err
	}
	sum, err := s.Run(ctx)
	if sum != nil {
		e.log.Info("session finished",
			zap.String("session_id", sum.SessionID),
			zap.Int("questions", sum.Questions),
			zap.Int("correct", sum.Correct),
			zap.Stringer("phase", sum.Phase))
		if sum.Questions > 0 {
			e.ui.Notify(fmt.Sprintf("You answered %d of %d correctly in %s.",
				sum.Correct, sum.Questions, sum.Duration.Round(time.Second)))
		}
	}
	return err
}
