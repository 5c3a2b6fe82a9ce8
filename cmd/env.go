package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/abhisek/glossary/internal/config"
	"github.com/abhisek/glossary/internal/logger"
	"github.com/abhisek/glossary/internal/store"
	"github.com/abhisek/glossary/internal/ui/components"
	"github.com/abhisek/glossary/internal/ui/console"
)

const (
	activityPrompt = "Select an activity ('add' to add new term, 'practice' to practice, or 'q' to quit)."
	activityRetry  = "You need to enter 'add' or 'practice'. Or enter 'q' to quit program."

	topicPrompt         = "Select a topic:"
	addTopicPrompt      = "Select the topic to add a new term to:"
	practiceTopicPrompt = "Select the topic for the practice:"
)

var errNoTopic = errors.New("no topic given")

// prompter is the part of the console the commands talk to.
type prompter interface {
	Ask(ctx context.Context, text string) (string, error)
	Notify(msg string)
}

// appEnv holds what every command needs once flags are parsed.
type appEnv struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *store.Store // opened on first use, see database
	terms store.TermStore
	ui    *console.Console

	// picker runs the interactive activity menu. Nil when stdin is not a
	// terminal, in which case the typed prompt is used.
	picker func() (string, error)
}

var env *appEnv

func setupEnv(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	e := &appEnv{
		cfg: cfg,
		log: log,
		ui:  console.New(in, out),
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		e.picker = func() (string, error) {
			return components.RunActivityPicker(in, out)
		}
	}
	env = e

	e.terms, err = e.termStore()
	if err != nil {
		return err
	}
	log.Debug("environment ready",
		zap.String("backend", cfg.Backend),
		zap.String("topics_dir", cfg.TopicsDir),
		zap.String("db", cfg.DBPath),
		zap.Bool("history", cfg.History))

	e.ui.Welcome()
	return nil
}

func closeEnv() {
	if env == nil {
		return
	}
	if env.db != nil {
		if err := env.db.Close(); err != nil {
			env.log.Warn("close store", zap.Error(err))
		}
	}
	_ = env.log.Sync()
	env = nil
}

// database opens the SQLite store on first use.
func (e *appEnv) database() (*store.Store, error) {
	if e.db != nil {
		return e.db, nil
	}
	if err := store.EnsureDir(e.cfg.DBPath); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := store.Open(e.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.db = db
	return db, nil
}

// termStore selects the configured term backend.
func (e *appEnv) termStore() (store.TermStore, error) {
	switch e.cfg.Backend {
	case config.BackendSQLite:
		db, err := e.database()
		if err != nil {
			return nil, err
		}
		return db.Terms(), nil
	default:
		return store.NewFileStore(e.cfg.TopicsDir), nil
	}
}

// history returns the practice recorder, or nil when history is off or
// the database cannot be opened. Practice goes on without it.
func (e *appEnv) history() store.HistoryRepo {
	if !e.cfg.History {
		return nil
	}
	db, err := e.database()
	if err != nil {
		e.log.Warn("practice history disabled", zap.Error(err))
		return nil
	}
	return db.History()
}

// chooseActivity returns add, practice or q. It uses the menu when one
// is available and otherwise keeps asking until it gets a valid answer.
// Closed input counts as quitting.
func chooseActivity(ctx context.Context, ui prompter, picker func() (string, error)) (string, error) {
	if picker != nil {
		return picker()
	}
	for {
		answer, err := ui.Ask(ctx, activityPrompt)
		if errors.Is(err, io.EOF) {
			return actionQuit, nil
		}
		if err != nil {
			return "", err
		}
		switch a := strings.ToLower(answer); a {
		case actionAdd, actionPractice, actionQuit:
			return a, nil
		}
		ui.Notify(activityRetry)
	}
}

// activityTopicPrompt is the topic question asked after an activity was
// picked interactively.
func activityTopicPrompt(action string) string {
	if action == actionAdd {
		return addTopicPrompt
	}
	return practiceTopicPrompt
}

// resolveTopic returns topic, asking with prompt if it is blank.
func resolveTopic(ctx context.Context, ui prompter, topic, prompt string) (string, error) {
	for strings.TrimSpace(topic) == "" {
		answer, err := ui.Ask(ctx, prompt)
		if errors.Is(err, io.EOF) {
			return "", errNoTopic
		}
		if err != nil {
			return "", err
		}
		topic = answer
	}
	return strings.TrimSpace(topic), nil
}
