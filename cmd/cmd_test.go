package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/glossary/internal/config"
	"github.com/abhisek/glossary/internal/glossary"
	"github.com/abhisek/glossary/internal/store"
	"github.com/abhisek/glossary/internal/ui/console"
)

func testEnv(t *testing.T, input string, terms store.TermStore) (*appEnv, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &appEnv{
		cfg:   &config.Config{Backend: config.BackendFile, Seed: 7},
		log:   zap.NewNop(),
		terms: terms,
		ui:    console.New(strings.NewReader(input), &out),
	}, &out
}

func TestChooseActivityTyped(t *testing.T) {
	e, out := testEnv(t, "maybe\nPRACTICE\n", store.NewMemoryStore())

	got, err := chooseActivity(context.Background(), e.ui, nil)
	require.NoError(t, err)
	assert.Equal(t, actionPractice, got)
	assert.Contains(t, out.String(), activityRetry)
}

func TestChooseActivityEOFQuits(t *testing.T) {
	e, _ := testEnv(t, "", store.NewMemoryStore())

	got, err := chooseActivity(context.Background(), e.ui, nil)
	require.NoError(t, err)
	assert.Equal(t, actionQuit, got)
}

func TestChooseActivityUsesPicker(t *testing.T) {
	e, _ := testEnv(t, "", store.NewMemoryStore())

	got, err := chooseActivity(context.Background(), e.ui, func() (string, error) {
		return actionAdd, nil
	})
	require.NoError(t, err)
	assert.Equal(t, actionAdd, got)
}

func TestResolveTopic(t *testing.T) {
	ctx := context.Background()

	e, _ := testEnv(t, "", store.NewMemoryStore())
	got, err := resolveTopic(ctx, e.ui, "  Chemistry ", topicPrompt)
	require.NoError(t, err)
	assert.Equal(t, "Chemistry", got)

	e, out := testEnv(t, "\n  \nbiology\n", store.NewMemoryStore())
	got, err = resolveTopic(ctx, e.ui, "", topicPrompt)
	require.NoError(t, err)
	assert.Equal(t, "biology", got)
	assert.Contains(t, out.String(), topicPrompt)

	e, _ = testEnv(t, "", store.NewMemoryStore())
	_, err = resolveTopic(ctx, e.ui, "", topicPrompt)
	assert.ErrorIs(t, err, errNoTopic)
}

func TestAddTerm(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	e, _ := testEnv(t, "Atom\nsmallest unit of matter\n", mem)

	require.NoError(t, addTerm(ctx, e.ui, mem, "Chemistry"))

	lines, err := mem.Read(ctx, "chemistry")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "Atom -$- smallest unit of matter"}, lines)
}

func TestAddTermRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty name", "\nmeaning\n"},
		{"empty meaning", "Atom\n\n"},
		{"separator in meaning", "Atom\na -$- b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mem := store.NewMemoryStore()
			e, _ := testEnv(t, tt.input, mem)

			err := addTerm(ctx, e.ui, mem, "chemistry")
			assert.ErrorIs(t, err, glossary.ErrMalformedRecord)

			_, err = mem.Read(ctx, "chemistry")
			assert.ErrorIs(t, err, store.ErrTopicNotFound)
		})
	}
}

func TestImportTerms(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()

	doc := `terms:
  - name: Atom
    meaning: smallest unit of matter
  - name: Ion
    meaning: charged atom
`
	n, err := importTerms(ctx, mem, "chemistry", strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines, err := mem.Read(ctx, "chemistry")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "Atom -$- smallest unit of matter", "Ion -$- charged atom"}, lines)
}

func TestImportTermsValidatesFirst(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()

	doc := `terms:
  - name: Atom
    meaning: smallest unit of matter
  - name: Ion
    meaning: charged -$- atom
`
	_, err := importTerms(ctx, mem, "chemistry", strings.NewReader(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, glossary.ErrMalformedRecord)

	_, err = mem.Read(ctx, "chemistry")
	assert.ErrorIs(t, err, store.ErrTopicNotFound)
}

func TestImportTermsInvalidTopic(t *testing.T) {
	_, err := importTerms(context.Background(), store.NewMemoryStore(), "a/b", strings.NewReader("terms: []"))
	assert.ErrorIs(t, err, glossary.ErrInvalidTopic)
}

func TestPractice(t *testing.T) {
	mem := store.NewMemoryStore()
	require.NoError(t, mem.Seed("chemistry",
		"",
		"Atom -$- smallest unit of matter",
		"Molecule -$- two or more atoms",
		"Ion -$- charged atom",
		"Bond -$- link between atoms",
	))
	e, out := testEnv(t, "a\nn\n", mem)

	require.NoError(t, practice(context.Background(), e, "chemistry"))

	s := out.String()
	assert.Contains(t, s, "refer to?")
	assert.Contains(t, s, "Your choice was: a")
	assert.Contains(t, s, "Ok, have a nice day!")
	assert.Contains(t, s, "of 1 correctly")
}

func TestPracticeMissingTopic(t *testing.T) {
	e, out := testEnv(t, "", store.NewMemoryStore())

	require.NoError(t, practice(context.Background(), e, "physics"))
	assert.Contains(t, out.String(), "A file for this topic does not exist")
}

func TestTermStoreSelection(t *testing.T) {
	dir := t.TempDir()

	e := &appEnv{cfg: &config.Config{Backend: config.BackendFile, TopicsDir: dir}, log: zap.NewNop()}
	ts, err := e.termStore()
	require.NoError(t, err)
	assert.IsType(t, &store.FileStore{}, ts)
	assert.Nil(t, e.db, "file backend must not open the database")

	e = &appEnv{cfg: &config.Config{Backend: config.BackendSQLite, DBPath: filepath.Join(dir, "g.db")}, log: zap.NewNop()}
	ts, err = e.termStore()
	require.NoError(t, err)
	t.Cleanup(func() { e.db.Close() })
	assert.IsType(t, &store.SQLiteTermStore{}, ts)
}

// unwritableDBPath returns a database path whose parent is a regular file.
func unwritableDBPath(t *testing.T) string {
	t.Helper()
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	return filepath.Join(blocker, "glossary.db")
}

func TestHistoryDisabledWhenDatabaseFails(t *testing.T) {
	e := &appEnv{cfg: &config.Config{History: true, DBPath: unwritableDBPath(t)}, log: zap.NewNop()}
	assert.Nil(t, e.history())

	e = &appEnv{cfg: &config.Config{History: false, DBPath: unwritableDBPath(t)}, log: zap.NewNop()}
	assert.Nil(t, e.history())
	assert.Nil(t, e.db)
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, nil)
	assert.Contains(t, buf.String(), "No practice sessions recorded.")

	buf.Reset()
	printStats(&buf, []store.TopicStats{{Topic: "chemistry", Sessions: 2, Answers: 4, Correct: 3}})
	assert.Contains(t, buf.String(), "chemistry")
	assert.Contains(t, buf.String(), "75.0%")
}

func TestPrintStatsTruncatesMultibyteTopics(t *testing.T) {
	var buf bytes.Buffer
	topic := strings.Repeat("é", 25)
	printStats(&buf, []store.TopicStats{{Topic: topic, Sessions: 1, Answers: 1, Correct: 1}})

	out := buf.String()
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, strings.Repeat("é", topicColumnWidth)+"  1")
	assert.NotContains(t, out, strings.Repeat("é", topicColumnWidth+1))
}

func TestPadCell(t *testing.T) {
	assert.Equal(t, "ab   ", padCell("ab", 5))
	assert.Equal(t, "héllo", padCell("héllo wörld", 5))
	assert.Equal(t, "日本 ", padCell("日本語", 5))
}

func runRootWith(t *testing.T, e *appEnv, args ...string) error {
	t.Helper()
	env = e
	t.Cleanup(func() { env = nil })

	c := &cobra.Command{}
	c.SetContext(context.Background())
	return runRoot(c, args)
}

func TestRootUnknownAction(t *testing.T) {
	e, out := testEnv(t, "", store.NewMemoryStore())

	err := runRootWith(t, e, "review", "chemistry")
	assert.ErrorIs(t, err, errUnknownAction)
	assert.Contains(t, out.String(), "The activity option must be 'add' or 'practice'")
}

func TestRootAddPromptsForTopic(t *testing.T) {
	mem := store.NewMemoryStore()
	e, out := testEnv(t, "Chemistry\nAtom\nsmallest unit of matter\n", mem)

	require.NoError(t, runRootWith(t, e, "ADD"))
	assert.Contains(t, out.String(), topicPrompt)

	lines, err := mem.Read(context.Background(), "chemistry")
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestRootTypedQuit(t *testing.T) {
	e, out := testEnv(t, "q\n", store.NewMemoryStore())

	require.NoError(t, runRootWith(t, e))
	assert.Contains(t, out.String(), "Quitting Program.")
}

func TestRootPickedActivityAsksActivityTopic(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		prompt string
	}{
		{"add", "add\nChemistry\nAtom\nsmallest unit of matter\n", addTopicPrompt},
		{"practice", "practice\nphysics\n", practiceTopicPrompt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, out := testEnv(t, tt.input, store.NewMemoryStore())

			require.NoError(t, runRootWith(t, e))
			assert.Contains(t, out.String(), tt.prompt)
			assert.NotContains(t, out.String(), topicPrompt)
		})
	}
}

// executeRoot runs the real command tree against temp directories.
func executeRoot(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		closeEnv()
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSubcommandsShowWelcome(t *testing.T) {
	topics := t.TempDir()
	out, err := executeRoot(t, "Atom\nsmallest unit of matter\n",
		"--topics-dir", topics, "--db", filepath.Join(t.TempDir(), "g.db"),
		"--backend", "file", "--history=false",
		"add", "chemistry")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to the Glossary CLI APP!")

	data, err := os.ReadFile(filepath.Join(topics, "chemistry.txt"))
	require.NoError(t, err)
	assert.Equal(t, "\nAtom -$- smallest unit of matter", string(data))
}

func TestAddWorksWithUnwritableDatabase(t *testing.T) {
	topics := t.TempDir()
	_, err := executeRoot(t, "Atom\nsmallest unit of matter\n",
		"--topics-dir", topics, "--db", unwritableDBPath(t),
		"--backend", "file", "--history=true",
		"add", "chemistry")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(topics, "chemistry.txt"))
}

func TestPracticeWorksWithUnwritableDatabase(t *testing.T) {
	topics := t.TempDir()
	corpus := "\nAtom -$- smallest unit of matter\nMolecule -$- two or more atoms\nIon -$- charged atom\nBond -$- link between atoms"
	require.NoError(t, os.WriteFile(filepath.Join(topics, "chemistry.txt"), []byte(corpus), 0o644))

	out, err := executeRoot(t, "a\nn\n",
		"--topics-dir", topics, "--db", unwritableDBPath(t),
		"--backend", "file", "--history=true", "--seed", "3",
		"practice", "chemistry")
	require.NoError(t, err)
	assert.Contains(t, out, "Ok, have a nice day!")
}
