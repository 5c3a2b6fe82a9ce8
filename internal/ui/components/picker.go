package components

import (
	"io"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/glossary/internal/ui/layout"
	"github.com/abhisek/glossary/internal/ui/theme"
)

// Activities offered by the picker.
const (
	ActivityAdd      = "add"
	ActivityPractice = "practice"
	ActivityQuit     = "q"
)

// activityChosenMsg is emitted when a menu item is selected.
type activityChosenMsg struct {
	activity string
}

// ActivityPicker asks which activity to run.
type ActivityPicker struct {
	menu   Menu
	quit   key.Binding
	Choice string
}

// NewActivityPicker creates a picker with add, practice and quit entries.
func NewActivityPicker() ActivityPicker {
	choose := func(a string) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return activityChosenMsg{activity: a} }
		}
	}
	return ActivityPicker{
		menu: NewMenu([]MenuItem{
			{Label: "Add a new term", Action: choose(ActivityAdd)},
			{Label: "Practice a topic", Action: choose(ActivityPractice)},
			{Label: "Quit", Action: choose(ActivityQuit)},
		}),
		quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (p ActivityPicker) Init() tea.Cmd {
	return nil
}

func (p ActivityPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case activityChosenMsg:
		p.Choice = msg.activity
		return p, tea.Quit

	case tea.KeyMsg:
		if key.Matches(msg, p.quit) {
			p.Choice = ActivityQuit
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p ActivityPicker) View() tea.View {
	return tea.NewView(p.Render())
}

// Render returns the picker content as a string.
func (p ActivityPicker) Render() string {
	s := theme.Title.Render("Select an activity") + "\n\n"
	s += p.menu.View() + "\n"
	keys := p.menu.Keys
	s += layout.RenderFooter(layout.Hints(keys.Up, keys.Down, keys.Select, p.quit)) + "\n"
	return s
}

// RunActivityPicker runs the picker on in/out and returns the chosen
// activity, ActivityQuit if the user backed out.
func RunActivityPicker(in io.Reader, out io.Writer) (string, error) {
	p := tea.NewProgram(NewActivityPicker(), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	picker, ok := final.(ActivityPicker)
	if !ok || picker.Choice == "" {
		return ActivityQuit, nil
	}
	return picker.Choice, nil
}
