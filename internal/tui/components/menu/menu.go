// Package menu implements the context-menu overlay: a small bordered list of
// actions for the item under the cursor.
package menu

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"
)

// Action identifies a menu entry.
type Action int

const (
	ActionOpen Action = iota
	ActionNewFile
	ActionNewFolder
	ActionRename
	ActionDelete
	ActionRefresh
)

// Entry is one selectable menu row.
type Entry struct {
	Label  string
	Action Action
}

// FileEntries are the actions offered for a file.
func FileEntries() []Entry {
	return []Entry{
		{Label: "Open", Action: ActionOpen},
		{Label: "Rename", Action: ActionRename},
		{Label: "Delete", Action: ActionDelete},
	}
}

// FolderEntries are the actions offered for a folder.
func FolderEntries() []Entry {
	return []Entry{
		{Label: "New File", Action: ActionNewFile},
		{Label: "New Folder", Action: ActionNewFolder},
		{Label: "Rename", Action: ActionRename},
		{Label: "Delete", Action: ActionDelete},
	}
}

// BackgroundEntries are the actions offered when no item is under the cursor.
func BackgroundEntries() []Entry {
	return []Entry{
		{Label: "New File", Action: ActionNewFile},
		{Label: "New Folder", Action: ActionNewFolder},
		{Label: "Refresh", Action: ActionRefresh},
	}
}

// --- Messages ---

// ChosenMsg is sent when the user picks an entry.
type ChosenMsg struct{ Action Action }

// CancelledMsg is sent when the menu is dismissed without a choice.
type CancelledMsg struct{}

// --- Model ---

// Model represents the context menu overlay.
type Model struct {
	Active  bool
	Title   string
	entries []Entry
	cursor  int
	keys    keyMap
}

// New creates an inactive menu model.
func New() Model {
	return Model{keys: defaultKeyMap}
}

// Activate opens the menu with the given title and entries.
func (m *Model) Activate(title string, entries []Entry) {
	m.Title = title
	m.entries = entries
	m.cursor = 0
	m.Active = true
}

// --- Update ---

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.Active {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Choose):
			m.Active = false
			action := m.entries[m.cursor].Action
			return m, func() tea.Msg { return ChosenMsg{Action: action} }
		case key.Matches(msg, m.keys.Cancel):
			m.Active = false
			return m, func() tea.Msg { return CancelledMsg{} }
		}
	}

	return m, nil
}

// --- View ---

func (m Model) View() string {
	if !m.Active {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.DefaultTheme.Header.Render(m.Title))
	b.WriteString("\n")
	for i, entry := range m.entries {
		b.WriteString("\n")
		if i == m.cursor {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.DefaultTheme.Colors.Orange).Render("│ " + entry.Label))
		} else {
			b.WriteString("  " + entry.Label)
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.DefaultTheme.Colors.Orange).
		Padding(1, 2).
		Render(b.String())
}

// --- KeyMap ---

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Cancel key.Binding
}

var defaultKeyMap = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Choose: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "choose"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "m", "q"),
		key.WithHelp("esc", "cancel"),
	),
}
