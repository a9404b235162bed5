package explorer

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/mattsolo1/grove-core/tui/keymap"
)

// KeyMap defines the keybindings for the explorer TUI
type KeyMap struct {
	keymap.Base
	NewFile    key.Binding
	NewFolder  key.Binding
	Rename     key.Binding
	Delete     key.Binding
	Search     key.Binding
	Grep       key.Binding
	Menu       key.Binding
	OpenEditor key.Binding
	CloseTab   key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Refresh    key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	GoToTop    key.Binding
	GoToBottom key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	baseHelp := k.Base.FullHelp()
	return append(baseHelp, []key.Binding{
		k.NewFile,
		k.NewFolder,
		k.Rename,
		k.Delete,
		k.Menu,
	}, []key.Binding{
		k.Search,
		k.Grep,
		k.OpenEditor,
		k.Refresh,
	}, []key.Binding{
		k.CloseTab,
		k.NextTab,
		k.PrevTab,
		k.PageUp,
		k.PageDown,
		k.GoToTop,
		k.GoToBottom,
	})
}

var keys = KeyMap{
	Base: keymap.NewBase(),
	NewFile: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new file"),
	),
	NewFolder: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "new folder"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search names"),
	),
	Grep: key.NewBinding(
		key.WithKeys("*"),
		key.WithHelp("*", "grep content"),
	),
	Menu: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "context menu"),
	),
	OpenEditor: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open in $EDITOR"),
	),
	CloseTab: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "close tab"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev tab"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "refresh tree"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "page down"),
	),
	GoToTop: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("gg", "go to top"),
	),
	GoToBottom: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "go to bottom"),
	),
}
