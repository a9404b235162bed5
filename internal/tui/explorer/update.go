package explorer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-explorer/internal/tui/components/menu"
	"github.com/mattsolo1/grove-explorer/pkg/icons"
	"github.com/mattsolo1/grove-explorer/pkg/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		return m, nil

	case editorFinishedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Editor error: %v", msg.err)
		}
		return m, nil

	case itemCreatedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error creating item: %v", msg.err)
			return m, nil
		}
		m.buildDisplayTree()
		m.cursorTo(msg.item.ID)
		m.statusMessage = fmt.Sprintf("Created %s %s", strings.ToLower(icons.KindLabel(msg.item.Kind)), msg.item.Name)
		return m, nil

	case itemRenamedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error renaming: %v", msg.err)
			return m, nil
		}
		if it := m.store.Get(msg.id); it != nil {
			m.tabs.Retitle(it.ID, it.Name)
			m.buildDisplayTree()
			m.cursorTo(it.ID)
			m.statusMessage = fmt.Sprintf("Renamed to %s", it.Name)
		}
		return m, nil

	case itemDeletedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error deleting: %v", msg.err)
			return m, nil
		}
		m.buildDisplayTree()
		m.pruneClosedTabs()
		m.statusMessage = fmt.Sprintf("Deleted %s", msg.name)
		return m, nil

	case treeRefreshedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error refreshing tree: %v", msg.err)
			return m, nil
		}
		m.buildDisplayTree()
		m.pruneClosedTabs()
		if m.watcher != nil {
			m.watcher.Sync(m.store.FolderPaths())
		}
		return m, nil

	case fsChangedMsg:
		return m, tea.Batch(refreshTreeCmd(m.store), waitForChangeCmd(m.watcher))

	case grepFinishedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Error searching content: %v", msg.err)
			return m, nil
		}
		m.grepResults = msg.results
		m.grepRan = true
		m.resultCursor = 0
		m.grepInput.Blur()
		return m, nil

	case menu.ChosenMsg:
		return m.handleMenuAction(msg.Action)

	case menu.CancelledMsg:
		m.menuItemID = ""
		return m, nil

	case tea.KeyMsg:
		if m.help.ShowAll {
			m.help.Toggle()
			return m, nil
		}

		if m.menu.Active {
			m.menu, cmd = m.menu.Update(msg)
			return m, cmd
		}

		switch m.mode {
		case modeCreate:
			return m.updateCreate(msg)
		case modeRename:
			return m.updateRename(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeGrep:
			return m.updateGrep(msg)
		}

		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustScroll()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.displayNodes)-1 {
			m.cursor++
			m.adjustScroll()
		}
	case key.Matches(msg, m.keys.PageUp):
		pageSize := m.getViewportHeight() / 2
		if pageSize < 1 {
			pageSize = 1
		}
		m.cursor -= pageSize
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.adjustScroll()
	case key.Matches(msg, m.keys.PageDown):
		pageSize := m.getViewportHeight() / 2
		if pageSize < 1 {
			pageSize = 1
		}
		m.cursor += pageSize
		if m.cursor >= len(m.displayNodes) {
			m.cursor = len(m.displayNodes) - 1
		}
		m.adjustScroll()
	case key.Matches(msg, m.keys.GoToTop):
		// 'gg' goes to the top
		if m.lastKey == "g" {
			m.cursor = 0
			m.adjustScroll()
			m.lastKey = ""
		} else {
			m.lastKey = "g"
		}
	case key.Matches(msg, m.keys.GoToBottom):
		if len(m.displayNodes) > 0 {
			m.cursor = len(m.displayNodes) - 1
			m.adjustScroll()
		}
	case key.Matches(msg, m.keys.Confirm):
		if it := m.currentItem(); it != nil {
			if it.IsFolder() {
				_ = m.store.ToggleFolder(it.ID)
				m.buildDisplayTree()
			} else {
				return m, m.openFile(it)
			}
		}
	case key.Matches(msg, m.keys.OpenEditor):
		if it := m.currentItem(); it != nil && !it.IsFolder() {
			return m, m.openInEditor(it.Path)
		}
	case key.Matches(msg, m.keys.NewFile):
		m.startCreate(m.createTarget(), models.KindFile)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.NewFolder):
		m.startCreate(m.createTarget(), models.KindFolder)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Rename):
		if it := m.currentItem(); it != nil {
			m.startRename(it)
			return m, textinput.Blink
		}
	case key.Matches(msg, m.keys.Delete):
		if it := m.currentItem(); it != nil {
			return m, deleteItemCmd(m.store, it.ID, it.Name)
		}
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.results = nil
		m.resultCursor = 0
		m.searchInput.Reset()
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Grep):
		if m.index == nil {
			m.statusMessage = "Content index unavailable; run xp index first"
			return m, nil
		}
		m.mode = modeGrep
		m.grepResults = nil
		m.grepRan = false
		m.resultCursor = 0
		m.grepInput.Reset()
		m.grepInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Menu):
		m.openMenu()
	case key.Matches(msg, m.keys.CloseTab):
		if active := m.tabs.Active(); active != nil {
			_ = m.tabs.CloseTab(active.ItemID)
			m.selectActiveTab()
		}
	case key.Matches(msg, m.keys.NextTab):
		m.tabs.Next()
		m.selectActiveTab()
	case key.Matches(msg, m.keys.PrevTab):
		m.tabs.Prev()
		m.selectActiveTab()
	case key.Matches(msg, m.keys.Refresh):
		return m, refreshTreeCmd(m.store)
	default:
		if !key.Matches(msg, m.keys.GoToTop) {
			m.lastKey = ""
		}
	}
	return m, nil
}

func (m Model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.cancelInput()
	case key.Matches(msg, m.keys.Confirm):
		name := strings.TrimSpace(m.nameInput.Value())
		parent := m.creatingIn
		kind := m.creatingKind
		m.cancelInput()
		// An empty name abandons the create.
		if name == "" {
			return m, nil
		}
		return m, createItemCmd(m.store, parent, name, kind)
	default:
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.cancelInput()
	case key.Matches(msg, m.keys.Confirm):
		newName := strings.TrimSpace(m.nameInput.Value())
		id := m.renamingID
		it := m.store.Get(id)
		m.cancelInput()
		// An empty or unchanged name leaves the item as it was.
		if newName == "" || it == nil || newName == it.Name {
			return m, nil
		}
		return m, renameItemCmd(m.store, id, newName)
	default:
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeBrowse
		m.searchInput.Blur()
		m.results = nil
	// The query owns the letter keys while the input is focused, so only the
	// raw arrows move the result cursor; j/k stay typeable.
	case msg.Type == tea.KeyUp:
		if m.resultCursor > 0 {
			m.resultCursor--
		}
	case msg.Type == tea.KeyDown:
		if m.resultCursor < len(m.results)-1 {
			m.resultCursor++
		}
	case key.Matches(msg, m.keys.Confirm):
		if m.resultCursor >= len(m.results) {
			return m, nil
		}
		// Folder results are inert; only files open.
		it := m.results[m.resultCursor]
		if it.IsFolder() {
			return m, nil
		}
		m.mode = modeBrowse
		m.searchInput.Blur()
		m.results = nil
		m.reveal(it)
		return m, m.openFile(it)
	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.results = m.store.Search(m.searchInput.Value())
		m.resultCursor = 0
		return m, cmd
	}
	return m, nil
}

func (m Model) updateGrep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.grepInput.Focused() {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.mode = modeBrowse
			m.grepInput.Blur()
			m.grepResults = nil
		case key.Matches(msg, m.keys.Confirm):
			query := strings.TrimSpace(m.grepInput.Value())
			if query == "" {
				return m, nil
			}
			return m, grepCmd(m.index, query)
		default:
			var cmd tea.Cmd
			m.grepInput, cmd = m.grepInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Results phase: the input is blurred and the list has focus.
	switch {
	case key.Matches(msg, m.keys.Back):
		m.grepRan = false
		m.grepResults = nil
		m.grepInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Up):
		if m.resultCursor > 0 {
			m.resultCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.resultCursor < len(m.grepResults)-1 {
			m.resultCursor++
		}
	case key.Matches(msg, m.keys.Confirm):
		if m.resultCursor >= len(m.grepResults) {
			return m, nil
		}
		result := m.grepResults[m.resultCursor]
		it := m.store.Lookup(result.Path)
		if it == nil {
			m.statusMessage = fmt.Sprintf("%s is not in the tree", result.Name)
			return m, nil
		}
		m.mode = modeBrowse
		m.grepResults = nil
		m.grepRan = false
		m.reveal(it)
		return m, m.openFile(it)
	}
	return m, nil
}

// handleMenuAction dispatches a context-menu choice.
func (m Model) handleMenuAction(action menu.Action) (tea.Model, tea.Cmd) {
	it := m.store.Get(m.menuItemID)
	m.menuItemID = ""

	switch action {
	case menu.ActionOpen:
		if it != nil && !it.IsFolder() {
			return m, m.openFile(it)
		}
	case menu.ActionNewFile, menu.ActionNewFolder:
		kind := models.KindFile
		if action == menu.ActionNewFolder {
			kind = models.KindFolder
		}
		parent := ""
		if it != nil && it.IsFolder() {
			parent = it.Path
		}
		m.startCreate(parent, kind)
		return m, textinput.Blink
	case menu.ActionRename:
		if it != nil {
			m.startRename(it)
			return m, textinput.Blink
		}
	case menu.ActionDelete:
		if it != nil {
			return m, deleteItemCmd(m.store, it.ID, it.Name)
		}
	case menu.ActionRefresh:
		return m, refreshTreeCmd(m.store)
	}
	return m, nil
}

// openMenu activates the context menu for the item under the cursor, or the
// background menu on an empty row.
func (m *Model) openMenu() {
	it := m.currentItem()
	switch {
	case it == nil:
		m.menuItemID = ""
		m.menu.Activate(m.store.Root(), menu.BackgroundEntries())
	case it.IsFolder():
		m.menuItemID = it.ID
		m.menu.Activate(it.Name, menu.FolderEntries())
	default:
		m.menuItemID = it.ID
		m.menu.Activate(it.Name, menu.FileEntries())
	}
}

// openFile selects the file in the store and opens (or focuses) its tab.
func (m *Model) openFile(it *models.Item) tea.Cmd {
	if err := m.store.SelectFile(it.ID); err != nil {
		m.statusMessage = fmt.Sprintf("Error opening %s: %v", it.Name, err)
		return nil
	}
	m.tabs.OpenTab(it.ID, it.Name)
	m.statusMessage = ""
	return nil
}

// selectActiveTab mirrors the active tab back into the store's selection.
func (m *Model) selectActiveTab() {
	if active := m.tabs.Active(); active != nil {
		_ = m.store.SelectFile(active.ItemID)
	}
}

// pruneClosedTabs drops tabs whose items vanished from the tree.
func (m *Model) pruneClosedTabs() {
	for _, tab := range m.tabs.All() {
		if m.store.Get(tab.ItemID) == nil {
			_ = m.tabs.CloseTab(tab.ItemID)
		}
	}
	m.selectActiveTab()
}

// createTarget picks the parent folder for a new item: the folder under the
// cursor, a file's containing folder, or the root.
func (m Model) createTarget() string {
	it := m.currentItem()
	if it == nil {
		return ""
	}
	if it.IsFolder() {
		return it.Path
	}
	if it.Parent != nil {
		return it.Parent.Path
	}
	return ""
}

func (m *Model) startCreate(parentPath string, kind models.ItemKind) {
	m.mode = modeCreate
	m.creatingIn = parentPath
	m.creatingKind = kind
	if parentPath != "" {
		// The input row only renders under an open parent.
		if parent := m.store.Lookup(parentPath); parent != nil {
			parent.Open = true
		}
	}
	m.nameInput.Reset()
	m.nameInput.Placeholder = strings.ToLower(icons.KindLabel(kind)) + " name"
	m.nameInput.Focus()
	m.buildDisplayTree()
}

func (m *Model) startRename(it *models.Item) {
	m.mode = modeRename
	m.renamingID = it.ID
	m.nameInput.SetValue(it.Name)
	m.nameInput.CursorEnd()
	m.nameInput.Focus()
}

// cancelInput leaves any inline-input mode and restores the plain tree.
func (m *Model) cancelInput() {
	m.mode = modeBrowse
	m.creatingIn = ""
	m.renamingID = ""
	m.nameInput.Blur()
	m.nameInput.Reset()
	m.buildDisplayTree()
}
