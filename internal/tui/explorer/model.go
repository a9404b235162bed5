package explorer

import (
	"os"
	"os/exec"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattsolo1/grove-core/tui/components/help"

	"github.com/mattsolo1/grove-explorer/internal/tui/components/menu"
	"github.com/mattsolo1/grove-explorer/pkg/editor"
	"github.com/mattsolo1/grove-explorer/pkg/models"
	"github.com/mattsolo1/grove-explorer/pkg/search"
	"github.com/mattsolo1/grove-explorer/pkg/vfs"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeCreate
	modeRename
	modeGrep
)

// displayNode represents a single line in the tree view. Exactly one of item
// and inputRow is set: inputRow marks the synthetic row that hosts the name
// input during inline creation.
type displayNode struct {
	item     *models.Item
	depth    int
	inputRow bool
}

// Model is the main model for the explorer TUI
type Model struct {
	store   *vfs.Store
	tabs    *editor.Tabs
	index   *search.Index // nil when no content index is available
	watcher *vfs.Watcher  // nil when watching could not start

	displayNodes []*displayNode
	cursor       int
	scrollOffset int
	keys         KeyMap
	help         help.Model
	width        int
	height       int
	mode         mode
	lastKey      string // for detecting 'gg'

	// Name-search state
	searchInput  textinput.Model
	results      []*models.Item
	resultCursor int

	// Grep state
	grepInput   textinput.Model
	grepResults []search.Result
	grepRan     bool

	// Inline creation state: while set, exactly one input row is shown under
	// the parent and the pending kind is what Enter will create.
	nameInput    textinput.Model
	creatingIn   string // parent folder path, "" for the root
	creatingKind models.ItemKind

	// Inline rename state
	renamingID string

	// Context menu
	menu       menu.Model
	menuItemID string // item the open menu refers to, "" for background

	statusMessage string
}

// New creates a new explorer TUI model.
func New(store *vfs.Store, tabs *editor.Tabs, index *search.Index, watcher *vfs.Watcher) Model {
	helpModel := help.NewBuilder().
		WithKeys(keys).
		WithTitle("File Explorer - Help").
		Build()

	searchInput := textinput.New()
	searchInput.Placeholder = "Search files..."
	searchInput.CharLimit = 100

	grepInput := textinput.New()
	grepInput.Placeholder = "Search file contents..."
	grepInput.CharLimit = 200

	nameInput := textinput.New()
	nameInput.Placeholder = "name"
	nameInput.CharLimit = 255

	m := Model{
		store:       store,
		tabs:        tabs,
		index:       index,
		watcher:     watcher,
		keys:        keys,
		help:        helpModel,
		searchInput: searchInput,
		grepInput:   grepInput,
		nameInput:   nameInput,
		menu:        menu.New(),
	}
	m.buildDisplayTree()
	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return waitForChangeCmd(m.watcher)
	}
	return nil
}

// openInEditor opens a file in the configured editor
func (m Model) openInEditor(path string) tea.Cmd {
	editorBin := os.Getenv("EDITOR")
	if editorBin == "" {
		editorBin = "vim" // fallback
	}
	cmd := exec.Command(editorBin, path)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// currentItem returns the item under the cursor, or nil on the input row or
// an empty tree.
func (m Model) currentItem() *models.Item {
	if m.cursor < 0 || m.cursor >= len(m.displayNodes) {
		return nil
	}
	return m.displayNodes[m.cursor].item
}

// buildDisplayTree flattens the store's forest into visible rows, descending
// only into open folders. The inline-create input row is spliced in directly
// under its parent folder.
func (m *Model) buildDisplayTree() {
	var nodes []*displayNode

	if m.mode == modeCreate && m.creatingIn == "" {
		nodes = append(nodes, &displayNode{inputRow: true, depth: 0})
	}

	var walk func(items []*models.Item, depth int)
	walk = func(items []*models.Item, depth int) {
		for _, it := range items {
			nodes = append(nodes, &displayNode{item: it, depth: depth})
			if !it.IsFolder() {
				continue
			}
			if m.mode == modeCreate && m.creatingIn == it.Path {
				nodes = append(nodes, &displayNode{inputRow: true, depth: depth + 1})
			}
			if it.Open {
				walk(it.Children, depth+1)
			}
		}
	}
	walk(m.store.Items(), 0)

	m.displayNodes = nodes
	m.clampCursor()
}

// clampCursor ensures the cursor is within the valid range of display nodes.
func (m *Model) clampCursor() {
	if m.cursor >= len(m.displayNodes) {
		if len(m.displayNodes) > 0 {
			m.cursor = len(m.displayNodes) - 1
		} else {
			m.cursor = 0
		}
	}
}

// getViewportHeight calculates how many lines are available for the tree.
func (m *Model) getViewportHeight() int {
	// Account for:
	// - Top margin: 1 line
	// - Tab bar: 1 line
	// - Blank line after tab bar: 1 line
	// - Blank line before footer: 1 line
	// - Status bar: 1 line
	// - Footer (help): 1 line
	// - Scroll indicator (when shown): 2 lines (blank + indicator)
	const fixedLines = 8
	availableHeight := m.height - fixedLines
	if availableHeight < 1 {
		return 1
	}
	return availableHeight
}

// adjustScroll ensures the cursor is visible in the viewport.
func (m *Model) adjustScroll() {
	viewportHeight := m.getViewportHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+viewportHeight {
		m.scrollOffset = m.cursor - viewportHeight + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// cursorTo moves the cursor onto the given item if it is visible.
func (m *Model) cursorTo(id string) {
	for i, node := range m.displayNodes {
		if node.item != nil && node.item.ID == id {
			m.cursor = i
			m.adjustScroll()
			return
		}
	}
}

// reveal opens every ancestor folder of the item so it has a visible row.
func (m *Model) reveal(it *models.Item) {
	for p := it.Parent; p != nil; p = p.Parent {
		p.Open = true
	}
	m.buildDisplayTree()
	m.cursorTo(it.ID)
}
