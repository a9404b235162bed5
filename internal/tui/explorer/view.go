package explorer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"

	"github.com/mattsolo1/grove-explorer/pkg/icons"
	"github.com/mattsolo1/grove-explorer/pkg/models"
)

func (m Model) View() string {
	if m.help.ShowAll {
		return m.help.View()
	}

	if m.menu.Active {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.menu.View())
	}

	var viewContent string
	switch m.mode {
	case modeSearch:
		viewContent = m.renderSearchView()
	case modeGrep:
		viewContent = m.renderGrepView()
	default:
		viewContent = m.renderTreeView()
	}

	header := m.renderTabBar()
	statusBar := theme.DefaultTheme.Info.Render(m.statusMessage)
	footer := m.help.View()

	fullView := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"", // This adds a blank line for spacing
		viewContent,
		"", // Another blank line for spacing
		statusBar,
		footer,
	)

	// Add top margin to prevent border cutoff
	return "\n" + fullView
}

// renderTabBar renders the open editor tabs, active tab highlighted.
func (m Model) renderTabBar() string {
	if m.tabs.Len() == 0 {
		return theme.DefaultTheme.Muted.Render("No open files")
	}

	active := m.tabs.Active()
	parts := make([]string, 0, m.tabs.Len())
	for _, tab := range m.tabs.All() {
		title := tab.Title
		if it := m.store.Get(tab.ItemID); it != nil && it.Modified {
			title += " ●"
		}
		if active != nil && tab.ItemID == active.ItemID {
			parts = append(parts, theme.DefaultTheme.Selected.Render(" "+title+" "))
		} else {
			parts = append(parts, theme.DefaultTheme.Muted.Render(" "+title+" "))
		}
	}
	return strings.Join(parts, "│")
}

func (m Model) renderTreeView() string {
	if len(m.displayNodes) == 0 {
		return theme.DefaultTheme.Muted.Render("Empty folder. Press n to create a file.")
	}

	var b strings.Builder

	// Viewport calculation
	viewportHeight := m.getViewportHeight()
	start := m.scrollOffset
	end := m.scrollOffset + viewportHeight
	if end > len(m.displayNodes) {
		end = len(m.displayNodes)
	}

	for i := start; i < end; i++ {
		node := m.displayNodes[i]
		cursor := "  "
		if i == m.cursor {
			cursor = theme.DefaultTheme.Highlight.Render("▶ ")
		}

		indent := strings.Repeat("  ", node.depth)

		if node.inputRow {
			icon := icons.DefaultFile
			if m.creatingKind == models.KindFolder {
				icon = icons.FolderClosed
			}
			b.WriteString(fmt.Sprintf("%s%s%s %s", cursor, indent, icon, m.nameInput.View()))
			b.WriteString("\n")
			continue
		}

		it := node.item
		label := it.Name
		if m.mode == modeRename && it.ID == m.renamingID {
			label = m.nameInput.View()
		}

		var line string
		if it.IsFolder() {
			chevron := icons.FolderClosed
			if it.Open {
				chevron = icons.FolderOpen
			}
			line = fmt.Sprintf("%s%s%s %s", cursor, indent, chevron, label)
			if i == m.cursor {
				line = lipgloss.NewStyle().Bold(true).Render(line)
			}
		} else {
			line = fmt.Sprintf("%s%s%s %s", cursor, indent, icons.For(it), label)
			if it.Modified {
				line += lipgloss.NewStyle().Foreground(theme.DefaultTheme.Colors.Orange).Render(" ●")
			}
			if i == m.cursor {
				line = theme.DefaultTheme.Selected.Render(line)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Scroll indicator
	if len(m.displayNodes) > viewportHeight {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf(" (%d-%d of %d)", start+1, end, len(m.displayNodes))))
	}

	return b.String()
}

func (m Model) renderSearchView() string {
	var b strings.Builder
	b.WriteString(m.searchInput.View() + "\n\n")

	// An empty query leaves the tree showing under the input.
	if strings.TrimSpace(m.searchInput.Value()) == "" {
		b.WriteString(m.renderTreeView())
		return b.String()
	}
	if len(m.results) == 0 {
		b.WriteString(theme.DefaultTheme.Muted.Render("No matching items."))
		return b.String()
	}

	for i, it := range m.results {
		cursor := "  "
		if i == m.resultCursor {
			cursor = theme.DefaultTheme.Highlight.Render("▶ ")
		}
		icon := icons.For(it)
		if it.IsFolder() {
			icon = icons.FolderClosed
		}
		line := fmt.Sprintf("%s%s %s %s", cursor, icon, it.Name,
			theme.DefaultTheme.Muted.Render(m.relPath(it.Path)))
		if i == m.resultCursor {
			line = theme.DefaultTheme.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderGrepView() string {
	var b strings.Builder
	b.WriteString(m.grepInput.View() + "\n\n")

	if !m.grepRan {
		b.WriteString(theme.DefaultTheme.Muted.Render("Enter a query and press enter to search file contents."))
		return b.String()
	}
	if len(m.grepResults) == 0 {
		b.WriteString(theme.DefaultTheme.Muted.Render("No matches."))
		return b.String()
	}

	for i, result := range m.grepResults {
		cursor := "  "
		if i == m.resultCursor {
			cursor = theme.DefaultTheme.Highlight.Render("▶ ")
		}
		line := fmt.Sprintf("%s%s %s", cursor, result.Name,
			theme.DefaultTheme.Muted.Render(m.relPath(result.Path)))
		if i == m.resultCursor {
			line = theme.DefaultTheme.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if result.Snippet != "" {
			b.WriteString("    " + lipgloss.NewStyle().Faint(true).Render(result.Snippet))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// relPath shortens an absolute path to be relative to the workspace root.
// Paths outside the root stay absolute.
func (m Model) relPath(path string) string {
	rel, err := filepath.Rel(m.store.Root(), path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
