package explorer

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-explorer/pkg/models"
	"github.com/mattsolo1/grove-explorer/pkg/search"
	"github.com/mattsolo1/grove-explorer/pkg/vfs"
)

// editorFinishedMsg is sent when the external editor closes
type editorFinishedMsg struct{ err error }

// itemCreatedMsg is sent after an inline create commits
type itemCreatedMsg struct {
	item *models.Item
	err  error
}

// itemRenamedMsg is sent after an inline rename commits
type itemRenamedMsg struct {
	id  string
	err error
}

// itemDeletedMsg is sent after a delete
type itemDeletedMsg struct {
	name string
	err  error
}

// treeRefreshedMsg is sent after the store rescans its directory
type treeRefreshedMsg struct{ err error }

// fsChangedMsg is sent when the watcher reports an external change
type fsChangedMsg struct{}

// grepFinishedMsg is sent with the results of a content search
type grepFinishedMsg struct {
	results []search.Result
	err     error
}

func createItemCmd(store *vfs.Store, parentPath, name string, kind models.ItemKind) tea.Cmd {
	return func() tea.Msg {
		item, err := store.Create(parentPath, name, kind)
		return itemCreatedMsg{item: item, err: err}
	}
}

func renameItemCmd(store *vfs.Store, id, newName string) tea.Cmd {
	return func() tea.Msg {
		return itemRenamedMsg{id: id, err: store.Rename(id, newName)}
	}
}

func deleteItemCmd(store *vfs.Store, id, name string) tea.Cmd {
	return func() tea.Msg {
		return itemDeletedMsg{name: name, err: store.Delete(id)}
	}
}

func refreshTreeCmd(store *vfs.Store) tea.Cmd {
	return func() tea.Msg {
		return treeRefreshedMsg{err: store.Refresh()}
	}
}

// waitForChangeCmd blocks on the watcher until the next coalesced change
// notification. The update loop re-arms it after every refresh.
func waitForChangeCmd(w *vfs.Watcher) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.Events; !ok {
			return nil
		}
		return fsChangedMsg{}
	}
}

func grepCmd(index *search.Index, query string) tea.Cmd {
	return func() tea.Msg {
		results, err := index.Search(query, 50)
		return grepFinishedMsg{results: results, err: err}
	}
}
