// Package editor implements the tab store the explorer opens files into: an
// ordered list of tabs keyed by item identity, with one active tab.
package editor

import "fmt"

// Tab is one open editor tab.
type Tab struct {
	ItemID string
	Title  string
}

// Tabs holds the open tab list. Opening an already-open item focuses its
// existing tab rather than duplicating it.
type Tabs struct {
	tabs   []Tab
	active int // index into tabs, -1 when empty
}

// New creates an empty tab store.
func New() *Tabs {
	return &Tabs{active: -1}
}

// OpenTab opens (or focuses) a tab for the given item identity.
func (t *Tabs) OpenTab(itemID, title string) {
	for i, tab := range t.tabs {
		if tab.ItemID == itemID {
			t.active = i
			return
		}
	}
	t.tabs = append(t.tabs, Tab{ItemID: itemID, Title: title})
	t.active = len(t.tabs) - 1
}

// CloseTab closes the tab for an item. Closing the active tab activates its
// left neighbor, or the new first tab.
func (t *Tabs) CloseTab(itemID string) error {
	for i, tab := range t.tabs {
		if tab.ItemID != itemID {
			continue
		}
		t.tabs = append(t.tabs[:i], t.tabs[i+1:]...)
		switch {
		case len(t.tabs) == 0:
			t.active = -1
		case t.active > i:
			t.active--
		case t.active == i:
			if t.active >= len(t.tabs) {
				t.active = len(t.tabs) - 1
			}
		}
		return nil
	}
	return fmt.Errorf("no tab for item: %s", itemID)
}

// Retitle updates the title of an item's tab after a rename, if it is open.
func (t *Tabs) Retitle(itemID, title string) {
	for i := range t.tabs {
		if t.tabs[i].ItemID == itemID {
			t.tabs[i].Title = title
			return
		}
	}
}

// Active returns the active tab, or nil when no tab is open.
func (t *Tabs) Active() *Tab {
	if t.active < 0 || t.active >= len(t.tabs) {
		return nil
	}
	return &t.tabs[t.active]
}

// All returns the tab list in open order.
func (t *Tabs) All() []Tab {
	return t.tabs
}

// Len returns the number of open tabs.
func (t *Tabs) Len() int {
	return len(t.tabs)
}

// Next activates the tab to the right, wrapping around.
func (t *Tabs) Next() {
	if len(t.tabs) > 0 {
		t.active = (t.active + 1) % len(t.tabs)
	}
}

// Prev activates the tab to the left, wrapping around.
func (t *Tabs) Prev() {
	if len(t.tabs) > 0 {
		t.active = (t.active - 1 + len(t.tabs)) % len(t.tabs)
	}
}
