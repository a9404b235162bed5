package models

import (
	"path/filepath"
	"sort"
	"strings"
)

// ItemKind categorizes the two kinds of nodes in the explorer forest.
type ItemKind string

const (
	KindFile   ItemKind = "file"
	KindFolder ItemKind = "folder"
)

// Item represents a single node in the explorer's file forest. The store owns
// every Item; the TUI only reads them and requests mutations through the store.
type Item struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Path string   `json:"path"`
	Kind ItemKind `json:"kind"`

	// Open is meaningful for folders only; a file never has children.
	Open     bool `json:"open,omitempty"`
	Modified bool `json:"modified,omitempty"`

	Parent   *Item   `json:"-"`
	Children []*Item `json:"children,omitempty"`
}

// IsFolder reports whether the item is a folder.
func (it *Item) IsFolder() bool {
	return it.Kind == KindFolder
}

// Ext returns the lowercased file extension, including the leading dot.
func (it *Item) Ext() string {
	return strings.ToLower(filepath.Ext(it.Name))
}

// Depth returns the item's depth in the forest, with roots at 0.
func (it *Item) Depth() int {
	d := 0
	for p := it.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// SortChildren orders a child list the way the explorer displays it:
// folders before files, each group by name, case-insensitively.
func SortChildren(items []*Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.IsFolder() != b.IsFolder() {
			return a.IsFolder()
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}

// Walk visits the forest depth-first in display order, calling fn with each
// item and its depth. Children are visited regardless of the Open flag;
// callers that care about visibility check Open themselves.
func Walk(forest []*Item, fn func(it *Item, depth int)) {
	var visit func(items []*Item, depth int)
	visit = func(items []*Item, depth int) {
		for _, it := range items {
			fn(it, depth)
			if len(it.Children) > 0 {
				visit(it.Children, depth+1)
			}
		}
	}
	visit(forest, 0)
}
