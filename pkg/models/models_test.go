package models

import (
	"testing"
)

func TestSortChildren(t *testing.T) {
	items := []*Item{
		{Name: "zeta.go", Kind: KindFile},
		{Name: "src", Kind: KindFolder},
		{Name: "Alpha.go", Kind: KindFile},
		{Name: "docs", Kind: KindFolder},
	}

	SortChildren(items)

	got := make([]string, len(items))
	for i, it := range items {
		got[i] = it.Name
	}
	want := []string{"docs", "src", "Alpha.go", "zeta.go"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestExt(t *testing.T) {
	tests := []struct {
		name string
		ext  string
	}{
		{"main.go", ".go"},
		{"README.MD", ".md"},
		{"Makefile", ""},
		{"archive.tar.gz", ".gz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := &Item{Name: tt.name, Kind: KindFile}
			if got := it.Ext(); got != tt.ext {
				t.Errorf("Expected ext %q for %s, got %q", tt.ext, tt.name, got)
			}
		})
	}
}

func TestWalkOrder(t *testing.T) {
	child := &Item{Name: "inner.go", Kind: KindFile}
	folder := &Item{Name: "pkg", Kind: KindFolder, Children: []*Item{child}}
	child.Parent = folder
	forest := []*Item{
		folder,
		{Name: "main.go", Kind: KindFile},
	}

	var visited []string
	var depths []int
	Walk(forest, func(it *Item, depth int) {
		visited = append(visited, it.Name)
		depths = append(depths, depth)
	})

	wantNames := []string{"pkg", "inner.go", "main.go"}
	wantDepths := []int{0, 1, 0}
	for i := range wantNames {
		if visited[i] != wantNames[i] || depths[i] != wantDepths[i] {
			t.Errorf("visit %d: expected (%s,%d), got (%s,%d)",
				i, wantNames[i], wantDepths[i], visited[i], depths[i])
		}
	}

	if child.Depth() != 1 {
		t.Errorf("Expected depth 1 for nested item, got %d", child.Depth())
	}
}
