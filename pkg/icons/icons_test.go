package icons

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mattsolo1/grove-explorer/pkg/models"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"main.go", "◆"},
		{"index.ts", "◈"},
		{"notes.md", "≡"},
		{"config.yaml", "{}"},
		{"mystery.xyz", DefaultFile},
		{"Makefile", DefaultFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := &models.Item{Name: tt.name, Kind: models.KindFile}
			assert.Equal(t, tt.want, For(it))
		})
	}
}

func TestForFolder(t *testing.T) {
	folder := &models.Item{Name: "src", Kind: models.KindFolder}
	assert.Equal(t, FolderClosed, For(folder))

	folder.Open = true
	assert.Equal(t, FolderOpen, For(folder))
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "File", KindLabel(models.KindFile))
	assert.Equal(t, "Folder", KindLabel(models.KindFolder))
}
