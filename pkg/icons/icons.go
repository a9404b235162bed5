package icons

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mattsolo1/grove-explorer/pkg/models"
)

// Folder glyphs follow the open flag; files are keyed off their extension.
const (
	FolderClosed = "▸"
	FolderOpen   = "▾"
	DefaultFile  = "▢"
)

// byExtension is the enumerated extension-to-glyph table. Anything not
// listed falls back to DefaultFile.
var byExtension = map[string]string{
	".go":   "◆",
	".mod":  "◆",
	".sum":  "◆",
	".js":   "◈",
	".jsx":  "◈",
	".ts":   "◈",
	".tsx":  "◈",
	".py":   "◉",
	".rs":   "◉",
	".rb":   "◉",
	".c":    "◇",
	".h":    "◇",
	".cpp":  "◇",
	".java": "◇",
	".md":   "≡",
	".txt":  "≡",
	".rst":  "≡",
	".json": "{}",
	".yml":  "{}",
	".yaml": "{}",
	".toml": "{}",
	".xml":  "{}",
	".html": "<>",
	".css":  "<>",
	".sh":   "$",
	".bash": "$",
	".zsh":  "$",
	".sql":  "⊟",
	".db":   "⊟",
	".png":  "▣",
	".jpg":  "▣",
	".jpeg": "▣",
	".gif":  "▣",
	".svg":  "▣",
	".lock": "⊠",
	".zip":  "⊠",
	".gz":   "⊠",
	".tar":  "⊠",
}

// For returns the display glyph for an item.
func For(it *models.Item) string {
	if it.IsFolder() {
		if it.Open {
			return FolderOpen
		}
		return FolderClosed
	}
	if glyph, ok := byExtension[it.Ext()]; ok {
		return glyph
	}
	return DefaultFile
}

var titleCaser = cases.Title(language.English)

// KindLabel returns a display label for an item kind ("File", "Folder").
func KindLabel(kind models.ItemKind) string {
	return titleCaser.String(string(kind))
}
