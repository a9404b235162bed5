package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	grovelogging "github.com/mattsolo1/grove-core/logging"

	"github.com/mattsolo1/grove-explorer/pkg/icons"
	"github.com/mattsolo1/grove-explorer/pkg/models"
	"github.com/mattsolo1/grove-explorer/pkg/vfs"
)

var treeUlog = grovelogging.NewUnifiedLogger("grove-explorer.cmd.tree")

// NewTreeCmd creates the `xp tree` command.
func NewTreeCmd(store **vfs.Store) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the workspace tree",
		Long:  "Print the workspace's file tree, folders first, the way the TUI displays it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *store

			if jsonOutput {
				data, err := json.MarshalIndent(s.Items(), "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal tree to JSON: %w", err)
				}
				treeUlog.Info("Workspace tree").
					Field("root", s.Root()).
					Pretty(string(data)).
					PrettyOnly().
					Emit()
				return nil
			}

			var b strings.Builder
			b.WriteString(s.Root())
			b.WriteString("\n")
			count := 0
			models.Walk(s.Items(), func(it *models.Item, depth int) {
				count++
				glyph := icons.For(it)
				if it.IsFolder() {
					glyph = icons.FolderOpen
				}
				b.WriteString(fmt.Sprintf("%s%s %s\n", strings.Repeat("  ", depth+1), glyph, it.Name))
			})

			treeUlog.Info("Workspace tree").
				Field("root", s.Root()).
				Field("item_count", count).
				Pretty(b.String()).
				PrettyOnly().
				Emit()
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the tree as JSON")

	return cmd
}
