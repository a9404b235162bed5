package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	grovelogging "github.com/mattsolo1/grove-core/logging"

	"github.com/mattsolo1/grove-explorer/cmd/config"
	"github.com/mattsolo1/grove-explorer/pkg/search"
	"github.com/mattsolo1/grove-explorer/pkg/vfs"
)

var indexUlog = grovelogging.NewUnifiedLogger("grove-explorer.cmd.index")

// NewIndexCmd creates the `xp index` command.
func NewIndexCmd(store **vfs.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the content-search index",
		Long: `Rebuild the full-text index over the workspace's files.

The index backs xp search --content and the TUI's content search. Binary
files and files over 512KB are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *store

			indexPath, err := config.IndexPath(s.Root())
			if err != nil {
				return fmt.Errorf("locate content index: %w", err)
			}
			index, err := search.NewIndex(indexPath)
			if err != nil {
				return fmt.Errorf("open content index: %w", err)
			}
			defer index.Close()

			indexed, err := index.Rebuild(s.Items())
			if err != nil {
				return fmt.Errorf("rebuild index: %w", err)
			}

			indexUlog.Success("Index rebuilt").
				Field("root", s.Root()).
				Field("indexed_files", indexed).
				Field("index_path", indexPath).
				Pretty(fmt.Sprintf("Indexed %d files", indexed)).
				PrettyOnly().
				Emit()
			return nil
		},
	}
	return cmd
}
