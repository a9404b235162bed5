package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-explorer/cmd/config"
	"github.com/mattsolo1/grove-explorer/internal/tui/explorer"
	"github.com/mattsolo1/grove-explorer/pkg/editor"
	"github.com/mattsolo1/grove-explorer/pkg/search"
	"github.com/mattsolo1/grove-explorer/pkg/vfs"
)

// NewTuiCmd creates the `xp tui` command.
func NewTuiCmd(store **vfs.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive file explorer",
		Long: `Launch an interactive Terminal User Interface for exploring the workspace.
Expand folders, open files into tabs, create, rename and delete items inline,
and search by name or content.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for TTY
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("TUI mode requires an interactive terminal")
			}

			s := *store

			// The content index and the watcher are both optional: the
			// explorer runs without grep and without live refresh when
			// either cannot be set up.
			var index *search.Index
			if indexPath, err := config.IndexPath(s.Root()); err == nil {
				if idx, err := search.NewIndex(indexPath); err == nil {
					index = idx
					defer index.Close()
				}
			}

			watcher, err := s.Watch()
			if err == nil {
				defer watcher.Close()
			}

			model := explorer.New(s, editor.New(), index, watcher)
			p := tea.NewProgram(model, tea.WithAltScreen())

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}

			return nil
		},
	}
	return cmd
}
