package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	grovelogging "github.com/mattsolo1/grove-core/logging"

	"github.com/mattsolo1/grove-explorer/cmd/config"
	"github.com/mattsolo1/grove-explorer/pkg/search"
	"github.com/mattsolo1/grove-explorer/pkg/vfs"
)

var searchUlog = grovelogging.NewUnifiedLogger("grove-explorer.cmd.search")

func NewSearchCmd(store **vfs.Store) *cobra.Command {
	var (
		searchContent bool
		searchLimit   int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the workspace",
		Long: `Search for files and folders matching the query.

By default the query matches item names, case-insensitively. With --content
the query runs against the content index instead (build it with xp index).

Examples:
  xp search readme              # Name search in the workspace
  xp search "TODO" --content    # Full-text search over indexed files`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *store
			query := strings.Join(args, " ")

			if searchContent {
				return runContentSearch(s, query, searchLimit)
			}

			results := s.Search(query)
			if len(results) > searchLimit {
				results = results[:searchLimit]
			}

			if len(results) == 0 {
				searchUlog.Info("No results found").
					Field("query", query).
					Pretty("No results found").
					PrettyOnly().
					Emit()
				return nil
			}

			searchUlog.Info("Search results").
				Field("query", query).
				Field("result_count", len(results)).
				Pretty(fmt.Sprintf("Found %d results:\n", len(results))).
				PrettyOnly().
				Emit()

			for i, item := range results {
				var prettyStr strings.Builder
				prettyStr.WriteString(fmt.Sprintf("%d. %s\n", i+1, item.Name))
				prettyStr.WriteString(fmt.Sprintf("   %s\n", item.Path))

				searchUlog.Info("Search result").
					Field("query", query).
					Field("result_index", i+1).
					Field("name", item.Name).
					Field("path", item.Path).
					Field("kind", string(item.Kind)).
					Pretty(prettyStr.String()).
					PrettyOnly().
					Emit()
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&searchContent, "content", false, "Search file contents via the index")
	cmd.Flags().IntVar(&searchLimit, "limit", 50, "Maximum results")

	return cmd
}

func runContentSearch(s *vfs.Store, query string, limit int) error {
	indexPath, err := config.IndexPath(s.Root())
	if err != nil {
		return fmt.Errorf("locate content index: %w", err)
	}
	index, err := search.NewIndex(indexPath)
	if err != nil {
		return fmt.Errorf("open content index: %w", err)
	}
	defer index.Close()

	results, err := index.Search(query, limit)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		searchUlog.Info("No results found").
			Field("query", query).
			Pretty("No results found. Is the index current? Run xp index.").
			PrettyOnly().
			Emit()
		return nil
	}

	searchUlog.Info("Content search results").
		Field("query", query).
		Field("result_count", len(results)).
		Pretty(fmt.Sprintf("Found %d results:\n", len(results))).
		PrettyOnly().
		Emit()

	for i, result := range results {
		var prettyStr strings.Builder
		prettyStr.WriteString(fmt.Sprintf("%d. %s\n", i+1, result.Name))
		prettyStr.WriteString(fmt.Sprintf("   %s\n", result.Path))
		if result.Snippet != "" {
			prettyStr.WriteString(fmt.Sprintf("   %s\n", result.Snippet))
		}

		searchUlog.Info("Content search result").
			Field("query", query).
			Field("result_index", i+1).
			Field("name", result.Name).
			Field("path", result.Path).
			Pretty(prettyStr.String()).
			PrettyOnly().
			Emit()
	}

	return nil
}
