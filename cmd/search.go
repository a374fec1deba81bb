package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-repo-search/internal/alfred"
	"github.com/naka-gawa/github-repo-search/internal/usecase"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search repositories",
	Long:  `Fuzzy-matches the query against your repository names and prints the matches as Alfred script filter JSON, best match first.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		finder, cfg, closeFn, err := newFinder(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		recreate, _ := cmd.Flags().GetBool("recreate_cache")
		suggestions, err := finder.Search(cmd.Context(), args[0], cfg.MinConfidence, recreate)
		if err != nil {
			return err
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			fmt.Fprintf(os.Stderr, "%q: %s\n", args[0], usecase.SummarizeConfidence(suggestions))
		}
		return alfred.Render(os.Stdout, suggestions)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().Bool("recreate_cache", false, "Recreate any existing cached records.")
	searchCmd.Flags().Int("min-confidence", usecase.DefaultMinConfidence, "Minimum match score (0-100) for a repository to be listed")
}
