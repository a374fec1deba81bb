package cmd

import (
	"github.com/spf13/cobra"
)

var updateCacheCmd = &cobra.Command{
	Use:   "update-cache",
	Short: "Force the local cache to be updated.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		finder, _, closeFn, err := newFinder(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		group, err := finder.UpdateCache(cmd.Context())
		if err != nil {
			return err
		}
		cmd.PrintErrf("Cached %d repositories.\n", group.Count())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCacheCmd)
}
