package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var cacheInfoCmd = &cobra.Command{
	Use:   "cache-info",
	Short: "Show what the local cache holds and when it expires.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		finder, cfg, closeFn, err := newFinder(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		entries, err := finder.CacheInfo(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Cache (%s) is empty.\n", cfg.CacheBackend)
			return nil
		}

		now := time.Now()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tBYTES\tCREATED\tEXPIRES\tSTATUS")
		for _, e := range entries {
			status := "fresh"
			if e.Expired(now) {
				status = "expired"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", e.Key, e.Size, formatTime(e.CreatedAt), formatTime(e.ExpiresAt), status)
		}
		return w.Flush()
	},
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.RFC3339)
}

func init() {
	rootCmd.AddCommand(cacheInfoCmd)
}
