package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yourusername/mediagrab/api"
)

var (
	historyLimit int
	historyStats bool
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List registered platform keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cfgFile)
		if err != nil {
			return err
		}
		defer env.Close()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tPLATFORM")
		for _, key := range env.Registry.ListPlatforms() {
			name, _ := env.Registry.PlatformFor(key)
			fmt.Fprintf(w, "%s\t%s\n", key, name)
		}
		return w.Flush()
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past dispatches",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cfgFile)
		if err != nil {
			return err
		}
		defer env.Close()

		if env.History == nil {
			return fmt.Errorf("history is disabled in configuration")
		}

		if historyStats {
			stats, err := env.History.GetStats()
			if err != nil {
				return err
			}
			fmt.Printf("Total:     %d\n", stats.Total)
			fmt.Printf("Succeeded: %d\n", stats.Succeeded)
			fmt.Printf("Failed:    %d\n", stats.Failed)
			return nil
		}

		records, err := env.History.FindRecent(historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No dispatches recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tPLATFORM\tSTATE\tURL")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				r.CreatedAt.Format("2006-01-02 15:04"),
				r.Platform,
				r.State,
				truncate(r.URL, 60),
			)
		}
		return w.Flush()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mediagrab v%s\n", api.Version)
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of entries to show")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "Show aggregate counts instead of entries")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
