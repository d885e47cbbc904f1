package cmd

import (
	"github.com/abhisek/grammarquest/internal/config"
	"github.com/abhisek/grammarquest/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "grammarquest",
	Short:        "Grammar practice with unlockable tiers and achievements",
	Long:         "GrammarQuest: practise grammar topics, unlock harder tiers and collect achievements.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GRAMMARQUEST_DB env var)")
	rootCmd.PersistentFlags().StringP("user", "u", "learner", "Learner ID")

	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(tiersCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then GRAMMARQUEST_DB (env or .env), then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func userID(cmd *cobra.Command) string {
	u, _ := cmd.Flags().GetString("user")
	return u
}
