// Command callouts is a terminal client with its own local collection of
// callouts and liked set. It never talks to the server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"callouts/internal/callouts"
	"callouts/internal/config"
	"callouts/internal/likes"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// localSession keys the single local user's liked set.
const localSession = "local"

var (
	home       string
	configPath string
	logger     = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

var rootCmd = &cobra.Command{
	Use:   "callouts",
	Short: "Browse and submit Character-Callouts from the terminal",
	Long: `callouts keeps a local collection of Character-Callouts: short public
recognitions of a person for one to three character traits.

The collection lives in $CALLOUTS_HOME/callouts.json (default ~/.callouts)
and your likes in likes.json next to it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&home, "home", "", "data directory (overrides CALLOUTS_HOME)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")

	rootCmd.AddCommand(listCmd, showCmd, submitCmd, likeCmd, wordsCmd, traitsCmd)
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env", "error", err)
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

// openService loads the local collection, seeding the samples on first use.
func openService(ctx context.Context) (*callouts.Service, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if home != "" {
		cfg.Client.Home = home
	}

	store, err := callouts.Open(ctx, callouts.NewFilePersister(cfg.ClientDataFile()), true)
	if err != nil {
		return nil, fmt.Errorf("open local callouts: %w", err)
	}
	return callouts.NewService(store, likes.NewFileSessions(cfg.ClientLikesFile()), nil, logger), nil
}
