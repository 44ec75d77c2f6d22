package cmd

import (
	"context"
	"fmt"
	"time"

	"threadjuice/internal/redisclient"
	"threadjuice/internal/storage"

	"github.com/spf13/cobra"
)

var (
	storiesCategory string
	storiesLimit    int
)

// storiesCmd lists recently ingested stories.
var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "List recent stories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		stories, err := store.RecentStories(ctx, storiesCategory, storiesLimit)
		if err != nil {
			return err
		}
		if len(stories) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no stories found")
			return nil
		}
		for _, s := range stories {
			fmt.Fprintf(cmd.OutOrStdout(), "%-9s  %-14s  %-22s  %s\n", s.Status, s.Category, s.Persona, s.Slug)
		}
		return nil
	},
}

func init() {
	storiesCmd.Flags().StringVar(&storiesCategory, "category", "", "filter by category")
	storiesCmd.Flags().IntVar(&storiesLimit, "limit", 20, "maximum stories to list")
	rootCmd.AddCommand(storiesCmd)
}
