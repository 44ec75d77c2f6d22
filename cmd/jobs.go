package cmd

import (
	"context"
	"fmt"
	"time"

	"threadjuice/internal/ingest"
	"threadjuice/internal/redisclient"
	"threadjuice/internal/storage"

	"github.com/spf13/cobra"
)

// jobsCmd lists recorded ingestion jobs.
var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List ingestion jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := &ingest.RedisJobStore{Store: storage.NewRedisStore(rdb)}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		jobs, err := store.List(ctx)
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no jobs recorded")
			return nil
		}
		for _, j := range jobs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s  processed=%-3d created=%-3d  %s\n",
				j.ID, j.Status, j.PostsProcessed, j.PostsCreated, j.StartedAt.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
}
