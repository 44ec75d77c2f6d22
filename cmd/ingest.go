package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"threadjuice/internal/ingest"
	"threadjuice/internal/redisclient"

	"github.com/spf13/cobra"
)

var (
	ingestSubreddits []string
	ingestLimit      int
	ingestMinViral   float64
	ingestMaxAge     int
	ingestPublish    bool
	ingestWait       bool
	ingestSource     string
)

// ingestCmd starts one ingestion job from the command line, optionally
// polling it to completion.
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Start an ingestion job",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()

		app, err := buildApp(cfg, rdb, false)
		if err != nil {
			return err
		}
		if ingestSource != "" {
			if err := app.useSource(ingestSource); err != nil {
				return err
			}
		}

		jc := ingest.JobConfig{
			Subreddits:        cfg.Ingest.Subreddits,
			LimitPerSubreddit: cfg.Ingest.LimitPerSubreddit,
			MinViralScore:     cfg.Ingest.MinViralScore,
			MaxAgeHours:       cfg.Ingest.MaxAgeHours,
			AutoPublish:       cfg.Ingest.AutoPublish,
		}
		if len(ingestSubreddits) > 0 {
			jc.Subreddits = ingestSubreddits
		}
		if ingestLimit > 0 {
			jc.LimitPerSubreddit = ingestLimit
		}
		if ingestMinViral > 0 {
			jc.MinViralScore = ingestMinViral
		}
		if ingestMaxAge > 0 {
			jc.MaxAgeHours = ingestMaxAge
		}
		if ingestPublish {
			jc.AutoPublish = true
		}

		ctx := context.Background()
		job, err := app.service.StartIngestionJob(ctx, jc)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "started job %s (%s)\n", job.ID, job.Status)

		if !ingestWait {
			return nil
		}
		for {
			time.Sleep(2 * time.Second)
			j, err := app.service.GetJobStatus(ctx, job.ID)
			if err != nil {
				return err
			}
			if j == nil {
				return fmt.Errorf("job %s disappeared", job.ID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "status=%s processed=%d created=%d\n", j.Status, j.PostsProcessed, j.PostsCreated)
			if j.Status.Terminal() {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(j.Logs, "\n"))
				if j.ErrorMessage != "" {
					return fmt.Errorf("job failed: %s", j.ErrorMessage)
				}
				return nil
			}
		}
	},
}

func init() {
	ingestCmd.Flags().StringSliceVar(&ingestSubreddits, "subreddits", nil, "subreddits to ingest (default: config)")
	ingestCmd.Flags().IntVar(&ingestLimit, "limit", 0, "threads per subreddit (1-10)")
	ingestCmd.Flags().Float64Var(&ingestMinViral, "min-viral", 0, "minimum viral score (1-10)")
	ingestCmd.Flags().IntVar(&ingestMaxAge, "max-age", 0, "maximum thread age in hours (1-168)")
	ingestCmd.Flags().BoolVar(&ingestPublish, "publish", false, "publish stories instead of drafting")
	ingestCmd.Flags().BoolVar(&ingestWait, "wait", true, "poll the job until it finishes")
	ingestCmd.Flags().StringVar(&ingestSource, "source", "", "content source: reddit, twitter, or ai (default: reddit)")
	rootCmd.AddCommand(ingestCmd)
}
