package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func quotaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Show the shop's quota",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := newClient().GetQuota(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), q)
			}
			tw := newTabWriter(cmd.OutOrStdout())
			tw.writef("Plan:\t%s\n", q.Plan)
			tw.writef("Used:\t%d/%d\n", q.Used, q.Limit)
			tw.writef("Remaining:\t%d\n", q.Remaining)
			tw.writef("Resets:\t%s (%s)\n", q.ResetAt.Format(timeFormat), untilNow(q.ResetAt))
			return tw.finish()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ebay",
		Short: "Show the application-wide eBay API budget",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := newClient().GetEbayQuota(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), q)
			}
			tw := newTabWriter(cmd.OutOrStdout())
			tw.writef("Local:\t%d/%d used, %d remaining, resets %s\n",
				q.Local.DailyUsed, q.Local.DailyLimit, q.Local.Remaining, q.Local.ResetAt.Format(timeFormat))
			switch {
			case q.Browse != nil:
				tw.writef("eBay Browse:\t%d/%d used, %d remaining, resets %s\n",
					q.Browse.Count, q.Browse.Limit, q.Browse.Remaining, q.Browse.ResetAt.Format(timeFormat))
			case q.BrowseError != "":
				tw.writef("eBay Browse:\tunavailable (%s)\n", q.BrowseError)
			}
			return tw.finish()
		},
	})

	return cmd
}

func schedulerCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "scheduler",
		Short: "Inspect and trigger maintenance tasks",
		Long: "View the history of scheduled maintenance tasks (quota_window_sweep,\n" +
			"stuck_job_reaper, queue_cleanup) or run one now.",
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List latest run per task",
			RunE: func(cmd *cobra.Command, _ []string) error {
				runs, err := newClient().ListSchedulerRuns(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), runs)
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No task runs found.")
					return nil
				}
				return printJobRunsTable(cmd.OutOrStdout(), runs)
			},
		},
		&cobra.Command{
			Use:   "history <task>",
			Short: "Show run history for a task",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				runs, err := newClient().GetSchedulerHistory(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), runs)
				}
				if len(runs) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No runs found for task %q.\n", args[0])
					return nil
				}
				return printJobRunsTable(cmd.OutOrStdout(), runs)
			},
		},
		&cobra.Command{
			Use:     "run <task>",
			Short:   "Run a task now and wait for it",
			Args:    cobra.ExactArgs(1),
			Example: `  cimp scheduler run stuck_job_reaper`,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := newClient().RunSchedulerTask(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s completed.\n", args[0])
				return nil
			},
		},
	)

	return root
}
