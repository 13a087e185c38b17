package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/ebay-catalog-importer/internal/api/client"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

func lookupCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Look up a page of the seller's listings (uses quota)",
		Example: `  cimp lookup
  cimp lookup --limit 100 --offset 100 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().Lookup(cmd.Context(), limit, offset)
			if err != nil {
				return quotaHint(err)
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), resp)
			}
			return printLookupTable(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "listings per page (1-200)")
	cmd.Flags().IntVar(&offset, "offset", 0, "listings to skip")
	return cmd
}

func importsCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "imports",
		Short: "Start and follow catalog imports",
		Long: "Start a bulk import of every listing of the shop's eBay seller and\n" +
			"follow its page-by-page progress.",
	}

	root.AddCommand(
		importsStartCmd(),
		importsListCmd(),
		importsGetCmd(),
	)

	return root
}

func importsStartCmd() *cobra.Command {
	var rawOptions string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Queue an import of the seller's listings (uses quota)",
		Example: `  cimp imports start
  cimp imports start --options '{"strategy":"merge"}'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts domain.ImportOptions
			if rawOptions != "" {
				if err := json.Unmarshal([]byte(rawOptions), &opts); err != nil {
					return fmt.Errorf("parsing --options: %w", err)
				}
			}

			resp, err := newClient().StartImport(cmd.Context(), opts)
			if err != nil {
				return quotaHint(err)
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), resp)
			}

			out := cmd.OutOrStdout()
			if resp.JobID == "" {
				fmt.Fprintln(out, resp.Message)
				return nil
			}
			fmt.Fprintf(out, "Import %s queued: %d items", resp.JobID, resp.TotalItems)
			if resp.ETA != nil {
				fmt.Fprintf(out, ", done %s", untilNow(*resp.ETA))
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&rawOptions, "options", "", "import options as a JSON object")
	return cmd
}

func importsListCmd() *cobra.Command {
	params := &apiclient.ListImportsParams{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the shop's imports, newest first",
		Example: `  cimp imports list
  cimp imports list --status failed`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().ListImports(cmd.Context(), params)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), resp)
			}
			if len(resp.Jobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No imports found.")
				return nil
			}
			return printImportsTable(cmd.OutOrStdout(), resp.Jobs)
		},
	}
	cmd.Flags().StringVar(&params.Status, "status", "", "filter by status (queued, running, completed, partially_failed, failed)")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "max results (server default 50)")
	cmd.Flags().IntVar(&params.Offset, "offset", 0, "results to skip")
	return cmd
}

func importsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <job-id>",
		Short: "Show an import's progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := newClient().GetImport(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), job)
			}
			return printImportDetail(cmd.OutOrStdout(), job)
		},
	}
}

func quotaHint(err error) error {
	if apiclient.IsQuotaExceeded(err) {
		return fmt.Errorf("%w (see `cimp quota`)", err)
	}
	return err
}
