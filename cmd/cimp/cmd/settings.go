package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func settingsCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the shop's eBay seller",
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Show the shop's settings",
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, err := newClient().GetSettings(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), s)
				}
				tw := newTabWriter(cmd.OutOrStdout())
				seller := s.EbaySellerUsername
				if !s.Configured {
					seller = "(not configured)"
				}
				tw.writef("eBay seller:\t%s\n", seller)
				tw.writef("Plan:\t%s\n", s.Plan)
				return tw.finish()
			},
		},
		&cobra.Command{
			Use:     "set-seller <username>",
			Short:   "Set the eBay seller to import from",
			Args:    cobra.ExactArgs(1),
			Example: `  cimp settings set-seller acme-surplus --shop acme.myshopify.com`,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := newClient().SaveSettings(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "eBay seller set to %q.\n", args[0])
				return nil
			},
		},
	)

	return root
}
