package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/ebay-catalog-importer/api/openapi"
	"github.com/donaldgifford/ebay-catalog-importer/internal/api"
	"github.com/donaldgifford/ebay-catalog-importer/internal/api/handlers"
)

func openapiCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document",
		Long:  "Print the OpenAPI document without connecting to any backing service.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, humaAPI := api.NewRouter(api.Deps{
				Version:  Version,
				Settings: handlers.NewSettingsHandler(nil, 0),
				Lookup:   handlers.NewLookupHandler(nil),
				Imports:  handlers.NewImportsHandler(nil, nil),
				Quota:    handlers.NewQuotaHandler(nil, nil, nil),
				Jobs:     handlers.NewJobsHandler(nil, nil),
			})
			return openapi.Write(cmd.OutOrStdout(), humaAPI, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", openapi.FormatJSON, "output format (json or yaml)")
	return cmd
}

func init() {
	rootCmd.AddCommand(openapiCommand())
}
