// Package cmd implements the cimp CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/ebay-catalog-importer/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "cimp",
		Short: "CLI client for the eBay Catalog Importer",
		Long: "cimp is a command-line client for the eBay Catalog Importer API.\n" +
			"It acts as one shop: configure the eBay seller, look up listings,\n" +
			"start and follow imports, and inspect quota from the terminal.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $HOME/.cimp.yaml)")
	flags.String("server", "http://localhost:8080", "API server URL")
	flags.String("shop", "", "shop domain to act as (e.g. acme.myshopify.com)")
	flags.String("secret", "", "app API secret used to sign session tokens")
	flags.String("api-key", "", "app API key, sent as the token audience")
	flags.String("operator-token", "", "operator token for scheduler and eBay budget commands")
	flags.String("output", "table", "output format (table, json)")

	for _, name := range []string{"server", "shop", "secret", "api-key", "operator-token", "output"} {
		cobra.CheckErr(viper.BindPFlag(name, flags.Lookup(name)))
	}

	rootCmd.AddCommand(
		settingsCmd(),
		lookupCmd(),
		importsCmd(),
		quotaCmd(),
		schedulerCmd(),
	)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".cimp")
	}

	viper.SetEnvPrefix("CIMP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_")) // CIMP_API_KEY
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	var opts []apiclient.Option
	if secret := viper.GetString("secret"); secret != "" {
		opts = append(opts, apiclient.WithSession(secret, viper.GetString("shop"), viper.GetString("api-key")))
	}
	if token := viper.GetString("operator-token"); token != "" {
		opts = append(opts, apiclient.WithOperatorToken(token))
	}
	return apiclient.New(viper.GetString("server"), opts...)
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
