package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/ebay-catalog-importer/internal/store"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

func tenantCommand() *cobra.Command {
	tenantCmd := &cobra.Command{
		Use:   "tenant",
		Short: "Administer tenants",
	}

	tenantCmd.AddCommand(&cobra.Command{
		Use:   "set-plan <shop> <plan>",
		Short: "Change a tenant's plan tier (free, plus, pro)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			shop, plan := args[0], domain.PlanTier(args[1])
			if !plan.Valid() {
				return fmt.Errorf("unknown plan %q", plan)
			}

			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer s.Close()

			if err := s.SetTenantPlan(ctx, shop, plan); err != nil {
				return fmt.Errorf("setting plan: %w", err)
			}
			log.Info("plan updated", "shop", shop, "plan", plan)
			return nil
		},
	})

	return tenantCmd
}

func init() {
	rootCmd.AddCommand(tenantCommand())
}
