package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turnoswap/turnoswap/pkg/core/services"
)

// SettleDebtCmd creates the settleDebt command
func SettleDebtCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settleDebt",
		Short: "Mark a turn debt as repaid",
		RunE: func(cmd *cobra.Command, args []string) error {
			debtID, _ := cmd.Flags().GetString("debt")

			if err := services.SettleDebt(app.Ctx, app.Database, app.Logger, debtID); err != nil {
				return fmt.Errorf("settlement failed: %w", err)
			}

			fmt.Printf("\n✅ Debt %s settled\n", debtID)
			return nil
		},
	}

	cmd.Flags().String("debt", "", "Turn debt ID (required)")
	cmd.MarkFlagRequired("debt")

	return cmd
}
