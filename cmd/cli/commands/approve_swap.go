package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turnoswap/turnoswap/pkg/core/services"
)

// ApproveSwapCmd creates the approveSwap command
func ApproveSwapCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approveSwap",
		Short: "Approve a swap request awaiting supervisor sign-off",
		Long:  "Finalize a swap request: re-validate it against current schedules, reassign the shifts, record turn debts and append a history entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, _ := cmd.Flags().GetString("request")
			approver, _ := cmd.Flags().GetString("approver")

			result, err := services.ApproveSwap(app.Ctx, app.Database, app.Cfg, app.Logger, requestID, approver)
			if err != nil {
				if errors.Is(err, services.ErrSwapNoLongerValid) {
					fmt.Printf("\n🚫 Swap can no longer be applied: %v\n", err)
					fmt.Println("Reject the request instead; schedules have changed since it was proposed.")
					return nil
				}
				return fmt.Errorf("approval failed: %w", err)
			}

			fmt.Printf("\n✅ Swap request %s approved\n", result.Request.ID)
			fmt.Printf("Shifts reassigned: %d\n", result.ShiftsSwapped)
			fmt.Printf("Debts recorded:    %d\n", result.DebtsCreated)
			return nil
		},
	}

	cmd.Flags().String("request", "", "Swap request ID (required)")
	cmd.Flags().String("approver", "", "Approving supervisor (required)")
	cmd.MarkFlagRequired("request")
	cmd.MarkFlagRequired("approver")

	return cmd
}
