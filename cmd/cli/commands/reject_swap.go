package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turnoswap/turnoswap/pkg/core/services"
)

// RejectSwapCmd creates the rejectSwap command
func RejectSwapCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rejectSwap",
		Short: "Reject a pending swap request",
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, _ := cmd.Flags().GetString("request")
			rejectedBy, _ := cmd.Flags().GetString("rejected-by")

			result, err := services.RejectSwap(app.Ctx, app.Database, app.Logger, requestID, rejectedBy)
			if err != nil {
				return fmt.Errorf("rejection failed: %w", err)
			}

			fmt.Printf("\n❌ Swap request %s rejected\n", result.Request.ID)
			return nil
		},
	}

	cmd.Flags().String("request", "", "Swap request ID (required)")
	cmd.Flags().String("rejected-by", "", "User rejecting the request (required)")
	cmd.MarkFlagRequired("request")
	cmd.MarkFlagRequired("rejected-by")

	return cmd
}
