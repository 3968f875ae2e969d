package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turnoswap/turnoswap/pkg/core/services"
)

// AcceptSwapCmd creates the acceptSwap command
func AcceptSwapCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "acceptSwap",
		Short: "Record a participant's acceptance of a swap request",
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, _ := cmd.Flags().GetString("request")
			staffSlotID, _ := cmd.Flags().GetString("slot")

			result, err := services.AcceptSwap(app.Ctx, app.Database, app.Logger, requestID, staffSlotID)
			if err != nil {
				return fmt.Errorf("accept failed: %w", err)
			}

			fmt.Printf("\n✅ Acceptance recorded for request %s\n", result.Request.ID)
			if result.ReadyForSupervisor {
				fmt.Println("All participants have accepted - awaiting supervisor approval.")
			} else {
				fmt.Println("Waiting for remaining participants.")
			}
			return nil
		},
	}

	cmd.Flags().String("request", "", "Swap request ID (required)")
	cmd.Flags().String("slot", "", "Accepting staff slot ID (required)")
	cmd.MarkFlagRequired("request")
	cmd.MarkFlagRequired("slot")

	return cmd
}
