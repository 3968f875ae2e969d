package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turnoswap/turnoswap/pkg/core/model"
)

// ListRequestsCmd creates the listRequests command
func ListRequestsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listRequests",
		Short: "List swap requests for a plant",
		RunE: func(cmd *cobra.Command, args []string) error {
			plantID, _ := cmd.Flags().GetString("plant")
			pendingOnly, _ := cmd.Flags().GetBool("pending")

			requests, err := app.Database.GetSwapRequests(app.Ctx, plantID)
			if err != nil {
				return fmt.Errorf("failed to list swap requests: %w", err)
			}

			fmt.Printf("\n📨 Swap Requests for plant %s\n\n", plantID)

			shown := 0
			for _, req := range requests {
				if pendingOnly && model.SwapStatus(req.Status).IsTerminal() {
					continue
				}
				fmt.Printf("%-36s  %-10s  %-20s  %s\n",
					req.ID, req.Type, req.Status, req.CreatedAt.Format("2006-01-02 15:04"))
				shown++
			}

			if shown == 0 {
				fmt.Println("No swap requests found.")
			}
			return nil
		},
	}

	cmd.Flags().String("plant", "", "Plant ID (required)")
	cmd.Flags().Bool("pending", false, "Only show non-terminal requests")
	cmd.MarkFlagRequired("plant")

	return cmd
}
