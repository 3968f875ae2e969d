package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/turnoswap/turnoswap/pkg/core/model"
	"github.com/turnoswap/turnoswap/pkg/core/services"
)

// FindMatchesCmd creates the findMatches command
func FindMatchesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "findMatches",
		Short: "Find swap candidates from submitted preferences",
		Long:  "Run the matching engine over a plant-month's shifts and preferences and save the top-ranked swap candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			plantID, _ := cmd.Flags().GetString("plant")
			monthKey, _ := cmd.Flags().GetString("month")
			modeFlag, _ := cmd.Flags().GetString("mode")
			requestedBy, _ := cmd.Flags().GetString("requested-by")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			if modeFlag == "" {
				modeFlag = app.Cfg.DefaultMode
			}
			mode := model.MatchMode(strings.ToUpper(modeFlag))

			app.Logger.Debug("findMatches command",
				zap.String("plant", plantID),
				zap.String("month", monthKey),
				zap.String("mode", string(mode)),
				zap.Bool("dry_run", dryRun))

			result, err := services.FindMatches(
				app.Ctx,
				app.Database,
				app.Cfg,
				app.Logger,
				plantID,
				monthKey,
				mode,
				requestedBy,
				dryRun,
			)
			if err != nil {
				return fmt.Errorf("matching failed: %w", err)
			}

			fmt.Printf("\n🔄 Swap Matching Results\n\n")
			fmt.Printf("Plant:      %s\n", result.PlantID)
			fmt.Printf("Month:      %s\n", result.MonthKey)
			fmt.Printf("Mode:       %s\n", result.Mode)
			if dryRun {
				fmt.Printf("Status:     🧪 DRY RUN (not saved)\n")
			} else {
				fmt.Printf("Status:     ✅ %d candidate(s) saved\n", result.Persisted)
			}
			fmt.Println()

			if len(result.Skipped) > 0 {
				fmt.Printf("⚠️  Skipped wants (%d):\n", len(result.Skipped))
				for _, skipped := range result.Skipped {
					fmt.Printf("  • slot %s, %s (type %s): %s\n",
						skipped.StaffSlotID, skipped.Want.Date, skipped.Want.ShiftTypeID, skipped.Reason)
				}
				fmt.Println()
			}
			if result.Vetoed > 0 {
				fmt.Printf("🚫 %d pairing(s) vetoed by scheduling rules\n\n", result.Vetoed)
			}

			if len(result.Candidates) == 0 {
				fmt.Println("No swap candidates found.")
				return nil
			}

			fmt.Printf("📋 Candidates (ranked):\n\n")
			for i, candidate := range result.Candidates {
				req := candidate.Request
				fmt.Printf("%2d. [%3d] %s", i+1, candidate.Score, req.Type)
				for _, move := range req.Moves {
					fmt.Printf("  shift %s: %s → %s", move.ShiftID, move.FromStaffSlotID, move.ToStaffSlotID)
				}
				if len(req.Debts) > 0 {
					fmt.Printf("  (creates %d debt)", len(req.Debts))
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().String("plant", "", "Plant ID to match (required)")
	cmd.Flags().String("month", "", "Month key YYYY-MM (required)")
	cmd.Flags().String("mode", "", "Matching mode: STRICT or FLEXIBLE (default from config)")
	cmd.Flags().String("requested-by", "", "User recorded as creator of generated requests")
	cmd.Flags().Bool("dry-run", false, "Run matching without saving candidates")
	cmd.MarkFlagRequired("plant")
	cmd.MarkFlagRequired("month")

	return cmd
}
