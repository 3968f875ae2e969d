package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/turnoswap/turnoswap/internal/config"
	"github.com/turnoswap/turnoswap/internal/metrics"
	"github.com/turnoswap/turnoswap/pkg/core/matching"
	"github.com/turnoswap/turnoswap/pkg/core/model"
	"github.com/turnoswap/turnoswap/pkg/db"
)

// FindMatchesStore defines the database operations needed for a matching run
type FindMatchesStore interface {
	GetShifts(ctx context.Context, plantID, monthKey string) ([]db.Shift, error)
	GetShiftTypes(ctx context.Context, plantID string) ([]db.ShiftType, error)
	GetStaffSlots(ctx context.Context, plantID string) ([]db.StaffSlot, error)
	GetPreferences(ctx context.Context, plantID, monthKey string) ([]db.Preference, error)
	GetPreferenceEntries(ctx context.Context, preferenceIDs []string) ([]db.PreferenceEntry, error)
	InsertSwapRequests(ctx context.Context, requests []db.SwapRequest, participants []db.SwapParticipant, moves []db.SwapMove) error
}

// FindMatchesResult contains the matching run results
type FindMatchesResult struct {
	PlantID    string
	MonthKey   string
	Mode       model.MatchMode
	Candidates []matching.Candidate
	Skipped    []matching.SkippedWant
	Vetoed     int
	Persisted  int
}

// FindMatches loads the plant-month snapshot, runs the matching engine and
// persists the top-ranked candidates as pending swap requests.
// If dryRun is true, candidates are not saved to the database.
func FindMatches(
	ctx context.Context,
	store FindMatchesStore,
	cfg *config.Config,
	logger *zap.Logger,
	plantID, monthKey string,
	mode model.MatchMode,
	requestedBy string,
	dryRun bool,
) (*FindMatchesResult, error) {
	logger.Debug("Starting findMatches",
		zap.String("plant_id", plantID),
		zap.String("month_key", monthKey),
		zap.String("mode", string(mode)),
		zap.Bool("dry_run", dryRun))

	if !mode.IsValid() {
		return nil, fmt.Errorf("invalid match mode %q", mode)
	}

	// Step 1: load the snapshot
	shiftRecords, err := store.GetShifts(ctx, plantID, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}
	logger.Debug("Found shifts", zap.Int("count", len(shiftRecords)))

	typeRecords, err := store.GetShiftTypes(ctx, plantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift types: %w", err)
	}

	slotRecords, err := store.GetStaffSlots(ctx, plantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff slots: %w", err)
	}
	logger.Debug("Found staff slots", zap.Int("count", len(slotRecords)))

	prefRecords, err := store.GetPreferences(ctx, plantID, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preferences: %w", err)
	}
	if len(prefRecords) == 0 {
		return nil, fmt.Errorf("no preferences submitted for plant %s in %s", plantID, monthKey)
	}

	prefIDs := make([]string, len(prefRecords))
	for i, p := range prefRecords {
		prefIDs[i] = p.ID
	}
	entryRecords, err := store.GetPreferenceEntries(ctx, prefIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preference entries: %w", err)
	}
	logger.Debug("Found preferences",
		zap.Int("count", len(prefRecords)),
		zap.Int("entries", len(entryRecords)))

	// Step 2: expand configured holiday rules over the month
	from, to, err := monthRange(monthKey)
	if err != nil {
		return nil, fmt.Errorf("invalid month key %q: %w", monthKey, err)
	}
	holidays, err := cfg.HolidayDates(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to expand holiday rules: %w", err)
	}
	logger.Debug("Expanded holidays", zap.Int("count", len(holidays)))

	// Step 3: run the matching engine on the immutable snapshot
	snapshot := matching.Snapshot{
		PlantID:        plantID,
		MonthKey:       monthKey,
		Shifts:         toModelShifts(shiftRecords, typeRecords, holidays),
		ShiftTypes:     toModelShiftTypes(typeRecords),
		Preferences:    toModelPreferences(prefRecords, entryRecords),
		StaffSlots:     toModelStaffSlots(slotRecords),
		Mode:           mode,
		RequestedBy:    requestedBy,
		Now:            time.Now().UTC(),
		NightMarkers:   cfg.NightShiftMarkers,
		MaxConsecutive: cfg.MaxConsecutiveShifts,
	}

	logger.Info("Running matching engine")
	outcome := matching.FindMatches(snapshot)

	logger.Info("Matching completed",
		zap.Int("candidates", len(outcome.Candidates)),
		zap.Int("skipped_wants", len(outcome.Skipped)),
		zap.Int("rule_vetoes", outcome.Vetoed))

	for _, skipped := range outcome.Skipped {
		// Tolerated (stale snapshots are expected) but surfaced: a steady
		// stream of these usually means preference data is out of sync
		logger.Warn("Skipped preference want",
			zap.String("staff_slot_id", skipped.StaffSlotID),
			zap.String("date", skipped.Want.Date),
			zap.String("shift_type_id", skipped.Want.ShiftTypeID),
			zap.String("reason", string(skipped.Reason)))
		metrics.SkippedWants.WithLabelValues(string(skipped.Reason)).Inc()
	}
	for _, candidate := range outcome.Candidates {
		metrics.MatchCandidates.WithLabelValues(string(candidate.Request.Type)).Inc()
	}
	metrics.RuleVetoes.Add(float64(outcome.Vetoed))

	result := &FindMatchesResult{
		PlantID:    plantID,
		MonthKey:   monthKey,
		Mode:       mode,
		Candidates: outcome.Candidates,
		Skipped:    outcome.Skipped,
		Vetoed:     outcome.Vetoed,
	}

	// Step 4: persist the top candidates
	toPersist := outcome.Candidates
	if len(toPersist) > cfg.MaxCandidates {
		toPersist = toPersist[:cfg.MaxCandidates]
	}

	if dryRun {
		logger.Info("Dry run mode - candidates not saved")
		return result, nil
	}
	if len(toPersist) == 0 {
		logger.Info("No candidates to save")
		return result, nil
	}

	requests, participants, moves := buildCandidateRecords(toPersist)
	if err := store.InsertSwapRequests(ctx, requests, participants, moves); err != nil {
		return nil, fmt.Errorf("failed to save swap requests: %w", err)
	}
	result.Persisted = len(requests)
	logger.Info("Swap requests saved", zap.Int("count", len(requests)))

	return result, nil
}

// buildCandidateRecords assigns ids and flattens candidates into store
// records. A candidate's debts are advisory at this point and are not
// persisted; the ledger entries are generated when the request is approved.
func buildCandidateRecords(candidates []matching.Candidate) ([]db.SwapRequest, []db.SwapParticipant, []db.SwapMove) {
	var requests []db.SwapRequest
	var participants []db.SwapParticipant
	var moves []db.SwapMove

	for _, candidate := range candidates {
		req := candidate.Request
		requestID := uuid.NewString()

		requests = append(requests, db.SwapRequest{
			ID:        requestID,
			PlantID:   req.PlantID,
			Type:      string(req.Type),
			Status:    string(req.Status),
			Mode:      string(req.Mode),
			CreatedBy: req.CreatedBy,
			CreatedAt: req.CreatedAt,
			UpdatedAt: req.UpdatedAt,
		})
		for _, p := range req.Participants {
			participants = append(participants, db.SwapParticipant{
				ID:            uuid.NewString(),
				SwapRequestID: requestID,
				StaffSlotID:   p.StaffSlotID,
				Role:          string(p.Role),
				Accepted:      p.Accepted,
			})
		}
		for _, m := range req.Moves {
			moves = append(moves, db.SwapMove{
				ID:              uuid.NewString(),
				SwapRequestID:   requestID,
				ShiftID:         m.ShiftID,
				FromStaffSlotID: m.FromStaffSlotID,
				ToStaffSlotID:   m.ToStaffSlotID,
			})
		}
	}

	return requests, participants, moves
}
