package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/turnoswap/turnoswap/internal/config"
	"github.com/turnoswap/turnoswap/internal/metrics"
	"github.com/turnoswap/turnoswap/pkg/core/fairness"
	"github.com/turnoswap/turnoswap/pkg/core/lifecycle"
	"github.com/turnoswap/turnoswap/pkg/core/model"
	"github.com/turnoswap/turnoswap/pkg/core/rules"
	"github.com/turnoswap/turnoswap/pkg/db"
)

// ErrSwapNoLongerValid is returned when approval is attempted but the swap no
// longer passes validation against the current schedules. Nothing is
// committed: partial application of an invalid swap is not a supported state.
var ErrSwapNoLongerValid = errors.New("swap request no longer passes validation")

// SwapLifecycleStore defines the database operations needed for swap request
// lifecycle transitions
type SwapLifecycleStore interface {
	GetSwapRequest(ctx context.Context, id string) (*db.SwapRequest, error)
	GetSwapParticipants(ctx context.Context, swapRequestID string) ([]db.SwapParticipant, error)
	GetSwapMoves(ctx context.Context, swapRequestID string) ([]db.SwapMove, error)
	GetTurnDebtsForRequest(ctx context.Context, swapRequestID string) ([]db.TurnDebt, error)
	GetShiftsByStaffSlots(ctx context.Context, plantID string, staffSlotIDs []string) ([]db.Shift, error)
	GetShiftTypes(ctx context.Context, plantID string) ([]db.ShiftType, error)
	GetStaffSlots(ctx context.Context, plantID string) ([]db.StaffSlot, error)
	UpdateSwapRequestStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	UpdateParticipantAccepted(ctx context.Context, swapRequestID, staffSlotID string) error
	MarkShiftsSwapped(ctx context.Context, moves []db.SwapMove) error
	InsertTurnDebts(ctx context.Context, debts []db.TurnDebt) error
	InsertHistoryEntry(ctx context.Context, entry db.HistoryEntry) error
}

// ApproveSwapResult contains the approval results
type ApproveSwapResult struct {
	Request       model.SwapRequest
	ShiftsSwapped int
	DebtsCreated  int
}

// ApproveSwap finalizes a swap request awaiting supervisor approval: the
// moved shifts are marked SWAPPED and reassigned, turn debts are generated
// and written to the ledger and an audit entry is appended.
//
// The swap is re-validated against the current schedules first; schedules may
// have changed since the candidate was generated, and an invalid swap must be
// rejected entirely rather than partially applied. Debts are generated here,
// from the same schedules the swap is applied to: pending and rejected
// requests own no turn_debt rows, and each obligation produces exactly one.
func ApproveSwap(
	ctx context.Context,
	store SwapLifecycleStore,
	cfg *config.Config,
	logger *zap.Logger,
	requestID, approvedBy string,
) (*ApproveSwapResult, error) {
	logger.Debug("Starting approveSwap",
		zap.String("request_id", requestID),
		zap.String("approved_by", approvedBy))

	request, err := loadSwapRequest(ctx, store, requestID)
	if err != nil {
		return nil, err
	}

	// Re-validate against the current schedules
	view, err := loadScheduleView(ctx, store, cfg, *request)
	if err != nil {
		return nil, err
	}
	if result := revalidateSwap(view, *request, cfg.MaxConsecutiveShifts); !result.Valid {
		logger.Warn("Swap request failed re-validation",
			zap.String("request_id", requestID),
			zap.String("reason", result.Reason))
		return nil, fmt.Errorf("%w: %s", ErrSwapNoLongerValid, result.Reason)
	}

	request.Debts = fairness.BuildDebts(request.Type, request.Moves, view.shiftsByID, view.labels, cfg.NightShiftMarkers)

	updated, effects, err := lifecycle.Approve(*request, approvedBy, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("cannot approve swap request %s: %w", requestID, err)
	}

	if err := store.UpdateSwapRequestStatus(ctx, updated.ID, string(updated.Status), updated.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to update swap request: %w", err)
	}

	dbMoves := make([]db.SwapMove, len(updated.Moves))
	for i, m := range updated.Moves {
		dbMoves[i] = db.SwapMove{
			SwapRequestID:   updated.ID,
			ShiftID:         m.ShiftID,
			FromStaffSlotID: m.FromStaffSlotID,
			ToStaffSlotID:   m.ToStaffSlotID,
		}
	}
	if err := store.MarkShiftsSwapped(ctx, dbMoves); err != nil {
		return nil, fmt.Errorf("failed to mark shifts swapped: %w", err)
	}

	dbDebts := make([]db.TurnDebt, len(effects.Debts))
	for i, debt := range effects.Debts {
		record := toDBTurnDebt(debt)
		record.ID = uuid.NewString()
		dbDebts[i] = record
	}
	if err := store.InsertTurnDebts(ctx, dbDebts); err != nil {
		return nil, fmt.Errorf("failed to insert turn debts: %w", err)
	}

	entry := effects.History
	if err := store.InsertHistoryEntry(ctx, db.HistoryEntry{
		ID:            uuid.NewString(),
		PlantID:       entry.PlantID,
		SwapRequestID: entry.SwapRequestID,
		Action:        entry.Action,
		Actor:         entry.Actor,
		Details:       entry.Details,
		OccurredAt:    entry.OccurredAt,
	}); err != nil {
		return nil, fmt.Errorf("failed to insert history entry: %w", err)
	}

	metrics.SwapTransitions.WithLabelValues(string(updated.Status)).Inc()
	logger.Info("Swap request approved",
		zap.String("request_id", updated.ID),
		zap.Int("shifts_swapped", len(updated.Moves)),
		zap.Int("debts_created", len(dbDebts)))

	return &ApproveSwapResult{
		Request:       updated,
		ShiftsSwapped: len(updated.Moves),
		DebtsCreated:  len(dbDebts),
	}, nil
}

// loadSwapRequest assembles a full model request from its store records
func loadSwapRequest(ctx context.Context, store SwapLifecycleStore, requestID string) (*model.SwapRequest, error) {
	header, err := store.GetSwapRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch swap request: %w", err)
	}
	participants, err := store.GetSwapParticipants(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch swap participants: %w", err)
	}
	moves, err := store.GetSwapMoves(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch swap moves: %w", err)
	}
	debts, err := store.GetTurnDebtsForRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch turn debts: %w", err)
	}

	request := toModelSwapRequest(*header, participants, moves, debts)
	return &request, nil
}

// scheduleView is the current state of the schedules a swap request touches
type scheduleView struct {
	shifts     []model.Shift
	shiftsByID map[string]model.Shift
	labels     map[string]string
	slots      []model.StaffSlot
}

// loadScheduleView fetches the current schedules of every staff slot touched
// by the request's moves, with configured holidays applied over the loaded
// date range
func loadScheduleView(ctx context.Context, store SwapLifecycleStore, cfg *config.Config, request model.SwapRequest) (*scheduleView, error) {
	var slotIDs []string
	seen := make(map[string]bool)
	for _, m := range request.Moves {
		for _, id := range []string{m.FromStaffSlotID, m.ToStaffSlotID} {
			if !seen[id] {
				seen[id] = true
				slotIDs = append(slotIDs, id)
			}
		}
	}

	shiftRecords, err := store.GetShiftsByStaffSlots(ctx, request.PlantID, slotIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts for validation: %w", err)
	}
	typeRecords, err := store.GetShiftTypes(ctx, request.PlantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift types: %w", err)
	}
	slotRecords, err := store.GetStaffSlots(ctx, request.PlantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff slots: %w", err)
	}

	holidays, err := holidaysOverRecords(cfg, shiftRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to expand holiday rules: %w", err)
	}

	shifts := toModelShifts(shiftRecords, typeRecords, holidays)
	shiftsByID := make(map[string]model.Shift, len(shifts))
	for _, s := range shifts {
		shiftsByID[s.ID] = s
	}

	namesByTypeID := make(map[string]string, len(typeRecords))
	for _, t := range typeRecords {
		namesByTypeID[t.ID] = t.Name
	}
	labels := make(map[string]string, len(shifts))
	for _, s := range shifts {
		labels[s.ID] = namesByTypeID[s.ShiftTypeID]
	}

	return &scheduleView{
		shifts:     shifts,
		shiftsByID: shiftsByID,
		labels:     labels,
		slots:      toModelStaffSlots(slotRecords),
	}, nil
}

// holidaysOverRecords expands the configured holiday rules across the date
// range covered by the given shift records
func holidaysOverRecords(cfg *config.Config, records []db.Shift) (map[string]bool, error) {
	if len(records) == 0 {
		return nil, nil
	}
	minDate, maxDate := records[0].Date, records[0].Date
	for _, r := range records[1:] {
		if r.Date < minDate {
			minDate = r.Date
		}
		if r.Date > maxDate {
			maxDate = r.Date
		}
	}
	from, err := model.ParseDate(minDate)
	if err != nil {
		return nil, err
	}
	to, err := model.ParseDate(maxDate)
	if err != nil {
		return nil, err
	}
	return cfg.HolidayDates(from, to)
}

// revalidateSwap replays the request's moves against the current schedules
func revalidateSwap(view *scheduleView, request model.SwapRequest, maxConsecutive int) rules.ValidationResult {
	proposed := make([]model.Shift, 0, len(request.Moves))
	for _, m := range request.Moves {
		shift, ok := view.shiftsByID[m.ShiftID]
		if !ok {
			return rules.Invalid("shift %s referenced by the swap no longer exists", m.ShiftID)
		}
		shift.StaffSlotID = m.ToStaffSlotID
		proposed = append(proposed, shift)
	}
	return rules.ValidateSwap(view.shifts, proposed, view.slots, maxConsecutive)
}
