// Package lifecycle implements the swap request state machine:
//
//	PENDING_USERS -> PENDING_SUPERVISOR -> APPROVED | REJECTED
//
// Requests enter at PENDING_USERS, advance to PENDING_SUPERVISOR once every
// participant has accepted, and end at APPROVED or REJECTED. Terminal states
// are immutable. All transitions are value-in/value-out: the input request is
// never mutated.
package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/turnoswap/turnoswap/pkg/core/model"
)

var (
	// ErrTerminalState is returned for any transition attempted on an
	// approved or rejected request
	ErrTerminalState = errors.New("swap request is in a terminal state")

	// ErrUnknownParticipant is returned when an acceptance names a staff
	// slot that is not part of the request
	ErrUnknownParticipant = errors.New("staff slot is not a participant of this swap request")

	// ErrNotReadyForApproval is returned when approval is attempted before
	// every participant has accepted
	ErrNotReadyForApproval = errors.New("swap request is not awaiting supervisor approval")
)

// History actions recorded on terminal transitions
const (
	ActionApproved = "SWAP_APPROVED"
	ActionRejected = "SWAP_REJECTED"
)

// ApprovalEffects are the side effects the surrounding application must apply
// when a request is approved: mark the moved shifts as swapped, persist the
// debt deltas and append the audit entry.
type ApprovalEffects struct {
	ShiftIDs []string
	Debts    []model.TurnDebt
	History  model.HistoryEntry
}

// Accept records that a participant agrees to the swap. Once every
// participant has accepted, the request advances to PENDING_SUPERVISOR.
func Accept(req model.SwapRequest, staffSlotID string, now time.Time) (model.SwapRequest, error) {
	if req.Status.IsTerminal() {
		return req, ErrTerminalState
	}

	updated := clone(req)
	found := false
	allAccepted := true
	for i, participant := range updated.Participants {
		if participant.StaffSlotID == staffSlotID {
			updated.Participants[i].Accepted = true
			found = true
		}
		if !updated.Participants[i].Accepted {
			allAccepted = false
		}
	}
	if !found {
		return req, fmt.Errorf("accept %s: %w", staffSlotID, ErrUnknownParticipant)
	}

	updated.Status = model.SwapPendingUsers
	if allAccepted {
		updated.Status = model.SwapPendingSupervisor
	}
	updated.UpdatedAt = now
	return updated, nil
}

// Approve finalizes a request awaiting supervisor approval and returns the
// side effects the caller must apply. Only callable from PENDING_SUPERVISOR.
func Approve(req model.SwapRequest, approvedBy string, now time.Time) (model.SwapRequest, ApprovalEffects, error) {
	if req.Status.IsTerminal() {
		return req, ApprovalEffects{}, ErrTerminalState
	}
	if req.Status != model.SwapPendingSupervisor {
		return req, ApprovalEffects{}, ErrNotReadyForApproval
	}

	updated := clone(req)
	updated.Status = model.SwapApproved
	updated.UpdatedAt = now

	shiftIDs := make([]string, len(updated.Moves))
	for i, move := range updated.Moves {
		shiftIDs[i] = move.ShiftID
	}

	debts := make([]model.TurnDebt, len(updated.Debts))
	copy(debts, updated.Debts)
	for i := range debts {
		debts[i].SwapRequestID = updated.ID
		debts[i].CreatedAt = now
	}

	effects := ApprovalEffects{
		ShiftIDs: shiftIDs,
		Debts:    debts,
		History: model.HistoryEntry{
			PlantID:       updated.PlantID,
			SwapRequestID: updated.ID,
			Action:        ActionApproved,
			Actor:         approvedBy,
			Details:       fmt.Sprintf("%s approved with %d shift move(s)", updated.Type, len(updated.Moves)),
			OccurredAt:    now,
		},
	}
	return updated, effects, nil
}

// Reject terminates a request from any pending state
func Reject(req model.SwapRequest, rejectedBy string, now time.Time) (model.SwapRequest, model.HistoryEntry, error) {
	if req.Status.IsTerminal() {
		return req, model.HistoryEntry{}, ErrTerminalState
	}

	updated := clone(req)
	updated.Status = model.SwapRejected
	updated.UpdatedAt = now

	entry := model.HistoryEntry{
		PlantID:       updated.PlantID,
		SwapRequestID: updated.ID,
		Action:        ActionRejected,
		Actor:         rejectedBy,
		OccurredAt:    now,
	}
	return updated, entry, nil
}

// clone deep-copies the slices that transitions touch
func clone(req model.SwapRequest) model.SwapRequest {
	out := req
	out.Participants = make([]model.Participant, len(req.Participants))
	copy(out.Participants, req.Participants)
	out.Moves = make([]model.SwapShift, len(req.Moves))
	copy(out.Moves, req.Moves)
	out.Debts = make([]model.TurnDebt, len(req.Debts))
	copy(out.Debts, req.Debts)
	return out
}
