package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnoswap/turnoswap/pkg/core/model"
)

var transitionTime = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

func pendingRequest() model.SwapRequest {
	return model.SwapRequest{
		ID:      "req-1",
		Type:    model.SwapExchange,
		PlantID: "plant-1",
		Participants: []model.Participant{
			{StaffSlotID: "slot-a", Role: model.RoleSwapper},
			{StaffSlotID: "slot-b", Role: model.RoleSwapper},
		},
		Moves: []model.SwapShift{
			{ShiftID: "sh-1", FromStaffSlotID: "slot-a", ToStaffSlotID: "slot-b"},
			{ShiftID: "sh-2", FromStaffSlotID: "slot-b", ToStaffSlotID: "slot-a"},
		},
		Debts: []model.TurnDebt{
			{PlantID: "plant-1", DebtorStaffSlotID: "slot-a", CreditorStaffSlotID: "slot-b", Category: model.HardnessNight},
		},
		Status:    model.SwapPendingUsers,
		Mode:      model.ModeStrict,
		CreatedBy: "admin",
	}
}

func TestAccept_FirstParticipant(t *testing.T) {
	updated, err := Accept(pendingRequest(), "slot-a", transitionTime)
	require.NoError(t, err)

	assert.Equal(t, model.SwapPendingUsers, updated.Status, "one acceptance outstanding keeps the request with the users")
	assert.True(t, updated.Participants[0].Accepted)
	assert.False(t, updated.Participants[1].Accepted)
	assert.Equal(t, transitionTime, updated.UpdatedAt)
}

func TestAccept_LastParticipantAdvances(t *testing.T) {
	req := pendingRequest()
	req.Participants[0].Accepted = true

	updated, err := Accept(req, "slot-b", transitionTime)
	require.NoError(t, err)
	assert.Equal(t, model.SwapPendingSupervisor, updated.Status)
}

func TestAccept_UnknownParticipant(t *testing.T) {
	_, err := Accept(pendingRequest(), "slot-ghost", transitionTime)
	assert.ErrorIs(t, err, ErrUnknownParticipant)
}

func TestAccept_TerminalRequest(t *testing.T) {
	req := pendingRequest()
	req.Status = model.SwapApproved

	_, err := Accept(req, "slot-a", transitionTime)
	assert.ErrorIs(t, err, ErrTerminalState)
}

func TestAccept_DoesNotMutateInput(t *testing.T) {
	req := pendingRequest()

	_, err := Accept(req, "slot-a", transitionTime)
	require.NoError(t, err)
	assert.False(t, req.Participants[0].Accepted, "input request must stay untouched")
	assert.Equal(t, model.SwapPendingUsers, req.Status)
}

func TestApprove_FromPendingSupervisor(t *testing.T) {
	req := pendingRequest()
	req.Status = model.SwapPendingSupervisor
	req.Participants[0].Accepted = true
	req.Participants[1].Accepted = true

	updated, effects, err := Approve(req, "supervisor-1", transitionTime)
	require.NoError(t, err)

	assert.Equal(t, model.SwapApproved, updated.Status)
	assert.Equal(t, transitionTime, updated.UpdatedAt)

	assert.ElementsMatch(t, []string{"sh-1", "sh-2"}, effects.ShiftIDs)

	require.Len(t, effects.Debts, 1)
	assert.Equal(t, "req-1", effects.Debts[0].SwapRequestID, "debts are stamped with the request at approval")
	assert.Equal(t, transitionTime, effects.Debts[0].CreatedAt)
	assert.False(t, effects.Debts[0].Settled)

	assert.Equal(t, ActionApproved, effects.History.Action)
	assert.Equal(t, "supervisor-1", effects.History.Actor)
	assert.Equal(t, "req-1", effects.History.SwapRequestID)
}

func TestApprove_BeforeAllAccepted(t *testing.T) {
	_, _, err := Approve(pendingRequest(), "supervisor-1", transitionTime)
	assert.ErrorIs(t, err, ErrNotReadyForApproval)
}

func TestApprove_TerminalRequest(t *testing.T) {
	req := pendingRequest()
	req.Status = model.SwapRejected

	_, _, err := Approve(req, "supervisor-1", transitionTime)
	assert.ErrorIs(t, err, ErrTerminalState)
}

func TestReject_FromPendingUsers(t *testing.T) {
	updated, entry, err := Reject(pendingRequest(), "slot-b", transitionTime)
	require.NoError(t, err)

	assert.Equal(t, model.SwapRejected, updated.Status)
	assert.Equal(t, ActionRejected, entry.Action)
	assert.Equal(t, "slot-b", entry.Actor)
	assert.Equal(t, "req-1", entry.SwapRequestID)
}

func TestReject_FromPendingSupervisor(t *testing.T) {
	req := pendingRequest()
	req.Status = model.SwapPendingSupervisor

	updated, _, err := Reject(req, "supervisor-1", transitionTime)
	require.NoError(t, err)
	assert.Equal(t, model.SwapRejected, updated.Status)
}

func TestReject_TerminalRequest(t *testing.T) {
	req := pendingRequest()
	req.Status = model.SwapApproved

	_, _, err := Reject(req, "supervisor-1", transitionTime)
	assert.ErrorIs(t, err, ErrTerminalState)

	req.Status = model.SwapRejected
	_, _, err = Reject(req, "supervisor-1", transitionTime)
	assert.ErrorIs(t, err, ErrTerminalState, "rejecting twice is not permitted")
}

func TestReject_DoesNotMutateInput(t *testing.T) {
	req := pendingRequest()

	_, _, err := Reject(req, "slot-a", transitionTime)
	require.NoError(t, err)
	assert.Equal(t, model.SwapPendingUsers, req.Status)
}
