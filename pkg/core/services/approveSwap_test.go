package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/turnoswap/turnoswap/pkg/core/lifecycle"
	"github.com/turnoswap/turnoswap/pkg/core/model"
	"github.com/turnoswap/turnoswap/pkg/db"
)

// mockSwapLifecycleStore implements SwapLifecycleStore for testing
type mockSwapLifecycleStore struct {
	request      db.SwapRequest
	participants []db.SwapParticipant
	moves        []db.SwapMove
	debts        []db.TurnDebt
	shifts       []db.Shift
	shiftTypes   []db.ShiftType
	staffSlots   []db.StaffSlot

	updatedStatus        string
	acceptedParticipants []string
	swappedMoves         []db.SwapMove
	insertedDebts        []db.TurnDebt
	insertedHistory      []db.HistoryEntry

	getRequestErr   error
	updateStatusErr error
	markSwappedErr  error
}

func (m *mockSwapLifecycleStore) GetSwapRequest(ctx context.Context, id string) (*db.SwapRequest, error) {
	if m.getRequestErr != nil {
		return nil, m.getRequestErr
	}
	header := m.request
	return &header, nil
}

func (m *mockSwapLifecycleStore) GetSwapParticipants(ctx context.Context, swapRequestID string) ([]db.SwapParticipant, error) {
	return m.participants, nil
}

func (m *mockSwapLifecycleStore) GetSwapMoves(ctx context.Context, swapRequestID string) ([]db.SwapMove, error) {
	return m.moves, nil
}

func (m *mockSwapLifecycleStore) GetTurnDebtsForRequest(ctx context.Context, swapRequestID string) ([]db.TurnDebt, error) {
	return m.debts, nil
}

func (m *mockSwapLifecycleStore) GetShiftsByStaffSlots(ctx context.Context, plantID string, staffSlotIDs []string) ([]db.Shift, error) {
	return m.shifts, nil
}

func (m *mockSwapLifecycleStore) GetShiftTypes(ctx context.Context, plantID string) ([]db.ShiftType, error) {
	return m.shiftTypes, nil
}

func (m *mockSwapLifecycleStore) GetStaffSlots(ctx context.Context, plantID string) ([]db.StaffSlot, error) {
	return m.staffSlots, nil
}

func (m *mockSwapLifecycleStore) UpdateSwapRequestStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	if m.updateStatusErr != nil {
		return m.updateStatusErr
	}
	m.updatedStatus = status
	return nil
}

func (m *mockSwapLifecycleStore) UpdateParticipantAccepted(ctx context.Context, swapRequestID, staffSlotID string) error {
	m.acceptedParticipants = append(m.acceptedParticipants, staffSlotID)
	return nil
}

func (m *mockSwapLifecycleStore) MarkShiftsSwapped(ctx context.Context, moves []db.SwapMove) error {
	if m.markSwappedErr != nil {
		return m.markSwappedErr
	}
	m.swappedMoves = append(m.swappedMoves, moves...)
	return nil
}

func (m *mockSwapLifecycleStore) InsertTurnDebts(ctx context.Context, debts []db.TurnDebt) error {
	m.insertedDebts = append(m.insertedDebts, debts...)
	return nil
}

func (m *mockSwapLifecycleStore) InsertHistoryEntry(ctx context.Context, entry db.HistoryEntry) error {
	m.insertedHistory = append(m.insertedHistory, entry)
	return nil
}

// approvableStore sets up an exchange between two nurses that still passes
// validation against the current schedules
func approvableStore() *mockSwapLifecycleStore {
	return &mockSwapLifecycleStore{
		request: db.SwapRequest{
			ID:      "req-1",
			PlantID: "plant-1",
			Type:    string(model.SwapExchange),
			Status:  string(model.SwapPendingSupervisor),
			Mode:    string(model.ModeStrict),
		},
		participants: []db.SwapParticipant{
			{ID: "p1", SwapRequestID: "req-1", StaffSlotID: "slot-a", Role: string(model.RoleSwapper), Accepted: true},
			{ID: "p2", SwapRequestID: "req-1", StaffSlotID: "slot-b", Role: string(model.RoleSwapper), Accepted: true},
		},
		moves: []db.SwapMove{
			{ID: "m1", SwapRequestID: "req-1", ShiftID: "sh-a1", FromStaffSlotID: "slot-a", ToStaffSlotID: "slot-b"},
			{ID: "m2", SwapRequestID: "req-1", ShiftID: "sh-b1", FromStaffSlotID: "slot-b", ToStaffSlotID: "slot-a"},
		},
		shifts: []db.Shift{
			{ID: "sh-a1", PlantID: "plant-1", StaffSlotID: "slot-a", Date: "2025-10-01", ShiftTypeID: "night", Status: "ASSIGNED"},
			{ID: "sh-b1", PlantID: "plant-1", StaffSlotID: "slot-b", Date: "2025-10-03", ShiftTypeID: "day", Status: "ASSIGNED"},
		},
		shiftTypes: []db.ShiftType{
			{ID: "day", PlantID: "plant-1", Name: "Mañana"},
			{ID: "night", PlantID: "plant-1", Name: "Noche", Night: true},
		},
		staffSlots: []db.StaffSlot{
			{ID: "slot-a", PlantID: "plant-1", Category: "NURSE", Active: true},
			{ID: "slot-b", PlantID: "plant-1", Category: "NURSE", Active: true},
		},
	}
}

func TestApproveSwap_Success(t *testing.T) {
	store := approvableStore()

	result, err := ApproveSwap(context.Background(), store, testConfig(), zap.NewNop(), "req-1", "supervisor-1")
	require.NoError(t, err)

	assert.Equal(t, model.SwapApproved, result.Request.Status)
	assert.Equal(t, 2, result.ShiftsSwapped)
	assert.Equal(t, 1, result.DebtsCreated)

	assert.Equal(t, string(model.SwapApproved), store.updatedStatus)
	assert.Len(t, store.swappedMoves, 2)

	// The night-for-weekday exchange is asymmetric: the debt is generated
	// here, at approval, not carried over from proposal time
	require.Len(t, store.insertedDebts, 1)
	assert.NotEmpty(t, store.insertedDebts[0].ID)
	assert.Equal(t, "req-1", store.insertedDebts[0].SwapRequestID)
	assert.Equal(t, string(model.HardnessNight), store.insertedDebts[0].Category)
	assert.Equal(t, "slot-a", store.insertedDebts[0].DebtorStaffSlotID)
	assert.Equal(t, "slot-b", store.insertedDebts[0].CreditorStaffSlotID)

	require.Len(t, store.insertedHistory, 1)
	assert.Equal(t, lifecycle.ActionApproved, store.insertedHistory[0].Action)
	assert.Equal(t, "supervisor-1", store.insertedHistory[0].Actor)
}

func TestApproveSwap_RevalidationFailure(t *testing.T) {
	store := approvableStore()
	// Schedules changed since matching: slot-b now already works the 1st
	store.shifts = append(store.shifts, db.Shift{
		ID: "sh-b2", PlantID: "plant-1", StaffSlotID: "slot-b", Date: "2025-10-01", ShiftTypeID: "day", Status: "ASSIGNED",
	})

	_, err := ApproveSwap(context.Background(), store, testConfig(), zap.NewNop(), "req-1", "supervisor-1")
	assert.ErrorIs(t, err, ErrSwapNoLongerValid)

	assert.Empty(t, store.updatedStatus, "nothing is committed when re-validation fails")
	assert.Empty(t, store.swappedMoves)
	assert.Empty(t, store.insertedDebts)
	assert.Empty(t, store.insertedHistory)
}

func TestApproveSwap_ReferencedShiftGone(t *testing.T) {
	store := approvableStore()
	store.shifts = store.shifts[1:]

	_, err := ApproveSwap(context.Background(), store, testConfig(), zap.NewNop(), "req-1", "supervisor-1")
	assert.ErrorIs(t, err, ErrSwapNoLongerValid)
	assert.Contains(t, err.Error(), "no longer exists")
}

func TestApproveSwap_NotAwaitingSupervisor(t *testing.T) {
	store := approvableStore()
	store.request.Status = string(model.SwapPendingUsers)

	_, err := ApproveSwap(context.Background(), store, testConfig(), zap.NewNop(), "req-1", "supervisor-1")
	assert.ErrorIs(t, err, lifecycle.ErrNotReadyForApproval)
	assert.Empty(t, store.swappedMoves)
}

func TestApproveSwap_TerminalRequest(t *testing.T) {
	store := approvableStore()
	store.request.Status = string(model.SwapApproved)

	_, err := ApproveSwap(context.Background(), store, testConfig(), zap.NewNop(), "req-1", "supervisor-1")
	assert.ErrorIs(t, err, lifecycle.ErrTerminalState)
}

func TestApproveSwap_StoreErrorPropagated(t *testing.T) {
	store := approvableStore()
	store.getRequestErr = errors.New("connection reset")

	_, err := ApproveSwap(context.Background(), store, testConfig(), zap.NewNop(), "req-1", "supervisor-1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch swap request")
}

func TestAcceptSwap_FirstParticipant(t *testing.T) {
	store := approvableStore()
	store.request.Status = string(model.SwapPendingUsers)
	store.participants[0].Accepted = false
	store.participants[1].Accepted = false

	result, err := AcceptSwap(context.Background(), store, zap.NewNop(), "req-1", "slot-a")
	require.NoError(t, err)

	assert.False(t, result.ReadyForSupervisor)
	assert.Equal(t, []string{"slot-a"}, store.acceptedParticipants)
	assert.Empty(t, store.updatedStatus, "status only changes once everyone accepted")
}

func TestAcceptSwap_LastParticipantAdvances(t *testing.T) {
	store := approvableStore()
	store.request.Status = string(model.SwapPendingUsers)
	store.participants[0].Accepted = true
	store.participants[1].Accepted = false

	result, err := AcceptSwap(context.Background(), store, zap.NewNop(), "req-1", "slot-b")
	require.NoError(t, err)

	assert.True(t, result.ReadyForSupervisor)
	assert.Equal(t, model.SwapPendingSupervisor, result.Request.Status)
	assert.Equal(t, string(model.SwapPendingSupervisor), store.updatedStatus)
}

func TestAcceptSwap_UnknownParticipant(t *testing.T) {
	store := approvableStore()
	store.request.Status = string(model.SwapPendingUsers)

	_, err := AcceptSwap(context.Background(), store, zap.NewNop(), "req-1", "slot-ghost")
	assert.ErrorIs(t, err, lifecycle.ErrUnknownParticipant)
	assert.Empty(t, store.acceptedParticipants)
}

func TestRejectSwap_FromPendingUsers(t *testing.T) {
	store := approvableStore()
	store.request.Status = string(model.SwapPendingUsers)

	result, err := RejectSwap(context.Background(), store, zap.NewNop(), "req-1", "slot-b")
	require.NoError(t, err)

	assert.Equal(t, model.SwapRejected, result.Request.Status)
	assert.Equal(t, string(model.SwapRejected), store.updatedStatus)

	require.Len(t, store.insertedHistory, 1)
	assert.Equal(t, lifecycle.ActionRejected, store.insertedHistory[0].Action)
	assert.Equal(t, "slot-b", store.insertedHistory[0].Actor)

	assert.Empty(t, store.swappedMoves, "rejection never touches the shifts")
}

func TestRejectSwap_TerminalRequest(t *testing.T) {
	store := approvableStore()
	store.request.Status = string(model.SwapRejected)

	_, err := RejectSwap(context.Background(), store, zap.NewNop(), "req-1", "slot-b")
	assert.ErrorIs(t, err, lifecycle.ErrTerminalState)
}

// mockSettleDebtStore implements SettleDebtStore for testing
type mockSettleDebtStore struct {
	settled   []string
	settleErr error
}

func (m *mockSettleDebtStore) SettleTurnDebt(ctx context.Context, id string) error {
	if m.settleErr != nil {
		return m.settleErr
	}
	m.settled = append(m.settled, id)
	return nil
}

func TestSettleDebt_Success(t *testing.T) {
	store := &mockSettleDebtStore{}

	err := SettleDebt(context.Background(), store, zap.NewNop(), "debt-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"debt-1"}, store.settled)
}

func TestSettleDebt_StoreError(t *testing.T) {
	store := &mockSettleDebtStore{settleErr: errors.New("debt not found")}

	err := SettleDebt(context.Background(), store, zap.NewNop(), "debt-1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to settle debt")
}
