package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/turnoswap/turnoswap/internal/metrics"
	"github.com/turnoswap/turnoswap/pkg/core/lifecycle"
	"github.com/turnoswap/turnoswap/pkg/core/model"
)

// AcceptSwapResult contains the acceptance results
type AcceptSwapResult struct {
	Request model.SwapRequest

	// ReadyForSupervisor is true once every participant has accepted
	ReadyForSupervisor bool
}

// AcceptSwap records a participant's agreement to a pending swap request.
// When the last participant accepts, the request advances to
// PENDING_SUPERVISOR.
func AcceptSwap(
	ctx context.Context,
	store SwapLifecycleStore,
	logger *zap.Logger,
	requestID, staffSlotID string,
) (*AcceptSwapResult, error) {
	logger.Debug("Starting acceptSwap",
		zap.String("request_id", requestID),
		zap.String("staff_slot_id", staffSlotID))

	request, err := loadSwapRequest(ctx, store, requestID)
	if err != nil {
		return nil, err
	}

	updated, err := lifecycle.Accept(*request, staffSlotID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("cannot accept swap request %s: %w", requestID, err)
	}

	if err := store.UpdateParticipantAccepted(ctx, requestID, staffSlotID); err != nil {
		return nil, fmt.Errorf("failed to update participant: %w", err)
	}
	if updated.Status != request.Status {
		if err := store.UpdateSwapRequestStatus(ctx, updated.ID, string(updated.Status), updated.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to update swap request: %w", err)
		}
		metrics.SwapTransitions.WithLabelValues(string(updated.Status)).Inc()
	}

	ready := updated.Status == model.SwapPendingSupervisor
	logger.Info("Swap request accepted by participant",
		zap.String("request_id", updated.ID),
		zap.String("staff_slot_id", staffSlotID),
		zap.Bool("ready_for_supervisor", ready))

	return &AcceptSwapResult{Request: updated, ReadyForSupervisor: ready}, nil
}
