package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/turnoswap/turnoswap/internal/metrics"
	"github.com/turnoswap/turnoswap/pkg/core/lifecycle"
	"github.com/turnoswap/turnoswap/pkg/core/model"
	"github.com/turnoswap/turnoswap/pkg/db"
)

// RejectSwapResult contains the rejection results
type RejectSwapResult struct {
	Request model.SwapRequest
}

// RejectSwap terminates a pending swap request. The underlying shifts are
// left untouched; only the request reaches its terminal state and an audit
// entry is appended.
func RejectSwap(
	ctx context.Context,
	store SwapLifecycleStore,
	logger *zap.Logger,
	requestID, rejectedBy string,
) (*RejectSwapResult, error) {
	logger.Debug("Starting rejectSwap",
		zap.String("request_id", requestID),
		zap.String("rejected_by", rejectedBy))

	request, err := loadSwapRequest(ctx, store, requestID)
	if err != nil {
		return nil, err
	}

	updated, entry, err := lifecycle.Reject(*request, rejectedBy, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("cannot reject swap request %s: %w", requestID, err)
	}

	if err := store.UpdateSwapRequestStatus(ctx, updated.ID, string(updated.Status), updated.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to update swap request: %w", err)
	}
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
	logger.Info("Swap request rejected", zap.String("request_id", updated.ID))

	return &RejectSwapResult{Request: updated}, nil
}
