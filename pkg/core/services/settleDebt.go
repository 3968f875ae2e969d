package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// SettleDebtStore defines the database operations needed for debt settlement
type SettleDebtStore interface {
	SettleTurnDebt(ctx context.Context, id string) error
}

// SettleDebt marks a turn debt as repaid. Repayment itself (the debtor
// covering a shift for the creditor) happens through a regular swap; this
// only closes the ledger entry.
func SettleDebt(ctx context.Context, store SettleDebtStore, logger *zap.Logger, debtID string) error {
	if err := store.SettleTurnDebt(ctx, debtID); err != nil {
		return fmt.Errorf("failed to settle debt: %w", err)
	}
	logger.Info("Turn debt settled", zap.String("debt_id", debtID))
	return nil
}
