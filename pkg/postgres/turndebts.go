package postgres

import (
	"context"
	"fmt"

	"github.com/turnoswap/turnoswap/pkg/db"
)

// InsertTurnDebts inserts turn debt ledger entries
func (d *DB) InsertTurnDebts(ctx context.Context, debts []db.TurnDebt) error {
	if len(debts) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, t := range debts {
		_, err := tx.Exec(ctx, `
			INSERT INTO turn_debt (id, plant_id, debtor_staff_slot_id, creditor_staff_slot_id, category, swap_request_id, settled, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, t.ID, t.PlantID, t.DebtorStaffSlotID, t.CreditorStaffSlotID, t.Category, t.SwapRequestID, t.Settled, t.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert turn debt: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit turn debts: %w", err)
	}
	return nil
}

// GetTurnDebtsForRequest retrieves the debts generated by a swap request
func (d *DB) GetTurnDebtsForRequest(ctx context.Context, swapRequestID string) ([]db.TurnDebt, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, plant_id, debtor_staff_slot_id, creditor_staff_slot_id, category, swap_request_id, settled, created_at
		FROM turn_debt
		WHERE swap_request_id = $1
		ORDER BY id
	`, swapRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query turn debts: %w", err)
	}
	defer rows.Close()

	var debts []db.TurnDebt
	for rows.Next() {
		var t db.TurnDebt
		var requestID *string
		if err := rows.Scan(&t.ID, &t.PlantID, &t.DebtorStaffSlotID, &t.CreditorStaffSlotID, &t.Category, &requestID, &t.Settled, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn debt: %w", err)
		}
		if requestID != nil {
			t.SwapRequestID = *requestID
		}
		debts = append(debts, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating turn debts: %w", err)
	}

	return debts, nil
}

// SettleTurnDebt marks a debt as repaid
func (d *DB) SettleTurnDebt(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE turn_debt SET settled = TRUE WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to settle turn debt %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("turn debt %s not found", id)
	}
	return nil
}

// InsertHistoryEntry appends an audit record
func (d *DB) InsertHistoryEntry(ctx context.Context, entry db.HistoryEntry) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO history_entry (id, plant_id, swap_request_id, action, actor, details, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.ID, entry.PlantID, entry.SwapRequestID, entry.Action, entry.Actor, entry.Details, entry.OccurredAt)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}
