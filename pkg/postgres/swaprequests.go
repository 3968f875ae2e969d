package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/turnoswap/turnoswap/pkg/db"
)

// InsertSwapRequests inserts swap request headers with their participants
// and moves in a single transaction
func (d *DB) InsertSwapRequests(
	ctx context.Context,
	requests []db.SwapRequest,
	participants []db.SwapParticipant,
	moves []db.SwapMove,
) error {
	if len(requests) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range requests {
		_, err := tx.Exec(ctx, `
			INSERT INTO swap_request (id, plant_id, type, status, mode, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, r.ID, r.PlantID, r.Type, r.Status, r.Mode, r.CreatedBy, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert swap request %s: %w", r.ID, err)
		}
	}
	for _, p := range participants {
		_, err := tx.Exec(ctx, `
			INSERT INTO swap_participant (id, swap_request_id, staff_slot_id, role, accepted)
			VALUES ($1, $2, $3, $4, $5)
		`, p.ID, p.SwapRequestID, p.StaffSlotID, p.Role, p.Accepted)
		if err != nil {
			return fmt.Errorf("failed to insert swap participant: %w", err)
		}
	}
	for _, m := range moves {
		_, err := tx.Exec(ctx, `
			INSERT INTO swap_move (id, swap_request_id, shift_id, from_staff_slot_id, to_staff_slot_id)
			VALUES ($1, $2, $3, $4, $5)
		`, m.ID, m.SwapRequestID, m.ShiftID, m.FromStaffSlotID, m.ToStaffSlotID)
		if err != nil {
			return fmt.Errorf("failed to insert swap move: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit swap requests: %w", err)
	}
	return nil
}

// GetSwapRequest retrieves a single swap request header
func (d *DB) GetSwapRequest(ctx context.Context, id string) (*db.SwapRequest, error) {
	var r db.SwapRequest
	var createdBy *string
	err := d.pool.QueryRow(ctx, `
		SELECT id, plant_id, type, status, mode, created_by, created_at, updated_at
		FROM swap_request
		WHERE id = $1
	`, id).Scan(&r.ID, &r.PlantID, &r.Type, &r.Status, &r.Mode, &createdBy, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to query swap request %s: %w", id, err)
	}
	if createdBy != nil {
		r.CreatedBy = *createdBy
	}
	return &r, nil
}

// GetSwapRequests retrieves swap request headers for a plant, newest first
func (d *DB) GetSwapRequests(ctx context.Context, plantID string) ([]db.SwapRequest, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, plant_id, type, status, mode, created_by, created_at, updated_at
		FROM swap_request
		WHERE plant_id = $1
		ORDER BY created_at DESC
	`, plantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query swap requests: %w", err)
	}
	defer rows.Close()

	var requests []db.SwapRequest
	for rows.Next() {
		var r db.SwapRequest
		var createdBy *string
		if err := rows.Scan(&r.ID, &r.PlantID, &r.Type, &r.Status, &r.Mode, &createdBy, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan swap request: %w", err)
		}
		if createdBy != nil {
			r.CreatedBy = *createdBy
		}
		requests = append(requests, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating swap requests: %w", err)
	}

	return requests, nil
}

// GetSwapParticipants retrieves the participants of a swap request
func (d *DB) GetSwapParticipants(ctx context.Context, swapRequestID string) ([]db.SwapParticipant, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, swap_request_id, staff_slot_id, role, accepted
		FROM swap_participant
		WHERE swap_request_id = $1
		ORDER BY id
	`, swapRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query swap participants: %w", err)
	}
	defer rows.Close()

	var participants []db.SwapParticipant
	for rows.Next() {
		var p db.SwapParticipant
		if err := rows.Scan(&p.ID, &p.SwapRequestID, &p.StaffSlotID, &p.Role, &p.Accepted); err != nil {
			return nil, fmt.Errorf("failed to scan swap participant: %w", err)
		}
		participants = append(participants, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating swap participants: %w", err)
	}

	return participants, nil
}

// GetSwapMoves retrieves the shift moves of a swap request
func (d *DB) GetSwapMoves(ctx context.Context, swapRequestID string) ([]db.SwapMove, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, swap_request_id, shift_id, from_staff_slot_id, to_staff_slot_id
		FROM swap_move
		WHERE swap_request_id = $1
		ORDER BY id
	`, swapRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query swap moves: %w", err)
	}
	defer rows.Close()

	var moves []db.SwapMove
	for rows.Next() {
		var m db.SwapMove
		if err := rows.Scan(&m.ID, &m.SwapRequestID, &m.ShiftID, &m.FromStaffSlotID, &m.ToStaffSlotID); err != nil {
			return nil, fmt.Errorf("failed to scan swap move: %w", err)
		}
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating swap moves: %w", err)
	}

	return moves, nil
}

// UpdateSwapRequestStatus updates a request's status and bumps updated_at
func (d *DB) UpdateSwapRequestStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	_, err := d.pool.Exec(ctx, `
		UPDATE swap_request SET status = $2, updated_at = $3 WHERE id = $1
	`, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update swap request %s: %w", id, err)
	}
	return nil
}

// UpdateParticipantAccepted marks a participant as having accepted the swap
func (d *DB) UpdateParticipantAccepted(ctx context.Context, swapRequestID, staffSlotID string) error {
	_, err := d.pool.Exec(ctx, `
		UPDATE swap_participant SET accepted = TRUE
		WHERE swap_request_id = $1 AND staff_slot_id = $2
	`, swapRequestID, staffSlotID)
	if err != nil {
		return fmt.Errorf("failed to update swap participant: %w", err)
	}
	return nil
}
