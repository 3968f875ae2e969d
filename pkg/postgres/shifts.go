package postgres

import (
	"context"
	"fmt"

	"github.com/turnoswap/turnoswap/pkg/db"
)

// GetShifts retrieves all shift records for a plant and month
func (d *DB) GetShifts(ctx context.Context, plantID, monthKey string) ([]db.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, plant_id, staff_slot_id, to_char(shift_date, 'YYYY-MM-DD'), shift_type_id, status, day_type, night
		FROM shift
		WHERE plant_id = $1 AND to_char(shift_date, 'YYYY-MM') = $2
		ORDER BY shift_date, staff_slot_id
	`, plantID, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []db.Shift
	for rows.Next() {
		var s db.Shift
		if err := rows.Scan(&s.ID, &s.PlantID, &s.StaffSlotID, &s.Date, &s.ShiftTypeID, &s.Status, &s.DayType, &s.Night); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

// GetShiftsByStaffSlots retrieves all shift records of the given staff slots
func (d *DB) GetShiftsByStaffSlots(ctx context.Context, plantID string, staffSlotIDs []string) ([]db.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, plant_id, staff_slot_id, to_char(shift_date, 'YYYY-MM-DD'), shift_type_id, status, day_type, night
		FROM shift
		WHERE plant_id = $1 AND staff_slot_id = ANY($2)
		ORDER BY shift_date, staff_slot_id
	`, plantID, staffSlotIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts by staff slots: %w", err)
	}
	defer rows.Close()

	var shifts []db.Shift
	for rows.Next() {
		var s db.Shift
		if err := rows.Scan(&s.ID, &s.PlantID, &s.StaffSlotID, &s.Date, &s.ShiftTypeID, &s.Status, &s.DayType, &s.Night); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

// MarkShiftsSwapped flags the given shifts as swapped and moves each one to
// its new staff slot. The slot/date unique index is checked per statement and
// a same-date exchange would transiently double-book the receiving slot, so
// every moved shift is parked as CANCELED first and then reinstated on its
// new slot.
func (d *DB) MarkShiftsSwapped(ctx context.Context, moves []db.SwapMove) error {
	if len(moves) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	shiftIDs := make([]string, len(moves))
	for i, move := range moves {
		shiftIDs[i] = move.ShiftID
	}
	if _, err := tx.Exec(ctx, `
		UPDATE shift SET status = 'CANCELED' WHERE id = ANY($1)
	`, shiftIDs); err != nil {
		return fmt.Errorf("failed to park swapped shifts: %w", err)
	}

	for _, move := range moves {
		_, err := tx.Exec(ctx, `
			UPDATE shift SET status = 'SWAPPED', staff_slot_id = $2
			WHERE id = $1
		`, move.ShiftID, move.ToStaffSlotID)
		if err != nil {
			return fmt.Errorf("failed to mark shift %s swapped: %w", move.ShiftID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit shift updates: %w", err)
	}
	return nil
}
