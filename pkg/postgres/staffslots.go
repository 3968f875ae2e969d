package postgres

import (
	"context"
	"fmt"

	"github.com/turnoswap/turnoswap/pkg/db"
)

// GetStaffSlots retrieves the staff slot roster for a plant
func (d *DB) GetStaffSlots(ctx context.Context, plantID string) ([]db.StaffSlot, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, plant_id, name, category, user_id, supervisor, active
		FROM staff_slot
		WHERE plant_id = $1
		ORDER BY name
	`, plantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff slots: %w", err)
	}
	defer rows.Close()

	var slots []db.StaffSlot
	for rows.Next() {
		var s db.StaffSlot
		var userID *string
		if err := rows.Scan(&s.ID, &s.PlantID, &s.Name, &s.Category, &userID, &s.Supervisor, &s.Active); err != nil {
			return nil, fmt.Errorf("failed to scan staff slot: %w", err)
		}
		if userID != nil {
			s.UserID = *userID
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff slots: %w", err)
	}

	return slots, nil
}

// GetShiftTypes retrieves the shift type templates configured for a plant
func (d *DB) GetShiftTypes(ctx context.Context, plantID string) ([]db.ShiftType, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, plant_id, name, start_time, end_time, duration_minutes, night, half_day
		FROM shift_type
		WHERE plant_id = $1
		ORDER BY name
	`, plantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift types: %w", err)
	}
	defer rows.Close()

	var types []db.ShiftType
	for rows.Next() {
		var t db.ShiftType
		if err := rows.Scan(&t.ID, &t.PlantID, &t.Name, &t.StartTime, &t.EndTime, &t.DurationMinutes, &t.Night, &t.HalfDay); err != nil {
			return nil, fmt.Errorf("failed to scan shift type: %w", err)
		}
		types = append(types, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift types: %w", err)
	}

	return types, nil
}
