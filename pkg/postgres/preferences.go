package postgres

import (
	"context"
	"fmt"

	"github.com/turnoswap/turnoswap/pkg/db"
)

// GetPreferences retrieves preference headers for a plant and month
func (d *DB) GetPreferences(ctx context.Context, plantID, monthKey string) ([]db.Preference, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, plant_id, staff_slot_id, month_key
		FROM preference
		WHERE plant_id = $1 AND month_key = $2
		ORDER BY staff_slot_id
	`, plantID, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	var prefs []db.Preference
	for rows.Next() {
		var p db.Preference
		if err := rows.Scan(&p.ID, &p.PlantID, &p.StaffSlotID, &p.MonthKey); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		prefs = append(prefs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating preferences: %w", err)
	}

	return prefs, nil
}

// GetPreferenceEntries retrieves the entries of the given preferences
func (d *DB) GetPreferenceEntries(ctx context.Context, preferenceIDs []string) ([]db.PreferenceEntry, error) {
	if len(preferenceIDs) == 0 {
		return nil, nil
	}

	rows, err := d.pool.Query(ctx, `
		SELECT id, preference_id, kind, to_char(entry_date, 'YYYY-MM-DD'), shift_type_id
		FROM preference_entry
		WHERE preference_id = ANY($1)
		ORDER BY entry_date, shift_type_id
	`, preferenceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query preference entries: %w", err)
	}
	defer rows.Close()

	var entries []db.PreferenceEntry
	for rows.Next() {
		var e db.PreferenceEntry
		if err := rows.Scan(&e.ID, &e.PreferenceID, &e.Kind, &e.Date, &e.ShiftTypeID); err != nil {
			return nil, fmt.Errorf("failed to scan preference entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating preference entries: %w", err)
	}

	return entries, nil
}
