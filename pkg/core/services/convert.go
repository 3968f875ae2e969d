package services

import (
	"time"

	"github.com/turnoswap/turnoswap/pkg/core/model"
	"github.com/turnoswap/turnoswap/pkg/core/roles"
	"github.com/turnoswap/turnoswap/pkg/db"
)

// toModelStaffSlots converts roster records, normalizing legacy free-text
// category labels to the typed enum at this boundary (the engine only ever
// sees the enum)
func toModelStaffSlots(records []db.StaffSlot) []model.StaffSlot {
	slots := make([]model.StaffSlot, 0, len(records))
	for _, r := range records {
		category := model.StaffCategory(r.Category)
		if !category.IsValid() {
			if normalized, ok := roles.NormalizeLabel(r.Category); ok {
				category = normalized
			}
		}
		slots = append(slots, model.StaffSlot{
			ID:         r.ID,
			PlantID:    r.PlantID,
			Name:       r.Name,
			Category:   category,
			UserID:     r.UserID,
			Supervisor: r.Supervisor,
			Active:     r.Active,
		})
	}
	return slots
}

// toModelShifts converts shift records, deriving the night flag from the
// shift type template and upgrading the day type for configured holidays
func toModelShifts(records []db.Shift, types []db.ShiftType, holidays map[string]bool) []model.Shift {
	typesByID := make(map[string]db.ShiftType, len(types))
	for _, t := range types {
		typesByID[t.ID] = t
	}

	shifts := make([]model.Shift, 0, len(records))
	for _, r := range records {
		shift := model.Shift{
			ID:          r.ID,
			PlantID:     r.PlantID,
			StaffSlotID: r.StaffSlotID,
			Date:        r.Date,
			ShiftTypeID: r.ShiftTypeID,
			Status:      model.ShiftStatus(r.Status),
			DayType:     model.DayType(r.DayType),
			Night:       r.Night,
		}
		if t, ok := typesByID[r.ShiftTypeID]; ok && t.Night {
			shift.Night = true
		}
		if holidays[r.Date] {
			shift.DayType = model.DayHoliday
		}
		shifts = append(shifts, shift)
	}
	return shifts
}

func toModelShiftTypes(records []db.ShiftType) []model.ShiftType {
	types := make([]model.ShiftType, 0, len(records))
	for _, r := range records {
		types = append(types, model.ShiftType{
			ID:              r.ID,
			PlantID:         r.PlantID,
			Name:            r.Name,
			StartTime:       r.StartTime,
			EndTime:         r.EndTime,
			DurationMinutes: r.DurationMinutes,
			Night:           r.Night,
			HalfDay:         r.HalfDay,
		})
	}
	return types
}

// toModelPreferences stitches preference headers and entries back together
func toModelPreferences(headers []db.Preference, entries []db.PreferenceEntry) []model.Preference {
	entriesByPref := make(map[string][]db.PreferenceEntry, len(headers))
	for _, e := range entries {
		entriesByPref[e.PreferenceID] = append(entriesByPref[e.PreferenceID], e)
	}

	prefs := make([]model.Preference, 0, len(headers))
	for _, h := range headers {
		pref := model.Preference{
			ID:          h.ID,
			PlantID:     h.PlantID,
			StaffSlotID: h.StaffSlotID,
			MonthKey:    h.MonthKey,
		}
		for _, e := range entriesByPref[h.ID] {
			ref := model.ShiftRef{Date: e.Date, ShiftTypeID: e.ShiftTypeID}
			switch e.Kind {
			case db.EntryLookingForChange:
				pref.LookingForChange = append(pref.LookingForChange, ref)
			case db.EntryWillingToWork:
				pref.WillingToWork = append(pref.WillingToWork, ref)
			}
		}
		prefs = append(prefs, pref)
	}
	return prefs
}

func toModelSwapRequest(
	header db.SwapRequest,
	participants []db.SwapParticipant,
	moves []db.SwapMove,
	debts []db.TurnDebt,
) model.SwapRequest {
	req := model.SwapRequest{
		ID:        header.ID,
		Type:      model.SwapType(header.Type),
		PlantID:   header.PlantID,
		Status:    model.SwapStatus(header.Status),
		Mode:      model.MatchMode(header.Mode),
		CreatedBy: header.CreatedBy,
		CreatedAt: header.CreatedAt,
		UpdatedAt: header.UpdatedAt,
	}
	for _, p := range participants {
		req.Participants = append(req.Participants, model.Participant{
			StaffSlotID: p.StaffSlotID,
			Role:        model.ParticipantRole(p.Role),
			Accepted:    p.Accepted,
		})
	}
	for _, m := range moves {
		req.Moves = append(req.Moves, model.SwapShift{
			ShiftID:         m.ShiftID,
			FromStaffSlotID: m.FromStaffSlotID,
			ToStaffSlotID:   m.ToStaffSlotID,
		})
	}
	for _, t := range debts {
		req.Debts = append(req.Debts, model.TurnDebt{
			ID:                  t.ID,
			PlantID:             t.PlantID,
			DebtorStaffSlotID:   t.DebtorStaffSlotID,
			CreditorStaffSlotID: t.CreditorStaffSlotID,
			Category:            model.Hardness(t.Category),
			SwapRequestID:       t.SwapRequestID,
			Settled:             t.Settled,
			CreatedAt:           t.CreatedAt,
		})
	}
	return req
}

func toDBTurnDebt(debt model.TurnDebt) db.TurnDebt {
	return db.TurnDebt{
		ID:                  debt.ID,
		PlantID:             debt.PlantID,
		DebtorStaffSlotID:   debt.DebtorStaffSlotID,
		CreditorStaffSlotID: debt.CreditorStaffSlotID,
		Category:            string(debt.Category),
		SwapRequestID:       debt.SwapRequestID,
		Settled:             debt.Settled,
		CreatedAt:           debt.CreatedAt,
	}
}

// monthRange returns the first and last day of a YYYY-MM month key
func monthRange(monthKey string) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, from.AddDate(0, 1, -1), nil
}
