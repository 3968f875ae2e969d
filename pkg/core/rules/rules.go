package rules

import (
	"fmt"
	"sort"

	"github.com/turnoswap/turnoswap/pkg/core/model"
)

// DefaultMaxConsecutive is the default cap on calendar-consecutive shift days
const DefaultMaxConsecutive = 6

// ValidationResult is the outcome of a legality check. Callers must branch on
// Valid; Reason is advisory text for presentation layers and is not part of
// the programmatic contract.
type ValidationResult struct {
	Valid  bool
	Reason string
}

// OK returns a passing validation result
func OK() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid returns a failing validation result with a formatted reason
func Invalid(format string, args ...any) ValidationResult {
	return ValidationResult{Valid: false, Reason: fmt.Sprintf(format, args...)}
}

// ValidateSingleDay fails if the schedule already contains a non-canceled
// shift for the candidate's staff slot on the candidate's date. Two shifts on
// the same calendar date for the same slot are never permitted, regardless of
// shift type.
func ValidateSingleDay(schedule []model.Shift, candidate model.Shift) ValidationResult {
	for _, s := range schedule {
		if !s.IsActive() || s.ID == candidate.ID {
			continue
		}
		if s.StaffSlotID == candidate.StaffSlotID && s.Date == candidate.Date {
			return Invalid("staff slot %s already has a shift on %s", candidate.StaffSlotID, candidate.Date)
		}
	}
	return OK()
}

// ValidateNightRest fails if the candidate's staff slot worked a night shift
// on the calendar day immediately preceding the candidate's date. The day
// after a night shift is a mandatory rest day ("saliente").
func ValidateNightRest(schedule []model.Shift, candidate model.Shift) ValidationResult {
	day, err := model.ParseDate(candidate.Date)
	if err != nil {
		return Invalid("candidate shift has malformed date %q", candidate.Date)
	}
	prevDay := day.AddDate(0, 0, -1).Format(model.DateLayout)

	for _, s := range schedule {
		if !s.IsActive() || s.ID == candidate.ID {
			continue
		}
		if s.StaffSlotID == candidate.StaffSlotID && s.Date == prevDay && s.Night {
			return Invalid("staff slot %s works a night shift on %s and must rest on %s", candidate.StaffSlotID, prevDay, candidate.Date)
		}
	}
	return OK()
}

// ValidateConsecutiveLimit computes the run of calendar-consecutive shift days
// containing the candidate's date and fails if the run exceeds maxConsecutive.
// A run of exactly maxConsecutive days is valid; one more is not.
func ValidateConsecutiveLimit(schedule []model.Shift, candidate model.Shift, maxConsecutive int) ValidationResult {
	day, err := model.ParseDate(candidate.Date)
	if err != nil {
		return Invalid("candidate shift has malformed date %q", candidate.Date)
	}

	// Collect the distinct dates the slot works, including the candidate
	workedDates := map[string]bool{candidate.Date: true}
	for _, s := range schedule {
		if s.IsActive() && s.StaffSlotID == candidate.StaffSlotID {
			workedDates[s.Date] = true
		}
	}

	run := 1
	for d := day.AddDate(0, 0, -1); workedDates[d.Format(model.DateLayout)]; d = d.AddDate(0, 0, -1) {
		run++
	}
	for d := day.AddDate(0, 0, 1); workedDates[d.Format(model.DateLayout)]; d = d.AddDate(0, 0, 1) {
		run++
	}

	if run > maxConsecutive {
		return Invalid("staff slot %s would work %d consecutive days around %s (max %d)", candidate.StaffSlotID, run, candidate.Date, maxConsecutive)
	}
	return OK()
}

// ValidateSwap checks a proposed reassignment of shifts between staff slots.
//
// For every staff slot touched by proposed, the slot's full schedule is
// reconstructed (existing shifts with the moved shifts replaced by their
// proposed versions) and the single-day, night-rest and consecutive-limit
// checks are re-applied to each shift in the combined set belonging to that
// slot. Every proposed shift must also land on a staff slot of the same
// category as its original holder.
//
// Short-circuits and returns the first violation found. Callers proposing a
// reassignment must reject the change entirely when the result is invalid.
func ValidateSwap(existing []model.Shift, proposed []model.Shift, slots []model.StaffSlot, maxConsecutive int) ValidationResult {
	if len(proposed) == 0 {
		return OK()
	}
	if maxConsecutive <= 0 {
		maxConsecutive = DefaultMaxConsecutive
	}

	slotsByID := make(map[string]model.StaffSlot, len(slots))
	for _, slot := range slots {
		slotsByID[slot.ID] = slot
	}
	existingByID := make(map[string]model.Shift, len(existing))
	for _, s := range existing {
		existingByID[s.ID] = s
	}

	// Combined view: existing shifts with the moved ones replaced in place
	proposedIDs := make(map[string]bool, len(proposed))
	for _, p := range proposed {
		proposedIDs[p.ID] = true
	}
	combined := make([]model.Shift, 0, len(existing)+len(proposed))
	for _, s := range existing {
		if !proposedIDs[s.ID] {
			combined = append(combined, s)
		}
	}
	combined = append(combined, proposed...)

	// Touched slots, in proposal order: new holders first, then original
	// holders whose schedules shrink
	var touched []string
	seen := make(map[string]bool)
	appendSlot := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			touched = append(touched, id)
		}
	}
	for _, p := range proposed {
		appendSlot(p.StaffSlotID)
	}
	for _, p := range proposed {
		if orig, ok := existingByID[p.ID]; ok {
			appendSlot(orig.StaffSlotID)
		}
	}

	for _, slotID := range touched {
		var slotShifts []model.Shift
		for _, s := range combined {
			if s.StaffSlotID == slotID && s.IsActive() {
				slotShifts = append(slotShifts, s)
			}
		}
		sort.Slice(slotShifts, func(i, j int) bool {
			if slotShifts[i].Date != slotShifts[j].Date {
				return slotShifts[i].Date < slotShifts[j].Date
			}
			return slotShifts[i].ID < slotShifts[j].ID
		})

		for _, shift := range slotShifts {
			if result := ValidateSingleDay(slotShifts, shift); !result.Valid {
				return result
			}
			if result := ValidateNightRest(slotShifts, shift); !result.Valid {
				return result
			}
			if result := ValidateConsecutiveLimit(slotShifts, shift, maxConsecutive); !result.Valid {
				return result
			}
		}
	}

	// Category preservation: a shift may only move between slots of the same
	// category as its original holder
	for _, p := range proposed {
		orig, ok := existingByID[p.ID]
		if !ok {
			return Invalid("proposed shift %s does not exist in the current schedule", p.ID)
		}
		fromSlot, ok := slotsByID[orig.StaffSlotID]
		if !ok {
			return Invalid("shift %s belongs to unknown staff slot %s", p.ID, orig.StaffSlotID)
		}
		toSlot, ok := slotsByID[p.StaffSlotID]
		if !ok {
			return Invalid("shift %s is reassigned to unknown staff slot %s", p.ID, p.StaffSlotID)
		}
		if fromSlot.Category != toSlot.Category {
			return Invalid("shift %s cannot move from a %s slot to a %s slot", p.ID, fromSlot.Category, toSlot.Category)
		}
	}

	return OK()
}
