// Package fairness classifies shift hardship and generates the turn-debt
// ledger entries that keep swaps equitable over time. Classification weights
// debt bookkeeping only; it never decides legality.
package fairness

import (
	"strings"
	"time"

	"github.com/turnoswap/turnoswap/pkg/core/model"
)

// DefaultNightMarkers are the substrings that identify a night shift in a
// shift type label, matched case-insensitively. Spanish rosters label night
// shifts "Noche".
var DefaultNightMarkers = []string{"noche", "night"}

// Classify categorizes a shift by difficulty. Precedence, first match wins:
//  1. the label contains a night marker, even on a weekend date
//  2. the date falls on Saturday or Sunday
//  3. otherwise regular
func Classify(date, label string) model.Hardness {
	return ClassifyWith(DefaultNightMarkers, date, label)
}

// ClassifyWith is Classify with a custom night-marker vocabulary
func ClassifyWith(nightMarkers []string, date, label string) model.Hardness {
	lower := strings.ToLower(label)
	for _, marker := range nightMarkers {
		if marker != "" && strings.Contains(lower, strings.ToLower(marker)) {
			return model.HardnessNight
		}
	}

	if t, err := model.ParseDate(date); err == nil {
		if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return model.HardnessWeekend
		}
	}

	return model.HardnessRegular
}

// DebtCategory derives the ledger category for a shift. Nights stay the
// heaviest; a holiday day type outranks the weekend/regular split that the
// calendar alone would give.
func DebtCategory(nightMarkers []string, shift model.Shift, label string) model.Hardness {
	hardness := ClassifyWith(nightMarkers, shift.Date, label)
	if hardness == model.HardnessNight {
		return model.HardnessNight
	}
	if shift.DayType == model.DayHoliday {
		return model.HardnessHoliday
	}
	return hardness
}
