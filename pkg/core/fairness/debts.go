package fairness

import (
	"github.com/turnoswap/turnoswap/pkg/core/model"
)

// BuildDebts generates the turn-debt ledger entries a proposed swap would
// create. Debts carry no ID or request reference yet; both are assigned when
// the request is persisted.
//
// A gift always indebts the giver to the receiver at the gifted shift's
// category: the receiver absorbs hardship and gets nothing back. An exchange
// is self-balancing unless the two shifts differ in category, in which case
// the side receiving the harder shift is owed a debt of that category.
func BuildDebts(
	swapType model.SwapType,
	moves []model.SwapShift,
	shiftsByID map[string]model.Shift,
	labelsByShiftID map[string]string,
	nightMarkers []string,
) []model.TurnDebt {
	if len(nightMarkers) == 0 {
		nightMarkers = DefaultNightMarkers
	}

	categoryOf := func(move model.SwapShift) (model.Hardness, model.Shift, bool) {
		shift, ok := shiftsByID[move.ShiftID]
		if !ok {
			return "", model.Shift{}, false
		}
		return DebtCategory(nightMarkers, shift, labelsByShiftID[move.ShiftID]), shift, true
	}

	if swapType == model.SwapExchange && len(moves) == 2 {
		catA, shiftA, okA := categoryOf(moves[0])
		catB, _, okB := categoryOf(moves[1])
		if !okA || !okB || catA == catB {
			return nil
		}

		// The receiver of the harder shift is the creditor
		harder, lighter := moves[0], moves[1]
		category := catA
		if catB.Rank() > catA.Rank() {
			harder, lighter = moves[1], moves[0]
			category = catB
		}
		return []model.TurnDebt{{
			PlantID:             shiftA.PlantID,
			DebtorStaffSlotID:   lighter.ToStaffSlotID,
			CreditorStaffSlotID: harder.ToStaffSlotID,
			Category:            category,
		}}
	}

	// Gifts (and any one-directional move) indebt the shedding slot
	var debts []model.TurnDebt
	for _, move := range moves {
		category, shift, ok := categoryOf(move)
		if !ok {
			continue
		}
		debts = append(debts, model.TurnDebt{
			PlantID:             shift.PlantID,
			DebtorStaffSlotID:   move.FromStaffSlotID,
			CreditorStaffSlotID: move.ToStaffSlotID,
			Category:            category,
		})
	}
	return debts
}
