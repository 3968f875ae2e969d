package fairness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnoswap/turnoswap/pkg/core/model"
)

func TestClassify_NightLabelOnSaturday(t *testing.T) {
	// 2025-10-04 is a Saturday, but the night marker wins
	assert.Equal(t, model.HardnessNight, Classify("2025-10-04", "Noche"))
}

func TestClassify_NightMarkerCaseInsensitive(t *testing.T) {
	assert.Equal(t, model.HardnessNight, Classify("2025-10-01", "Turno de NOCHE"))
	assert.Equal(t, model.HardnessNight, Classify("2025-10-01", "night shift"))
}

func TestClassify_Weekend(t *testing.T) {
	assert.Equal(t, model.HardnessWeekend, Classify("2025-10-04", "Mañana")) // Saturday
	assert.Equal(t, model.HardnessWeekend, Classify("2025-10-05", "Tarde"))  // Sunday
}

func TestClassify_Regular(t *testing.T) {
	assert.Equal(t, model.HardnessRegular, Classify("2025-10-01", "Mañana")) // Wednesday
}

func TestClassify_MalformedDateFallsBackToRegular(t *testing.T) {
	assert.Equal(t, model.HardnessRegular, Classify("not-a-date", "Mañana"))
}

func TestClassifyWith_CustomMarkers(t *testing.T) {
	markers := []string{"nocturno"}
	assert.Equal(t, model.HardnessNight, ClassifyWith(markers, "2025-10-01", "Turno Nocturno"))
	// Default markers no longer apply
	assert.Equal(t, model.HardnessRegular, ClassifyWith(markers, "2025-10-01", "Noche"))
}

func TestDebtCategory_HolidayOutranksWeekday(t *testing.T) {
	shift := model.Shift{Date: "2025-12-25", DayType: model.DayHoliday}
	assert.Equal(t, model.HardnessHoliday, DebtCategory(nil, shift, "Mañana"))
}

func TestDebtCategory_NightOutranksHoliday(t *testing.T) {
	shift := model.Shift{Date: "2025-12-25", DayType: model.DayHoliday}
	assert.Equal(t, model.HardnessNight, DebtCategory(nil, shift, "Noche"))
}

func debtFixture() (map[string]model.Shift, map[string]string) {
	shifts := map[string]model.Shift{
		"s-night":   {ID: "s-night", PlantID: "plant-1", Date: "2025-10-01", ShiftTypeID: "night", Night: true},
		"s-day":     {ID: "s-day", PlantID: "plant-1", Date: "2025-10-02", ShiftTypeID: "day"},
		"s-day2":    {ID: "s-day2", PlantID: "plant-1", Date: "2025-10-03", ShiftTypeID: "day"},
		"s-weekend": {ID: "s-weekend", PlantID: "plant-1", Date: "2025-10-04", ShiftTypeID: "day"},
	}
	labels := map[string]string{
		"s-night":   "Noche",
		"s-day":     "Mañana",
		"s-day2":    "Mañana",
		"s-weekend": "Mañana",
	}
	return shifts, labels
}

func TestBuildDebts_BalancedExchangeNoDebt(t *testing.T) {
	shifts, labels := debtFixture()
	moves := []model.SwapShift{
		{ShiftID: "s-day", FromStaffSlotID: "slot-a", ToStaffSlotID: "slot-b"},
		{ShiftID: "s-day2", FromStaffSlotID: "slot-b", ToStaffSlotID: "slot-a"},
	}

	debts := BuildDebts(model.SwapExchange, moves, shifts, labels, nil)
	assert.Empty(t, debts)
}

func TestBuildDebts_AsymmetricExchange(t *testing.T) {
	shifts, labels := debtFixture()
	// slot-b takes the night shift, slot-a takes a regular day back
	moves := []model.SwapShift{
		{ShiftID: "s-night", FromStaffSlotID: "slot-a", ToStaffSlotID: "slot-b"},
		{ShiftID: "s-day", FromStaffSlotID: "slot-b", ToStaffSlotID: "slot-a"},
	}

	debts := BuildDebts(model.SwapExchange, moves, shifts, labels, nil)
	require.Len(t, debts, 1)
	assert.Equal(t, "slot-a", debts[0].DebtorStaffSlotID, "the slot shedding the night shift owes")
	assert.Equal(t, "slot-b", debts[0].CreditorStaffSlotID)
	assert.Equal(t, model.HardnessNight, debts[0].Category)
	assert.Equal(t, "plant-1", debts[0].PlantID)
}

func TestBuildDebts_GiftAlwaysIndebtsGiver(t *testing.T) {
	shifts, labels := debtFixture()
	moves := []model.SwapShift{
		{ShiftID: "s-weekend", FromStaffSlotID: "slot-a", ToStaffSlotID: "slot-b"},
	}

	debts := BuildDebts(model.SwapGift, moves, shifts, labels, nil)
	require.Len(t, debts, 1)
	assert.Equal(t, "slot-a", debts[0].DebtorStaffSlotID)
	assert.Equal(t, "slot-b", debts[0].CreditorStaffSlotID)
	assert.Equal(t, model.HardnessWeekend, debts[0].Category)
}

func TestBuildDebts_GiftOfRegularShiftStillDebt(t *testing.T) {
	shifts, labels := debtFixture()
	moves := []model.SwapShift{
		{ShiftID: "s-day", FromStaffSlotID: "slot-a", ToStaffSlotID: "slot-b"},
	}

	debts := BuildDebts(model.SwapGift, moves, shifts, labels, nil)
	require.Len(t, debts, 1)
	assert.Equal(t, model.HardnessRegular, debts[0].Category)
}

func TestBuildDebts_UnknownShiftSkipped(t *testing.T) {
	shifts, labels := debtFixture()
	moves := []model.SwapShift{
		{ShiftID: "ghost", FromStaffSlotID: "slot-a", ToStaffSlotID: "slot-b"},
	}

	debts := BuildDebts(model.SwapGift, moves, shifts, labels, nil)
	assert.Empty(t, debts)
}
