package model

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates throughout the engine
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date in the engine's wire format
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// MonthKeyOf derives the YYYY-MM month key from a calendar date string.
// Returns an empty string for malformed dates.
func MonthKeyOf(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return ""
	}
	return t.Format("2006-01")
}

// StaffSlot is a staffing position within a plant. It is the unit of identity
// for rule evaluation, deliberately decoupled from user accounts.
type StaffSlot struct {
	ID         string
	PlantID    string
	Name       string
	Category   StaffCategory
	UserID     string // Empty if the slot is currently unassigned
	Supervisor bool
	Active     bool
}

// ShiftType is a named work-period template owned by plant configuration
type ShiftType struct {
	ID              string
	PlantID         string
	Name            string
	StartTime       string // "15:04"
	EndTime         string // "15:04"
	DurationMinutes int
	Night           bool
	HalfDay         bool
}

// Shift is a concrete assignment of a StaffSlot to a ShiftType on a date.
// At most one non-canceled Shift may exist per (StaffSlotID, Date).
type Shift struct {
	ID          string
	PlantID     string
	StaffSlotID string
	Date        string // DateLayout
	ShiftTypeID string
	Status      ShiftStatus
	DayType     DayType
	Night       bool
}

// MonthKey returns the YYYY-MM key the shift belongs to
func (s Shift) MonthKey() string {
	return MonthKeyOf(s.Date)
}

// IsActive returns true if the shift still occupies its slot's schedule
func (s Shift) IsActive() bool {
	return s.Status != ShiftCanceled
}

// ShiftRef identifies a shift request inside a preference: a date plus the
// shift type wanted or offered on that date
type ShiftRef struct {
	Date        string
	ShiftTypeID string
}

// Preference is a staff member's monthly submission of shifts they want to
// shed and shifts they are willing to take. One per (StaffSlotID, MonthKey).
type Preference struct {
	ID               string
	PlantID          string
	StaffSlotID      string
	MonthKey         string
	LookingForChange []ShiftRef
	WillingToWork    []ShiftRef
}

// WantsToWork returns true if the preference offers to take the given shift
func (p Preference) WantsToWork(date, shiftTypeID string) bool {
	for _, ref := range p.WillingToWork {
		if ref.Date == date && ref.ShiftTypeID == shiftTypeID {
			return true
		}
	}
	return false
}

// Participant is a staff slot taking part in a swap request
type Participant struct {
	StaffSlotID string
	Role        ParticipantRole
	Accepted    bool
}

// SwapShift is a single shift move inside a swap request
type SwapShift struct {
	ShiftID         string
	FromStaffSlotID string
	ToStaffSlotID   string
}

// TurnDebt records that one staff slot owes another a shift of a given
// hardness category. Created when a swap generates asymmetric hardship;
// Settled is toggled when repaid.
type TurnDebt struct {
	ID                  string
	PlantID             string
	DebtorStaffSlotID   string
	CreditorStaffSlotID string
	Category            Hardness
	SwapRequestID       string
	Settled             bool
	CreatedAt           time.Time
}

// SwapRequest is a proposed exchange between staff slots. Requests are never
// deleted; terminal states (APPROVED/REJECTED) end their lifecycle.
type SwapRequest struct {
	ID           string
	Type         SwapType
	PlantID      string
	Participants []Participant
	Moves        []SwapShift
	Debts        []TurnDebt
	Status       SwapStatus
	Mode         MatchMode
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HistoryEntry is an audit record appended when a swap request reaches a
// decision
type HistoryEntry struct {
	ID            string
	PlantID       string
	SwapRequestID string
	Action        string
	Actor         string
	Details       string
	OccurredAt    time.Time
}
