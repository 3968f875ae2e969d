// Package db defines the flat record types exchanged with the persistence
// layer. Services convert between these records and the richer core model;
// store interfaces are declared next to the services that consume them.
package db

import "time"

// StaffSlot represents a database staff slot record
type StaffSlot struct {
	ID         string
	PlantID    string
	Name       string
	Category   string
	UserID     string
	Supervisor bool
	Active     bool
}

// ShiftType represents a database shift type record
type ShiftType struct {
	ID              string
	PlantID         string
	Name            string
	StartTime       string
	EndTime         string
	DurationMinutes int
	Night           bool
	HalfDay         bool
}

// Shift represents a database shift record
type Shift struct {
	ID          string
	PlantID     string
	StaffSlotID string
	Date        string
	ShiftTypeID string
	Status      string
	DayType     string
	Night       bool
}

// Preference represents a database preference header record
type Preference struct {
	ID          string
	PlantID     string
	StaffSlotID string
	MonthKey    string
}

// Preference entry kinds
const (
	EntryLookingForChange = "LOOKING_FOR_CHANGE"
	EntryWillingToWork    = "WILLING_TO_WORK"
)

// PreferenceEntry represents one (date, shift type) pair inside a preference
type PreferenceEntry struct {
	ID           string
	PreferenceID string
	Kind         string
	Date         string
	ShiftTypeID  string
}

// SwapRequest represents a database swap request header record
type SwapRequest struct {
	ID        string
	PlantID   string
	Type      string
	Status    string
	Mode      string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SwapParticipant represents a database swap participant record
type SwapParticipant struct {
	ID            string
	SwapRequestID string
	StaffSlotID   string
	Role          string
	Accepted      bool
}

// SwapMove represents a database swap move record
type SwapMove struct {
	ID              string
	SwapRequestID   string
	ShiftID         string
	FromStaffSlotID string
	ToStaffSlotID   string
}

// TurnDebt represents a database turn debt record
type TurnDebt struct {
	ID                  string
	PlantID             string
	DebtorStaffSlotID   string
	CreditorStaffSlotID string
	Category            string
	SwapRequestID       string
	Settled             bool
	CreatedAt           time.Time
}

// HistoryEntry represents a database history record
type HistoryEntry struct {
	ID            string
	PlantID       string
	SwapRequestID string
	Action        string
	Actor         string
	Details       string
	OccurredAt    time.Time
}
