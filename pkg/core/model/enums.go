package model

// StaffCategory classifies a staffing position. It is the authoritative role
// representation inside the engine; free-text legacy labels are normalized to
// this enum once at the system boundary (see roles.NormalizeLabel).
type StaffCategory string

const (
	CategoryNurse      StaffCategory = "NURSE"
	CategoryAuxiliary  StaffCategory = "AUXILIARY"
	CategorySupervisor StaffCategory = "SUPERVISOR"
)

func (c StaffCategory) IsValid() bool {
	return c == CategoryNurse || c == CategoryAuxiliary || c == CategorySupervisor
}

// ShiftStatus is the lifecycle status of a concrete shift assignment
type ShiftStatus string

const (
	ShiftAssigned ShiftStatus = "ASSIGNED"
	ShiftSwapped  ShiftStatus = "SWAPPED"
	ShiftCanceled ShiftStatus = "CANCELED"
)

func (s ShiftStatus) IsValid() bool {
	return s == ShiftAssigned || s == ShiftSwapped || s == ShiftCanceled
}

// DayType classifies the calendar day a shift falls on
type DayType string

const (
	DayWorkday DayType = "WORKDAY"
	DayWeekend DayType = "WEEKEND"
	DayHoliday DayType = "HOLIDAY"
)

// Hardness categorizes how burdensome a shift is. It drives fairness/debt
// bookkeeping only, never legality.
type Hardness string

const (
	HardnessNight   Hardness = "NIGHT"
	HardnessHoliday Hardness = "HOLIDAY"
	HardnessWeekend Hardness = "WEEKEND"
	HardnessRegular Hardness = "REGULAR"
)

// Rank orders hardness categories from lightest to heaviest.
// Used to decide which side of an exchange absorbs the harder shift.
func (h Hardness) Rank() int {
	switch h {
	case HardnessNight:
		return 3
	case HardnessHoliday:
		return 2
	case HardnessWeekend:
		return 1
	default:
		return 0
	}
}

// SwapType is the shape of a proposed exchange
type SwapType string

const (
	SwapExchange   SwapType = "EXCHANGE"
	SwapGift       SwapType = "GIFT"
	SwapMultiParty SwapType = "MULTI_PARTY"
)

// ParticipantRole describes how a staff slot takes part in a swap request
type ParticipantRole string

const (
	RoleGiver    ParticipantRole = "GIVER"
	RoleReceiver ParticipantRole = "RECEIVER"
	RoleSwapper  ParticipantRole = "SWAPPER"
)

// SwapStatus is the lifecycle state of a swap request
type SwapStatus string

const (
	// SwapPending is a pre-creation placeholder only; persisted requests
	// start at SwapPendingUsers
	SwapPending           SwapStatus = "PENDING"
	SwapPendingUsers      SwapStatus = "PENDING_USERS"
	SwapPendingSupervisor SwapStatus = "PENDING_SUPERVISOR"
	SwapApproved          SwapStatus = "APPROVED"
	SwapRejected          SwapStatus = "REJECTED"
)

// IsTerminal returns true once a request can no longer be mutated
func (s SwapStatus) IsTerminal() bool {
	return s == SwapApproved || s == SwapRejected
}

// MatchMode controls whether the matching engine may propose one-directional
// gifts in addition to balanced exchanges
type MatchMode string

const (
	ModeStrict   MatchMode = "STRICT"
	ModeFlexible MatchMode = "FLEXIBLE"
)

func (m MatchMode) IsValid() bool {
	return m == ModeStrict || m == ModeFlexible
}
