// Package matching discovers valid swap and gift candidates from staff
// preferences. It is pure and deterministic: given identical snapshots it
// returns identical ranked lists, performs no I/O and never mutates its
// inputs. Every candidate it surfaces has already passed the full rules
// engine, so callers never see an illegal swap.
package matching

import (
	"sort"
	"strings"
	"time"

	"github.com/turnoswap/turnoswap/pkg/core/fairness"
	"github.com/turnoswap/turnoswap/pkg/core/model"
	"github.com/turnoswap/turnoswap/pkg/core/roles"
	"github.com/turnoswap/turnoswap/pkg/core/rules"
)

// Candidate scores
const (
	// ScoreExchange ranks balanced exchanges first: they are self-balancing
	// and create no net debt
	ScoreExchange = 100

	// ScoreGift ranks one-directional handoffs below exchanges: a gift
	// creates an obligation on the giver
	ScoreGift = 50
)

// SkipReason explains why a preference want produced no candidate lookup
type SkipReason string

const (
	// SkipMissingShift means a want referenced no concrete shift owned by
	// the preference's slot - likely a stale or partially-synced snapshot
	SkipMissingShift SkipReason = "MISSING_SHIFT"

	// SkipUnknownSlot means the preference's staff slot is absent from the
	// roster snapshot
	SkipUnknownSlot SkipReason = "UNKNOWN_SLOT"
)

// SkippedWant records a preference entry the engine could not act on. Skips
// are tolerated rather than fatal so matching stays robust to stale input
// snapshots, but they are surfaced here so callers can log and count them.
type SkippedWant struct {
	StaffSlotID string
	Want        model.ShiftRef
	Reason      SkipReason
}

// Snapshot is the immutable input for one matching evaluation: everything the
// persistence layer knows about a plant-month
type Snapshot struct {
	PlantID      string
	MonthKey     string
	Shifts       []model.Shift
	ShiftTypes   []model.ShiftType
	Preferences  []model.Preference
	StaffSlots   []model.StaffSlot
	Mode         model.MatchMode
	RequestedBy  string
	Now          time.Time
	NightMarkers []string

	// MaxConsecutive caps calendar-consecutive shift days; zero means
	// rules.DefaultMaxConsecutive
	MaxConsecutive int
}

// Candidate is a rule-checked swap proposal plus its ranking score
type Candidate struct {
	Request model.SwapRequest
	Score   int
}

// Outcome is the result of one matching run
type Outcome struct {
	// Candidates, sorted by descending score; insertion order breaks ties
	Candidates []Candidate

	// Skipped preference wants (see SkippedWant)
	Skipped []SkippedWant

	// Vetoed counts distinct preference pairings that matched but failed
	// swap validation, regardless of how many times they were discovered
	Vetoed int
}

// FindMatches produces the ranked list of swap candidates for a snapshot.
//
// For every shift a staff member wants to shed, the engine searches the
// preferences of same-category peers for either a reciprocal exchange (the
// peer takes this shift, this member takes one the peer wants to shed) or,
// under FLEXIBLE mode, a one-directional gift to a peer willing to work the
// shift. Each candidate is validated through rules.ValidateSwap on the
// reconstructed schedules before it is recorded.
func FindMatches(snap Snapshot) Outcome {
	var outcome Outcome

	slotsByID := make(map[string]model.StaffSlot, len(snap.StaffSlots))
	for _, slot := range snap.StaffSlots {
		slotsByID[slot.ID] = slot
	}
	labelsByShiftID := buildShiftLabels(snap.Shifts, snap.ShiftTypes)
	shiftsByID := make(map[string]model.Shift, len(snap.Shifts))
	shiftsByOwner := make(map[shiftKey]model.Shift, len(snap.Shifts))
	for _, shift := range snap.Shifts {
		shiftsByID[shift.ID] = shift
		if shift.IsActive() {
			shiftsByOwner[shiftKey{shift.StaffSlotID, shift.Date, shift.ShiftTypeID}] = shift
		}
	}

	// An exchange is discovered from both participants' perspectives; a
	// canonical move signature keeps each pairing to a single candidate
	seenMoves := make(map[string]bool)

	for _, pref := range snap.Preferences {
		slot, ok := slotsByID[pref.StaffSlotID]
		if !ok {
			for _, want := range pref.LookingForChange {
				outcome.Skipped = append(outcome.Skipped, SkippedWant{pref.StaffSlotID, want, SkipUnknownSlot})
			}
			continue
		}
		if !slot.Active || !roles.CanParticipate(slot.Category) {
			continue
		}

		for _, want := range pref.LookingForChange {
			unwanted, ok := shiftsByOwner[shiftKey{pref.StaffSlotID, want.Date, want.ShiftTypeID}]
			if !ok {
				// Nothing concrete to trade; tolerated but surfaced
				outcome.Skipped = append(outcome.Skipped, SkippedWant{pref.StaffSlotID, want, SkipMissingShift})
				continue
			}

			for _, peer := range snap.Preferences {
				if peer.StaffSlotID == pref.StaffSlotID {
					continue
				}
				peerSlot, ok := slotsByID[peer.StaffSlotID]
				if !ok || !peerSlot.Active {
					continue
				}
				if !roles.AreCompatible(slot.Category, peerSlot.Category) {
					continue
				}
				if !peer.WantsToWork(unwanted.Date, unwanted.ShiftTypeID) {
					continue
				}

				if returned, ok := findReciprocalShift(pref, peer, shiftsByOwner); ok {
					candidate, recorded := buildExchange(snap, unwanted, returned, pref, peer, shiftsByID, labelsByShiftID, seenMoves)
					if recorded {
						outcome.Candidates = append(outcome.Candidates, candidate)
					} else if candidate.Score < 0 {
						outcome.Vetoed++
					}
					continue
				}

				if snap.Mode == model.ModeFlexible {
					candidate, recorded := buildGift(snap, unwanted, pref, peer, shiftsByID, labelsByShiftID, seenMoves)
					if recorded {
						outcome.Candidates = append(outcome.Candidates, candidate)
					} else if candidate.Score < 0 {
						outcome.Vetoed++
					}
				}
			}
		}
	}

	// Exchanges before gifts; insertion order is preserved within a score
	sort.SliceStable(outcome.Candidates, func(i, j int) bool {
		return outcome.Candidates[i].Score > outcome.Candidates[j].Score
	})

	return outcome
}

type shiftKey struct {
	staffSlotID string
	date        string
	shiftTypeID string
}

// findReciprocalShift looks for a shift the peer wants to shed that the
// proposer is willing to take in return
func findReciprocalShift(pref, peer model.Preference, shiftsByOwner map[shiftKey]model.Shift) (model.Shift, bool) {
	for _, peerWant := range peer.LookingForChange {
		returned, ok := shiftsByOwner[shiftKey{peer.StaffSlotID, peerWant.Date, peerWant.ShiftTypeID}]
		if !ok {
			continue
		}
		if pref.WantsToWork(returned.Date, returned.ShiftTypeID) {
			return returned, true
		}
	}
	return model.Shift{}, false
}

// buildExchange validates and assembles a two-way exchange candidate.
// Returns recorded=false when the pairing is a duplicate (Score 0) or vetoed
// by the rules engine (Score -1).
func buildExchange(
	snap Snapshot,
	unwanted, returned model.Shift,
	pref, peer model.Preference,
	shiftsByID map[string]model.Shift,
	labels map[string]string,
	seenMoves map[string]bool,
) (Candidate, bool) {
	moves := []model.SwapShift{
		{ShiftID: unwanted.ID, FromStaffSlotID: pref.StaffSlotID, ToStaffSlotID: peer.StaffSlotID},
		{ShiftID: returned.ID, FromStaffSlotID: peer.StaffSlotID, ToStaffSlotID: pref.StaffSlotID},
	}

	signature := moveSignature(moves)
	if seenMoves[signature] {
		return Candidate{}, false
	}

	proposed := []model.Shift{
		reassigned(unwanted, peer.StaffSlotID),
		reassigned(returned, pref.StaffSlotID),
	}
	if result := rules.ValidateSwap(snap.Shifts, proposed, snap.StaffSlots, snap.MaxConsecutive); !result.Valid {
		// Recorded so the mirrored discovery does not veto the pairing again
		seenMoves[signature] = true
		return Candidate{Score: -1}, false
	}
	seenMoves[signature] = true

	request := model.SwapRequest{
		Type:    model.SwapExchange,
		PlantID: snap.PlantID,
		Participants: []model.Participant{
			{StaffSlotID: pref.StaffSlotID, Role: model.RoleSwapper},
			{StaffSlotID: peer.StaffSlotID, Role: model.RoleSwapper},
		},
		Moves:     moves,
		Debts:     fairness.BuildDebts(model.SwapExchange, moves, shiftsByID, labels, snap.NightMarkers),
		Status:    model.SwapPendingUsers,
		Mode:      snap.Mode,
		CreatedBy: snap.RequestedBy,
		CreatedAt: snap.Now,
		UpdatedAt: snap.Now,
	}
	return Candidate{Request: request, Score: ScoreExchange}, true
}

// buildGift validates and assembles a one-directional gift candidate
func buildGift(
	snap Snapshot,
	unwanted model.Shift,
	pref, peer model.Preference,
	shiftsByID map[string]model.Shift,
	labels map[string]string,
	seenMoves map[string]bool,
) (Candidate, bool) {
	moves := []model.SwapShift{
		{ShiftID: unwanted.ID, FromStaffSlotID: pref.StaffSlotID, ToStaffSlotID: peer.StaffSlotID},
	}

	signature := moveSignature(moves)
	if seenMoves[signature] {
		return Candidate{}, false
	}

	proposed := []model.Shift{reassigned(unwanted, peer.StaffSlotID)}
	if result := rules.ValidateSwap(snap.Shifts, proposed, snap.StaffSlots, snap.MaxConsecutive); !result.Valid {
		seenMoves[signature] = true
		return Candidate{Score: -1}, false
	}
	seenMoves[signature] = true

	request := model.SwapRequest{
		Type:    model.SwapGift,
		PlantID: snap.PlantID,
		Participants: []model.Participant{
			{StaffSlotID: pref.StaffSlotID, Role: model.RoleGiver},
			{StaffSlotID: peer.StaffSlotID, Role: model.RoleReceiver},
		},
		Moves:     moves,
		Debts:     fairness.BuildDebts(model.SwapGift, moves, shiftsByID, labels, snap.NightMarkers),
		Status:    model.SwapPendingUsers,
		Mode:      snap.Mode,
		CreatedBy: snap.RequestedBy,
		CreatedAt: snap.Now,
		UpdatedAt: snap.Now,
	}
	return Candidate{Request: request, Score: ScoreGift}, true
}

func reassigned(shift model.Shift, toStaffSlotID string) model.Shift {
	shift.StaffSlotID = toStaffSlotID
	return shift
}

func buildShiftLabels(shifts []model.Shift, shiftTypes []model.ShiftType) map[string]string {
	namesByTypeID := make(map[string]string, len(shiftTypes))
	for _, st := range shiftTypes {
		namesByTypeID[st.ID] = st.Name
	}
	labels := make(map[string]string, len(shifts))
	for _, shift := range shifts {
		labels[shift.ID] = namesByTypeID[shift.ShiftTypeID]
	}
	return labels
}

// moveSignature builds a canonical key for a move set, independent of
// discovery direction
func moveSignature(moves []model.SwapShift) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.ShiftID + ">" + m.ToStaffSlotID
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}
