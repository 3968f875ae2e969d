// Package roles decides which staff categories may take part in peer-to-peer
// swaps and which pairs are compatible. The typed StaffCategory enum is the
// only representation used internally; legacy free-text role labels are
// normalized to the enum once, at ingest, via NormalizeLabel.
package roles

import (
	"strings"

	"github.com/turnoswap/turnoswap/pkg/core/model"
)

// Known-role vocabularies, matched as case-insensitive substrings. Order
// matters in NormalizeLabel: "supervisora de enfermería" must resolve to
// SUPERVISOR and "auxiliar de enfermería" to AUXILIARY, so supervisor and
// auxiliary keywords are checked before the nurse family.
var (
	supervisorKeywords = []string{"supervis", "coordinador", "jefe"}
	auxiliaryKeywords  = []string{"auxiliar", "tcae"}
	nurseKeywords      = []string{"enfermer", "nurse", "due"}
)

// NormalizeLabel maps a legacy free-text role label to the typed category.
// Returns false for labels outside the known-role vocabulary.
func NormalizeLabel(label string) (model.StaffCategory, bool) {
	lower := strings.ToLower(strings.TrimSpace(label))
	if lower == "" {
		return "", false
	}
	if containsAny(lower, supervisorKeywords) {
		return model.CategorySupervisor, true
	}
	if containsAny(lower, auxiliaryKeywords) {
		return model.CategoryAuxiliary, true
	}
	if containsAny(lower, nurseKeywords) {
		return model.CategoryNurse, true
	}
	return "", false
}

// CanParticipate reports whether a category may take part in peer-to-peer
// swapping. Supervisors are structurally excluded.
func CanParticipate(category model.StaffCategory) bool {
	return category == model.CategoryNurse || category == model.CategoryAuxiliary
}

// AreCompatible reports whether two categories may swap shifts with each
// other: both must individually be allowed to participate and both must fall
// in the same bucket. Cross-category and any-supervisor pairings are always
// incompatible, a supervisor paired with itself included.
func AreCompatible(a, b model.StaffCategory) bool {
	return a == b && CanParticipate(a) && CanParticipate(b)
}

// CanParticipateLabel is the legacy-label convenience form of CanParticipate
func CanParticipateLabel(label string) bool {
	category, ok := NormalizeLabel(label)
	return ok && CanParticipate(category)
}

// AreCompatibleLabels is the legacy-label convenience form of AreCompatible
func AreCompatibleLabels(a, b string) bool {
	categoryA, okA := NormalizeLabel(a)
	categoryB, okB := NormalizeLabel(b)
	return okA && okB && AreCompatible(categoryA, categoryB)
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
