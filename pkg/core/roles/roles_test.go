package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turnoswap/turnoswap/pkg/core/model"
)

func TestNormalizeLabel_KnownLabels(t *testing.T) {
	cases := []struct {
		label    string
		expected model.StaffCategory
	}{
		{"Enfermera", model.CategoryNurse},
		{"enfermero", model.CategoryNurse},
		{"DUE", model.CategoryNurse},
		{"Nurse", model.CategoryNurse},
		{"Auxiliar", model.CategoryAuxiliary},
		{"TCAE", model.CategoryAuxiliary},
		{"auxiliar de enfermería", model.CategoryAuxiliary},
		{"Supervisora", model.CategorySupervisor},
		{"supervisora de enfermería", model.CategorySupervisor},
		{"Coordinadora de planta", model.CategorySupervisor},
		{"Jefe de unidad", model.CategorySupervisor},
		{"  Enfermera  ", model.CategoryNurse},
	}

	for _, tc := range cases {
		category, ok := NormalizeLabel(tc.label)
		assert.True(t, ok, "label %q should normalize", tc.label)
		assert.Equal(t, tc.expected, category, "label %q", tc.label)
	}
}

func TestNormalizeLabel_UnknownLabels(t *testing.T) {
	for _, label := range []string{"", "   ", "Celador", "Médico"} {
		_, ok := NormalizeLabel(label)
		assert.False(t, ok, "label %q should not normalize", label)
	}
}

func TestCanParticipate(t *testing.T) {
	assert.True(t, CanParticipate(model.CategoryNurse))
	assert.True(t, CanParticipate(model.CategoryAuxiliary))
	assert.False(t, CanParticipate(model.CategorySupervisor))
	assert.False(t, CanParticipate(model.StaffCategory("CLEANER")))
}

func TestAreCompatible_SameCategory(t *testing.T) {
	assert.True(t, AreCompatible(model.CategoryNurse, model.CategoryNurse))
	assert.True(t, AreCompatible(model.CategoryAuxiliary, model.CategoryAuxiliary))
}

func TestAreCompatible_CrossCategory(t *testing.T) {
	assert.False(t, AreCompatible(model.CategoryNurse, model.CategoryAuxiliary))
	assert.False(t, AreCompatible(model.CategoryAuxiliary, model.CategoryNurse))
}

func TestAreCompatible_SupervisorNeverCompatible(t *testing.T) {
	// Supervisors cannot swap with anyone, themselves included
	assert.False(t, AreCompatible(model.CategorySupervisor, model.CategorySupervisor))
	assert.False(t, AreCompatible(model.CategorySupervisor, model.CategoryNurse))
	assert.False(t, AreCompatible(model.CategoryNurse, model.CategorySupervisor))
}

func TestAreCompatible_Symmetry(t *testing.T) {
	categories := []model.StaffCategory{
		model.CategoryNurse,
		model.CategoryAuxiliary,
		model.CategorySupervisor,
	}
	for _, a := range categories {
		for _, b := range categories {
			assert.Equal(t, AreCompatible(a, b), AreCompatible(b, a), "compatibility of %s and %s must be symmetric", a, b)
		}
	}
}

func TestCanParticipateLabel(t *testing.T) {
	assert.True(t, CanParticipateLabel("Enfermera"))
	assert.True(t, CanParticipateLabel("auxiliar de enfermería"))
	assert.False(t, CanParticipateLabel("Supervisora de enfermería"))
	assert.False(t, CanParticipateLabel("Celador"))
}

func TestAreCompatibleLabels(t *testing.T) {
	assert.True(t, AreCompatibleLabels("Enfermera", "Nurse"))
	assert.False(t, AreCompatibleLabels("Enfermera", "Auxiliar"))
	assert.False(t, AreCompatibleLabels("Enfermera", "Celador"))
}
