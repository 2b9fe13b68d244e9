package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/diabetes-care-service/internal/domain"
)

func TestClinicianActsForAnyPatient(t *testing.T) {
	identity := domain.Identity{SubjectID: 1, Role: domain.RoleEndocrinologist}

	for _, patientID := range []int64{1, 2, 5, 999} {
		assert.True(t, CanActForPatient(identity, patientID), "patient %d", patientID)
	}
}

func TestPatientActsOnlyForSelf(t *testing.T) {
	identity := domain.Identity{SubjectID: 5, Role: domain.RolePatient}

	assert.True(t, CanActForPatient(identity, 5))
	assert.False(t, CanActForPatient(identity, 7))
	assert.False(t, CanActForPatient(identity, 0))
}

func TestUnknownRoleDenied(t *testing.T) {
	identity := domain.Identity{SubjectID: 5, Role: domain.Role("admin")}

	assert.False(t, CanActForPatient(identity, 5))
}
