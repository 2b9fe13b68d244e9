package auth

import "github.com/spec-kit/diabetes-care-service/internal/domain"

// CanActForPatient is the ownership rule for patient-scoped writes.
// Endocrinologists may act for any patient id they supply; this full trust is
// deliberate and documented, not an oversight. Patients may only act for
// themselves.
func CanActForPatient(identity domain.Identity, patientID int64) bool {
	switch identity.Role {
	case domain.RoleEndocrinologist:
		return true
	case domain.RolePatient:
		return identity.SubjectID == patientID
	}
	return false
}
