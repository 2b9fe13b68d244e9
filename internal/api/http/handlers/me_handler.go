package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/diabetes-care-service/internal/api/dto"
	"github.com/spec-kit/diabetes-care-service/internal/auth"
	"github.com/spec-kit/diabetes-care-service/internal/service"
	apperrors "github.com/spec-kit/diabetes-care-service/pkg/util"
)

// MeHandler exposes patient-only self-service endpoints, always scoped to the
// authenticated identity.
type MeHandler struct {
	patients *service.PatientService
	records  *service.RecordService
}

// NewMeHandler constructs handler.
func NewMeHandler(patientService *service.PatientService, recordService *service.RecordService) *MeHandler {
	return &MeHandler{patients: patientService, records: recordService}
}

// Profile handles GET /api/me.
func (h *MeHandler) Profile(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	patient, err := h.patients.Get(c.UserContext(), identity.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": patientResponse(patient)})
}

// Readings handles GET /api/me/readings.
func (h *MeHandler) Readings(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	readings, err := h.records.ListReadings(c.UserContext(), identity.SubjectID)
	if err != nil {
		return err
	}

	items := make([]dto.ReadingResponse, 0, len(readings))
	for i := range readings {
		items = append(items, readingResponse(&readings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
