package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/diabetes-care-service/internal/api/dto"
	"github.com/spec-kit/diabetes-care-service/internal/service"
	apperrors "github.com/spec-kit/diabetes-care-service/pkg/util"
)

// PatientsHandler exposes clinician-only patient management endpoints. Role
// gating happens in the router; these handlers assume an endocrinologist.
type PatientsHandler struct {
	patients *service.PatientService
	records  *service.RecordService
}

// NewPatientsHandler constructs handler.
func NewPatientsHandler(patientService *service.PatientService, recordService *service.RecordService) *PatientsHandler {
	return &PatientsHandler{patients: patientService, records: recordService}
}

// Create handles POST /api/patients.
func (h *PatientsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePatientRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" || req.FullName == "" || req.DiabetesType == "" {
		return apperrors.NewValidationError("username, password, full_name, diabetes_type required", nil)
	}
	dateOfBirth, err := parseDate(req.DateOfBirth, "date_of_birth")
	if err != nil {
		return err
	}

	patient, err := h.patients.Create(c.UserContext(), service.PatientCreateInput{
		Username:     req.Username,
		Password:     req.Password,
		FullName:     req.FullName,
		DateOfBirth:  dateOfBirth,
		DiabetesType: req.DiabetesType,
		ContactInfo:  req.ContactInfo,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": patientResponse(patient)})
}

// List handles GET /api/patients.
func (h *PatientsHandler) List(c *fiber.Ctx) error {
	patients, err := h.patients.List(c.UserContext())
	if err != nil {
		return err
	}

	items := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		items = append(items, patientResponse(&patients[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Update handles PUT /api/patients/:id.
func (h *PatientsHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdatePatientRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.FullName == "" || req.DiabetesType == "" {
		return apperrors.NewValidationError("full_name and diabetes_type required", nil)
	}
	dateOfBirth, err := parseDate(req.DateOfBirth, "date_of_birth")
	if err != nil {
		return err
	}

	if err := h.patients.Update(c.UserContext(), id, service.PatientUpdateInput{
		FullName:     req.FullName,
		DateOfBirth:  dateOfBirth,
		DiabetesType: req.DiabetesType,
		ContactInfo:  req.ContactInfo,
	}); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// Delete handles DELETE /api/patients/:id.
func (h *PatientsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.patients.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListReadings handles GET /api/patients/:patientId/readings.
func (h *PatientsHandler) ListReadings(c *fiber.Ctx) error {
	patientID, err := parseIDParam(c, "patientId")
	if err != nil {
		return err
	}
	readings, err := h.records.ListReadings(c.UserContext(), patientID)
	if err != nil {
		return err
	}

	items := make([]dto.ReadingResponse, 0, len(readings))
	for i := range readings {
		items = append(items, readingResponse(&readings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListEquipment handles GET /api/patients/:patientId/equipment.
func (h *PatientsHandler) ListEquipment(c *fiber.Ctx) error {
	patientID, err := parseIDParam(c, "patientId")
	if err != nil {
		return err
	}
	equipment, err := h.records.ListEquipment(c.UserContext(), patientID)
	if err != nil {
		return err
	}

	items := make([]dto.EquipmentResponse, 0, len(equipment))
	for i := range equipment {
		items = append(items, equipmentResponse(&equipment[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListConsumables handles GET /api/patients/:patientId/consumables.
func (h *PatientsHandler) ListConsumables(c *fiber.Ctx) error {
	patientID, err := parseIDParam(c, "patientId")
	if err != nil {
		return err
	}
	consumables, err := h.records.ListConsumables(c.UserContext(), patientID)
	if err != nil {
		return err
	}

	items := make([]dto.ConsumableResponse, 0, len(consumables))
	for i := range consumables {
		items = append(items, consumableResponse(&consumables[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
