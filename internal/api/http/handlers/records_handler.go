package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/diabetes-care-service/internal/api/dto"
	"github.com/spec-kit/diabetes-care-service/internal/auth"
	"github.com/spec-kit/diabetes-care-service/internal/service"
	apperrors "github.com/spec-kit/diabetes-care-service/pkg/util"
)

// RecordsHandler exposes the creation endpoints open to both roles. The
// ownership rule is applied in the record service before any write.
type RecordsHandler struct {
	records *service.RecordService
}

// NewRecordsHandler constructs handler.
func NewRecordsHandler(recordService *service.RecordService) *RecordsHandler {
	return &RecordsHandler{records: recordService}
}

// CreateReading handles POST /api/readings.
func (h *RecordsHandler) CreateReading(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateReadingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PatientID == 0 || req.ReadingTime == "" {
		return apperrors.NewValidationError("glucose_level, reading_time, patient_id required", nil)
	}
	if req.GlucoseLevel <= 0 {
		return apperrors.NewValidationError("glucose_level must be positive", nil)
	}
	readingTime, err := parseTimestamp(req.ReadingTime, "reading_time")
	if err != nil {
		return err
	}

	reading, err := h.records.CreateReading(c.UserContext(), identity, service.ReadingCreateInput{
		PatientID:    req.PatientID,
		GlucoseLevel: req.GlucoseLevel,
		ReadingTime:  readingTime,
		Notes:        req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": readingResponse(reading)})
}

// CreateEquipment handles POST /api/equipment.
func (h *RecordsHandler) CreateEquipment(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateEquipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.PatientID == 0 {
		return apperrors.NewValidationError("name and patient_id required", nil)
	}
	purchaseDate, err := parseDate(req.PurchaseDate, "purchase_date")
	if err != nil {
		return err
	}
	warrantyExpiration, err := parseDate(req.WarrantyExpirationDate, "warranty_expiration_date")
	if err != nil {
		return err
	}

	equipment, err := h.records.CreateEquipment(c.UserContext(), identity, service.EquipmentCreateInput{
		PatientID:              req.PatientID,
		Name:                   req.Name,
		SerialNumber:           req.SerialNumber,
		PurchaseDate:           purchaseDate,
		WarrantyExpirationDate: warrantyExpiration,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": equipmentResponse(equipment)})
}

// CreateConsumable handles POST /api/consumables.
func (h *RecordsHandler) CreateConsumable(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateConsumableRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.PatientID == 0 {
		return apperrors.NewValidationError("name and patient_id required", nil)
	}
	expirationDate, err := parseDate(req.ExpirationDate, "expiration_date")
	if err != nil {
		return err
	}

	consumable, err := h.records.CreateConsumable(c.UserContext(), identity, service.ConsumableCreateInput{
		PatientID:      req.PatientID,
		Name:           req.Name,
		QuantityInPack: req.QuantityInPack,
		ExpirationDate: expirationDate,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": consumableResponse(consumable)})
}
