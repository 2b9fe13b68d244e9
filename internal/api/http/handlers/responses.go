package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/diabetes-care-service/internal/api/dto"
	"github.com/spec-kit/diabetes-care-service/internal/domain"
	apperrors "github.com/spec-kit/diabetes-care-service/pkg/util"
)

const dateLayout = "2006-01-02"

func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, nil)
	}
	return id, nil
}

// parseDate accepts an optional YYYY-MM-DD string.
func parseDate(value *string, field string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, apperrors.NewValidationError(field+" must be YYYY-MM-DD", nil)
	}
	return &parsed, nil
}

// parseTimestamp accepts RFC3339 or a bare date.
func parseTimestamp(value, field string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(field+" must be an RFC3339 timestamp", nil)
	}
	return parsed, nil
}

func patientResponse(patient *domain.Patient) dto.PatientResponse {
	return dto.PatientResponse{
		ID:           patient.ID,
		Username:     patient.Username,
		FullName:     patient.FullName,
		DateOfBirth:  patient.DateOfBirth,
		DiabetesType: patient.DiabetesType,
		ContactInfo:  patient.ContactInfo,
		CreatedAt:    patient.CreatedAt,
	}
}

func readingResponse(reading *domain.Reading) dto.ReadingResponse {
	return dto.ReadingResponse{
		ID:           reading.ID,
		PatientID:    reading.PatientID,
		GlucoseLevel: reading.GlucoseLevel,
		ReadingTime:  reading.ReadingTime,
		Notes:        reading.Notes,
		CreatedAt:    reading.CreatedAt,
	}
}

func equipmentResponse(equipment *domain.Equipment) dto.EquipmentResponse {
	return dto.EquipmentResponse{
		ID:                     equipment.ID,
		PatientID:              equipment.PatientID,
		Name:                   equipment.Name,
		SerialNumber:           equipment.SerialNumber,
		PurchaseDate:           equipment.PurchaseDate,
		WarrantyExpirationDate: equipment.WarrantyExpirationDate,
		CreatedAt:              equipment.CreatedAt,
	}
}

func consumableResponse(consumable *domain.Consumable) dto.ConsumableResponse {
	return dto.ConsumableResponse{
		ID:             consumable.ID,
		PatientID:      consumable.PatientID,
		Name:           consumable.Name,
		QuantityInPack: consumable.QuantityInPack,
		ExpirationDate: consumable.ExpirationDate,
		CreatedAt:      consumable.CreatedAt,
	}
}
