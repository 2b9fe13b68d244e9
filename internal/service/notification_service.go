package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/diabetes-care-service/internal/config"
	"github.com/spec-kit/diabetes-care-service/internal/events"
)

// NotificationService watches recorded readings and raises alerts when a
// glucose level falls outside the configured range. Delivery is best-effort
// and never influences the request that produced the reading.
type NotificationService struct {
	dispatcher events.Dispatcher
	cfg        config.AlertConfig
	logger     *zap.Logger
	httpClient *http.Client
}

// NewNotificationService builds the service.
func NewNotificationService(dispatcher events.Dispatcher, cfg config.AlertConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     logger,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// RegisterHandlers subscribes alert handling to the dispatcher.
func (s *NotificationService) RegisterHandlers() {
	s.dispatcher.Subscribe(events.EventReadingRecorded, s.handleReadingRecorded)
}

func (s *NotificationService) handleReadingRecorded(ctx context.Context, event events.Event) error {
	reading, ok := event.Payload.(events.ReadingRecorded)
	if !ok {
		return nil
	}

	severity := s.Classify(reading.GlucoseLevel)
	if severity == "" {
		return nil
	}

	s.logger.Warn("glucose alert",
		zap.String("severity", severity),
		zap.Int64("patient_id", reading.PatientID),
		zap.Float64("glucose_level", reading.GlucoseLevel),
		zap.Time("reading_time", reading.ReadingTime),
	)

	if s.cfg.WebhookURL != "" {
		s.postWebhook(ctx, severity, reading)
	}
	return nil
}

// Classify returns "low", "high", or "" for an in-range level.
func (s *NotificationService) Classify(glucoseLevel float64) string {
	switch {
	case glucoseLevel < s.cfg.GlucoseLow:
		return "low"
	case glucoseLevel > s.cfg.GlucoseHigh:
		return "high"
	}
	return ""
}

func (s *NotificationService) postWebhook(ctx context.Context, severity string, reading events.ReadingRecorded) {
	payload, err := json.Marshal(map[string]any{
		"severity":      severity,
		"patient_id":    reading.PatientID,
		"glucose_level": reading.GlucoseLevel,
		"reading_time":  reading.ReadingTime,
	})
	if err != nil {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("alert webhook failed", zap.Error(err))
		return
	}
	_ = resp.Body.Close()
}
