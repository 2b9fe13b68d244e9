package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/diabetes-care-service/internal/config"
	"github.com/spec-kit/diabetes-care-service/internal/events"
)

func alertConfig(webhookURL string) config.AlertConfig {
	return config.AlertConfig{GlucoseLow: 3.9, GlucoseHigh: 11.1, WebhookURL: webhookURL}
}

func TestClassify(t *testing.T) {
	svc := NewNotificationService(events.NewInMemoryDispatcher(), alertConfig(""), zap.NewNop())

	assert.Equal(t, "low", svc.Classify(2.0))
	assert.Equal(t, "", svc.Classify(3.9))
	assert.Equal(t, "", svc.Classify(6.5))
	assert.Equal(t, "", svc.Classify(11.1))
	assert.Equal(t, "high", svc.Classify(15.0))
}

func TestOutOfRangeReadingTriggersWebhook(t *testing.T) {
	received := make(chan map[string]any, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		received <- payload
	}))
	defer server.Close()

	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, alertConfig(server.URL), zap.NewNop())
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventReadingRecorded,
		Payload: events.ReadingRecorded{
			ReadingID:    1,
			PatientID:    5,
			GlucoseLevel: 18.4,
			ReadingTime:  time.Now(),
		},
	})
	require.NoError(t, err)

	select {
	case payload := <-received:
		assert.Equal(t, "high", payload["severity"])
		assert.Equal(t, float64(5), payload["patient_id"])
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was not called")
	}
}

func TestInRangeReadingIsSilent(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, alertConfig(server.URL), zap.NewNop())
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventReadingRecorded,
		Payload: events.ReadingRecorded{
			ReadingID:    2,
			PatientID:    5,
			GlucoseLevel: 6.0,
			ReadingTime:  time.Now(),
		},
	})
	require.NoError(t, err)
	assert.False(t, called)
}
