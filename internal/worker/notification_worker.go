package worker

import (
	"github.com/spec-kit/diabetes-care-service/internal/service"
)

// StartNotificationWorker registers glucose alert handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
