package service

import (
	"context"
	"log"

	"ecoport/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationPickupCreated  NotificationType = "PICKUP_CREATED"
	NotificationStatusChanged  NotificationType = "PICKUP_STATUS_CHANGED"
	NotificationDriverAssigned NotificationType = "DRIVER_ASSIGNED"
)

// NotificationService announces pickup lifecycle events. The pilot
// deployment logs them; a real channel (SMS, push) would slot in here.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyPickupCreated announces a new pickup request.
func (s *NotificationService) NotifyPickupCreated(ctx context.Context, pickup *domain.PickupRequest) error {
	log.Printf("[notify] %s pickup=%s distance=%.2fkm cost=%.2f",
		NotificationPickupCreated, pickup.ID, pickup.DistanceKm, pickup.EstimatedCost)
	return nil
}

// NotifyStatusChanged announces a pickup status transition.
func (s *NotificationService) NotifyStatusChanged(ctx context.Context, pickup *domain.PickupRequest) error {
	log.Printf("[notify] %s pickup=%s status=%s", NotificationStatusChanged, pickup.ID, pickup.Status)
	return nil
}

// NotifyDriverAssigned announces a driver assignment.
func (s *NotificationService) NotifyDriverAssigned(ctx context.Context, pickup *domain.PickupRequest, driver *domain.Driver) error {
	log.Printf("[notify] %s pickup=%s driver=%s (%s %s)",
		NotificationDriverAssigned, pickup.ID, driver.ID, driver.VehicleType, driver.VehicleNumber)
	return nil
}
