package notification

import (
	"log"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
)

// Service persists user notifications. Delivery is fire-and-forget: Notify
// returns immediately and a failed write only produces a log line, never an
// error back to the financial flow that raised it.
type Service struct {
	repo repositories.NotificationRepository
}

func NewService(repo repositories.NotificationRepository) *Service {
	return &Service{repo: repo}
}

// Notify records a notification for the user in the background.
func (s *Service) Notify(userID uint, notificationType, title, message string, metadata models.JSON) {
	n := &models.Notification{
		UserID:   userID,
		Type:     notificationType,
		Title:    title,
		Message:  message,
		Metadata: metadata,
	}
	go func() {
		if err := s.repo.Create(n); err != nil {
			log.Printf("notification write failed for user %d: %v", userID, err)
		}
	}()
}

// List returns the user's notifications, newest first.
func (s *Service) List(userID uint, limit, offset int) ([]models.Notification, error) {
	return s.repo.ListByUser(userID, limit, offset)
}

// MarkRead flags one of the user's notifications as read.
func (s *Service) MarkRead(userID, notificationID uint) error {
	return s.repo.MarkRead(userID, notificationID)
}
