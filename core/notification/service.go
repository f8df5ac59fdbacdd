package notification

import (
	"errors"
	"net/mail"

	"github.com/google/uuid"

	"github.com/darasa-lms/darasa/core"
	"github.com/darasa-lms/darasa/core/user"
)

var ErrNotFound = errors.New("notification not found")

type (
	Repository interface {
		CreateNotification(n Notification) (Notification, error)
		GetNotificationByID(id string) (Notification, error)
		QueryUserNotifications(userID string) ([]Notification, error)
		MarkNotificationRead(id string) (Notification, error)
		MarkAllNotificationsRead(userID string) error
		DeleteNotification(id string) error
	}

	// UserRepository is the read-only view of user storage this service needs.
	UserRepository interface {
		GetUserByID(id string) (user.User, error)
	}

	Service struct {
		repo  Repository
		users UserRepository
		mail  core.EmailService // optional
		clock core.Clock
	}
)

func NewService(repo Repository, users UserRepository, mailSvc core.EmailService, clock core.Clock) *Service {
	return &Service{repo: repo, users: users, mail: mailSvc, clock: clock}
}

// Notify records a notification for the user and mirrors it by email when a
// mail service is configured. Email failures never fail the notification.
func (svc *Service) Notify(userID, title, message, kind string) (Notification, error) {
	n := Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      kind,
		CreatedAt: svc.clock.Now(),
	}
	n, err := svc.repo.CreateNotification(n)
	if err != nil {
		return Notification{}, err
	}

	if svc.mail != nil {
		if usr, err := svc.users.GetUserByID(userID); err == nil {
			svc.mail.SendMessages(&core.EmailMessage{
				To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
				Subject: title,
				Body:    message,
			})
		}
	}
	return n, nil
}

func (svc *Service) ForUser(userID string) ([]Notification, error) {
	return svc.repo.QueryUserNotifications(userID)
}

// MarkRead flags the notification as read. Only the owner may do so.
func (svc *Service) MarkRead(actor core.Actor, id string) (Notification, error) {
	n, err := svc.repo.GetNotificationByID(id)
	if err != nil {
		return Notification{}, err
	}
	if n.UserID != actor.ID && !actor.IsAdmin() {
		return Notification{}, core.ErrPermissionDenied
	}
	return svc.repo.MarkNotificationRead(id)
}

func (svc *Service) MarkAllRead(userID string) error {
	return svc.repo.MarkAllNotificationsRead(userID)
}

// Delete removes the notification. Only the owner may do so.
func (svc *Service) Delete(actor core.Actor, id string) error {
	n, err := svc.repo.GetNotificationByID(id)
	if err != nil {
		return err
	}
	if n.UserID != actor.ID && !actor.IsAdmin() {
		return core.ErrPermissionDenied
	}
	return svc.repo.DeleteNotification(id)
}
