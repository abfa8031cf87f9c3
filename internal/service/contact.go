package service

import "context"

// ContactService relays contact-form submissions to the operator mailbox.
type ContactService struct {
	notification *NotificationService
}

// NewContactService creates a new ContactService.
func NewContactService(notification *NotificationService) *ContactService {
	return &ContactService{notification: notification}
}

// Submit validates and relays a contact message. Unlike booking emails this
// send is the whole operation, so a failure is returned to the caller.
func (s *ContactService) Submit(ctx context.Context, msg ContactMessage) error {
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return ErrMissingContactFields
	}
	return s.notification.SendContactMessage(ctx, msg)
}
