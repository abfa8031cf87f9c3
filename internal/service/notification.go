package service

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"journeys/internal/domain"
	"journeys/internal/mail"
)

// NotificationService formats and sends the application's emails through an
// injected Mailer. Every send is best-effort: callers log failures and keep
// the primary operation's result.
type NotificationService struct {
	mailer      mail.Mailer
	operator    string
	frontendURL string
}

// NewNotificationService creates a new NotificationService. operator is the
// address contact-form relays go to; frontendURL is embedded in reset links.
func NewNotificationService(mailer mail.Mailer, operator, frontendURL string) *NotificationService {
	return &NotificationService{
		mailer:      mailer,
		operator:    operator,
		frontendURL: frontendURL,
	}
}

// BookingEmail carries the resolved display data for booking notifications.
type BookingEmail struct {
	CustomerName string
	DriverName   string
	VehicleNo    string
	GuideName    string
	SpotNames    []string
}

// SendWelcome sends the registration welcome email.
func (s *NotificationService) SendWelcome(ctx context.Context, user *domain.User) error {
	body := fmt.Sprintf("<h1>Hello %s!</h1><p>Welcome to Azure Journeys.</p>", html.EscapeString(user.Name))
	return s.mailer.Send(ctx, user.Email, "", "Welcome to Azure Journeys!", body)
}

// SendBookingConfirmation notifies the customer that the trip is booked.
func (s *NotificationService) SendBookingConfirmation(ctx context.Context, customer *domain.User, booking *domain.Booking, details BookingEmail) error {
	var body strings.Builder
	fmt.Fprintf(&body, "<h1>Hi %s,</h1><p>Your trip has been successfully booked!</p><ul>", html.EscapeString(details.CustomerName))
	fmt.Fprintf(&body, "<li><strong>Route:</strong> %s to %s</li>", html.EscapeString(booking.FromCity), html.EscapeString(booking.ToCity))
	fmt.Fprintf(&body, "<li><strong>Date:</strong> %s at %s</li>", html.EscapeString(booking.Date), html.EscapeString(booking.Time))
	fmt.Fprintf(&body, "<li><strong>Total Cost:</strong> ₹%.0f</li>", booking.TotalCost)
	fmt.Fprintf(&body, "<li><strong>Driver:</strong> %s</li>", html.EscapeString(details.DriverName))
	body.WriteString(spotListHTML(details.SpotNames))
	body.WriteString("</ul>")

	return s.mailer.Send(ctx, customer.Email, "", "Your Azure Journeys Trip is Confirmed!", body.String())
}

// SendDriverAssignment notifies the driver of a new trip.
func (s *NotificationService) SendDriverAssignment(ctx context.Context, driver *domain.User, booking *domain.Booking, details BookingEmail) error {
	var body strings.Builder
	fmt.Fprintf(&body, "<h1>Hello %s,</h1><p>New trip assignment:</p><ul>", html.EscapeString(driver.Name))
	fmt.Fprintf(&body, "<li><strong>Customer:</strong> %s</li>", html.EscapeString(details.CustomerName))
	fmt.Fprintf(&body, "<li><strong>Pickup:</strong> %s</li>", html.EscapeString(orNotSpecified(booking.DriverPickupLocation)))
	fmt.Fprintf(&body, "<li><strong>Route:</strong> %s to %s</li>", html.EscapeString(booking.FromCity), html.EscapeString(booking.ToCity))
	fmt.Fprintf(&body, "<li><strong>Date:</strong> %s at %s</li>", html.EscapeString(booking.Date), html.EscapeString(booking.Time))
	body.WriteString(spotListHTML(details.SpotNames))
	body.WriteString("</ul>")

	return s.mailer.Send(ctx, driver.Email, "", "New Trip Assigned to You!", body.String())
}

// SendGuideAssignment notifies the guide of a new trip.
func (s *NotificationService) SendGuideAssignment(ctx context.Context, guide *domain.User, booking *domain.Booking, details BookingEmail) error {
	var body strings.Builder
	fmt.Fprintf(&body, "<h1>Hello %s,</h1><p>New guide assignment:</p><ul>", html.EscapeString(guide.Name))
	fmt.Fprintf(&body, "<li><strong>Customer:</strong> %s</li>", html.EscapeString(details.CustomerName))
	fmt.Fprintf(&body, "<li><strong>Pickup:</strong> %s</li>", html.EscapeString(orNotSpecified(booking.GuidePickupLocation)))
	fmt.Fprintf(&body, "<li><strong>Date:</strong> %s at %s</li>", html.EscapeString(booking.Date), html.EscapeString(booking.Time))
	body.WriteString(spotListHTML(details.SpotNames))
	body.WriteString("</ul>")

	return s.mailer.Send(ctx, guide.Email, "", "New Guide Assignment!", body.String())
}

// SendPasswordReset sends the reset link embedding the token and email.
func (s *NotificationService) SendPasswordReset(ctx context.Context, user *domain.User, token string) error {
	resetURL := fmt.Sprintf("%s/#/reset-password?token=%s&email=%s", s.frontendURL, token, user.Email)
	body := fmt.Sprintf(`<p>You requested a password reset.</p><a href="%s">Reset Password</a>`, resetURL)
	return s.mailer.Send(ctx, user.Email, "", "Password Reset Request", body)
}

// ContactMessage is a contact-form submission relayed to the operator.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// SendContactMessage relays a contact submission to the operator address,
// with Reply-To pointing back at the submitter.
func (s *NotificationService) SendContactMessage(ctx context.Context, msg ContactMessage) error {
	subject := msg.Subject
	if subject == "" {
		subject = "General"
	}
	body := fmt.Sprintf("<h3>From: %s (%s)</h3><p>%s</p>",
		html.EscapeString(msg.Name), html.EscapeString(msg.Email), html.EscapeString(msg.Message))
	return s.mailer.Send(ctx, s.operator, msg.Email, "[Contact Form] "+subject, body)
}

// logSendFailure records a swallowed notification error.
func logSendFailure(kind, recipient string, err error) {
	log.Printf("email %s to %s failed: %v", kind, recipient, err)
}

func spotListHTML(names []string) string {
	if len(names) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<li><strong>Selected Tourist Spots:</strong><ul>")
	for _, name := range names {
		fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(name))
	}
	b.WriteString("</ul></li>")
	return b.String()
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
