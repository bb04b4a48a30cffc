package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"portfolio/internal/model"

	"github.com/google/uuid"
)

// ContactMessage is a validated submission of the public contact form.
type ContactMessage struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// Notifier delivers contact submissions to the portfolio owner.
type Notifier interface {
	Notify(ctx context.Context, msg ContactMessage) error
}

type ContactService struct {
	validator *model.Validator
	notifier  Notifier
	now       func() time.Time
}

func NewContactService(v *model.Validator, n Notifier) *ContactService {
	return &ContactService{validator: v, notifier: n, now: time.Now}
}

// Submit validates a raw contact form body and hands it to the notifier.
// Validation failures come back as *model.ValidationError or
// model.ErrMalformed.
func (s *ContactService) Submit(ctx context.Context, body []byte) (ContactMessage, error) {
	if err := s.validator.Validate(model.Contact, body); err != nil {
		return ContactMessage{}, err
	}
	var form struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &form); err != nil {
		return ContactMessage{}, model.ErrMalformed
	}
	msg := ContactMessage{
		ID:         uuid.New(),
		Name:       form.Name,
		Email:      form.Email,
		Subject:    form.Subject,
		Message:    form.Message,
		ReceivedAt: s.now().UTC(),
	}

	slog.Info("contact form submission", "id", msg.ID.String(), "name", msg.Name, "email", msg.Email, "subject", msg.Subject)

	if err := s.notifier.Notify(ctx, msg); err != nil {
		return ContactMessage{}, fmt.Errorf("deliver contact message %s: %w", msg.ID, err)
	}
	return msg, nil
}
