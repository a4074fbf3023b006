package contact

import (
	"context"
	"fmt"
	"time"

	"caligold/internal/controller/apperror"
	"caligold/internal/domain/notify"
	"caligold/pkg/logger"
)

// Request is one contact-form submission.
type Request struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// Saved is the backend's record of a stored submission.
type Saved struct {
	ID int64 `json:"id,omitempty"`
}

// Result pairs the saved record with the per-channel notification outcome.
// The record being saved is the success criterion; notification failures are
// reported but never fail the submission.
type Result struct {
	Saved         Saved          `json:"data"`
	Notifications notify.Outcome `json:"emailNotifications"`
}

// Store is the backend contact endpoint.
type Store interface {
	CreateContact(ctx context.Context, req Request) (Saved, error)
}

// Notifier fires the two contact-form messages.
type Notifier interface {
	DispatchContact(ctx context.Context, n notify.ContactNotification) notify.Outcome
}

type Service struct {
	store    Store
	notifier Notifier
	now      func() time.Time
	logger   *logger.Logger
}

func NewService(store Store, notifier Notifier, l *logger.Logger) *Service {
	return &Service{store: store, notifier: notifier, now: time.Now, logger: l}
}

// Submit validates, persists and then notifies. Both notification channels
// run settle-all; their results are reflected in the response only.
func (s *Service) Submit(ctx context.Context, req Request) (Result, error) {
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return Result{}, fmt.Errorf("%w: name, email and message are required", apperror.ErrMissingField)
	}
	if req.Subject == "" {
		req.Subject = "Contact Form Submission"
	}

	saved, err := s.store.CreateContact(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("save contact: %w", err)
	}

	s.logger.Info("Contact form saved: id=%d from=%s", saved.ID, req.Email)

	outcome := s.notifier.DispatchContact(ctx, notify.ContactNotification{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Subject:     req.Subject,
		Body:        req.Message,
		SubmittedAt: s.now().UTC(),
	})

	return Result{Saved: saved, Notifications: outcome}, nil
}
