// Package registration accepts attendee registrations and hands them to
// the persistence collaborator. Nothing here retries: a submission is either
// stored once or reported as failed.
package registration

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Vasu1712/zenith-backend/internal/models"
)

// Store persists registration records.
type Store interface {
	Create(ctx context.Context, r *models.Registration) error
	List(ctx context.Context) ([]*models.Registration, error)
	Count(ctx context.Context) (int64, error)
}

// Form is the submitted registration form.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	College string `json:"college"`
	Year    string `json:"year"`
	Phone   string `json:"phone"`
}

// ValidationError names the first required field that was left empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// Validate checks that every field is present. A field holding only
// whitespace counts as missing.
func (f Form) Validate() error {
	fields := []struct{ name, value string }{
		{"name", f.Name},
		{"email", f.Email},
		{"college", f.College},
		{"year", f.Year},
		{"phone", f.Phone},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			return &ValidationError{Field: field.name}
		}
	}
	return nil
}

// Service turns forms into stored records.
type Service struct {
	Store Store
	Now   func() time.Time
}

// NewService returns a Service writing to store.
func NewService(store Store) *Service {
	return &Service{Store: store, Now: time.Now}
}

// Register validates the form, stamps an id and creation time and stores
// the fields exactly as submitted. The store is called at most once.
func (s *Service) Register(ctx context.Context, f Form) (*models.Registration, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	rec := &models.Registration{
		ID:        uuid.NewString(),
		Name:      f.Name,
		Email:     f.Email,
		College:   f.College,
		Year:      f.Year,
		Phone:     f.Phone,
		CreatedAt: now().UTC(),
	}
	if err := s.Store.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("store registration: %w", err)
	}
	log.Printf("[Registration] stored %s (%s, %s)", rec.ID, rec.Email, rec.College)
	return rec, nil
}

// List returns every stored registration, oldest first.
func (s *Service) List(ctx context.Context) ([]*models.Registration, error) {
	return s.Store.List(ctx)
}

// Count returns the number of stored registrations.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.Store.Count(ctx)
}

// Submit implements Submitter for in-process callers.
func (s *Service) Submit(ctx context.Context, f Form) error {
	_, err := s.Register(ctx, f)
	return err
}
