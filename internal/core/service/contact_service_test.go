package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/bakery-storefront/internal/core/domain"
)

// Mock SubmissionRepository
type mockSubmissionRepo struct {
	mu        sync.Mutex
	subs      []domain.Submission
	appendErr error
}

func (m *mockSubmissionRepo) AppendSubmission(ctx context.Context, sub domain.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	m.subs = append(m.subs, sub)
	return nil
}

func (m *mockSubmissionRepo) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Submission(nil), m.subs...), nil
}

func validForm() domain.ContactForm {
	return domain.ContactForm{
		Name:      "Grace",
		Email:     "grace@example.com",
		Phone:     "(206) 555-0100",
		OrderType: domain.OrderTypeWedding,
		Message:   "Three tier cake for June",
	}
}

func TestValidateContactForm(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *domain.ContactForm)
		want   error
	}{
		{"valid", func(f *domain.ContactForm) {}, nil},
		{"phone optional", func(f *domain.ContactForm) { f.Phone = "" }, nil},
		{"order type defaults", func(f *domain.ContactForm) { f.OrderType = "" }, nil},
		{"missing name", func(f *domain.ContactForm) { f.Name = "" }, ErrMissingFields},
		{"blank name", func(f *domain.ContactForm) { f.Name = "   " }, ErrMissingFields},
		{"missing email", func(f *domain.ContactForm) { f.Email = "" }, ErrMissingFields},
		{"missing message", func(f *domain.ContactForm) { f.Message = "" }, ErrMissingFields},
		{"email without at", func(f *domain.ContactForm) { f.Email = "grace.example.com" }, ErrInvalidEmail},
		{"email without tld", func(f *domain.ContactForm) { f.Email = "grace@example" }, ErrInvalidEmail},
		{"email with space", func(f *domain.ContactForm) { f.Email = "grace hopper@example.com" }, ErrInvalidEmail},
		{"email two ats", func(f *domain.ContactForm) { f.Email = "a@b@c.com" }, ErrInvalidEmail},
		{"unknown order type", func(f *domain.ContactForm) { f.OrderType = "bulk" }, ErrInvalidOrderType},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(&form)

			err := ValidateContactForm(form)
			if tc.want == nil && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func newTestContact(repo *mockSubmissionRepo) *ContactService {
	svc := NewContactService(repo, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 10, 17, 8, 0, 0, 0, time.FixedZone("PDT", -7*3600)) }
	return svc
}

func TestSubmit_Success(t *testing.T) {
	repo := &mockSubmissionRepo{}
	svc := newTestContact(repo)

	sub, err := svc.Submit(context.Background(), validForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.subs) != 1 {
		t.Fatalf("expected 1 stored submission, got %d", len(repo.subs))
	}
	if sub.ID == "" || repo.subs[0].ID != sub.ID {
		t.Errorf("expected stored id %q, got %q", sub.ID, repo.subs[0].ID)
	}
	if sub.Timestamp.Location() != time.UTC || sub.Timestamp.Hour() != 15 {
		t.Errorf("expected UTC timestamp, got %v", sub.Timestamp)
	}
	if sub.Name != "Grace" || sub.OrderType != domain.OrderTypeWedding {
		t.Errorf("unexpected submission: %+v", sub)
	}

	// Form reset to defaults
	if svc.Draft() != domain.NewContactForm() {
		t.Errorf("expected draft reset, got %+v", svc.Draft())
	}
}

func TestSubmit_DefaultsOrderType(t *testing.T) {
	svc := newTestContact(&mockSubmissionRepo{})
	form := validForm()
	form.OrderType = ""

	sub, err := svc.Submit(context.Background(), form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.OrderType != domain.OrderTypeGeneral {
		t.Errorf("expected general, got %s", sub.OrderType)
	}
}

func TestSubmit_ValidationFailureNoWrite(t *testing.T) {
	repo := &mockSubmissionRepo{}
	svc := newTestContact(repo)
	form := validForm()
	form.Email = "nope"

	_, err := svc.Submit(context.Background(), form)
	if !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if len(repo.subs) != 0 {
		t.Error("expected no write on validation failure")
	}
	if svc.Draft() != form {
		t.Error("expected draft kept for correction")
	}
}

func TestSubmit_StorageFailureSwallowed(t *testing.T) {
	repo := &mockSubmissionRepo{appendErr: errors.New("storage disabled")}
	svc := newTestContact(repo)

	if _, err := svc.Submit(context.Background(), validForm()); err != nil {
		t.Fatalf("storage failure must not surface, got: %v", err)
	}
	if svc.Draft() != domain.NewContactForm() {
		t.Error("expected draft reset")
	}
}

func TestSubmit_UniqueTimeOrderedIDs(t *testing.T) {
	repo := &mockSubmissionRepo{}
	svc := NewContactService(repo, zap.NewNop())
	ctx := context.Background()

	seen := make(map[string]bool)
	var prev string
	for i := 0; i < 50; i++ {
		sub, err := svc.Submit(ctx, validForm())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[sub.ID] {
			t.Fatalf("duplicate id %s", sub.ID)
		}
		seen[sub.ID] = true
		if prev != "" && strings.Compare(sub.ID, prev) <= 0 {
			t.Errorf("expected ids to increase: %s after %s", sub.ID, prev)
		}
		prev = sub.ID
	}
}

func TestSubmitDraft(t *testing.T) {
	repo := &mockSubmissionRepo{}
	svc := newTestContact(repo)
	ctx := context.Background()

	if _, err := svc.SubmitDraft(ctx); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields for blank form, got %v", err)
	}

	svc.UpdateDraft(validForm())
	if _, err := svc.SubmitDraft(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	subs, err := svc.Submissions(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 1 {
		t.Errorf("expected 1 submission, got %d", len(subs))
	}
}
