package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rl1809/bakery-storefront/internal/core/domain"
	"github.com/rl1809/bakery-storefront/internal/port"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactService validates contact form submissions and appends them to the
// submission log. It also holds the form draft so a successful submit can
// reset it.
type ContactService struct {
	repo   port.SubmissionRepository
	logger *zap.Logger
	now    func() time.Time
	newID  func() (string, error)
	draft  domain.ContactForm
}

func NewContactService(repo port.SubmissionRepository, logger *zap.Logger) *ContactService {
	return &ContactService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  newSubmissionID,
		draft:  domain.NewContactForm(),
	}
}

// newSubmissionID returns a UUIDv7, which sorts by creation time.
func newSubmissionID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func ValidateContactForm(form domain.ContactForm) error {
	if strings.TrimSpace(form.Name) == "" ||
		strings.TrimSpace(form.Email) == "" ||
		strings.TrimSpace(form.Message) == "" {
		return ErrMissingFields
	}
	if !emailPattern.MatchString(form.Email) {
		return ErrInvalidEmail
	}
	if form.OrderType != "" && !form.OrderType.Valid() {
		return errors.Wrapf(ErrInvalidOrderType, "order type %q", form.OrderType)
	}
	return nil
}

func (s *ContactService) Draft() domain.ContactForm {
	return s.draft
}

func (s *ContactService) UpdateDraft(form domain.ContactForm) {
	s.draft = form
}

// SubmitDraft validates and records the current draft. On success the draft
// is reset; on validation failure it is kept and nothing is written.
func (s *ContactService) SubmitDraft(ctx context.Context) (domain.Submission, error) {
	form := s.draft
	if err := ValidateContactForm(form); err != nil {
		return domain.Submission{}, err
	}
	if form.OrderType == "" {
		form.OrderType = domain.OrderTypeGeneral
	}

	id, err := s.newID()
	if err != nil {
		return domain.Submission{}, errors.Wrap(err, "generate submission id")
	}
	submission := domain.Submission{
		ContactForm: form,
		Timestamp:   s.now().UTC(),
		ID:          id,
	}

	if err := s.repo.AppendSubmission(ctx, submission); err != nil {
		s.logger.Warn("failed to persist contact submission",
			zap.Error(err), zap.String("submission_id", submission.ID))
	} else {
		s.logger.Info("contact submission recorded",
			zap.String("submission_id", submission.ID), zap.String("order_type", string(form.OrderType)))
	}

	s.draft = domain.NewContactForm()
	return submission, nil
}

func (s *ContactService) Submit(ctx context.Context, form domain.ContactForm) (domain.Submission, error) {
	s.UpdateDraft(form)
	return s.SubmitDraft(ctx)
}

func (s *ContactService) Submissions(ctx context.Context) ([]domain.Submission, error) {
	subs, err := s.repo.ListSubmissions(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list submissions")
	}
	return subs, nil
}
