package port

import (
	"context"

	"github.com/rl1809/bakery-storefront/internal/core/domain"
)

type SubmissionRepository interface {
	// AppendSubmission adds a contact submission to the end of the log
	AppendSubmission(ctx context.Context, submission domain.Submission) error

	// ListSubmissions returns every submission in insertion order
	ListSubmissions(ctx context.Context) ([]domain.Submission, error)
}
