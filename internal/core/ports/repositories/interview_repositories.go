package repositories

import (
	"context"

	"github.com/assacalos/easyconnect/internal/core/domain"
)

// InterviewRepositoryFacade defines persistence for recruitment interviews.
type InterviewRepositoryFacade interface {
	FindInterviewByID(ctx context.Context, interviewID string) (*domain.Interview, error)
	SaveInterview(ctx context.Context, interview domain.Interview) error
	// UpdateInterview persists a transitioned interview guarded by expectedVersion.
	UpdateInterview(ctx context.Context, interview domain.Interview, expectedVersion int64) error
}
