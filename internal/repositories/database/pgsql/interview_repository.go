package pgsql

import (
	"context"

	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	"github.com/assacalos/easyconnect/internal/models"
	"github.com/assacalos/easyconnect/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const interviewColumns = `
	interview_id, application_id, interviewer_id, scheduled_at, interview_type, location, meeting_link,
	notes, feedback, status, completed_at,
	created_at, created_by, last_updated_at, last_updated_by, version`

type PgxInterviewRepository struct {
	BaseRepository
}

func newPgxInterviewRepository(pool *pgxpool.Pool) portsrepo.InterviewRepositoryFacade {
	return &PgxInterviewRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InterviewRepositoryFacade = (*PgxInterviewRepository)(nil)

func scanInterview(row pgx.Row) (models.Interview, error) {
	var m models.Interview
	err := row.Scan(
		&m.InterviewID, &m.ApplicationID, &m.InterviewerID, &m.ScheduledAt, &m.InterviewType, &m.Location, &m.MeetingLink,
		&m.Notes, &m.Feedback, &m.Status, &m.CompletedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	return m, err
}

func (r *PgxInterviewRepository) FindInterviewByID(ctx context.Context, interviewID string) (*domain.Interview, error) {
	m, err := scanInterview(r.Pool.QueryRow(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE interview_id = $1`, interviewID))
	if err != nil {
		return nil, notFoundOr(err, "interview", interviewID)
	}
	iv := mapping.ToDomainInterview(m)
	return &iv, nil
}

func (r *PgxInterviewRepository) SaveInterview(ctx context.Context, interview domain.Interview) error {
	m := mapping.ToModelInterview(interview)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO interviews (`+interviewColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		m.InterviewID, m.ApplicationID, m.InterviewerID, m.ScheduledAt, m.InterviewType, m.Location, m.MeetingLink,
		m.Notes, m.Feedback, m.Status, m.CompletedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		return mapWriteError(err, "interview "+m.InterviewID)
	}
	return nil
}

func (r *PgxInterviewRepository) UpdateInterview(ctx context.Context, interview domain.Interview, expectedVersion int64) error {
	m := mapping.ToModelInterview(interview)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE interviews SET
			interviewer_id = $1, scheduled_at = $2, interview_type = $3, location = $4, meeting_link = $5,
			notes = $6, feedback = $7, status = $8, completed_at = $9,
			last_updated_at = $10, last_updated_by = $11, version = version + 1
		WHERE interview_id = $12 AND version = $13`,
		m.InterviewerID, m.ScheduledAt, m.InterviewType, m.Location, m.MeetingLink,
		m.Notes, m.Feedback, m.Status, m.CompletedAt,
		m.LastUpdatedAt, m.LastUpdatedBy, m.InterviewID, expectedVersion,
	)
	if err != nil {
		return mapWriteError(err, "interview "+m.InterviewID)
	}
	return expectOneRow(ctx, r.Pool, tag, "interviews", "interview_id", "interview", m.InterviewID)
}
