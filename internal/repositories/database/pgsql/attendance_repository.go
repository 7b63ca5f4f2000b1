package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	"github.com/assacalos/easyconnect/internal/models"
	"github.com/assacalos/easyconnect/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const attendanceColumns = `
	attendance_id, user_id, punch_type, punched_at, latitude, longitude, address, notes, status,
	approved_by, approved_at, approval_comment, rejection_reason,
	created_at, created_by, last_updated_at, last_updated_by, version`

type PgxAttendanceRepository struct {
	BaseRepository
}

func newPgxAttendanceRepository(pool *pgxpool.Pool) portsrepo.AttendanceRepositoryFacade {
	return &PgxAttendanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AttendanceRepositoryFacade = (*PgxAttendanceRepository)(nil)

func scanAttendance(row pgx.Row) (models.Attendance, error) {
	var m models.Attendance
	err := row.Scan(
		&m.AttendanceID, &m.UserID, &m.PunchType, &m.PunchedAt, &m.Latitude, &m.Longitude, &m.Address, &m.Notes, &m.Status,
		&m.ApprovedBy, &m.ApprovedAt, &m.ApprovalComment, &m.RejectionReason,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	return m, err
}

func (r *PgxAttendanceRepository) FindAttendanceByID(ctx context.Context, attendanceID string) (*domain.Attendance, error) {
	m, err := scanAttendance(r.Pool.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendances WHERE attendance_id = $1`, attendanceID))
	if err != nil {
		return nil, notFoundOr(err, "attendance", attendanceID)
	}
	a := mapping.ToDomainAttendance(m)
	return &a, nil
}

func (r *PgxAttendanceRepository) ListAttendances(ctx context.Context, filter portsrepo.AttendanceFilter, params portsrepo.ListParams) ([]domain.Attendance, *string, error) {
	var conds []string
	var args []any
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	query, args, limit, err := pageQuery(`SELECT `+attendanceColumns+` FROM attendances`, conds, args, params, "created_at", "attendance_id")
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	list := []models.Attendance{}
	for rows.Next() {
		m, err := scanAttendance(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating attendance rows: %w", err)
	}
	list, next := trimPage(list, limit, func(m models.Attendance) (time.Time, string) { return m.CreatedAt, m.AttendanceID })
	return mapping.ToDomainAttendanceSlice(list), next, nil
}

// SavePunch locks the user row so concurrent punches of one user are decided one at a time.
func (r *PgxAttendanceRepository) SavePunch(ctx context.Context, userID string, decide portsrepo.PunchDecider) (*domain.Attendance, error) {
	var saved domain.Attendance
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var locked string
		if err := tx.QueryRow(ctx, `SELECT user_id FROM users WHERE user_id = $1 FOR UPDATE`, userID).Scan(&locked); err != nil {
			return notFoundOr(err, "user", userID)
		}

		var last *domain.Attendance
		m, err := scanAttendance(tx.QueryRow(ctx, `
			SELECT `+attendanceColumns+` FROM attendances
			WHERE user_id = $1 ORDER BY punched_at DESC, attendance_id DESC LIMIT 1`, userID))
		switch {
		case err == nil:
			a := mapping.ToDomainAttendance(m)
			last = &a
		case !errors.Is(err, pgx.ErrNoRows):
			return fmt.Errorf("failed to load latest punch: %w", err)
		}

		punch, err := decide(last)
		if err != nil {
			return err
		}

		n := mapping.ToModelAttendance(*punch)
		_, err = tx.Exec(ctx, `
			INSERT INTO attendances (`+attendanceColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
			n.AttendanceID, n.UserID, n.PunchType, n.PunchedAt, n.Latitude, n.Longitude, n.Address, n.Notes, n.Status,
			n.ApprovedBy, n.ApprovedAt, n.ApprovalComment, n.RejectionReason,
			n.CreatedAt, n.CreatedBy, n.LastUpdatedAt, n.LastUpdatedBy, n.Version,
		)
		if err != nil {
			return mapWriteError(err, "attendance "+n.AttendanceID)
		}
		saved = *punch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *PgxAttendanceRepository) UpdateAttendanceStatus(ctx context.Context, attendance domain.Attendance, expectedVersion int64) error {
	m := mapping.ToModelAttendance(attendance)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE attendances SET
			status = $1, approved_by = $2, approved_at = $3, approval_comment = $4, rejection_reason = $5,
			last_updated_at = $6, last_updated_by = $7, version = version + 1
		WHERE attendance_id = $8 AND version = $9`,
		m.Status, m.ApprovedBy, m.ApprovedAt, m.ApprovalComment, m.RejectionReason,
		m.LastUpdatedAt, m.LastUpdatedBy, m.AttendanceID, expectedVersion,
	)
	if err != nil {
		return mapWriteError(err, "attendance "+m.AttendanceID)
	}
	return expectOneRow(ctx, r.Pool, tag, "attendances", "attendance_id", "attendance", m.AttendanceID)
}
