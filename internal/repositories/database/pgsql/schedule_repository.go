package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	"github.com/assacalos/easyconnect/internal/models"
	"github.com/assacalos/easyconnect/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const scheduleColumns = `
	schedule_id, payment_id, start_date, end_date, frequency, total_installments, installment_amount,
	paid_installments, next_payment_date, status, description, installments_generated,
	created_at, created_by, last_updated_at, last_updated_by, version`

const installmentColumns = `
	installment_id, schedule_id, sequence_number, due_date, amount, status, paid_at, paid_by, notes,
	created_at, created_by, last_updated_at, last_updated_by, version`

type PgxScheduleRepository struct {
	BaseRepository
}

func newPgxScheduleRepository(pool *pgxpool.Pool) portsrepo.ScheduleRepositoryFacade {
	return &PgxScheduleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ScheduleRepositoryFacade = (*PgxScheduleRepository)(nil)

func scanSchedule(row pgx.Row) (models.PaymentSchedule, error) {
	var m models.PaymentSchedule
	err := row.Scan(
		&m.ScheduleID, &m.PaymentID, &m.StartDate, &m.EndDate, &m.Frequency, &m.TotalInstallments, &m.InstallmentAmount,
		&m.PaidInstallments, &m.NextPaymentDate, &m.Status, &m.Description, &m.InstallmentsGenerated,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	return m, err
}

func scanInstallment(row pgx.Row) (models.Installment, error) {
	var m models.Installment
	err := row.Scan(
		&m.InstallmentID, &m.ScheduleID, &m.SequenceNumber, &m.DueDate, &m.Amount, &m.Status, &m.PaidAt, &m.PaidBy, &m.Notes,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	return m, err
}

func queryInstallments(ctx context.Context, q querier, query string, args ...any) ([]models.Installment, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments: %w", err)
	}
	defer rows.Close()
	out := []models.Installment{}
	for rows.Next() {
		m, err := scanInstallment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PgxScheduleRepository) FindScheduleByID(ctx context.Context, scheduleID string) (*domain.PaymentSchedule, error) {
	m, err := scanSchedule(r.Pool.QueryRow(ctx, `SELECT `+scheduleColumns+` FROM payment_schedules WHERE schedule_id = $1`, scheduleID))
	if err != nil {
		return nil, notFoundOr(err, "schedule", scheduleID)
	}
	s := mapping.ToDomainSchedule(m)
	return &s, nil
}

func (r *PgxScheduleRepository) FindInstallmentsBySchedule(ctx context.Context, scheduleID string) ([]domain.Installment, error) {
	list, err := queryInstallments(ctx, r.Pool,
		`SELECT `+installmentColumns+` FROM installments WHERE schedule_id = $1 ORDER BY sequence_number`, scheduleID)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainInstallmentSlice(list), nil
}

func (r *PgxScheduleRepository) FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	m, err := scanInstallment(r.Pool.QueryRow(ctx, `SELECT `+installmentColumns+` FROM installments WHERE installment_id = $1`, installmentID))
	if err != nil {
		return nil, notFoundOr(err, "installment", installmentID)
	}
	i := mapping.ToDomainInstallment(m)
	return &i, nil
}

func (r *PgxScheduleRepository) ListSchedules(ctx context.Context, status *domain.ScheduleStatus, params portsrepo.ListParams) ([]domain.PaymentSchedule, *string, error) {
	var conds []string
	var args []any
	if status != nil {
		args = append(args, string(*status))
		conds = append(conds, "status = $1")
	}
	query, args, limit, err := pageQuery(`SELECT `+scheduleColumns+` FROM payment_schedules`, conds, args, params, "created_at", "schedule_id")
	if err != nil {
		return nil, nil, err
	}
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	list := []models.PaymentSchedule{}
	for rows.Next() {
		m, err := scanSchedule(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan schedule row: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating schedule rows: %w", err)
	}
	list, next := trimPage(list, limit, func(m models.PaymentSchedule) (time.Time, string) { return m.CreatedAt, m.ScheduleID })
	return mapping.ToDomainScheduleSlice(list), next, nil
}

func (r *PgxScheduleRepository) GetScheduleStats(ctx context.Context) (*domain.ScheduleStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'paused'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COALESCE(SUM(installment_amount * total_installments), 0),
			COALESCE(SUM(installment_amount * paid_installments), 0)
		FROM payment_schedules`
	var s domain.ScheduleStats
	var total, paid decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query).Scan(&s.Total, &s.Active, &s.Paused, &s.Completed, &s.Cancelled, &total, &paid); err != nil {
		return nil, fmt.Errorf("failed to compute schedule stats: %w", err)
	}
	s.TotalAmount, s.PaidAmount = total, paid
	return &s, nil
}

func (r *PgxScheduleRepository) ListPendingInstallmentsDue(ctx context.Context, from, to time.Time) ([]domain.Installment, error) {
	list, err := queryInstallments(ctx, r.Pool, `
		SELECT `+prefixed("i.", installmentColumns)+`
		FROM installments i
		JOIN payment_schedules s ON s.schedule_id = i.schedule_id
		WHERE i.status = 'pending' AND s.status = 'active' AND i.due_date >= $1 AND i.due_date < $2
		ORDER BY i.due_date, i.sequence_number`, from, to)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainInstallmentSlice(list), nil
}

func (r *PgxScheduleRepository) SaveSchedule(ctx context.Context, schedule domain.PaymentSchedule) error {
	return insertSchedule(ctx, r.Pool, mapping.ToModelSchedule(schedule))
}

// insertSchedule is shared with payment creation, which runs it inside its own transaction.
func insertSchedule(ctx context.Context, q querier, m models.PaymentSchedule) error {
	_, err := q.Exec(ctx, `
		INSERT INTO payment_schedules (`+scheduleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		m.ScheduleID, m.PaymentID, m.StartDate, m.EndDate, m.Frequency, m.TotalInstallments, m.InstallmentAmount,
		m.PaidInstallments, m.NextPaymentDate, m.Status, m.Description, m.InstallmentsGenerated,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		return mapWriteError(err, "schedule "+m.ScheduleID)
	}
	return nil
}

func (r *PgxScheduleRepository) SaveGeneratedInstallments(ctx context.Context, schedule domain.PaymentSchedule, expectedVersion int64, installments []domain.Installment) error {
	s := mapping.ToModelSchedule(schedule)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		var generated bool
		var version int64
		err := tx.QueryRow(ctx, `SELECT installments_generated, version FROM payment_schedules WHERE schedule_id = $1 FOR UPDATE`, s.ScheduleID).
			Scan(&generated, &version)
		if err != nil {
			return notFoundOr(err, "schedule", s.ScheduleID)
		}
		if generated {
			return fmt.Errorf("%w: schedule %s", apperrors.ErrAlreadyGenerated, s.ScheduleID)
		}
		if version != expectedVersion {
			return apperrors.NewConflictError("schedule", s.ScheduleID)
		}

		batch := &pgx.Batch{}
		for _, inst := range installments {
			m := mapping.ToModelInstallment(inst)
			batch.Queue(`INSERT INTO installments (`+installmentColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
				m.InstallmentID, m.ScheduleID, m.SequenceNumber, m.DueDate, m.Amount, m.Status, m.PaidAt, m.PaidBy, m.Notes,
				m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
			)
		}
		batch.Queue(`
			UPDATE payment_schedules
			SET installments_generated = TRUE, next_payment_date = $1, last_updated_at = $2, last_updated_by = $3, version = version + 1
			WHERE schedule_id = $4`,
			s.NextPaymentDate, s.LastUpdatedAt, s.LastUpdatedBy, s.ScheduleID,
		)
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return mapWriteError(err, "installments of schedule "+s.ScheduleID)
		}
		return nil
	})
}

func (r *PgxScheduleRepository) UpdateScheduleStatus(ctx context.Context, schedule domain.PaymentSchedule, expectedVersion int64) error {
	m := mapping.ToModelSchedule(schedule)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE payment_schedules SET status = $1, last_updated_at = $2, last_updated_by = $3, version = version + 1
		WHERE schedule_id = $4 AND version = $5`,
		m.Status, m.LastUpdatedAt, m.LastUpdatedBy, m.ScheduleID, expectedVersion,
	)
	if err != nil {
		return mapWriteError(err, "schedule "+m.ScheduleID)
	}
	return expectOneRow(ctx, r.Pool, tag, "payment_schedules", "schedule_id", "schedule", m.ScheduleID)
}

// PayInstallment holds the schedule row lock for the whole payment, so two payments
// on one schedule serialize and the paid counter never drifts.
func (r *PgxScheduleRepository) PayInstallment(ctx context.Context, installmentID string, pay portsrepo.InstallmentPayer) (*domain.PaymentSchedule, *domain.Installment, error) {
	var schedule domain.PaymentSchedule
	var paid *domain.Installment

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var scheduleID string
		if err := tx.QueryRow(ctx, `SELECT schedule_id FROM installments WHERE installment_id = $1`, installmentID).Scan(&scheduleID); err != nil {
			return notFoundOr(err, "installment", installmentID)
		}
		sm, err := scanSchedule(tx.QueryRow(ctx, `SELECT `+scheduleColumns+` FROM payment_schedules WHERE schedule_id = $1 FOR UPDATE`, scheduleID))
		if err != nil {
			return notFoundOr(err, "schedule", scheduleID)
		}
		ims, err := queryInstallments(ctx, tx,
			`SELECT `+installmentColumns+` FROM installments WHERE schedule_id = $1 ORDER BY sequence_number FOR UPDATE`, scheduleID)
		if err != nil {
			return err
		}

		schedule = mapping.ToDomainSchedule(sm)
		installments := mapping.ToDomainInstallmentSlice(ims)
		paid, err = pay(&schedule, installments)
		if err != nil {
			return err
		}

		im := mapping.ToModelInstallment(*paid)
		if _, err := tx.Exec(ctx, `
			UPDATE installments SET status = $1, paid_at = $2, paid_by = $3, notes = $4,
				last_updated_at = $5, last_updated_by = $6, version = version + 1
			WHERE installment_id = $7`,
			im.Status, im.PaidAt, im.PaidBy, im.Notes, im.LastUpdatedAt, im.LastUpdatedBy, im.InstallmentID,
		); err != nil {
			return mapWriteError(err, "installment "+im.InstallmentID)
		}

		s := mapping.ToModelSchedule(schedule)
		if _, err := tx.Exec(ctx, `
			UPDATE payment_schedules SET paid_installments = $1, next_payment_date = $2, status = $3,
				last_updated_at = $4, last_updated_by = $5, version = version + 1
			WHERE schedule_id = $6`,
			s.PaidInstallments, s.NextPaymentDate, s.Status, s.LastUpdatedAt, s.LastUpdatedBy, s.ScheduleID,
		); err != nil {
			return mapWriteError(err, "schedule "+s.ScheduleID)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	schedule.Version++
	paid.Version++
	return &schedule, paid, nil
}

func (r *PgxScheduleRepository) DeleteSchedule(ctx context.Context, scheduleID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM payment_schedules WHERE schedule_id = $1`, scheduleID)
	if err != nil {
		return mapWriteError(err, "schedule "+scheduleID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("schedule", scheduleID)
	}
	return nil
}
