package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	"github.com/assacalos/easyconnect/internal/models"
	"github.com/assacalos/easyconnect/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `
	payment_id, payment_number, invoice_id, client_name, payment_type, method, amount, currency,
	payment_date, due_date, reference, description, status,
	submitted_at, approved_at, validated_by, validation_comment,
	rejected_at, rejected_by, rejection_reason, rejection_comment, paid_at,
	created_at, created_by, last_updated_at, last_updated_by, version`

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID, &m.PaymentNumber, &m.InvoiceID, &m.ClientName, &m.PaymentType, &m.Method, &m.Amount, &m.Currency,
		&m.PaymentDate, &m.DueDate, &m.Reference, &m.Description, &m.Status,
		&m.SubmittedAt, &m.ApprovedAt, &m.ValidatedBy, &m.ValidationComment,
		&m.RejectedAt, &m.RejectedBy, &m.RejectionReason, &m.RejectionComment, &m.PaidAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	return m, err
}

func collectPayments(rows pgx.Rows) ([]models.Payment, error) {
	defer rows.Close()
	out := []models.Payment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	m, err := scanPayment(r.Pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1`, paymentID))
	if err != nil {
		return nil, notFoundOr(err, "payment", paymentID)
	}
	p := mapping.ToDomainPayment(m)
	return &p, nil
}

func (r *PgxPaymentRepository) ListPayments(ctx context.Context, filter portsrepo.PaymentFilter, params portsrepo.ListParams) ([]domain.Payment, *string, error) {
	var conds []string
	var args []any
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.InvoiceID != nil {
		args = append(args, *filter.InvoiceID)
		conds = append(conds, fmt.Sprintf("invoice_id = $%d", len(args)))
	}
	query, args, limit, err := pageQuery(`SELECT `+paymentColumns+` FROM payments`, conds, args, params, "created_at", "payment_id")
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query payments: %w", err)
	}
	list, err := collectPayments(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan payment rows: %w", err)
	}
	list, next := trimPage(list, limit, func(m models.Payment) (time.Time, string) { return m.CreatedAt, m.PaymentID })
	return mapping.ToDomainPaymentSlice(list), next, nil
}

func (r *PgxPaymentRepository) FindPastDuePayments(ctx context.Context, asOf time.Time, limit int) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE status IN ('submitted', 'approved') AND due_date < $1
		ORDER BY due_date, payment_id
		LIMIT $2`
	rows, err := r.Pool.Query(ctx, query, domain.StartOfDay(asOf), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query past due payments: %w", err)
	}
	list, err := collectPayments(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan past due payments: %w", err)
	}
	return mapping.ToDomainPaymentSlice(list), nil
}

// CreatePayment draws the next number of the payment's creation day from
// payment_number_counters, so numbers are unique under concurrent inserts.
func (r *PgxPaymentRepository) CreatePayment(ctx context.Context, payment *domain.Payment, schedule *domain.PaymentSchedule) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		var seq int
		err := tx.QueryRow(ctx, `
			INSERT INTO payment_number_counters (day, last_value) VALUES ($1, 1)
			ON CONFLICT (day) DO UPDATE SET last_value = payment_number_counters.last_value + 1
			RETURNING last_value`, domain.StartOfDay(payment.CreatedAt)).Scan(&seq)
		if err != nil {
			return fmt.Errorf("failed to allocate payment number: %w", err)
		}
		payment.PaymentNumber = domain.FormatPaymentNumber(payment.CreatedAt, seq)

		m := mapping.ToModelPayment(*payment)
		_, err = tx.Exec(ctx, `
			INSERT INTO payments (`+paymentColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`,
			m.PaymentID, m.PaymentNumber, m.InvoiceID, m.ClientName, m.PaymentType, m.Method, m.Amount, m.Currency,
			m.PaymentDate, m.DueDate, m.Reference, m.Description, m.Status,
			m.SubmittedAt, m.ApprovedAt, m.ValidatedBy, m.ValidationComment,
			m.RejectedAt, m.RejectedBy, m.RejectionReason, m.RejectionComment, m.PaidAt,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
		)
		if err != nil {
			return mapWriteError(err, "payment "+m.PaymentID)
		}

		if schedule != nil {
			if err := insertSchedule(ctx, tx, mapping.ToModelSchedule(*schedule)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PgxPaymentRepository) UpdatePaymentStatus(ctx context.Context, payment domain.Payment, expectedVersion int64, invoice *domain.Invoice, invoiceExpectedVersion int64) error {
	m := mapping.ToModelPayment(payment)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE payments SET
				status = $1, submitted_at = $2, approved_at = $3, validated_by = $4, validation_comment = $5,
				rejected_at = $6, rejected_by = $7, rejection_reason = $8, rejection_comment = $9, paid_at = $10,
				last_updated_at = $11, last_updated_by = $12, version = version + 1
			WHERE payment_id = $13 AND version = $14`,
			m.Status, m.SubmittedAt, m.ApprovedAt, m.ValidatedBy, m.ValidationComment,
			m.RejectedAt, m.RejectedBy, m.RejectionReason, m.RejectionComment, m.PaidAt,
			m.LastUpdatedAt, m.LastUpdatedBy, m.PaymentID, expectedVersion,
		)
		if err != nil {
			return mapWriteError(err, "payment "+m.PaymentID)
		}
		if err := expectOneRow(ctx, tx, tag, "payments", "payment_id", "payment", m.PaymentID); err != nil {
			return err
		}

		if invoice != nil {
			return updateInvoiceStatus(ctx, tx, mapping.ToModelInvoice(*invoice), invoiceExpectedVersion)
		}
		return nil
	})
}
