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

const invoiceColumns = `
	invoice_id, invoice_number, client_name, amount, currency, issue_date, due_date, status, paid_at, notes,
	created_at, created_by, last_updated_at, last_updated_by, version`

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID, &m.InvoiceNumber, &m.ClientName, &m.Amount, &m.Currency, &m.IssueDate, &m.DueDate, &m.Status, &m.PaidAt, &m.Notes,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	return m, err
}

func collectInvoices(rows pgx.Rows) ([]models.Invoice, error) {
	defer rows.Close()
	out := []models.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	m, err := scanInvoice(r.Pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1`, invoiceID))
	if err != nil {
		return nil, notFoundOr(err, "invoice", invoiceID)
	}
	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, status *domain.InvoiceStatus, params portsrepo.ListParams) ([]domain.Invoice, *string, error) {
	var conds []string
	var args []any
	if status != nil {
		args = append(args, string(*status))
		conds = append(conds, "status = $1")
	}
	query, args, limit, err := pageQuery(`SELECT `+invoiceColumns+` FROM invoices`, conds, args, params, "created_at", "invoice_id")
	if err != nil {
		return nil, nil, err
	}
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	list, err := collectInvoices(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan invoice rows: %w", err)
	}
	list, next := trimPage(list, limit, func(m models.Invoice) (time.Time, string) { return m.CreatedAt, m.InvoiceID })
	return mapping.ToDomainInvoiceSlice(list), next, nil
}

func (r *PgxInvoiceRepository) FindPastDueInvoices(ctx context.Context, asOf time.Time, limit int) ([]domain.Invoice, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices
		WHERE status = 'pending' AND due_date < $1
		ORDER BY due_date, invoice_id
		LIMIT $2`, domain.StartOfDay(asOf), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query past due invoices: %w", err)
	}
	list, err := collectInvoices(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan past due invoices: %w", err)
	}
	return mapping.ToDomainInvoiceSlice(list), nil
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		m.InvoiceID, m.InvoiceNumber, m.ClientName, m.Amount, m.Currency, m.IssueDate, m.DueDate, m.Status, m.PaidAt, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		return mapWriteError(err, "invoice "+m.InvoiceNumber)
	}
	return nil
}

func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoice domain.Invoice, expectedVersion int64) error {
	return updateInvoiceStatus(ctx, r.Pool, mapping.ToModelInvoice(invoice), expectedVersion)
}

// updateInvoiceStatus is shared with the payment cascade, which runs it inside its own transaction.
func updateInvoiceStatus(ctx context.Context, q querier, m models.Invoice, expectedVersion int64) error {
	tag, err := q.Exec(ctx, `
		UPDATE invoices SET status = $1, paid_at = $2, last_updated_at = $3, last_updated_by = $4, version = version + 1
		WHERE invoice_id = $5 AND version = $6`,
		m.Status, m.PaidAt, m.LastUpdatedAt, m.LastUpdatedBy, m.InvoiceID, expectedVersion,
	)
	if err != nil {
		return mapWriteError(err, "invoice "+m.InvoiceID)
	}
	return expectOneRow(ctx, q, tag, "invoices", "invoice_id", "invoice", m.InvoiceID)
}
