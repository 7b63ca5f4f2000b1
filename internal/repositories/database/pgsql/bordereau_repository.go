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

const bordereauColumns = `
	bordereau_id, reference, client_name, vat_rate, global_discount, notes, status,
	validated_at, validated_by, comment,
	created_at, created_by, last_updated_at, last_updated_by, version`

const bordereauItemColumns = `item_id, bordereau_id, position, designation, unit, quantity, unit_price`

type PgxBordereauRepository struct {
	BaseRepository
}

func newPgxBordereauRepository(pool *pgxpool.Pool) portsrepo.BordereauRepositoryFacade {
	return &PgxBordereauRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BordereauRepositoryFacade = (*PgxBordereauRepository)(nil)

func scanBordereau(row pgx.Row) (models.Bordereau, error) {
	var m models.Bordereau
	err := row.Scan(
		&m.BordereauID, &m.Reference, &m.ClientName, &m.VATRate, &m.GlobalDiscount, &m.Notes, &m.Status,
		&m.ValidatedAt, &m.ValidatedBy, &m.Comment,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	return m, err
}

// loadItems returns the items of the given bordereaux grouped by bordereau, in position order.
func loadItems(ctx context.Context, q querier, ids []string) (map[string][]models.BordereauItem, error) {
	rows, err := q.Query(ctx,
		`SELECT `+bordereauItemColumns+` FROM bordereau_items WHERE bordereau_id = ANY($1) ORDER BY bordereau_id, position`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query bordereau items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.BordereauItem, len(ids))
	for rows.Next() {
		var it models.BordereauItem
		if err := rows.Scan(&it.ItemID, &it.BordereauID, &it.Position, &it.Designation, &it.Unit, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan bordereau item: %w", err)
		}
		out[it.BordereauID] = append(out[it.BordereauID], it)
	}
	return out, rows.Err()
}

func queueItems(batch *pgx.Batch, items []models.BordereauItem) {
	for _, it := range items {
		batch.Queue(`INSERT INTO bordereau_items (`+bordereauItemColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ItemID, it.BordereauID, it.Position, it.Designation, it.Unit, it.Quantity, it.UnitPrice)
	}
}

func (r *PgxBordereauRepository) FindBordereauByID(ctx context.Context, bordereauID string) (*domain.Bordereau, error) {
	m, err := scanBordereau(r.Pool.QueryRow(ctx, `SELECT `+bordereauColumns+` FROM bordereaux WHERE bordereau_id = $1`, bordereauID))
	if err != nil {
		return nil, notFoundOr(err, "bordereau", bordereauID)
	}
	items, err := loadItems(ctx, r.Pool, []string{bordereauID})
	if err != nil {
		return nil, err
	}
	b := mapping.ToDomainBordereau(m, items[bordereauID])
	return &b, nil
}

func (r *PgxBordereauRepository) ListBordereaux(ctx context.Context, status *domain.BordereauStatus, params portsrepo.ListParams) ([]domain.Bordereau, *string, error) {
	var conds []string
	var args []any
	if status != nil {
		args = append(args, int16(*status))
		conds = append(conds, "status = $1")
	}
	query, args, limit, err := pageQuery(`SELECT `+bordereauColumns+` FROM bordereaux`, conds, args, params, "created_at", "bordereau_id")
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query bordereaux: %w", err)
	}
	list := []models.Bordereau{}
	for rows.Next() {
		m, err := scanBordereau(rows)
		if err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("failed to scan bordereau row: %w", err)
		}
		list = append(list, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating bordereau rows: %w", err)
	}
	list, next := trimPage(list, limit, func(m models.Bordereau) (time.Time, string) { return m.CreatedAt, m.BordereauID })

	ids := make([]string, len(list))
	for i := range list {
		ids[i] = list[i].BordereauID
	}
	items, err := loadItems(ctx, r.Pool, ids)
	if err != nil {
		return nil, nil, err
	}
	out := make([]domain.Bordereau, len(list))
	for i := range list {
		out[i] = mapping.ToDomainBordereau(list[i], items[list[i].BordereauID])
	}
	return out, next, nil
}

func (r *PgxBordereauRepository) SaveBordereau(ctx context.Context, bordereau domain.Bordereau) error {
	m, items := mapping.ToModelBordereau(bordereau)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO bordereaux (`+bordereauColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			m.BordereauID, m.Reference, m.ClientName, m.VATRate, m.GlobalDiscount, m.Notes, m.Status,
			m.ValidatedAt, m.ValidatedBy, m.Comment,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
		)
		if err != nil {
			return mapWriteError(err, "bordereau "+m.Reference)
		}
		batch := &pgx.Batch{}
		queueItems(batch, items)
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return mapWriteError(err, "items of bordereau "+m.Reference)
		}
		return nil
	})
}

// UpdateBordereau replaces the item set wholesale.
func (r *PgxBordereauRepository) UpdateBordereau(ctx context.Context, bordereau domain.Bordereau, expectedVersion int64) error {
	m, items := mapping.ToModelBordereau(bordereau)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE bordereaux SET
				reference = $1, client_name = $2, vat_rate = $3, global_discount = $4, notes = $5,
				last_updated_at = $6, last_updated_by = $7, version = version + 1
			WHERE bordereau_id = $8 AND version = $9`,
			m.Reference, m.ClientName, m.VATRate, m.GlobalDiscount, m.Notes,
			m.LastUpdatedAt, m.LastUpdatedBy, m.BordereauID, expectedVersion,
		)
		if err != nil {
			return mapWriteError(err, "bordereau "+m.BordereauID)
		}
		if err := expectOneRow(ctx, tx, tag, "bordereaux", "bordereau_id", "bordereau", m.BordereauID); err != nil {
			return err
		}

		batch := &pgx.Batch{}
		batch.Queue(`DELETE FROM bordereau_items WHERE bordereau_id = $1`, m.BordereauID)
		queueItems(batch, items)
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return mapWriteError(err, "items of bordereau "+m.BordereauID)
		}
		return nil
	})
}

func (r *PgxBordereauRepository) UpdateBordereauStatus(ctx context.Context, bordereau domain.Bordereau, expectedVersion int64) error {
	m, _ := mapping.ToModelBordereau(bordereau)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE bordereaux SET
			status = $1, validated_at = $2, validated_by = $3, comment = $4,
			last_updated_at = $5, last_updated_by = $6, version = version + 1
		WHERE bordereau_id = $7 AND version = $8`,
		m.Status, m.ValidatedAt, m.ValidatedBy, m.Comment,
		m.LastUpdatedAt, m.LastUpdatedBy, m.BordereauID, expectedVersion,
	)
	if err != nil {
		return mapWriteError(err, "bordereau "+m.BordereauID)
	}
	return expectOneRow(ctx, r.Pool, tag, "bordereaux", "bordereau_id", "bordereau", m.BordereauID)
}

func (r *PgxBordereauRepository) DeleteBordereau(ctx context.Context, bordereauID string, expectedVersion int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM bordereaux WHERE bordereau_id = $1 AND version = $2`, bordereauID, expectedVersion)
	if err != nil {
		return mapWriteError(err, "bordereau "+bordereauID)
	}
	return expectOneRow(ctx, r.Pool, tag, "bordereaux", "bordereau_id", "bordereau", bordereauID)
}
