package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/assacalos/easyconnect/internal/apperrors"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	"github.com/assacalos/easyconnect/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// inTx runs fn inside a transaction, committing when it returns nil.
func (r *BaseRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op after a successful commit

	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// mapWriteError translates constraint violations into application errors.
func mapWriteError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s (%s)", apperrors.ErrDuplicate, what, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s references a missing row (%s)", apperrors.ErrValidation, what, pgErr.ConstraintName)
		}
	}
	return apperrors.NewAppError(500, "failed to write "+what, err)
}

// notFoundOr maps pgx.ErrNoRows to ErrNotFound and wraps anything else.
func notFoundOr(err error, entity, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError(entity, id)
	}
	return apperrors.NewAppError(500, "failed to load "+entity+" "+id, err)
}

// expectOneRow turns an update that matched no row into a conflict when the row
// exists and into not found otherwise.
func expectOneRow(ctx context.Context, q querier, tag pgconn.CommandTag, table, idCol, entity, id string) error {
	if tag.RowsAffected() == 1 {
		return nil
	}
	var exists bool
	if err := q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM "+table+" WHERE "+idCol+" = $1)", id).Scan(&exists); err != nil {
		return apperrors.NewAppError(500, "failed to check "+entity+" "+id, err)
	}
	if exists {
		return apperrors.NewConflictError(entity, id)
	}
	return apperrors.NewNotFoundError(entity, id)
}

// querier is the subset shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pageQuery assembles a keyset-paginated query ordered newest first. conds are
// ANDed, each referring to args by position. One extra row is fetched so the
// caller can tell whether another page exists.
func pageQuery(selectFrom string, conds []string, args []any, params portsrepo.ListParams, createdCol, idCol string) (string, []any, int, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	if params.NextToken != nil && *params.NextToken != "" {
		cursor, err := pagination.DecodeCursor(*params.NextToken)
		if err != nil {
			return "", nil, 0, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, cursor.CreatedAt, cursor.ID)
		conds = append(conds, fmt.Sprintf("(%s, %s) < ($%d, $%d)", createdCol, idCol, len(args)-1, len(args)))
	}

	var b strings.Builder
	b.WriteString(selectFrom)
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	args = append(args, limit+1)
	b.WriteString(" ORDER BY " + createdCol + " DESC, " + idCol + " DESC LIMIT $" + strconv.Itoa(len(args)))
	return b.String(), args, limit, nil
}

// trimPage cuts the extra row fetched by pageQuery and returns the token of the next page.
func trimPage[T any](rows []T, limit int, key func(T) (time.Time, string)) ([]T, *string) {
	if len(rows) <= limit {
		return rows, nil
	}
	rows = rows[:limit]
	createdAt, id := key(rows[limit-1])
	token := pagination.EncodeCursor(createdAt, id)
	return rows, &token
}

// prefixed qualifies every column of a comma separated list with prefix, e.g. "i.".
func prefixed(prefix, columns string) string {
	cols := strings.Split(columns, ",")
	for i, c := range cols {
		cols[i] = prefix + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}
