package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/form-builder/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	foreignKeyViolationCode = "23503"

	createResponseQuery = `
		INSERT INTO responses (id, form_id, data, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, form_id, data, created_at`
)

var _ ResponseRepository = &ResponsePostgres{}

// ResponsePostgres implements ResponseRepository using PostgreSQL
type ResponsePostgres struct {
	db *pgxpool.Pool
}

func NewResponsePostgres(db *pgxpool.Pool) *ResponsePostgres {
	return &ResponsePostgres{db: db}
}

func (r *ResponsePostgres) Create(ctx context.Context, response entity.Response) (*entity.Response, error) {
	responseID, err := uuid.Parse(response.ID)
	if err != nil {
		return nil, fmt.Errorf("parse response ID: %w", err)
	}

	formID, err := uuid.Parse(response.FormID)
	if err != nil {
		return nil, fmt.Errorf("%w: form %q", entity.ErrReferenceViolation, response.FormID)
	}

	var row responseRow
	err = r.db.QueryRow(ctx, createResponseQuery,
		toPgUUID(responseID),
		toPgUUID(formID),
		[]byte(response.Data),
		creationTime(response.CreatedAt),
	).Scan(&row.ID, &row.FormID, &row.Data, &row.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
			return nil, fmt.Errorf("%w: form %s", entity.ErrReferenceViolation, response.FormID)
		}
		return nil, persistenceError("create response", err)
	}

	return toEntityResponse(&row), nil
}
