package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/form-builder/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createFormQuery = `
		INSERT INTO forms (id, title, "schema", ui_schema, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, "schema", ui_schema, created_at`

	getFormQuery = `
		SELECT id, title, "schema", ui_schema, created_at
		FROM forms
		WHERE id = $1`

	listFormResponsesQuery = `
		SELECT id, form_id, data, created_at
		FROM responses
		WHERE form_id = $1
		ORDER BY seq`

	formExistsQuery = `SELECT EXISTS (SELECT 1 FROM forms WHERE id = $1)`
)

var _ FormRepository = &FormPostgres{}

// FormPostgres implements FormRepository using PostgreSQL
type FormPostgres struct {
	db *pgxpool.Pool
}

func NewFormPostgres(db *pgxpool.Pool) *FormPostgres {
	return &FormPostgres{db: db}
}

func (r *FormPostgres) Create(ctx context.Context, form entity.Form) (*entity.Form, error) {
	formID, err := uuid.Parse(form.ID)
	if err != nil {
		return nil, fmt.Errorf("parse form ID: %w", err)
	}

	var row formRow
	err = r.db.QueryRow(ctx, createFormQuery,
		toPgUUID(formID),
		form.Title,
		[]byte(form.Schema),
		[]byte(form.UISchema),
		creationTime(form.CreatedAt),
	).Scan(&row.ID, &row.Title, &row.Schema, &row.UISchema, &row.CreatedAt)
	if err != nil {
		return nil, persistenceError("create form", err)
	}

	return toEntityForm(&row), nil
}

func (r *FormPostgres) Get(ctx context.Context, id string) (*entity.Form, error) {
	formID, err := uuid.Parse(id)
	if err != nil {
		return nil, entity.ErrNotFound
	}

	var row formRow
	err = r.db.QueryRow(ctx, getFormQuery, toPgUUID(formID)).
		Scan(&row.ID, &row.Title, &row.Schema, &row.UISchema, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, persistenceError("get form", err)
	}

	form := toEntityForm(&row)

	rows, err := r.db.Query(ctx, listFormResponsesQuery, toPgUUID(formID))
	if err != nil {
		return nil, persistenceError("list form responses", err)
	}
	defer rows.Close()

	form.Responses = make([]*entity.Response, 0)
	for rows.Next() {
		var rr responseRow
		if err := rows.Scan(&rr.ID, &rr.FormID, &rr.Data, &rr.CreatedAt); err != nil {
			return nil, persistenceError("scan form response", err)
		}
		form.Responses = append(form.Responses, toEntityResponse(&rr))
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("iterate form responses", err)
	}

	return form, nil
}

func (r *FormPostgres) Exists(ctx context.Context, id string) (bool, error) {
	formID, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, formExistsQuery, toPgUUID(formID)).Scan(&exists); err != nil {
		return false, persistenceError("check form exists", err)
	}

	return exists, nil
}
