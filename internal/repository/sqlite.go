package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/futig/form-builder/internal/entity"
	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const sqliteTimeLayout = time.RFC3339Nano

// OpenSQLite opens the database file at path with foreign keys enforced.
// The pool is limited to a single connection so writers never contend.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")

	db, err := sql.Open("sqlite", "file:"+path+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

var _ FormRepository = &FormSQLite{}

// FormSQLite implements FormRepository on a SQLite database
type FormSQLite struct {
	db *sql.DB
}

func NewFormSQLite(db *sql.DB) *FormSQLite {
	return &FormSQLite{db: db}
}

func (r *FormSQLite) Create(ctx context.Context, form entity.Form) (*entity.Form, error) {
	if _, err := uuid.Parse(form.ID); err != nil {
		return nil, fmt.Errorf("parse form ID: %w", err)
	}

	created := creationTime(form.CreatedAt)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO forms (id, title, schema, ui_schema, created_at) VALUES (?, ?, ?, ?, ?)`,
		form.ID, form.Title, string(form.Schema), string(form.UISchema), created.Format(sqliteTimeLayout),
	)
	if err != nil {
		return nil, persistenceError("create form", err)
	}

	return &entity.Form{
		ID:        form.ID,
		Title:     form.Title,
		Schema:    cloneRaw(form.Schema),
		UISchema:  cloneRaw(form.UISchema),
		CreatedAt: created,
	}, nil
}

func (r *FormSQLite) Get(ctx context.Context, id string) (*entity.Form, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entity.ErrNotFound
	}

	var (
		form             entity.Form
		schema, uiSchema string
		createdAt        string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, schema, ui_schema, created_at FROM forms WHERE id = ?`, id,
	).Scan(&form.ID, &form.Title, &schema, &uiSchema, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, persistenceError("get form", err)
	}

	form.Schema = json.RawMessage(schema)
	form.UISchema = json.RawMessage(uiSchema)
	if form.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt); err != nil {
		return nil, persistenceError("parse form created_at", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, form_id, data, created_at FROM responses WHERE form_id = ? ORDER BY rowid`, id,
	)
	if err != nil {
		return nil, persistenceError("list form responses", err)
	}
	defer rows.Close()

	form.Responses = make([]*entity.Response, 0)
	for rows.Next() {
		var (
			resp            entity.Response
			data, createdAt string
		)
		if err := rows.Scan(&resp.ID, &resp.FormID, &data, &createdAt); err != nil {
			return nil, persistenceError("scan form response", err)
		}
		resp.Data = json.RawMessage(data)
		if resp.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt); err != nil {
			return nil, persistenceError("parse response created_at", err)
		}
		form.Responses = append(form.Responses, &resp)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("iterate form responses", err)
	}

	return &form, nil
}

func (r *FormSQLite) Exists(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM forms WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, persistenceError("check form exists", err)
	}

	return exists, nil
}

var _ ResponseRepository = &ResponseSQLite{}

// ResponseSQLite implements ResponseRepository on a SQLite database
type ResponseSQLite struct {
	db *sql.DB
}

func NewResponseSQLite(db *sql.DB) *ResponseSQLite {
	return &ResponseSQLite{db: db}
}

func (r *ResponseSQLite) Create(ctx context.Context, response entity.Response) (*entity.Response, error) {
	if _, err := uuid.Parse(response.ID); err != nil {
		return nil, fmt.Errorf("parse response ID: %w", err)
	}

	created := creationTime(response.CreatedAt)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO responses (id, form_id, data, created_at) VALUES (?, ?, ?, ?)`,
		response.ID, response.FormID, string(response.Data), created.Format(sqliteTimeLayout),
	)
	if err != nil {
		if isSQLiteForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: form %s", entity.ErrReferenceViolation, response.FormID)
		}
		return nil, persistenceError("create response", err)
	}

	return &entity.Response{
		ID:        response.ID,
		FormID:    response.FormID,
		Data:      cloneRaw(response.Data),
		CreatedAt: created,
	}, nil
}

func isSQLiteForeignKeyViolation(err error) bool {
	var sqliteErr *sqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}
