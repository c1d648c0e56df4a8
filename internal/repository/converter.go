package repository

import (
	"encoding/json"
	"time"

	"github.com/futig/form-builder/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// formRow mirrors a row of the forms table
type formRow struct {
	ID        pgtype.UUID
	Title     string
	Schema    []byte
	UISchema  []byte
	CreatedAt pgtype.Timestamptz
}

// responseRow mirrors a row of the responses table
type responseRow struct {
	ID        pgtype.UUID
	FormID    pgtype.UUID
	Data      []byte
	CreatedAt pgtype.Timestamptz
}

func toPgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func toEntityForm(row *formRow) *entity.Form {
	formUUID := uuid.UUID(row.ID.Bytes)

	return &entity.Form{
		ID:        formUUID.String(),
		Title:     row.Title,
		Schema:    json.RawMessage(row.Schema),
		UISchema:  json.RawMessage(row.UISchema),
		CreatedAt: row.CreatedAt.Time,
	}
}

func toEntityResponse(row *responseRow) *entity.Response {
	responseUUID := uuid.UUID(row.ID.Bytes)
	formUUID := uuid.UUID(row.FormID.Bytes)

	return &entity.Response{
		ID:        responseUUID.String(),
		FormID:    formUUID.String(),
		Data:      json.RawMessage(row.Data),
		CreatedAt: row.CreatedAt.Time,
	}
}

// creationTime returns t in UTC, or the current time when t is zero
func creationTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}
