package repository

import (
	"context"
	"fmt"

	"github.com/futig/form-builder/internal/entity"
)

// FormRepository persists generated forms. Get returns the form together with
// its responses in insertion order, or entity.ErrNotFound.
type FormRepository interface {
	Create(ctx context.Context, form entity.Form) (*entity.Form, error)
	Get(ctx context.Context, id string) (*entity.Form, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// ResponseRepository persists form submissions. Implementations that enforce
// referential integrity return entity.ErrReferenceViolation for unknown forms.
type ResponseRepository interface {
	Create(ctx context.Context, response entity.Response) (*entity.Response, error)
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, entity.ErrPersistence, err)
}
