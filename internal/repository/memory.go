package repository

import (
	"context"
	"sync"
	"time"

	"github.com/futig/form-builder/internal/entity"
	"github.com/patrickmn/go-cache"
)

const (
	formKeyPrefix   = "form:"
	orphanKeyPrefix = "orphan:"
)

// MemoryDB is the process-local backing store shared by FormMemory and
// ResponseMemory. Forms never expire; orphan responses expire after the
// configured TTL, or never when it is zero.
type MemoryDB struct {
	mu    sync.RWMutex
	items *cache.Cache
}

type memoryOptions struct {
	orphanTTL time.Duration
}

type MemoryOption func(*memoryOptions)

// WithOrphanTTL bounds how long responses for unknown forms are kept
func WithOrphanTTL(ttl time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.orphanTTL = ttl
	}
}

type memoryForm struct {
	form      entity.Form
	responses []entity.Response
}

func NewMemoryDB(opts ...MemoryOption) *MemoryDB {
	var o memoryOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.orphanTTL <= 0 {
		return &MemoryDB{items: cache.New(cache.NoExpiration, 0)}
	}

	// Default expiration applies to orphans only, forms are added with NoExpiration.
	return &MemoryDB{items: cache.New(o.orphanTTL, o.orphanTTL)}
}

var _ FormRepository = &FormMemory{}

// FormMemory implements FormRepository in process memory
type FormMemory struct {
	db *MemoryDB
}

func NewFormMemory(db *MemoryDB) *FormMemory {
	return &FormMemory{db: db}
}

func (r *FormMemory) Create(_ context.Context, form entity.Form) (*entity.Form, error) {
	stored := entity.Form{
		ID:        form.ID,
		Title:     form.Title,
		Schema:    cloneRaw(form.Schema),
		UISchema:  cloneRaw(form.UISchema),
		CreatedAt: creationTime(form.CreatedAt),
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if err := r.db.items.Add(formKeyPrefix+form.ID, &memoryForm{form: stored}, cache.NoExpiration); err != nil {
		return nil, persistenceError("create form", err)
	}

	result := stored
	result.Schema = cloneRaw(stored.Schema)
	result.UISchema = cloneRaw(stored.UISchema)
	return &result, nil
}

func (r *FormMemory) Get(_ context.Context, id string) (*entity.Form, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	value, ok := r.db.items.Get(formKeyPrefix + id)
	if !ok {
		return nil, entity.ErrNotFound
	}
	record := value.(*memoryForm)

	form := record.form
	form.Schema = cloneRaw(record.form.Schema)
	form.UISchema = cloneRaw(record.form.UISchema)
	form.Responses = make([]*entity.Response, 0, len(record.responses))
	for _, resp := range record.responses {
		resp.Data = cloneRaw(resp.Data)
		form.Responses = append(form.Responses, &resp)
	}

	return &form, nil
}

func (r *FormMemory) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.db.items.Get(formKeyPrefix + id)
	return ok, nil
}

var _ ResponseRepository = &ResponseMemory{}

// ResponseMemory implements ResponseRepository in process memory.
// Responses for unknown forms are kept aside and never returned.
type ResponseMemory struct {
	db *MemoryDB
}

func NewResponseMemory(db *MemoryDB) *ResponseMemory {
	return &ResponseMemory{db: db}
}

func (r *ResponseMemory) Create(_ context.Context, response entity.Response) (*entity.Response, error) {
	stored := entity.Response{
		ID:        response.ID,
		FormID:    response.FormID,
		Data:      cloneRaw(response.Data),
		CreatedAt: creationTime(response.CreatedAt),
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if value, ok := r.db.items.Get(formKeyPrefix + response.FormID); ok {
		record := value.(*memoryForm)
		record.responses = append(record.responses, stored)
	} else {
		var orphans []entity.Response
		if value, ok := r.db.items.Get(orphanKeyPrefix + response.FormID); ok {
			orphans = value.([]entity.Response)
		}
		r.db.items.Set(orphanKeyPrefix+response.FormID, append(orphans, stored), cache.DefaultExpiration)
	}

	result := stored
	result.Data = cloneRaw(stored.Data)
	return &result, nil
}
