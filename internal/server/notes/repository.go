package notes

import (
	"context"
)

// Repository is the persistence contract for notes.
type Repository interface {
	Create(ctx context.Context, note *Note) (*Note, error)
	GetByID(ctx context.Context, id int64) (*Note, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]*Note, error)
	GetAll(ctx context.Context) ([]*Note, error)
	Update(ctx context.Context, note *Note) (*Note, error)
	Delete(ctx context.Context, id int64) error
}
