package archive

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("archived case not found")

type Repository interface {
	Create(ctx context.Context, a *ArchivedCase) error
	GetByID(ctx context.Context, id string) (*ArchivedCase, error)
	List(ctx context.Context, limit, offset int) ([]*ArchivedCase, int, error)
	Delete(ctx context.Context, id string) error
}
