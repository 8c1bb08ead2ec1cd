package domain

import "context"

// BookSource is the remote store contract consumed by the repository.
type BookSource interface {
	List(ctx context.Context, page, pageSize int) (Page, error)
	Get(ctx context.Context, id int64) (Book, error)
	Create(ctx context.Context, draft Draft) (Book, error)
	Update(ctx context.Context, id int64, patch Patch) (Book, error)
	Delete(ctx context.Context, id int64) error
}
