package ports

import (
	"context"

	"github.com/daybook/journal-api/internal/core/domain"
)

// PostRepository defines persistence for journal posts.
type PostRepository interface {
	Insert(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	FindByDate(ctx context.Context, date string) ([]domain.Post, error)
	FindAll(ctx context.Context) ([]domain.Post, error)
	UpdateContents(ctx context.Context, id, contents string) error
	SetCheck(ctx context.Context, id string, check bool) error
	Delete(ctx context.Context, id string) error
	// Search runs a full-text query over post contents.
	Search(ctx context.Context, query string) ([]domain.Post, error)
}

// TodoRepository defines persistence for todo items.
type TodoRepository interface {
	Insert(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	FindByID(ctx context.Context, id string) (*domain.Todo, error)
	FindByDate(ctx context.Context, date string) ([]domain.Todo, error)
	FindAll(ctx context.Context) ([]domain.Todo, error)
	UpdateLabel(ctx context.Context, id, label string) error
	SetCheck(ctx context.Context, id string, check bool) error
	Delete(ctx context.Context, id string) error
}

// SearchCache caches full-text search results for a short window.
type SearchCache interface {
	Get(ctx context.Context, query string) ([]domain.Post, bool, error)
	Put(ctx context.Context, query string, posts []domain.Post) error
}
