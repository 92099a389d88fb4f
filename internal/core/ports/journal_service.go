package ports

import (
	"context"

	"github.com/daybook/journal-api/internal/core/domain"
)

// AddEntryInput carries a new post or todo. An empty Date defaults to
// the current day.
type AddEntryInput struct {
	Date string
	Text string
}

// ResolvedEntry is the tagged result of an ownership lookup: exactly
// one of Post or Todo is non-nil, matching Kind.
type ResolvedEntry struct {
	Kind domain.EntryKind
	Post *domain.Post
	Todo *domain.Todo
}

// DayView bundles the entries rendered for one day (or all days when
// unfiltered).
type DayView struct {
	Posts []domain.Post
	Todos []domain.Todo
}

// JournalService defines use-case operations on posts and todos. Edit,
// ToggleCheck and Delete take a bare identifier and resolve which
// collection owns it before mutating.
type JournalService interface {
	AddPost(ctx context.Context, input AddEntryInput) (*domain.Post, error)
	AddTodo(ctx context.Context, input AddEntryInput) (*domain.Todo, error)
	ListDay(ctx context.Context, date string) (*DayView, error)
	Resolve(ctx context.Context, id string) (*ResolvedEntry, error)
	EditEntry(ctx context.Context, id, text string) (domain.EntryKind, error)
	ToggleCheck(ctx context.Context, id string) (domain.EntryKind, bool, error)
	DeleteEntry(ctx context.Context, id string) (domain.EntryKind, error)
	SearchPosts(ctx context.Context, query string) ([]domain.Post, error)
}
