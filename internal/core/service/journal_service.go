package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/daybook/journal-api/internal/core/domain"
	"github.com/daybook/journal-api/internal/core/ports"
)

const dateLayout = "2006-01-02"

// JournalService implements journal and todo use cases. Posts and
// todos live in separate collections but share one identifier space at
// the edit/check/delete surface, so those operations go through
// Resolve first.
type JournalService struct {
	posts  ports.PostRepository
	todos  ports.TodoRepository
	cache  ports.SearchCache
	logger zerolog.Logger
}

// NewJournalService wires the repositories and an optional search
// cache (nil disables caching).
func NewJournalService(posts ports.PostRepository, todos ports.TodoRepository, cache ports.SearchCache, logger zerolog.Logger) *JournalService {
	return &JournalService{posts: posts, todos: todos, cache: cache, logger: logger}
}

func (s *JournalService) AddPost(ctx context.Context, input ports.AddEntryInput) (*domain.Post, error) {
	date, text, err := normalizeEntry(input)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.Insert(ctx, &domain.Post{Date: date, Contents: text})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", post.ID).Str("date", date).Msg("post created")
	return post, nil
}

func (s *JournalService) AddTodo(ctx context.Context, input ports.AddEntryInput) (*domain.Todo, error) {
	date, text, err := normalizeEntry(input)
	if err != nil {
		return nil, err
	}

	todo, err := s.todos.Insert(ctx, &domain.Todo{Date: date, Label: text})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", todo.ID).Str("date", date).Msg("todo created")
	return todo, nil
}

// ListDay returns the posts and todos of one calendar day, or of all
// days when date is empty.
func (s *JournalService) ListDay(ctx context.Context, date string) (*ports.DayView, error) {
	var (
		posts []domain.Post
		todos []domain.Todo
		err   error
	)

	if date == "" {
		posts, err = s.posts.FindAll(ctx)
	} else {
		posts, err = s.posts.FindByDate(ctx, date)
	}
	if err != nil {
		return nil, err
	}

	if date == "" {
		todos, err = s.todos.FindAll(ctx)
	} else {
		todos, err = s.todos.FindByDate(ctx, date)
	}
	if err != nil {
		return nil, err
	}

	return &ports.DayView{Posts: posts, Todos: todos}, nil
}

// Resolve determines which collection owns id. The post collection is
// probed first; the order is the deterministic tie-break should an id
// ever exist in both, which ObjectID generation makes practically
// impossible.
func (s *JournalService) Resolve(ctx context.Context, id string) (*ports.ResolvedEntry, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err == nil {
		return &ports.ResolvedEntry{Kind: domain.KindPost, Post: post}, nil
	}
	if !errors.Is(err, domain.ErrEntryNotFound) {
		return nil, err
	}

	todo, err := s.todos.FindByID(ctx, id)
	if err == nil {
		return &ports.ResolvedEntry{Kind: domain.KindTodo, Todo: todo}, nil
	}
	if !errors.Is(err, domain.ErrEntryNotFound) {
		return nil, err
	}

	return nil, domain.ErrEntryNotFound
}

// EditEntry replaces the text of whichever entry owns id.
func (s *JournalService) EditEntry(ctx context.Context, id, text string) (domain.EntryKind, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.ErrEmptyContents
	}

	resolved, err := s.Resolve(ctx, id)
	if err != nil {
		return "", err
	}

	switch resolved.Kind {
	case domain.KindPost:
		err = s.posts.UpdateContents(ctx, id, text)
	case domain.KindTodo:
		err = s.todos.UpdateLabel(ctx, id, text)
	}
	if err != nil {
		return "", err
	}
	return resolved.Kind, nil
}

// ToggleCheck flips the completion flag of the owning entry and
// returns the new value.
func (s *JournalService) ToggleCheck(ctx context.Context, id string) (domain.EntryKind, bool, error) {
	resolved, err := s.Resolve(ctx, id)
	if err != nil {
		return "", false, err
	}

	var next bool
	switch resolved.Kind {
	case domain.KindPost:
		next = !resolved.Post.Check
		err = s.posts.SetCheck(ctx, id, next)
	case domain.KindTodo:
		next = !resolved.Todo.Check
		err = s.todos.SetCheck(ctx, id, next)
	}
	if err != nil {
		return "", false, err
	}

	return resolved.Kind, next, nil
}

// DeleteEntry removes the owning entry only; the sibling collection is
// never touched.
func (s *JournalService) DeleteEntry(ctx context.Context, id string) (domain.EntryKind, error) {
	resolved, err := s.Resolve(ctx, id)
	if err != nil {
		return "", err
	}

	switch resolved.Kind {
	case domain.KindPost:
		err = s.posts.Delete(ctx, id)
	case domain.KindTodo:
		err = s.todos.Delete(ctx, id)
	}
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("id", id).Str("kind", string(resolved.Kind)).Msg("entry deleted")
	return resolved.Kind, nil
}

// SearchPosts runs a full-text query over post contents, consulting
// the cache first. Cache failures degrade to a store round-trip.
func (s *JournalService) SearchPosts(ctx context.Context, query string) ([]domain.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyContents
	}

	if s.cache != nil {
		posts, ok, err := s.cache.Get(ctx, query)
		if err != nil {
			s.logger.Warn().Err(err).Msg("search cache lookup failed")
		} else if ok {
			return posts, nil
		}
	}

	posts, err := s.posts.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, query, posts); err != nil {
			s.logger.Warn().Err(err).Msg("search cache store failed")
		}
	}
	return posts, nil
}

// normalizeEntry validates the text and fills in today's date when the
// form supplied none.
func normalizeEntry(input ports.AddEntryInput) (date, text string, err error) {
	text = strings.TrimSpace(input.Text)
	if text == "" {
		return "", "", domain.ErrEmptyContents
	}

	date = input.Date
	if date == "" {
		date = time.Now().UTC().Format(dateLayout)
	}
	return date, text, nil
}
