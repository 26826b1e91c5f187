package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ymgta/go-todo-clean-architecture/internal/domain/entity"
	repo "github.com/ymgta/go-todo-clean-architecture/internal/domain/repository"
	domainsvc "github.com/ymgta/go-todo-clean-architecture/internal/domain/service"
	"github.com/ymgta/go-todo-clean-architecture/pkg/helpers"
)

const todoCacheTTL = 15 * time.Minute

// TodoService orchestrates todo use cases. Redis, Elasticsearch and the
// event publisher are optional collaborators; a nil client disables the
// corresponding side effect.
type TodoService struct {
	Todos        repo.TodoRepository
	Users        repo.UserRepository
	Redis        *redis.Client
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESTodosIndex string
	Events       *helpers.RabbitPublisher
}

func NewTodoService(todos repo.TodoRepository, users repo.UserRepository, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esTodosIndex string, events *helpers.RabbitPublisher) *TodoService {
	return &TodoService{
		Todos:        todos,
		Users:        users,
		Redis:        rdb,
		Logger:       logger,
		ES:           es,
		ESTodosIndex: esTodosIndex,
		Events:       events,
	}
}

type CreateTodoCommand struct {
	Title        string
	Descriptions string
	UserID       string
}

// UpdateTodoCommand carries optional fields; a nil pointer means the
// field is left untouched.
type UpdateTodoCommand struct {
	ID           string
	UserID       string
	Title        *string
	Descriptions *string
}

func (c UpdateTodoCommand) ShouldUpdateTitle() bool        { return c.Title != nil }
func (c UpdateTodoCommand) ShouldUpdateDescriptions() bool { return c.Descriptions != nil }

type TodoResult struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Descriptions string    `json:"descriptions,omitempty"`
	Completed    bool      `json:"completed"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type TodoStatsResult struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
}

// TodoEvent is the message published to the event queue on every
// lifecycle transition.
type TodoEvent struct {
	Type   string    `json:"type"`
	TodoID string    `json:"todo_id"`
	UserID string    `json:"user_id"`
	Title  string    `json:"title"`
	At     time.Time `json:"at"`
}

func toTodoResult(t *entity.Todo) *TodoResult {
	return &TodoResult{
		ID:           t.ID(),
		Title:        t.Title(),
		Descriptions: t.Descriptions(),
		Completed:    t.Completed(),
		UserID:       t.UserID(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
	}
}

func todoCacheKey(id string) string {
	return "todo:" + id
}

func (s *TodoService) CreateTodo(ctx context.Context, cmd CreateTodoCommand) (*TodoResult, error) {
	owner, err := s.Users.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, entity.NewNotFound("user not found")
	}

	t, err := entity.NewTodo(cmd.Title, cmd.Descriptions, cmd.UserID)
	if err != nil {
		return nil, err
	}
	saved, err := s.Todos.Save(ctx, t)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, "todo.created", saved)
	s.indexTodo(ctx, saved)
	return toTodoResult(saved), nil
}

func (s *TodoService) UpdateTodo(ctx context.Context, cmd UpdateTodoCommand) (*TodoResult, error) {
	t, err := s.loadOwned(ctx, cmd.ID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.ShouldUpdateTitle() {
		if err := t.UpdateTitle(*cmd.Title); err != nil {
			return nil, err
		}
	}
	if cmd.ShouldUpdateDescriptions() {
		if err := t.UpdateDescriptions(*cmd.Descriptions); err != nil {
			return nil, err
		}
	}

	saved, err := s.Todos.Save(ctx, t)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, saved.ID())
	s.indexTodo(ctx, saved)
	return toTodoResult(saved), nil
}

func (s *TodoService) CompleteTodo(ctx context.Context, id, userID string) (*TodoResult, error) {
	return s.transition(ctx, id, userID, "todo.completed", (*entity.Todo).MarkAsCompleted)
}

func (s *TodoService) IncompleteTodo(ctx context.Context, id, userID string) (*TodoResult, error) {
	return s.transition(ctx, id, userID, "todo.incompleted", (*entity.Todo).MarkAsIncomplete)
}

func (s *TodoService) transition(ctx context.Context, id, userID, eventType string, mutate func(*entity.Todo) error) (*TodoResult, error) {
	t, err := s.loadOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := mutate(t); err != nil {
		return nil, err
	}
	saved, err := s.Todos.Save(ctx, t)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, saved.ID())
	s.publishEvent(ctx, eventType, saved)
	s.indexTodo(ctx, saved)
	return toTodoResult(saved), nil
}

func (s *TodoService) DeleteTodo(ctx context.Context, id, userID string) error {
	t, err := s.loadOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.Todos.Delete(ctx, t.ID()); err != nil {
		return err
	}

	s.invalidateCache(ctx, t.ID())
	s.publishEvent(ctx, "todo.deleted", t)
	s.deleteFromIndex(ctx, t.ID())
	return nil
}

func (s *TodoService) GetTodo(ctx context.Context, id, userID string) (*TodoResult, error) {
	if s.Redis != nil {
		var cached TodoResult
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, todoCacheKey(id), &cached); err == nil && ok {
			if cached.UserID != userID {
				return nil, entity.NewForbidden("todo belongs to another user")
			}
			return &cached, nil
		}
	}

	t, err := s.loadOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	res := toTodoResult(t)

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, todoCacheKey(id), res, todoCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("todo_id", id).Warn("todo cache write failed")
		}
	}
	return res, nil
}

// ListTodos returns the owner's todos, optionally filtered by completion
// state, in the repository's creation order.
func (s *TodoService) ListTodos(ctx context.Context, userID string, completed *bool) ([]*TodoResult, error) {
	var (
		todos []*entity.Todo
		err   error
	)
	if completed != nil {
		todos, err = s.Todos.FindByUserIDAndCompleted(ctx, userID, *completed)
	} else {
		todos, err = s.Todos.FindByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]*TodoResult, 0, len(todos))
	for _, t := range todos {
		out = append(out, toTodoResult(t))
	}
	return out, nil
}

// Stats aggregates the owner's completion rate via the domain service.
func (s *TodoService) Stats(ctx context.Context, userID string) (*TodoStatsResult, error) {
	todos, err := s.Todos.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed := 0
	for _, t := range todos {
		if t.Completed() {
			completed++
		}
	}
	return &TodoStatsResult{
		Total:          len(todos),
		Completed:      completed,
		CompletionRate: domainsvc.CompletionRate(todos),
	}, nil
}

func (s *TodoService) loadOwned(ctx context.Context, id, userID string) (*entity.Todo, error) {
	t, err := s.Todos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, entity.NewNotFound("todo not found")
	}
	if err := domainsvc.CheckOwnership(t, userID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TodoService) invalidateCache(ctx context.Context, id string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, todoCacheKey(id)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("todo_id", id).Warn("todo cache invalidation failed")
	}
}

func (s *TodoService) publishEvent(ctx context.Context, eventType string, t *entity.Todo) {
	if s.Events == nil {
		return
	}
	ev := TodoEvent{
		Type:   eventType,
		TodoID: t.ID(),
		UserID: t.UserID(),
		Title:  t.Title(),
		At:     time.Now().UTC(),
	}
	if err := s.Events.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("todo_id", t.ID()).Warn("event publish failed")
	}
}

func (s *TodoService) indexTodo(ctx context.Context, t *entity.Todo) {
	if s.ES == nil || s.ESTodosIndex == "" {
		return
	}
	doc := map[string]any{
		"id":           t.ID(),
		"title":        t.Title(),
		"descriptions": t.Descriptions(),
		"completed":    t.Completed(),
		"user_id":      t.UserID(),
		"created_at":   t.CreatedAt().Format(time.RFC3339Nano),
		"updated_at":   t.UpdatedAt().Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESTodosIndex, DocumentID: t.ID(), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("todo_id", t.ID()).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("todo_id", t.ID()).Warn("es index response error")
	}
}

func (s *TodoService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESTodosIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESTodosIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("todo_id", id).Warn("es delete failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
}

// SearchTodos performs a multi_match search over title and descriptions,
// constrained to the caller's own todos.
func (s *TodoService) SearchTodos(ctx context.Context, userID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESTodosIndex == "" {
		// Fall back to the repository's text match when search
		// infrastructure is not configured.
		todos, err := s.Todos.SearchByTitle(ctx, userID, q)
		if err != nil {
			return nil, err
		}
		out := make([]map[string]any, 0, len(todos))
		for _, t := range todos {
			out = append(out, map[string]any{
				"id":           t.ID(),
				"title":        t.Title(),
				"descriptions": t.Descriptions(),
				"completed":    t.Completed(),
				"user_id":      t.UserID(),
			})
		}
		return out, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "descriptions"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESTodosIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
