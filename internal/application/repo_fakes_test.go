package application

import (
	"context"
	"strings"

	"github.com/ymgta/go-todo-clean-architecture/internal/domain/entity"
	"github.com/ymgta/go-todo-clean-architecture/internal/domain/repository"
)

// memTodoRepo is an in-memory TodoRepository keeping insertion order, so
// tests mirror the creation-time ordering of the real store.
type memTodoRepo struct {
	todos []*entity.Todo
}

var _ repository.TodoRepository = (*memTodoRepo)(nil)

func (r *memTodoRepo) FindByID(_ context.Context, id string) (*entity.Todo, error) {
	for _, t := range r.todos {
		if t.ID() == id && !t.Deleted() {
			return t, nil
		}
	}
	return nil, nil
}

func (r *memTodoRepo) FindByUserID(_ context.Context, userID string) ([]*entity.Todo, error) {
	var out []*entity.Todo
	for _, t := range r.todos {
		if t.UserID() == userID && !t.Deleted() {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTodoRepo) FindByUserIDAndCompleted(_ context.Context, userID string, completed bool) ([]*entity.Todo, error) {
	var out []*entity.Todo
	for _, t := range r.todos {
		if t.UserID() == userID && !t.Deleted() && t.Completed() == completed {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTodoRepo) SearchByTitle(_ context.Context, userID, q string) ([]*entity.Todo, error) {
	var out []*entity.Todo
	for _, t := range r.todos {
		if t.UserID() == userID && !t.Deleted() && containsFold(t.Title(), q) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTodoRepo) Save(_ context.Context, t *entity.Todo) (*entity.Todo, error) {
	for i, existing := range r.todos {
		if existing.ID() == t.ID() {
			r.todos[i] = t
			return t, nil
		}
	}
	r.todos = append(r.todos, t)
	return t, nil
}

func (r *memTodoRepo) Delete(_ context.Context, id string) error {
	for _, t := range r.todos {
		if t.ID() == id && !t.Deleted() {
			return t.Delete()
		}
	}
	return entity.NewNotFound("todo not found")
}

type memUserRepo struct {
	users []*entity.User
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func (r *memUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID() == id && !u.Deleted() {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username() == username && !u.Deleted() {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if !u.Deleted() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) Save(_ context.Context, u *entity.User) (*entity.User, error) {
	for i, existing := range r.users {
		if existing.ID() == u.ID() {
			r.users[i] = u
			return u, nil
		}
	}
	r.users = append(r.users, u)
	return u, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	for _, u := range r.users {
		if u.ID() == id && !u.Deleted() {
			return u.Delete()
		}
	}
	return entity.NewNotFound("user not found")
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
