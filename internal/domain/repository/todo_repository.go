package repository

import (
	"context"

	"github.com/ymgta/go-todo-clean-architecture/internal/domain/entity"
)

// TodoRepository defines the persistence contract for todos. Find
// operations return (nil, nil) when no row matches; logically deleted
// rows are never returned. Collections are ordered by creation time
// ascending.
type TodoRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Todo, error)
	FindByUserID(ctx context.Context, userID string) ([]*entity.Todo, error)
	FindByUserIDAndCompleted(ctx context.Context, userID string, completed bool) ([]*entity.Todo, error)
	SearchByTitle(ctx context.Context, userID, q string) ([]*entity.Todo, error)
	Save(ctx context.Context, t *entity.Todo) (*entity.Todo, error)
	Delete(ctx context.Context, id string) error
}
