package repository

import (
	"context"

	"github.com/ymgta/go-todo-clean-architecture/internal/domain/entity"
)

// UserRepository defines the persistence contract for users. Same
// conventions as TodoRepository: absent rows yield (nil, nil), deleted
// rows stay hidden, lists are ordered by creation time ascending.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	Save(ctx context.Context, u *entity.User) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}
