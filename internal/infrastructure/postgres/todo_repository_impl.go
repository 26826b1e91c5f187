package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ymgta/go-todo-clean-architecture/internal/domain/entity"
	"github.com/ymgta/go-todo-clean-architecture/internal/domain/repository"
)

type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

const todoColumns = `id, title, descriptions, completed, user_id, created_at, updated_at, deleted`

func scanTodo(row pgx.Row) (*entity.Todo, error) {
	var (
		id, title, descriptions, userID string
		completed, deleted              bool
		createdAt, updatedAt            time.Time
	)
	if err := row.Scan(&id, &title, &descriptions, &completed, &userID, &createdAt, &updatedAt, &deleted); err != nil {
		return nil, err
	}
	return entity.ReconstructTodo(id, title, descriptions, completed, userID, createdAt, updatedAt, deleted)
}

func (r *TodoRepository) FindByID(ctx context.Context, id string) (*entity.Todo, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+todoColumns+`
		FROM todos
		WHERE id = $1 AND deleted = FALSE
	`, id)

	t, err := scanTodo(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TodoRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Todo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+todoColumns+`
		FROM todos
		WHERE user_id = $1 AND deleted = FALSE
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTodos(rows)
}

func (r *TodoRepository) FindByUserIDAndCompleted(ctx context.Context, userID string, completed bool) ([]*entity.Todo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+todoColumns+`
		FROM todos
		WHERE user_id = $1 AND completed = $2 AND deleted = FALSE
		ORDER BY created_at ASC
	`, userID, completed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTodos(rows)
}

func (r *TodoRepository) SearchByTitle(ctx context.Context, userID, q string) ([]*entity.Todo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+todoColumns+`
		FROM todos
		WHERE user_id = $1 AND title ILIKE '%' || $2 || '%' AND deleted = FALSE
		ORDER BY created_at ASC
	`, userID, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTodos(rows)
}

func collectTodos(rows pgx.Rows) ([]*entity.Todo, error) {
	todos := make([]*entity.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return todos, nil
}

// Save upserts by primary key so factory-created and rehydrated
// entities go through the same path.
func (r *TodoRepository) Save(ctx context.Context, t *entity.Todo) (*entity.Todo, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO todos (id, title, descriptions, completed, user_id, created_at, updated_at, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			descriptions = EXCLUDED.descriptions,
			completed = EXCLUDED.completed,
			updated_at = EXCLUDED.updated_at,
			deleted = EXCLUDED.deleted
		RETURNING `+todoColumns+`
	`, t.ID(), t.Title(), t.Descriptions(), t.Completed(), t.UserID(), t.CreatedAt(), t.UpdatedAt(), t.Deleted())

	return scanTodo(row)
}

func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE todos
		SET deleted = TRUE, updated_at = $2
		WHERE id = $1 AND deleted = FALSE
	`, id, time.Now())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return entity.NewNotFound("todo not found")
	}
	return nil
}

var _ repository.TodoRepository = (*TodoRepository)(nil)
