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

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, username, email, first_name, first_name_ruby, last_name, last_name_ruby, password_hash, role, password_initialized, created_at, updated_at, deleted`

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		id, username, email                              string
		firstName, firstNameRuby, lastName, lastNameRuby string
		passwordHash                                     string
		roleCode                                         int
		passwordInitialized, deleted                     bool
		createdAt, updatedAt                             time.Time
	)
	if err := row.Scan(&id, &username, &email, &firstName, &firstNameRuby, &lastName, &lastNameRuby,
		&passwordHash, &roleCode, &passwordInitialized, &createdAt, &updatedAt, &deleted); err != nil {
		return nil, err
	}
	role, err := entity.RoleFromCode(roleCode)
	if err != nil {
		return nil, err
	}
	return entity.ReconstructUser(id, username, email, firstName, firstNameRuby, lastName, lastNameRuby,
		passwordHash, role, passwordInitialized, createdAt, updatedAt, deleted)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1 AND deleted = FALSE
	`, id)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username = $1 AND deleted = FALSE
	`, username)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE deleted = FALSE
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, username, email, first_name, first_name_ruby, last_name, last_name_ruby,
			password_hash, role, password_initialized, created_at, updated_at, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			first_name_ruby = EXCLUDED.first_name_ruby,
			last_name = EXCLUDED.last_name,
			last_name_ruby = EXCLUDED.last_name_ruby,
			password_hash = EXCLUDED.password_hash,
			role = EXCLUDED.role,
			password_initialized = EXCLUDED.password_initialized,
			updated_at = EXCLUDED.updated_at,
			deleted = EXCLUDED.deleted
		RETURNING `+userColumns+`
	`, u.ID(), u.Username(), u.Email(), u.FirstName(), u.FirstNameRuby(), u.LastName(), u.LastNameRuby(),
		u.PasswordHash(), u.Role().Code(), u.PasswordInitialized(), u.CreatedAt(), u.UpdatedAt(), u.Deleted())

	return scanUser(row)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET deleted = TRUE, updated_at = $2
		WHERE id = $1 AND deleted = FALSE
	`, id, time.Now())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return entity.NewNotFound("user not found")
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
