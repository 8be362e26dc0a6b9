package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/entity"
	"github.com/thejohnjohn/SmoothPDV-sub000/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, store_id, email, password_hash, name, role, created_at, updated_at, deleted, deleted_at, deleted_by`

// Create persiste un nuevo usuario. El índice único parcial sobre email
// solo cubre filas no borradas.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, store_id, email, password_hash, name, role, created_at, updated_at, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, nullIfEmpty(user.StoreID), user.Email, user.PasswordHash, user.Name, string(user.Role),
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string, includeDeleted bool) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if !includeDeleted {
		query += ` AND deleted = FALSE`
	}
	row := r.q.QueryRow(context.Background(), query, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// GetByEmail obtiene un usuario no borrado por email (login).
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted = FALSE LIMIT 1`
	row := r.q.QueryRow(context.Background(), query, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// List lista usuarios con paginación.
func (r *UserRepo) List(includeDeleted bool, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	if !includeDeleted {
		query += ` WHERE deleted = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryUsers(query, limit, offset)
}

// ListByStore usuarios de una tienda con paginación.
func (r *UserRepo) ListByStore(storeID string, includeDeleted bool, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE store_id = $1`
	if !includeDeleted {
		query += ` AND deleted = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.queryUsers(query, storeID, limit, offset)
}

// ListByRole usuarios por rol con paginación.
func (r *UserRepo) ListByRole(role entity.Role, includeDeleted bool, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1`
	if !includeDeleted {
		query += ` AND deleted = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.queryUsers(query, string(role), limit, offset)
}

func (r *UserRepo) queryUsers(query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, user)
	}
	return list, rows.Err()
}

// Update actualiza un usuario no borrado.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET email = $2, password_hash = $3, name = $4, role = $5, updated_at = $6
		WHERE id = $1 AND deleted = FALSE`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, string(user.Role), user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// SoftDelete marca el usuario como borrado con actor y timestamp.
func (r *UserRepo) SoftDelete(id, actorID string, at time.Time) error {
	query := `
		UPDATE users SET deleted = TRUE, deleted_at = $2, deleted_by = $3, updated_at = $2
		WHERE id = $1 AND deleted = FALSE`
	_, err := r.q.Exec(context.Background(), query, id, at, actorID)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	return nil
}

// Restore limpia los campos de borrado.
func (r *UserRepo) Restore(id string, at time.Time) error {
	query := `
		UPDATE users SET deleted = FALSE, deleted_at = NULL, deleted_by = NULL, updated_at = $2
		WHERE id = $1 AND deleted = TRUE`
	_, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("restore user: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var storeID, deletedBy *string
	var role string
	err := row.Scan(
		&u.ID, &storeID, &u.Email, &u.PasswordHash, &u.Name, &role,
		&u.CreatedAt, &u.UpdatedAt, &u.Deleted, &u.DeletedAt, &deletedBy,
	)
	if err != nil {
		return nil, err
	}
	u.StoreID = derefStr(storeID)
	u.DeletedBy = derefStr(deletedBy)
	u.Role = entity.Role(role)
	return &u, nil
}
