package postgres

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/squartrbnb/user-service/internal/core/domain"
	"github.com/squartrbnb/user-service/internal/core/ports"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{
	"u.id", "u.username", "u.last_name", "u.first_name", "u.email", "u.birth_date",
	"u.photo_path", "u.password_hash", "u.remember_token", "r.id", "r.name",
}

type UserRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(pool *pgxpool.Pool, timeout time.Duration) *UserRepository {
	return &UserRepository{pool: pool, timeout: timeout}
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, "find user by id", sq.Eq{"u.id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "find user by email", sq.Eq{"u.email": email})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "find user by username", sq.Eq{"u.username": username})
}

// FindAll returns every user ordered by id.
func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	query, args, err := selectUsers().OrderBy("u.id").ToSql()
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("list users", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storeError("list users", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list users", err)
	}
	return users, nil
}

func (r *UserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "check user id", sq.Eq{"id": id})
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "check user email", sq.Eq{"email": email})
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "check user username", sq.Eq{"username": username})
}

// Save inserts u when it has no id yet, otherwise updates every column of the
// stored row. Unique constraint violations are reported as
// *domain.DuplicateKeyError.
func (r *UserRepository) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	saved := u.Clone()

	if saved.ID == 0 {
		query, args, err := insertUser(saved).ToSql()
		if err != nil {
			return nil, err
		}
		if err := r.pool.QueryRow(ctx, query, args...).Scan(&saved.ID); err != nil {
			return nil, writeError("insert user", err)
		}
		return saved, nil
	}

	query, args, err := updateUser(saved).ToSql()
	if err != nil {
		return nil, err
	}
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, writeError("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, storeError("update user", pgx.ErrNoRows)
	}
	return saved, nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("users").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return storeError("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return storeError("delete user", pgx.ErrNoRows)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, op string, where sq.Eq) (*domain.User, error) {
	query, args, err := selectUsers().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	u, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, storeError(op, err)
	}
	return u, nil
}

func (r *UserRepository) exists(ctx context.Context, op string, where sq.Eq) (bool, error) {
	query, args, err := psql.Select("1").From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return false, err
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var one int
	err = r.pool.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, storeError(op, err)
	}
	return true, nil
}

func selectUsers() sq.SelectBuilder {
	return psql.Select(userColumns...).
		From("users u").
		LeftJoin("roles r ON r.id = u.role_id")
}

func insertUser(u *domain.User) sq.InsertBuilder {
	return psql.Insert("users").
		Columns("username", "last_name", "first_name", "email", "birth_date",
			"photo_path", "password_hash", "remember_token", "role_id").
		Values(u.Username, u.LastName, u.FirstName, u.Email, u.BirthDate,
			u.PhotoPath, u.PasswordHash, u.RememberToken, roleID(u)).
		Suffix("RETURNING id")
}

func updateUser(u *domain.User) sq.UpdateBuilder {
	return psql.Update("users").
		SetMap(map[string]any{
			"username":       u.Username,
			"last_name":      u.LastName,
			"first_name":     u.FirstName,
			"email":          u.Email,
			"birth_date":     u.BirthDate,
			"photo_path":     u.PhotoPath,
			"password_hash":  u.PasswordHash,
			"remember_token": u.RememberToken,
			"role_id":        roleID(u),
		}).
		Where(sq.Eq{"id": u.ID})
}

func roleID(u *domain.User) *int64 {
	if u.Role == nil {
		return nil
	}
	id := u.Role.ID
	return &id
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u        domain.User
		roleID   *int64
		roleName *string
	)
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.LastName,
		&u.FirstName,
		&u.Email,
		&u.BirthDate,
		&u.PhotoPath,
		&u.PasswordHash,
		&u.RememberToken,
		&roleID,
		&roleName,
	)
	if err != nil {
		return nil, err
	}
	if roleID != nil && roleName != nil {
		u.Role = &domain.Role{ID: *roleID, Name: *roleName}
	}
	return &u, nil
}
