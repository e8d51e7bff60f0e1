package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/squartrbnb/user-service/internal/core/domain"
	"github.com/squartrbnb/user-service/internal/core/ports"
)

type RoleRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

var _ ports.RoleRepository = (*RoleRepository)(nil)

func NewRoleRepository(pool *pgxpool.Pool, timeout time.Duration) *RoleRepository {
	return &RoleRepository{pool: pool, timeout: timeout}
}

func (r *RoleRepository) FindByID(ctx context.Context, id int64) (*domain.Role, error) {
	return r.findOne(ctx, "find role by id", sq.Eq{"id": id})
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.findOne(ctx, "find role by name", sq.Eq{"name": name})
}

// EnsureRoles inserts every name that is not yet provisioned.
func (r *RoleRepository) EnsureRoles(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	q := psql.Insert("roles").Columns("name")
	for _, n := range names {
		q = q.Values(n)
	}
	query, args, err := q.Suffix("ON CONFLICT (name) DO NOTHING").ToSql()
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return storeError("seed roles", err)
	}
	return nil
}

func (r *RoleRepository) findOne(ctx context.Context, op string, where sq.Eq) (*domain.Role, error) {
	query, args, err := psql.Select("id", "name").From("roles").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var role domain.Role
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&role.ID, &role.Name); err != nil {
		return nil, storeError(op, err)
	}
	return &role, nil
}
