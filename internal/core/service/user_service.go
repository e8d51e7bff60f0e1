package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/squartrbnb/user-service/internal/core/domain"
	"github.com/squartrbnb/user-service/internal/core/ports"
)

// UserService owns the user-management business rules.
type UserService struct {
	users       ports.UserRepository
	roles       ports.RoleRepository
	hasher      ports.PasswordHasher
	defaultRole string
	logger      zerolog.Logger
}

// NewUserService wires the service. An empty defaultRole falls back to
// domain.DefaultRoleName.
func NewUserService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	hasher ports.PasswordHasher,
	defaultRole string,
	logger zerolog.Logger,
) *UserService {
	if defaultRole == "" {
		defaultRole = domain.DefaultRoleName
	}
	return &UserService{
		users:       users,
		roles:       roles,
		hasher:      hasher,
		defaultRole: defaultRole,
		logger:      logger,
	}
}

var _ ports.UserService = (*UserService)(nil)

func (s *UserService) GetByID(ctx context.Context, id int64) (*ports.UserView, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("user_id", id).Msg("looking up user by id")

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "id", id)
	}
	return toUserView(user), nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*ports.UserView, error) {
	if strings.TrimSpace(email) == "" {
		return nil, &domain.InvalidArgumentError{Msg: "email must not be blank"}
	}
	s.logger.Debug().Str("email", email).Msg("looking up user by email")

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, lookupError(err, "email", email)
	}
	return toUserView(user), nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*ports.UserView, error) {
	if strings.TrimSpace(username) == "" {
		return nil, &domain.InvalidArgumentError{Msg: "username must not be blank"}
	}
	s.logger.Debug().Str("username", username).Msg("looking up user by username")

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, lookupError(err, "username", username)
	}
	return toUserView(user), nil
}

// List returns every user in store order.
func (s *UserService) List(ctx context.Context) ([]ports.UserView, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]ports.UserView, 0, len(users))
	for _, u := range users {
		if v := toUserView(u); v != nil {
			out = append(out, *v)
		}
	}
	return out, nil
}

// Create checks email then username uniqueness, hashes the password, resolves
// the role (default when none is given) and persists the user.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*ports.UserView, error) {
	s.logger.Info().Str("username", input.Username).Msg("creating user")

	if err := s.ensureEmailFree(ctx, input.Email); err != nil {
		return nil, err
	}
	if err := s.ensureUsernameFree(ctx, input.Username); err != nil {
		return nil, err
	}

	user := toUserEntity(&input)

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}
	user.PasswordHash = hash

	roleID, hasRole := input.RoleID.Get()
	var role *domain.Role
	if hasRole {
		role, err = s.roleByID(ctx, roleID)
	} else {
		role, err = s.defaultRoleOrFail(ctx)
	}
	if err != nil {
		return nil, err
	}
	user.Role = role

	saved, err := s.users.Save(ctx, user)
	if err != nil {
		return nil, s.writeError("create user", err, user)
	}

	s.logger.Info().Int64("user_id", saved.ID).Str("role", role.Name).Msg("user created")
	return toUserView(saved), nil
}

// Update applies a partial update. Uniqueness is re-checked only for
// supplied values that differ from the stored ones.
func (s *UserService) Update(ctx context.Context, id int64, input ports.UpdateUserInput) (*ports.UserView, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", id).Msg("updating user")

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "id", id)
	}

	if email, ok := input.Email.Get(); ok && email != user.Email {
		if err := s.ensureEmailFree(ctx, email); err != nil {
			return nil, err
		}
	}
	if username, ok := input.Username.Get(); ok && username != user.Username {
		if err := s.ensureUsernameFree(ctx, username); err != nil {
			return nil, err
		}
	}

	applyUserUpdate(input, user)

	if password, ok := input.Password.Get(); ok && password != "" {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("update user: hash password: %w", err)
		}
		user.PasswordHash = hash
		s.logger.Info().Int64("user_id", id).Msg("password changed")
	}

	if roleID, ok := input.RoleID.Get(); ok {
		role, err := s.roleByID(ctx, roleID)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}

	updated, err := s.users.Save(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Resource: domain.ResourceUser, Field: "id", Value: id}
		}
		return nil, s.writeError("update user", err, user)
	}

	s.logger.Info().Int64("user_id", updated.ID).Msg("user updated")
	return toUserView(updated), nil
}

// Delete removes a user permanently. Deleting an absent id is a not-found error.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := checkID(id); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("deleting user")

	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !exists {
		return &domain.NotFoundError{Resource: domain.ResourceUser, Field: "id", Value: id}
	}

	if err := s.users.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return &domain.NotFoundError{Resource: domain.ResourceUser, Field: "id", Value: id}
		}
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// CheckDefaultRole verifies the seeded default role exists. A missing default
// role is a deployment defect, so callers should abort startup on error.
func (s *UserService) CheckDefaultRole(ctx context.Context) error {
	_, err := s.defaultRoleOrFail(ctx)
	return err
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string) error {
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		s.logger.Warn().Str("email", email).Msg("email already in use")
		return &domain.ConflictError{Field: domain.ConflictEmail, Value: email}
	}
	return nil
}

func (s *UserService) ensureUsernameFree(ctx context.Context, username string) error {
	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if taken {
		s.logger.Warn().Str("username", username).Msg("username already in use")
		return &domain.ConflictError{Field: domain.ConflictUsername, Value: username}
	}
	return nil
}

func (s *UserService) roleByID(ctx context.Context, id int64) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Resource: domain.ResourceRole, Field: "id", Value: id}
		}
		return nil, fmt.Errorf("resolve role: %w", err)
	}
	return role, nil
}

func (s *UserService) defaultRoleOrFail(ctx context.Context) (*domain.Role, error) {
	role, err := s.roles.FindByName(ctx, s.defaultRole)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			s.logger.Error().Str("role", s.defaultRole).Msg("default role missing from role store")
			return nil, &domain.ConfigurationError{Msg: fmt.Sprintf("default role %q is not provisioned", s.defaultRole)}
		}
		return nil, fmt.Errorf("resolve default role: %w", err)
	}
	return role, nil
}

// writeError turns a unique-index race reported by the store into a conflict.
func (s *UserService) writeError(op string, err error, user *domain.User) error {
	var dup *domain.DuplicateKeyError
	if errors.As(err, &dup) {
		s.logger.Warn().Err(err).Str("field", dup.Field.String()).Msg("store rejected write on unique index")
		conflict := &domain.ConflictError{Field: dup.Field, Err: err}
		switch dup.Field {
		case domain.ConflictEmail:
			conflict.Value = user.Email
		case domain.ConflictUsername:
			conflict.Value = user.Username
		}
		return conflict
	}
	if errors.Is(err, domain.ErrDuplicateKey) {
		return &domain.ConflictError{Field: domain.ConflictGeneric, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func lookupError(err error, field string, value any) error {
	if errors.Is(err, domain.ErrRecordNotFound) {
		return &domain.NotFoundError{Resource: domain.ResourceUser, Field: field, Value: value}
	}
	return fmt.Errorf("find user by %s: %w", field, err)
}

func checkID(id int64) error {
	if id <= 0 {
		return &domain.InvalidArgumentError{Msg: fmt.Sprintf("user id must be positive, got %d", id)}
	}
	return nil
}
