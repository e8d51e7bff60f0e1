package service

import (
	"github.com/squartrbnb/user-service/internal/core/domain"
	"github.com/squartrbnb/user-service/internal/core/ports"
)

// --- Entity → view ---

func toUserView(u *domain.User) *ports.UserView {
	if u == nil {
		return nil
	}
	return &ports.UserView{
		ID:        u.ID,
		Username:  u.Username,
		LastName:  u.LastName,
		FirstName: u.FirstName,
		Email:     u.Email,
		BirthDate: u.BirthDate,
		PhotoPath: copyString(u.PhotoPath),
		Role:      toRoleView(u.Role),
	}
}

func toRoleView(r *domain.Role) *ports.RoleView {
	if r == nil {
		return nil
	}
	return &ports.RoleView{ID: r.ID, Name: r.Name}
}

// --- Input → entity ---

// toUserEntity copies the plaintext password into PasswordHash as a
// placeholder; the caller must overwrite it before persisting.
func toUserEntity(in *ports.CreateUserInput) *domain.User {
	if in == nil {
		return nil
	}
	return &domain.User{
		Username:     in.Username,
		LastName:     in.LastName,
		FirstName:    in.FirstName,
		Email:        in.Email,
		BirthDate:    in.BirthDate,
		PhotoPath:    copyString(in.PhotoPath),
		PasswordHash: in.Password,
	}
}

// applyUserUpdate mutates u field by field, skipping absent fields.
// Password and role transitions are owned by the service.
func applyUserUpdate(in ports.UpdateUserInput, u *domain.User) {
	if u == nil {
		return
	}
	if v, ok := in.Username.Get(); ok {
		u.Username = v
	}
	if v, ok := in.LastName.Get(); ok {
		u.LastName = v
	}
	if v, ok := in.FirstName.Get(); ok {
		u.FirstName = v
	}
	if v, ok := in.Email.Get(); ok {
		u.Email = v
	}
	if v, ok := in.BirthDate.Get(); ok {
		u.BirthDate = v
	}
	if v, ok := in.PhotoPath.Get(); ok {
		u.PhotoPath = &v
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
