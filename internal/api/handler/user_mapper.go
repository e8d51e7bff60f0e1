package handler

import (
	"time"

	"github.com/squartrbnb/user-service/internal/core/ports"
)

// toCreateInput maps a validated request to the service input. dateNaissance
// has already passed the datetime check.
func toCreateInput(req *createUserRequest) ports.CreateUserInput {
	birth, _ := time.Parse(DateLayout, req.DateNaissance)
	return ports.CreateUserInput{
		Username:  req.Username,
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Email:     req.Email,
		BirthDate: birth,
		PhotoPath: req.PhotoPath,
		Password:  req.Password,
		RoleID:    ports.FromPtr(req.RoleID),
	}
}

func toUpdateInput(req *updateUserRequest) ports.UpdateUserInput {
	in := ports.UpdateUserInput{
		Username:  ports.FromPtr(req.Username),
		LastName:  ports.FromPtr(req.LastName),
		FirstName: ports.FromPtr(req.FirstName),
		Email:     ports.FromPtr(req.Email),
		PhotoPath: ports.FromPtr(req.PhotoPath),
		Password:  ports.FromPtr(req.Password),
		RoleID:    ports.FromPtr(req.RoleID),
	}
	if req.DateNaissance != nil {
		if birth, err := time.Parse(DateLayout, *req.DateNaissance); err == nil {
			in.BirthDate = ports.Some(birth)
		}
	}
	return in
}

func toUserResponse(v *ports.UserView) userResponse {
	resp := userResponse{
		ID:            v.ID,
		Username:      v.Username,
		LastName:      v.LastName,
		FirstName:     v.FirstName,
		Email:         v.Email,
		DateNaissance: v.BirthDate.Format(DateLayout),
		PhotoPath:     v.PhotoPath,
	}
	if v.Role != nil {
		resp.Role = &roleResponse{ID: v.Role.ID, Name: v.Role.Name}
	}
	return resp
}

func toUserResponses(views []ports.UserView) []userResponse {
	out := make([]userResponse, 0, len(views))
	for i := range views {
		out = append(out, toUserResponse(&views[i]))
	}
	return out
}
