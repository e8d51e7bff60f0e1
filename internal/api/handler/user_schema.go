package handler

// --- Request / Response types ---

type createUserRequest struct {
	Username      string  `json:"username" validate:"required,notblank,min=3,max=50"`
	LastName      string  `json:"nom" validate:"required,notblank,max=100"`
	FirstName     string  `json:"prenom" validate:"required,notblank,max=100"`
	Email         string  `json:"email" validate:"required,email"`
	DateNaissance string  `json:"dateNaissance" validate:"required,datetime=2006-01-02,past" example:"1990-01-01"`
	PhotoPath     *string `json:"photoPath,omitempty"`
	Password      string  `json:"password" validate:"required,min=8,maxbytes=72,strongpassword"`
	RoleID        *int64  `json:"roleId,omitempty" validate:"omitempty,gt=0"`
}

// updateUserRequest is a partial update: a nil field is left unchanged. An
// explicit JSON null is treated the same as an absent key.
type updateUserRequest struct {
	Username      *string `json:"username,omitempty" validate:"omitnil,notblank,min=3,max=50"`
	LastName      *string `json:"nom,omitempty" validate:"omitnil,notblank,max=100"`
	FirstName     *string `json:"prenom,omitempty" validate:"omitnil,notblank,max=100"`
	Email         *string `json:"email,omitempty" validate:"omitnil,email"`
	DateNaissance *string `json:"dateNaissance,omitempty" validate:"omitnil,datetime=2006-01-02,past" example:"1990-01-01"`
	PhotoPath     *string `json:"photoPath,omitempty"`
	// An empty password is dropped before validation and keeps the stored one.
	Password *string `json:"password,omitempty" validate:"omitnil,min=8,maxbytes=72,strongpassword"`
	RoleID   *int64  `json:"roleId,omitempty" validate:"omitnil,gt=0"`
}

// dropEmptyPassword turns "password": "" into an absent field.
func (r *updateUserRequest) dropEmptyPassword() {
	if r.Password != nil && *r.Password == "" {
		r.Password = nil
	}
}

type roleResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type userResponse struct {
	ID            int64         `json:"id"`
	Username      string        `json:"username"`
	LastName      string        `json:"nom"`
	FirstName     string        `json:"prenom"`
	Email         string        `json:"email"`
	DateNaissance string        `json:"dateNaissance" example:"1990-01-01"`
	PhotoPath     *string       `json:"photoPath"`
	Role          *roleResponse `json:"role"`
}
