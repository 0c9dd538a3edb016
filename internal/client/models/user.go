package models

// User is an account as returned by the backend.
type User struct {
	ID        int64  `json:"id" validate:"required"`
	Username  string `json:"username" validate:"required"`
	Name      string `json:"nome"`
	Email     string `json:"email" validate:"omitempty,email"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

// UserInput is a partial user for create and update calls; nil fields are
// left out of the request body.
type UserInput struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Name     *string `json:"nome,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token" validate:"required"`
	User  User   `json:"user"`
}
