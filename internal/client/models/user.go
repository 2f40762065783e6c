package models

// UserRegistration is the body of POST /api/auth/register.
type UserRegistration struct {
	Name     string `json:"name" validate:"min=2"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"min=10"`
	Password string `json:"password" validate:"min=8"`
	IsAdmin  bool   `json:"isAdmin"`
}

// LoginInput is the body of POST /api/auth/login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=8"`
}

// UserData is the user profile echoed back by the auth endpoints.
type UserData struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	IsAdmin bool   `json:"isAdmin"`
}

// AuthResponse is returned by both login and register.
type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Data    struct {
		User UserData `json:"user"`
	} `json:"data"`
}
