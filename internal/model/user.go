package model

import "time"

// Profession is the set of professions a user can register with.
type Profession string

const (
	ProfessionEngineer Profession = "Engineer"
	ProfessionDoctor   Profession = "Doctor"
)

// Valid reports whether p is one of the known professions.
func (p Profession) Valid() bool {
	return p == ProfessionEngineer || p == ProfessionDoctor
}

// User represents a user record in the database.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Profession   Profession
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Response returns the user data safe for API responses. The password hash
// never leaves the server.
func (u User) Response() UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Phone      string `json:"phone"`
	Profession string `json:"profession"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest represents a partial user update. Nil fields are left
// unchanged.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// AuthResponse represents a successful login: the session token plus the
// authenticated user's public data.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse represents user data safe for API responses (no sensitive fields).
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
