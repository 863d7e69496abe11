package models

// User is the active identity for a session. Role gates the admin surface.
type User struct {
	ID    string `json:"id" example:"2"`
	Name  string `json:"name" example:"Regular User"`
	Email string `json:"email" example:"user@example.com"`
	Role  string `json:"role" example:"user"` // "user" or "admin"
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
