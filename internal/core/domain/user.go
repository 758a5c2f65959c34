package domain

import "time"

// Role defines the access level of a user
type Role string

const (
	// RoleSeeker is a candidate uploading resumes and applying to jobs
	RoleSeeker Role = "seeker"

	// RoleAdmin curates the local job catalog
	RoleAdmin Role = "admin"
)

// User represents an account in the system
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the user can curate the catalog
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TokenClaims are the claims embedded in an access token
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	SessionID string `json:"session_id"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Session is a server-side login session, stored in Redis or PostgreSQL
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthContext is the authenticated identity attached to a request
type AuthContext struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the authenticated user is an admin
func (a *AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// RegisterRequest is the account creation payload
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// LoginRequest is the authentication payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and user identity
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}
