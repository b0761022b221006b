package client

import (
	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
)

// LoginRequest is the POST /auth/login body. Identifier is an email or a
// mobile number; Email mirrors it for backends reading that field.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email,omitempty"`
	Password   string `json:"password"`
}

// RegisterRequest is the POST /auth/register body.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	Token string        `json:"token"`
	User  *darshan.User `json:"user"`
}

// MeResponse is returned by GET /auth/me
type MeResponse struct {
	User *darshan.User `json:"user"`
}

// MessageResponse is the generic acknowledgement body (deletes, updates)
type MessageResponse struct {
	Message string `json:"message,omitempty"`
}
