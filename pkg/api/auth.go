package api

import "google.golang.org/protobuf/types/known/timestamppb"

// User is the public view of an account.
type User struct {
	ID          string                 `json:"id"`
	Email       string                 `json:"email"`
	DisplayName string                 `json:"display_name"`
	CreatedAt   *timestamppb.Timestamp `json:"created_at,omitempty"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type RegisterResponse struct {
	User      *User                  `json:"user"`
	Token     string                 `json:"token"`
	ExpiresAt *timestamppb.Timestamp `json:"expires_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User      *User                  `json:"user"`
	Token     string                 `json:"token"`
	ExpiresAt *timestamppb.Timestamp `json:"expires_at"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}
