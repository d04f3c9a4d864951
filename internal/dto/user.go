package dto

import (
	"time"

	"github.com/yukikurage/todo-api/internal/auth"
	"github.com/yukikurage/todo-api/internal/models"
)

// UserDTO represents a user in API responses; the password hash never leaves
// the store.
type UserDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// CredentialsRequest is the body of both register and login.
type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}

// ToTokenResponse converts an issued token to its wire form
func ToTokenResponse(token auth.Token, tokenType string) TokenResponse {
	return TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   tokenType,
		ExpiresIn:   int64(token.TTL.Seconds()),
	}
}
