package transport

import "github.com/tasklane/backend/domain"

// TokenResponse is returned by signup and signin.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}

// NewTokenResponse wraps a freshly issued bearer token.
func NewTokenResponse(token string, user *domain.User) TokenResponse {
	return TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}
}

// ErrorBody is the uniform error payload for every failure status.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// NewErrorBody builds the uniform error payload.
func NewErrorBody(detail string) ErrorBody {
	return ErrorBody{Detail: detail}
}
