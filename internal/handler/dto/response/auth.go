package response

import (
	"stayhub/internal/usecase/commands"

	"github.com/google/uuid"
)

type RegisterResponse struct {
	GuestID uuid.UUID `json:"guestId"`
	Email   string    `json:"email"`
}

type LoginResponse struct {
	GuestID      uuid.UUID `json:"guestId"`
	Role         string    `json:"role"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func FromLoginResult(result *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		GuestID:      result.GuestID,
		Role:         result.Role,
		AccessToken:  result.TokenPair.AccessToken,
		RefreshToken: result.TokenPair.RefreshToken,
	}
}

func FromTokenPair(pair *commands.TokenPair) *TokenPairResponse {
	return &TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
}
