package usecase

import (
	authdomain "taskhub-backend/internal/auth/domain"
	authdto "taskhub-backend/internal/auth/dto"
)

// AuthUsecase defines the interface for authentication business logic. The
// task engine itself never sees any of this; it only receives the user ID
// the middleware extracts from a validated token.
type AuthUsecase interface {
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	ValidateToken(tokenString string) (*authdomain.User, error)
}
