package http

import (
	"banking/internal/application/user/usecases"
	vo "banking/internal/domain/user/valueobjects"
	"banking/internal/infrastructure/auth"
)

// jwtServiceAdapter adapts auth.JWTService to the usecases.TokenIssuer interface
type jwtServiceAdapter struct {
	*auth.JWTService
}

func (a *jwtServiceAdapter) Generate(userSID string, role vo.Role) (*usecases.TokenPair, error) {
	pair, err := a.JWTService.Generate(userSID, role)
	if err != nil {
		return nil, err
	}
	return &usecases.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
