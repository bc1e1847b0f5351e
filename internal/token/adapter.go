package token

import (
	"posadmin/internal/platform/middleware"
)

// MiddlewareAdapter exposes the token service through the session middleware
// interface.
type MiddlewareAdapter struct {
	service *Service
}

func NewMiddlewareAdapter(service *Service) *MiddlewareAdapter {
	return &MiddlewareAdapter{service: service}
}

func (a *MiddlewareAdapter) ValidateSession(tokenString string) (*middleware.SessionClaims, error) {
	claims, err := a.service.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.SessionClaims{
		AdminID:     claims.AdminID,
		Username:    claims.Username,
		PINVerified: claims.PINVerified,
	}, nil
}
