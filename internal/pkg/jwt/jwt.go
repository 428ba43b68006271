package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Tokens are issued by the external auth provider; this service only
// verifies them and extracts identity claims.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// Identity is the caller identity carried in verified token claims.
type Identity struct {
	UserID   string
	StudioID string
	Role     string
	Email    string
}

// IdentityFromContext extracts the caller identity from the verified token
// on the request context.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	studioID, ok := claims["studio_id"].(string)
	if !ok || studioID == "" {
		return Identity{}, fmt.Errorf("studio_id claim is missing or invalid")
	}

	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)

	return Identity{
		UserID:   userID,
		StudioID: studioID,
		Role:     role,
		Email:    email,
	}, nil
}
