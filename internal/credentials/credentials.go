// Package credentials issues and validates session credentials. Tokens are
// HS256 JWTs bound to a username; revocation goes through a denylist table so
// that it can participate in the same transaction as an account archival.
package credentials

import (
	"context"
	"fmt"
	"time"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer   = "ripple-api"
	audience = "ripple-client"
)

// Claims are the resolved contents of a valid session credential.
type Claims struct {
	UserID    uuid.UUID
	Username  string
	JTI       string
	ExpiresAt time.Time
}

// Service issues, resolves, and revokes session credentials.
type Service struct {
	secret []byte
	ttl    time.Duration
	tokens repository.TokenRepository
}

// NewService returns a credential service signing with the given secret.
func NewService(secret string, ttl time.Duration, tokens repository.TokenRepository) *Service {
	return &Service{secret: []byte(secret), ttl: ttl, tokens: tokens}
}

// Issue creates a signed credential for the given user.
func (s *Service) Issue(user *models.User) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"iss":      issuer,
		"aud":      audience,
		"exp":      now.Add(s.ttl).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Resolve validates a credential and returns its claims. Expired, malformed,
// or revoked tokens all resolve to an Unauthenticated error.
func (s *Service) Resolve(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithAudience(audience))
	if err != nil || !token.Valid {
		return nil, models.NewUnauthenticatedError("Invalid or expired token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthenticatedError("Invalid token claims")
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, models.NewUnauthenticatedError("Invalid subject claim")
	}

	username, _ := mapClaims["username"].(string)
	if username == "" {
		return nil, models.NewUnauthenticatedError("Invalid token claims")
	}

	jti, _ := mapClaims["jti"].(string)
	if jti == "" {
		return nil, models.NewUnauthenticatedError("Invalid token claims")
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, models.NewUnauthenticatedError("Invalid token claims")
	}

	revoked, err := s.tokens.IsRevoked(ctx, jti)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, models.NewUnauthenticatedError("Token has been revoked")
	}

	return &Claims{
		UserID:    userID,
		Username:  username,
		JTI:       jti,
		ExpiresAt: exp.Time,
	}, nil
}

// Revoke denylists the credential identified by the claims. Expired denylist
// rows can never match a live token again, so they are pruned on the way.
func (s *Service) Revoke(ctx context.Context, claims *Claims) error {
	if err := s.tokens.Add(ctx, claims.JTI, claims.ExpiresAt); err != nil {
		return err
	}
	_, err := s.tokens.PruneExpired(ctx)
	return err
}
