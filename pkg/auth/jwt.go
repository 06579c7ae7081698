package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingTenant = errors.New("token carries no tenant")
)

// Claims identifies the caller and the tenant every request is scoped to.
type Claims struct {
	TenantID string `json:"tenant_id"`
	Name     string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateToken(tenantID, subject, name string) (string, error)
	ValidateToken(token string) (*Claims, error)
}

type hmacJWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTService returns an HS256 signer and verifier. An empty issuer
// disables the issuer check.
func NewJWTService(secret, issuer string, ttl time.Duration) JWTService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &hmacJWTService{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

func (s *hmacJWTService) GenerateToken(tenantID, subject, name string) (string, error) {
	if tenantID == "" {
		return "", ErrMissingTenant
	}
	now := time.Now()
	claims := Claims{
		TenantID: tenantID,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *hmacJWTService) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.TenantID == "" {
		return nil, ErrMissingTenant
	}
	return &claims, nil
}
