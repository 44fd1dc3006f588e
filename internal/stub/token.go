package stub

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload minted on login.
type Claims struct {
	UserID string `json:"sub"`
	jwt.RegisteredClaims
}

// TokenConfig drives minting and verification of bearer tokens.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// DefaultTokenConfig applies the stub's standard issuer and lifetime.
func DefaultTokenConfig(secret string, ttl time.Duration) TokenConfig {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return TokenConfig{
		Secret: secret,
		TTL:    ttl,
		Issuer: "sage-stub",
	}
}

// MintToken signs a token for userID.
func MintToken(userID string, cfg TokenConfig) (string, error) {
	if cfg.Secret == "" {
		return "", errors.New("missing secret")
	}
	if userID == "" {
		return "", errors.New("missing userID")
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// VerifyToken parses and validates a bearer token, returning its claims.
func VerifyToken(tokenString string, cfg TokenConfig) (*Claims, error) {
	if cfg.Secret == "" {
		return nil, errors.New("missing secret")
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}
