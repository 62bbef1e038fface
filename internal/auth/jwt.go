package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	jwt.RegisteredClaims
}

type Signer interface {
	Sign(subject string) (string, error)
	Verify(token string) (*Claims, error)
}

type JWTSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTSigner(secret string, ttl time.Duration) (*JWTSigner, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &JWTSigner{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *JWTSigner) Sign(subject string) (string, error) {
	issuedAt := s.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTSigner) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", jwt.ErrTokenInvalidClaims)
	}

	return claims, nil
}
