package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tokens stay valid for a fixed window; there is no refresh or revocation.
const tokenTTL = 7 * 24 * time.Hour

type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("signing secret is required")
	}
	return &Codec{secret: []byte(secret), ttl: tokenTTL}, nil
}

// Issue signs a token whose subject is the user ID.
func (c *Codec) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Subject validates the token and returns the user ID it was issued for.
func (c *Codec) Subject(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	if !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}

	return uuid.Parse(claims.Subject)
}
