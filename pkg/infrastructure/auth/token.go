package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
)

var ErrInvalidToken = errors.New("invalid token")

var _ model.TokenIssuer = &JWTTokenManager{}

// JWTTokenManager issues and verifies HS256-signed bearer tokens.
type JWTTokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTTokenManager(secret string, ttl time.Duration) *JWTTokenManager {
	return &JWTTokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *JWTTokenManager) Issue(user *model.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role.String(),
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	return token, errors.Wrap(err, "sign token")
}

// Verify checks the signature and expiry and returns the subject user id.
func (m *JWTTokenManager) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Wrapf(ErrInvalidToken, "unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	subject, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}
