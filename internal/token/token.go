// Package token issues and verifies the HS256 session tokens.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"scheduling/internal/access"
	"scheduling/internal/model"
	"scheduling/pkg/apperror"
)

// InvalidMessage is returned for every token that fails verification.
const InvalidMessage = "Unauthorized - Invalid Token"

// Claims is the token body: sub holds the user id.
type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a token for the user with its current roles.
func (s *Service) Issue(user *model.User) (string, error) {
	now := s.now()
	claims := Claims{
		Email: user.Email,
		Roles: user.RoleNames(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and maps the claims onto a Principal.
// Unknown role tags are dropped.
func (s *Service) Verify(raw string) (access.Principal, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return access.Principal{}, apperror.InvalidCredential(InvalidMessage)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return access.Principal{}, apperror.InvalidCredential(InvalidMessage)
	}

	return access.Principal{
		ID:    id,
		Email: claims.Email,
		Roles: access.NewRoleSet(claims.Roles...),
	}, nil
}
