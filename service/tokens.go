package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/osagie/bookstore/data"
	"github.com/osagie/bookstore/repository"
)

// Token is a signed authentication token together with its expiry time.
type Token struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
}

type tokens interface {
	CreateAuthenticationToken(username string, password string) (*Token, error)
	GetUserForToken(tokenString string) (*data.User, error)
}

// authClaims is the claim set embedded in authentication tokens.
type authClaims struct {
	UniqueName string `json:"unique_name"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// CreateAuthenticationToken checks the given credentials and, if they match
// a registered user, issues a signed token valid for 24 hours. An unknown
// username and a wrong password produce the same error so the response does
// not reveal which one was at fault.
func (s *service) CreateAuthenticationToken(username string, password string) (*Token, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrInvalidCredentials
		default:
			return nil, err
		}
	}
	match, err := user.Password.Matches(password)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, ErrInvalidCredentials
	}
	now := time.Now()
	expiration := now.Add(24 * time.Hour)
	claims := authClaims{
		UniqueName: user.Username,
		Email:      user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        uuid.NewString(),
			Issuer:    s.config.JWT.Issuer,
			Audience:  jwt.ClaimStrings{s.config.JWT.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiration),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, err
	}
	return &Token{Token: tokenString, Expiration: expiration}, nil
}

// GetUserForToken verifies the token's signature, issuer, audience and
// lifetime, and returns the user it was issued for. Any verification
// failure is reported as ErrInvalidToken.
func (s *service) GetUserForToken(tokenString string) (*data.User, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// Only accept tokens signed the way CreateAuthenticationToken
		// signs them.
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(s.config.JWT.Issuer, true) {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyAudience(s.config.JWT.Audience, true) {
		return nil, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrInvalidToken
		default:
			return nil, err
		}
	}
	return user, nil
}
