package service

import (
	"errors"

	"github.com/osagie/bookstore/data"
	"github.com/osagie/bookstore/internal/validator"
	"github.com/osagie/bookstore/repository"
)

type users interface {
	RegisterUser(username string, email string, password string) (*data.User, error)
}

// RegisterUser service registers a new user account. Policy violations are
// returned as field-level validation errors and no partial account is
// created. Registration never issues a token; login is a separate step.
func (s *service) RegisterUser(username string, email string, password string) (*data.User, error) {
	user := &data.User{
		Username: username,
		Email:    email,
	}
	err := user.Password.Set(password)
	if err != nil {
		return nil, err
	}
	v := validator.New()
	if data.ValidateUser(v, user); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	err = s.repo.RegisterUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			v.AddError("email", "a user with this email address already exists")
			return nil, failedValidation(v.Errors)
		case errors.Is(err, repository.ErrDuplicateUsername):
			v.AddError("userName", "a user with this username already exists")
			return nil, failedValidation(v.Errors)
		default:
			return nil, err
		}
	}
	// Send the welcome email in a background goroutine to speed up response time.
	s.background(func() {
		err := s.mailer.Send(user.Email, "user_welcome.tmpl", map[string]string{"userName": user.Username})
		if err != nil {
			s.logger.PrintError(err, nil)
		}
	})
	return user, nil
}
