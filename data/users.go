package data

import (
	"errors"
	"time"

	"github.com/osagie/bookstore/internal/validator"
	"golang.org/x/crypto/bcrypt"
)

// AnonymousUser represents an unauthenticated request.
var AnonymousUser = &User{}

// User defines a registered account.
type User struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Username  string    `json:"userName"`
	Email     string    `json:"email"`
	Password  password  `json:"-"`
	Version   int32     `json:"-"`
}

// IsAnonymous checks whether a user instance is the anonymous user.
func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

// password holds the plaintext and hashed versions of a user's password.
// The plaintext field is a *pointer* to a string, so that we're able to
// distinguish between a plaintext password not being present in the struct
// at all, versus a plaintext password which is the empty string.
type password struct {
	Plaintext *string
	Hash      []byte
}

// Set calculates the bcrypt hash of a plaintext password.
func (p *password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), 12)
	if err != nil {
		return err
	}
	p.Plaintext = &plaintextPassword
	p.Hash = hash
	return nil
}

// Matches checks whether the provided plaintext password matches the hashed
// password, returning true if it matches and false otherwise.
func (p *password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.Hash, []byte(plaintextPassword))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}
	return true, nil
}

func ValidateUsername(v *validator.Validator, username string) {
	v.Check(username != "", "userName", "must be provided")
	v.Check(len(username) <= 100, "userName", "must not be more than 100 bytes long")
	if username != "" {
		v.Check(validator.Matches(username, validator.UsernameRX), "userName", "must contain only letters, digits and - . _ @ +")
	}
}

func ValidateEmail(v *validator.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(validator.Matches(email, validator.EmailRX), "email", "must be a valid email address")
}

// ValidatePasswordPlaintext enforces the account password policy: at least
// six bytes with one digit, one lowercase and one uppercase letter. A
// non-alphanumeric character is not required. The 72-byte ceiling is the
// bcrypt input limit.
func ValidatePasswordPlaintext(v *validator.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(len(password) >= 6, "password", "must be at least 6 bytes long")
	v.Check(len(password) <= 72, "password", "must not be more than 72 bytes long")
	v.Check(validator.ContainsDigit(password), "password", "must contain at least one digit")
	v.Check(validator.ContainsLower(password), "password", "must contain at least one lowercase letter")
	v.Check(validator.ContainsUpper(password), "password", "must contain at least one uppercase letter")
}

func ValidateUser(v *validator.Validator, user *User) {
	ValidateUsername(v, user.Username)
	ValidateEmail(v, user.Email)
	if user.Password.Plaintext != nil {
		ValidatePasswordPlaintext(v, *user.Password.Plaintext)
	}
	if user.Password.Hash == nil {
		panic("missing password hash for user")
	}
}
