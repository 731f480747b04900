package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"microblog/internal/forms"
	"microblog/internal/model"
	"microblog/internal/pkg"
	"microblog/internal/repository/mysql"
	"microblog/internal/repository/redis"
)

// SessionStore is the login-side view of the token whitelist.
type SessionStore interface {
	AddToken(ctx context.Context, userID uint64, token string) error
	DeleteToken(ctx context.Context, userID uint64) error
}

// ResetStore keeps short-lived password reset codes.
type ResetStore interface {
	SetCode(ctx context.Context, email, code string) error
	Code(ctx context.Context, email string) (string, error)
	DeleteCode(ctx context.Context, email string) error
}

type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type UserService struct {
	users    *mysql.UserRepository
	sessions SessionStore
	resets   ResetStore
	mailer   Mailer
}

func NewUserService(db *gorm.DB, sessions SessionStore, resets ResetStore, mailer Mailer) *UserService {
	return &UserService{
		users:    &mysql.UserRepository{DB: db},
		sessions: sessions,
		resets:   resets,
		mailer:   mailer,
	}
}

// Signup creates the account. Duplicate username/email come back as field
// errors on the offending field.
func (s *UserService) Signup(ctx context.Context, f *forms.SignupForm) (*model.User, forms.Errors, error) {
	errs := f.Validate()
	if !errs.Ok() {
		return nil, errs, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}
	user := &model.User{
		Username:  f.Username,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Password:  string(hash),
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if _, uerr := s.users.FindByUsername(f.Username); uerr == nil {
				errs.Add("username", "this username is already taken")
			} else {
				errs.Add("email", "this email is already registered")
			}
			return nil, errs, nil
		}
		return nil, nil, err
	}
	return user, nil, nil
}

// Login verifies credentials and issues a session token, replacing any
// previous session for the user.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		return "", ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", ErrBadCredentials
	}
	token, err := pkg.GenerateToken(user.ID)
	if err != nil {
		return "", err
	}
	if err := s.sessions.AddToken(ctx, user.ID, token); err != nil {
		return "", err
	}
	return token, nil
}

func (s *UserService) Logout(ctx context.Context, userID uint64) error {
	return s.sessions.DeleteToken(ctx, userID)
}

// SendResetCode mails a 6-digit code to a registered address. The code
// lives for redis.ResetCodeTTL.
func (s *UserService) SendResetCode(ctx context.Context, email string) error {
	if _, err := s.users.FindByEmail(email); err != nil {
		return notFound(err)
	}
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err := s.resets.SetCode(ctx, email, code); err != nil {
		return err
	}
	return s.mailer.Send(email, "Password reset", pkg.ResetCodeHTML(code, redis.ResetCodeTTL))
}

// ResetPassword consumes a valid code and replaces the password. The code
// is deleted only after the password write succeeds.
func (s *UserService) ResetPassword(ctx context.Context, email, code, newPassword string) (forms.Errors, error) {
	errs := forms.Errors{}
	if len(newPassword) < 8 {
		errs.Add("password", "password must be at least 8 characters")
		return errs, nil
	}
	stored, err := s.resets.Code(ctx, email)
	if err != nil || stored != code {
		errs.Add("code", "invalid or expired code")
		return errs, nil
	}
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, notFound(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdatePassword(user, string(hash)); err != nil {
		return nil, err
	}
	_ = s.resets.DeleteCode(ctx, email)
	return nil, nil
}
