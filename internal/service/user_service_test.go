package service

import (
	"context"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/stretchr/testify/require"

	"microblog/internal/forms"
	"microblog/internal/model"
	"microblog/internal/pkg"
)

type memSessions struct {
	mu     sync.Mutex
	tokens map[uint64]string
}

func newMemSessions() *memSessions {
	return &memSessions{tokens: map[uint64]string{}}
}

func (m *memSessions) AddToken(ctx context.Context, userID uint64, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[userID] = token
	return nil
}

func (m *memSessions) DeleteToken(ctx context.Context, userID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, userID)
	return nil
}

type memResets struct {
	mu    sync.Mutex
	codes map[string]string
}

func newMemResets() *memResets {
	return &memResets{codes: map[string]string{}}
}

func (m *memResets) SetCode(ctx context.Context, email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[email] = code
	return nil
}

func (m *memResets) Code(ctx context.Context, email string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.codes[email]
	if !ok {
		return "", ErrNotFound
	}
	return code, nil
}

func (m *memResets) DeleteCode(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, email)
	return nil
}

type memMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *memMailer) Send(to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func signupForm(username string) *forms.SignupForm {
	return &forms.SignupForm{
		FirstName:       "Test",
		LastName:        "User",
		Username:        username,
		Email:           username + "@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}
}

func TestSignupAndLogin(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	sessions := newMemSessions()
	svc := NewUserService(db, sessions, newMemResets(), &memMailer{})

	user, errs, err := svc.Signup(ctx, signupForm("ada"))
	require.NoError(t, err)
	require.Nil(t, errs)
	require.NotEqual(t, "password123", user.Password)

	token, err := svc.Login(ctx, "ada", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, token, sessions.tokens[user.ID])

	claims, err := pkg.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)

	_, err = svc.Login(ctx, "ada", "wrong-password")
	require.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.Login(ctx, "nobody", "password123")
	require.ErrorIs(t, err, ErrBadCredentials)

	require.NoError(t, svc.Logout(ctx, user.ID))
	require.NotContains(t, sessions.tokens, user.ID)
}

func TestSignupDuplicateUsername(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	svc := NewUserService(db, newMemSessions(), newMemResets(), &memMailer{})

	_, errs, err := svc.Signup(ctx, signupForm("dup"))
	require.NoError(t, err)
	require.Nil(t, errs)

	f := signupForm("dup")
	f.Email = "other@example.com"
	_, errs, err = svc.Signup(ctx, f)
	require.NoError(t, err)
	require.Contains(t, errs, "username")
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	svc := NewUserService(db, newMemSessions(), newMemResets(), &memMailer{})

	_, errs, err := svc.Signup(ctx, signupForm("first"))
	require.NoError(t, err)
	require.Nil(t, errs)

	f := signupForm("second")
	f.Email = "first@example.com"
	_, errs, err = svc.Signup(ctx, f)
	require.NoError(t, err)
	require.Contains(t, errs, "email")
}

func TestPasswordResetFlow(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	resets := newMemResets()
	mailer := &memMailer{}
	svc := NewUserService(db, newMemSessions(), resets, mailer)

	_, _, err := svc.Signup(ctx, signupForm("ada"))
	require.NoError(t, err)

	require.NoError(t, svc.SendResetCode(ctx, "ada@example.com"))
	require.Equal(t, []string{"ada@example.com"}, mailer.sent)
	code := resets.codes["ada@example.com"]
	require.Len(t, code, 6)

	errs, err := svc.ResetPassword(ctx, "ada@example.com", "000000x", "newpassword1")
	require.NoError(t, err)
	require.Contains(t, errs, "code")

	errs, err = svc.ResetPassword(ctx, "ada@example.com", code, "newpassword1")
	require.NoError(t, err)
	require.Nil(t, errs)

	var user model.User
	require.NoError(t, db.Where("username = ?", "ada").First(&user).Error)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newpassword1")))

	// The code is single use.
	errs, err = svc.ResetPassword(ctx, "ada@example.com", code, "anotherpass1")
	require.NoError(t, err)
	require.Contains(t, errs, "code")
}

func TestSendResetCodeUnknownEmail(t *testing.T) {
	db := testDB(t)
	svc := NewUserService(db, newMemSessions(), newMemResets(), &memMailer{})
	require.ErrorIs(t, svc.SendResetCode(context.Background(), "ghost@example.com"), ErrNotFound)
}

func TestGroupServiceDuplicateSlug(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	svc := NewGroupService(db)

	_, errs, err := svc.Create(ctx, &forms.GroupForm{Title: "One", Slug: "same"})
	require.NoError(t, err)
	require.Nil(t, errs)

	_, errs, err = svc.Create(ctx, &forms.GroupForm{Title: "Two", Slug: "same"})
	require.NoError(t, err)
	require.Contains(t, errs, "slug")
}
