package authService

import (
	"FinTrackGolang/internal/api/auth"
	authRepository "FinTrackGolang/internal/api/auth/repository"
	"FinTrackGolang/internal/entity"
	"FinTrackGolang/pkg/bcrypt"
	"FinTrackGolang/pkg/utils"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type memUsers struct {
	users map[string]entity.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]entity.User)}
}

func (m *memUsers) CreateUser(ctx context.Context, user entity.User) error {
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return auth.ErrUsernameAlreadyExists
		}
		if existing.Email == user.Email {
			return auth.ErrEmailAlreadyExists
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *memUsers) GetByID(ctx context.Context, id string) (entity.User, error) {
	user, ok := m.users[id]
	if !ok {
		return entity.User{}, auth.ErrUserNotFound
	}
	return user, nil
}

func (m *memUsers) GetByUsername(ctx context.Context, username string) (entity.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return entity.User{}, auth.ErrUserNotFound
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return entity.User{}, auth.ErrUserNotFound
}

func (m *memUsers) UpdateUser(ctx context.Context, user entity.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return auth.ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *memUsers) UpdateUserPassword(ctx context.Context, email string, password string) error {
	for id, user := range m.users {
		if user.Email == email {
			user.Password = password
			m.users[id] = user
			return nil
		}
	}
	return auth.ErrUserWithEmailNotFound
}

func (m *memUsers) DeleteUser(ctx context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return auth.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

type fakeAuthRepository struct {
	users *memUsers
}

func newFakeAuthRepository() *fakeAuthRepository {
	return &fakeAuthRepository{users: newMemUsers()}
}

func (r *fakeAuthRepository) NewClient(tx bool) (authRepository.Client, error) {
	return authRepository.Client{Users: r.users}, nil
}

type fakeRedis struct {
	otps        map[string]string
	blacklisted map[string]bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{otps: make(map[string]string), blacklisted: make(map[string]bool)}
}

func (r *fakeRedis) SetOTP(ctx context.Context, key string, code string, expiration time.Duration) error {
	r.otps[key] = code
	return nil
}

func (r *fakeRedis) GetOTP(ctx context.Context, key string) (string, error) {
	code, ok := r.otps[key]
	if !ok {
		return "", goredis.Nil
	}
	return code, nil
}

func (r *fakeRedis) DeleteOTP(ctx context.Context, key string) error {
	delete(r.otps, key)
	return nil
}

func (r *fakeRedis) BlacklistToken(ctx context.Context, jti string, expiration time.Duration) error {
	r.blacklisted[jti] = true
	return nil
}

func (r *fakeRedis) IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	return r.blacklisted[jti], nil
}

type fakeSmtp struct {
	sent map[string]string
}

func newFakeSmtp() *fakeSmtp {
	return &fakeSmtp{sent: make(map[string]string)}
}

func (s *fakeSmtp) CreateSmtp(userEmail string, otp string) error {
	s.sent[userEmail] = otp
	return nil
}

func newTestService(t *testing.T, repo *fakeAuthRepository, redisServer *fakeRedis, mailer *fakeSmtp) AuthService {
	t.Helper()
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-access-secret")
	t.Setenv("JWT_REFRESH_TOKEN_SECRET", "test-refresh-secret")
	return New(testLogger(), repo, nil, mailer, redisServer, bcrypt.NewWithCost(4), utils.New())
}

func registerUser(t *testing.T, svc AuthService) {
	t.Helper()
	err := svc.User().RegisterUser(context.Background(), auth.CreateUserRequest{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
}

func TestRegisterUser_Defaults(t *testing.T) {
	repo := newFakeAuthRepository()
	svc := newTestService(t, repo, newFakeRedis(), newFakeSmtp())

	registerUser(t, svc)

	if len(repo.users.users) != 1 {
		t.Fatalf("users = %d, want 1", len(repo.users.users))
	}
	for _, user := range repo.users.users {
		if user.Timezone != "America/Sao_Paulo" {
			t.Errorf("timezone = %s, want America/Sao_Paulo", user.Timezone)
		}
		if user.Currency != "BRL" {
			t.Errorf("currency = %s, want BRL", user.Currency)
		}
		if user.Password == "s3cret-pass" {
			t.Error("password stored in plain text")
		}
	}
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	repo := newFakeAuthRepository()
	svc := newTestService(t, repo, newFakeRedis(), newFakeSmtp())

	registerUser(t, svc)

	err := svc.User().RegisterUser(context.Background(), auth.CreateUserRequest{
		Username: "maria",
		Email:    "other@example.com",
		Password: "another-pass",
	})
	if !errors.Is(err, auth.ErrUsernameAlreadyExists) {
		t.Fatalf("err = %v, want ErrUsernameAlreadyExists", err)
	}
}

func TestLogin_ByUsernameAndByEmail(t *testing.T) {
	repo := newFakeAuthRepository()
	svc := newTestService(t, repo, newFakeRedis(), newFakeSmtp())
	registerUser(t, svc)

	for _, identifier := range []string{"maria", "maria@example.com"} {
		res, err := svc.Auth().Login(context.Background(), auth.LoginUserRequest{
			Identifier: identifier,
			Password:   "s3cret-pass",
		})
		if err != nil {
			t.Fatalf("Login(%s): %v", identifier, err)
		}
		if res.AccessToken == "" || res.RefreshToken == "" {
			t.Errorf("Login(%s): missing tokens", identifier)
		}
		if res.User.Username != "maria" {
			t.Errorf("Login(%s): user = %+v", identifier, res.User)
		}
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeAuthRepository()
	svc := newTestService(t, repo, newFakeRedis(), newFakeSmtp())
	registerUser(t, svc)

	_, err := svc.Auth().Login(context.Background(), auth.LoginUserRequest{
		Identifier: "maria",
		Password:   "wrong",
	})
	if !errors.Is(err, auth.ErrInvalidUsernameOrPassword) {
		t.Fatalf("err = %v, want ErrInvalidUsernameOrPassword", err)
	}
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	repo := newFakeAuthRepository()
	svc := newTestService(t, repo, newFakeRedis(), newFakeSmtp())

	_, err := svc.Auth().Login(context.Background(), auth.LoginUserRequest{
		Identifier: "nobody",
		Password:   "whatever",
	})
	if !errors.Is(err, auth.ErrInvalidUsernameOrPassword) {
		t.Fatalf("err = %v, want ErrInvalidUsernameOrPassword", err)
	}
}

func TestRefreshToken_RotatesAndRevokes(t *testing.T) {
	repo := newFakeAuthRepository()
	redisServer := newFakeRedis()
	svc := newTestService(t, repo, redisServer, newFakeSmtp())
	registerUser(t, svc)

	res, err := svc.Auth().Login(context.Background(), auth.LoginUserRequest{
		Identifier: "maria",
		Password:   "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	rotated, err := svc.Auth().RefreshToken(context.Background(), res.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if rotated.AccessToken == "" {
		t.Error("rotated pair missing access token")
	}

	// The original refresh token is single use.
	if _, err := svc.Auth().RefreshToken(context.Background(), res.RefreshToken); !errors.Is(err, auth.ErrInvalidRefreshToken) {
		t.Fatalf("reused token err = %v, want ErrInvalidRefreshToken", err)
	}
}

func TestLogout_BlacklistsRefreshToken(t *testing.T) {
	repo := newFakeAuthRepository()
	redisServer := newFakeRedis()
	svc := newTestService(t, repo, redisServer, newFakeSmtp())
	registerUser(t, svc)

	res, err := svc.Auth().Login(context.Background(), auth.LoginUserRequest{
		Identifier: "maria",
		Password:   "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Auth().Logout(context.Background(), res.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if _, err := svc.Auth().RefreshToken(context.Background(), res.RefreshToken); !errors.Is(err, auth.ErrInvalidRefreshToken) {
		t.Fatalf("post-logout refresh err = %v, want ErrInvalidRefreshToken", err)
	}
}

func TestResetPassword_Flow(t *testing.T) {
	repo := newFakeAuthRepository()
	redisServer := newFakeRedis()
	mailer := newFakeSmtp()
	svc := newTestService(t, repo, redisServer, mailer)
	registerUser(t, svc)

	if err := svc.Password().ForgotPassword(context.Background(), auth.ForgotPasswordRequest{
		Email: "maria@example.com",
	}); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}

	otp, ok := mailer.sent["maria@example.com"]
	if !ok || len(otp) != 6 {
		t.Fatalf("otp sent = %q, want 6-digit code", otp)
	}

	if err := svc.Password().ResetPassword(context.Background(), auth.ResetPasswordRequest{
		Email:       "maria@example.com",
		OTP:         otp,
		NewPassword: "brand-new-pass",
	}); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if _, err := svc.Auth().Login(context.Background(), auth.LoginUserRequest{
		Identifier: "maria",
		Password:   "brand-new-pass",
	}); err != nil {
		t.Fatalf("Login with new password: %v", err)
	}
}

func TestResetPassword_WrongOTP(t *testing.T) {
	repo := newFakeAuthRepository()
	redisServer := newFakeRedis()
	mailer := newFakeSmtp()
	svc := newTestService(t, repo, redisServer, mailer)
	registerUser(t, svc)

	if err := svc.Password().ForgotPassword(context.Background(), auth.ForgotPasswordRequest{
		Email: "maria@example.com",
	}); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}

	err := svc.Password().ResetPassword(context.Background(), auth.ResetPasswordRequest{
		Email:       "maria@example.com",
		OTP:         "000000",
		NewPassword: "brand-new-pass",
	})
	if !errors.Is(err, auth.ErrInvalidOTP) && !errors.Is(err, auth.ErrTokenExpired) {
		t.Fatalf("err = %v, want invalid OTP", err)
	}
}

func TestUpdateUser_PartialFields(t *testing.T) {
	repo := newFakeAuthRepository()
	svc := newTestService(t, repo, newFakeRedis(), newFakeSmtp())
	registerUser(t, svc)

	var userID string
	for id := range repo.users.users {
		userID = id
	}

	err := svc.User().UpdateUser(context.Background(), entity.UserLoginData{ID: userID}, auth.UpdateUserRequest{
		Currency: "USD",
	})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	user := repo.users.users[userID]
	if user.Currency != "USD" {
		t.Errorf("currency = %s, want USD", user.Currency)
	}
	if user.Timezone != "America/Sao_Paulo" {
		t.Errorf("timezone = %s, unset fields must be preserved", user.Timezone)
	}
}
