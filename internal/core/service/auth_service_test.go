package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
)

const testSigningKey = "0123456789abcdef0123456789abcdef"

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	clone := cloneUser(u)
	clone.ID = r.nextID
	r.nextID++
	r.users[clone.ID] = cloneUser(clone)
	return clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context, email, password string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if email != "" && u.Email != email {
			continue
		}
		if password != "" && u.Password != password {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id int64, credential string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Password = credential
	return nil
}

func (r *stubUserRepo) SetProfileID(_ context.Context, userID, profileID int64) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ProfileID = &profileID
	return nil
}

func (r *stubUserRepo) AcquireSession(_ context.Context, id int64) (bool, error) {
	u, ok := r.users[id]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	if u.IsLoggedIn {
		return false, nil
	}
	u.IsLoggedIn = true
	return true, nil
}

func (r *stubUserRepo) ReleaseSession(_ context.Context, id int64) error {
	if u, ok := r.users[id]; ok {
		u.IsLoggedIn = false
	}
	return nil
}

type stubProfileRepo struct {
	profiles map[int64]*domain.Profile
	nextID   int64
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[int64]*domain.Profile), nextID: 1}
}

func (r *stubProfileRepo) Create(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	clone := *p
	clone.ID = r.nextID
	r.nextID++
	r.profiles[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id int64) (*domain.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) List(_ context.Context, userID *int64) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range r.profiles {
		if userID != nil && p.UserID != *userID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	if _, ok := r.profiles[p.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *p
	r.profiles[p.ID] = &clone
	return nil
}

func newTestAuthService(t *testing.T, users *stubUserRepo, throttle LoginThrottle) *AuthService {
	t.Helper()
	tokens, err := NewJWTTokenService(TokenConfig{
		Secret:   testSigningKey,
		Issuer:   "pethero.test",
		Audience: "pethero.client",
	})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return NewAuthService(users, newStubProfileRepo(), tokens, throttle, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(t, users, nil)

	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "  Alice@Example.COM ",
		Password: "pw123",
		Role:     "owner",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if res.User.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", res.User.Email)
	}
	if res.User.Role != domain.RoleOwner {
		t.Fatalf("unexpected role: %s", res.User.Role)
	}

	stored, _ := users.FindByEmail(context.Background(), "alice@example.com")
	if stored.IsLoggedIn {
		t.Fatalf("registration must not open a session")
	}
	if stored.Password == "pw123" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("pw123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_WithProfile(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(t, users, nil)

	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "bob@example.com",
		Password: "pw",
		Role:     "guardian",
		Profile:  &ports.RegisterProfileInput{DisplayName: "", Phone: "+54 11 5555"},
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.User.ProfileID == nil {
		t.Fatalf("profileId not back-linked")
	}
	if res.User.Profile == nil || res.User.Profile.DisplayName != "bob@example.com" {
		t.Fatalf("blank display name should default to email, got %+v", res.User.Profile)
	}

	stored, _ := users.FindByEmail(context.Background(), "bob@example.com")
	if stored.ProfileID == nil || *stored.ProfileID != *res.User.ProfileID {
		t.Fatalf("profile link not persisted")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(t, newStubUserRepo(), nil)

	cases := []ports.RegisterInput{
		{Email: "", Password: "pw", Role: "owner"},
		{Email: "a@x.com", Password: "", Role: "owner"},
		{Email: "a@x.com", Password: "pw", Role: ""},
		{Email: "a@x.com", Password: "pw", Role: "admin"},
	}
	for i, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t, newStubUserRepo(), nil)

	in := ports.RegisterInput{Email: "dup@x.com", Password: "pw", Role: "owner"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_SingleSession(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(t, users, nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Password: "pw", Role: "owner"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "a@x.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token")
	}

	stored, _ := users.FindByEmail(context.Background(), "a@x.com")
	if !stored.IsLoggedIn {
		t.Fatalf("login must set the session flag")
	}

	// Second login before logout is rejected.
	if _, err := svc.Login(context.Background(), "a@x.com", "pw"); !errors.Is(err, domain.ErrActiveSession) {
		t.Fatalf("expected ErrActiveSession, got %v", err)
	}

	// Logout then login again succeeds.
	if err := svc.Logout(context.Background(), strconv.FormatInt(stored.ID, 10)); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@x.com", "pw"); err != nil {
		t.Fatalf("re-login after logout failed: %v", err)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc := newTestAuthService(t, newStubUserRepo(), nil)

	if _, err := svc.Login(context.Background(), "ghost@x.com", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "b@x.com", Password: "right", Role: "owner"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "b@x.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("bad password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_MigratesLegacyPlaintext(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(t, users, nil)

	// Seeded account with a plaintext credential, as imported data has.
	legacy, _ := users.Create(context.Background(), &domain.User{
		Email:    "legacy@x.com",
		Password: "owner123",
		Role:     "owner",
	})

	if _, err := svc.Login(context.Background(), "legacy@x.com", "owner123"); err != nil {
		t.Fatalf("legacy login failed: %v", err)
	}

	stored, _ := users.FindByID(context.Background(), legacy.ID)
	if stored.Password == "owner123" {
		t.Fatalf("plaintext credential not migrated")
	}
	if !strings.HasPrefix(stored.Password, "$2") {
		t.Fatalf("migrated credential is not a bcrypt hash: %q", stored.Password)
	}

	// Second login must take the hash-verify path and still succeed.
	_ = users.ReleaseSession(context.Background(), legacy.ID)
	if _, err := svc.Login(context.Background(), "legacy@x.com", "owner123"); err != nil {
		t.Fatalf("post-migration login failed: %v", err)
	}

	// And the wrong password still fails after migration.
	_ = users.ReleaseSession(context.Background(), legacy.ID)
	if _, err := svc.Login(context.Background(), "legacy@x.com", "guardian123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAuthService(t, users, nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "c@x.com", Password: "pw", Role: "guardian"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	stored, _ := users.FindByEmail(context.Background(), "c@x.com")
	id := strconv.FormatInt(stored.ID, 10)

	if _, err := svc.Login(context.Background(), "c@x.com", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), id); err != nil {
		t.Fatalf("first logout failed: %v", err)
	}
	if err := svc.Logout(context.Background(), id); err != nil {
		t.Fatalf("second logout must also succeed: %v", err)
	}

	stored, _ = users.FindByEmail(context.Background(), "c@x.com")
	if stored.IsLoggedIn {
		t.Fatalf("session flag still set after logout")
	}
}

func TestAuthService_Logout_UnknownSubject(t *testing.T) {
	svc := newTestAuthService(t, newStubUserRepo(), nil)

	if err := svc.Logout(context.Background(), "999"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown user, got %v", err)
	}
	if err := svc.Logout(context.Background(), "not-a-number"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for bad subject, got %v", err)
	}
}

type stubThrottle struct {
	failures map[string]int
	limit    int
	resets   int
}

func (s *stubThrottle) TooMany(_ context.Context, email string) (bool, error) {
	return s.failures[email] >= s.limit, nil
}

func (s *stubThrottle) RecordFailure(_ context.Context, email string) error {
	s.failures[email]++
	return nil
}

func (s *stubThrottle) Reset(_ context.Context, email string) error {
	s.resets++
	delete(s.failures, email)
	return nil
}

func TestAuthService_Login_Throttled(t *testing.T) {
	users := newStubUserRepo()
	throttle := &stubThrottle{failures: make(map[string]int), limit: 2}
	svc := newTestAuthService(t, users, throttle)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "d@x.com", Password: "pw", Role: "owner"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.Login(context.Background(), "d@x.com", "bad"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	// Over the budget: even the right password is rejected now.
	if _, err := svc.Login(context.Background(), "d@x.com", "pw"); !errors.Is(err, domain.ErrTooManyLogins) {
		t.Fatalf("expected ErrTooManyLogins, got %v", err)
	}

	throttle.failures["d@x.com"] = 0
	if _, err := svc.Login(context.Background(), "d@x.com", "pw"); err != nil {
		t.Fatalf("login after window reset failed: %v", err)
	}
	if throttle.resets != 1 {
		t.Fatalf("successful login must reset the counter, resets=%d", throttle.resets)
	}
}
