package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pethero/pethero-api/internal/core/domain"
	"github.com/pethero/pethero-api/internal/core/ports"
	"github.com/pethero/pethero-api/internal/core/service"
)

// In-memory repositories backing the full HTTP stack for the scenario tests.

type memUserRepo struct {
	seq   int64
	users map[int64]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, domain.ErrEmailTaken
		}
	}
	r.seq++
	clone := *u
	clone.ID = r.seq
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) List(_ context.Context, email, password string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if email != "" && !strings.EqualFold(u.Email, email) {
			continue
		}
		if password != "" && u.Password != password {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id int64, credential string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Password = credential
	return nil
}

func (r *memUserRepo) SetProfileID(_ context.Context, userID, profileID int64) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ProfileID = &profileID
	return nil
}

func (r *memUserRepo) AcquireSession(_ context.Context, id int64) (bool, error) {
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

func (r *memUserRepo) ReleaseSession(_ context.Context, id int64) error {
	if u, ok := r.users[id]; ok {
		u.IsLoggedIn = false
	}
	return nil
}

type memProfileRepo struct {
	seq      int64
	profiles map[int64]*domain.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[int64]*domain.Profile)}
}

func (r *memProfileRepo) Create(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	r.seq++
	clone := *p
	clone.ID = r.seq
	r.profiles[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memProfileRepo) FindByID(_ context.Context, id int64) (*domain.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *memProfileRepo) List(_ context.Context, userID *int64) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range r.profiles {
		if userID != nil && p.UserID != *userID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	if _, ok := r.profiles[p.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *p
	r.profiles[p.ID] = &clone
	return nil
}

type memBookingRepo struct {
	bookings map[string]*domain.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]*domain.Booking)}
}

func (r *memBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	if _, ok := r.bookings[b.ID]; ok {
		return domain.ErrDuplicateID
	}
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *memBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *memBookingRepo) Update(_ context.Context, b *domain.Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return domain.ErrBookingNotFound
	}
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *memBookingRepo) List(_ context.Context, f ports.BookingFilter) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range r.bookings {
		if f.OwnerID != "" && b.OwnerID != f.OwnerID {
			continue
		}
		if f.GuardianID != "" && b.GuardianID != f.GuardianID {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *memBookingRepo) ExistsForPet(_ context.Context, petID, guardianID string) (bool, error) {
	for _, b := range r.bookings {
		if b.PetID == petID && b.GuardianID == guardianID {
			return true, nil
		}
	}
	return false, nil
}

func newTestRouter(t *testing.T) *httptest.Server {
	t.Helper()

	tokens, err := service.NewJWTTokenService(service.TokenConfig{
		Secret: "0123456789abcdef0123456789abcdef",
		Issuer: "pethero.test",
	})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	users := newMemUserRepo()
	profiles := newMemProfileRepo()
	bookings := newMemBookingRepo()
	log := zerolog.Nop()

	e := NewRouter(Dependencies{
		Log:      log,
		Tokens:   tokens,
		Auth:     service.NewAuthService(users, profiles, tokens, nil, log),
		Bookings: service.NewBookingService(bookings, log),
		Users:    users,
		Profiles: profiles,
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func registerAndLogin(t *testing.T, srv *httptest.Server, email, role string) string {
	t.Helper()

	resp, _ := doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]any{
		"email": email, "password": "secret123", "role": role,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register %s: status %d", email, resp.StatusCode)
	}

	resp, body := doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]any{
		"email": email, "password": "secret123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("login %s: no token in response", email)
	}
	return token
}

func TestScenario_RegisterLoginAndBookingAccess(t *testing.T) {
	srv := newTestRouter(t)

	ownerToken := registerAndLogin(t, srv, "ana@pethero.test", "owner")
	guardianToken := registerAndLogin(t, srv, "bruno@pethero.test", "guardian")
	strangerToken := registerAndLogin(t, srv, "carla@pethero.test", "owner")

	// A second login while the session is open conflicts.
	resp, _ := doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "ana@pethero.test", "password": "secret123",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second login: expected 409, got %d", resp.StatusCode)
	}

	// Owner books the guardian (users 1 and 2).
	resp, booking := doJSON(t, srv, http.MethodPost, "/bookings", ownerToken, map[string]any{
		"ownerId": "1", "guardianId": "2", "petId": "pet-1",
		"start": "2026-09-05T00:00:00Z", "end": "2026-09-08T00:00:00Z",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create booking: expected 201, got %d (%v)", resp.StatusCode, booking)
	}
	if booking["status"] != "REQUESTED" {
		t.Fatalf("booking status = %v, want REQUESTED", booking["status"])
	}
	bookingPath := fmt.Sprintf("/bookings/%v", booking["id"])

	// Both parties read it; a third account does not.
	if resp, _ := doJSON(t, srv, http.MethodGet, bookingPath, ownerToken, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("owner read: expected 200, got %d", resp.StatusCode)
	}
	if resp, _ := doJSON(t, srv, http.MethodGet, bookingPath, guardianToken, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("guardian read: expected 200, got %d", resp.StatusCode)
	}
	if resp, _ := doJSON(t, srv, http.MethodGet, bookingPath, strangerToken, nil); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("stranger read: expected 403, got %d", resp.StatusCode)
	}

	// Changing the parties is rejected.
	if resp, _ := doJSON(t, srv, http.MethodPut, bookingPath, ownerToken, map[string]any{"guardianId": "9"}); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("party change: expected 400, got %d", resp.StatusCode)
	}

	// No token, no bookings.
	if resp, _ := doJSON(t, srv, http.MethodGet, "/bookings", "", nil); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous list: expected 401, got %d", resp.StatusCode)
	}

	// Logout frees the session for a fresh login.
	resp, logoutBody := doJSON(t, srv, http.MethodPost, "/auth/logout", ownerToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", resp.StatusCode)
	}
	if logoutBody["success"] != true {
		t.Fatalf("logout body = %v, want success true", logoutBody)
	}
	resp, _ = doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "ana@pethero.test", "password": "secret123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("re-login after logout: expected 200, got %d", resp.StatusCode)
	}
}

func TestScenario_UserDirectoryHidesCredentials(t *testing.T) {
	srv := newTestRouter(t)
	registerAndLogin(t, srv, "ana@pethero.test", "owner")

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/users", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list users: expected 200, got %d", resp.StatusCode)
	}

	var users []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("users = %v, want one entry", users)
	}
	if _, leaked := users[0]["password"]; leaked {
		t.Fatalf("password leaked in directory response: %v", users[0])
	}
}

func TestScenario_RegisterAcceptsAnyNonEmptyPassword(t *testing.T) {
	srv := newTestRouter(t)

	resp, body := doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]any{
		"email": "ana@pethero.test", "password": "pw", "role": "owner",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register: expected 200, got %d (%v)", resp.StatusCode, body)
	}
	if token, _ := body["token"].(string); token == "" {
		t.Fatalf("register: no token in response: %v", body)
	}

	resp, body = doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "ana@pethero.test", "password": "pw",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%v)", resp.StatusCode, body)
	}

	// An empty password is still rejected.
	resp, _ = doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]any{
		"email": "otra@pethero.test", "password": "", "role": "owner",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty password: expected 400, got %d", resp.StatusCode)
	}
}

func TestScenario_ValidationErrors(t *testing.T) {
	srv := newTestRouter(t)

	resp, body := doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]any{
		"email": "not-an-email", "password": "secret123", "role": "owner",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad email: expected 400, got %d (%v)", resp.StatusCode, body)
	}

	resp, body = doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]any{
		"email": "ana@pethero.test", "password": "secret123", "role": "admin",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad role: expected 400, got %d (%v)", resp.StatusCode, body)
	}

	registerAndLogin(t, srv, "ana@pethero.test", "owner")
	resp, _ = doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]any{
		"email": "Ana@PetHero.test", "password": "secret123", "role": "owner",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate email: expected 409, got %d", resp.StatusCode)
	}
}
