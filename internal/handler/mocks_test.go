package handler_test

import (
	"context"
	"io"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/caviteventure/caviteventure-api/internal/handler"
	"github.com/caviteventure/caviteventure-api/internal/model"
	"github.com/caviteventure/caviteventure-api/internal/repository"
	"github.com/caviteventure/caviteventure-api/internal/usecase"
	"github.com/caviteventure/caviteventure-api/shared/auth"
	"github.com/caviteventure/caviteventure-api/shared/security"
	"github.com/caviteventure/caviteventure-api/shared/validation"
)

const (
	testSecret = "handler-test-secret"
	testIssuer = "caviteventure"
)

// testServer wires the full router against in-memory dependencies.
type testServer struct {
	*httptest.Server

	users    *memUserRepo
	pending  *memPendingEventRepo
	approved *memApprovedEventRepo
	codes    *memCodeStore
	visits   *memVisitRepo
	mail     *fakeMailer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := zerolog.Nop()

	users := newMemUserRepo()
	pending := newMemPendingEventRepo()
	approved := newMemApprovedEventRepo()
	codes := newMemCodeStore()
	visits := &memVisitRepo{}
	mail := &fakeMailer{}

	validator, err := validation.New()
	if err != nil {
		t.Fatalf("validation.New: %v", err)
	}

	jwtAuth := auth.NewJWTAuthenticator(testIssuer, testIssuer)
	tokenCfg := usecase.TokenConfig{
		Secret:    testSecret,
		Issuer:    testIssuer,
		ExpiresIn: time.Hour,
	}

	authUsecase := usecase.NewAuthUsecase(users, jwtAuth, mail, tokenCfg, &logger)
	verificationUsecase := usecase.NewVerificationUsecase(codes, users, mail, 10*time.Minute)
	eventUsecase := usecase.NewEventUsecase(pending, approved)
	profileUsecase := usecase.NewProfileUsecase(users, &fakeStorage{url: "/uploads/test.jpg"})
	siteUsecase := usecase.NewSiteUsecase(users, visits, &logger)

	router := handler.NewRouter(handler.RouterConfig{
		AuthHandler:    handler.NewAuthHandler(authUsecase, verificationUsecase, validator, &logger),
		UserHandler:    handler.NewUserHandler(profileUsecase, &logger),
		EventHandler:   handler.NewEventHandler(eventUsecase, validator, &logger),
		SiteHandler:    handler.NewSiteHandler(siteUsecase, &logger),
		Middleware:     handler.NewMiddleware(jwtAuth, testSecret, users, &logger),
		Logger:         &logger,
		AllowedOrigins: []string{"*"},
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testServer{
		Server:   server,
		users:    users,
		pending:  pending,
		approved: approved,
		codes:    codes,
		visits:   visits,
		mail:     mail,
	}
}

// seedUser inserts a verified account directly, bypassing the sign-up flow.
func (ts *testServer) seedUser(t *testing.T, email, password string, role model.Role) *model.User {
	t.Helper()

	hash, err := security.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	user, err := ts.users.CreateUser(context.Background(), &model.User{
		FirstName:    "Juan",
		LastName:     "Dela Cruz",
		Birthday:     time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:       "male",
		Location:     "Cavite City",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Verified:     true,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	return user
}

// ---------- In-memory dependencies ----------

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*model.User)}
}

func (r *memUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, repository.ErrDuplicateEmail
		}
	}

	user.ID = bson.NewObjectID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID.Hex()] = user

	return user, nil
}

func (r *memUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *memUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	if params.FirstName != nil {
		user.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		user.LastName = *params.LastName
	}
	if params.Birthday != nil {
		user.Birthday = *params.Birthday
	}
	if params.Location != nil {
		user.Location = *params.Location
	}
	if params.Gender != nil {
		user.Gender = *params.Gender
	}
	if params.ProfilePicture != nil {
		user.ProfilePicture = *params.ProfilePicture
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	user.UpdatedAt = time.Now()

	return user, nil
}

func (r *memUserRepo) MarkUserVerified(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	user.Verified = true
	user.VerificationCode = ""

	return nil
}

func (r *memUserRepo) CountUsers(_ context.Context, gender *string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, user := range r.users {
		if gender == nil || user.Gender == *gender {
			count++
		}
	}

	return count, nil
}

type memCodeStore struct {
	mu      sync.Mutex
	entries map[string]repository.CodeEntry
}

func newMemCodeStore() *memCodeStore {
	return &memCodeStore{entries: make(map[string]repository.CodeEntry)}
}

func (s *memCodeStore) Put(_ context.Context, email string, entry repository.CodeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[email] = entry

	return nil
}

func (s *memCodeStore) Get(_ context.Context, email string) (*repository.CodeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok {
		return nil, repository.ErrNoCode
	}

	return &entry, nil
}

func (s *memCodeStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, email)

	return nil
}

type memPendingEventRepo struct {
	mu     sync.Mutex
	events map[string]*model.Event
}

func newMemPendingEventRepo() *memPendingEventRepo {
	return &memPendingEventRepo{events: make(map[string]*model.Event)}
}

func (r *memPendingEventRepo) CreateEvent(_ context.Context, event *model.Event) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event.ID = bson.NewObjectID()
	event.Approved = false
	event.CreatedAt = time.Now()
	r.events[event.ID.Hex()] = event

	return event, nil
}

func (r *memPendingEventRepo) GetEvent(_ context.Context, id string) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}

	return event, nil
}

func (r *memPendingEventRepo) ListPending(_ context.Context) ([]*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]*model.Event, 0, len(r.events))
	for _, event := range r.events {
		events = append(events, event)
	}

	return events, nil
}

func (r *memPendingEventRepo) DeleteEvent(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return repository.ErrEventNotFound
	}

	delete(r.events, id)

	return nil
}

type memApprovedEventRepo struct {
	mu     sync.Mutex
	events map[string]*model.Event
}

func newMemApprovedEventRepo() *memApprovedEventRepo {
	return &memApprovedEventRepo{events: make(map[string]*model.Event)}
}

func (r *memApprovedEventRepo) CreateEvent(_ context.Context, event *model.Event) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ID.IsZero() {
		event.ID = bson.NewObjectID()
	} else if _, ok := r.events[event.ID.Hex()]; ok {
		return nil, repository.ErrEventAlreadyApproved
	}

	event.Approved = true
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	r.events[event.ID.Hex()] = event

	return event, nil
}

func (r *memApprovedEventRepo) ListEvents(_ context.Context) ([]*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]*model.Event, 0, len(r.events))
	for _, event := range r.events {
		events = append(events, event)
	}

	return events, nil
}

type memVisitRepo struct {
	mu    sync.Mutex
	count int64
}

func (r *memVisitRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.count, nil
}

func (r *memVisitRepo) Increment(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.count++

	return r.count, nil
}

var codePattern = regexp.MustCompile(`[0-9]{6}`)

type fakeMailer struct {
	mu     sync.Mutex
	bodies []string
}

func (m *fakeMailer) SendSimple(_ []string, _ string, body string) error {
	return m.record(body)
}

func (m *fakeMailer) SendHTML(_ []string, _ string, htmlBody string) error {
	return m.record(htmlBody)
}

func (m *fakeMailer) record(body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bodies = append(m.bodies, body)

	return nil
}

func (m *fakeMailer) lastCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.bodies) == 0 {
		return ""
	}

	return codePattern.FindString(m.bodies[len(m.bodies)-1])
}

type fakeStorage struct {
	url string
}

func (s *fakeStorage) Upload(_ context.Context, _ string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}

	return s.url, nil
}
