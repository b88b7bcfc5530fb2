package usecase_test

import (
	"context"
	"regexp"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/caviteventure/caviteventure-api/internal/model"
	"github.com/caviteventure/caviteventure-api/internal/repository"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()

	return &logger
}

func userFixture(email, passwordHash string) *model.User {
	return &model.User{
		FirstName:    "Juan",
		LastName:     "Dela Cruz",
		Birthday:     time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:       "male",
		Location:     "Cavite City",
		Email:        email,
		PasswordHash: passwordHash,
		Role:         model.RoleUser,
		Verified:     true,
	}
}

// ---------- Mocks ----------

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User // id hex -> user
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
	mu      sync.Mutex
	sends   []string // bodies, in order
	lastTo  string
	sendErr error
}

func (m *fakeMailer) SendSimple(to []string, _ string, body string) error {
	return m.record(to, body)
}

func (m *fakeMailer) SendHTML(to []string, _ string, htmlBody string) error {
	return m.record(to, htmlBody)
}

func (m *fakeMailer) record(to []string, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return m.sendErr
	}

	if len(to) > 0 {
		m.lastTo = to[0]
	}
	m.sends = append(m.sends, body)

	return nil
}

// lastCode extracts the 6-digit code from the most recent email body.
func (m *fakeMailer) lastCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sends) == 0 {
		return ""
	}

	return codePattern.FindString(m.sends[len(m.sends)-1])
}
