package server

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ori-labs/aura-api/internal/config"
	"github.com/ori-labs/aura-api/internal/db"
	"github.com/ori-labs/aura-api/internal/engine"
	"github.com/ori-labs/aura-api/internal/match"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	users    map[uuid.UUID]*db.User
	profiles map[uuid.UUID]*db.UserProfile
	jobs     []db.Job

	searchQuery string
	searchLimit int
	listLimit   int

	listErr   error
	searchErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*db.User),
		profiles: make(map[uuid.UUID]*db.UserProfile),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	id := uuid.New()
	f.users[id] = &db.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	return id, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id uuid.UUID) (*db.User, error) {
	return f.users[id], nil
}

func (f *fakeStore) GetUserProfile(_ context.Context, userID uuid.UUID) (*db.UserProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, db.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeStore) UpsertUserProfile(_ context.Context, p *db.UserProfile) error {
	if existing, ok := f.profiles[p.UserID]; ok {
		p.MatchesUsed = existing.MatchesUsed
		p.MatchesLimit = existing.MatchesLimit
	}
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeStore) ListJobs(_ context.Context, _ db.JobFilters, limit int) ([]db.Job, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.listLimit = limit
	return f.jobs, nil
}

func (f *fakeStore) SearchJobs(_ context.Context, query string, limit int) ([]db.Job, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	f.searchQuery = query
	f.searchLimit = limit
	return f.jobs, nil
}

func (f *fakeStore) GetJobByID(_ context.Context, jobID uuid.UUID) (*db.Job, error) {
	for i := range f.jobs {
		if f.jobs[i].ID == jobID {
			return &f.jobs[i], nil
		}
	}
	return nil, nil
}

// fakeFinder records the input and returns a canned output or error.
type fakeFinder struct {
	in  match.Input
	out *match.Output
	err error
}

func (f *fakeFinder) FindMatches(_ context.Context, in match.Input) (*match.Output, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

// fakeGaps returns a canned engine answer, or nil to simulate an
// unavailable engine.
type fakeGaps struct {
	resp  *engine.SkillGapResponse
	calls int
}

func (f *fakeGaps) GetSkillGap(_ context.Context, _, _ []string) *engine.SkillGapResponse {
	f.calls++
	return f.resp
}

type testServer struct {
	*Server
	store  *fakeStore
	finder *fakeFinder
	gaps   *fakeGaps
}

func newTestServer() *testServer {
	store := newFakeStore()
	finder := &fakeFinder{out: &match.Output{Matches: []match.Candidate{}, Source: match.SourceFallback}}
	gaps := &fakeGaps{}

	jwtService := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	passwordConfig := &config.PasswordConfig{BcryptCost: 10}
	userService := NewUserService(store, passwordConfig)

	s := &Server{
		store:       store,
		finder:      finder,
		gaps:        gaps,
		jwtService:  jwtService,
		userService: userService,
		authHandler: NewAuthHandler(userService, jwtService),
		logger:      zap.NewNop(),
	}
	return &testServer{Server: s, store: store, finder: finder, gaps: gaps}
}

// seedUser adds a user with a profile and returns its ID.
func (ts *testServer) seedUser() uuid.UUID {
	id := uuid.New()
	ts.store.users[id] = &db.User{
		ID:    id,
		Name:  "Dana",
		Email: fmt.Sprintf("dana-%s@example.com", id),
	}
	ts.store.profiles[id] = &db.UserProfile{
		UserID:       id,
		Skills:       []string{"React", "Node.js"},
		TargetRoles:  []string{"Frontend Developer"},
		MatchesUsed:  3,
		MatchesLimit: 10,
	}
	return id
}
