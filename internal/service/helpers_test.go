package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/deadline-tracker/internal/auth"
	"github.com/spec-kit/deadline-tracker/internal/config"
	"github.com/spec-kit/deadline-tracker/internal/events"
	"github.com/spec-kit/deadline-tracker/internal/persistence"
	"github.com/spec-kit/deadline-tracker/internal/repository"
)

type fixture struct {
	state      *repository.StateRepository
	store      *persistence.FileStore
	users      repository.UserRepository
	tasks      repository.TaskRepository
	deadlines  repository.DeadlineRepository
	schedules  repository.ScheduleRepository
	sessions   *auth.MemorySessionStore
	dispatcher *recordingDispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := persistence.NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	state := repository.NewStateRepository(store, nil)
	return &fixture{
		state:      state,
		store:      store,
		users:      repository.NewUserRepository(state),
		tasks:      repository.NewTaskRepository(state),
		deadlines:  repository.NewDeadlineRepository(state),
		schedules:  repository.NewScheduleRepository(state),
		sessions:   auth.NewMemorySessionStore(),
		dispatcher: &recordingDispatcher{},
	}
}

func (f *fixture) authService() *AuthService {
	cfg := config.Config{Auth: config.AuthConfig{
		SessionSecret:     "test-secret",
		SessionTTLMinutes: 60,
		BcryptCost:        bcrypt.MinCost,
	}}
	return NewAuthService(cfg, AuthDependencies{
		UserRepo:   f.users,
		Sessions:   f.sessions,
		Dispatcher: f.dispatcher,
	})
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) SubscribeAll(events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}

func (d *recordingDispatcher) last() events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.events[len(d.events)-1]
}

type stubRenderer struct {
	out   []byte
	err   error
	calls int
	last  string
}

func (r *stubRenderer) Render(_ context.Context, html string) ([]byte, error) {
	r.calls++
	r.last = html
	return r.out, r.err
}

type stubArchiver struct {
	key   string
	err   error
	owner string
}

func (a *stubArchiver) Archive(_ context.Context, owner, filename string, _ []byte) (string, error) {
	a.owner = owner
	if a.err != nil {
		return "", a.err
	}
	return a.key + "/" + filename, nil
}

var errBoom = errors.New("boom")
