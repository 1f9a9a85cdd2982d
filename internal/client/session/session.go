package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/gateway"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storefront/internal/client/token"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

type State string

const (
	StateUnknown       State = "unknown"
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

// Snapshot is a read-only view of the session.
type Snapshot struct {
	State State
	User  *token.User
	Token string
}

// Authenticated reports whether a user is signed in.
func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated
}

// Gateway is the subset of the backend client the session needs.
type Gateway interface {
	SignUp(ctx context.Context, req gateway.SignUpRequest) error
	SignIn(ctx context.Context, req gateway.SignInRequest) (string, error)
}

// Service is what UI code depends on.
type Service interface {
	Session() Snapshot
	SignUp(ctx context.Context, name, email, password string) error
	SignIn(ctx context.Context, email, password string) error
	SignOut()
}

// Manager implements Service.
type Manager struct {
	gateway Gateway
	store   metadata.Repository
	log     logging.Logger

	// notifyMu orders publish+notify pairs so observers see changes in the
	// order they were applied.
	notifyMu sync.Mutex

	mu        sync.RWMutex
	current   Snapshot
	observers map[int]func(Snapshot)
	nextObsID int

	restoreOnce sync.Once
	background  sync.WaitGroup
}

var _ Service = (*Manager)(nil)

// NewManager returns a Manager in the Unknown state. Call Restore to load
// the persisted token.
func NewManager(gw Gateway, store metadata.Repository, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		gateway:   gw,
		store:     store,
		log:       log.With("component", "session"),
		current:   Snapshot{State: StateUnknown},
		observers: make(map[int]func(Snapshot)),
	}
}

// Session returns the current snapshot.
func (m *Manager) Session() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Subscribe registers fn to be called after every published change, in the
// order the changes were applied. fn may read Session but must not call
// SignIn, SignOut or Restore synchronously. The returned func unregisters it.
func (m *Manager) Subscribe(fn func(Snapshot)) (cancel func()) {
	m.mu.Lock()
	id := m.nextObsID
	m.nextObsID++
	m.observers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.observers, id)
		m.mu.Unlock()
	}
}

// Restore loads the persisted token once. Later calls do nothing. If another
// transition has already been published, the restored value is discarded.
func (m *Manager) Restore(ctx context.Context) {
	m.restoreOnce.Do(func() {
		next := m.load(ctx)
		m.publishIf(StateUnknown, next)
	})
}

func (m *Manager) load(ctx context.Context) Snapshot {
	anonymous := Snapshot{State: StateAnonymous}

	raw, err := m.store.Get(ctx, common.TokenStorageKey)
	if err != nil {
		m.log.Warn(ctx, "failed to load stored token", "error", err)
		return anonymous
	}
	if len(raw) == 0 {
		m.log.Debug(ctx, "no stored token")
		return anonymous
	}

	tok := string(raw)
	claims, err := token.Decode(tok)
	if err != nil {
		m.log.Warn(ctx, "stored token is unreadable", "error", err)
		return anonymous
	}

	u := claims.User()
	m.log.Info(ctx, "session restored", "user_id", u.ID, "role", u.Role)
	return Snapshot{State: StateAuthenticated, User: &u, Token: tok}
}

// SignUp registers an account. It does not sign in.
func (m *Manager) SignUp(ctx context.Context, name, email, password string) error {
	err := m.gateway.SignUp(ctx, gateway.SignUpRequest{Name: name, Email: email, Password: password})
	if err != nil {
		m.log.Info(ctx, "sign up failed", "error", err)
		return fmt.Errorf("sign up: %w", err)
	}
	return nil
}

// SignIn authenticates, persists the token, then publishes the new session.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	tok, err := m.gateway.SignIn(ctx, gateway.SignInRequest{Email: email, Password: password})
	if err != nil {
		m.log.Info(ctx, "sign in failed", "error", err)
		return fmt.Errorf("sign in: %w", err)
	}

	if err := m.store.Set(ctx, common.TokenStorageKey, []byte(tok)); err != nil {
		m.log.Error(ctx, "failed to persist token", "error", err)
		return fmt.Errorf("persist token: %w", err)
	}

	claims, err := token.Decode(tok)
	if err != nil {
		m.log.Error(ctx, "backend issued an unreadable token", "error", err)
		return fmt.Errorf("decode issued token: %w", err)
	}

	u := claims.User()
	m.publish(Snapshot{State: StateAuthenticated, User: &u, Token: tok})
	m.log.Info(ctx, "signed in", "user_id", u.ID, "role", u.Role)
	return nil
}

// SignOut clears the session immediately. Removal of the persisted token
// runs in the background; its outcome is logged and otherwise dropped.
func (m *Manager) SignOut() {
	m.publish(Snapshot{State: StateAnonymous})

	m.background.Add(1)
	go func() {
		defer m.background.Done()
		ctx := context.Background()
		if err := m.store.Delete(ctx, common.TokenStorageKey); err != nil {
			m.log.Warn(ctx, "failed to remove stored token", "error", err)
			return
		}
		m.log.Debug(ctx, "stored token removed")
	}()
}

// Close waits for background removals started by SignOut, or for ctx.
func (m *Manager) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.background.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) publish(next Snapshot) {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	m.current = next
	obs := m.snapshotObservers()
	m.mu.Unlock()

	notify(obs, next)
}

func (m *Manager) publishIf(expected State, next Snapshot) {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	if m.current.State != expected {
		m.mu.Unlock()
		return
	}
	m.current = next
	obs := m.snapshotObservers()
	m.mu.Unlock()

	notify(obs, next)
}

// snapshotObservers must be called with mu held.
func (m *Manager) snapshotObservers() []func(Snapshot) {
	obs := make([]func(Snapshot), 0, len(m.observers))
	for _, fn := range m.observers {
		obs = append(obs, fn)
	}
	return obs
}

func notify(obs []func(Snapshot), s Snapshot) {
	for _, fn := range obs {
		fn(s)
	}
}
