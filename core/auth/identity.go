package auth

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
)

// Roles
const (
	RoleAdmin   = "admin"
	RoleLearner = "learner"
)

var ErrNoSession = errors.New("no session")

// Identity is the authenticated (or demo-authenticated) principal for the
// current session. Role is immutable for the session's lifetime; IsDemo flags
// which persistence path all subsequent operations for this identity use.
type Identity struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	IsDemo bool   `json:"is_demo"`
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
func (i Identity) IsZero() bool  { return i.ID == "" }

// Session is the locally persisted session record, distinct from any remote
// store session token.
type Session struct {
	Identity  Identity  `json:"identity"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// SessionStore is any local persistent area that can hold the session record.
type SessionStore interface {
	Save(Session) error
	// Get returns ErrNoSession when no record exists.
	Get() (Session, error)
	Clear() error
}

// SessionManager wraps a SessionStore with the session expiry policy: a
// record older than the timeout is treated as absent.
type SessionManager struct {
	store   SessionStore
	timeout time.Duration
	nowFunc func() time.Time
}

func NewSessionManager(store SessionStore, timeout time.Duration) *SessionManager {
	return &SessionManager{store: store, timeout: timeout, nowFunc: time.Now}
}

func (m *SessionManager) Save(ident Identity) error {
	return m.store.Save(Session{Identity: ident, CreatedAt: m.nowFunc().UTC()})
}

// Current returns the session identity, or ErrNoSession when no valid
// (non-expired) record exists.
func (m *SessionManager) Current() (Identity, error) {
	sess, err := m.store.Get()
	if err != nil {
		return Identity{}, err
	}
	if m.nowFunc().Sub(sess.CreatedAt) >= m.timeout {
		return Identity{}, ErrNoSession
	}
	return sess.Identity, nil
}

func (m *SessionManager) IsValid() bool {
	_, err := m.Current()
	return err == nil
}

func (m *SessionManager) Clear() error {
	return m.store.Clear()
}

type ctxKey int

const identityKey ctxKey = 1

// ContextWithIdentity returns a ctx carrying the request identity.
func ContextWithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// IdentityFromContext extracts the request identity set by ContextWithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey).(Identity)
	return ident, ok && !ident.IsZero()
}

// IdentityProvider resolves the identity performing the current operation.
type IdentityProvider interface {
	Current(ctx context.Context) (Identity, error)
}

// Provider resolves identities from the request context first, then from the
// locally persisted session record.
type Provider struct {
	Sessions *SessionManager // optional
}

var _ IdentityProvider = (*Provider)(nil)

func (p *Provider) Current(ctx context.Context) (Identity, error) {
	if ident, ok := IdentityFromContext(ctx); ok {
		return ident, nil
	}
	if p.Sessions != nil {
		if ident, err := p.Sessions.Current(); err == nil {
			return ident, nil
		}
	}
	return Identity{}, core.ErrNotLoggedIn
}

// RequireIdentity returns the current identity or ErrNotLoggedIn.
func RequireIdentity(ctx context.Context, idp IdentityProvider) (Identity, error) {
	ident, err := idp.Current(ctx)
	if err != nil {
		return Identity{}, core.ErrNotLoggedIn
	}
	return ident, nil
}

// RequireAdmin returns the current identity if it holds the admin role.
func RequireAdmin(ctx context.Context, idp IdentityProvider) (Identity, error) {
	ident, err := RequireIdentity(ctx, idp)
	if err != nil {
		return Identity{}, err
	}
	if !ident.IsAdmin() {
		return Identity{}, core.ErrAdminRequired
	}
	return ident, nil
}
