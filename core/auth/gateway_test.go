package auth

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/Reema362/learn-spark-lms-sub001/core"
)

// memSessionStore is an in-memory SessionStore for tests.
type memSessionStore struct {
	sess  *Session
	saves int
}

func (s *memSessionStore) Save(sess Session) error {
	s.sess = &sess
	s.saves++
	return nil
}

func (s *memSessionStore) Get() (Session, error) {
	if s.sess == nil {
		return Session{}, ErrNoSession
	}
	return *s.sess, nil
}

func (s *memSessionStore) Clear() error {
	s.sess = nil
	return nil
}

// fakeRemote simulates the remote record store's auth surface backed by a map.
type fakeRemote struct {
	accounts map[string]NewAccount // email -> account
	signErr  error                 // overrides credential checking when set
	signUps  int
	signOuts int
}

func (r *fakeRemote) SignIn(_ context.Context, email, password string) (Identity, error) {
	if r.signErr != nil {
		return Identity{}, r.signErr
	}
	acct, ok := r.accounts[email]
	if !ok || acct.Password != password {
		return Identity{}, core.ErrInvalidCredentials
	}
	return Identity{ID: "usr-" + email, Email: email, Role: acct.Role, Name: acct.Name}, nil
}

func (r *fakeRemote) SignUp(_ context.Context, acct NewAccount) (Identity, error) {
	r.signUps++
	r.accounts[acct.Email] = acct
	return Identity{ID: "usr-" + acct.Email, Email: acct.Email, Role: acct.Role, Name: acct.Name}, nil
}

func (r *fakeRemote) SignOut(context.Context) error {
	r.signOuts++
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func newTestGateway(remote *fakeRemote, bootstrapEmails ...string) (*Gateway, *memSessionStore) {
	conf := &core.Config{
		SessionTimeout:   8 * time.Hour,
		LockoutDuration:  15 * time.Minute,
		MaxLoginAttempts: 5,
		Bootstrap: core.BootstrapConfig{
			Enabled:      true,
			AdminEmails:  bootstrapEmails,
			TempPassword: "TempPass123",
		},
	}
	store := &memSessionStore{}
	sessions := NewSessionManager(store, conf.SessionTimeout)
	limiter := NewLimiter(conf.MaxLoginAttempts, conf.LockoutDuration)
	return NewGateway(conf, remote, sessions, limiter, nopLogger{}), store
}

func TestGatewayLoginRemoteSuccess(t *testing.T) {
	remote := &fakeRemote{accounts: map[string]NewAccount{
		"jane@example.com": {Email: "jane@example.com", Password: "Sup3rSecret", Name: "Jane", Role: RoleAdmin},
	}}
	gw, store := newTestGateway(remote)

	res, err := gw.Login(context.Background(), " Jane@Example.com ", "Sup3rSecret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	assert.Equal(t, "jane@example.com", res.Identity.Email)
	assert.Equal(t, RoleAdmin, res.Identity.Role)
	assert.False(t, res.Identity.IsDemo)
	assert.False(t, res.NeedsPasswordChange)

	// session record was persisted
	if store.sess == nil {
		t.Fatal("no session record persisted")
	}
	if !gw.IsSessionValid() {
		t.Error("IsSessionValid() = false after successful login")
	}
}

func TestGatewayLoginLazyProvisioning(t *testing.T) {
	// empty remote user table + allow-listed admin email
	remote := &fakeRemote{accounts: map[string]NewAccount{}}
	gw, _ := newTestGateway(remote, "root@avocop.io")

	res, err := gw.Login(context.Background(), "root@avocop.io", "whatever")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !res.NeedsPasswordChange {
		t.Error("NeedsPasswordChange = false after lazy provisioning")
	}
	assert.Equal(t, 1, remote.signUps)
	assert.Equal(t, RoleAdmin, res.Identity.Role)

	// second login with the temporary password needs no provisioning
	res, err = gw.Login(context.Background(), "root@avocop.io", "TempPass123")
	if err != nil {
		t.Fatalf("Login() retry error = %v", err)
	}
	if res.NeedsPasswordChange {
		t.Error("NeedsPasswordChange = true for an already provisioned account")
	}
	assert.Equal(t, 1, remote.signUps)
}

func TestGatewayLoginBootstrapDisabled(t *testing.T) {
	remote := &fakeRemote{accounts: map[string]NewAccount{}}
	gw, _ := newTestGateway(remote, "root@avocop.io")
	gw.bootstrap = false

	_, err := gw.Login(context.Background(), "root@avocop.io", "whatever")
	if !errors.Is(err, core.ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want %v", err, core.ErrInvalidCredentials)
	}
	if remote.signUps != 0 {
		t.Error("account was provisioned with bootstrap disabled")
	}
}

func TestGatewayLoginDemoFallback(t *testing.T) {
	// remote store is down
	remote := &fakeRemote{signErr: errors.New("connection refused")}
	gw, store := newTestGateway(remote)

	res, err := gw.Login(context.Background(), "admin@demo.avocop.io", demoPassword)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !res.Identity.IsDemo {
		t.Error("demo fallback identity not flagged IsDemo")
	}
	assert.Equal(t, RoleAdmin, res.Identity.Role)
	if store.sess == nil || !store.sess.Identity.IsDemo {
		t.Error("demo session record not persisted")
	}

	// wrong demo password fails
	_, err = gw.Login(context.Background(), "admin@demo.avocop.io", "nope")
	if !errors.Is(err, core.ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want %v", err, core.ErrInvalidCredentials)
	}
}

func TestGatewayLoginRateLimited(t *testing.T) {
	remote := &fakeRemote{accounts: map[string]NewAccount{}}
	gw, _ := newTestGateway(remote)

	for i := 0; i < 5; i++ {
		if _, err := gw.Login(context.Background(), "jane@example.com", "bad"); err == nil {
			t.Fatal("Login() with bad credentials succeeded")
		}
	}
	_, err := gw.Login(context.Background(), "jane@example.com", "bad")
	if !core.IsRateLimited(err) {
		t.Errorf("Login() error = %v, want rate limited", err)
	}
}

func TestGatewayLogout(t *testing.T) {
	remote := &fakeRemote{accounts: map[string]NewAccount{
		"jane@example.com": {Email: "jane@example.com", Password: "Sup3rSecret", Role: RoleLearner},
	}}
	gw, store := newTestGateway(remote)

	if _, err := gw.Login(context.Background(), "jane@example.com", "Sup3rSecret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	gw.Logout(context.Background())

	if store.sess != nil {
		t.Error("session record not removed on logout")
	}
	if remote.signOuts != 1 {
		t.Errorf("remote sign-outs = %d, want 1", remote.signOuts)
	}
	if gw.IsSessionValid() {
		t.Error("IsSessionValid() = true after logout")
	}
}

func TestSessionManagerExpiry(t *testing.T) {
	store := &memSessionStore{}
	mgr := NewSessionManager(store, 8*time.Hour)

	now := time.Now()
	mgr.nowFunc = func() time.Time { return now }

	if err := mgr.Save(Identity{ID: "u1", Email: "jane@example.com", Role: RoleLearner}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !mgr.IsValid() {
		t.Fatal("fresh session reported invalid")
	}

	now = now.Add(8*time.Hour - time.Minute)
	if !mgr.IsValid() {
		t.Error("session invalid before the timeout elapsed")
	}

	now = now.Add(2 * time.Minute)
	if mgr.IsValid() {
		t.Error("session still valid past the timeout")
	}
	if _, err := mgr.Current(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Current() error = %v, want %v", err, ErrNoSession)
	}
}
