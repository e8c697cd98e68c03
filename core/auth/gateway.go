package auth

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
)

// Demo credential table: a fixed in-memory map used when remote
// authentication is unavailable or rejects the credentials. Demo identities
// persist entity state to local storage only and are never synced remotely.
const demoPassword = "Demo1234"

var demoAccounts = map[string]Identity{
	"admin@demo.avocop.io": {
		ID:     "demo-admin-0001",
		Email:  "admin@demo.avocop.io",
		Role:   RoleAdmin,
		Name:   "Demo Admin",
		IsDemo: true,
	},
	"learner@demo.avocop.io": {
		ID:     "demo-learner-0001",
		Email:  "learner@demo.avocop.io",
		Role:   RoleLearner,
		Name:   "Demo Learner",
		IsDemo: true,
	},
}

type (
	// NewAccount holds the information needed to provision a remote account.
	NewAccount struct {
		Email    string
		Password string
		Name     string
		Role     string
	}

	// RemoteAuthenticator is the remote record store's authentication
	// surface. SignIn returns core.ErrInvalidCredentials (possibly wrapped)
	// when the credentials are rejected.
	RemoteAuthenticator interface {
		SignIn(ctx context.Context, email, password string) (Identity, error)
		SignUp(ctx context.Context, acct NewAccount) (Identity, error)
		SignOut(ctx context.Context) error
	}

	// LoginResult is the unified outcome of a successful login attempt,
	// whichever path produced it.
	LoginResult struct {
		Identity            Identity `json:"identity"`
		NeedsPasswordChange bool     `json:"needs_password_change"`
	}

	// Gateway decides, per login attempt, whether to authenticate against the
	// remote record store or fall back to the demo credential table, and
	// persists the resulting identity to the local session store.
	Gateway struct {
		remote    RemoteAuthenticator
		sessions  *SessionManager
		limiter   *Limiter
		logger    core.Logger
		allowList map[string]struct{}
		bootstrap bool
		tempPwd   string
	}
)

func NewGateway(conf *core.Config, remote RemoteAuthenticator, sessions *SessionManager, limiter *Limiter, logger core.Logger) *Gateway {
	allowList := make(map[string]struct{}, len(conf.Bootstrap.AdminEmails))
	for _, email := range conf.Bootstrap.AdminEmails {
		allowList[core.CleanString(email, true /* lower */)] = struct{}{}
	}
	return &Gateway{
		remote:    remote,
		sessions:  sessions,
		limiter:   limiter,
		logger:    logger,
		allowList: allowList,
		bootstrap: conf.Bootstrap.Enabled,
		tempPwd:   conf.Bootstrap.TempPassword,
	}
}

// Login runs the per-attempt state machine:
// rate-limit check, remote auth, lazy admin provisioning, demo fallback.
func (g *Gateway) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = core.CleanString(email, true /* lower */)

	if g.limiter.IsRateLimited(email) {
		g.limiter.RecordAttempt(email, false)
		return LoginResult{}, &core.RateLimitedError{Key: email, RetryAfter: g.limiter.RetryAfter(email)}
	}

	ident, err := g.remote.SignIn(ctx, email, password)
	if err == nil {
		return g.succeed(ident, false)
	}

	// lazy provisioning: a known administrative account that does not exist
	// yet is created with a temporary password and signed in with it
	if errors.Is(err, core.ErrInvalidCredentials) && g.allowListed(email) {
		if _, perr := g.remote.SignUp(ctx, NewAccount{
			Email:    email,
			Password: g.tempPwd,
			Name:     email,
			Role:     RoleAdmin,
		}); perr != nil {
			g.limiter.RecordAttempt(email, false)
			return LoginResult{}, errors.Wrap(perr, "provisioning admin account")
		}
		ident, rerr := g.remote.SignIn(ctx, email, g.tempPwd)
		if rerr != nil {
			g.limiter.RecordAttempt(email, false)
			return LoginResult{}, errors.Wrap(rerr, "authenticating provisioned account")
		}
		return g.succeed(ident, true)
	}

	// demo fallback
	if acct, ok := demoAccounts[email]; ok && password == demoPassword {
		return g.succeed(acct, false)
	}

	g.limiter.RecordAttempt(email, false)
	return LoginResult{}, core.ErrInvalidCredentials
}

func (g *Gateway) succeed(ident Identity, needsPwdChange bool) (LoginResult, error) {
	// drop any stale demo artifact before persisting the new record
	if err := g.sessions.Clear(); err != nil {
		g.logger.Warn("clearing previous session", err)
	}
	if err := g.sessions.Save(ident); err != nil {
		g.limiter.RecordAttempt(ident.Email, false)
		return LoginResult{}, errors.Wrap(err, "persisting session")
	}
	g.limiter.RecordAttempt(ident.Email, true)
	return LoginResult{Identity: ident, NeedsPasswordChange: needsPwdChange}, nil
}

func (g *Gateway) allowListed(email string) bool {
	if !g.bootstrap {
		return false
	}
	_, ok := g.allowList[email]
	return ok
}

// Logout invalidates the remote session if present and removes the local
// session record and demo artifacts. Cleanup is best-effort, it never fails
// observably.
func (g *Gateway) Logout(ctx context.Context) {
	if err := g.remote.SignOut(ctx); err != nil {
		g.logger.Warn("remote sign-out", err)
	}
	if err := g.sessions.Clear(); err != nil {
		g.logger.Warn("clearing session", err)
	}
}

// IsSessionValid reports whether a non-expired local session record exists.
func (g *Gateway) IsSessionValid() bool {
	return g.sessions.IsValid()
}
