package session

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/erp/client/internal/api"
	"github.com/erp/client/internal/domain/identity"
	"github.com/erp/client/internal/domain/shared"
	sessionstore "github.com/erp/client/internal/infrastructure/session"
)

// State is the controller's position in the session lifecycle.
type State string

const (
	// StateUninitialized means startup recovery has not run yet: "unknown",
	// as opposed to "known logged out".
	StateUninitialized State = "uninitialized"
	// StateChecking means startup recovery is verifying a stored credential.
	StateChecking State = "checking"
	// StateAnonymous means no verified session exists.
	StateAnonymous State = "anonymous"
	// StateAuthenticated means a credential is stored and was verified
	// against the server at least once since being set.
	StateAuthenticated State = "authenticated"
)

// AuthClient is the external collaborator the controller authenticates
// through. *api.AuthAPI satisfies it.
type AuthClient interface {
	Login(ctx context.Context, username, password string) (*api.LoginResult, error)
	VerifyToken(ctx context.Context) (*identity.UserProfile, error)
}

// Credentials is the login form.
type Credentials struct {
	Username string `validate:"required,min=3,max=100"`
	Password string `validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Snapshot is a copy of the controller state handed to consumers. Login and
// Initialize never return errors; failures show up here as StateAnonymous
// plus ErrorMessage.
type Snapshot struct {
	State        State
	User         *identity.UserProfile
	ErrorMessage string
	Initialized  bool
	Pending      bool
}

// IsAuthenticated reports whether a verified user profile is attached.
func (s Snapshot) IsAuthenticated() bool {
	return s.State == StateAuthenticated && s.User != nil
}

// Controller is the single source of truth for "who is logged in". It is
// explicitly constructed and dependency-injected; there is no package-level
// session state.
type Controller struct {
	store  sessionstore.Store
	auth   AuthClient
	logger *zap.Logger

	mu          sync.Mutex
	state       State
	user        *identity.UserProfile
	errMsg      string
	initialized bool
	pending     bool
	// generation invalidates the commit of any in-flight Initialize or Login
	// that was superseded by a newer state transition.
	generation uint64
}

// NewController creates a controller in the uninitialized state.
func NewController(store sessionstore.Store, auth AuthClient, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		store:  store,
		auth:   auth,
		logger: logger,
		state:  StateUninitialized,
	}
}

// Initialize runs startup session recovery. With no stored credential it
// transitions straight to anonymous without any network call; with one it
// verifies the credential and fetches the profile in one round trip. Exactly
// one invocation per controller commits an outcome: overlapping calls are
// no-ops, and a canceled call commits nothing (in particular it does not
// clear a credential a fresh attempt may be about to validate).
func (c *Controller) Initialize(ctx context.Context) Snapshot {
	c.mu.Lock()
	if c.initialized || c.state == StateChecking {
		defer c.mu.Unlock()
		return c.snapshotLocked()
	}
	c.state = StateChecking
	c.generation++
	gen := c.generation

	if _, hasToken := c.store.Token(); !hasToken {
		c.commitLocked(gen, StateAnonymous, nil, "")
		defer c.mu.Unlock()
		return c.snapshotLocked()
	}
	c.mu.Unlock()

	profile, err := c.auth.VerifyToken(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if ctx.Err() != nil {
		// Aborted: no outcome. Allow a fresh Initialize to run.
		if gen == c.generation && c.state == StateChecking {
			c.state = StateUninitialized
		}
		c.logger.Debug("startup session recovery aborted")
		return c.snapshotLocked()
	}

	if err != nil {
		c.logger.Info("stored session rejected, starting anonymous", zap.Error(err))
		if clearErr := c.store.Clear(); clearErr != nil {
			c.logger.Error("failed to clear session store", zap.Error(clearErr))
		}
		c.commitLocked(gen, StateAnonymous, nil, "")
		return c.snapshotLocked()
	}

	c.logger.Info("session recovered",
		zap.String("username", profile.Username),
		zap.String("role", string(profile.Role)))
	c.commitLocked(gen, StateAuthenticated, profile, "")
	return c.snapshotLocked()
}

// Login authenticates with the supplied credentials. On success the returned
// token is stored and the state becomes authenticated with the returned
// profile; on failure the state stays anonymous with a user-facing error
// message. A pre-existing credential is never cleared by a failed login.
func (c *Controller) Login(ctx context.Context, creds Credentials) Snapshot {
	if err := validate.Struct(creds); err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.state = StateAnonymous
		c.user = nil
		c.errMsg = shared.ErrInvalidInput.Message
		return c.snapshotLocked()
	}

	c.mu.Lock()
	c.pending = true
	c.errMsg = ""
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	c.logger.Info("login attempt", zap.String("username", creds.Username))
	result, err := c.auth.Login(ctx, creds.Username, creds.Password)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false

	if gen != c.generation {
		// Superseded by logout or invalidation; discard this outcome.
		return c.snapshotLocked()
	}

	if err != nil {
		c.logger.Warn("login failed", zap.String("username", creds.Username), zap.Error(err))
		c.state = StateAnonymous
		c.user = nil
		c.errMsg = loginErrorMessage(err)
		c.initialized = true
		return c.snapshotLocked()
	}

	if err := c.store.SetToken(result.AccessToken); err != nil {
		c.logger.Error("failed to store session token", zap.Error(err))
	}
	user := result.User
	c.state = StateAuthenticated
	c.user = &user
	c.errMsg = ""
	c.initialized = true
	c.logger.Info("login succeeded",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))
	return c.snapshotLocked()
}

// Logout clears the stored credential and transitions to anonymous
// unconditionally. It never fails.
func (c *Controller) Logout(ctx context.Context) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	if err := c.store.Clear(); err != nil {
		c.logger.Error("failed to clear session store", zap.Error(err))
	}
	c.state = StateAnonymous
	c.user = nil
	c.errMsg = ""
	c.initialized = true
	c.logger.Info("logged out")
	return c.snapshotLocked()
}

// Invalidate drops to anonymous after the request pipeline detected session
// invalidation. The pipeline has already cleared the store.
func (c *Controller) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.state = StateAnonymous
	c.user = nil
	c.errMsg = shared.ErrSessionInvalid.Message
	c.initialized = true
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// HasRole reports whether the current user carries the role. Absent user
// means false.
func (c *Controller) HasRole(role identity.Role) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user.HasRole(role)
}

// IsAdmin reports whether the current user carries the admin role.
func (c *Controller) IsAdmin() bool {
	return c.HasRole(identity.RoleAdmin)
}

// commitLocked applies an outcome only when no newer transition superseded it.
func (c *Controller) commitLocked(gen uint64, state State, user *identity.UserProfile, errMsg string) {
	if gen != c.generation {
		return
	}
	c.state = state
	c.user = user
	c.errMsg = errMsg
	c.initialized = true
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:        c.state,
		ErrorMessage: c.errMsg,
		Initialized:  c.initialized,
		Pending:      c.pending,
	}
	if c.user != nil {
		user := *c.user
		snap.User = &user
	}
	return snap
}

// loginErrorMessage derives the user-facing message for a failed login:
// the server-provided detail when there is one, a generic connectivity
// message when no response was received.
func loginErrorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if errors.Is(err, shared.ErrConnection) {
		return shared.ErrConnection.Message
	}
	return shared.ErrInvalidCredentials.Message
}
