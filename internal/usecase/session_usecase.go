package usecase

import (
	"context"
	"fmt"
	"strings"

	"dashboard-client/internal/domain"
	"dashboard-client/pkg/logger"
	"dashboard-client/pkg/metrics"
)

type SessionState string

const (
	StateUnauthenticated SessionState = "unauthenticated"
	StateAuthenticating  SessionState = "authenticating"
	StateActive          SessionState = "active"
	StateLoggedOut       SessionState = "logged_out"
)

const msgNoToken = "No token found. Please login again."

// SessionUsecase owns the authenticated identity. It is the only writer of
// the identity keys in the store.
type SessionUsecase struct {
	gateway   domain.ProfileGateway
	store     domain.KeyValueStore
	namespace string
	nav       domain.Navigator

	state     SessionState
	identity  *domain.Identity
	listeners []func()
}

func NewSessionUsecase(gateway domain.ProfileGateway, store domain.KeyValueStore, namespace string, nav domain.Navigator) *SessionUsecase {
	return &SessionUsecase{
		gateway:   gateway,
		store:     store,
		namespace: namespace,
		nav:       nav,
		state:     StateUnauthenticated,
	}
}

func (u *SessionUsecase) State() SessionState {
	return u.state
}

// Identity returns the active identity, if any.
func (u *SessionUsecase) Identity() (domain.Identity, bool) {
	if u.identity == nil {
		return domain.Identity{}, false
	}
	return *u.identity, true
}

// OnSignOut registers fn to run whenever the session ends, voluntarily or not.
func (u *SessionUsecase) OnSignOut(fn func()) {
	u.listeners = append(u.listeners, fn)
}

func (u *SessionUsecase) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	prev := u.state
	u.state = StateAuthenticating

	id, err := u.gateway.Login(ctx, email, password)
	if err != nil {
		// a rejected attempt leaves any active session as it was
		if u.identity != nil {
			u.state = prev
		} else {
			u.state = StateUnauthenticated
		}
		return domain.Identity{}, err
	}

	// switching users must not leave the previous one's state in memory
	if u.identity != nil && u.identity.SessionID != id.SessionID {
		u.notifySignOut()
	}

	if err := u.persist(ctx, id); err != nil {
		// the stored keys may be half written, so nothing stays signed in
		if u.identity != nil && u.identity.SessionID == id.SessionID {
			u.notifySignOut()
		}
		u.identity = nil
		u.state = StateUnauthenticated
		return domain.Identity{}, err
	}

	u.identity = &id
	u.state = StateActive
	logger.WithContext(ctx).Info().Str("user_id", id.SessionID).Msg("Logged in")
	return id, nil
}

func (u *SessionUsecase) persist(ctx context.Context, id domain.Identity) error {
	err := u.store.Set(ctx, u.namespace, domain.StoreKeyUserID, id.SessionID)
	logger.StoreOp(ctx, "set", u.namespace, domain.StoreKeyUserID, err)
	if err != nil {
		return domain.NewError(domain.KindInternal, "login", "Failed to save session", err)
	}

	if id.HasToken() {
		err = u.store.Set(ctx, u.namespace, domain.StoreKeyToken, id.Token)
		logger.StoreOp(ctx, "set", u.namespace, domain.StoreKeyToken, err)
	} else {
		err = u.store.Delete(ctx, u.namespace, domain.StoreKeyToken)
		logger.StoreOp(ctx, "delete", u.namespace, domain.StoreKeyToken, err)
	}
	if err != nil {
		return domain.NewError(domain.KindInternal, "login", "Failed to save session", err)
	}
	return nil
}

// Restore reads the stored identity without contacting the service.
func (u *SessionUsecase) Restore(ctx context.Context) (domain.Identity, bool, error) {
	userID, ok, err := u.store.Get(ctx, u.namespace, domain.StoreKeyUserID)
	logger.StoreOp(ctx, "get", u.namespace, domain.StoreKeyUserID, err)
	if err != nil {
		return domain.Identity{}, false, domain.NewError(domain.KindInternal, "restore", "Failed to read session", err)
	}
	if !ok || userID == "" {
		return domain.Identity{}, false, nil
	}

	token, _, err := u.store.Get(ctx, u.namespace, domain.StoreKeyToken)
	logger.StoreOp(ctx, "get", u.namespace, domain.StoreKeyToken, err)
	if err != nil {
		return domain.Identity{}, false, domain.NewError(domain.KindInternal, "restore", "Failed to read session", err)
	}
	return domain.Identity{SessionID: userID, Token: token}, true, nil
}

// Start restores the stored identity and loads its profile. Without a stored
// identity, or when the profile cannot be loaded, the user is sent to login.
func (u *SessionUsecase) Start(ctx context.Context) (domain.Identity, *domain.ProfileRecord, error) {
	// 1. Restore identity
	id, ok, err := u.Restore(ctx)
	if err != nil {
		return domain.Identity{}, nil, err
	}
	if !ok {
		u.state = StateUnauthenticated
		u.identity = nil
		u.nav.ToLogin("")
		return domain.Identity{}, nil, domain.ErrNoActiveIdentity
	}
	u.identity = &id
	u.state = StateActive

	// 2. Load canonical profile
	profile, err := u.gateway.FetchProfile(ctx, id.SessionID)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("user_id", id.SessionID).Msg("Profile load failed, leaving dashboard")
		u.identity = nil
		u.state = StateUnauthenticated
		u.nav.ToLogin(domain.MessageOf(err))
		return domain.Identity{}, nil, err
	}
	return id, profile, nil
}

// Logout ends the session and clears every stored key except the per-user
// cart collections.
func (u *SessionUsecase) Logout(ctx context.Context) error {
	err := u.clearSession(ctx)
	u.nav.ToLogin("")
	return err
}

// ForceLogout is Logout triggered by the service rejecting the token.
func (u *SessionUsecase) ForceLogout(ctx context.Context, reason string) error {
	metrics.IncrementForcedLogout()
	logger.WithContext(ctx).Warn().Str("reason", reason).Msg("Session rejected by server, logging out")

	err := u.clearSession(ctx)
	u.nav.ToLogin(reason)
	return err
}

// HandleAuthError runs ForceLogout when err is an Unauthorized failure and
// reports whether it did.
func (u *SessionUsecase) HandleAuthError(ctx context.Context, err error) bool {
	if !domain.IsKind(err, domain.KindUnauthorized) {
		return false
	}
	if logoutErr := u.ForceLogout(ctx, domain.MessageOf(err)); logoutErr != nil {
		logger.WithContext(ctx).Error().Err(logoutErr).Msg("Forced logout left stale keys")
	}
	return true
}

// RequireToken returns the active identity for a token-authenticated call.
// A missing token sends the user to login without touching storage.
func (u *SessionUsecase) RequireToken(ctx context.Context, op string) (domain.Identity, error) {
	return u.requireToken(ctx, op, msgNoToken)
}

func (u *SessionUsecase) requireToken(ctx context.Context, op, msg string) (domain.Identity, error) {
	if u.identity == nil {
		u.nav.ToLogin("")
		return domain.Identity{}, domain.NewError(domain.KindUnauthorized, op, msg, domain.ErrNoActiveIdentity)
	}
	if !u.identity.HasToken() {
		logger.WithContext(ctx).Warn().Str("op", op).Msg("Token operation without a stored token")
		u.nav.ToLogin(msg)
		return domain.Identity{}, domain.NewError(domain.KindUnauthorized, op, msg, nil)
	}
	return *u.identity, nil
}

// clearSession drops in-memory state first so a store failure still ends the
// session. Cart keys are read out, the namespace cleared and the carts
// written back.
func (u *SessionUsecase) clearSession(ctx context.Context) error {
	u.identity = nil
	u.state = StateLoggedOut
	u.notifySignOut()

	// 1. Preserve carts
	keys, err := u.store.Keys(ctx, u.namespace)
	if err != nil {
		return fmt.Errorf("logout: list keys: %w", err)
	}
	carts := make(map[string]string)
	for _, key := range keys {
		if !strings.HasPrefix(key, domain.StoreKeyCartPrefix) {
			continue
		}
		value, ok, err := u.store.Get(ctx, u.namespace, key)
		if err != nil {
			return fmt.Errorf("logout: read %s: %w", key, err)
		}
		if ok {
			carts[key] = value
		}
	}

	// 2. Clear everything
	err = u.store.Clear(ctx, u.namespace)
	logger.StoreOp(ctx, "clear", u.namespace, "*", err)
	if err != nil {
		return fmt.Errorf("logout: clear: %w", err)
	}

	// 3. Restore carts
	for key, value := range carts {
		err := u.store.Set(ctx, u.namespace, key, value)
		logger.StoreOp(ctx, "set", u.namespace, key, err)
		if err != nil {
			return fmt.Errorf("logout: restore %s: %w", key, err)
		}
	}
	return nil
}

func (u *SessionUsecase) notifySignOut() {
	for _, fn := range u.listeners {
		fn()
	}
}
