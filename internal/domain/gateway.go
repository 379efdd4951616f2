package domain

import "context"

//go:generate mockgen -source=gateway.go -destination=mocks/mocks.go -package=mocks

// ProfileGateway is the remote profile service. Implementations never retry
// and return *Error values classified by ErrorKind.
type ProfileGateway interface {
	Login(ctx context.Context, email, password string) (Identity, error)
	FetchProfile(ctx context.Context, sessionID string) (*ProfileRecord, error)
	UpdateProfile(ctx context.Context, sessionID string, profile ProfileRecord) error
	FetchProfileByToken(ctx context.Context, token string) (*ProfileRecord, error)
	UpdateProfileByToken(ctx context.Context, token string, profile ProfileRecord) error
	// UpdateProfilePhoto returns the updated record when the service sends one, else nil.
	UpdateProfilePhoto(ctx context.Context, sessionID, token string, file FileSelection) (*ProfileRecord, error)
}

// Navigator is the external router. The core only ever asks it to leave for the login screen.
type Navigator interface {
	ToLogin(reason string)
}

// KeyValueStore is durable string storage grouped by namespace.
// Get reports a missing key with ok=false, not an error.
type KeyValueStore interface {
	Get(ctx context.Context, namespace, key string) (value string, ok bool, err error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace, key string) error
	Keys(ctx context.Context, namespace string) ([]string, error)
	Clear(ctx context.Context, namespace string) error
}

// ObjectURLRegistry hands out ephemeral local references to in-memory file bytes.
// References do not survive a restart.
type ObjectURLRegistry interface {
	Create(file FileSelection) string
	Resolve(url string) (FileSelection, bool)
	Revoke(url string)
}

// ConfirmFunc asks the user a yes/no question at the caller boundary.
type ConfirmFunc func(prompt string) bool
