package usecase

import (
	"context"

	"dashboard-client/internal/domain"
)

// DashboardUsecase wires the session, profile and cart components the way the
// dashboard screen uses them.
type DashboardUsecase struct {
	session *SessionUsecase
	profile *ProfileUsecase
	cart    *CartUsecase
}

type DashboardDeps struct {
	Gateway       domain.ProfileGateway
	Store         domain.KeyValueStore
	Carts         domain.CartRepository
	ObjectURLs    domain.ObjectURLRegistry
	Navigator     domain.Navigator
	Namespace     string
	MaxImageBytes int64
}

func NewDashboardUsecase(deps DashboardDeps) *DashboardUsecase {
	session := NewSessionUsecase(deps.Gateway, deps.Store, deps.Namespace, deps.Navigator)
	return &DashboardUsecase{
		session: session,
		profile: NewProfileUsecase(deps.Gateway, session, deps.ObjectURLs, deps.MaxImageBytes),
		cart:    NewCartUsecase(deps.Carts, deps.ObjectURLs, deps.MaxImageBytes, session),
	}
}

func (u *DashboardUsecase) Session() *SessionUsecase { return u.session }
func (u *DashboardUsecase) Profile() *ProfileUsecase { return u.profile }
func (u *DashboardUsecase) Cart() *CartUsecase       { return u.cart }

// Open mounts the dashboard: restore the identity, seed the profile, load
// that identity's cart.
func (u *DashboardUsecase) Open(ctx context.Context) error {
	id, profile, err := u.session.Start(ctx)
	if err != nil {
		return err
	}
	u.profile.Seed(profile)
	return u.cart.Load(ctx, id.SessionID)
}

// Login authenticates and then mounts the dashboard for the new identity.
func (u *DashboardUsecase) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	id, err := u.session.Login(ctx, email, password)
	if err != nil {
		return domain.Identity{}, err
	}
	if err := u.Open(ctx); err != nil {
		return domain.Identity{}, err
	}
	return id, nil
}

func (u *DashboardUsecase) Logout(ctx context.Context) error {
	return u.session.Logout(ctx)
}
