package usecase

import (
	"bytes"
	"context"
	"testing"

	"dashboard-client/internal/domain"
	"dashboard-client/internal/domain/mocks"
	"dashboard-client/internal/infrastructure/cache"
	"dashboard-client/internal/repository/kvstore"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testNamespace = "dashboard"

var alice = domain.ProfileRecord{
	Name:    "Alice",
	Email:   "a@b.com",
	Mobile:  "5551234",
	Gender:  domain.GenderFemale,
	City:    "Springfield",
	Country: "US",
	Pincode: "62701",
}

func profilePtr(p domain.ProfileRecord) *domain.ProfileRecord {
	return &p
}

func imageFile(name string, size int) domain.FileSelection {
	return domain.FileSelection{Name: name, ContentType: "image/png", Data: bytes.Repeat([]byte{0x89}, size)}
}

// DashboardSuite runs the usecases against a mocked remote service and a
// real in-memory store.
type DashboardSuite struct {
	suite.Suite
	ctx     context.Context
	gateway *mocks.MockProfileGateway
	nav     *mocks.MockNavigator
	store   *kvstore.MemoryStore
	urls    domain.ObjectURLRegistry
	dash    *DashboardUsecase
}

func TestDashboardSuite(t *testing.T) {
	suite.Run(t, new(DashboardSuite))
}

func (s *DashboardSuite) SetupTest()    { s.reset() }
func (s *DashboardSuite) SetupSubTest() { s.reset() }

func (s *DashboardSuite) reset() {
	ctrl := gomock.NewController(s.T())
	s.ctx = context.Background()
	s.gateway = mocks.NewMockProfileGateway(ctrl)
	s.nav = mocks.NewMockNavigator(ctrl)
	s.store = kvstore.NewMemoryStore()
	s.urls = cache.NewObjectURLRegistry(cache.NewMemoryCache(0, 0))
	s.dash = s.newDashboard()
}

// newDashboard builds a fresh process over the same store, as a restart would.
func (s *DashboardSuite) newDashboard() *DashboardUsecase {
	return NewDashboardUsecase(DashboardDeps{
		Gateway:       s.gateway,
		Store:         s.store,
		Carts:         kvstore.NewCartRepository(s.store, testNamespace),
		ObjectURLs:    s.urls,
		Navigator:     s.nav,
		Namespace:     testNamespace,
		MaxImageBytes: domain.MaxImageBytes,
	})
}

func (s *DashboardSuite) login(id domain.Identity, profile domain.ProfileRecord) {
	s.gateway.EXPECT().Login(gomock.Any(), profile.Email, "x").Return(id, nil)
	s.gateway.EXPECT().FetchProfile(gomock.Any(), id.SessionID).Return(profilePtr(profile), nil)

	_, err := s.dash.Login(s.ctx, profile.Email, "x")
	s.Require().NoError(err)
}

func (s *DashboardSuite) loginAlice() {
	s.login(domain.Identity{SessionID: "42", Token: "t1"}, alice)
}

func (s *DashboardSuite) stored(key string) (string, bool) {
	v, ok, err := s.store.Get(s.ctx, testNamespace, key)
	s.Require().NoError(err)
	return v, ok
}

func (s *DashboardSuite) storedKeys() []string {
	keys, err := s.store.Keys(s.ctx, testNamespace)
	s.Require().NoError(err)
	return keys
}

func yes(string) bool { return true }
func no(string) bool  { return false }
