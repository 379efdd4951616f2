package usecase

import (
	"dashboard-client/internal/domain"

	"go.uber.org/mock/gomock"
)

func (s *DashboardSuite) TestLogin() {
	s.Run("stores identity and shows the canonical profile", func() {
		s.loginAlice()

		userID, _ := s.stored(domain.StoreKeyUserID)
		token, _ := s.stored(domain.StoreKeyToken)
		s.Equal("42", userID)
		s.Equal("t1", token)
		s.Equal(StateActive, s.dash.Session().State())

		p, ok := s.dash.Profile().Canonical()
		s.Require().True(ok)
		s.Equal("Alice", p.Name)
	})

	s.Run("invalid credentials leave nothing stored", func() {
		s.gateway.EXPECT().Login(gomock.Any(), "a@b.com", "bad").
			Return(domain.Identity{}, domain.NewError(domain.KindInvalidCredentials, "login", "Invalid credentials", nil))

		_, err := s.dash.Login(s.ctx, "a@b.com", "bad")
		s.Require().Error(err)
		s.True(domain.IsKind(err, domain.KindInvalidCredentials))
		s.Equal(StateUnauthenticated, s.dash.Session().State())
		s.Empty(s.storedKeys())
	})

	s.Run("failed login keeps the active session", func() {
		s.loginAlice()
		s.gateway.EXPECT().Login(gomock.Any(), "a@b.com", "bad").
			Return(domain.Identity{}, domain.NewError(domain.KindInvalidCredentials, "login", "Invalid credentials", nil))

		_, err := s.dash.Login(s.ctx, "a@b.com", "bad")
		s.True(domain.IsKind(err, domain.KindInvalidCredentials))

		s.Equal(StateActive, s.dash.Session().State())
		id, ok := s.dash.Session().Identity()
		s.Require().True(ok)
		s.Equal(domain.Identity{SessionID: "42", Token: "t1"}, id)
		s.Equal("42", s.dash.Cart().UserID())
	})

	s.Run("login without a token clears a stale one", func() {
		s.Require().NoError(s.store.Set(s.ctx, testNamespace, domain.StoreKeyToken, "old"))
		s.login(domain.Identity{SessionID: "42"}, alice)

		_, ok := s.stored(domain.StoreKeyToken)
		s.False(ok)
	})
}

func (s *DashboardSuite) TestStart() {
	s.Run("no stored identity navigates to login", func() {
		s.nav.EXPECT().ToLogin("")

		err := s.dash.Open(s.ctx)
		s.ErrorIs(err, domain.ErrNoActiveIdentity)
		s.Equal(StateUnauthenticated, s.dash.Session().State())
	})

	s.Run("stored identity is restored", func() {
		s.Require().NoError(s.store.Set(s.ctx, testNamespace, domain.StoreKeyUserID, "42"))
		s.Require().NoError(s.store.Set(s.ctx, testNamespace, domain.StoreKeyToken, "t1"))
		s.gateway.EXPECT().FetchProfile(gomock.Any(), "42").Return(profilePtr(alice), nil)

		s.Require().NoError(s.dash.Open(s.ctx))
		id, ok := s.dash.Session().Identity()
		s.Require().True(ok)
		s.Equal(domain.Identity{SessionID: "42", Token: "t1"}, id)
		s.Equal("42", s.dash.Cart().UserID())
	})

	s.Run("legacy profilePhoto key never seeds the profile", func() {
		s.Require().NoError(s.store.Set(s.ctx, testNamespace, domain.StoreKeyUserID, "42"))
		s.Require().NoError(s.store.Set(s.ctx, testNamespace, domain.StoreKeyToken, "t1"))
		s.Require().NoError(s.store.Set(s.ctx, testNamespace, domain.StoreKeyProfilePhoto, "legacy.png"))
		fetched := alice
		fetched.Photo = "https://cdn.example/p/42.png"
		s.gateway.EXPECT().FetchProfile(gomock.Any(), "42").Return(profilePtr(fetched), nil)

		s.Require().NoError(s.dash.Open(s.ctx))
		p, ok := s.dash.Profile().Canonical()
		s.Require().True(ok)
		s.Equal("https://cdn.example/p/42.png", p.Photo)

		s.nav.EXPECT().ToLogin("")
		s.Require().NoError(s.dash.Logout(s.ctx))
		_, ok = s.stored(domain.StoreKeyProfilePhoto)
		s.False(ok)
	})

	s.Run("profile load failure navigates to login", func() {
		s.Require().NoError(s.store.Set(s.ctx, testNamespace, domain.StoreKeyUserID, "42"))
		s.gateway.EXPECT().FetchProfile(gomock.Any(), "42").
			Return(nil, domain.NewError(domain.KindNotFound, "fetch_profile", "User not found", nil))
		s.nav.EXPECT().ToLogin("User not found")

		err := s.dash.Open(s.ctx)
		s.True(domain.IsKind(err, domain.KindNotFound))
		s.Equal(StateUnauthenticated, s.dash.Session().State())
		_, ok := s.dash.Session().Identity()
		s.False(ok)
	})
}

func (s *DashboardSuite) TestLogout() {
	s.Run("clears session keys but keeps every cart", func() {
		s.loginAlice()
		_, err := s.dash.Cart().AddBatch(s.ctx, []domain.FileSelection{imageFile("a.png", 10)})
		s.Require().NoError(err)
		s.Require().NoError(s.store.Set(s.ctx, testNamespace, "cartItems_7", `[{"id":"IMG_1_0"}]`))
		s.Require().NoError(s.store.Set(s.ctx, testNamespace, domain.StoreKeyProfilePhoto, "legacy.png"))
		s.nav.EXPECT().ToLogin("")

		s.Require().NoError(s.dash.Logout(s.ctx))

		s.Equal([]string{"cartItems_42", "cartItems_7"}, s.storedKeys())
		s.Equal(StateLoggedOut, s.dash.Session().State())
		_, ok := s.dash.Profile().Canonical()
		s.False(ok)
		s.Empty(s.dash.Cart().Items())
	})

	s.Run("logging back in restores the same cart", func() {
		s.loginAlice()
		added, err := s.dash.Cart().AddBatch(s.ctx, []domain.FileSelection{imageFile("a.png", 10), imageFile("b.png", 10)})
		s.Require().NoError(err)
		s.nav.EXPECT().ToLogin("")
		s.Require().NoError(s.dash.Logout(s.ctx))

		s.loginAlice()
		s.Equal(added, s.dash.Cart().Items())
	})

	s.Run("another user never sees the previous cart", func() {
		s.loginAlice()
		_, err := s.dash.Cart().AddBatch(s.ctx, []domain.FileSelection{imageFile("a.png", 10)})
		s.Require().NoError(err)
		s.nav.EXPECT().ToLogin("")
		s.Require().NoError(s.dash.Logout(s.ctx))

		s.login(domain.Identity{SessionID: "7", Token: "t7"}, domain.ProfileRecord{Name: "Bob", Email: "bob@b.com"})
		s.Empty(s.dash.Cart().Items())
		s.Equal("7", s.dash.Cart().UserID())
	})
}

func (s *DashboardSuite) TestForcedLogout() {
	s.Run("401 on update with token clears the session and navigates", func() {
		s.loginAlice()
		_, err := s.dash.Cart().AddBatch(s.ctx, []domain.FileSelection{imageFile("a.png", 10)})
		s.Require().NoError(err)

		s.Require().NoError(s.dash.Profile().BeginTokenEdit())
		s.Require().NoError(s.dash.Profile().SetField("city", "Shelbyville"))
		rejected := domain.NewError(domain.KindUnauthorized, "update_profile_by_token", "Token expired or invalid. Please login again.", nil)
		s.gateway.EXPECT().UpdateProfileByToken(gomock.Any(), "t1", gomock.Any()).Return(rejected)
		s.nav.EXPECT().ToLogin("Token expired or invalid. Please login again.")

		err = s.dash.Profile().Commit(s.ctx)
		s.True(domain.IsKind(err, domain.KindUnauthorized))

		s.Equal([]string{"cartItems_42"}, s.storedKeys())
		s.Equal(StateLoggedOut, s.dash.Session().State())
		s.IsType(domain.ModeNone{}, s.dash.Profile().Mode())
		_, ok := s.dash.Profile().Canonical()
		s.False(ok)
		s.Empty(s.dash.Cart().Items())
	})

	s.Run("missing token navigates without clearing storage", func() {
		s.login(domain.Identity{SessionID: "42"}, alice)
		s.nav.EXPECT().ToLogin("No token found. Please login again.")

		_, err := s.dash.Profile().ShowTokenProfile(s.ctx)
		s.True(domain.IsKind(err, domain.KindUnauthorized))

		userID, ok := s.stored(domain.StoreKeyUserID)
		s.True(ok)
		s.Equal("42", userID)
		s.Equal(StateActive, s.dash.Session().State())
	})

	s.Run("non-401 failures on the token path keep the session", func() {
		s.loginAlice()
		s.gateway.EXPECT().FetchProfileByToken(gomock.Any(), "t1").
			Return(nil, domain.NewError(domain.KindNetwork, "fetch_profile_by_token", "Failed to fetch data with token", nil))

		_, err := s.dash.Profile().ShowTokenProfile(s.ctx)
		s.True(domain.IsKind(err, domain.KindNetwork))
		s.Equal(StateActive, s.dash.Session().State())
	})
}
