package usecase

import (
	"context"
	"strings"

	"dashboard-client/internal/domain"

	"go.uber.org/mock/gomock"
)

func (s *DashboardSuite) TestEditModes() {
	s.Run("only one mode can be open", func() {
		s.loginAlice()
		p := s.dash.Profile()

		s.Require().NoError(p.BeginEdit())
		s.ErrorIs(p.BeginTokenEdit(), domain.ErrEditInProgress)
		s.ErrorIs(p.BeginPhotoEdit(), domain.ErrEditInProgress)
		s.IsType(domain.ModeEditing{}, p.Mode())
	})

	s.Run("entering a mode snapshots the canonical record", func() {
		s.loginAlice()
		p := s.dash.Profile()

		s.Require().NoError(p.BeginTokenEdit())
		mode, ok := p.Mode().(domain.ModeTokenEditing)
		s.Require().True(ok)
		s.Equal(alice, mode.Draft)
	})

	s.Run("field edits touch only the draft", func() {
		s.loginAlice()
		p := s.dash.Profile()

		s.Require().NoError(p.BeginEdit())
		s.Require().NoError(p.SetField("name", "Alicia"))
		s.Require().NoError(p.SetField("dob", "1990-04-01"))

		canonical, _ := p.Canonical()
		s.Equal("Alice", canonical.Name)
		draft := p.Mode().(domain.ModeEditing).Draft
		s.Equal("Alicia", draft.Name)
		s.Equal("1990-04-01", draft.DOB.String())
	})

	s.Run("invalid field values are rejected", func() {
		s.loginAlice()
		p := s.dash.Profile()
		s.Require().NoError(p.BeginEdit())

		s.True(domain.IsKind(p.SetField("gender", "robot"), domain.KindInvalidField))
		s.True(domain.IsKind(p.SetField("dob", "April 1st"), domain.KindInvalidField))
		s.True(domain.IsKind(p.SetField("shoe_size", "9"), domain.KindInvalidField))
	})

	s.Run("edits need an open mode", func() {
		s.loginAlice()
		p := s.dash.Profile()

		s.ErrorIs(p.SetField("name", "x"), domain.ErrNotEditing)
		s.ErrorIs(p.Commit(s.ctx), domain.ErrNotEditing)
		s.ErrorIs(p.SelectPhoto(imageFile("a.png", 1)), domain.ErrNotEditing)
	})

	s.Run("cancel discards the draft without calling the service", func() {
		s.loginAlice()
		p := s.dash.Profile()
		s.Require().NoError(p.BeginEdit())
		s.Require().NoError(p.SetField("name", "Alicia"))

		p.Cancel()

		s.IsType(domain.ModeNone{}, p.Mode())
		canonical, _ := p.Canonical()
		s.Equal(alice, canonical)
		s.Require().NoError(p.BeginTokenEdit())
	})

	s.Run("no profile means no edit", func() {
		s.ErrorIs(s.dash.Profile().BeginEdit(), domain.ErrNoProfile)
	})
}

func (s *DashboardSuite) TestCommitEdit() {
	s.Run("canonical equals the draft until the refetch replaces it", func() {
		s.loginAlice()
		p := s.dash.Profile()
		s.Require().NoError(p.BeginEdit())
		s.Require().NoError(p.SetField("name", "Alicia"))
		draft := p.Mode().(domain.ModeEditing).Draft

		fromServer := alice
		fromServer.Name = "Alicia"
		fromServer.State = "IL"

		gomock.InOrder(
			s.gateway.EXPECT().UpdateProfile(gomock.Any(), "42", draft).Return(nil),
			s.gateway.EXPECT().FetchProfile(gomock.Any(), "42").DoAndReturn(
				func(context.Context, string) (*domain.ProfileRecord, error) {
					canonical, _ := p.Canonical()
					s.Equal(draft, canonical)
					s.IsType(domain.ModeNone{}, p.Mode())
					return profilePtr(fromServer), nil
				}),
		)

		s.Require().NoError(p.Commit(s.ctx))
		canonical, _ := p.Canonical()
		s.Equal(fromServer, canonical)
	})

	s.Run("soft failure keeps the draft and the mode", func() {
		s.loginAlice()
		p := s.dash.Profile()
		s.Require().NoError(p.BeginEdit())
		s.Require().NoError(p.SetField("email", "taken@b.com"))
		s.gateway.EXPECT().UpdateProfile(gomock.Any(), "42", gomock.Any()).
			Return(domain.NewError(domain.KindSoftFailure, "update_profile", "Failed to update profile", nil))

		err := p.Commit(s.ctx)
		s.True(domain.IsKind(err, domain.KindSoftFailure))

		mode, ok := p.Mode().(domain.ModeEditing)
		s.Require().True(ok)
		s.Equal("taken@b.com", mode.Draft.Email)
		canonical, _ := p.Canonical()
		s.Equal("a@b.com", canonical.Email)
	})

	s.Run("failed refetch keeps the committed draft", func() {
		s.loginAlice()
		p := s.dash.Profile()
		s.Require().NoError(p.BeginEdit())
		s.Require().NoError(p.SetField("city", "Shelbyville"))
		s.gateway.EXPECT().UpdateProfile(gomock.Any(), "42", gomock.Any()).Return(nil)
		s.gateway.EXPECT().FetchProfile(gomock.Any(), "42").
			Return(nil, domain.NewError(domain.KindNetwork, "fetch_profile", "Error fetching user data", nil))

		s.Require().NoError(p.Commit(s.ctx))
		canonical, _ := p.Canonical()
		s.Equal("Shelbyville", canonical.City)
	})

	s.Run("token edit commits through the token path", func() {
		s.loginAlice()
		p := s.dash.Profile()
		s.Require().NoError(p.BeginTokenEdit())
		s.Require().NoError(p.SetField("gender", "other"))
		draft := p.Mode().(domain.ModeTokenEditing).Draft

		s.gateway.EXPECT().UpdateProfileByToken(gomock.Any(), "t1", draft).Return(nil)
		s.gateway.EXPECT().FetchProfile(gomock.Any(), "42").Return(profilePtr(draft), nil)

		s.Require().NoError(p.Commit(s.ctx))
		canonical, _ := p.Canonical()
		s.Equal(domain.GenderOther, canonical.Gender)
		s.IsType(domain.ModeNone{}, p.Mode())
	})
}

func (s *DashboardSuite) TestPhotoEdit() {
	s.Run("oversized file is rejected before any request", func() {
		s.loginAlice()
		p := s.dash.Profile()
		s.Require().NoError(p.BeginPhotoEdit())
		s.Require().NoError(p.SelectPhoto(imageFile("ok.png", 100)))

		err := p.SelectPhoto(imageFile("huge.png", 6_000_000))
		s.True(domain.IsKind(err, domain.KindInvalidFile))

		mode := p.Mode().(domain.ModePhotoEditing)
		s.Require().NotNil(mode.Selection)
		s.Equal("ok.png", mode.Selection.Name)
	})

	s.Run("non-image file is rejected", func() {
		s.loginAlice()
		p := s.dash.Profile()
		s.Require().NoError(p.BeginPhotoEdit())

		err := p.SelectPhoto(domain.FileSelection{Name: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF")})
		s.True(domain.IsKind(err, domain.KindInvalidFile))
		s.Nil(p.Mode().(domain.ModePhotoEditing).Selection)
	})

	s.Run("commit without a selection is rejected", func() {
		s.loginAlice()
		p := s.dash.Profile()
		s.Require().NoError(p.BeginPhotoEdit())

		err := p.Commit(s.ctx)
		s.True(domain.IsKind(err, domain.KindInvalidFile))
		s.Equal("Please select a photo first", domain.MessageOf(err))
	})

	s.Run("tentative local photo is superseded by the refetch", func() {
		s.loginAlice()
		p := s.dash.Profile()
		s.Require().NoError(p.BeginPhotoEdit())
		photo := imageFile("me.png", 100)
		s.Require().NoError(p.SelectPhoto(photo))

		fromServer := alice
		fromServer.Photo = "https://cdn.example.com/me.png"
		var tentative string

		s.gateway.EXPECT().UpdateProfilePhoto(gomock.Any(), "42", "t1", photo).Return(nil, nil)
		s.gateway.EXPECT().FetchProfile(gomock.Any(), "42").DoAndReturn(
			func(context.Context, string) (*domain.ProfileRecord, error) {
				canonical, _ := p.Canonical()
				tentative = canonical.Photo
				s.True(strings.HasPrefix(tentative, "blob:"))
				s.True(p.PhotoIsTentative())

				file, ok := s.urls.Resolve(tentative)
				s.True(ok)
				s.Equal(photo, file)
				return profilePtr(fromServer), nil
			})

		s.Require().NoError(p.Commit(s.ctx))

		canonical, _ := p.Canonical()
		s.Equal(fromServer.Photo, canonical.Photo)
		s.False(p.PhotoIsTentative())
		_, ok := s.urls.Resolve(tentative)
		s.False(ok)
	})

	s.Run("tentative photo stays when the refetch fails", func() {
		s.loginAlice()
		p := s.dash.Profile()
		s.Require().NoError(p.BeginPhotoEdit())
		s.Require().NoError(p.SelectPhoto(imageFile("me.png", 100)))
		s.gateway.EXPECT().UpdateProfilePhoto(gomock.Any(), "42", "t1", gomock.Any()).Return(nil, nil)
		s.gateway.EXPECT().FetchProfile(gomock.Any(), "42").
			Return(nil, domain.NewError(domain.KindNetwork, "fetch_profile", "Error fetching user data", nil))

		s.Require().NoError(p.Commit(s.ctx))
		s.True(p.PhotoIsTentative())
	})

	s.Run("401 on upload logs out", func() {
		s.loginAlice()
		p := s.dash.Profile()
		s.Require().NoError(p.BeginPhotoEdit())
		s.Require().NoError(p.SelectPhoto(imageFile("me.png", 100)))
		s.gateway.EXPECT().UpdateProfilePhoto(gomock.Any(), "42", "t1", gomock.Any()).
			Return(nil, domain.NewError(domain.KindUnauthorized, "update_profile_photo", "Token expired or invalid. Please login again.", nil))
		s.nav.EXPECT().ToLogin("Token expired or invalid. Please login again.")

		err := p.Commit(s.ctx)
		s.True(domain.IsKind(err, domain.KindUnauthorized))
		s.Equal(StateLoggedOut, s.dash.Session().State())
	})
}

func (s *DashboardSuite) TestTokenProfile() {
	s.Run("shows and closes the token view", func() {
		s.loginAlice()
		p := s.dash.Profile()
		s.gateway.EXPECT().FetchProfileByToken(gomock.Any(), "t1").Return(profilePtr(alice), nil)

		got, err := p.ShowTokenProfile(s.ctx)
		s.Require().NoError(err)
		s.Equal("Alice", got.Name)
		view, ok := p.TokenProfile()
		s.True(ok)
		s.Equal(alice, view)

		p.CloseTokenProfile()
		_, ok = p.TokenProfile()
		s.False(ok)
	})

	s.Run("401 logs out", func() {
		s.loginAlice()
		s.gateway.EXPECT().FetchProfileByToken(gomock.Any(), "t1").
			Return(nil, domain.NewError(domain.KindUnauthorized, "fetch_profile_by_token", "Token expired or invalid. Please login again.", nil))
		s.nav.EXPECT().ToLogin(gomock.Any())

		_, err := s.dash.Profile().ShowTokenProfile(s.ctx)
		s.True(domain.IsKind(err, domain.KindUnauthorized))
		s.Empty(s.storedKeys())
	})
}
