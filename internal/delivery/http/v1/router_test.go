package v1

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dashboard-client/internal/delivery/http/middleware"
	"dashboard-client/internal/domain"
	"dashboard-client/internal/infrastructure/cache"
	"dashboard-client/internal/infrastructure/userapi"
	memoryrepo "dashboard-client/internal/repository/memory"
	"dashboard-client/internal/usecase"
	"dashboard-client/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxImage = 5_000_000

type fixture struct {
	srv    *httptest.Server
	client *userapi.Client
	authUC *usecase.AuthUsecase
}

func newFixture(t *testing.T, tokenExpiry time.Duration) *fixture {
	t.Helper()
	authUC := usecase.NewAuthUsecase(
		memoryrepo.NewAccountRepository(),
		cache.NewMemoryCache(0, 0),
		utils.NewTokenSigner("test-secret", tokenExpiry),
		maxImage,
	)
	_, err := authUC.Seed(context.Background(), "42", "a@b.com", "x", "Alice")
	require.NoError(t, err)

	srv := httptest.NewServer(NewRouter(authUC, maxImage, nil))
	t.Cleanup(srv.Close)

	return &fixture{
		srv:    srv,
		client: userapi.NewClient(userapi.Options{BaseURL: srv.URL + "/api/user", MaxImageBytes: maxImage}),
		authUC: authUC,
	}
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRouter_ClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Hour)

	id, err := f.client.Login(ctx, "a@b.com", "x")
	require.NoError(t, err)
	assert.Equal(t, "42", id.SessionID)
	require.NotEmpty(t, id.Token)

	profile, err := f.client.FetchProfile(ctx, id.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.Name)

	profile.City = "Springfield"
	profile.Mobile = "5551234"
	require.NoError(t, f.client.UpdateProfile(ctx, id.SessionID, *profile))

	byToken, err := f.client.FetchProfileByToken(ctx, id.Token)
	require.NoError(t, err)
	assert.Equal(t, "Springfield", byToken.City)
	assert.Equal(t, domain.FlexString("5551234"), byToken.Mobile)

	byToken.State = "IL"
	require.NoError(t, f.client.UpdateProfileByToken(ctx, id.Token, *byToken))

	photo := domain.FileSelection{Name: "me.png", ContentType: "image/png", Data: []byte("\x89PNG fake")}
	updated, err := f.client.UpdateProfilePhoto(ctx, id.SessionID, id.Token, photo)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "IL", updated.State)
	require.True(t, strings.HasPrefix(updated.Photo, f.srv.URL+"/photos/"), updated.Photo)

	resp, err := http.Get(updated.Photo)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	served, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, photo.Data, served)
}

func TestRouter_AccountRateLimit(t *testing.T) {
	ctx := context.Background()
	authUC := usecase.NewAuthUsecase(
		memoryrepo.NewAccountRepository(),
		cache.NewMemoryCache(0, 0),
		utils.NewTokenSigner("test-secret", time.Hour),
		maxImage,
	)
	_, err := authUC.Seed(ctx, "42", "a@b.com", "x", "Alice")
	require.NoError(t, err)

	limiter := middleware.NewRateLimiter(ctx, 0.001, 1, time.Hour, time.Hour)
	t.Cleanup(limiter.Shutdown)
	srv := httptest.NewServer(NewRouter(authUC, maxImage, limiter))
	t.Cleanup(srv.Close)
	client := userapi.NewClient(userapi.Options{BaseURL: srv.URL + "/api/user", MaxImageBytes: maxImage})

	id, err := client.Login(ctx, "a@b.com", "x")
	require.NoError(t, err)

	display := func() *http.Response {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/user/display", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", id.Token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	first := display()
	first.Body.Close()
	assert.Equal(t, http.StatusOK, first.StatusCode)

	second := display()
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.NotEmpty(t, second.Header.Get("Retry-After"))
	assert.Equal(t, false, decodeEnvelope(t, second)["success"])

	// the session-id routes are not account limited
	_, err = client.FetchProfile(ctx, "42")
	assert.NoError(t, err)
}

func TestRouter_Login(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Hour)

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.client.Login(ctx, "a@b.com", "nope")
		assert.True(t, domain.IsKind(err, domain.KindInvalidCredentials))
		assert.Equal(t, "Invalid credentials", domain.MessageOf(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.client.Login(ctx, "who@b.com", "x")
		assert.True(t, domain.IsKind(err, domain.KindInvalidCredentials))
	})

	t.Run("email match ignores case", func(t *testing.T) {
		id, err := f.client.Login(ctx, "A@B.com", "x")
		require.NoError(t, err)
		assert.Equal(t, "42", id.SessionID)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := http.Post(f.srv.URL+"/api/user/user_login", "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, false, decodeEnvelope(t, resp)["success"])
	})
}

func TestRouter_SessionIDPath(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Hour)

	t.Run("unknown user is not found", func(t *testing.T) {
		_, err := f.client.FetchProfile(ctx, "999")
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})

	t.Run("missing userId is a bad request", func(t *testing.T) {
		resp, err := http.Get(f.srv.URL + "/api/user/userDetails")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "userId is required", decodeEnvelope(t, resp)["message"])
	})

	t.Run("invalid gender is a soft failure", func(t *testing.T) {
		err := f.client.UpdateProfile(ctx, "42", domain.ProfileRecord{Name: "Alice", Email: "a@b.com", Gender: "robot"})
		assert.True(t, domain.IsKind(err, domain.KindSoftFailure))
	})

	t.Run("update keeps the stored photo", func(t *testing.T) {
		_, err := f.authUC.UpdatePhoto(ctx, "42", domain.FileSelection{Name: "p.jpg", ContentType: "image/jpeg", Data: []byte("jpg")}, "http://photos.test")
		require.NoError(t, err)

		require.NoError(t, f.client.UpdateProfile(ctx, "42", domain.ProfileRecord{Name: "Alice B", Email: "a@b.com"}))

		p, err := f.client.FetchProfile(ctx, "42")
		require.NoError(t, err)
		assert.Equal(t, "Alice B", p.Name)
		assert.True(t, strings.HasPrefix(p.Photo, "http://photos.test/photos/"))
	})
}

func TestRouter_TokenPath(t *testing.T) {
	ctx := context.Background()

	t.Run("expired token is unauthorized", func(t *testing.T) {
		f := newFixture(t, -time.Minute)
		id, err := f.client.Login(ctx, "a@b.com", "x")
		require.NoError(t, err)

		_, err = f.client.FetchProfileByToken(ctx, id.Token)
		assert.True(t, domain.IsKind(err, domain.KindUnauthorized))

		err = f.client.UpdateProfileByToken(ctx, id.Token, domain.ProfileRecord{Name: "x"})
		assert.True(t, domain.IsKind(err, domain.KindUnauthorized))
	})

	t.Run("forged token is unauthorized", func(t *testing.T) {
		f := newFixture(t, time.Hour)
		forged, err := utils.NewTokenSigner("other-secret", time.Hour).Generate("42", "a@b.com")
		require.NoError(t, err)

		_, err = f.client.FetchProfileByToken(ctx, forged)
		assert.True(t, domain.IsKind(err, domain.KindUnauthorized))
	})

	t.Run("bearer prefix is accepted", func(t *testing.T) {
		f := newFixture(t, time.Hour)
		id, err := f.client.Login(ctx, "a@b.com", "x")
		require.NoError(t, err)

		req, err := http.NewRequest(http.MethodGet, f.srv.URL+"/api/user/display", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+id.Token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, decodeEnvelope(t, resp)["success"])
	})
}

func TestRouter_UpdateWithPhoto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Hour)
	id, err := f.client.Login(ctx, "a@b.com", "x")
	require.NoError(t, err)

	upload := func(t *testing.T, userID, contentType string, data []byte) *http.Response {
		t.Helper()
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("userId", userID))
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{`form-data; name="profile_photo"; filename="f.bin"`}
		h["Content-Type"] = []string{contentType}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req, err := http.NewRequest(http.MethodPut, f.srv.URL+"/api/user/updateWithPhoto", &buf)
		require.NoError(t, err)
		req.Header.Set("Content-Type", w.FormDataContentType())
		req.Header.Set("Authorization", id.Token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("non-image is rejected", func(t *testing.T) {
		resp := upload(t, "42", "text/plain", []byte("hello"))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Please select an image file", decodeEnvelope(t, resp)["message"])
	})

	t.Run("userId must match the token", func(t *testing.T) {
		resp := upload(t, "7", "image/png", []byte("png"))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("oversized file is rejected", func(t *testing.T) {
		resp := upload(t, "42", "image/png", bytes.Repeat([]byte{1}, maxImage+1))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("unknown photo is not found", func(t *testing.T) {
		resp, err := http.Get(f.srv.URL + "/photos/nope.png")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}
