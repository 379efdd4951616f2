package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"dashboard-client/internal/domain"
	"dashboard-client/pkg/cache"
	"dashboard-client/pkg/logger"
	"dashboard-client/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidLogin hides whether the email or the password was wrong.
var ErrInvalidLogin = errors.New("invalid email or password")

// StoredPhoto is an uploaded profile photo held by the mock service.
type StoredPhoto struct {
	ContentType string
	Data        []byte
}

// AuthUsecase is the server side of the profile service: it owns accounts,
// issues tokens and keeps uploaded photos.
type AuthUsecase struct {
	accounts      domain.AccountRepository
	photos        cache.CacheService
	signer        *utils.TokenSigner
	maxImageBytes int64
	bcryptCost    int
}

func NewAuthUsecase(accounts domain.AccountRepository, photos cache.CacheService, signer *utils.TokenSigner, maxImageBytes int64) *AuthUsecase {
	return &AuthUsecase{
		accounts:      accounts,
		photos:        photos,
		signer:        signer,
		maxImageBytes: maxImageBytes,
		bcryptCost:    bcrypt.DefaultCost,
	}
}

// Seed creates or replaces one account. Used at startup and by tests.
func (u *AuthUsecase) Seed(ctx context.Context, id, email, password, name string) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	account := &domain.Account{
		ID:           id,
		PasswordHash: string(hash),
		Profile:      domain.ProfileRecord{Name: name, Email: email},
		UpdatedAt:    time.Now(),
	}
	if err := u.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	logger.Info().Str("user_id", id).Str("email", email).Msg("Seeded account")
	return account, nil
}

// Login checks the password and returns a fresh access token.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", nil, ErrInvalidLogin
	}

	account, err := u.accounts.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return "", nil, ErrInvalidLogin
	}
	if err != nil {
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidLogin
	}

	token, err := u.signer.Generate(account.ID, account.Profile.Email)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, account, nil
}

// Authenticate resolves an access token to its account id.
func (u *AuthUsecase) Authenticate(token string) (string, error) {
	return u.signer.Validate(token)
}

func (u *AuthUsecase) Profile(ctx context.Context, id string) (*domain.ProfileRecord, error) {
	account, err := u.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &account.Profile, nil
}

func (u *AuthUsecase) UpdateProfile(ctx context.Context, id string, profile domain.ProfileRecord) (*domain.ProfileRecord, error) {
	if profile.Gender != "" && !profile.Gender.Valid() {
		return nil, domain.NewError(domain.KindInvalidField, "update_profile", "gender must be one of male, female, other", nil)
	}
	account, err := u.accounts.UpdateProfile(ctx, id, profile)
	if err != nil {
		return nil, err
	}
	return &account.Profile, nil
}

// UpdatePhoto stores the image and points the account at it. baseURL is the
// public origin photos are served from.
func (u *AuthUsecase) UpdatePhoto(ctx context.Context, id string, file domain.FileSelection, baseURL string) (*domain.ProfileRecord, error) {
	if err := domain.ValidateImage("update_photo", file, u.maxImageBytes); err != nil {
		return nil, err
	}
	if _, err := u.accounts.GetByID(ctx, id); err != nil {
		return nil, err
	}

	name := uuid.NewString() + photoExt(file.Name)
	u.photos.Set(name, StoredPhoto{ContentType: file.ContentType, Data: file.Data}, 0)

	account, err := u.accounts.UpdatePhoto(ctx, id, strings.TrimSuffix(baseURL, "/")+"/photos/"+name)
	if err != nil {
		u.photos.Delete(name)
		return nil, err
	}
	return &account.Profile, nil
}

func (u *AuthUsecase) Photo(name string) (StoredPhoto, bool) {
	v, ok := u.photos.Get(name)
	if !ok {
		return StoredPhoto{}, false
	}
	p, ok := v.(StoredPhoto)
	return p, ok
}

func photoExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || len(ext) > 6 {
		return ".img"
	}
	return ext
}
