package usecase

import (
	"context"

	"dashboard-client/internal/domain"
	"dashboard-client/pkg/logger"
)

const (
	opCommitEdit      = "commit_edit"
	opCommitTokenEdit = "commit_token_edit"
	opCommitPhoto     = "commit_photo"
	opSelectPhoto     = "select_photo"
	opShowToken       = "show_token_profile"
)

// ProfileUsecase holds the canonical profile and at most one open edit.
type ProfileUsecase struct {
	gateway       domain.ProfileGateway
	session       *SessionUsecase
	objectURLs    domain.ObjectURLRegistry
	maxImageBytes int64

	canonical *domain.ProfileRecord
	mode      domain.EditMode
	// tentativePhoto is the local object URL shown until a fetch replaces it
	tentativePhoto string
	tokenView      *domain.ProfileRecord
}

func NewProfileUsecase(gateway domain.ProfileGateway, session *SessionUsecase, objectURLs domain.ObjectURLRegistry, maxImageBytes int64) *ProfileUsecase {
	if maxImageBytes <= 0 {
		maxImageBytes = domain.MaxImageBytes
	}
	u := &ProfileUsecase{
		gateway:       gateway,
		session:       session,
		objectURLs:    objectURLs,
		maxImageBytes: maxImageBytes,
		mode:          domain.ModeNone{},
	}
	session.OnSignOut(u.Reset)
	return u
}

// Seed installs a freshly fetched record as canonical and closes any edit.
func (u *ProfileUsecase) Seed(p *domain.ProfileRecord) {
	u.mode = domain.ModeNone{}
	u.replaceCanonical(p)
}

// Reset forgets everything. Runs on sign-out.
func (u *ProfileUsecase) Reset() {
	u.replaceCanonical(nil)
	u.mode = domain.ModeNone{}
	u.tokenView = nil
}

func (u *ProfileUsecase) Canonical() (domain.ProfileRecord, bool) {
	if u.canonical == nil {
		return domain.ProfileRecord{}, false
	}
	return *u.canonical, true
}

func (u *ProfileUsecase) Mode() domain.EditMode {
	return u.mode
}

// PhotoIsTentative reports whether the canonical photo is still the local
// reference set right after an upload.
func (u *ProfileUsecase) PhotoIsTentative() bool {
	return u.canonical != nil && u.tentativePhoto != "" && u.canonical.Photo == u.tentativePhoto
}

func (u *ProfileUsecase) BeginEdit() error {
	if err := u.canEnter(); err != nil {
		return err
	}
	u.mode = domain.ModeEditing{Draft: *u.canonical}
	return nil
}

func (u *ProfileUsecase) BeginTokenEdit() error {
	if err := u.canEnter(); err != nil {
		return err
	}
	u.mode = domain.ModeTokenEditing{Draft: *u.canonical}
	return nil
}

func (u *ProfileUsecase) BeginPhotoEdit() error {
	if err := u.canEnter(); err != nil {
		return err
	}
	u.mode = domain.ModePhotoEditing{}
	return nil
}

func (u *ProfileUsecase) canEnter() error {
	if u.canonical == nil {
		return domain.ErrNoProfile
	}
	if _, idle := u.mode.(domain.ModeNone); !idle {
		return domain.ErrEditInProgress
	}
	return nil
}

// SetField changes one field of the open draft.
func (u *ProfileUsecase) SetField(name, value string) error {
	switch m := u.mode.(type) {
	case domain.ModeEditing:
		if err := m.Draft.SetField(name, value); err != nil {
			return err
		}
		u.mode = m
	case domain.ModeTokenEditing:
		if err := m.Draft.SetField(name, value); err != nil {
			return err
		}
		u.mode = m
	default:
		return domain.ErrNotEditing
	}
	return nil
}

// SelectPhoto validates file and makes it the pending photo. A rejected file
// leaves the previous selection in place.
func (u *ProfileUsecase) SelectPhoto(file domain.FileSelection) error {
	if _, ok := u.mode.(domain.ModePhotoEditing); !ok {
		return domain.ErrNotEditing
	}
	if err := domain.ValidateImage(opSelectPhoto, file, u.maxImageBytes); err != nil {
		return err
	}
	u.mode = domain.ModePhotoEditing{Selection: &file}
	return nil
}

// Cancel discards the open edit without contacting the service.
func (u *ProfileUsecase) Cancel() {
	u.mode = domain.ModeNone{}
}

// Commit sends the open edit to the service. On failure the edit stays open
// so the user can retry; an Unauthorized failure ends the session instead.
func (u *ProfileUsecase) Commit(ctx context.Context) error {
	switch m := u.mode.(type) {
	case domain.ModeEditing:
		return u.commitEdit(ctx, m.Draft)
	case domain.ModeTokenEditing:
		return u.commitTokenEdit(ctx, m.Draft)
	case domain.ModePhotoEditing:
		return u.commitPhoto(ctx, m.Selection)
	}
	return domain.ErrNotEditing
}

func (u *ProfileUsecase) commitEdit(ctx context.Context, draft domain.ProfileRecord) error {
	id, ok := u.session.Identity()
	if !ok {
		return domain.ErrNoActiveIdentity
	}

	if err := u.gateway.UpdateProfile(ctx, id.SessionID, draft); err != nil {
		return err
	}

	u.replaceCanonical(&draft)
	u.mode = domain.ModeNone{}
	u.reconcile(ctx, id.SessionID, opCommitEdit)
	return nil
}

func (u *ProfileUsecase) commitTokenEdit(ctx context.Context, draft domain.ProfileRecord) error {
	id, err := u.session.RequireToken(ctx, opCommitTokenEdit)
	if err != nil {
		return err
	}

	if err := u.gateway.UpdateProfileByToken(ctx, id.Token, draft); err != nil {
		u.session.HandleAuthError(ctx, err)
		return err
	}

	u.replaceCanonical(&draft)
	u.mode = domain.ModeNone{}
	u.reconcile(ctx, id.SessionID, opCommitTokenEdit)
	return nil
}

func (u *ProfileUsecase) commitPhoto(ctx context.Context, selection *domain.FileSelection) error {
	if selection == nil {
		return domain.NewError(domain.KindInvalidFile, opCommitPhoto, "Please select a photo first", nil)
	}
	if err := domain.ValidateImage(opCommitPhoto, *selection, u.maxImageBytes); err != nil {
		return err
	}

	id, err := u.session.RequireToken(ctx, opCommitPhoto)
	if err != nil {
		return err
	}

	echoed, err := u.gateway.UpdateProfilePhoto(ctx, id.SessionID, id.Token, *selection)
	if err != nil {
		u.session.HandleAuthError(ctx, err)
		return err
	}

	// 1. Optimistic: show the uploaded bytes right away
	optimistic := *u.canonical
	if echoed != nil {
		optimistic = *echoed
	}
	url := u.objectURLs.Create(*selection)
	optimistic.Photo = url
	u.replaceCanonical(&optimistic)
	u.tentativePhoto = url
	u.mode = domain.ModeNone{}

	// 2. Authoritative: whatever the fetch returns wins
	u.reconcile(ctx, id.SessionID, opCommitPhoto)
	return nil
}

// reconcile refetches the record after a successful update. A failed fetch
// keeps what is already canonical.
func (u *ProfileUsecase) reconcile(ctx context.Context, sessionID, op string) {
	fresh, err := u.gateway.FetchProfile(ctx, sessionID)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("op", op).Msg("Refetch after update failed, keeping local copy")
		return
	}
	u.replaceCanonical(fresh)
}

// replaceCanonical swaps the record wholesale and releases a superseded
// tentative photo.
func (u *ProfileUsecase) replaceCanonical(p *domain.ProfileRecord) {
	if u.tentativePhoto != "" && (p == nil || p.Photo != u.tentativePhoto) {
		u.objectURLs.Revoke(u.tentativePhoto)
		u.tentativePhoto = ""
	}
	if p == nil {
		u.canonical = nil
		return
	}
	cp := *p
	u.canonical = &cp
}

// ShowTokenProfile fetches the record through the token path into a
// read-only side view.
func (u *ProfileUsecase) ShowTokenProfile(ctx context.Context) (*domain.ProfileRecord, error) {
	id, err := u.session.RequireToken(ctx, opShowToken)
	if err != nil {
		return nil, err
	}

	p, err := u.gateway.FetchProfileByToken(ctx, id.Token)
	if err != nil {
		u.session.HandleAuthError(ctx, err)
		return nil, err
	}
	u.tokenView = p
	return p, nil
}

func (u *ProfileUsecase) TokenProfile() (domain.ProfileRecord, bool) {
	if u.tokenView == nil {
		return domain.ProfileRecord{}, false
	}
	return *u.tokenView, true
}

func (u *ProfileUsecase) CloseTokenProfile() {
	u.tokenView = nil
}
