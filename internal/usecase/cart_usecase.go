package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dashboard-client/internal/domain"
	"dashboard-client/pkg/logger"
	"dashboard-client/pkg/metrics"
	"dashboard-client/pkg/utils"
)

const (
	opAddBatch   = "cart_add"
	opEditItem   = "cart_edit"
	opDeleteItem = "cart_delete"
	opClearCart  = "cart_clear"

	PromptDeleteItem = "Are you sure you want to remove this item?"
	PromptClearCart  = "Are you sure you want to delete all items from cart?"

	msgBatchNoToken = "Authentication token not found. Please login again."
)

// CartUsecase keeps the active user's collection in memory and mirrors every
// change to the repository. It is the only writer of cart keys.
type CartUsecase struct {
	repo          domain.CartRepository
	objectURLs    domain.ObjectURLRegistry
	session       *SessionUsecase
	maxImageBytes int64
	now           func() time.Time

	userID string
	items  []domain.CartItem
	lastMS int64
}

func NewCartUsecase(repo domain.CartRepository, objectURLs domain.ObjectURLRegistry, maxImageBytes int64, session *SessionUsecase) *CartUsecase {
	if maxImageBytes <= 0 {
		maxImageBytes = domain.MaxImageBytes
	}
	u := &CartUsecase{
		repo:          repo,
		objectURLs:    objectURLs,
		session:       session,
		maxImageBytes: maxImageBytes,
		now:           time.Now,
	}
	if session != nil {
		session.OnSignOut(u.Unload)
	}
	return u
}

// Load makes userID's stored collection the active one. Loading never writes
// back, so an empty result cannot overwrite anything.
func (u *CartUsecase) Load(ctx context.Context, userID string) error {
	u.Unload()

	items, err := u.repo.Load(ctx, userID)
	if err != nil {
		return err
	}
	u.userID = userID
	u.items = items
	u.seedMillis(items)
	logger.WithContext(ctx).Debug().Str("user_id", userID).Int("items", len(items)).Msg("Cart loaded")
	return nil
}

// seedMillis moves the id clock past every stored id, so a restart within
// the same millisecond cannot reissue one.
func (u *CartUsecase) seedMillis(items []domain.CartItem) {
	for _, item := range items {
		rest, ok := strings.CutPrefix(item.ID, domain.CartItemIDPrefix)
		if !ok {
			continue
		}
		msPart, _, _ := strings.Cut(rest, "_")
		ms, err := strconv.ParseInt(msPart, 10, 64)
		if err != nil {
			continue
		}
		u.lastMS = max(u.lastMS, ms)
	}
}

// Unload forgets the in-memory collection. Stored data is untouched.
func (u *CartUsecase) Unload() {
	u.userID = ""
	u.items = nil
}

func (u *CartUsecase) UserID() string {
	return u.userID
}

// ImageHeld reports whether item id's image is still resolvable in this
// process. Images do not survive a restart.
func (u *CartUsecase) ImageHeld(id string) bool {
	idx := u.indexOf(id)
	if idx < 0 || u.objectURLs == nil {
		return false
	}
	_, ok := u.objectURLs.Resolve(u.items[idx].ImageURL)
	return ok
}

// Items returns a copy in display order.
func (u *CartUsecase) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(u.items))
	copy(out, u.items)
	return out
}

// AddBatch appends one item per file. If any file fails validation nothing
// is added.
func (u *CartUsecase) AddBatch(ctx context.Context, files []domain.FileSelection) ([]domain.CartItem, error) {
	if u.userID == "" {
		return nil, domain.ErrNoActiveIdentity
	}
	if len(files) == 0 {
		return nil, domain.NewError(domain.KindInvalidFile, opAddBatch, "Please select images to upload", nil)
	}
	if u.session != nil {
		if _, err := u.session.requireToken(ctx, opAddBatch, msgBatchNoToken); err != nil {
			return nil, err
		}
	}

	// 1. Validate the whole batch first
	for _, f := range files {
		if !f.IsImage() {
			return nil, domain.NewError(domain.KindInvalidFile, opAddBatch, "Please select only image files", fmt.Errorf("%s is %q", f.Name, f.ContentType))
		}
		if f.Size() > u.maxImageBytes {
			return nil, domain.NewError(domain.KindInvalidFile, opAddBatch, fmt.Sprintf("Each file should be less than %s", utils.HumanBytes(u.maxImageBytes)), fmt.Errorf("%s is %d bytes", f.Name, f.Size()))
		}
	}

	// 2. Build items
	ms := u.nextMillis()
	added := make([]domain.CartItem, 0, len(files))
	for i, f := range files {
		added = append(added, domain.CartItem{
			ID:       fmt.Sprintf("%s%d_%d", domain.CartItemIDPrefix, ms, i),
			Name:     f.Name,
			ImageURL: u.objectURLs.Create(f),
			Price:    domain.CartItemPrice,
			Quantity: domain.CartItemQuantity,
		})
	}

	// 3. Append and write back
	next := append(u.Items(), added...)
	if err := u.commit(ctx, next); err != nil {
		for _, item := range added {
			u.objectURLs.Revoke(item.ImageURL)
		}
		return nil, err
	}
	metrics.IncrementCartMutation("add")
	return added, nil
}

// nextMillis keeps ids unique when two batches land in the same millisecond.
func (u *CartUsecase) nextMillis() int64 {
	ms := u.now().UnixMilli()
	if ms <= u.lastMS {
		ms = u.lastMS + 1
	}
	u.lastMS = ms
	return ms
}

// EditItem swaps the image of one item in place. Only the type is checked:
// single edits have never enforced the size limit.
func (u *CartUsecase) EditItem(ctx context.Context, id string, file domain.FileSelection) (domain.CartItem, error) {
	if u.userID == "" {
		return domain.CartItem{}, domain.ErrNoActiveIdentity
	}
	if err := domain.ValidateImage(opEditItem, file, 0); err != nil {
		return domain.CartItem{}, err
	}

	idx := u.indexOf(id)
	if idx < 0 {
		return domain.CartItem{}, domain.NewError(domain.KindNotFound, opEditItem, fmt.Sprintf("No cart item %q", id), nil)
	}

	next := u.Items()
	old := next[idx].ImageURL
	next[idx].Name = file.Name
	next[idx].ImageURL = u.objectURLs.Create(file)

	if err := u.commit(ctx, next); err != nil {
		u.objectURLs.Revoke(next[idx].ImageURL)
		return domain.CartItem{}, err
	}
	u.objectURLs.Revoke(old)
	metrics.IncrementCartMutation("edit")
	return next[idx], nil
}

// DeleteItem removes one item after confirmation. It reports whether the
// collection changed; an unknown id is a no-op.
func (u *CartUsecase) DeleteItem(ctx context.Context, id string, confirm domain.ConfirmFunc) (bool, error) {
	if u.userID == "" {
		return false, domain.ErrNoActiveIdentity
	}
	if confirm == nil || !confirm(PromptDeleteItem) {
		return false, nil
	}

	idx := u.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	removed := u.items[idx]
	next := make([]domain.CartItem, 0, len(u.items)-1)
	next = append(next, u.items[:idx]...)
	next = append(next, u.items[idx+1:]...)

	if err := u.commit(ctx, next); err != nil {
		return false, err
	}
	u.objectURLs.Revoke(removed.ImageURL)
	metrics.IncrementCartMutation("delete")
	return true, nil
}

// ClearAll empties the collection after confirmation and deletes its key.
func (u *CartUsecase) ClearAll(ctx context.Context, confirm domain.ConfirmFunc) (bool, error) {
	if u.userID == "" {
		return false, domain.ErrNoActiveIdentity
	}
	if confirm == nil || !confirm(PromptClearCart) {
		return false, nil
	}

	old := u.items
	if err := u.commit(ctx, nil); err != nil {
		return false, err
	}
	for _, item := range old {
		u.objectURLs.Revoke(item.ImageURL)
	}
	metrics.IncrementCartMutation("clear")
	return true, nil
}

// commit writes next back and only then makes it the in-memory collection.
// An empty collection deletes the key instead of storing "[]".
func (u *CartUsecase) commit(ctx context.Context, next []domain.CartItem) error {
	var err error
	if len(next) == 0 {
		err = u.repo.Delete(ctx, u.userID)
	} else {
		err = u.repo.Save(ctx, u.userID, next)
	}
	if err != nil {
		return domain.NewError(domain.KindInternal, "cart_write", "Failed to save cart", err)
	}
	if next == nil {
		next = []domain.CartItem{}
	}
	u.items = next
	return nil
}

func (u *CartUsecase) indexOf(id string) int {
	for i, item := range u.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
