package cache

import (
	"strings"

	"dashboard-client/internal/domain"
	"dashboard-client/pkg/cache"

	"github.com/google/uuid"
)

const objectURLScheme = "blob:"

// objectURLs keeps file bytes addressable by a "blob:<uuid>" reference for
// the life of the process.
type objectURLs struct {
	store cache.CacheService
}

func NewObjectURLRegistry(store cache.CacheService) domain.ObjectURLRegistry {
	return &objectURLs{store: store}
}

func (r *objectURLs) Create(file domain.FileSelection) string {
	url := objectURLScheme + uuid.NewString()
	r.store.Set(url, file, 0)
	return url
}

func (r *objectURLs) Resolve(url string) (domain.FileSelection, bool) {
	if !strings.HasPrefix(url, objectURLScheme) {
		return domain.FileSelection{}, false
	}
	v, ok := r.store.Get(url)
	if !ok {
		return domain.FileSelection{}, false
	}
	file, ok := v.(domain.FileSelection)
	return file, ok
}

func (r *objectURLs) Revoke(url string) {
	r.store.Delete(url)
}
