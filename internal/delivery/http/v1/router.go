package v1

import (
	"net/http"

	"dashboard-client/internal/delivery/http/middleware"
	"dashboard-client/internal/usecase"
)

// NewRouter mounts the profile service under /api/user. accountLimiter, when
// set, throttles the token routes per authenticated account.
func NewRouter(authUC *usecase.AuthUsecase, maxUploadSize int64, accountLimiter *middleware.RateLimiter) *http.ServeMux {
	authHandler := NewAuthHandler(authUC)
	uploadHandler := NewUploadHandler(authUC, maxUploadSize)
	authenticate := middleware.AuthMiddleware(authUC)
	requireToken := func(h http.Handler) http.Handler {
		if accountLimiter != nil {
			h = accountLimiter.Middleware()(h)
		}
		return authenticate(h)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/user/user_login", authHandler.Login)
	mux.HandleFunc("GET /api/user/userDetails", authHandler.UserDetails)
	mux.HandleFunc("PUT /api/user/updateUser", authHandler.UpdateUser)

	mux.Handle("GET /api/user/display", requireToken(http.HandlerFunc(authHandler.Display)))
	mux.Handle("PUT /api/user/updateWithToken", requireToken(http.HandlerFunc(authHandler.UpdateWithToken)))
	mux.Handle("PUT /api/user/updateWithPhoto", requireToken(http.HandlerFunc(uploadHandler.UpdateWithPhoto)))

	mux.HandleFunc("GET /photos/{name}", uploadHandler.Photo)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return mux
}
