package v1

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"dashboard-client/internal/delivery/http/middleware"
	"dashboard-client/internal/domain"
	"dashboard-client/internal/usecase"
	"dashboard-client/pkg/logger"
	"dashboard-client/pkg/utils"
)

// multipart overhead allowed on top of the image limit
const formSlack = 1 << 20

type UploadHandler struct {
	authUC        *usecase.AuthUsecase
	maxUploadSize int64
}

func NewUploadHandler(authUC *usecase.AuthUsecase, maxUploadSize int64) *UploadHandler {
	return &UploadHandler{
		authUC:        authUC,
		maxUploadSize: maxUploadSize,
	}
}

// UpdateWithPhoto takes a multipart form with userId and profile_photo.
func (h *UploadHandler) UpdateWithPhoto(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+formSlack)
	if err := r.ParseMultipartForm(h.maxUploadSize + formSlack); err != nil {
		logger.WithContext(r.Context()).Warn().Err(err).Msg("ParseMultipartForm failed")
		utils.WriteError(w, http.StatusBadRequest, "File too large or invalid format")
		return
	}
	defer r.MultipartForm.RemoveAll()

	if formID := r.FormValue("userId"); formID != "" && formID != accountID {
		utils.WriteError(w, http.StatusForbidden, "userId does not match token")
		return
	}

	file, header, err := r.FormFile("profile_photo")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "profile_photo is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = utils.DetectContentType(header.Filename, data)
	}

	selection := domain.FileSelection{Name: header.Filename, ContentType: contentType, Data: data}
	updated, err := h.authUC.UpdatePhoto(r.Context(), accountID, selection, publicBaseURL(r))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}

	logger.WithContext(r.Context()).Info().
		Str("user_id", accountID).
		Int("bytes", len(data)).
		Str("content_type", contentType).
		Msg("Profile photo updated")
	utils.WriteJSON(w, http.StatusOK, envelope{Success: true, Message: "Profile photo updated", Data: updated})
}

// Photo serves a stored upload.
func (h *UploadHandler) Photo(w http.ResponseWriter, r *http.Request) {
	photo, ok := h.authUC.Photo(r.PathValue("name"))
	if !ok {
		utils.WriteError(w, http.StatusNotFound, "Photo not found")
		return
	}
	w.Header().Set("Content-Type", photo.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(photo.Data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(photo.Data); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		logger.WithContext(r.Context()).Debug().Err(err).Msg("Photo write failed")
	}
}

func publicBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + r.Host
}
