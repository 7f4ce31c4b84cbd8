package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"coverstudio/internal/assets"
	"coverstudio/internal/domain"
	"coverstudio/internal/pipeline"
)

// maxUploadBytes caps reference-image uploads. Inline request payloads to
// the model are limited, so anything bigger would be rejected downstream
// anyway.
const maxUploadBytes = 8 << 20

// UploadImage stores a reference image in the person or logo slot. The file
// arrives as multipart form data under the "file" field.
func (a *App) UploadImage(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	slot := pipeline.Slot(chi.URLParam(r, "slot"))
	if slot != pipeline.SlotPerson && slot != pipeline.SlotLogo {
		a.error(w, http.StatusNotFound, "not_found", "unknown image slot")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "file field required")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		a.error(w, http.StatusUnsupportedMediaType, "unsupported_media", "only image uploads are accepted")
		return
	}

	img, err := assets.Encode(file, mimeType)
	if err != nil {
		var rerr *domain.ReadError
		if errors.As(err, &rerr) {
			a.error(w, http.StatusBadRequest, "read_failed", "could not read the uploaded file")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to store upload")
		return
	}
	s.Attach(slot, img)
	a.json(w, http.StatusOK, s.Snapshot())
}

// RemoveImage clears a previously uploaded reference image.
func (a *App) RemoveImage(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	slot := pipeline.Slot(chi.URLParam(r, "slot"))
	if slot != pipeline.SlotPerson && slot != pipeline.SlotLogo {
		a.error(w, http.StatusNotFound, "not_found", "unknown image slot")
		return
	}
	s.Attach(slot, nil)
	a.json(w, http.StatusOK, s.Snapshot())
}
