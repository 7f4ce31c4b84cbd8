package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"coverstudio/internal/domain"
	"coverstudio/pkg/zip"
)

// Download bundles the finished cover and its strategy into a zip archive.
func (a *App) Download(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	state := s.Snapshot()
	if state.Status != domain.StatusComplete || state.ImageURI == "" {
		a.error(w, http.StatusConflict, "not_ready", "no finished cover to download")
		return
	}

	payload := state.ImageURI
	if idx := strings.Index(payload, ","); idx >= 0 {
		payload = payload[idx+1:]
	}
	imageBytes, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "stored image is corrupt")
		return
	}
	strategyJSON, err := json.MarshalIndent(state.Strategy, "", "  ")
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to encode strategy")
		return
	}

	archive := zip.ArchiveAssets([]zip.Asset{
		{Filename: "cover.png", MIME: "image/png", Data: imageBytes},
		{Filename: "strategy.json", MIME: "application/json", Data: strategyJSON},
	})
	if len(archive) == 0 {
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}

	short := s.ID
	if len(short) > 8 {
		short = short[:8]
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=cover-%s.zip", short))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
