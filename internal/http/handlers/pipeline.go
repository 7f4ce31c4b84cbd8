package handlers

import (
	"errors"
	"net/http"

	"coverstudio/internal/domain"
	"coverstudio/internal/middleware"
	"coverstudio/internal/pipeline"
)

// StrategyRun triggers the text-model stage for a session.
func (a *App) StrategyRun(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	if err := a.Controller.RunStrategy(r.Context(), s, locale); err != nil {
		a.runError(w, err, locale)
		return
	}
	a.json(w, http.StatusOK, s.Snapshot())
}

// ImageRun triggers the image-model stage for a session.
func (a *App) ImageRun(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	if err := a.Controller.RunImage(r.Context(), s, locale); err != nil {
		a.runError(w, err, locale)
		return
	}
	a.json(w, http.StatusOK, s.Snapshot())
}

// runError maps a pipeline failure onto an HTTP status. The session snapshot
// already carries the localized message, so clients polling state see the
// same text.
func (a *App) runError(w http.ResponseWriter, err error, locale string) {
	msg := pipeline.Translate(err, locale)
	switch {
	case errors.Is(err, domain.ErrStageBusy):
		a.error(w, http.StatusConflict, "busy", "a stage is already running for this session")
	case errors.Is(err, domain.ErrNoStrategy):
		a.error(w, http.StatusConflict, "no_strategy", "run the strategy stage first")
	case errors.Is(err, domain.ErrNoCredential):
		a.error(w, http.StatusUnauthorized, "no_credential", msg)
	default:
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			a.error(w, http.StatusBadRequest, "validation", msg)
			return
		}
		var perr *domain.ProviderError
		if errors.As(err, &perr) && perr.StatusCode == http.StatusTooManyRequests {
			a.error(w, http.StatusTooManyRequests, "rate_limited", msg)
			return
		}
		a.error(w, http.StatusBadGateway, "pipeline", msg)
	}
}
