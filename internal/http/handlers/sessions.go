package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"coverstudio/internal/credential"
	"coverstudio/internal/domain"
	"coverstudio/internal/middleware"
)

func (a *App) SessionCreate(w http.ResponseWriter, r *http.Request) {
	s := a.Sessions.Create()
	a.Logger.Debug().Str("session", s.ID).Msg("session created")
	a.json(w, http.StatusCreated, s.Snapshot())
}

func (a *App) SessionGet(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, s.Snapshot())
}

func (a *App) SessionDelete(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	a.Sessions.Delete(s.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) SessionReset(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	s.Reset()
	a.json(w, http.StatusOK, s.Snapshot())
}

func (a *App) FormUpdate(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var form domain.CoverFormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := form.Validate(); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) && verr.Field != "mainTitle" {
			// Only enum/shape problems block a save; an empty title is a
			// draft state the questionnaire allows until generation.
			a.error(w, http.StatusBadRequest, "bad_request", verr.Message)
			return
		}
	}
	s.SetForm(form)
	a.json(w, http.StatusOK, s.Snapshot())
}

type loginRequest struct {
	Password string `json:"password"`
}

func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if a.Password == "" || !credential.CheckPassword(req.Password, a.Password) {
		locale := middleware.LocaleFromContext(r.Context())
		msg := "密码错误"
		if locale == "en" {
			msg = "wrong password"
		}
		a.error(w, http.StatusUnauthorized, "unauthorized", msg)
		return
	}
	s.SetLoggedIn(true)
	a.json(w, http.StatusOK, s.Snapshot())
}

func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	s.SetLoggedIn(false)
	a.json(w, http.StatusOK, s.Snapshot())
}

type keyRequest struct {
	APIKey string `json:"apiKey"`
}

func (a *App) SetKey(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var req keyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	s.SetCustomKey(req.APIKey)
	a.json(w, http.StatusOK, s.Snapshot())
}
