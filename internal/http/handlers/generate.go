package handlers

import (
	"encoding/json"
	"net/http"

	"coverstudio/internal/domain"
)

type generateRequest struct {
	MainTitle string `json:"mainTitle"`
	SubTitle  string `json:"subTitle"`
}

type generateResponse struct {
	Success   bool                       `json:"success"`
	MainTitle string                     `json:"mainTitle"`
	SubTitle  string                     `json:"subTitle"`
	Strategy  *domain.OptimizationResult `json:"strategy"`
	ImageURL  string                     `json:"imageUrl"`
}

type generateError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Generate is the unauthenticated one-shot endpoint. It takes only the two
// titles, fills the rest of the questionnaire with automation-safe defaults
// and runs both stages on the server key.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.json(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if req.MainTitle == "" {
		a.json(w, http.StatusBadRequest, map[string]string{"error": "Missing required parameter: mainTitle"})
		return
	}
	if !a.Controller.HasServerKey() {
		a.json(w, http.StatusInternalServerError, map[string]string{"error": "Server API Key not configured."})
		return
	}

	form := domain.ProxyDefaultForm(req.MainTitle, req.SubTitle)
	result, imageURL, err := a.Controller.Generate(r.Context(), form)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("public generate failed")
		a.json(w, http.StatusInternalServerError, generateError{Success: false, Error: err.Error()})
		return
	}
	a.json(w, http.StatusOK, generateResponse{
		Success:   true,
		MainTitle: form.MainTitle,
		SubTitle:  form.SubTitle,
		Strategy:  result,
		ImageURL:  imageURL,
	})
}
