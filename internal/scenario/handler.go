package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"cardiosim/internal/pce"
)

// ReportRenderer produces a downloadable document for a saved scenario.
// Implemented by the report package; declared here to keep the dependency
// pointing outward.
type ReportRenderer interface {
	Render(sc Scenario, p Preview) ([]byte, error)
}

type Handler struct {
	svc     Service
	reports ReportRenderer
}

func NewHandler(svc Service, reports ReportRenderer) *Handler {
	return &Handler{svc: svc, reports: reports}
}

type EvaluateRequest struct {
	Inputs pce.Inputs `json:"inputs"`
}

type PreviewRequest struct {
	Baseline     pce.Inputs   `json:"baseline"`
	Intervention Intervention `json:"intervention"`
}

type SaveRequest struct {
	Name         string       `json:"name"`
	Baseline     pce.Inputs   `json:"baseline"`
	Intervention Intervention `json:"intervention"`
}

type TimelineRequest struct {
	Baseline     pce.Inputs   `json:"baseline"`
	Intervention Intervention `json:"intervention"`
	Months       int          `json:"months"`
}

type ListItem struct {
	Scenario Scenario   `json:"scenario"`
	Summary  SummaryRow `json:"summary"`
}

// validateInputs enforces the model's positivity contract at the API
// boundary. The model itself performs no such check.
func validateInputs(in pce.Inputs) error {
	if in.AgeYears <= 0 {
		return fmt.Errorf("age_years must be positive")
	}
	if in.TotalCholMgdl <= 0 {
		return fmt.Errorf("total_chol_mgdl must be positive")
	}
	if in.HDLMgdl <= 0 {
		return fmt.Errorf("hdl_mgdl must be positive")
	}
	if in.SBPMmhg <= 0 {
		return fmt.Errorf("sbp_mmhg must be positive")
	}
	switch in.Sex {
	case pce.SexFemale, pce.SexMale:
	default:
		return fmt.Errorf("sex must be %q or %q", pce.SexFemale, pce.SexMale)
	}
	switch in.Race {
	case pce.RaceBlack, pce.RaceWhiteOrOther:
	default:
		return fmt.Errorf("race must be %q or %q", pce.RaceBlack, pce.RaceWhiteOrOther)
	}
	return nil
}

func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := validateInputs(req.Inputs); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, h.svc.Evaluate(req.Inputs))
}

func (h *Handler) Presets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]pce.Inputs{
		"typical":   TypicalPreset(),
		"high_risk": HighRiskPreset(),
	})
}

func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := validateInputs(req.Baseline); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, h.svc.Preview(req.Baseline, req.Intervention))
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Missing scenario name", http.StatusBadRequest)
		return
	}
	if err := validateInputs(req.Baseline); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sc, err := h.svc.Save(r.Context(), req.Name, req.Baseline, req.Intervention)
	if err != nil {
		http.Error(w, "Failed to save scenario", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sc)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to list scenarios", http.StatusInternalServerError)
		return
	}

	items := make([]ListItem, 0, len(scenarios))
	for _, sc := range scenarios {
		items = append(items, ListItem{Scenario: sc, Summary: Summarize(sc)})
	}
	writeJSON(w, items)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid scenario ID", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Scenario not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete scenario", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	var req TimelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := validateInputs(req.Baseline); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Months < 1 || req.Months > 24 {
		http.Error(w, "months must be between 1 and 24", http.StatusBadRequest)
		return
	}

	writeJSON(w, h.svc.Timeline(req.Baseline, req.Intervention, req.Months))
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Summaries(r.Context())
	if err != nil {
		http.Error(w, "Failed to export scenarios", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="cardiosim_scenarios.csv"`)
	if err := WriteCSV(w, rows); err != nil {
		http.Error(w, "Failed to write CSV", http.StatusInternalServerError)
	}
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid scenario ID", http.StatusBadRequest)
		return
	}

	sc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Scenario not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load scenario", http.StatusInternalServerError)
		return
	}

	preview := h.svc.Preview(sc.Baseline, sc.Intervention)
	pdf, err := h.reports.Render(*sc, preview)
	if err != nil {
		http.Error(w, "Report generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="report_%s.pdf"`, sc.ID))
	w.Write(pdf)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/risk", h.Evaluate)
	r.Get("/presets", h.Presets)
	r.Post("/scenario/preview", h.Preview)
	r.Post("/scenario/timeline", h.Timeline)
	r.Get("/scenario/export", h.ExportCSV)
	r.Post("/scenario", h.Save)
	r.Get("/scenario", h.List)
	r.Delete("/scenario/{id}", h.Delete)
	r.Get("/scenario/{id}/report", h.Report)
}
