package bill

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/lucasvgarcia/contas/internal/bill"
	"github.com/lucasvgarcia/contas/internal/importer"
)

type Handler struct {
	svc *bill.Service
}

func NewHandler(svc *bill.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(middleware.AllowContentType("application/json")).Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/totals", h.totals)
	r.Get("/export", h.exportCSV)
	r.Post("/import", h.importCSV)
	r.Get("/{id}", h.get)
	r.With(middleware.AllowContentType("application/json")).Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type billRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
}

// writeError maps the domain error kinds onto status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bill.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, bill.ErrNotFound):
		http.Error(w, "bill not found", http.StatusNotFound)
	case errors.Is(err, bill.ErrStoreUnavailable):
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := bill.ParseParams(req.Description, req.Amount, req.DueDate, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	b, err := h.svc.Create(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(b))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	bills, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(bills))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(b))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req billRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := bill.ParseParams(req.Description, req.Amount, req.DueDate, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.Update(r.Context(), id, params); err != nil {
		writeError(w, err)
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(b))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) totals(w http.ResponseWriter, r *http.Request) {
	bills, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTotalsResponse(bill.ComputeTotals(bills)))
}

type importResponse struct {
	Imported int      `json:"imported"`
	Rejected []string `json:"rejected,omitempty"`
}

// importCSV creates one bill per valid CSV row. Rows that fail
// validation are reported back by row number instead of aborting the
// whole upload.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	params, rejects, err := importer.Parse(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := importResponse{}
	for _, re := range rejects {
		resp.Rejected = append(resp.Rejected, re.Error())
	}

	for _, p := range params {
		if _, err := h.svc.Create(r.Context(), p); err != nil {
			writeError(w, err)
			return
		}

		resp.Imported++
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	bills, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="bills.csv"`)

	if err := importer.Export(w, bills); err != nil {
		slog.Error("failed to write csv export", "error", err)
	}
}
