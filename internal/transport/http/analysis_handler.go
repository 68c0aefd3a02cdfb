package http

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "tabula/internal/errors"
	"tabula/internal/exporter"
	"tabula/internal/services"
	"tabula/pkg/contracts/domain"
)

// AnalysisHandler serves the /api/analyses resource.
type AnalysisHandler struct {
	service      *services.AnalysisService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewAnalysisHandler creates the handler.
func NewAnalysisHandler(service *services.AnalysisService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalysisHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "analysis_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the analysis routes.
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Create)
	r.Get("/", h.List)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Get("/summary", h.GetSummary)
		r.Get("/statistics", h.GetStatistics)
		r.Get("/cleaned", h.GetCleaned)
		r.Delete("/", h.Delete)
	})
	return r
}

// uploadRequest carries the validated metadata of a dataset upload.
type uploadRequest struct {
	Filename string `validate:"required,max=255"`
}

// CreateResponse is the payload returned for a new analysis.
type CreateResponse struct {
	ID        string         `json:"id"`
	Filename  string         `json:"filename"`
	CreatedAt string         `json:"created_at"`
	Summary   domain.Summary `json:"summary"`
}

// Create handles POST /api/analyses: a multipart upload with the
// dataset in the "file" field.
func (h *AnalysisHandler) Create(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	req := uploadRequest{Filename: header.Filename}
	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "invalid upload filename"))
		return
	}

	stored, err := h.service.AnalyzeUpload(r.Context(), file, header.Filename)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, CreateResponse{
		ID:        stored.ID,
		Filename:  stored.Filename,
		CreatedAt: stored.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Summary:   stored.Analysis.Summary,
	})
}

// List handles GET /api/analyses.
func (h *AnalysisHandler) List(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"analyses": h.service.List(r.Context()),
	})
}

// Get handles GET /api/analyses/{id}.
func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	stored, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, stored)
}

// GetSummary handles GET /api/analyses/{id}/summary.
func (h *AnalysisHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	stored, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, stored.Analysis.Summary)
}

// GetStatistics handles GET /api/analyses/{id}/statistics.
func (h *AnalysisHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stored, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, stored.Analysis.Statistics)
}

// GetCleaned handles GET /api/analyses/{id}/cleaned. The default
// response is JSON rows; ?format=csv streams a CSV preserving the
// dataset's column order.
func (h *AnalysisHandler) GetCleaned(w http.ResponseWriter, r *http.Request) {
	stored, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		render.JSON(w, r, map[string]interface{}{
			"columns":      stored.Columns,
			"cleaned_data": stored.Analysis.CleanedData,
		})
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="cleaned.csv"`)
		if err := exporter.WriteCleanedCSV(w, stored.Columns, stored.Analysis.CleanedData); err != nil {
			h.logger.ErrorContext(r.Context(), "cleaned csv export failed",
				slog.String("analysis_id", stored.ID),
				slog.String("error", err.Error()))
		}
	default:
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", "format must be json or csv"))
	}
}

// Delete handles DELETE /api/analyses/{id}.
func (h *AnalysisHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

// isBodyTooLarge reports whether err came from the request body size
// limit.
func isBodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr) || errors.Is(err, multipart.ErrMessageTooLarge)
}
