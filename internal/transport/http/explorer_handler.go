// Package http contains the chi handlers exposing the analysis
// aggregates to the rendering layer.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"paperpulse/internal/config"
	apierrors "paperpulse/internal/errors"
	"paperpulse/internal/services"
	apiv1 "paperpulse/pkg/contracts/api/v1"
)

// ExplorerHandler serves the dataset overview and the aggregate views.
type ExplorerHandler struct {
	service      ExplorerServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewExplorerHandler creates a new explorer handler.
func NewExplorerHandler(service ExplorerServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExplorerHandler {
	return &ExplorerHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "explorer_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the explorer routes.
func (h *ExplorerHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/overview", h.GetOverview)
	r.Get("/sample", h.GetSample)
	r.Post("/dataset/refresh", h.RefreshDataset)

	r.Route("/analysis", func(r chi.Router) {
		r.Get("/years", h.GetYears)
		r.Get("/journals", h.GetJournals)
		r.Get("/sources", h.GetSources)
		r.Get("/words", h.GetWords)
		r.Get("/cloud", h.GetCloud)
	})

	return r
}

// GetOverview handles GET /api/overview.
func (h *ExplorerHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, overview)
}

// GetYears handles GET /api/analysis/years?from=&to=.
func (h *ExplorerHandler) GetYears(w http.ResponseWriter, r *http.Request) {
	q := apiv1.YearsRequest{}
	var err error
	if q.From, err = intParam(r, "from", 0); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidParameterError("from", err))
		return
	}
	if q.To, err = intParam(r, "to", 0); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidParameterError("to", err))
		return
	}
	if err := h.validate.Struct(q); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("range", err.Error()))
		return
	}

	counts, err := h.service.PublicationsByYear(r.Context(), q.From, q.To)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, counts)
}

// GetJournals handles GET /api/analysis/journals?limit=.
func (h *ExplorerHandler) GetJournals(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", config.TopNOptions[1])
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidParameterError("limit", err))
		return
	}
	if err := h.validate.Struct(apiv1.JournalsRequest{Limit: limit}); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("limit", "limit must be one of 5, 10, 15, 20"))
		return
	}

	ranked, err := h.service.TopJournals(r.Context(), limit)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, ranked)
}

// GetSources handles GET /api/analysis/sources.
func (h *ExplorerHandler) GetSources(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.service.SourceDistribution(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, ranked)
}

// GetWords handles GET /api/analysis/words?min_length=&limit=.
func (h *ExplorerHandler) GetWords(w http.ResponseWriter, r *http.Request) {
	q := apiv1.WordsRequest{}
	var err error
	if q.MinLength, err = intParam(r, "min_length", 3); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidParameterError("min_length", err))
		return
	}
	if q.Limit, err = intParam(r, "limit", 20); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidParameterError("limit", err))
		return
	}
	if err := h.validate.Struct(q); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("words", err.Error()))
		return
	}

	words, err := h.service.TopTitleWords(r.Context(), q.MinLength, q.Limit)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, words)
}

// GetCloud handles GET /api/analysis/cloud?max_words=.
func (h *ExplorerHandler) GetCloud(w http.ResponseWriter, r *http.Request) {
	maxWords, err := intParam(r, "max_words", 100)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidParameterError("max_words", err))
		return
	}
	if err := h.validate.Struct(apiv1.CloudRequest{MaxWords: maxWords}); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("max_words", err.Error()))
		return
	}

	cloud, err := h.service.WordCloud(r.Context(), maxWords)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, cloud)
}

// GetSample handles GET /api/sample?rows=.
func (h *ExplorerHandler) GetSample(w http.ResponseWriter, r *http.Request) {
	q := apiv1.SampleRequest{}
	var err error
	if q.Rows, err = intParam(r, "rows", 10); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidParameterError("rows", err))
		return
	}

	records, columns, err := h.service.Sample(r.Context(), q.Rows)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"columns": columns,
		"records": records,
	})
}

// RefreshDataset handles POST /api/dataset/refresh: drops the cached
// file and reloads the snapshot.
func (h *ExplorerHandler) RefreshDataset(w http.ResponseWriter, r *http.Request) {
	h.service.Invalidate()
	if err := h.service.Refresh(r.Context()); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.logger.InfoContext(r.Context(), "dataset refreshed via API")
	render.JSON(w, r, map[string]string{"status": "refreshed"})
}

// handleServiceError maps service errors onto the API error taxonomy
// before the generic handler renders them.
func (h *ExplorerHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrDatasetNotLoaded) {
		h.errorHandler.HandleError(w, r, apierrors.ErrDatasetNotLoaded)
		return
	}
	h.errorHandler.HandleError(w, r, err)
}

// intParam reads an integer query parameter, returning fallback when
// the parameter is absent.
func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
