package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/user/glue-crawler-service/internal/delivery/http/request"
	"github.com/user/glue-crawler-service/internal/delivery/http/response"
	"github.com/user/glue-crawler-service/internal/entity"
	"github.com/user/glue-crawler-service/internal/usecase"
)

// maxPageSize is the largest page the crawler API accepts.
const maxPageSize = 1000

type Handler struct {
	crawlers usecase.CrawlerManager
	logger   *zap.Logger
}

func NewHandler(crawlers usecase.CrawlerManager, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		crawlers: crawlers,
		logger:   logger,
	}
}

func (h *Handler) HandleCreateS3Crawler(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, &request.S3CrawlerRequest{})
}

func (h *Handler) HandleCreateJdbcCrawler(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, &request.JdbcCrawlerRequest{})
}

func (h *Handler) HandleCreateCatalogCrawler(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, &request.CatalogCrawlerRequest{})
}

func (h *Handler) HandleCreateDeltaCrawler(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, &request.DeltaCrawlerRequest{})
}

func (h *Handler) HandleUpdateS3Crawler(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, &request.S3CrawlerRequest{})
}

func (h *Handler) HandleUpdateJdbcCrawler(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, &request.JdbcCrawlerRequest{})
}

func (h *Handler) HandleUpdateCatalogCrawler(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, &request.CatalogCrawlerRequest{})
}

func (h *Handler) HandleUpdateDeltaCrawler(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, &request.DeltaCrawlerRequest{})
}

func (h *Handler) HandleGetCrawlers(w http.ResponseWriter, r *http.Request) {
	page, ok := h.pageFromQuery(w, r)
	if !ok {
		return
	}
	h.writeOutcome(w, h.crawlers.GetAll(r.Context(), page))
}

func (h *Handler) HandleListCrawlers(w http.ResponseWriter, r *http.Request) {
	page, ok := h.pageFromQuery(w, r)
	if !ok {
		return
	}
	h.writeOutcome(w, h.crawlers.List(r.Context(), page))
}

func (h *Handler) HandleGetCrawler(w http.ResponseWriter, r *http.Request) {
	h.writeOutcome(w, h.crawlers.Get(r.Context(), chi.URLParam(r, "name")))
}

func (h *Handler) HandleStartCrawler(w http.ResponseWriter, r *http.Request) {
	h.writeOutcome(w, h.crawlers.Start(r.Context(), chi.URLParam(r, "name")))
}

func (h *Handler) HandleStopCrawler(w http.ResponseWriter, r *http.Request) {
	h.writeOutcome(w, h.crawlers.Stop(r.Context(), chi.URLParam(r, "name")))
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, req request.CrawlerRequest) {
	if !h.bind(w, r, req) {
		return
	}
	h.writeOutcome(w, h.crawlers.Create(r.Context(), req.ToEntity()))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, req request.CrawlerRequest) {
	if !h.bind(w, r, req) {
		return
	}
	h.writeOutcome(w, h.crawlers.Update(r.Context(), req.ToEntity()))
}

// bind rejects the request before any remote call when the payload is unusable.
func (h *Handler) bind(w http.ResponseWriter, r *http.Request, req request.CrawlerRequest) bool {
	err := request.Bind(r.Body, req)
	if err == nil {
		return true
	}

	h.logger.Debug("Rejected crawler payload", zap.String("path", r.URL.Path), zap.Error(err))
	if errors.Is(err, request.ErrMalformedBody) {
		h.writeJSONError(w, "Invalid request body", http.StatusUnprocessableEntity)
		return false
	}
	h.writeJSONError(w, err.Error(), http.StatusUnprocessableEntity)
	return false
}

func (h *Handler) pageFromQuery(w http.ResponseWriter, r *http.Request) (entity.Page, bool) {
	q := r.URL.Query()
	page := entity.Page{NextToken: q.Get("next_token")}

	if raw := q.Get("max_results"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 1 || n > maxPageSize {
			h.writeJSONError(w, "max_results must be an integer between 1 and 1000", http.StatusUnprocessableEntity)
			return entity.Page{}, false
		}
		page.MaxResults = int32(n)
	}
	return page, true
}

// writeOutcome always answers 200 at the transport level; the envelope carries
// the semantic status.
func (h *Handler) writeOutcome(w http.ResponseWriter, outcome entity.Outcome) {
	h.writeJSON(w, http.StatusOK, response.FromOutcome(outcome))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
