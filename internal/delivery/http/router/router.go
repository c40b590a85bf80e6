package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/user/glue-crawler-service/internal/delivery/http/handler"
	"github.com/user/glue-crawler-service/internal/delivery/http/middleware"
	"github.com/user/glue-crawler-service/pkg/metrics"
)

// New mounts the crawler routes under basePath ("" for the root).
// metricsHandler serves /metrics; pass nil to skip the endpoint.
func New(h *handler.Handler, basePath string, m *metrics.Metrics, metricsHandler http.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(m))
	r.Use(chimw.Recoverer)

	r.Get("/health", h.HandleHealthCheck)
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	routes := func(r chi.Router) {
		r.Post("/create_s3_crawler", h.HandleCreateS3Crawler)
		r.Post("/create_jdbc_crawler", h.HandleCreateJdbcCrawler)
		r.Post("/create_catalog_crawler", h.HandleCreateCatalogCrawler)
		r.Post("/create_delta_crawler", h.HandleCreateDeltaCrawler)

		r.Put("/update_s3_crawler", h.HandleUpdateS3Crawler)
		r.Put("/update_jdbc_crawler", h.HandleUpdateJdbcCrawler)
		r.Put("/update_catalog_crawler", h.HandleUpdateCatalogCrawler)
		r.Put("/update_delta_crawler", h.HandleUpdateDeltaCrawler)

		r.Get("/get_crawlers", h.HandleGetCrawlers)
		r.Get("/get_crawler/{name}", h.HandleGetCrawler)
		r.Get("/list_crawlers", h.HandleListCrawlers)
		r.Get("/start_crawler/{name}", h.HandleStartCrawler)
		r.Get("/stop_crawler/{name}", h.HandleStopCrawler)
	}
	if basePath == "" {
		r.Group(routes)
	} else {
		r.Route(basePath, routes)
	}

	return r
}
