package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/glue-crawler-service/internal/entity"
)

// fakeManager records what reached the use case and answers with outcome.
type fakeManager struct {
	outcome entity.Outcome

	calls []string
	spec  entity.CrawlerSpec
	name  string
	page  entity.Page
}

func (f *fakeManager) Create(_ context.Context, spec entity.CrawlerSpec) entity.Outcome {
	f.calls, f.spec = append(f.calls, "create"), spec
	return f.outcome
}

func (f *fakeManager) Update(_ context.Context, spec entity.CrawlerSpec) entity.Outcome {
	f.calls, f.spec = append(f.calls, "update"), spec
	return f.outcome
}

func (f *fakeManager) Get(_ context.Context, name string) entity.Outcome {
	f.calls, f.name = append(f.calls, "get"), name
	return f.outcome
}

func (f *fakeManager) GetAll(_ context.Context, page entity.Page) entity.Outcome {
	f.calls, f.page = append(f.calls, "get_all"), page
	return f.outcome
}

func (f *fakeManager) List(_ context.Context, page entity.Page) entity.Outcome {
	f.calls, f.page = append(f.calls, "list"), page
	return f.outcome
}

func (f *fakeManager) Start(_ context.Context, name string) entity.Outcome {
	f.calls, f.name = append(f.calls, "start"), name
	return f.outcome
}

func (f *fakeManager) Stop(_ context.Context, name string) entity.Outcome {
	f.calls, f.name = append(f.calls, "stop"), name
	return f.outcome
}

func newTestRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
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
	r.Get("/health", h.HandleHealthCheck)
	return r
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func TestCreateAndUpdate_SelectVariantByEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		path   string
		body   string
		call   string
		kind   entity.TargetKind
	}{
		{http.MethodPost, "/create_s3_crawler", `{"Name":"n","Role":"r","DatabaseName":"d","S3Path":"s3://b"}`, "create", entity.TargetS3},
		{http.MethodPost, "/create_jdbc_crawler", `{"Name":"n","Role":"r","DatabaseName":"d","ConnectionName":"c","Path":"p"}`, "create", entity.TargetJdbc},
		{http.MethodPost, "/create_catalog_crawler", `{"Name":"n","Role":"r","DatabaseName":"d","Tables":"t"}`, "create", entity.TargetCatalog},
		{http.MethodPost, "/create_delta_crawler", `{"Name":"n","Role":"r","DatabaseName":"d","DeltaTables":"t"}`, "create", entity.TargetDelta},
		{http.MethodPut, "/update_s3_crawler", `{"Name":"n","Role":"r","DatabaseName":"d","S3Path":"s3://b"}`, "update", entity.TargetS3},
		{http.MethodPut, "/update_jdbc_crawler", `{"Name":"n","Role":"r","DatabaseName":"d","ConnectionName":"c","Path":"p"}`, "update", entity.TargetJdbc},
		{http.MethodPut, "/update_catalog_crawler", `{"Name":"n","Role":"r","DatabaseName":"d","Tables":"t"}`, "update", entity.TargetCatalog},
		{http.MethodPut, "/update_delta_crawler", `{"Name":"n","Role":"r","DatabaseName":"d","DeltaTables":"t"}`, "update", entity.TargetDelta},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			mgr := &fakeManager{outcome: entity.Success(http.StatusOK, nil)}
			rec := serve(t, newTestRouter(NewHandler(mgr, nil)), tt.method, tt.path, tt.body)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, []string{tt.call}, mgr.calls)
			require.NotNil(t, mgr.spec)
			assert.Equal(t, tt.kind, mgr.spec.Kind())
			assert.JSONEq(t, `{"success":true,"status":200,"data":null}`, rec.Body.String())
		})
	}
}

func TestInvalidPayloadRejectedBeforeRemoteCall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"create s3 empty name", http.MethodPost, "/create_s3_crawler", `{"Name":"","Role":"r","DatabaseName":"d","S3Path":"s3://b"}`},
		{"create jdbc empty name", http.MethodPost, "/create_jdbc_crawler", `{"Name":"","Role":"r","DatabaseName":"d","ConnectionName":"c","Path":"p"}`},
		{"create catalog empty name", http.MethodPost, "/create_catalog_crawler", `{"Name":"","Role":"r","DatabaseName":"d","Tables":"t"}`},
		{"create delta empty name", http.MethodPost, "/create_delta_crawler", `{"Name":"","Role":"r","DatabaseName":"d","DeltaTables":"t"}`},
		{"update s3 empty name", http.MethodPut, "/update_s3_crawler", `{"Name":"","Role":"r","DatabaseName":"d","S3Path":"s3://b"}`},
		{"update delta missing field", http.MethodPut, "/update_delta_crawler", `{"Name":"n","Role":"r","DatabaseName":"d"}`},
		{"malformed json", http.MethodPost, "/create_s3_crawler", `{"Name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mgr := &fakeManager{}
			rec := serve(t, newTestRouter(NewHandler(mgr, nil)), tt.method, tt.path, tt.body)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Empty(t, mgr.calls)
			assert.NotEmpty(t, decode(t, rec)["error"])
		})
	}
}

func TestNameParameterizedRoutes(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		path string
		call string
	}{
		{"/get_crawler/orders", "get"},
		{"/start_crawler/orders", "start"},
		{"/stop_crawler/orders", "stop"},
	} {
		t.Run(tt.call, func(t *testing.T) {
			t.Parallel()
			mgr := &fakeManager{outcome: entity.Success(http.StatusOK, map[string]string{"message": "ok"})}
			rec := serve(t, newTestRouter(NewHandler(mgr, nil)), http.MethodGet, tt.path, "")

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, []string{tt.call}, mgr.calls)
			assert.Equal(t, "orders", mgr.name)
		})
	}
}

func TestEnvelopesAlwaysUseTransportStatus200(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		outcome entity.Outcome
		want    string
	}{
		{
			name:    "handled exception",
			outcome: entity.Exception(http.StatusBadRequest, entity.ErrorDetail{Code: "EntityNotFoundException", Message: "missing"}),
			want:    `{"success":false,"status":400,"message":{"Code":"EntityNotFoundException","Message":"missing"}}`,
		},
		{
			name:    "unhandled exception",
			outcome: entity.UnhandledException(),
			want:    `{"success":false,"status":404,"message":{"message":"Unhandled Exception"}}`,
		},
		{
			name:    "domain error",
			outcome: entity.DomainError(http.StatusAccepted, map[string]any{"ResponseMetadata": map[string]any{"HTTPStatusCode": 202}}),
			want:    `{"success":false,"status":202,"message":{"ResponseMetadata":{"HTTPStatusCode":202}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mgr := &fakeManager{outcome: tt.outcome}
			rec := serve(t, newTestRouter(NewHandler(mgr, nil)), http.MethodGet, "/get_crawler/nonexistent", "")

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestPagination(t *testing.T) {
	t.Parallel()

	t.Run("query params reach the use case", func(t *testing.T) {
		t.Parallel()
		mgr := &fakeManager{outcome: entity.Success(http.StatusOK, nil)}
		rec := serve(t, newTestRouter(NewHandler(mgr, nil)), http.MethodGet, "/list_crawlers?max_results=25&next_token=abc", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, entity.Page{MaxResults: 25, NextToken: "abc"}, mgr.page)
	})

	t.Run("no params means server defaults", func(t *testing.T) {
		t.Parallel()
		mgr := &fakeManager{outcome: entity.Success(http.StatusOK, nil)}
		serve(t, newTestRouter(NewHandler(mgr, nil)), http.MethodGet, "/get_crawlers", "")

		assert.Equal(t, []string{"get_all"}, mgr.calls)
		assert.Equal(t, entity.Page{}, mgr.page)
	})

	for _, bad := range []string{"0", "-1", "1001", "ten"} {
		bad := bad
		t.Run("rejects max_results="+bad, func(t *testing.T) {
			t.Parallel()
			mgr := &fakeManager{}
			rec := serve(t, newTestRouter(NewHandler(mgr, nil)), http.MethodGet, "/get_crawlers?max_results="+bad, "")

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Empty(t, mgr.calls)
		})
	}
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	rec := serve(t, newTestRouter(NewHandler(&fakeManager{}, nil)), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
