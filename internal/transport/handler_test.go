package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"elegance-storefront/internal/catalog"
	"elegance-storefront/internal/draft"
	"elegance-storefront/internal/middleware"
	"elegance-storefront/internal/notify"
	"elegance-storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// pngHeader is enough of a PNG file for content sniffing
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type testAPI struct {
	router   chi.Router
	notifier *notify.Recorder
}

func newTestAPI(t *testing.T) testAPI {
	t.Helper()

	c, err := catalog.Default()
	require.NoError(t, err)

	rec := &notify.Recorder{}
	logger := zap.NewNop()

	r := chi.NewRouter()
	r.NotFound(middleware.NotFoundHandler)
	NewCatalogHandler(service.NewCatalogService(c, rec), logger).RegisterRoutes(r)
	NewDraftHandler(
		service.NewDraftService(draft.NewMemoryStore(), service.NewLogSink(logger), rec),
		logger,
		1<<20,
	).RegisterRoutes(r)

	return testAPI{router: r, notifier: rec}
}

func (a testAPI) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a testAPI) doJSON(t *testing.T, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	return a.do(t, method, path, body, "application/json")
}

type upload struct {
	name    string
	content []byte
}

func multipartBody(t *testing.T, field string, files ...upload) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile(field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
