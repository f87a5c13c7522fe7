package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cellarlens/cellarlens/pkg/errors"
	"github.com/cellarlens/cellarlens/pkg/logging"
	"github.com/cellarlens/cellarlens/pkg/pipeline"
	"github.com/cellarlens/cellarlens/pkg/wines"
)

type fakeUploader struct {
	result  *pipeline.Result
	err     error
	gotImg  wines.Image
	called  int
}

func (f *fakeUploader) UploadUserImage(_ context.Context, img wines.Image) (*pipeline.Result, error) {
	f.called++
	f.gotImg = img
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestServer(uploader *fakeUploader) *Server {
	logger := logging.Nop
	cfg := DefaultConfig()
	cfg.RateLimit = 0
	return New(uploader, &logger, cfg)
}

func captureBody(t *testing.T, base64, ext string) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"img": map[string]string{"base64": base64, "ext": ext},
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&fakeUploader{})

	for _, path := range []string{"/health", "/api/v1/health"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "healthy")
	}
}

func TestCaptureSuccess(t *testing.T) {
	result := pipeline.NewResult()
	price := 11.49
	result.Wines = []wines.RankedWine{{
		ResolvedWine: wines.ResolvedWine{
			CatalogID: 7,
			Name:      "Comenda Grande Tinto 2021",
			Year:      "2021",
			Price:     &price,
		},
		Score: 8.4,
	}}
	result.Finalize()

	uploader := &fakeUploader{result: result}
	srv := newTestServer(uploader)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wines/capture", captureBody(t, "aW1n", "jpeg"))
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, uploader.called)
	assert.Equal(t, wines.Image{Base64: "aW1n", Ext: "jpeg"}, uploader.gotImg)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var resp struct {
		Data struct {
			Wines []wines.RankedWine `json:"winesArray"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Wines, 1)
	assert.Equal(t, "Comenda Grande Tinto 2021", resp.Data.Wines[0].Name)
}

func TestCaptureRejectsBadRequests(t *testing.T) {
	uploader := &fakeUploader{}
	srv := newTestServer(uploader)

	tests := []struct {
		name string
		body *bytes.Buffer
	}{
		{"missing image", captureBody(t, "", "jpeg")},
		{"unsupported ext", captureBody(t, "aW1n", "gif")},
		{"malformed json", bytes.NewBufferString("{nope")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/wines/capture", tt.body)
			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Zero(t, uploader.called, "invalid requests never reach the pipeline")
}

func TestCaptureMethodNotAllowed(t *testing.T) {
	srv := newTestServer(&fakeUploader{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/wines/capture", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCaptureUpstreamErrorMapping(t *testing.T) {
	uploader := &fakeUploader{err: errors.NewParseError("json", "vision", "not json", nil)}
	srv := newTestServer(uploader)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wines/capture", captureBody(t, "aW1n", "png"))
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "UPSTREAM_ERROR")
}
