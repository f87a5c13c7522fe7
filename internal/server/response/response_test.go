package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cellarlens/cellarlens/pkg/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]string{"hello": "world"})

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode(t, rec)
	assert.Nil(t, resp.Error)
	assert.Equal(t, map[string]any{"hello": "world"}, resp.Data)
}

func TestFailEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	BadRequest(rec, "bad image", "gif is not supported")

	assert.Equal(t, 400, rec.Code)
	resp := decode(t, rec)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
	assert.Equal(t, "bad image", resp.Error.Message)
}

func TestErrorFromType(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "format error maps to 400",
			err:        errors.NewFormatError("gif", []string{"jpeg", "png"}),
			wantStatus: 400,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "validation error maps to 400",
			err:        errors.NewValidationError("img", nil, "missing"),
			wantStatus: 400,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "rate limit maps to 429",
			err:        errors.NewAPIError("catalog", 429, "slow down"),
			wantStatus: 429,
			wantCode:   "RATE_LIMITED",
		},
		{
			name:       "upstream parse maps to 502",
			err:        errors.NewParseError("json", "vision", "not json", nil),
			wantStatus: 502,
			wantCode:   "UPSTREAM_ERROR",
		},
		{
			name:       "provider failure maps to 502",
			err:        errors.NewAPIError("catalog", 503, "down"),
			wantStatus: 502,
			wantCode:   "UPSTREAM_ERROR",
		},
		{
			name:       "unknown error maps to 500",
			err:        errors.New("boom"),
			wantStatus: 500,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ErrorFromType(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decode(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}
