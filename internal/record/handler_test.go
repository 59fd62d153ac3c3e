// AngelaMos | 2026
// handler_test.go

package record

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/insight-dashboard/internal/core"
)

func newTestRouter(repo Repository) http.Handler {
	svc := NewService(repo, newTestDecoder(), core.DefaultRecordsNumber)
	h := NewHandler(svc, 1<<20)

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func uploadRequest(t *testing.T, field, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, "data.json")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/data", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestUpload(t *testing.T) {
	repo := NewMemoryRepository()
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, uploadField, `[
		{"country": "USA", "intensity": 10, "added": "September, 23 2016 00:00:00"},
		{"country": "India", "intensity": 30, "added": ""}
	]`))

	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeBody[[]map[string]any](t, rec)
	require.Len(t, created, 2)
	assert.EqualValues(t, 1, created[0]["id"])
	assert.Equal(t, "2016-09-23T00:00:00Z", created[0]["added"])
	assert.Nil(t, created[1]["added"])

	total, err := repo.Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestUploadRejections(t *testing.T) {
	tests := []struct {
		name     string
		request  func(t *testing.T) *http.Request
		wantBody map[string]any
	}{
		{
			name: "missing file",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", `[]`)
			},
			wantBody: map[string]any{"error": "No file uploaded. Expected key: 'datafile'."},
		},
		{
			name: "not multipart",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/data", bytes.NewBufferString(`[]`))
			},
			wantBody: map[string]any{"error": "No file uploaded. Expected key: 'datafile'."},
		},
		{
			name: "invalid json",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, uploadField, `[{"country": }`)
			},
			wantBody: map[string]any{"error": "Invalid JSON format in uploaded file."},
		},
		{
			name: "not a list",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, uploadField, `{"country": "India"}`)
			},
			wantBody: map[string]any{"error": "Expected a list of records in JSON file."},
		},
		{
			name: "bad date",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, uploadField, `[{"country": "India"}, {"added": "bad-date"}]`)
			},
			wantBody: map[string]any{
				"error": "Invalid date format. Expected: 'Month, DD YYYY HH:MM:SS'",
				"field": "added",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMemoryRepository()
			router := newTestRouter(repo)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, tt.request(t))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantBody, decodeBody[map[string]any](t, rec))

			total, err := repo.Count(context.Background(), nil)
			require.NoError(t, err)
			assert.Zero(t, total)
		})
	}
}

func TestUploadValidationErrors(t *testing.T) {
	repo := NewMemoryRepository()
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, uploadField, `[
		{"country": "India"},
		{"intensity": "high"}
	]`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []map[string][]string{
		{},
		{"intensity": {"A valid integer is required."}},
	}, decodeBody[[]map[string][]string](t, rec))

	total, err := repo.Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestList(t *testing.T) {
	repo := seededRepository(t,
		Record{Country: strp("India"), Intensity: intp(5)},
		Record{Country: strp("USA"), Intensity: intp(10)},
		Record{Country: strp("india"), Intensity: intp(15)},
		Record{Country: strp("Indiana"), Intensity: intp(20)},
	)
	router := newTestRouter(repo)

	t.Run("filtered page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(
			http.MethodGet,
			"/data?country=india&records_number=2&page=2",
			nil,
		))

		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody[struct {
			Message    string   `json:"message"`
			Data       []Record `json:"data"`
			TotalCount int      `json:"total_count"`
		}](t, rec)

		assert.Equal(t, 3, body.TotalCount)
		require.Len(t, body.Data, 1)
		assert.Equal(t, int64(4), body.Data[0].ID)
	})

	t.Run("invalid filter", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data?intensity_min=abc", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("page out of range", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data?page=9", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
