// AngelaMos | 2026
// handler_test.go

package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/insight-dashboard/internal/record"
)

func TestDispatch(t *testing.T) {
	svc := newTestService(t,
		record.Record{Country: strp("USA"), Intensity: intp(10)},
		record.Record{Country: strp("USA"), Intensity: intp(20)},
		record.Record{Country: strp("India"), Intensity: intp(30)},
	)

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "missing action",
			target:     "/data/dashboard",
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"message": "Action is not in dict", "data": nil},
		},
		{
			name:       "unknown action",
			target:     "/data/dashboard?action=getEverything",
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"message": "Choose Wrong Option !", "data": nil},
		},
		{
			name:       "empty action",
			target:     "/data/dashboard?action=",
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"message": "Choose Wrong Option !", "data": nil},
		},
		{
			name:       "intensity",
			target:     "/data/dashboard?action=getIntensity",
			wantStatus: http.StatusOK,
			wantBody: map[string]any{
				"message": "Successfully fetched intensity data!",
				"data": []any{
					map[string]any{"country": "India", "avg_intensity": 30.0},
					map[string]any{"country": "USA", "avg_intensity": 15.0},
				},
				"total_count": 3.0,
			},
		},
		{
			name:       "report failure",
			target:     "/data/dashboard?action=getIntensity&page=abc",
			wantStatus: http.StatusInternalServerError,
			wantBody: map[string]any{
				"message": `Error fetching intensity data: page "abc" is not an integer: invalid page`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
