package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/maheynails/studio-api/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter registers the public routes against h. Tests that only walk
// validation paths may leave h.DB nil.
func newTestRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.POST("/api/appointments", h.BookAppointment)
	r.GET("/api/review", h.GetReviews)
	r.POST("/api/review", h.CreateReview)
	r.GET("/api/services", h.GetServices)
	r.GET("/api/services/:id", h.GetService)
	r.POST("/api/chat", h.HandleChat)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getJSON(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func testKnowledge(t *testing.T) *services.KnowledgeBase {
	t.Helper()
	kb, err := services.LoadKnowledgeBase()
	require.NoError(t, err)
	return kb
}
