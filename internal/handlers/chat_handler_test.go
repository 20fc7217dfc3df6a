package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheynails/studio-api/internal/services"
)

func chatHandler(t *testing.T, upstream *httptest.Server) *Handler {
	t.Helper()
	svc := services.NewChatService("test-key", "gemini-2.0-flash", "v1")
	if upstream != nil {
		svc.BaseURL = upstream.URL
		svc.HTTPClient = upstream.Client()
	}
	return &Handler{ChatSvc: svc, Knowledge: testKnowledge(t)}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	r := newTestRouter(chatHandler(t, nil))

	for _, body := range []map[string]any{
		{},
		{"message": ""},
		{"message": "   "},
	} {
		w := postJSON(t, r, "/api/chat", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestChatRejectsOversizedMessage(t *testing.T) {
	r := newTestRouter(chatHandler(t, nil))

	w := postJSON(t, r, "/api/chat", map[string]any{"message": strings.Repeat("a", 1001)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Message too long", decodeBody(t, w)["error"])

	// 1001 runes is over the limit no matter how many bytes each takes.
	w = postJSON(t, r, "/api/chat", map[string]any{"message": strings.Repeat("नख", 501)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Message too long", decodeBody(t, w)["error"])
}

func TestChatCountsCharactersNotBytes(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"model answer"}]}}]}`))
	}))
	defer upstream.Close()

	r := newTestRouter(chatHandler(t, upstream))

	// 600 Devanagari characters occupy well over 1000 bytes but must still
	// pass the 1000-character limit.
	w := postJSON(t, r, "/api/chat", map[string]any{"message": strings.Repeat("न", 600)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "model answer", decodeBody(t, w)["reply"])
}

func TestChatAnswersLocallyWithoutUpstreamCall(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("the generative API must not be called for knowledge-base matches")
	}))
	defer upstream.Close()

	r := newTestRouter(chatHandler(t, upstream))

	w := postJSON(t, r, "/api/chat", map[string]any{
		"message":        "how do I book an appointment?",
		"conversationId": "conv-42",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	assert.NotEmpty(t, resp["reply"])

	md, ok := resp["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, md["local"])
	assert.Equal(t, "conv-42", md["conversationId"])
}

func TestChatMasksUpstreamFailureAs200(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	h := chatHandler(t, upstream)
	r := newTestRouter(h)

	w := postJSON(t, r, "/api/chat", map[string]any{"message": "what's the weather like today?"})
	require.Equal(t, http.StatusOK, w.Code, "upstream failures must not surface as errors")

	resp := decodeBody(t, w)
	reply, ok := resp["reply"].(string)
	require.True(t, ok)
	assert.Contains(t, reply, h.Knowledge.Contact.Phone[0])
	assert.Contains(t, reply, h.Knowledge.Contact.Address)
}

func TestChatForwardsUnmatchedQuestions(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"model answer"}]}}]}`))
	}))
	defer upstream.Close()

	r := newTestRouter(chatHandler(t, upstream))

	w := postJSON(t, r, "/api/chat", map[string]any{"message": "what's the weather like today?"})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, "model answer", resp["reply"])

	md, ok := resp["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, md["local"])
	assert.Equal(t, "gemini-2.0-flash", md["model"])
}
