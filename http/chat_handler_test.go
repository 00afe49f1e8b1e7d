package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodPost, "/api/chat", `{"message":"How does time dilation affect interest rates?"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp chatResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "assistant", resp.Role)
	assert.Contains(t, resp.Content, "Krugman")
	assert.False(t, resp.Generated)
	assert.NotEmpty(t, resp.Sources)
}

func TestChat_InvalidMessage(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodPost, "/api/chat", `{"message":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "InvalidQuestionError", resp.Error)

	long := `{"message":"` + strings.Repeat("x", 2001) + `"}`
	w = srv.do(http.MethodPost, "/api/chat", long)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthzAndCORS(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = srv.do(http.MethodOptions, "/api/trade/calculate", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
