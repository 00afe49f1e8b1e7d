package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"interstellar-trade/repository"
	"interstellar-trade/service"
)

type testServer struct {
	handler http.Handler
	repo    *repository.QuoteRepositoryMemory
	metrics *Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	catalog, err := repository.LoadBodyCatalog("")
	require.NoError(t, err)
	calculator, err := service.NewTradeCalculator(catalog, service.DefaultShipSpeedRatio)
	require.NoError(t, err)

	repo := repository.NewQuoteRepositoryMemory()
	advisor := service.NewAdvisorService(service.AdvisorConfig{}, service.NewKnowledgeBase(catalog.All()),
		repository.NewMemoryCache(), logger)
	tradeService := service.NewTradeService(calculator, repo, advisor, logger)
	metrics := NewMetrics("test")

	handler := NewRouter(RouterConfig{
		TradeHandler:  NewTradeHandler(tradeService, metrics, logger),
		PlanetHandler: NewPlanetHandler(catalog, advisor, tradeService, logger),
		ChatHandler:   NewChatHandler(advisor, logger),
		Metrics:       metrics,
		CORS:          CORSConfig{AllowedOrigin: "http://localhost:3000"},
	})

	return &testServer{handler: handler, repo: repo, metrics: metrics}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v))
}
