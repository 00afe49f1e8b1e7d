package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interstellar-trade/domain"
	"interstellar-trade/service"
)

func TestListPlanets(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodGet, "/api/planets", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp planetListResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "2024.1", resp.Version)
	assert.Equal(t, service.DefaultShipSpeedRatio, resp.ShipSpeedRatio)
	assert.Equal(t, len(resp.Bodies), resp.Count)
	assert.Equal(t, "Mercury", resp.Bodies[0].Name)
}

func TestListPlanets_ByCategory(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodGet, "/api/planets?category=solar_system", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp planetListResponse
	decodeBody(t, w, &resp)
	require.Equal(t, 8, resp.Count)
	for _, b := range resp.Bodies {
		assert.Equal(t, domain.CategorySolarSystem, b.Category)
	}
}

func TestGetPlanet(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodGet, "/api/planets/Mars", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body domain.CelestialBody
	decodeBody(t, w, &body)
	assert.Equal(t, "Mars", body.Name)
	assert.Equal(t, 1.524, body.DistanceAU)

	w = srv.do(http.MethodGet, "/api/planets/Proxima%20Centauri%20b", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(http.MethodGet, "/api/planets/Pluto", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var errResp errorResponse
	decodeBody(t, w, &errResp)
	assert.Equal(t, string(domain.KindUnknownBody), errResp.Error)
	assert.Equal(t, "Pluto", errResp.Key)
}

func TestQueryPlanets(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodPost, "/api/planets/query", `{"question":"Is TRAPPIST-1e habitable?"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp queryResponse
	decodeBody(t, w, &resp)
	require.NotZero(t, resp.Count)
	assert.Contains(t, resp.Results[0].Content, "TRAPPIST-1e")

	w = srv.do(http.MethodPost, "/api/planets/query", `{"question":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
