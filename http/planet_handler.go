package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"interstellar-trade/domain"
	"interstellar-trade/repository"
	"interstellar-trade/service"
)

type PlanetHandler struct {
	catalog *repository.BodyCatalog
	advisor *service.AdvisorService
	trade   *service.TradeService
	logger  logrus.FieldLogger
}

func NewPlanetHandler(
	catalog *repository.BodyCatalog,
	advisor *service.AdvisorService,
	trade *service.TradeService,
	logger logrus.FieldLogger,
) *PlanetHandler {
	return &PlanetHandler{catalog: catalog, advisor: advisor, trade: trade, logger: logger}
}

// planetListResponse also reports the configured ship speed, so clients can
// show travel times consistent with the quotes they will get.
type planetListResponse struct {
	Version        string                 `json:"version"`
	ShipSpeedRatio float64                `json:"shipSpeedRatio"`
	Count          int                    `json:"count"`
	Bodies         []domain.CelestialBody `json:"bodies"`
}

func (h *PlanetHandler) ListPlanets(w http.ResponseWriter, r *http.Request) {
	bodies := h.catalog.All()
	if category := r.URL.Query().Get("category"); category != "" {
		filtered := bodies[:0]
		for _, b := range bodies {
			if string(b.Category) == category {
				filtered = append(filtered, b)
			}
		}
		bodies = filtered
	}

	writeJSON(w, http.StatusOK, planetListResponse{
		Version:        h.catalog.Version(),
		ShipSpeedRatio: h.trade.ShipSpeedRatio(),
		Count:          len(bodies),
		Bodies:         bodies,
	}, h.logger)
}

func (h *PlanetHandler) GetPlanet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	body, err := h.catalog.Get(name)
	if errors.Is(err, repository.ErrBodyNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:   string(domain.KindUnknownBody),
			Message: err.Error(),
			Key:     name,
		}, h.logger)
		return
	}
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, body, h.logger)
}

type queryRequest struct {
	Question string `json:"question"`
}

type queryResponse struct {
	Results []domain.Passage `json:"results"`
	Count   int              `json:"count"`
}

// Query returns knowledge-base passages for a question without calling the
// language model.
func (h *PlanetHandler) Query(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}

	var req queryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	results, err := h.advisor.Search(req.Question, 3)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{Results: results, Count: len(results)}, h.logger)
}
