package http

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"interstellar-trade/domain"
	"interstellar-trade/service"
)

const maxRequestBodyBytes = 1 << 20

type TradeHandler struct {
	service *service.TradeService
	metrics *Metrics
	logger  logrus.FieldLogger
}

func NewTradeHandler(service *service.TradeService, metrics *Metrics, logger logrus.FieldLogger) *TradeHandler {
	return &TradeHandler{service: service, metrics: metrics, logger: logger}
}

// tradeRequestBody also accepts the sourcePlanet/destinationPlanet/goods
// names used by older clients.
type tradeRequestBody struct {
	SourceBody        string   `json:"sourceBody"`
	DestinationBody   string   `json:"destinationBody"`
	GoodsDescription  string   `json:"goodsDescription"`
	SourcePlanet      string   `json:"sourcePlanet"`
	DestinationPlanet string   `json:"destinationPlanet"`
	Goods             string   `json:"goods"`
	Quantity          *float64 `json:"quantity"`
	PaymentType       string   `json:"paymentType"`
	ShipSpeedRatio    *float64 `json:"shipSpeedRatio"`
	Explain           bool     `json:"explain"`
}

func (b tradeRequestBody) toDomain() (domain.TradeRequest, error) {
	req := domain.TradeRequest{
		SourceBody:       firstNonEmpty(b.SourceBody, b.SourcePlanet),
		DestinationBody:  firstNonEmpty(b.DestinationBody, b.DestinationPlanet),
		GoodsDescription: firstNonEmpty(b.GoodsDescription, b.Goods),
		PaymentType:      domain.PaymentType(b.PaymentType),
		ShipSpeedRatio:   b.ShipSpeedRatio,
	}

	if req.SourceBody == "" {
		return req, domain.NewTradeError(domain.KindUnknownBody, "", "sourceBody is required")
	}
	if req.DestinationBody == "" {
		return req, domain.NewTradeError(domain.KindUnknownBody, "", "destinationBody is required")
	}
	if req.PaymentType == "" {
		return req, domain.NewTradeError(domain.KindInvalidPaymentType, "", "paymentType is required")
	}
	if !req.PaymentType.Valid() {
		return req, domain.NewTradeError(domain.KindInvalidPaymentType, b.PaymentType,
			"paymentType must be %q or %q, got %q", domain.PaymentUpfront, domain.PaymentOnDelivery, b.PaymentType)
	}

	if b.Quantity == nil {
		return req, domain.NewTradeError(domain.KindInvalidQuantity, "", "quantity is required")
	}
	q := *b.Quantity
	if math.IsNaN(q) || math.IsInf(q, 0) || q != math.Trunc(q) {
		return req, domain.NewTradeError(domain.KindInvalidQuantity, "", "quantity must be a whole number, got %v", q)
	}
	if q > service.MaxQuantity {
		return req, domain.NewTradeError(domain.KindInvalidQuantity, "",
			"quantity exceeds the maximum of %d units", service.MaxQuantity)
	}
	// los valores menores a 1 se cobran como 1 en la calculadora
	req.Quantity = int(math.Max(q, 0))

	return req, nil
}

func (h *TradeHandler) CalculateTrade(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}

	var body tradeRequestBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&body); err != nil {
		h.logger.WithError(err).Debug("Error decoding trade request body")
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	req, err := body.toDomain()
	if err != nil {
		h.metrics.ObserveQuote(err)
		writeError(w, err, h.logger)
		return
	}

	result, err := h.service.Quote(r.Context(), req, body.Explain)
	h.metrics.ObserveQuote(err)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"source":      req.SourceBody,
			"destination": req.DestinationBody,
		}).Info("Trade quote rejected")
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result, h.logger)
}

func (h *TradeHandler) RecentQuotes(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeBadRequest(w, "limit must be a non-negative integer", h.logger)
			return
		}
		limit = n
	}

	quotes, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"quotes": quotes,
		"count":  len(quotes),
	}, h.logger)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
