package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"interstellar-trade/domain"
	"interstellar-trade/repository"
)

// QuoteExplainer turns a computed quote into prose.
type QuoteExplainer interface {
	ExplainQuote(ctx context.Context, req domain.TradeRequest, quote domain.TradeQuote) string
}

type TradeService struct {
	calculator *TradeCalculator
	repo       repository.QuoteRepository
	explainer  QuoteExplainer
	logger     logrus.FieldLogger
	now        func() time.Time
}

// NewTradeService creates a new TradeService. explainer may be nil, in which
// case explanations are never attached.
func NewTradeService(
	calculator *TradeCalculator,
	repo repository.QuoteRepository,
	explainer QuoteExplainer,
	logger logrus.FieldLogger,
) *TradeService {
	return &TradeService{
		calculator: calculator,
		repo:       repo,
		explainer:  explainer,
		logger:     logger,
		now:        time.Now,
	}
}

// Quote computes a quote for the request and records it.
func (s *TradeService) Quote(
	ctx context.Context,
	req domain.TradeRequest,
	explain bool,
) (domain.QuoteResponse, error) {

	quote, err := s.calculator.Quote(req)
	if err != nil {
		return domain.QuoteResponse{}, err
	}

	id := uuid.NewString()
	response := domain.QuoteResponse{
		QuoteID:                      id,
		DistanceAU:                   quote.DistanceAU,
		EarthTravelTimeDays:          quote.EarthTravelTimeDays,
		ShipTravelTimeDays:           quote.ShipTravelTimeDays,
		TimeDilationFactor:           quote.TimeDilationFactor,
		EffectiveInterestRatePercent: quote.EffectiveInterestRatePercent,
		TotalCost:                    quote.TotalCost,
		ShipSpeedRatio:               quote.ShipSpeedRatio,
	}

	// Guardar la cotización (no crítico si falla)
	record := domain.NewQuoteRecord(id, req, quote, s.now().UTC())
	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.WithError(err).WithField("quote_id", id).Warn("Failed to save trade quote")
	}

	if explain && s.explainer != nil {
		response.Explanation = s.explainer.ExplainQuote(ctx, req, quote)
	}

	s.logger.WithFields(logrus.Fields{
		"quote_id":    id,
		"source":      req.SourceBody,
		"destination": req.DestinationBody,
		"payment":     req.PaymentType,
		"total_cost":  quote.TotalCost,
	}).Debug("Trade quote computed")

	return response, nil
}

// Recent returns the most recently stored quotes, newest first.
func (s *TradeService) Recent(ctx context.Context, limit int) ([]domain.QuoteRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentQuotes
	}
	if limit > MaxRecentQuotes {
		limit = MaxRecentQuotes
	}
	return s.repo.Recent(ctx, limit)
}

func (s *TradeService) ShipSpeedRatio() float64 {
	return s.calculator.ShipSpeedRatio()
}
