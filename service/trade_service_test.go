package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"interstellar-trade/domain"
	"interstellar-trade/repository"
)

type MockQuoteRepository struct {
	SaveCalled bool
	ForceError bool
	Saved      []domain.QuoteRecord
}

func (m *MockQuoteRepository) Save(ctx context.Context, record domain.QuoteRecord) error {
	m.SaveCalled = true
	if m.ForceError {
		return errors.New("save error")
	}
	m.Saved = append(m.Saved, record)
	return nil
}

func (m *MockQuoteRepository) Recent(ctx context.Context, limit int) ([]domain.QuoteRecord, error) {
	return m.Saved, nil
}

type stubExplainer struct {
	calls int
}

func (s *stubExplainer) ExplainQuote(ctx context.Context, req domain.TradeRequest, quote domain.TradeQuote) string {
	s.calls++
	return "explained " + req.SourceBody + " to " + req.DestinationBody
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestTradeService(t *testing.T, repo repository.QuoteRepository, explainer QuoteExplainer) *TradeService {
	t.Helper()
	return NewTradeService(newTestCalculator(t), repo, explainer, quietLogger())
}

func TestTradeService_Quote(t *testing.T) {

	mockRepo := &MockQuoteRepository{}
	service := newTestTradeService(t, mockRepo, nil)

	req := domain.TradeRequest{
		SourceBody:      "Earth",
		DestinationBody: "Proxima Centauri b",
		Quantity:        2,
		PaymentType:     domain.PaymentUpfront,
	}

	result, err := service.Quote(context.Background(), req, false)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.QuoteID == "" {
		t.Errorf("expected a quote id")
	}

	if result.EffectiveInterestRatePercent != 695.0207 {
		t.Errorf("expected 695.0207%%, got %v", result.EffectiveInterestRatePercent)
	}

	if !mockRepo.SaveCalled {
		t.Errorf("expected repository Save to be called")
	}

	if len(mockRepo.Saved) != 1 || mockRepo.Saved[0].ID != result.QuoteID {
		t.Fatalf("expected the stored record to carry the quote id")
	}

	if mockRepo.Saved[0].TotalCost != result.TotalCost {
		t.Errorf("expected stored cost %.2f, got %.2f", result.TotalCost, mockRepo.Saved[0].TotalCost)
	}
}

func TestTradeService_Quote_RepositoryError(t *testing.T) {

	mockRepo := &MockQuoteRepository{ForceError: true}
	service := newTestTradeService(t, mockRepo, nil)

	req := domain.TradeRequest{
		SourceBody:      "Earth",
		DestinationBody: "Mars",
		Quantity:        1,
		PaymentType:     domain.PaymentOnDelivery,
	}

	_, err := service.Quote(context.Background(), req, false)

	// el error del repositorio no debe romper la cotización
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !mockRepo.SaveCalled {
		t.Errorf("expected Save to be called")
	}
}

func TestTradeService_Quote_InvalidRequestNotSaved(t *testing.T) {

	mockRepo := &MockQuoteRepository{}
	service := newTestTradeService(t, mockRepo, nil)

	req := domain.TradeRequest{
		SourceBody:      "Earth",
		DestinationBody: "Earth",
		Quantity:        1,
		PaymentType:     domain.PaymentUpfront,
	}

	_, err := service.Quote(context.Background(), req, false)

	if !errors.Is(err, &domain.TradeError{Kind: domain.KindSameBody}) {
		t.Fatalf("expected SameBodyError, got %v", err)
	}

	if mockRepo.SaveCalled {
		t.Errorf("expected Save not to be called")
	}
}

func TestTradeService_Quote_Explain(t *testing.T) {

	explainer := &stubExplainer{}
	service := newTestTradeService(t, &MockQuoteRepository{}, explainer)

	req := domain.TradeRequest{
		SourceBody:      "Earth",
		DestinationBody: "Mars",
		Quantity:        1,
		PaymentType:     domain.PaymentUpfront,
	}

	result, err := service.Quote(context.Background(), req, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Explanation != "" || explainer.calls != 0 {
		t.Errorf("expected no explanation when not requested")
	}

	result, err = service.Quote(context.Background(), req, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Explanation != "explained Earth to Mars" {
		t.Errorf("unexpected explanation %q", result.Explanation)
	}
}

func TestTradeService_Recent(t *testing.T) {

	repo := repository.NewQuoteRepositoryMemory()
	service := newTestTradeService(t, repo, nil)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	service.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, dst := range []string{"Mars", "Jupiter", "Saturn"} {
		_, err := service.Quote(context.Background(), domain.TradeRequest{
			SourceBody:      "Earth",
			DestinationBody: dst,
			Quantity:        1,
			PaymentType:     domain.PaymentUpfront,
		}, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	recent, err := service.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(recent) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(recent))
	}

	if recent[0].DestinationBody != "Saturn" || recent[1].DestinationBody != "Jupiter" {
		t.Errorf("expected newest first, got %s, %s", recent[0].DestinationBody, recent[1].DestinationBody)
	}

	all, _ := service.Recent(context.Background(), 0)
	if len(all) != 3 {
		t.Errorf("expected default limit to return all 3, got %d", len(all))
	}
}
