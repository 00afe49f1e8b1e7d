package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	"interstellar-trade/domain"
	"interstellar-trade/repository"
)

var (
	ErrEmptyQuestion   = errors.New("question is required")
	ErrQuestionTooLong = fmt.Errorf("question exceeds %d characters", MaxQuestionLength)
)

const advisorSystemPrompt = "You are an expert in interstellar economics and special relativity. " +
	"You answer questions about interstellar trade clearly and accurately, grounding your answers in " +
	"Paul Krugman's Theory of Interstellar Trade (1978) and in the reference passages you are given. " +
	"Keep answers to a few short paragraphs."

type AdvisorConfig struct {
	APIKey   string
	APIURL   string
	Model    string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// AdvisorService answers free-text questions about interstellar trade. When
// an API key is configured it asks a chat-completions model, using knowledge
// base passages as context; otherwise, or when the call fails, it answers
// straight from the knowledge base.
type AdvisorService struct {
	kb         *KnowledgeBase
	cache      repository.CacheRepository
	cacheTTL   time.Duration
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
	logger     logrus.FieldLogger
	now        func() time.Time
}

type OpenAIRequest struct {
	Model     string               `json:"model"`
	Messages  []domain.ChatMessage `json:"messages"`
	MaxTokens int                  `json:"max_tokens,omitempty"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message domain.ChatMessage `json:"message"`
	} `json:"choices"`
}

func NewAdvisorService(
	cfg AdvisorConfig,
	kb *KnowledgeBase,
	cache repository.CacheRepository,
	logger logrus.FieldLogger,
) *AdvisorService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AdvisorService{
		kb:       kb,
		cache:    cache,
		cacheTTL: cfg.CacheTTL,
		apiKey:   cfg.APIKey,
		apiURL:   cfg.APIURL,
		model:    cfg.Model,
		enabled:  cfg.APIKey != "" && cfg.APIURL != "",
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
		now:    time.Now,
	}
}

func (s *AdvisorService) Enabled() bool {
	return s.enabled
}

// Search exposes the knowledge base passages for a question.
func (s *AdvisorService) Search(question string, limit int) ([]domain.Passage, error) {
	question, err := validateQuestion(question)
	if err != nil {
		return nil, err
	}
	return s.kb.Search(question, limit), nil
}

// Ask answers a question. Answers are cached by normalized question.
func (s *AdvisorService) Ask(ctx context.Context, question string) (domain.Answer, error) {
	question, err := validateQuestion(question)
	if err != nil {
		return domain.Answer{}, err
	}

	key := cacheKey("advisor", normalizeQuestion(question))
	if cached, ok := s.cache.Get(ctx, key); ok {
		var answer domain.Answer
		if err := json.Unmarshal([]byte(cached), &answer); err == nil {
			return answer, nil
		}
		s.logger.WithField("key", key).Warn("Discarding undecodable cached answer")
	}

	passages := s.kb.Search(question, 3)
	answer := domain.Answer{
		Question:   question,
		Content:    joinPassages(passages),
		Sources:    passages,
		AnsweredAt: s.now().UTC(),
	}

	if s.enabled {
		prompt := fmt.Sprintf("REFERENCE PASSAGES:\n%s\n\nQUESTION: %s", formatPassages(passages), question)
		content, err := s.callLLM(ctx, prompt)
		if err != nil {
			s.logger.WithError(err).Warn("Error calling AI service for question, using knowledge base")
		} else {
			answer.Content = content
			answer.Generated = true
		}
	}

	if encoded, err := json.Marshal(answer); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), s.cacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache answer")
		}
	}

	return answer, nil
}

// ExplainQuote describes a computed quote in plain language. It never fails:
// if the model is unavailable the template text is returned as is.
func (s *AdvisorService) ExplainQuote(
	ctx context.Context,
	req domain.TradeRequest,
	quote domain.TradeQuote,
) string {
	explanation := quoteNarrative(req, quote)
	if !s.enabled {
		return explanation
	}

	prompt := fmt.Sprintf(`Rewrite this interstellar trade calculation as a short, friendly explanation for a trader.
Keep every number exactly as given.

%s`, explanation)

	content, err := s.callLLM(ctx, prompt)
	if err != nil {
		s.logger.WithError(err).Warn("Error calling AI service for quote explanation")
		return explanation
	}
	return content
}

func (s *AdvisorService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: s.model,
		Messages: []domain.ChatMessage{
			{
				Role:    "system",
				Content: advisorSystemPrompt,
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 400,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}

	if len(openAIResp.Choices) == 0 || strings.TrimSpace(openAIResp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("no response from AI")
	}

	return strings.TrimSpace(openAIResp.Choices[0].Message.Content), nil
}

func quoteNarrative(req domain.TradeRequest, quote domain.TradeQuote) string {
	distanceMillionKm := quote.DistanceAU * AUToKm / 1e6
	shipSpeedKms := SpeedOfLightKmPerSec * quote.ShipSpeedRatio

	var b strings.Builder
	fmt.Fprintf(&b, "Interstellar Trade Calculation Analysis: %s to %s\n\n", req.SourceBody, req.DestinationBody)

	b.WriteString("DISTANCE AND TRAVEL TIME\n")
	fmt.Fprintf(&b, "- Distance: %.2f AU (%.0f million km)\n", quote.DistanceAU, distanceMillionKm)
	fmt.Fprintf(&b, "- Ship velocity: %g%% of light speed (%.0f km/s)\n", quote.ShipSpeedRatio*100, shipSpeedKms)
	fmt.Fprintf(&b, "- Earth observer time: %.2f days\n", quote.EarthTravelTimeDays)
	fmt.Fprintf(&b, "- Ship crew time: %.2f days\n\n", quote.ShipTravelTimeDays)

	b.WriteString("RELATIVISTIC EFFECTS\n")
	fmt.Fprintf(&b, "- Time dilation factor (gamma): %.4f\n", quote.TimeDilationFactor)
	fmt.Fprintf(&b, "- For every day aboard the ship, %.4f days pass on Earth\n\n", quote.TimeDilationFactor)

	b.WriteString("ECONOMIC IMPLICATIONS\n")
	fmt.Fprintf(&b, "- Base annual interest rate: %g%%\n", BaseAnnualInterestRate*100)
	fmt.Fprintf(&b, "- Effective interest rate: %.4f%%\n", quote.EffectiveInterestRatePercent)
	fmt.Fprintf(&b, "- Total cost for %d unit(s) of %s: %.2f\n\n", max(1, req.Quantity), goodsLabel(req.GoodsDescription), quote.TotalCost)

	if req.PaymentType == domain.PaymentUpfront {
		b.WriteString("Upfront payment: the money could have been invested on Earth during the trip, ")
		fmt.Fprintf(&b, "so interest compounds over Earth time (%.2f days).", quote.EarthTravelTimeDays)
	} else {
		b.WriteString("Payment on delivery: the seller waits longer because of time dilation, ")
		fmt.Fprintf(&b, "so interest compounds over dilated time (%.2f days).",
			quote.EarthTravelTimeDays*quote.TimeDilationFactor)
	}
	return b.String()
}

func goodsLabel(goods string) string {
	if strings.TrimSpace(goods) == "" {
		return "goods"
	}
	return goods
}

func validateQuestion(question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}
	if len(question) > MaxQuestionLength {
		return "", ErrQuestionTooLong
	}
	return question, nil
}

func cacheKey(prefix, text string) string {
	return prefix + ":" + strconv.FormatUint(xxhash.Sum64String(text), 16)
}

func joinPassages(passages []domain.Passage) string {
	parts := make([]string, 0, len(passages))
	for _, p := range passages {
		parts = append(parts, p.Content)
	}
	return strings.Join(parts, "\n\n")
}

func formatPassages(passages []domain.Passage) string {
	var b strings.Builder
	for i, p := range passages {
		fmt.Fprintf(&b, "[%d] (%s) %s\n", i+1, p.Source, p.Content)
	}
	return b.String()
}
