package repository

import (
	"context"

	"interstellar-trade/domain"
)

type QuoteRepository interface {
	Save(ctx context.Context, record domain.QuoteRecord) error
	Recent(ctx context.Context, limit int) ([]domain.QuoteRecord, error)
}
