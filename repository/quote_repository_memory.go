package repository

import (
	"context"
	"sync"

	"interstellar-trade/domain"
)

// QuoteRepositoryMemory is an in-memory implementation of QuoteRepository.
type QuoteRepositoryMemory struct {
	mu   sync.RWMutex
	data []domain.QuoteRecord
}

// NewQuoteRepositoryMemory creates a new in-memory quote repository.
func NewQuoteRepositoryMemory() *QuoteRepositoryMemory {
	return &QuoteRepositoryMemory{
		data: []domain.QuoteRecord{},
	}
}

// Save stores the quote in memory.
func (r *QuoteRepositoryMemory) Save(
	ctx context.Context,
	record domain.QuoteRecord,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, record)
	return nil
}

// Recent returns up to limit quotes, newest first.
func (r *QuoteRepositoryMemory) Recent(
	ctx context.Context,
	limit int,
) ([]domain.QuoteRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.data) {
		limit = len(r.data)
	}
	out := make([]domain.QuoteRecord, 0, limit)
	for i := len(r.data) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.data[i])
	}
	return out, nil
}
