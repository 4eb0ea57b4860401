package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/onearthlouis/stock-radar/internal/domain"
)

// Fetcher retrieves the two pre-computed dashboard documents. The two
// fetches are independent: one failing never implies anything about the
// other.
type Fetcher interface {
	FetchLatest(ctx context.Context) (*domain.FeedDocument, error)
	FetchHotTopics(ctx context.Context) (*domain.HotTopicsDocument, error)
}
