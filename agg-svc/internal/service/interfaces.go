package service

import (
	"context"
	"time"

	"tableside/agg-svc/internal/domain"
	"tableside/agg-svc/internal/storage"
)

type StoreInterface interface {
	RecordSale(total float64, at time.Time) error
	BumpPopularity(productID, quantity int, at time.Time) error
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessOrder(event domain.OrderEvent)
}

var _ StoreInterface = (*storage.Store)(nil)
var _ ConsumerInterface = (*Consumer)(nil)
