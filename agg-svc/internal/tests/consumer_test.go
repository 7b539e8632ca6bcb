package tests

import (
	"errors"
	"testing"
	"time"

	"tableside/agg-svc/internal/domain"
	"tableside/agg-svc/internal/mocks"
	"tableside/agg-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

func TestConsumer_ProcessOrder(t *testing.T) {
	ts := time.Date(2026, 8, 28, 13, 15, 0, 0, time.UTC)

	tests := []struct {
		name           string
		inputEvent     domain.OrderEvent
		setupMockStore func(*mocks.StoreInterface)
	}{
		{
			name: "success",
			inputEvent: domain.OrderEvent{
				Type:      domain.EventOrderGenerated,
				OrderID:   500,
				PartyID:   42,
				Total:     20.0,
				Timestamp: ts,
				Items: []domain.OrderEventItem{
					{ProductID: 11, Quantity: 2, Price: 8.5},
					{ProductID: 12, Quantity: 1, Price: 3.0},
				},
			},
			setupMockStore: func(store *mocks.StoreInterface) {
				store.On("RecordSale", 20.0, ts).Return(nil)
				store.On("BumpPopularity", 11, 2, ts).Return(nil)
				store.On("BumpPopularity", 12, 1, ts).Return(nil)
			},
		},
		{
			name: "RecordSale error stops processing",
			inputEvent: domain.OrderEvent{
				Type:      domain.EventOrderGenerated,
				OrderID:   500,
				Total:     20.0,
				Timestamp: ts,
				Items:     []domain.OrderEventItem{{ProductID: 11, Quantity: 2}},
			},
			setupMockStore: func(store *mocks.StoreInterface) {
				store.On("RecordSale", 20.0, ts).Return(errors.New("redis error"))
			},
		},
		{
			name: "BumpPopularity error stops remaining items",
			inputEvent: domain.OrderEvent{
				Type:      domain.EventOrderGenerated,
				OrderID:   500,
				Total:     20.0,
				Timestamp: ts,
				Items: []domain.OrderEventItem{
					{ProductID: 11, Quantity: 2},
					{ProductID: 12, Quantity: 1},
				},
			},
			setupMockStore: func(store *mocks.StoreInterface) {
				store.On("RecordSale", 20.0, ts).Return(nil)
				store.On("BumpPopularity", 11, 2, ts).Return(errors.New("db connection failed"))
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStoreInterface(t)
			testCase.setupMockStore(mockStore)

			consumer := &service.Consumer{
				Store: mockStore,
			}

			consumer.ProcessOrder(testCase.inputEvent)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestConsumer_IgnoresUnknownEventType(t *testing.T) {
	mockStore := mocks.NewStoreInterface(t)
	consumer := &service.Consumer{
		Store: mockStore,
	}

	consumer.ProcessOrder(domain.OrderEvent{
		Type:    "order_cancelled",
		OrderID: 500,
	})

	mockStore.AssertNotCalled(t, "RecordSale", mock.Anything, mock.Anything)
	mockStore.AssertNotCalled(t, "BumpPopularity", mock.Anything, mock.Anything, mock.Anything)
}
