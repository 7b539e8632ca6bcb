package service

import (
	"context"
	"encoding/json"
	"log"

	"tableside/agg-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	Reader *kafka.Reader
	Store  StoreInterface
}

func NewConsumer(reader *kafka.Reader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Aggregation Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		if event.Type == domain.EventOrderGenerated {
			c.ProcessOrder(event)
		}
	}
}

func (c *Consumer) ProcessOrder(event domain.OrderEvent) {
	if event.Type != domain.EventOrderGenerated {
		return
	}
	log.Printf("Processing order: OrderID=%d, PartyID=%d, Total=%.2f",
		event.OrderID, event.PartyID, event.Total)

	if err := c.Store.RecordSale(event.Total, event.Timestamp); err != nil {
		log.Printf("Error recording sale: %v", err)
		return
	}

	for _, item := range event.Items {
		if err := c.Store.BumpPopularity(item.ProductID, item.Quantity, event.Timestamp); err != nil {
			log.Printf("Error bumping popularity for product %d: %v", item.ProductID, err)
			return
		}
	}

	log.Printf("Successfully processed order %d", event.OrderID)
}
