package events

import (
	"context"
	"time"

	"padaria/internal/domain"
)

const (
	RoutingProductCreated = "produto.criado"
	RoutingProductDeleted = "produto.excluido"
)

// ProductEvent is the payload emitted after a product mutation.
type ProductEvent struct {
	Type       string          `json:"type"`
	ProductID  int64           `json:"id"`
	Nome       string          `json:"nome"`
	Product    *domain.Product `json:"produto,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Publisher delivers product events. Implementations must not block the
// caller for longer than the publish round trip.
type Publisher interface {
	Publish(ctx context.Context, event ProductEvent) error
	Close() error
}

// Created builds the event for a freshly inserted product.
func Created(p domain.Product) ProductEvent {
	return ProductEvent{
		Type:       RoutingProductCreated,
		ProductID:  p.ID,
		Nome:       p.Nome,
		Product:    &p,
		OccurredAt: time.Now().UTC(),
	}
}

// Deleted builds the event for a removed product.
func Deleted(id int64, nome string) ProductEvent {
	return ProductEvent{
		Type:       RoutingProductDeleted,
		ProductID:  id,
		Nome:       nome,
		OccurredAt: time.Now().UTC(),
	}
}

// Nop discards every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, ProductEvent) error { return nil }
func (Nop) Close() error                                { return nil }
