package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/domain"
	pkgkafka "github.com/KeHamTruyen/SoCo-DATN-sub000/pkg/kafka"
)

// Kafka topics for cart and checkout domain events.
const (
	TopicCartUpdated = "soco.cart.updated"
	TopicCartCleared = "soco.cart.cleared"
	TopicOrderPlaced = "soco.order.placed"
)

const (
	AggregateTypeCart  = "cart"
	AggregateTypeOrder = "order"

	SourceCommerceEngine = "commerce-engine"
)

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	ShopperID string         `json:"shopper_id"`
	Items     []CartItemData `json:"items"`
	ItemCount int            `json:"item_count"`
	Subtotal  int64          `json:"subtotal"`
}

// CartItemData is the line-item payload within cart events.
type CartItemData struct {
	ProductID string            `json:"product_id"`
	Title     string            `json:"title"`
	Price     int64             `json:"price"`
	Quantity  int               `json:"quantity"`
	Selection map[string]string `json:"selected_variant,omitempty"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	ShopperID string `json:"shopper_id"`
}

// OrderPlacedData is the payload for an order.placed event, published after
// the order collaborator has confirmed the submission.
type OrderPlacedData struct {
	OrderID   string `json:"order_id"`
	ShopperID string `json:"shopper_id"`
	ItemCount int    `json:"item_count"`
	Total     int64  `json:"total"`
	Voucher   string `json:"voucher,omitempty"`
}

// Producer publishes cart and checkout domain events to Kafka. Publishing is
// best effort: callers log failures and carry on.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates an event producer for the commerce engine.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, logger: logger}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	items := make([]CartItemData, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = CartItemData{
			ProductID: item.Product.ID,
			Title:     item.Product.Title,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
			Selection: item.Selection,
		}
	}

	data := CartUpdatedData{
		ShopperID: cart.ShopperID,
		Items:     items,
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.ShopperID, AggregateTypeCart, SourceCommerceEngine, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("shopper_id", cart.ShopperID),
		slog.Int("item_count", cart.ItemCount()),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, shopperID string) error {
	event, err := pkgkafka.NewEvent(TopicCartCleared, shopperID, AggregateTypeCart, SourceCommerceEngine, CartClearedData{ShopperID: shopperID})
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	return nil
}

// PublishOrderPlaced publishes an order.placed event. voucherCode is empty
// when no voucher was applied.
func (p *Producer) PublishOrderPlaced(ctx context.Context, orderID string, draft *domain.OrderDraft, voucherCode string) error {
	data := OrderPlacedData{
		OrderID:   orderID,
		ShopperID: draft.ShopperID,
		ItemCount: len(draft.Items),
		Total:     draft.Total,
		Voucher:   voucherCode,
	}

	event, err := pkgkafka.NewEvent(TopicOrderPlaced, draft.ShopperID, AggregateTypeOrder, SourceCommerceEngine, data)
	if err != nil {
		return fmt.Errorf("create order.placed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderPlaced, event); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.placed event",
		slog.String("order_id", orderID),
		slog.String("shopper_id", draft.ShopperID),
	)

	return nil
}
