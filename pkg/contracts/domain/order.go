package domain

import (
	"time"
)

// Order represents a single customer order as recorded in the raw orders file.
// Timestamps are timezone-naive; optional delivery dates are nil when the order
// has not reached that stage.
type Order struct {
	ID                string      `json:"order_id" csv:"order_id"`
	CustomerID        string      `json:"customer_id" csv:"customer_id"`
	Status            OrderStatus `json:"order_status" csv:"order_status"`
	PurchasedAt       time.Time   `json:"order_purchase_timestamp" csv:"order_purchase_timestamp"`
	ApprovedAt        *time.Time  `json:"order_approved_at,omitempty" csv:"order_approved_at"`
	DeliveredAt       *time.Time  `json:"order_delivered_customer_date,omitempty" csv:"order_delivered_customer_date"`
	EstimatedDelivery *time.Time  `json:"order_estimated_delivery_date,omitempty" csv:"order_estimated_delivery_date"`
}

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusCreated     OrderStatus = "created"
	OrderStatusApproved    OrderStatus = "approved"
	OrderStatusInvoiced    OrderStatus = "invoiced"
	OrderStatusShipped     OrderStatus = "shipped"
	OrderStatusDelivered   OrderStatus = "delivered"
	OrderStatusCanceled    OrderStatus = "canceled"
	OrderStatusUnavailable OrderStatus = "unavailable"
)

// OrderItem represents one line item of an order. An order may contain several
// items; ItemSeq is the 1-based position within the order.
type OrderItem struct {
	OrderID      string  `json:"order_id" csv:"order_id"`
	ItemSeq      int     `json:"order_item_id" csv:"order_item_id"`
	ProductID    string  `json:"product_id" csv:"product_id"`
	Price        float64 `json:"price" csv:"price"`
	FreightValue float64 `json:"freight_value" csv:"freight_value"`
}

// Revenue returns the revenue contribution of the item (price plus freight).
func (i OrderItem) Revenue() float64 {
	return i.Price + i.FreightValue
}
