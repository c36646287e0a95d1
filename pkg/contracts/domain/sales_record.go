package domain

import (
	"time"
)

// SalesRecord is the denormalized row the whole analysis pipeline runs on:
// one row per order item, with order, product, customer, payment and review
// fields joined on. Unmatched joins leave the optional fields nil and the
// category at the "unknown" sentinel; rows are never dropped for a missing
// downstream match.
type SalesRecord struct {
	OrderID           string      `json:"order_id" csv:"order_id"`
	ItemSeq           int         `json:"order_item_id" csv:"order_item_id"`
	CustomerID        string      `json:"customer_id" csv:"customer_id"`
	CustomerState     string      `json:"customer_state" csv:"customer_state"`
	Status            OrderStatus `json:"order_status" csv:"order_status"`
	PurchasedAt       time.Time   `json:"order_purchase_timestamp" csv:"order_purchase_timestamp"`
	DeliveredAt       *time.Time  `json:"order_delivered_customer_date,omitempty" csv:"order_delivered_customer_date"`
	EstimatedDelivery *time.Time  `json:"order_estimated_delivery_date,omitempty" csv:"order_estimated_delivery_date"`
	ProductID         string      `json:"product_id" csv:"product_id"`
	Category          string      `json:"product_category" csv:"product_category"`
	Price             float64     `json:"price" csv:"price"`
	FreightValue      float64     `json:"freight_value" csv:"freight_value"`
	PaymentMethod     string      `json:"payment_type" csv:"payment_type"`
	PaymentInstallments int       `json:"payment_installments" csv:"payment_installments"`
	PaymentValue      float64     `json:"payment_value" csv:"payment_value"`
	ReviewScore       *int        `json:"review_score,omitempty" csv:"review_score"`
}

// Revenue returns the revenue contribution of the row (item price plus
// freight). All aggregates use this definition so that per-category totals
// reconcile with the time-series totals.
func (r SalesRecord) Revenue() float64 {
	return r.Price + r.FreightValue
}

// CategoryOrUnknown returns the category label, falling back to the
// "unknown" sentinel when the join left it empty.
func (r SalesRecord) CategoryOrUnknown() string {
	if r.Category == "" {
		return UnknownCategory
	}
	return r.Category
}

// Delivered reports whether the order behind this row reached the customer.
func (r SalesRecord) Delivered() bool {
	return r.DeliveredAt != nil
}

// Dataset is the immutable snapshot the dashboard serves. It is constructed
// once at startup and passed explicitly to the service layer; nothing mutates
// it afterwards.
type Dataset struct {
	Records  []SalesRecord `json:"records"`
	LoadedAt time.Time     `json:"loaded_at"`
	Source   string        `json:"source"`
}

// Span returns the earliest and latest purchase timestamps in the snapshot.
// ok is false for an empty dataset.
func (d *Dataset) Span() (min, max time.Time, ok bool) {
	if len(d.Records) == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max = d.Records[0].PurchasedAt, d.Records[0].PurchasedAt
	for _, r := range d.Records[1:] {
		if r.PurchasedAt.Before(min) {
			min = r.PurchasedAt
		}
		if r.PurchasedAt.After(max) {
			max = r.PurchasedAt
		}
	}
	return min, max, true
}
