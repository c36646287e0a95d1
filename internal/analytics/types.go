package analytics

import (
	"time"
)

// Period selects the bucket size of the time-series rollup.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
)

// layout returns the time format that doubles as the bucket key. Both
// layouts sort chronologically as plain strings.
func (p Period) layout() string {
	if p == PeriodDay {
		return "2006-01-02"
	}
	return "2006-01"
}

// RollupPoint is one bucket of the time-series rollup.
type RollupPoint struct {
	Period        string  `json:"period"`
	OrderCount    int     `json:"order_count"`
	Revenue       float64 `json:"revenue"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

// CategoryStats summarizes one product category.
type CategoryStats struct {
	Category   string  `json:"category"`
	Revenue    float64 `json:"revenue"`
	OrderCount int     `json:"order_count"`
	ItemCount  int     `json:"item_count"`
	MinPrice   float64 `json:"min_price"`
	AvgPrice   float64 `json:"avg_price"`
	MaxPrice   float64 `json:"max_price"`
}

// CategoryRanking holds the best and worst performers plus the full table.
type CategoryRanking struct {
	Top    []CategoryStats `json:"top"`
	Bottom []CategoryStats `json:"bottom"`
	All    []CategoryStats `json:"all"`
}

// RFMEntry scores one customer by recency, frequency and monetary value.
// Values are raw: recency in whole days from the reference date, frequency
// as distinct orders, monetary as summed revenue. No quantile banding.
type RFMEntry struct {
	CustomerID  string  `json:"customer_id"`
	RecencyDays int     `json:"recency_days"`
	Frequency   int     `json:"frequency"`
	Monetary    float64 `json:"monetary"`
}

// RFMTable is the full customer segmentation table. ReferenceDate is the
// maximum purchase timestamp in the dataset plus one day.
type RFMTable struct {
	ReferenceDate time.Time  `json:"reference_date"`
	Entries       []RFMEntry `json:"entries"`
}

// DeliveryBucket is one bar of the delivery-difference histogram. DiffDays
// is actual minus estimated delivery in whole days; negative means early.
type DeliveryBucket struct {
	DiffDays int `json:"diff_days"`
	Count    int `json:"count"`
}

// DeliveryPerformance summarizes delivery punctuality over delivered orders.
// OnTimeRate is nil when no order in the selection has both dates.
type DeliveryPerformance struct {
	DeliveredOrders  int              `json:"delivered_orders"`
	OnTimeRate       *float64         `json:"on_time_rate"`
	AvgActualDays    float64          `json:"avg_actual_days"`
	AvgEstimatedDays float64          `json:"avg_estimated_days"`
	Histogram        []DeliveryBucket `json:"histogram"`
}

// PaymentStat summarizes one payment method.
type PaymentStat struct {
	Method       string  `json:"method"`
	OrderCount   int     `json:"order_count"`
	Value        float64 `json:"value"`
	RevenueShare float64 `json:"revenue_share"`
}

// ScoreCount is one bucket of the review score distribution.
type ScoreCount struct {
	Score int `json:"score"`
	Count int `json:"count"`
}

// CategoryMean is the mean review score of one category.
type CategoryMean struct {
	Category string  `json:"category"`
	Mean     float64 `json:"mean"`
}

// ReviewStats summarizes review scores. Mean is nil when the selection has
// no reviewed orders.
type ReviewStats struct {
	Distribution []ScoreCount   `json:"distribution"`
	Mean         *float64       `json:"mean"`
	ByCategory   []CategoryMean `json:"by_category"`
}

// StateCount is the distinct-customer count of one state.
type StateCount struct {
	State     string `json:"state"`
	Customers int    `json:"customers"`
}

// Overview holds the headline dashboard metrics.
type Overview struct {
	TotalOrders    int      `json:"total_orders"`
	TotalRevenue   float64  `json:"total_revenue"`
	AvgOrderValue  *float64 `json:"avg_order_value"`
	TotalCustomers int      `json:"total_customers"`
	OnTimeRate     *float64 `json:"on_time_rate"`
	AvgReviewScore *float64 `json:"avg_review_score"`
}
