package domain

import (
	"time"
)

// Review represents a customer review of an order. Score is the 1-5 ordinal
// rating; the free-text fields are frequently empty.
type Review struct {
	ID        string    `json:"review_id" csv:"review_id"`
	OrderID   string    `json:"order_id" csv:"order_id"`
	Score     int       `json:"review_score" csv:"review_score"`
	Title     string    `json:"review_comment_title,omitempty" csv:"review_comment_title"`
	Message   string    `json:"review_comment_message,omitempty" csv:"review_comment_message"`
	CreatedAt time.Time `json:"review_creation_date" csv:"review_creation_date"`
}
