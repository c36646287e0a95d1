package analytics

import (
	"time"

	"shoplens/pkg/contracts/domain"
)

func ts(value string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		panic(err)
	}
	return t
}

func tsPtr(value string) *time.Time {
	t := ts(value)
	return &t
}

func intPtr(v int) *int {
	return &v
}

// fixtureRecords models three orders: two in January 2023 worth 150 in total
// and one two-item order in February worth 200. o2 arrived late; o3 is still
// in transit and unreviewed, and its first item lacks a category.
func fixtureRecords() []domain.SalesRecord {
	return []domain.SalesRecord{
		{
			OrderID:           "o1",
			ItemSeq:           1,
			CustomerID:        "c1",
			CustomerState:     "SP",
			Status:            domain.OrderStatusDelivered,
			PurchasedAt:       ts("2023-01-05 10:00:00"),
			DeliveredAt:       tsPtr("2023-01-10 09:00:00"),
			EstimatedDelivery: tsPtr("2023-01-12 00:00:00"),
			ProductID:         "p1",
			Category:          "toys",
			Price:             90,
			FreightValue:      10,
			PaymentMethod:     "credit_card",
			PaymentValue:      100,
			ReviewScore:       intPtr(5),
		},
		{
			OrderID:           "o2",
			ItemSeq:           1,
			CustomerID:        "c2",
			CustomerState:     "RJ",
			Status:            domain.OrderStatusDelivered,
			PurchasedAt:       ts("2023-01-20 15:30:00"),
			DeliveredAt:       tsPtr("2023-01-25 11:00:00"),
			EstimatedDelivery: tsPtr("2023-01-24 00:00:00"),
			ProductID:         "p2",
			Category:          "toys",
			Price:             45,
			FreightValue:      5,
			PaymentMethod:     "boleto",
			PaymentValue:      50,
			ReviewScore:       intPtr(4),
		},
		{
			OrderID:       "o3",
			ItemSeq:       1,
			CustomerID:    "c1",
			CustomerState: "SP",
			Status:        domain.OrderStatusShipped,
			PurchasedAt:   ts("2023-02-03 08:00:00"),
			ProductID:     "p3",
			Category:      "",
			Price:         120,
			FreightValue:  20,
			PaymentMethod: "credit_card",
			PaymentValue:  200,
		},
		{
			OrderID:       "o3",
			ItemSeq:       2,
			CustomerID:    "c1",
			CustomerState: "SP",
			Status:        domain.OrderStatusShipped,
			PurchasedAt:   ts("2023-02-03 08:00:00"),
			ProductID:     "p4",
			Category:      "garden",
			Price:         55,
			FreightValue:  5,
			PaymentMethod: "credit_card",
			PaymentValue:  200,
		},
	}
}
