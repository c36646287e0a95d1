package domain

// Payment represents one payment leg of an order. Orders may be paid in
// several legs (e.g. voucher plus credit card); Sequential is the 1-based
// position of the leg within the order.
type Payment struct {
	OrderID      string  `json:"order_id" csv:"order_id"`
	Sequential   int     `json:"payment_sequential" csv:"payment_sequential"`
	Method       string  `json:"payment_type" csv:"payment_type"`
	Installments int     `json:"payment_installments" csv:"payment_installments"`
	Value        float64 `json:"payment_value" csv:"payment_value"`
}
