package domain

// Customer represents a buyer and their geographic region.
type Customer struct {
	ID    string `json:"customer_id" csv:"customer_id"`
	City  string `json:"customer_city" csv:"customer_city"`
	State string `json:"customer_state" csv:"customer_state"`
}
