package domain

// UnknownCategory is the sentinel category assigned to products whose category
// label is missing in the raw data. Such products are never dropped; they rank
// under this label in the category aggregates.
const UnknownCategory = "unknown"

// Product represents a catalog product. Physical dimensions are zero when the
// raw file leaves them blank.
type Product struct {
	ID       string  `json:"product_id" csv:"product_id"`
	Category string  `json:"product_category" csv:"product_category"`
	WeightG  float64 `json:"product_weight_g,omitempty" csv:"product_weight_g"`
	LengthCm float64 `json:"product_length_cm,omitempty" csv:"product_length_cm"`
	HeightCm float64 `json:"product_height_cm,omitempty" csv:"product_height_cm"`
	WidthCm  float64 `json:"product_width_cm,omitempty" csv:"product_width_cm"`
}

// CategoryOrUnknown returns the product category, substituting the sentinel
// when the label is missing.
func (p Product) CategoryOrUnknown() string {
	if p.Category == "" {
		return UnknownCategory
	}
	return p.Category
}
