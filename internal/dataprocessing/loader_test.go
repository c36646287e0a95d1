package dataprocessing

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoplens/internal/errors"
	"shoplens/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// writeRawFixtures writes a small but complete set of raw entity files and
// returns their Sources. Three orders: o1 (two items, delivered late), o2
// (delivered on time, no review), o3 (not yet delivered, product without a
// category).
func writeRawFixtures(t *testing.T) Sources {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		OrdersFile: `order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,order_delivered_customer_date,order_estimated_delivery_date
o1,c1,delivered,2023-01-01 10:00:00,2023-01-01 10:12:00,2023-01-10 12:00:00,2023-01-08 00:00:00
o2,c2,delivered,2023-01-01 11:00:00,2023-01-01 11:30:00,2023-01-05 09:00:00,2023-01-08 00:00:00
o3,c1,shipped,2023-02-15 08:30:00,,,2023-02-25 00:00:00
`,
		ItemsFile: `order_id,order_item_id,product_id,price,freight_value
o1,1,p1,80.00,20.00
o1,2,p2,40.00,10.00
o2,1,p1,45.00,5.00
o3,1,p3,180.00,20.00
`,
		ProductsFile: `product_id,product_category_name,product_weight_g
p1,toys,500
p2,housewares,1200
p3,,300
`,
		CustomersFile: `customer_id,customer_city,customer_state
c1,sao paulo,SP
c2,rio de janeiro,RJ
`,
		PaymentsFile: `order_id,payment_sequential,payment_type,payment_installments,payment_value
o1,1,credit_card,3,120.00
o1,2,voucher,1,30.00
o2,1,boleto,1,50.00
o3,1,credit_card,5,200.00
`,
		ReviewsFile: `review_id,order_id,review_score,review_creation_date
r1,o1,4,2023-01-11 00:00:00
r2,o3,5,2023-02-20 00:00:00
`,
	}

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	return DefaultSources(dir)
}

func TestLoader_Load(t *testing.T) {
	loader := NewLoader(testLogger())

	tables, stats, err := loader.Load(context.Background(), writeRawFixtures(t))
	require.NoError(t, err)

	assert.Len(t, tables.Orders, 3)
	assert.Len(t, tables.Items, 4)
	assert.Len(t, tables.Products, 3)
	assert.Len(t, tables.Customers, 2)
	assert.Len(t, tables.Payments, 4)
	assert.Len(t, tables.Reviews, 2)
	assert.Equal(t, 0, stats.DroppedBadTimestamp)

	// missing category is filled with the sentinel at load time
	assert.Equal(t, domain.UnknownCategory, tables.Products[2].Category)

	// optional approval and delivery dates absent on o3
	assert.Nil(t, tables.Orders[2].ApprovedAt)
	assert.Nil(t, tables.Orders[2].DeliveredAt)
	require.NotNil(t, tables.Orders[0].ApprovedAt)
	require.NotNil(t, tables.Orders[0].DeliveredAt)
}

func TestLoader_MissingFileIsDataLoadError(t *testing.T) {
	loader := NewLoader(testLogger())
	src := writeRawFixtures(t)
	src.Orders = filepath.Join(t.TempDir(), "nope.csv")

	_, _, err := loader.Load(context.Background(), src)
	require.Error(t, err)
	assert.True(t, errors.IsDataLoad(err))

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, src.Orders, appErr.Context["path"])
}

func TestLoader_MissingRequiredColumn(t *testing.T) {
	dir := t.TempDir()
	src := writeRawFixtures(t)
	src.Orders = filepath.Join(dir, "orders.csv")
	require.NoError(t, os.WriteFile(src.Orders,
		[]byte("order_id,order_status\no1,delivered\n"), 0644))

	loader := NewLoader(testLogger())
	_, _, err := loader.Load(context.Background(), src)
	require.Error(t, err)
	assert.True(t, errors.IsDataLoad(err))
	assert.Contains(t, err.Error(), "order_purchase_timestamp")
}

func TestLoader_BadTimestampRowsDroppedAndCounted(t *testing.T) {
	dir := t.TempDir()
	src := writeRawFixtures(t)
	src.Orders = filepath.Join(dir, "orders.csv")
	require.NoError(t, os.WriteFile(src.Orders,
		[]byte(`order_id,customer_id,order_status,order_purchase_timestamp,order_delivered_customer_date,order_estimated_delivery_date
o1,c1,delivered,not-a-date,,
o2,c2,delivered,2023-01-01 11:00:00,,
`), 0644))

	loader := NewLoader(testLogger())
	tables, stats, err := loader.Load(context.Background(), src)
	require.NoError(t, err)

	assert.Len(t, tables.Orders, 1)
	assert.Equal(t, "o2", tables.Orders[0].ID)
	assert.Equal(t, 1, stats.DroppedBadTimestamp)
}

func TestLoader_MalformedNumericRowsDropped(t *testing.T) {
	dir := t.TempDir()
	src := writeRawFixtures(t)
	src.Items = filepath.Join(dir, "order_items.csv")
	require.NoError(t, os.WriteFile(src.Items,
		[]byte(`order_id,order_item_id,product_id,price,freight_value
o1,1,p1,eighty,20.00
o1,2,p2,40.00,10.00
`), 0644))

	loader := NewLoader(testLogger())
	tables, stats, err := loader.Load(context.Background(), src)
	require.NoError(t, err)

	assert.Len(t, tables.Items, 1)
	assert.Equal(t, 1, stats.DroppedBadNumber)
}

func TestLoader_ReviewScoreOutOfRangeDropped(t *testing.T) {
	dir := t.TempDir()
	src := writeRawFixtures(t)
	src.Reviews = filepath.Join(dir, "order_reviews.csv")
	require.NoError(t, os.WriteFile(src.Reviews,
		[]byte(`review_id,order_id,review_score
r1,o1,9
r2,o2,3
`), 0644))

	loader := NewLoader(testLogger())
	tables, _, err := loader.Load(context.Background(), src)
	require.NoError(t, err)

	require.Len(t, tables.Reviews, 1)
	assert.Equal(t, 3, tables.Reviews[0].Score)
}
