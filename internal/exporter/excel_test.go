package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shoplens/internal/analytics"
)

func TestExcelWriter_Write(t *testing.T) {
	avg := 175.0
	report := Report{
		Overview: analytics.Overview{TotalOrders: 2, TotalRevenue: 350, AvgOrderValue: &avg, TotalCustomers: 2},
		Monthly: []analytics.RollupPoint{
			{Period: "2023-01", OrderCount: 2, Revenue: 150, AvgOrderValue: 75},
		},
		Categories: analytics.CategoryRanking{All: []analytics.CategoryStats{
			{Category: "toys", Revenue: 100, OrderCount: 2, ItemCount: 2},
		}},
		RFM: analytics.RFMTable{Entries: []analytics.RFMEntry{
			{CustomerID: "c1", RecencyDays: 1, Frequency: 2, Monetary: 300},
		}},
		Payments: []analytics.PaymentStat{
			{Method: "credit_card", OrderCount: 2, Value: 300, RevenueShare: 1},
		},
		States: []analytics.StateCount{{State: "SP", Customers: 1}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewExcelWriter().Write(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	for _, want := range []string{"Overview", "Monthly", "Categories", "RFM", "Delivery", "Payments", "Reviews", "States"} {
		assert.Contains(t, sheets, want)
	}
	assert.NotContains(t, sheets, "Sheet1")

	period, err := f.GetCellValue("Monthly", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2023-01", period)

	customer, err := f.GetCellValue("RFM", "A2")
	require.NoError(t, err)
	assert.Equal(t, "c1", customer)
}

func TestExcelWriter_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExcelWriter().Write(&buf, Report{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue("Overview", "B2")
	require.NoError(t, err)
	assert.Equal(t, "0", value)
}
