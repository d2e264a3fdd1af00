package sheets

import (
	"testing"

	"github.com/sachihirani/supplier-risk-dashboard/internal/insights"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/sachihirani/supplier-risk-dashboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findRow returns the first row whose first cell equals label.
func findRow(t *testing.T, tab Tab, label string) []any {
	t.Helper()
	for _, row := range tab.Rows {
		if len(row) > 0 && row[0] == label {
			return row
		}
	}
	t.Fatalf("row %q not found in tab %s", label, tab.Title)
	return nil
}

func standardTabs(t *testing.T) map[string]Tab {
	t.Helper()
	snap := insights.BuildSnapshot(testutil.StandardInvoices(), insights.Filter{}, testutil.ReferenceDate)
	tabs := BuildTabs(snap)
	require.Len(t, tabs, 3)

	byTitle := make(map[string]Tab, len(tabs))
	for _, tab := range tabs {
		byTitle[tab.Title] = tab
	}
	return byTitle
}

func TestBuildTabs_Titles(t *testing.T) {
	snap := insights.BuildSnapshot(testutil.StandardInvoices(), insights.Filter{}, testutil.ReferenceDate)
	tabs := BuildTabs(snap)

	var titles []string
	for _, tab := range tabs {
		titles = append(titles, tab.Title)
	}
	assert.Equal(t, []string{TabKeyInsights, TabRiskOverview, TabToPayHub}, titles)
}

func TestBuildTabs_KeyInsights(t *testing.T) {
	tab := standardTabs(t)[TabKeyInsights]

	assert.Equal(t, "All invoices", findRow(t, tab, "Filter")[1])
	assert.Equal(t, 9, findRow(t, tab, "Total Invoices")[1])
	assert.InDelta(t, 51100.50, findRow(t, tab, "Total Invoice Amount")[1], 0.001)
	assert.Equal(t, "22.2%", findRow(t, tab, "% Paid Late")[1])
	assert.Equal(t, "$5,677.83", findRow(t, tab, "Average Invoice Amount")[1])
	assert.Equal(t, "15.5 days", findRow(t, tab, "Average Days Late")[1])

	feb := findRow(t, tab, "2024-02")
	assert.InDelta(t, 45300.0, feb[1], 0.001)
	assert.Equal(t, 2, feb[2])

	assert.Equal(t, []int{1}, tab.CurrencyColumns)
	for _, idx := range tab.SectionRows {
		require.Less(t, idx, len(tab.Rows))
		assert.Len(t, tab.Rows[idx], 1, "section rows hold only a title")
	}
}

func TestBuildTabs_RiskOverview(t *testing.T) {
	tab := standardTabs(t)[TabRiskOverview]

	assert.Equal(t, 1, findRow(t, tab, "Duplicate ABNs")[1])
	assert.Equal(t, 1, findRow(t, tab, "Duplicate Invoices")[1])
	assert.Equal(t, 1, findRow(t, tab, "High Amount Invoices > 30k")[1])
	assert.Equal(t, 2, findRow(t, tab, model.RiskHigh.Label())[1])

	assert.Equal(t, []any{"Service Category", "Contractor", "Vendor"}, findRow(t, tab, "Service Category"))
	freight := findRow(t, tab, "Freight")
	assert.Equal(t, []any{"Freight", "1.50", ""}, freight)
}

func TestBuildTabs_RiskOverviewWithoutScores(t *testing.T) {
	invoices := []model.Invoice{testutil.NewInvoice("A").Build()}
	snap := insights.BuildSnapshot(invoices, insights.Filter{}, testutil.ReferenceDate)

	tab := BuildTabs(snap)[1]
	findRow(t, tab, insights.NoRiskDataWarning)
}

func TestBuildTabs_ToPayHub(t *testing.T) {
	tab := standardTabs(t)[TabToPayHub]

	assert.Equal(t, []any{"Unpaid Invoice Categories as of 14 Jun 2024"}, tab.Rows[0])
	assert.Equal(t, 4, findRow(t, tab, model.BucketLatePayNow.Label())[1])
	assert.Equal(t, 1, findRow(t, tab, model.BucketPriority.Label())[1])

	ids := map[any]bool{}
	for _, row := range tab.Rows {
		if len(row) == 5 && row[0] != "Invoice ID" {
			ids[row[0]] = true
			assert.IsType(t, float64(0), row[3])
		}
	}
	assert.Len(t, ids, 8)
	assert.True(t, ids["INV-007"])
	assert.False(t, ids["INV-009"], "due in three days has no bucket")
}

func TestBuildTabs_ToPayHubEmpty(t *testing.T) {
	snap := insights.BuildSnapshot(nil, insights.Filter{}, testutil.ReferenceDate)

	tab := BuildTabs(snap)[2]
	require.Len(t, tab.Rows, 2)
	assert.Equal(t, []any{insights.NoUnpaidWarning}, tab.Rows[1])
}

func TestFormatRequests(t *testing.T) {
	tab := Tab{
		Title:           "T",
		Rows:            [][]any{{"Section"}, {"a", 1.0}, {"b", 2.0}},
		SectionRows:     []int{0},
		CurrencyColumns: []int{1},
	}

	requests := formatRequests(tab, 42)
	require.Len(t, requests, 3)

	bold := requests[0].RepeatCell
	require.NotNil(t, bold)
	assert.Equal(t, int64(42), bold.Range.SheetId)
	assert.True(t, bold.Cell.UserEnteredFormat.TextFormat.Bold)

	currency := requests[1].RepeatCell
	require.NotNil(t, currency)
	assert.Equal(t, int64(1), currency.Range.StartColumnIndex)
	assert.Equal(t, int64(3), currency.Range.EndRowIndex)
	assert.Equal(t, "CURRENCY", currency.Cell.UserEnteredFormat.NumberFormat.Type)

	assert.NotNil(t, requests[2].AutoResizeDimensions)
}

func TestTabRange(t *testing.T) {
	assert.Equal(t, "'To Pay Hub'!A1", tabRange(TabToPayHub, "A1"))
}
