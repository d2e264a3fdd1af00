package cli

import (
	"regexp"
	"testing"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/insights"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/sachihirani/supplier-risk-dashboard/internal/testutil"
	"github.com/stretchr/testify/assert"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func TestRenderSummary(t *testing.T) {
	tests := []struct {
		name     string
		filter   insights.Filter
		contains []string
	}{
		{
			name:   "all invoices",
			filter: insights.Filter{},
			contains: []string{
				"Supplier Risk Summary",
				"As of 14 Jun 2024 · All invoices",
				"Total Invoices", "9",
				"Paid On Time", "1",
				"Paid Late", "2",
				"% Paid Late", "22.2%",
				"Bright Cleaning",
				"Duplicate ABNs",
				"High Risk (Score 3)",
				"Unpaid Invoice Categories as of 14 Jun 2024",
				"Overdue",
			},
		},
		{
			name:   "single supplier",
			filter: insights.Filter{SupplierNames: []string{"Acme Logistics"}},
			contains: []string{
				"Acme Logistics",
				"Medium Risk (Score 2)",
				"Due in 1 Week",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := insights.BuildSnapshot(testutil.StandardInvoices(), tt.filter, testutil.ReferenceDate)
			out := ansi.ReplaceAllString(RenderSummary(snap), "")
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestRenderSummary_Warnings(t *testing.T) {
	// Due three days out: no unpaid bucket, and no risk score.
	invoices := []model.Invoice{
		testutil.NewInvoice("X-1").
			Supplier("S9", "Quiet Supplies", "Vendor", "Stationery").
			Amount("10").
			Dates(testutil.Date(2024, 6, 1), testutil.Day(3), time.Time{}).
			Status("Pending", "Unpaid").
			Build(),
	}
	snap := insights.BuildSnapshot(invoices, insights.Filter{}, testutil.ReferenceDate)
	out := ansi.ReplaceAllString(RenderSummary(snap), "")

	assert.Contains(t, out, insights.NoRiskDataWarning)
	assert.Contains(t, out, insights.NoUnpaidWarning)
}
