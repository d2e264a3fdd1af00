package insights

import (
	"fmt"

	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/shopspring/decimal"
)

// SupplierProfile describes one supplier within the filtered set.
type SupplierProfile struct {
	TotalAmount      decimal.Decimal     `json:"total_amount"`
	AverageAmount    decimal.NullDecimal `json:"average_amount"`
	Name             string              `json:"name"`
	SupplierID       string              `json:"supplier_id"`
	ABN              string              `json:"abn"`
	Country          string              `json:"country"`
	ServiceCategory  string              `json:"service_category"`
	SupplierType     string              `json:"supplier_type"`
	ContactName      string              `json:"contact_name"`
	ContactEmail     string              `json:"contact_email"`
	MonthlyLate      []MonthlyPoint      `json:"monthly_late"`
	RiskDistribution []RiskCount         `json:"risk_distribution"`
	Invoices         []model.Invoice     `json:"-"`
	TermsDays        int                 `json:"terms_days"`
	InvoiceCount     int                 `json:"invoice_count"`
}

// Contact joins the contact name and email for display.
func (p SupplierProfile) Contact() string {
	switch {
	case p.ContactName != "" && p.ContactEmail != "":
		return fmt.Sprintf("%s (%s)", p.ContactName, p.ContactEmail)
	case p.ContactEmail != "":
		return p.ContactEmail
	default:
		return p.ContactName
	}
}

// SupplierNames returns the sorted unique non-empty supplier names.
func SupplierNames(invoices []model.Invoice) []string {
	return uniqueSorted(invoices, func(inv model.Invoice) (string, bool) {
		return inv.SupplierName, true
	})
}

// ComputeSupplierProfile builds the profile of the named supplier. The info
// fields come from the supplier's first invoice.
func ComputeSupplierProfile(invoices []model.Invoice, name string) (*SupplierProfile, error) {
	var mine []model.Invoice
	for _, inv := range invoices {
		if inv.SupplierName == name && name != "" {
			mine = append(mine, inv)
		}
	}
	if len(mine) == 0 {
		return nil, fmt.Errorf("%w: %q", common.ErrSupplierNotFound, name)
	}

	first := mine[0]
	return &SupplierProfile{
		Name:             first.SupplierName,
		SupplierID:       first.SupplierID,
		ABN:              first.ABN,
		Country:          first.Country,
		ServiceCategory:  first.ServiceCategory,
		SupplierType:     first.SupplierType,
		ContactName:      first.ContactName,
		ContactEmail:     first.ContactEmail,
		TermsDays:        first.TermsDays,
		InvoiceCount:     len(mine),
		TotalAmount:      sumAmounts(mine),
		AverageAmount:    averageAmount(mine),
		MonthlyLate:      monthlySeries(mine),
		RiskDistribution: riskDistribution(mine),
		Invoices:         mine,
	}, nil
}
