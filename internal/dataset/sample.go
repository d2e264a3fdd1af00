package dataset

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/shopspring/decimal"
)

// HighAmountThreshold is the amount above which an invoice is flagged High_Amount.
var HighAmountThreshold = decimal.NewFromInt(30000)

type sampleSupplier struct {
	id       string
	name     string
	abn      string
	kind     string
	category string
	country  string
	contact  string
	email    string
	terms    int
	minAmt   int64
	maxAmt   int64
	lateRate float64
}

var sampleSuppliers = []sampleSupplier{
	{"SUP-001", "Harbour Freight Co", "51824753556", "Contractor", "Logistics", "Australia", "Mia Chen", "mia@harbourfreight.example", 30, 800, 12000, 0.20},
	{"SUP-002", "Southern Cleaning Services", "33051775556", "Vendor", "Facilities", "Australia", "Tom Walsh", "accounts@southernclean.example", 14, 300, 4000, 0.35},
	{"SUP-003", "Pixel & Print", "12004044937", "Vendor", "Marketing", "New Zealand", "Ana Ruiz", "billing@pixelprint.example", 30, 150, 6000, 0.10},
	{"SUP-004", "Summit IT Consulting", "83914571673", "Consultant", "IT Services", "Australia", "Raj Patel", "raj@summitit.example", 45, 5000, 60000, 0.25},
	{"SUP-005", "GreenLeaf Catering", "65433521356", "Vendor", "Catering", "Australia", "Lucy Park", "orders@greenleaf.example", 7, 200, 3500, 0.40},
	{"SUP-006", "Atlas Security Group", "41687142585", "Contractor", "Facilities", "Singapore", "Omar Haddad", "finance@atlassec.example", 30, 2000, 25000, 0.15},
	{"SUP-007", "Brightline Legal", "29002589460", "Consultant", "Professional Services", "United Kingdom", "Emma Stone", "ap@brightline.example", 60, 3000, 45000, 0.05},
	{"SUP-008", "Metro Office Supplies", "77123456789", "Vendor", "Office Supplies", "Australia", "Ben Ng", "sales@metrooffice.example", 30, 50, 2500, 0.30},
}

// Sample generates a deterministic demo dataset of count invoices spread over
// the year before referenceDate. Unpaid invoices are spread across every
// unpaid bucket relative to referenceDate.
func Sample(count int, referenceDate time.Time, seed uint64) []model.Invoice {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	today := model.DateOf(referenceDate)

	// Offsets from today for unpaid due dates, one per bucket plus the
	// unflagged days in between.
	unpaidOffsets := []int{-20, -3, -1, 0, 1, 2, 3, 7, 9, 15, 30}

	invoices := make([]model.Invoice, 0, count)
	for i := 0; i < count; i++ {
		s := sampleSuppliers[rng.IntN(len(sampleSuppliers))]

		cents := s.minAmt*100 + rng.Int64N((s.maxAmt-s.minAmt)*100+1)
		amount := decimal.New(cents, -2)

		inv := model.Invoice{
			ID:              fmt.Sprintf("INV-%05d", i+1),
			SupplierID:      s.id,
			SupplierName:    s.name,
			ABN:             s.abn,
			SupplierType:    s.kind,
			ServiceCategory: s.category,
			Country:         s.country,
			ContactName:     s.contact,
			ContactEmail:    s.email,
			TermsDays:       s.terms,
			Amount:          amount,
			HighAmount:      amount.GreaterThan(HighAmountThreshold),
		}

		if i%5 == 0 {
			// Unpaid, due around today.
			offset := unpaidOffsets[rng.IntN(len(unpaidOffsets))]
			inv.DueDate = today.AddDate(0, 0, offset)
			inv.InvoiceDate = inv.DueDate.AddDate(0, 0, -s.terms)
			inv.Status = "Pending"
			inv.PaymentStatus = "Unpaid"
		} else {
			inv.InvoiceDate = today.AddDate(0, 0, -30-rng.IntN(335))
			inv.DueDate = inv.InvoiceDate.AddDate(0, 0, s.terms)
			inv.PaymentDate = inv.DueDate.AddDate(0, 0, -rng.IntN(5))
			if rng.Float64() < s.lateRate {
				inv.PaymentDate = inv.DueDate.AddDate(0, 0, 1+rng.IntN(40))
				inv.PaidLate = true
			}
			inv.Status = "On Time"
			if inv.PaidLate {
				inv.Status = "Late"
			}
			inv.PaymentStatus = "Paid"
		}

		inv.DuplicateABN = rng.Float64() < 0.03
		inv.DuplicateInvoice = rng.Float64() < 0.04
		inv.RiskScore = sampleRisk(inv, rng)

		invoices = append(invoices, inv)
	}

	return invoices
}

// sampleRisk scores an invoice from its flags, leaving some unscored.
func sampleRisk(inv model.Invoice, rng *rand.Rand) model.RiskScore {
	if rng.Float64() < 0.15 {
		return model.RiskNone
	}
	points := 0
	if inv.PaidLate {
		points++
	}
	if inv.HighAmount {
		points++
	}
	if inv.DuplicateABN || inv.DuplicateInvoice {
		points += 2
	}
	switch {
	case points >= 2:
		return model.RiskHigh
	case points == 1:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}
