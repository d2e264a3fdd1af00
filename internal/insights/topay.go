package insights

import (
	"cmp"
	"slices"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/shopspring/decimal"
)

// NoUnpaidWarning is reported when no invoice falls into an unpaid bucket.
const NoUnpaidWarning = "No unpaid invoice categories found."

// ToPayHub holds the unpaid triage of the third tab.
type ToPayHub struct {
	ReferenceDate time.Time              `json:"reference_date"`
	Header        string                 `json:"header"`
	Warning       string                 `json:"warning,omitempty"`
	Summary       []BucketSummary        `json:"summary"`
	Invoices      []model.FlaggedInvoice `json:"-"`
}

// BucketSummary counts the invoices in one unpaid bucket.
type BucketSummary struct {
	Bucket model.UnpaidBucket `json:"bucket"`
	Label  string             `json:"label"`
	Amount decimal.Decimal    `json:"amount"`
	Count  int                `json:"count"`
}

// ComputeToPayHub derives unpaid buckets relative to referenceDate and keeps
// only bucketed invoices.
func ComputeToPayHub(invoices []model.Invoice, referenceDate time.Time) ToPayHub {
	today := model.DateOf(referenceDate)
	hub := ToPayHub{
		ReferenceDate: today,
		Header:        "Unpaid Invoice Categories as of " + FormatHeaderDate(today),
		Summary:       []BucketSummary{},
	}

	flagged := model.DeriveUnpaidBucket(model.DeriveInvoiceFlags(invoices, today))
	byBucket := make(map[model.UnpaidBucket]*BucketSummary)
	for _, f := range flagged {
		if f.Bucket == model.BucketNone {
			continue
		}
		hub.Invoices = append(hub.Invoices, f)

		s, ok := byBucket[f.Bucket]
		if !ok {
			s = &BucketSummary{Bucket: f.Bucket, Label: f.Bucket.Label(), Amount: decimal.Zero}
			byBucket[f.Bucket] = s
		}
		s.Count++
		s.Amount = s.Amount.Add(f.Amount)
	}

	// Ties keep urgency order.
	for _, b := range model.UnpaidBuckets {
		if s, ok := byBucket[b]; ok {
			hub.Summary = append(hub.Summary, *s)
		}
	}
	slices.SortStableFunc(hub.Summary, func(a, b BucketSummary) int {
		return cmp.Compare(b.Count, a.Count)
	})

	if len(hub.Summary) == 0 {
		hub.Warning = NoUnpaidWarning
	}
	return hub
}

// InvoicesIn returns the bucketed invoices carrying bucket, in input order.
func (h ToPayHub) InvoicesIn(bucket model.UnpaidBucket) []model.FlaggedInvoice {
	var out []model.FlaggedInvoice
	for _, f := range h.Invoices {
		if f.Bucket == bucket {
			out = append(out, f)
		}
	}
	return out
}

// Count returns the number of invoices in bucket.
func (h ToPayHub) Count(bucket model.UnpaidBucket) int {
	for _, s := range h.Summary {
		if s.Bucket == bucket {
			return s.Count
		}
	}
	return 0
}
