package model

import "time"

// UnpaidBucket is the triage label assigned to an invoice from its due date.
// The empty bucket means the invoice is excluded from the unpaid view.
type UnpaidBucket string

// Unpaid buckets.
const (
	BucketNone         UnpaidBucket = ""
	BucketLatePayNow   UnpaidBucket = "Unpaid_LatePayNow"
	BucketTodayPayNow  UnpaidBucket = "Unpaid_TodayPayNow"
	BucketHighPriority UnpaidBucket = "Unpaid_HighPriority"
	BucketPriority     UnpaidBucket = "Unpaid_Priority"
	BucketUnpaid       UnpaidBucket = "Unpaid"
)

// UnpaidBuckets lists the buckets in display order, most urgent first.
var UnpaidBuckets = []UnpaidBucket{
	BucketLatePayNow,
	BucketTodayPayNow,
	BucketHighPriority,
	BucketPriority,
	BucketUnpaid,
}

var bucketLabels = map[UnpaidBucket]string{
	BucketLatePayNow:   "Overdue",
	BucketTodayPayNow:  "Due Today",
	BucketHighPriority: "Due in 2 Days",
	BucketPriority:     "Due in 1 Week",
	BucketUnpaid:       "Due Soon",
}

// Label returns the human readable name of the bucket.
func (b UnpaidBucket) Label() string {
	if label, ok := bucketLabels[b]; ok {
		return label
	}
	return "Other"
}

// ParseUnpaidBucket resolves a bucket from its name or display label.
func ParseUnpaidBucket(s string) (UnpaidBucket, bool) {
	for _, b := range UnpaidBuckets {
		if s == string(b) || s == b.Label() {
			return b, true
		}
	}
	return BucketNone, false
}

// InvoiceFlags holds the five due-date flags of an invoice relative to a
// reference date. Dates are compared at day granularity.
type InvoiceFlags struct {
	LatePayNow   bool // due before today
	TodayPayNow  bool // due today
	HighPriority bool // due exactly two days from today
	Priority     bool // due exactly seven days from today
	Unpaid       bool // due more than seven days from today
}

// Any reports whether at least one flag is set.
func (f InvoiceFlags) Any() bool {
	return f.LatePayNow || f.TodayPayNow || f.HighPriority || f.Priority || f.Unpaid
}

// bucketPriority is evaluated in order and the last matching flag wins.
var bucketPriority = []struct {
	set    func(InvoiceFlags) bool
	bucket UnpaidBucket
}{
	{func(f InvoiceFlags) bool { return f.Unpaid }, BucketUnpaid},
	{func(f InvoiceFlags) bool { return f.Priority }, BucketPriority},
	{func(f InvoiceFlags) bool { return f.HighPriority }, BucketHighPriority},
	{func(f InvoiceFlags) bool { return f.TodayPayNow }, BucketTodayPayNow},
	{func(f InvoiceFlags) bool { return f.LatePayNow }, BucketLatePayNow},
}

// FlagsFor computes the due-date flags of a single invoice. Invoices without a
// due date get no flags.
//
// The two and seven day flags match exact days only. An invoice due in one,
// three, four, five or six days carries no flag and falls out of the unpaid
// view.
func FlagsFor(inv Invoice, referenceDate time.Time) InvoiceFlags {
	if !inv.HasDueDate() {
		return InvoiceFlags{}
	}

	today := DateOf(referenceDate)
	due := DateOf(inv.DueDate)

	return InvoiceFlags{
		LatePayNow:   due.Before(today),
		TodayPayNow:  due.Equal(today),
		HighPriority: due.Equal(today.AddDate(0, 0, 2)),
		Priority:     due.Equal(today.AddDate(0, 0, 7)),
		Unpaid:       due.After(today.AddDate(0, 0, 7)),
	}
}

// BucketFor collapses flags into a single bucket.
func BucketFor(flags InvoiceFlags) UnpaidBucket {
	bucket := BucketNone
	for _, p := range bucketPriority {
		if p.set(flags) {
			bucket = p.bucket
		}
	}
	return bucket
}

// FlaggedInvoice pairs an invoice with its derived flags and bucket.
type FlaggedInvoice struct {
	Invoice
	Flags  InvoiceFlags
	Bucket UnpaidBucket
}

// DeriveInvoiceFlags computes the due-date flags of every invoice relative to
// referenceDate. The input slice is not modified.
func DeriveInvoiceFlags(invoices []Invoice, referenceDate time.Time) []FlaggedInvoice {
	flagged := make([]FlaggedInvoice, len(invoices))
	for i, inv := range invoices {
		flagged[i] = FlaggedInvoice{
			Invoice: inv,
			Flags:   FlagsFor(inv, referenceDate),
		}
	}
	return flagged
}

// DeriveUnpaidBucket assigns the bucket of every flagged invoice.
func DeriveUnpaidBucket(flagged []FlaggedInvoice) []FlaggedInvoice {
	out := make([]FlaggedInvoice, len(flagged))
	for i, f := range flagged {
		f.Bucket = BucketFor(f.Flags)
		out[i] = f
	}
	return out
}
