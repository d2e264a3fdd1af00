package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketFor_DueDateOffsets(t *testing.T) {
	today := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		want   UnpaidBucket
		offset int
	}{
		{name: "long overdue", offset: -40, want: BucketLatePayNow},
		{name: "yesterday", offset: -1, want: BucketLatePayNow},
		{name: "today", offset: 0, want: BucketTodayPayNow},
		{name: "tomorrow falls in the gap", offset: 1, want: BucketNone},
		{name: "two days", offset: 2, want: BucketHighPriority},
		{name: "three days falls in the gap", offset: 3, want: BucketNone},
		{name: "four days falls in the gap", offset: 4, want: BucketNone},
		{name: "six days falls in the gap", offset: 6, want: BucketNone},
		{name: "one week", offset: 7, want: BucketPriority},
		{name: "eight days", offset: 8, want: BucketUnpaid},
		{name: "ten days", offset: 10, want: BucketUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Invoice{ID: "INV-1", DueDate: DateOf(today).AddDate(0, 0, tt.offset)}
			got := BucketFor(FlagsFor(inv, today))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlagsFor_MissingDueDate(t *testing.T) {
	flags := FlagsFor(Invoice{ID: "INV-1"}, time.Now())
	assert.False(t, flags.Any())
	assert.Equal(t, BucketNone, BucketFor(flags))
}

func TestFlagsFor_IgnoresTimeOfDay(t *testing.T) {
	ref := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	inv := Invoice{DueDate: time.Date(2024, 3, 15, 0, 1, 0, 0, time.UTC)}

	flags := FlagsFor(inv, ref)
	assert.True(t, flags.TodayPayNow)
	assert.False(t, flags.LatePayNow)
}

func TestFlagsFor_AcrossMonthBoundary(t *testing.T) {
	ref := time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)

	// 2024 is a leap year: +2 days is Feb 29, +7 days is Mar 5.
	assert.True(t, FlagsFor(Invoice{DueDate: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)}, ref).HighPriority)
	assert.True(t, FlagsFor(Invoice{DueDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)}, ref).Priority)
}

func TestBucketFor_LastDeclaredFlagWins(t *testing.T) {
	tests := []struct {
		name  string
		want  UnpaidBucket
		flags InvoiceFlags
	}{
		{name: "none", flags: InvoiceFlags{}, want: BucketNone},
		{name: "late beats everything", flags: InvoiceFlags{LatePayNow: true, TodayPayNow: true, HighPriority: true, Priority: true, Unpaid: true}, want: BucketLatePayNow},
		{name: "today beats high priority", flags: InvoiceFlags{TodayPayNow: true, HighPriority: true}, want: BucketTodayPayNow},
		{name: "high priority beats priority", flags: InvoiceFlags{HighPriority: true, Priority: true}, want: BucketHighPriority},
		{name: "priority beats unpaid", flags: InvoiceFlags{Priority: true, Unpaid: true}, want: BucketPriority},
		{name: "unpaid alone", flags: InvoiceFlags{Unpaid: true}, want: BucketUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketFor(tt.flags))
		})
	}
}

func TestDeriveUnpaidBucket_ReferenceExample(t *testing.T) {
	ref := time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local)
	day := DateOf(ref)

	invoices := []Invoice{
		{ID: "yesterday", DueDate: day.AddDate(0, 0, -1)},
		{ID: "today", DueDate: day},
		{ID: "plus2", DueDate: day.AddDate(0, 0, 2)},
		{ID: "plus7", DueDate: day.AddDate(0, 0, 7)},
		{ID: "plus10", DueDate: day.AddDate(0, 0, 10)},
		{ID: "plus3", DueDate: day.AddDate(0, 0, 3)},
	}

	got := DeriveUnpaidBucket(DeriveInvoiceFlags(invoices, ref))
	require.Len(t, got, len(invoices))

	want := []UnpaidBucket{
		BucketLatePayNow,
		BucketTodayPayNow,
		BucketHighPriority,
		BucketPriority,
		BucketUnpaid,
		BucketNone,
	}
	for i, w := range want {
		assert.Equal(t, w, got[i].Bucket, "invoice %s", got[i].ID)
	}
}

func TestDeriveInvoiceFlags_DoesNotMutateInput(t *testing.T) {
	invoices := []Invoice{{ID: "a", DueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}}
	before := invoices[0]

	flagged := DeriveInvoiceFlags(invoices, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	flagged[0].ID = "changed"

	assert.Equal(t, before, invoices[0])
}

func TestUnpaidBucket_Label(t *testing.T) {
	assert.Equal(t, "Overdue", BucketLatePayNow.Label())
	assert.Equal(t, "Due Today", BucketTodayPayNow.Label())
	assert.Equal(t, "Due in 2 Days", BucketHighPriority.Label())
	assert.Equal(t, "Due in 1 Week", BucketPriority.Label())
	assert.Equal(t, "Due Soon", BucketUnpaid.Label())
	assert.Equal(t, "Other", BucketNone.Label())
}

func TestParseUnpaidBucket(t *testing.T) {
	b, ok := ParseUnpaidBucket("Unpaid_Priority")
	assert.True(t, ok)
	assert.Equal(t, BucketPriority, b)

	b, ok = ParseUnpaidBucket("Overdue")
	assert.True(t, ok)
	assert.Equal(t, BucketLatePayNow, b)

	_, ok = ParseUnpaidBucket("Paid")
	assert.False(t, ok)
}

func TestInvoice_DaysLate(t *testing.T) {
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	days, ok := Invoice{DueDate: due, PaymentDate: due.AddDate(0, 0, 12)}.DaysLate()
	assert.True(t, ok)
	assert.Equal(t, 12, days)

	days, ok = Invoice{DueDate: due, PaymentDate: due.AddDate(0, 0, -3)}.DaysLate()
	assert.True(t, ok)
	assert.Equal(t, -3, days)

	_, ok = Invoice{DueDate: due}.DaysLate()
	assert.False(t, ok)
}

func TestRiskScore(t *testing.T) {
	assert.False(t, RiskNone.Valid())
	assert.True(t, RiskLow.Valid())
	assert.True(t, RiskHigh.Valid())
	assert.False(t, RiskScore(4).Valid())
	assert.Equal(t, "Medium Risk (Score 2)", RiskMedium.Label())
	assert.Equal(t, "", RiskNone.String())
	assert.Equal(t, "3", RiskHigh.String())
}
