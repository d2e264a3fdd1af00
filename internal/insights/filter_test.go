package insights

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/sachihirani/supplier-risk-dashboard/internal/dataset"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/sachihirani/supplier-risk-dashboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(invoices []model.Invoice) []string {
	out := make([]string, len(invoices))
	for i, inv := range invoices {
		out[i] = inv.ID
	}
	return out
}

func TestFilter_Apply(t *testing.T) {
	invoices := testutil.StandardInvoices()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "empty filter keeps everything",
			filter: Filter{},
			want:   ids(invoices),
		},
		{
			name:   "supplier type",
			filter: Filter{SupplierTypes: []string{"Vendor"}},
			want:   []string{"INV-003", "INV-004", "INV-005", "INV-006", "INV-009"},
		},
		{
			name:   "type and category",
			filter: Filter{SupplierTypes: []string{"Contractor"}, ServiceCategories: []string{"Warehousing"}},
			want:   []string{"INV-008"},
		},
		{
			name:   "several names",
			filter: Filter{SupplierNames: []string{"Coastal Print", "Bright Cleaning"}},
			want:   []string{"INV-003", "INV-004", "INV-005", "INV-006", "INV-009"},
		},
		{
			name: "inclusive date range",
			filter: Filter{DateRange: DateRange{
				From: testutil.Date(2024, 2, 3),
				To:   testutil.Date(2024, 3, 1),
			}},
			want: []string{"INV-003", "INV-004", "INV-005"},
		},
		{
			name:   "half open range is ignored",
			filter: Filter{DateRange: DateRange{From: testutil.Date(2024, 3, 1)}},
			want:   ids(invoices),
		},
		{
			name:   "unknown value matches nothing",
			filter: Filter{SupplierTypes: []string{"Alien"}},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(tt.filter.Apply(invoices)))
		})
	}
}

func TestFilter_ApplyDoesNotMutate(t *testing.T) {
	invoices := testutil.StandardInvoices()
	before := testutil.StandardInvoices()

	out := Filter{SupplierTypes: []string{"Vendor"}}.Apply(invoices)
	require.NotEmpty(t, out)
	out[0].SupplierName = "changed"

	assert.Equal(t, before, invoices)
}

func TestFilter_DateRangeExcludesUndated(t *testing.T) {
	invoices := []model.Invoice{
		testutil.NewInvoice("dated").Build(),
		testutil.NewInvoice("undated").Dates(time.Time{}, time.Time{}, time.Time{}).Build(),
	}
	f := Filter{DateRange: DateRange{From: testutil.Date(2024, 1, 1), To: testutil.Date(2024, 12, 31)}}
	assert.Equal(t, []string{"dated"}, ids(f.Apply(invoices)))
}

func TestFilter_Validate(t *testing.T) {
	assert.NoError(t, Filter{}.Validate())

	err := Filter{DateRange: DateRange{From: testutil.Date(2024, 1, 1)}}.Validate()
	assert.ErrorIs(t, err, common.ErrInvalidFilter)

	err = Filter{DateRange: DateRange{From: testutil.Date(2024, 2, 1), To: testutil.Date(2024, 1, 1)}}.Validate()
	assert.ErrorIs(t, err, common.ErrInvalidFilter)
}

func TestCascadeOptions(t *testing.T) {
	invoices := testutil.StandardInvoices()

	all := CascadeOptions(invoices, Filter{})
	assert.Equal(t, []string{"Contractor", "Vendor"}, all.SupplierTypes)
	assert.Equal(t, []string{"Facilities", "Freight", "Marketing", "Warehousing"}, all.ServiceCategories)
	assert.Equal(t, []string{"Acme Logistics", "Bright Cleaning", "Coastal Print"}, all.SupplierNames)
	assert.Equal(t, testutil.Date(2024, 1, 5), all.MinDate)
	assert.Equal(t, testutil.Date(2024, 3, 15), all.MaxDate)

	vendors := CascadeOptions(invoices, Filter{SupplierTypes: []string{"Vendor"}})
	assert.Equal(t, []string{"Contractor", "Vendor"}, vendors.SupplierTypes, "type options ignore the type selection")
	assert.Equal(t, []string{"Facilities", "Marketing"}, vendors.ServiceCategories)
	assert.Equal(t, []string{"Bright Cleaning", "Coastal Print"}, vendors.SupplierNames)

	marketing := CascadeOptions(invoices, Filter{
		SupplierTypes:     []string{"Vendor"},
		ServiceCategories: []string{"Marketing"},
	})
	assert.Equal(t, []string{"Coastal Print"}, marketing.SupplierNames)
}

func TestCascadeOptions_Monotonic(t *testing.T) {
	invoices := dataset.Sample(400, testutil.ReferenceDate, 11)
	all := CascadeOptions(invoices, Filter{})
	rng := rand.New(rand.NewPCG(5, 6))

	for i := 0; i < 50; i++ {
		types := pick(rng, all.SupplierTypes)
		step1 := CascadeOptions(invoices, Filter{SupplierTypes: types})
		assert.Subset(t, all.ServiceCategories, step1.ServiceCategories)
		assert.Subset(t, all.SupplierNames, step1.SupplierNames)

		categories := pick(rng, step1.ServiceCategories)
		step2 := CascadeOptions(invoices, Filter{SupplierTypes: types, ServiceCategories: categories})
		assert.Subset(t, step1.ServiceCategories, step2.ServiceCategories)
		assert.Subset(t, step1.SupplierNames, step2.SupplierNames)

		// Every offered name has at least one invoice under the selection.
		for _, name := range step2.SupplierNames {
			f := Filter{SupplierTypes: types, ServiceCategories: categories, SupplierNames: []string{name}}
			assert.NotEmpty(t, f.Apply(invoices), "name %s offered but empty", name)
		}
	}
}

func pick(rng *rand.Rand, from []string) []string {
	var out []string
	for _, v := range from {
		if rng.IntN(3) == 0 {
			out = append(out, v)
		}
	}
	return out
}

func TestFilter_Prune(t *testing.T) {
	f := Filter{
		SupplierTypes:     []string{"Vendor"},
		ServiceCategories: []string{"Freight", "Marketing"},
		SupplierNames:     []string{"Acme Logistics"},
	}
	opts := CascadeOptions(testutil.StandardInvoices(), f)

	pruned := f.Prune(opts)
	assert.Equal(t, []string{"Vendor"}, pruned.SupplierTypes)
	assert.Equal(t, []string{"Marketing"}, pruned.ServiceCategories)
	assert.Empty(t, pruned.SupplierNames)
}

func TestFilter_Describe(t *testing.T) {
	assert.Equal(t, "All invoices", Filter{}.Describe())

	f := Filter{
		SupplierTypes: []string{"Vendor"},
		DateRange:     DateRange{From: testutil.Date(2024, 1, 1), To: testutil.Date(2024, 1, 31)},
	}
	assert.Equal(t, "Type: Vendor | Dates: 2024-01-01 to 2024-01-31", f.Describe())
}
