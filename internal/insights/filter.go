// Package insights computes the dashboard views from a filtered invoice set.
//
// Every function here is pure: inputs are never modified and results depend
// only on the invoices, the filter and the reference date passed in.
package insights

import (
	"slices"
	"strings"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
)

// DateRange is an inclusive range of invoice dates. It only restricts
// results when both ends are set.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// IsSet reports whether both bounds are present.
func (r DateRange) IsSet() bool {
	return !r.From.IsZero() && !r.To.IsZero()
}

// Contains reports whether t falls inside the range. An unset range contains everything.
func (r DateRange) Contains(t time.Time) bool {
	if !r.IsSet() {
		return true
	}
	if t.IsZero() {
		return false
	}
	d := model.DateOf(t)
	return !d.Before(model.DateOf(r.From)) && !d.After(model.DateOf(r.To))
}

// Filter is the user's cascading selection. Empty slices select everything.
type Filter struct {
	SupplierTypes     []string  `json:"supplier_types,omitempty"`
	ServiceCategories []string  `json:"service_categories,omitempty"`
	SupplierNames     []string  `json:"supplier_names,omitempty"`
	DateRange         DateRange `json:"date_range"`
}

// Validate checks that the date range is well formed.
func (f Filter) Validate() error {
	if f.DateRange.From.IsZero() != f.DateRange.To.IsZero() {
		return common.NewUserError("both ends of the date range must be given", common.ErrInvalidFilter)
	}
	if f.DateRange.IsSet() && f.DateRange.To.Before(f.DateRange.From) {
		return common.NewUserError("the end date is before the start date", common.ErrInvalidFilter)
	}
	return nil
}

// IsEmpty reports whether the filter selects every invoice.
func (f Filter) IsEmpty() bool {
	return len(f.SupplierTypes) == 0 &&
		len(f.ServiceCategories) == 0 &&
		len(f.SupplierNames) == 0 &&
		!f.DateRange.IsSet()
}

// Apply returns the invoices matching the filter as a new slice.
func (f Filter) Apply(invoices []model.Invoice) []model.Invoice {
	types := toSet(f.SupplierTypes)
	categories := toSet(f.ServiceCategories)
	names := toSet(f.SupplierNames)

	out := make([]model.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if !matches(types, inv.SupplierType) ||
			!matches(categories, inv.ServiceCategory) ||
			!matches(names, inv.SupplierName) ||
			!f.DateRange.Contains(inv.InvoiceDate) {
			continue
		}
		out = append(out, inv)
	}
	return out
}

// Options holds the choices offered by each filter control.
type Options struct {
	MinDate           time.Time `json:"min_date"`
	MaxDate           time.Time `json:"max_date"`
	SupplierTypes     []string  `json:"supplier_types"`
	ServiceCategories []string  `json:"service_categories"`
	SupplierNames     []string  `json:"supplier_names"`
}

// CascadeOptions computes the filter choices for the current selection.
// Supplier types come from the full dataset, service categories from rows
// matching the chosen types, and supplier names from rows matching both.
// The date bounds span the whole dataset.
func CascadeOptions(invoices []model.Invoice, f Filter) Options {
	types := toSet(f.SupplierTypes)
	categories := toSet(f.ServiceCategories)

	var opts Options
	opts.SupplierTypes = uniqueSorted(invoices, func(inv model.Invoice) (string, bool) {
		return inv.SupplierType, true
	})
	opts.ServiceCategories = uniqueSorted(invoices, func(inv model.Invoice) (string, bool) {
		return inv.ServiceCategory, matches(types, inv.SupplierType)
	})
	opts.SupplierNames = uniqueSorted(invoices, func(inv model.Invoice) (string, bool) {
		return inv.SupplierName, matches(types, inv.SupplierType) && matches(categories, inv.ServiceCategory)
	})

	for _, inv := range invoices {
		if inv.InvoiceDate.IsZero() {
			continue
		}
		if opts.MinDate.IsZero() || inv.InvoiceDate.Before(opts.MinDate) {
			opts.MinDate = inv.InvoiceDate
		}
		if opts.MaxDate.IsZero() || inv.InvoiceDate.After(opts.MaxDate) {
			opts.MaxDate = inv.InvoiceDate
		}
	}

	return opts
}

// Prune drops selections that are no longer offered by opts.
func (f Filter) Prune(opts Options) Filter {
	return Filter{
		SupplierTypes:     intersect(f.SupplierTypes, opts.SupplierTypes),
		ServiceCategories: intersect(f.ServiceCategories, opts.ServiceCategories),
		SupplierNames:     intersect(f.SupplierNames, opts.SupplierNames),
		DateRange:         f.DateRange,
	}
}

// Describe renders the selection for headers and logs.
func (f Filter) Describe() string {
	if f.IsEmpty() {
		return "All invoices"
	}

	var parts []string
	if len(f.SupplierTypes) > 0 {
		parts = append(parts, "Type: "+strings.Join(f.SupplierTypes, ", "))
	}
	if len(f.ServiceCategories) > 0 {
		parts = append(parts, "Category: "+strings.Join(f.ServiceCategories, ", "))
	}
	if len(f.SupplierNames) > 0 {
		parts = append(parts, "Supplier: "+strings.Join(f.SupplierNames, ", "))
	}
	if f.DateRange.IsSet() {
		parts = append(parts, "Dates: "+f.DateRange.From.Format(isoDate)+" to "+f.DateRange.To.Format(isoDate))
	}
	return strings.Join(parts, " | ")
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// matches implements IN semantics; a nil set matches everything.
func matches(set map[string]struct{}, v string) bool {
	if set == nil {
		return true
	}
	_, ok := set[v]
	return ok
}

func uniqueSorted(invoices []model.Invoice, pick func(model.Invoice) (string, bool)) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, inv := range invoices {
		v, ok := pick(inv)
		if !ok || v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

func intersect(selected, allowed []string) []string {
	if len(selected) == 0 {
		return nil
	}
	ok := toSet(allowed)
	var out []string
	for _, s := range selected {
		if _, in := ok[s]; in {
			out = append(out, s)
		}
	}
	return out
}
