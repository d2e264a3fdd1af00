package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sachihirani/supplier-risk-dashboard/internal/dataset"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
)

// Loader fetches the invoices shown by the dashboard.
type Loader func(ctx context.Context) ([]model.Invoice, error)

type invoicesLoadedMsg struct {
	err      error
	invoices []model.Invoice
}

func loadInvoices(ctx context.Context, loader Loader) tea.Cmd {
	return func() tea.Msg {
		invoices, err := loader(ctx)
		return invoicesLoadedMsg{invoices: invoices, err: err}
	}
}

// SampleLoader serves generated demo invoices.
func SampleLoader(count int, referenceDate time.Time, seed uint64) Loader {
	return func(context.Context) ([]model.Invoice, error) {
		return dataset.Sample(count, referenceDate, seed), nil
	}
}
