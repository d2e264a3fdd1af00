package components

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sachihirani/supplier-risk-dashboard/internal/insights"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/sachihirani/supplier-risk-dashboard/internal/tui/themes"
)

// Column layouts of the invoice tables. Widths are relative weights.
var (
	RiskColumns = []table.Column{
		{Title: "Invoice ID", Width: 12},
		{Title: "Name", Width: 24},
		{Title: "Due Date", Width: 10},
		{Title: "Invoice Amount", Width: 14},
		{Title: "Risk Score", Width: 10},
	}
	ToPayColumns = []table.Column{
		{Title: "Invoice ID", Width: 12},
		{Title: "Name", Width: 24},
		{Title: "Due Date", Width: 10},
		{Title: "Invoice Amount", Width: 14},
		{Title: "Category", Width: 20},
	}
	SupplierColumns = []table.Column{
		{Title: "Invoice ID", Width: 12},
		{Title: "Invoice Date", Width: 12},
		{Title: "Due Date", Width: 10},
		{Title: "Invoice Amount", Width: 14},
		{Title: "Status", Width: 12},
	}
)

// InvoiceTableModel is a scrollable invoice list.
type InvoiceTableModel struct {
	columns []table.Column
	table   table.Model
	width   int
	height  int
}

// NewInvoiceTableModel creates an empty table styled with theme.
func NewInvoiceTableModel(theme themes.Theme) InvoiceTableModel {
	t := table.New(
		table.WithColumns(RiskColumns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.Selected
	t.SetStyles(s)

	return InvoiceTableModel{
		table:   t,
		columns: RiskColumns,
		width:   80,
		height:  12,
	}
}

// SetData replaces the columns and rows.
func (m *InvoiceTableModel) SetData(columns []table.Column, rows []table.Row) {
	// Rows must be cleared first: the table renders existing rows against the
	// new columns.
	m.table.SetRows(nil)
	m.columns = columns
	m.table.SetColumns(m.scaledColumns())
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// RowCount returns the number of rows.
func (m InvoiceTableModel) RowCount() int {
	return len(m.table.Rows())
}

// SelectedRow returns the highlighted row, or nil when the table is empty.
func (m InvoiceTableModel) SelectedRow() table.Row {
	return m.table.SelectedRow()
}

// Update scrolls the table.
func (m InvoiceTableModel) Update(msg tea.Msg) (InvoiceTableModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table.
func (m InvoiceTableModel) View() string {
	return m.table.View()
}

// Resize updates the component size.
func (m *InvoiceTableModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(3, height))
	rows := m.table.Rows()
	m.table.SetRows(nil)
	m.table.SetColumns(m.scaledColumns())
	m.table.SetRows(rows)
}

// scaledColumns stretches the column weights to the available width.
func (m InvoiceTableModel) scaledColumns() []table.Column {
	total := 0
	for _, c := range m.columns {
		total += c.Width
	}
	// Each cell carries two columns of padding
	available := m.width - 2*len(m.columns)
	if total == 0 || available <= total {
		return m.columns
	}

	scaled := make([]table.Column, len(m.columns))
	for i, c := range m.columns {
		scaled[i] = table.Column{Title: c.Title, Width: c.Width * available / total}
	}
	return scaled
}

// RiskTableRows converts risk list rows for display.
func RiskTableRows(rows []insights.RiskRow) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row{r.InvoiceID, r.Name, r.DueDate, insights.FormatMoneyCents(r.Amount), model.RiskScore(r.RiskScore).String()}
	}
	return out
}

// ToPayTableRows converts unpaid list rows for display.
func ToPayTableRows(rows []insights.ToPayRow) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row{r.InvoiceID, r.Name, r.DueDate, insights.FormatMoneyCents(r.Amount), string(r.Bucket)}
	}
	return out
}

// SupplierTableRows lists a supplier's invoices for display.
func SupplierTableRows(invoices []model.Invoice) []table.Row {
	out := make([]table.Row, len(invoices))
	for i, inv := range invoices {
		out[i] = table.Row{
			inv.ID,
			insights.FormatDate(inv.InvoiceDate),
			insights.FormatDate(inv.DueDate),
			insights.FormatMoneyCents(inv.Amount),
			inv.Status,
		}
	}
	return out
}
