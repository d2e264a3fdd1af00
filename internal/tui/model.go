// Package tui implements the interactive terminal dashboard.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/sachihirani/supplier-risk-dashboard/internal/insights"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/sachihirani/supplier-risk-dashboard/internal/tui/components"
	"github.com/sachihirani/supplier-risk-dashboard/internal/tui/themes"
)

// Tab is one of the four dashboard views.
type Tab int

// Dashboard tabs.
const (
	TabKeyInsights Tab = iota
	TabRiskOverview
	TabToPayHub
	TabSupplierProfile
	tabCount
)

var tabTitles = []string{
	TabKeyInsights:     "Key Insights",
	TabRiskOverview:    "Risk Overview",
	TabToPayHub:        "To Pay Hub",
	TabSupplierProfile: "Supplier Profile",
}

// focus is the component receiving key presses.
type focus int

const (
	focusContent focus = iota
	focusFilters
)

// Model holds the dashboard state. Views are recomputed from the full
// invoice set whenever the filter or a selection changes.
type Model struct {
	ctx           context.Context
	referenceDate time.Time
	lastError     error
	loader        Loader
	snapshot      *insights.Snapshot
	profile       *insights.SupplierProfile
	theme         themes.Theme
	filters       components.FilterPanelModel
	table         components.InvoiceTableModel
	filter        insights.Filter
	config        Config
	keymap        KeyMap
	invoices      []model.Invoice
	filtered      []model.Invoice
	suppliers     []string
	help          help.Model
	spinner       spinner.Model
	riskScore     model.RiskScore
	tab           Tab
	focus         focus
	bucketIndex   int
	supplierIndex int
	width         int
	height        int
	ready         bool
	quitting      bool
}

// New creates a dashboard that loads its invoices with loader.
func New(ctx context.Context, loader Loader, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cfg.Theme.StatusInfo

	m := Model{
		ctx:           ctx,
		loader:        loader,
		config:        cfg,
		theme:         cfg.Theme,
		keymap:        DefaultKeyMap(),
		help:          help.New(),
		spinner:       sp,
		referenceDate: model.DateOf(cfg.ReferenceDate),
		filters:       components.NewFilterPanelModel(cfg.Theme),
		table:         components.NewInvoiceTableModel(cfg.Theme),
		riskScore:     model.RiskHigh,
		width:         cfg.Width,
		height:        cfg.Height,
	}
	m.help.ShowAll = false
	m.handleResize()
	return m
}

// Init starts loading the invoices.
func (m Model) Init() tea.Cmd {
	if m.loader == nil {
		return func() tea.Msg {
			return invoicesLoadedMsg{err: common.NewUserError("no invoice source configured", common.ErrMissingConfig)}
		}
	}
	return tea.Batch(m.spinner.Tick, loadInvoices(m.ctx, m.loader))
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case spinner.TickMsg:
		if m.ready {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case invoicesLoadedMsg:
		m.ready = true
		if msg.err != nil {
			m.lastError = msg.err
			m.quitting = true
			return m, tea.Quit
		}
		m.invoices = msg.invoices
		m.refresh()
		return m, nil

	case components.FilterChangedMsg:
		m.filter = msg.Filter
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if !m.ready {
		return m, nil
	}

	if m.focus == focusFilters {
		if key.Matches(msg, m.keymap.Back) {
			m.focus = focusContent
			m.filters.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filters, cmd = m.filters.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.NextTab):
		m.setTab((m.tab + 1) % tabCount)
	case key.Matches(msg, m.keymap.PrevTab):
		m.setTab((m.tab + tabCount - 1) % tabCount)
	case key.Matches(msg, m.keymap.JumpTab):
		m.setTab(Tab(msg.String()[0] - '1'))
	case key.Matches(msg, m.keymap.Filters):
		m.focus = focusFilters
		m.filters.Focus()
	case key.Matches(msg, m.keymap.Reset):
		m.filters.Reset()
		m.filter = insights.Filter{}
		m.refresh()
	case key.Matches(msg, m.keymap.PrevItem):
		m.step(-1)
	case key.Matches(msg, m.keymap.NextItem):
		m.step(1)
	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down):
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setTab(t Tab) {
	if t < 0 || t >= tabCount {
		return
	}
	m.tab = t
	m.syncTable()
}

// step moves the per-tab selection: the risk score, the unpaid bucket or
// the supplier.
func (m *Model) step(delta int) {
	switch m.tab {
	case TabRiskOverview:
		idx := int(m.riskScore) - 1 + delta
		m.riskScore = model.RiskScores[wrap(idx, len(model.RiskScores))]
	case TabToPayHub:
		if n := len(m.snapshot.ToPayHub.Summary); n > 0 {
			m.bucketIndex = wrap(m.bucketIndex+delta, n)
		}
	case TabSupplierProfile:
		if n := len(m.suppliers); n > 0 {
			m.supplierIndex = wrap(m.supplierIndex+delta, n)
			m.computeProfile()
		}
	default:
		return
	}
	m.syncTable()
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// refresh recomputes every view from the current filter.
func (m *Model) refresh() {
	opts := insights.CascadeOptions(m.invoices, m.filter)
	m.filter = m.filter.Prune(opts)
	m.filters.SetOptions(opts)

	m.filtered = m.filter.Apply(m.invoices)
	m.snapshot = insights.BuildSnapshot(m.invoices, m.filter, m.referenceDate)

	previous := m.SelectedSupplier()
	m.suppliers = insights.SupplierNames(m.filtered)
	m.supplierIndex = 0
	for i, name := range m.suppliers {
		if name == previous {
			m.supplierIndex = i
		}
	}
	if m.bucketIndex >= len(m.snapshot.ToPayHub.Summary) {
		m.bucketIndex = 0
	}

	m.computeProfile()
	m.syncTable()
}

func (m *Model) computeProfile() {
	m.profile = nil
	name := m.SelectedSupplier()
	if name == "" {
		return
	}
	profile, err := insights.ComputeSupplierProfile(m.filtered, name)
	if err != nil && !errors.Is(err, common.ErrSupplierNotFound) {
		m.lastError = err
		return
	}
	m.profile = profile
}

// syncTable loads the active tab's invoice list into the table.
func (m *Model) syncTable() {
	if m.snapshot == nil {
		return
	}
	switch m.tab {
	case TabRiskOverview:
		m.table.SetData(components.RiskColumns, components.RiskTableRows(insights.RiskRows(m.filtered, m.riskScore)))
	case TabToPayHub:
		m.table.SetData(components.ToPayColumns, components.ToPayTableRows(m.snapshot.ToPayHub.ToPayRows(m.SelectedBucket())))
	case TabSupplierProfile:
		var invoices []model.Invoice
		if m.profile != nil {
			invoices = m.profile.Invoices
		}
		m.table.SetData(components.SupplierColumns, components.SupplierTableRows(invoices))
	default:
		m.table.SetData(components.RiskColumns, nil)
	}
}

// SelectedBucket returns the bucket whose invoices are listed on the To Pay tab.
func (m Model) SelectedBucket() model.UnpaidBucket {
	if m.snapshot == nil || len(m.snapshot.ToPayHub.Summary) == 0 {
		return model.BucketNone
	}
	return m.snapshot.ToPayHub.Summary[m.bucketIndex].Bucket
}

// SelectedSupplier returns the supplier shown on the profile tab.
func (m Model) SelectedSupplier() string {
	if m.supplierIndex < len(m.suppliers) {
		return m.suppliers[m.supplierIndex]
	}
	return ""
}

// Err returns the error that stopped the dashboard, if any.
func (m Model) Err() error {
	return m.lastError
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	contentWidth := m.contentWidth()
	m.filters.Resize(filterPanelWidth, max(10, m.height-8))
	m.table.Resize(contentWidth, max(3, m.height/3))
	m.help.Width = m.width
}
