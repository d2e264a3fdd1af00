package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sachihirani/supplier-risk-dashboard/internal/insights"
	"github.com/sachihirani/supplier-risk-dashboard/internal/tui/themes"
)

// FilterSection identifies a control of the filter panel.
type FilterSection int

// Filter panel controls, top to bottom.
const (
	SectionTypes FilterSection = iota
	SectionCategories
	SectionNames
	SectionFrom
	SectionTo
	sectionCount
)

var sectionTitles = [...]string{
	SectionTypes:      "Supplier Type",
	SectionCategories: "Service Category",
	SectionNames:      "Supplier Name",
	SectionFrom:       "From",
	SectionTo:         "To",
}

const dateLayout = "2006-01-02"

// listSection is one multi-select control.
type listSection struct {
	selected map[string]bool
	options  []string
	cursor   int
}

func (s *listSection) setOptions(options []string) {
	s.options = options
	if s.selected == nil {
		s.selected = make(map[string]bool)
	}
	offered := make(map[string]bool, len(options))
	for _, o := range options {
		offered[o] = true
	}
	for v := range s.selected {
		if !offered[v] {
			delete(s.selected, v)
		}
	}
	s.cursor = max(0, min(s.cursor, len(options)-1))
}

// values returns the selection in option order.
func (s listSection) values() []string {
	var out []string
	for _, o := range s.options {
		if s.selected[o] {
			out = append(out, o)
		}
	}
	return out
}

// FilterPanelModel edits the cascading filter. It does not compute options
// itself; the owner pushes fresh options with SetOptions after every change.
type FilterPanelModel struct {
	theme   themes.Theme
	from    textinput.Model
	to      textinput.Model
	dateErr string
	lists   [3]listSection
	section FilterSection
	width   int
	height  int
}

// NewFilterPanelModel creates an empty filter panel.
func NewFilterPanelModel(theme themes.Theme) FilterPanelModel {
	newInput := func() textinput.Model {
		ti := textinput.New()
		ti.Placeholder = "YYYY-MM-DD"
		ti.CharLimit = len(dateLayout)
		ti.Width = len(dateLayout) + 1
		return ti
	}

	m := FilterPanelModel{
		theme:  theme,
		from:   newInput(),
		to:     newInput(),
		width:  32,
		height: 30,
	}
	for i := range m.lists {
		m.lists[i].selected = make(map[string]bool)
	}
	return m
}

// SetOptions replaces the offered choices and drops selections that are no
// longer offered. Date placeholders show the dataset bounds.
func (m *FilterPanelModel) SetOptions(opts insights.Options) {
	m.lists[SectionTypes].setOptions(opts.SupplierTypes)
	m.lists[SectionCategories].setOptions(opts.ServiceCategories)
	m.lists[SectionNames].setOptions(opts.SupplierNames)
	if !opts.MinDate.IsZero() {
		m.from.Placeholder = opts.MinDate.Format(dateLayout)
	}
	if !opts.MaxDate.IsZero() {
		m.to.Placeholder = opts.MaxDate.Format(dateLayout)
	}
}

// Filter returns the current selection. An incomplete or invalid date range
// is left out.
func (m FilterPanelModel) Filter() insights.Filter {
	f := insights.Filter{
		SupplierTypes:     m.lists[SectionTypes].values(),
		ServiceCategories: m.lists[SectionCategories].values(),
		SupplierNames:     m.lists[SectionNames].values(),
	}
	if r, err := m.dateRange(); err == nil {
		f.DateRange = r
	}
	return f
}

// Reset clears every selection and both dates.
func (m *FilterPanelModel) Reset() {
	for i := range m.lists {
		m.lists[i].selected = make(map[string]bool)
		m.lists[i].cursor = 0
	}
	m.from.SetValue("")
	m.to.SetValue("")
	m.dateErr = ""
}

// Section returns the focused control.
func (m FilterPanelModel) Section() FilterSection {
	return m.section
}

// Focus gives the panel keyboard focus.
func (m *FilterPanelModel) Focus() {
	m.focusSection(m.section)
}

// Blur removes keyboard focus from the date inputs.
func (m *FilterPanelModel) Blur() {
	m.from.Blur()
	m.to.Blur()
}

func (m FilterPanelModel) dateRange() (insights.DateRange, error) {
	fromRaw := strings.TrimSpace(m.from.Value())
	toRaw := strings.TrimSpace(m.to.Value())
	if fromRaw == "" && toRaw == "" {
		return insights.DateRange{}, nil
	}
	if fromRaw == "" || toRaw == "" {
		return insights.DateRange{}, fmt.Errorf("enter both dates")
	}
	from, err := time.Parse(dateLayout, fromRaw)
	if err != nil {
		return insights.DateRange{}, fmt.Errorf("invalid from date")
	}
	to, err := time.Parse(dateLayout, toRaw)
	if err != nil {
		return insights.DateRange{}, fmt.Errorf("invalid to date")
	}
	if to.Before(from) {
		return insights.DateRange{}, fmt.Errorf("to is before from")
	}
	return insights.DateRange{From: from, To: to}, nil
}

func (m *FilterPanelModel) focusSection(s FilterSection) {
	m.section = s
	m.from.Blur()
	m.to.Blur()
	switch s {
	case SectionFrom:
		m.from.Focus()
	case SectionTo:
		m.to.Focus()
	}
}

func (m FilterPanelModel) changed() tea.Cmd {
	f := m.Filter()
	return func() tea.Msg {
		return FilterChangedMsg{Filter: f}
	}
}

// Update handles key presses while the panel has focus.
func (m FilterPanelModel) Update(msg tea.Msg) (FilterPanelModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "tab":
		m.focusSection((m.section + 1) % sectionCount)
		return m, nil
	case "shift+tab":
		m.focusSection((m.section + sectionCount - 1) % sectionCount)
		return m, nil
	}

	if m.section == SectionFrom || m.section == SectionTo {
		return m.updateDate(keyMsg)
	}

	list := &m.lists[m.section]
	switch keyMsg.String() {
	case "up", "k":
		if list.cursor > 0 {
			list.cursor--
		}
	case "down", "j":
		if list.cursor < len(list.options)-1 {
			list.cursor++
		}
	case " ", "x":
		if len(list.options) == 0 {
			return m, nil
		}
		v := list.options[list.cursor]
		if list.selected[v] {
			delete(list.selected, v)
		} else {
			list.selected[v] = true
		}
		return m, m.changed()
	case "c":
		if len(list.selected) == 0 {
			return m, nil
		}
		list.selected = make(map[string]bool)
		return m, m.changed()
	}
	return m, nil
}

func (m FilterPanelModel) updateDate(msg tea.KeyMsg) (FilterPanelModel, tea.Cmd) {
	input := &m.from
	if m.section == SectionTo {
		input = &m.to
	}

	before, _ := m.dateRange()
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)

	after, err := m.dateRange()
	m.dateErr = ""
	if err != nil {
		m.dateErr = err.Error()
	}
	if after != before {
		return m, tea.Batch(cmd, m.changed())
	}
	return m, cmd
}

// Resize updates the component size.
func (m *FilterPanelModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the panel.
func (m FilterPanelModel) View() string {
	// Five section headers plus two date lines and spacing
	perList := max(2, (m.height-12)/3)

	var parts []string
	for s := SectionTypes; s <= SectionNames; s++ {
		parts = append(parts, m.renderHeader(s), m.renderList(s, perList))
	}
	parts = append(parts,
		m.renderHeader(SectionFrom), m.from.View(),
		m.renderHeader(SectionTo), m.to.View(),
	)
	if m.dateErr != "" {
		parts = append(parts, m.theme.StatusWarning.Render(m.dateErr))
	}
	return lipgloss.NewStyle().Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m FilterPanelModel) renderHeader(s FilterSection) string {
	title := sectionTitles[s]
	if s <= SectionNames {
		if n := len(m.lists[s].selected); n > 0 {
			title = fmt.Sprintf("%s (%d)", title, n)
		}
	}
	if s == m.section {
		return m.theme.Subtitle.Render("▸ " + title)
	}
	return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("  " + title)
}

func (m FilterPanelModel) renderList(s FilterSection, rows int) string {
	list := m.lists[s]
	if len(list.options) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("  (none)")
	}

	start := 0
	if list.cursor >= rows {
		start = list.cursor - rows + 1
	}
	end := min(len(list.options), start+rows)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		o := list.options[i]
		box := "[ ]"
		if list.selected[o] {
			box = "[x]"
		}
		line := truncate(fmt.Sprintf("  %s %s", box, o), max(8, m.width))
		if s == m.section && i == list.cursor {
			line = m.theme.Highlighted.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
