// Package browse provides the Bubble Tea interface for comparison results.
package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/lexsync/internal/compare"
	"github.com/verte-zerg/lexsync/internal/dictionary"
	"github.com/verte-zerg/lexsync/internal/model"
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	detailStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// tab selects every result when all is set, otherwise one relation.
type tab struct {
	all      bool
	relation dictionary.Relation
}

// Model implements the Bubble Tea results browser.
type Model struct {
	title     string
	leftName  string
	rightName string

	results []model.WordResult
	counts  model.Counts
	visible []model.WordResult

	tabs      []tab
	activeTab int
	table     table.Model

	filterMode bool
	filter     textinput.Model
	query      string

	width  int
	height int
}

// NewModel constructs a browser over results. Names label the two sides in
// the detail line.
func NewModel(title, leftName, rightName string, results []model.WordResult) *Model {
	m := &Model{
		title:     title,
		leftName:  leftName,
		rightName: rightName,
		results:   results,
		counts:    compare.Summarize(results),
	}
	m.tabs = []tab{{all: true}}
	for _, rel := range dictionary.Relations() {
		m.tabs = append(m.tabs, tab{relation: rel})
	}
	m.filter = textinput.New()
	m.filter.Prompt = "Word: "
	m.filter.CharLimit = 0
	m.filter.Cursor.SetMode(cursor.CursorBlink)
	m.table = table.New(
		table.WithColumns(columnsFor(80)),
		table.WithFocused(true),
		table.WithStyles(tableStyles()),
	)
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, nil
		case "right", "l", "tab":
			m.moveTab(1)
			return m, nil
		case "/":
			m.filterMode = true
			m.filter.SetValue(m.query)
			return m, m.filter.Focus()
		case "esc":
			if m.query != "" {
				m.query = ""
				m.refresh()
			}
			return m, nil
		case "g", "home":
			m.table.GotoTop()
			return m, nil
		case "G", "end":
			m.table.GotoBottom()
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(tableMutedStyle.Render(m.table.View()), m.width, bodyHeight)
	if len(m.visible) == 0 {
		body = fitLines("No matching words.", m.width, bodyHeight)
	}
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filter.Blur()
		return m, nil
	case tea.KeyEnter:
		m.filterMode = false
		m.filter.Blur()
		m.query = strings.TrimSpace(m.filter.Value())
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.refresh()
}

// refresh recomputes the visible rows for the active tab and query.
func (m *Model) refresh() {
	m.visible = filterResults(m.results, m.tabs[m.activeTab], m.query)
	rows := make([]table.Row, 0, len(m.visible))
	for _, r := range m.visible {
		rows = append(rows, table.Row{
			r.Word,
			r.Relation.String(),
			strings.Join(r.Left, ", "),
			strings.Join(r.Right, ", "),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func filterResults(results []model.WordResult, t tab, query string) []model.WordResult {
	var out []model.WordResult
	for _, r := range results {
		if !t.all && r.Relation != t.relation {
			continue
		}
		if query != "" && !strings.Contains(r.Word, query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.table.SetColumns(columnsFor(m.width))
	m.table.SetWidth(m.width)
	// The header row and its border take two lines.
	m.table.SetHeight(maxInt(1, bodyHeight-2))
	m.filter.Width = maxInt(10, m.width-lipgloss.Width(m.filter.Prompt)-2)
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	headerHeight = tabsHeight + 1
	footerHeight = 2
	bodyHeight = maxInt(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, t := range m.tabs {
		label := m.tabLabel(t)
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(label))
		} else {
			parts = append(parts, inactiveNavStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) tabLabel(t tab) string {
	if t.all {
		return fmt.Sprintf("All %d", m.counts.Total())
	}
	return fmt.Sprintf("%s %d", capitalize(t.relation.String()), m.counts[t.relation])
}

func (m *Model) renderHeader() string {
	tabs := padLines(lipgloss.NewStyle().MaxWidth(m.width).Render(m.renderTabs()), m.width)
	summary := m.title
	if m.query != "" {
		summary += fmt.Sprintf("  filter=%q", m.query)
	}
	summary += fmt.Sprintf("  showing %d", len(m.visible))
	return tabs + "\n" + headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.filter.View() + "\n" + headerStyle.Render("enter: apply  esc: cancel")
	}
	help := headerStyle.Render(truncateLine("Tabs: left/right  Scroll: up/down/pgup/pgdn  Filter: /  Clear: esc  Quit: q", m.width))
	return detailStyle.Render(truncateLine(m.selectedDetail(), m.width)) + "\n" + help
}

func (m *Model) selectedDetail() string {
	row := m.table.Cursor()
	if row < 0 || row >= len(m.visible) {
		return ""
	}
	return compare.StatusLine(m.visible[row], m.leftName, m.rightName)
}

func columnsFor(width int) []table.Column {
	wordWidth := 20
	relWidth := 9
	rest := maxInt(20, width-wordWidth-relWidth-4)
	return []table.Column{
		{Title: "Word", Width: wordWidth},
		{Title: "Relation", Width: relWidth},
		{Title: "Left", Width: rest / 2},
		{Title: "Right", Width: rest - rest/2},
	}
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// truncateLine cuts s to width terminal cells.
func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
