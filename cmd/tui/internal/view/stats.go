package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/minhvng/fruitbill/internal/invoice"
)

type StatsModel struct {
	CommonModel
	invoiceSvc *invoice.Service

	table   table.Model
	stats   []invoice.DayStat
	loading bool
}

func NewStatsModel(invoiceSvc *invoice.Service) StatsModel {
	columns := []table.Column{
		{Title: "Day", Width: 14},
		{Title: "Revenue", Width: 16},
		{Title: "Invoices", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return StatsModel{
		invoiceSvc: invoiceSvc,
		table:      t,
		loading:    true,
	}
}

func (m StatsModel) Title() string { return "Daily Statistics" }

func (m StatsModel) ShortHelp() string { return "r: refresh | Esc: back" }

func (m StatsModel) Init() tea.Cmd {
	return m.loadStatsCmd()
}

func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		m.loading = false
		m.stats = msg.stats
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadStatsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m StatsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading statistics...")
	}

	if len(m.stats) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No statistics yet.\nSave a few invoices to see daily revenue.\n\n(Esc to back)")
	}

	return lipgloss.NewStyle().Padding(1).Render(m.table.View())
}

func (m *StatsModel) refreshTable() {
	rows := make([]table.Row, len(m.stats))
	for i, stat := range m.stats {
		rows[i] = table.Row{
			FormatDateOnly(stat.Date),
			FormatVND(stat.Total),
			fmt.Sprintf("%d", stat.Count),
		}
	}

	m.table.SetRows(rows)
}

type statsLoadedMsg struct {
	stats []invoice.DayStat
}

func (m StatsModel) loadStatsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return statsLoadedMsg{stats: m.invoiceSvc.DayStats(ctx)}
	}
}
