package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/minhvng/fruitbill/internal/export"
	"github.com/minhvng/fruitbill/internal/invoice"
)

type historyState int

const (
	historyStateBrowse historyState = iota
	historyStateDetail
	historyStateConfirmClear
)

type HistoryModel struct {
	CommonModel
	invoiceSvc *invoice.Service
	exportSvc  *export.Service
	exportDir  string

	state    historyState
	table    table.Model
	invoices []invoice.Invoice
	form     *huh.Form

	loading bool
	status  string
}

func NewHistoryModel(invoiceSvc *invoice.Service, exportSvc *export.Service, exportDir string) HistoryModel {
	columns := []table.Column{
		{Title: "Date", Width: 18},
		{Title: "Total", Width: 14},
		{Title: "Items", Width: 6},
		{Title: "Note", Width: 30},
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

	return HistoryModel{
		invoiceSvc: invoiceSvc,
		exportSvc:  exportSvc,
		exportDir:  exportDir,
		table:      t,
		loading:    true,
	}
}

func (m HistoryModel) Title() string { return "Invoice History" }

func (m HistoryModel) ShortHelp() string {
	switch m.state {
	case historyStateDetail:
		return "Esc: back to list"
	case historyStateConfirmClear:
		return "Confirm"
	}

	return "Enter: detail | d: delete | D: delete whole day | c: clear all | e: export CSV | r: refresh | Esc: back"
}

func (m HistoryModel) Init() tea.Cmd {
	return m.loadInvoicesCmd()
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.loading = false
		m.invoices = msg.invoices
		m.refreshTable()

		return m, nil

	case historyActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = msg.status

		return m, m.loadInvoicesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case historyStateBrowse:
		return m.updateBrowse(msg)
	case historyStateDetail:
		return m.updateDetail(msg)
	case historyStateConfirmClear:
		return m.updateConfirmClear(msg)
	}

	return m, nil
}

func (m HistoryModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadInvoicesCmd()
		case "enter":
			if m.selected() != nil {
				m.state = historyStateDetail
			}

			return m, nil
		case "d":
			if inv := m.selected(); inv != nil {
				return m, m.deleteByIDCmd(inv.ID)
			}

			return m, nil
		case "D":
			if inv := m.selected(); inv != nil {
				return m, m.deleteByDayCmd(inv.Day())
			}

			return m, nil
		case "c":
			if len(m.invoices) == 0 {
				return m, nil
			}

			return m.startConfirmClear()
		case "e":
			return m, m.exportCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m HistoryModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc || keyMsg.String() == "q" {
			m.state = historyStateBrowse
			return m, nil
		}
	}

	return m, nil
}

func (m HistoryModel) startConfirmClear() (tea.Model, tea.Cmd) {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("clear").
				Title(fmt.Sprintf("Delete all %d saved invoices?", len(m.invoices))).
				Affirmative("Delete everything").
				Negative("Keep them"),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = historyStateConfirmClear

	return m, m.form.Init()
}

func (m HistoryModel) updateConfirmClear(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = historyStateBrowse
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	confirmed := m.form.GetBool("clear")

	m.state = historyStateBrowse
	m.form = nil

	if !confirmed {
		return m, nil
	}

	return m, m.clearAllCmd()
}

func (m HistoryModel) View() string {
	switch m.state {
	case historyStateDetail:
		return lipgloss.NewStyle().Padding(1).Render(m.detailView())
	case historyStateConfirmClear:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if len(m.invoices) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No invoices saved yet.\n\n(Esc to back)")
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine + m.table.View())
}

func (m HistoryModel) detailView() string {
	inv := m.selected()
	if inv == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(fmt.Sprintf("Invoice from %s\n\n", FormatDateTime(inv.CreatedAt)))

	for _, it := range inv.Items {
		b.WriteString(fmt.Sprintf("  %-20s %12s/kg  %6.2fkg\n", it.Name, FormatVND(it.PricePerKg), it.WeightKg))
	}

	b.WriteString(fmt.Sprintf("\nTotal: %s\n", lipgloss.NewStyle().Bold(true).Render(FormatVND(inv.TotalAmount))))

	if inv.Note != "" {
		b.WriteString("Note: " + inv.Note + "\n")
	}

	return b.String()
}

func (m *HistoryModel) selected() *invoice.Invoice {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.invoices) {
		return nil
	}

	return &m.invoices[idx]
}

func (m *HistoryModel) refreshTable() {
	rows := make([]table.Row, len(m.invoices))
	for i, inv := range m.invoices {
		rows[i] = table.Row{
			FormatDateTime(inv.CreatedAt),
			FormatVND(inv.TotalAmount),
			fmt.Sprintf("%d", len(inv.Items)),
			inv.Note,
		}
	}

	m.table.SetRows(rows)
}

// Messages

type historyLoadedMsg struct {
	invoices []invoice.Invoice
}

func (m HistoryModel) loadInvoicesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return historyLoadedMsg{invoices: m.invoiceSvc.List(ctx)}
	}
}

type historyActionMsg struct {
	status string
	err    error
}

func (m HistoryModel) deleteByIDCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.invoiceSvc.DeleteByID(ctx, id); err != nil {
			return historyActionMsg{err: err}
		}

		return historyActionMsg{status: "Invoice deleted."}
	}
}

func (m HistoryModel) deleteByDayCmd(day string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.invoiceSvc.DeleteByDay(ctx, day); err != nil {
			return historyActionMsg{err: err}
		}

		return historyActionMsg{status: fmt.Sprintf("Deleted all invoices on %s.", FormatDateOnly(day))}
	}
}

func (m HistoryModel) clearAllCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.invoiceSvc.ClearAll(ctx); err != nil {
			return historyActionMsg{err: err}
		}

		return historyActionMsg{status: "All invoices cleared."}
	}
}

func (m HistoryModel) exportCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		path, err := m.exportSvc.Export(ctx, m.exportDir)
		if err != nil {
			return historyActionMsg{err: err}
		}

		return historyActionMsg{status: fmt.Sprintf("Exported to %s.", path)}
	}
}
