package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/minhvng/fruitbill/internal/importer"
)

type importState int

const (
	importStatePath importState = iota
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	importSvc *importer.Service

	state   importState
	form    *huh.Form
	spinner spinner.Model

	path    string
	result  importer.Result
	err     error
}

func NewImportModel(importSvc *importer.Service) ImportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ImportModel{
		importSvc: importSvc,
		spinner:   s,
		form:      buildPathForm(),
	}
}

func (m ImportModel) Title() string { return "Import Presets" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateImporting:
		return "Importing..."
	case importStateResult:
		return "Esc: back to menu"
	}

	return "Enter: import | Esc: back"
}

func (m ImportModel) Init() tea.Cmd {
	return m.form.Init()
}

func buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("CSV price list (name,price in thousand ₫)").
				Placeholder("./presets.csv").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case importDoneMsg:
		m.state = importStateResult
		m.result = msg.result
		m.err = msg.err

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	switch m.state {
	case importStatePath:
		return m.updatePath(msg)
	case importStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ImportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.path = m.form.GetString("path")
	m.state = importStateImporting

	return m, tea.Batch(m.spinner.Tick, m.importCmd(m.path))
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.spinner.View() + " Importing presets...")

	case importStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(2).Render(
				fmt.Sprintf("Import failed: %v\n\n(Esc to back)", m.err),
			)
		}

		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("Imported %d presets (%d rows skipped).\n\n(Esc to back)", m.result.Added, m.result.Skipped),
		)
	}

	if m.form == nil {
		return ""
	}

	return lipgloss.NewStyle().Padding(1).Render(m.form.View())
}

type importDoneMsg struct {
	result importer.Result
	err    error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		result, err := m.importSvc.ImportFile(ctx, path)

		return importDoneMsg{result: result, err: err}
	}
}
