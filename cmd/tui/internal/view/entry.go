package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/minhvng/fruitbill/internal/invoice"
	"github.com/minhvng/fruitbill/internal/preset"
)

type entryState int

const (
	entryStateBrowse entryState = iota
	entryStateEdit
	entryStatePreset
	entryStateNote
)

// EntryModel is the draft editor: a list of line items the user fills in,
// with the running total at the bottom. All mutation goes through the
// session; the view only renders and routes keys.
type EntryModel struct {
	CommonModel
	session   *invoice.Session
	presetSvc *preset.Service

	state   entryState
	cursor  int
	presets []preset.FruitPreset

	// Preset picker
	presetCursor int
	applyToRow   bool

	form    *huh.Form
	spinner spinner.Model
	status  string

	// Form field bindings
	formName   string
	formPrice  string
	formWeight string
	formNote   string
}

func NewEntryModel(session *invoice.Session, presetSvc *preset.Service) EntryModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return EntryModel{
		session:   session,
		presetSvc: presetSvc,
		spinner:   s,
	}
}

func (m EntryModel) Title() string { return "New Invoice" }

func (m EntryModel) ShortHelp() string {
	switch m.state {
	case entryStateBrowse:
		return "a: add row | p: add from preset | P: apply preset | e: edit | x: remove | n: note | s: save | r: reset | Esc: back"
	case entryStatePreset:
		return "Enter: choose | Esc: cancel"
	default:
		return "Navigate form | Esc: cancel"
	}
}

func (m EntryModel) Init() tea.Cmd {
	return m.loadPresetsCmd()
}

func (m EntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case presetsLoadedMsg:
		m.presets = msg.presets
		return m, nil

	case draftSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.cursor = 0
		m.status = fmt.Sprintf("Saved invoice for %s.", FormatVND(msg.inv.TotalAmount))

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	switch m.state {
	case entryStateBrowse:
		return m.updateBrowse(msg)
	case entryStateEdit:
		return m.updateEdit(msg)
	case entryStatePreset:
		return m.updatePreset(msg)
	case entryStateNote:
		return m.updateNote(msg)
	}

	return m, nil
}

func (m EntryModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.session.IsSaving() {
		return m, nil
	}

	items := m.session.Items()

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "a":
		m.session.AddItem()
		m.cursor = len(m.session.Items()) - 1
	case "p":
		if len(m.presets) == 0 {
			m.status = "No presets configured yet."
			return m, nil
		}

		m.state = entryStatePreset
		m.presetCursor = 0
		m.applyToRow = false
	case "P":
		if len(m.presets) == 0 {
			m.status = "No presets configured yet."
			return m, nil
		}

		m.state = entryStatePreset
		m.presetCursor = 0
		m.applyToRow = true
	case "x":
		m.session.RemoveItem(items[m.cursor].ID)
		if m.cursor >= len(m.session.Items()) {
			m.cursor = len(m.session.Items()) - 1
		}
	case "e", "enter":
		return m.startEditing(items[m.cursor])
	case "n":
		return m.startNote()
	case "r":
		m.session.Reset()
		m.cursor = 0
		m.status = ""
	case "s":
		if !invoice.Valid(m.session.Items(), m.session.TotalAmount()) {
			m.status = "Invoice is not valid: every row needs a name, price and weight."
			return m, nil
		}

		return m, tea.Batch(m.spinner.Tick, m.saveDraftCmd())
	}

	return m, nil
}

func (m EntryModel) startEditing(it invoice.Item) (tea.Model, tea.Cmd) {
	m.formName = it.Name
	m.formPrice = ""
	m.formWeight = ""

	if it.PricePerKg > 0 {
		m.formPrice = formatEditableNumber(float64(it.PricePerKg) / invoice.PriceInputScale)
	}

	if it.WeightKg > 0 {
		m.formWeight = formatEditableNumber(it.WeightKg)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Fruit").
				Value(&m.formName),

			huh.NewInput().
				Key("price").
				Title("Price (thousand ₫/kg)").
				Placeholder("25").
				Value(&m.formPrice),

			huh.NewInput().
				Key("weight").
				Title("Weight (kg)").
				Placeholder("1,5").
				Value(&m.formWeight),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = entryStateEdit

	return m, m.form.Init()
}

func (m EntryModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = entryStateBrowse
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

	id := m.session.Items()[m.cursor].ID
	m.session.UpdateField(id, invoice.FieldName, m.form.GetString("name"))
	m.session.UpdateField(id, invoice.FieldPrice, m.form.GetString("price"))
	m.session.UpdateField(id, invoice.FieldWeight, m.form.GetString("weight"))

	m.state = entryStateBrowse
	m.form = nil
	m.status = ""

	return m, nil
}

func (m EntryModel) updatePreset(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.state = entryStateBrowse
	case "up", "k":
		if m.presetCursor > 0 {
			m.presetCursor--
		}
	case "down", "j":
		if m.presetCursor < len(m.presets)-1 {
			m.presetCursor++
		}
	case "enter":
		chosen := m.presets[m.presetCursor]

		if m.applyToRow {
			m.session.ApplyPreset(m.session.Items()[m.cursor].ID, chosen)
		} else {
			m.session.AddItemFromPreset(chosen)
			m.cursor = len(m.session.Items()) - 1
		}

		m.state = entryStateBrowse
	}

	return m, nil
}

func (m EntryModel) startNote() (tea.Model, tea.Cmd) {
	m.formNote = m.session.Note()

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("note").
				Title("Note (optional)").
				Value(&m.formNote),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = entryStateNote

	return m, m.form.Init()
}

func (m EntryModel) updateNote(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = entryStateBrowse
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

	m.session.SetNote(m.form.GetString("note"))
	m.state = entryStateBrowse
	m.form = nil

	return m, nil
}

func (m EntryModel) View() string {
	switch m.state {
	case entryStateEdit, entryStateNote:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case entryStatePreset:
		var b strings.Builder

		if m.applyToRow {
			b.WriteString("Apply preset to current row:\n\n")
		} else {
			b.WriteString("Add row from preset:\n\n")
		}

		for i, p := range m.presets {
			line := fmt.Sprintf("%s  %s/kg", p.Name, FormatVND(p.PricePerKg))
			if i == m.presetCursor {
				line = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + line)
			} else {
				line = "  " + line
			}

			b.WriteString(line + "\n")
		}

		return lipgloss.NewStyle().Padding(1).Render(b.String())
	}

	return lipgloss.NewStyle().Padding(1).Render(m.browseView())
}

func (m EntryModel) browseView() string {
	var b strings.Builder

	b.WriteString("New Invoice\n\n")

	for i, it := range m.session.Items() {
		name := it.Name
		if name == "" {
			name = lipgloss.NewStyle().Faint(true).Render("(empty)")
		}

		line := fmt.Sprintf("%-20s %12s/kg  %6skg", name, FormatVND(it.PricePerKg), formatEditableNumber(it.WeightKg))
		if i == m.cursor {
			line = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + line)
		} else {
			line = "  " + line
		}

		b.WriteString(line + "\n")
	}

	b.WriteString(fmt.Sprintf("\nTotal: %s\n", lipgloss.NewStyle().Bold(true).Render(FormatVND(m.session.TotalAmount()))))

	if note := m.session.Note(); note != "" {
		b.WriteString("Note: " + note + "\n")
	}

	if m.session.IsSaving() {
		b.WriteString("\n" + m.spinner.View() + " Saving...\n")
	} else if m.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render(m.status) + "\n")
	}

	return b.String()
}

// Messages

type presetsLoadedMsg struct {
	presets []preset.FruitPreset
}

func (m EntryModel) loadPresetsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return presetsLoadedMsg{presets: m.presetSvc.List(ctx)}
	}
}

type draftSavedMsg struct {
	inv *invoice.Invoice
	err error
}

func (m EntryModel) saveDraftCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		inv, err := m.session.Save(ctx)

		return draftSavedMsg{inv: inv, err: err}
	}
}

// formatEditableNumber renders a float the way the user would type it back,
// trimming trailing zeros.
func formatEditableNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
