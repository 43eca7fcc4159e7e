package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/minhvng/fruitbill/internal/invoice"
	"github.com/minhvng/fruitbill/internal/preset"
)

type presetsState int

const (
	presetsStateBrowse presetsState = iota
	presetsStateEdit
)

// PresetsModel edits the preset list in memory and saves it back as a whole
// list, the same way the settings screen always worked: no per-item diffing,
// invalid entries are dropped on save.
type PresetsModel struct {
	CommonModel
	presetSvc *preset.Service

	state   presetsState
	cursor  int
	presets []preset.FruitPreset
	editing int // index being edited, -1 for a new preset

	form    *huh.Form
	loading bool
	status  string
	dirty   bool

	// Form field bindings
	formName  string
	formPrice string
}

func NewPresetsModel(presetSvc *preset.Service) PresetsModel {
	return PresetsModel{
		presetSvc: presetSvc,
		loading:   true,
		editing:   -1,
	}
}

func (m PresetsModel) Title() string { return "Fruit Presets" }

func (m PresetsModel) ShortHelp() string {
	if m.state == presetsStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "a: add | e: edit | x: remove | s: save | Esc: back"
}

func (m PresetsModel) Init() tea.Cmd {
	return m.loadPresetListCmd()
}

func (m PresetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case presetListLoadedMsg:
		m.loading = false
		m.presets = msg.presets

		return m, nil

	case presetsSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.dirty = false
		m.status = "Presets saved."

		return m, m.loadPresetListCmd()
	}

	switch m.state {
	case presetsStateBrowse:
		return m.updateBrowse(msg)
	case presetsStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m PresetsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "a":
		return m.startEditing(-1)
	case "e", "enter":
		if len(m.presets) > 0 {
			return m.startEditing(m.cursor)
		}
	case "x":
		if len(m.presets) > 0 {
			m.presets = append(m.presets[:m.cursor], m.presets[m.cursor+1:]...)
			if m.cursor >= len(m.presets) && m.cursor > 0 {
				m.cursor--
			}

			m.dirty = true
		}
	case "s":
		return m, m.savePresetsCmd(m.presets)
	}

	return m, nil
}

func (m PresetsModel) startEditing(idx int) (tea.Model, tea.Cmd) {
	m.editing = idx
	m.formName = ""
	m.formPrice = ""

	if idx >= 0 {
		m.formName = m.presets[idx].Name
		m.formPrice = formatEditableNumber(float64(m.presets[idx].PricePerKg) / invoice.PriceInputScale)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Fruit name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("price").
				Title("Price (thousand ₫/kg)").
				Placeholder("25").
				Value(&m.formPrice),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = presetsStateEdit

	return m, m.form.Init()
}

func (m PresetsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = presetsStateBrowse
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

	name := m.form.GetString("name")
	price := invoice.ScalePriceInput(m.form.GetString("price"))

	if m.editing >= 0 {
		m.presets[m.editing].Name = name
		m.presets[m.editing].PricePerKg = price
	} else {
		m.presets = append(m.presets, preset.FruitPreset{
			ID:         invoice.NewID(),
			Name:       name,
			PricePerKg: price,
		})
		m.cursor = len(m.presets) - 1
	}

	m.dirty = true
	m.state = presetsStateBrowse
	m.form = nil
	m.status = ""

	return m, nil
}

func (m PresetsModel) View() string {
	if m.state == presetsStateEdit {
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading presets...")
	}

	var b strings.Builder

	b.WriteString("Fruit Presets\n\n")

	if len(m.presets) == 0 {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("No presets yet. Press 'a' to add one.") + "\n")
	}

	for i, p := range m.presets {
		line := fmt.Sprintf("%-20s %12s/kg", p.Name, FormatVND(p.PricePerKg))
		if i == m.cursor {
			line = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + line)
		} else {
			line = "  " + line
		}

		b.WriteString(line + "\n")
	}

	if m.dirty {
		b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render("Unsaved changes — press 's' to save.") + "\n")
	} else if m.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render(m.status) + "\n")
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

// Messages

type presetListLoadedMsg struct {
	presets []preset.FruitPreset
}

func (m PresetsModel) loadPresetListCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return presetListLoadedMsg{presets: m.presetSvc.List(ctx)}
	}
}

type presetsSavedMsg struct {
	err error
}

func (m PresetsModel) savePresetsCmd(presets []preset.FruitPreset) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return presetsSavedMsg{err: m.presetSvc.ReplaceAll(ctx, presets)}
	}
}
